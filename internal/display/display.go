// Package display reúne as funções puras de derivação usadas pelos mappers de resposta.
package display

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Uncategorized é o rótulo de categorias sem nome de exibição.
const Uncategorized = "Uncategorized"

// Rótulos de disponibilidade.
const (
	OutOfStock   = "Out of Stock"
	Unavailable  = "Unavailable"
	LimitedStock = "Limited Stock"
	InStock      = "In Stock"
)

// PriceFormatter formata valores monetários segundo a localidade configurada.
type PriceFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewPriceFormatter cria o formatador. A moeda vem da região da localidade
// (en-US → $, pt-BR → R$, de-DE → €); localidades inválidas caem para en-US.
func NewPriceFormatter(locale string) *PriceFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	unit, conf := currency.FromTag(tag)
	if conf == language.No {
		unit = currency.USD
	}
	printer := message.NewPrinter(tag)
	return &PriceFormatter{
		printer: printer,
		symbol:  printer.Sprint(currency.Symbol(unit)),
	}
}

// Format arredonda para 2 casas e aplica símbolo e separadores da localidade
// (e.g., "$1,234.50", "R$ 1.234,50").
func (f *PriceFormatter) Format(price decimal.Decimal) string {
	v := price.Round(2).InexactFloat64()
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	symbol := f.symbol
	// símbolos com mais de um caractere ("R$", "CHF") ficam separados do valor
	if utf8.RuneCountInString(symbol) > 1 {
		symbol += " "
	}
	return sign + symbol + f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}

// Initials devolve "?" para nomes em branco, a primeira letra para uma palavra,
// ou primeira + última palavra.
func Initials(name string) string {
	words := strings.Fields(name)
	switch len(words) {
	case 0:
		return "?"
	case 1:
		return firstUpper(words[0])
	default:
		return firstUpper(words[0]) + firstUpper(words[len(words)-1])
	}
}

func firstUpper(word string) string {
	for _, r := range word {
		return string(unicode.ToUpper(r))
	}
	return ""
}

// Availability classifica o estoque. lastUnit é o rótulo para exatamente uma unidade
// ("Last Copy" para pedidos, "Last Item" para produtos).
func Availability(isAvailable bool, stock int, lastUnit string) string {
	switch {
	case !isAvailable:
		return OutOfStock
	case stock <= 0:
		return Unavailable
	case stock == 1:
		return lastUnit
	case stock <= 5:
		return LimitedStock
	default:
		return InStock
	}
}

// CategoryLabel procura o nome de exibição; ausente vira Uncategorized.
func CategoryLabel[K comparable](labels map[K]string, key K) string {
	if label, ok := labels[key]; ok {
		return label
	}
	return Uncategorized
}

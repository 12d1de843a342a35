package rules

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// NotBlank falha para strings vazias ou só com espaços.
func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// LengthBetween conta caracteres (runes), não bytes.
func LengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// MinLength conta caracteres (runes).
func MinLength(s string, min int) bool {
	return utf8.RuneCountInString(s) >= min
}

// ContainsAnyFold informa se s contém alguma das palavras, ignorando maiúsculas.
func ContainsAnyFold(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// Matches aplica uma expressão regular compilada.
func Matches(re *regexp.Regexp, s string) bool {
	return re.MatchString(s)
}

// DigitsOnly remove hífens e espaços e reporta se o restante é só de dígitos.
func DigitsOnly(s string) (string, bool) {
	clean := strings.NewReplacer("-", "", " ", "").Replace(s)
	if clean == "" {
		return clean, false
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return clean, false
		}
	}
	return clean, true
}

// IsHTTPURL valida uma URL absoluta com esquema http ou https.
func IsHTTPURL(raw string) (*url.URL, bool) {
	if err := validate.Var(raw, "required,url"); err != nil {
		return nil, false
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, false
	}
	return u, true
}

// IsImageURL exige URL http(s) cujo caminho termina com extensão de imagem.
// Query string e fragmento não contam.
func IsImageURL(raw string) bool {
	u, ok := IsHTTPURL(raw)
	if !ok {
		return false
	}
	return hasImageExtension(u.Path)
}

// IsImageURLSuffix exige URL http(s) cujo texto inteiro termina com extensão de imagem.
func IsImageURLSuffix(raw string) bool {
	if _, ok := IsHTTPURL(raw); !ok {
		return false
	}
	return hasImageExtension(raw)
}

func hasImageExtension(s string) bool {
	lower := strings.ToLower(s)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

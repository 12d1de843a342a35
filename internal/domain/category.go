package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// invalidCategory marca um nome de categoria desconhecido recebido no payload.
// O validador reporta a mensagem de categoria inválida em vez de falhar no decode.
const invalidCategory = -1

// OrderCategory é a categoria de um pedido. Aceita o nome ("Technical") ou o índice (2) no JSON.
type OrderCategory int

const (
	Fiction OrderCategory = iota
	NonFiction
	Technical
	Children
)

var orderCategoryNames = []string{"Fiction", "NonFiction", "Technical", "Children"}

func (c OrderCategory) IsValid() bool { return c >= Fiction && c <= Children }

func (c OrderCategory) String() string {
	if !c.IsValid() {
		return "Unknown(" + strconv.Itoa(int(c)) + ")"
	}
	return orderCategoryNames[c]
}

func (c OrderCategory) MarshalJSON() ([]byte, error) {
	return marshalEnum(int(c), orderCategoryNames)
}

func (c *OrderCategory) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, orderCategoryNames)
	if err != nil {
		return err
	}
	*c = OrderCategory(v)
	return nil
}

// ProductCategory é a categoria de um produto.
type ProductCategory int

const (
	Electronics ProductCategory = iota
	Clothing
	Books
	Home
)

var productCategoryNames = []string{"Electronics", "Clothing", "Books", "Home"}

func (c ProductCategory) IsValid() bool { return c >= Electronics && c <= Home }

func (c ProductCategory) String() string {
	if !c.IsValid() {
		return "Unknown(" + strconv.Itoa(int(c)) + ")"
	}
	return productCategoryNames[c]
}

func (c ProductCategory) MarshalJSON() ([]byte, error) {
	return marshalEnum(int(c), productCategoryNames)
}

func (c *ProductCategory) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, productCategoryNames)
	if err != nil {
		return err
	}
	*c = ProductCategory(v)
	return nil
}

// --- helpers ---

func marshalEnum(v int, names []string) ([]byte, error) {
	if v >= 0 && v < len(names) {
		return json.Marshal(names[v])
	}
	return json.Marshal(v)
}

func unmarshalEnum(data []byte, names []string) (int, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return 0, err
		}
		for i, n := range names {
			if strings.EqualFold(n, name) {
				return i, nil
			}
		}
		return invalidCategory, nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, fmt.Errorf("category must be a name or an integer: %w", err)
	}
	return n, nil
}

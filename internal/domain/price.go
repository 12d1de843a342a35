package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// priceNumber expõe o preço dos perfis como número JSON (45.5) e não como
// string ("45.5"), sem mexer na configuração global do decimal. Entidades
// mantêm o formato padrão, que é o que o cache grava.
func priceNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func (p OrderProfile) MarshalJSON() ([]byte, error) {
	type profile OrderProfile
	return json.Marshal(struct {
		profile
		Price json.Number `json:"price"`
	}{profile(p), priceNumber(p.Price)})
}

func (p ProductProfile) MarshalJSON() ([]byte, error) {
	type profile ProductProfile
	return json.Marshal(struct {
		profile
		Price json.Number `json:"price"`
	}{profile(p), priceNumber(p.Price)})
}

// Package rules avalia listas ordenadas de regras de validação.
// Todas as regras aplicáveis são executadas e cada violação contribui com exatamente uma mensagem.
package rules

import (
	"context"
	"fmt"
)

// Check retorna true quando a regra é satisfeita.
// Um erro indica falha de infraestrutura (e.g., consulta ao banco) e interrompe a avaliação.
type Check[T any] func(ctx context.Context, req T) (bool, error)

// Rule associa uma verificação à mensagem reportada quando ela falha.
type Rule[T any] struct {
	Name    string
	Message string
	// When restringe a regra a um subconjunto de requisições (e.g., uma categoria). nil = sempre.
	When  func(req T) bool
	Check Check[T]
}

// Set é uma lista ordenada de regras; a ordem define a ordem das mensagens.
type Set[T any] []Rule[T]

// Evaluate executa todas as regras aplicáveis e devolve as mensagens violadas, em ordem.
func (s Set[T]) Evaluate(ctx context.Context, req T) ([]string, error) {
	var violations []string
	for _, r := range s {
		if r.When != nil && !r.When(req) {
			continue
		}
		ok, err := r.Check(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		if !ok {
			violations = append(violations, r.Message)
		}
	}
	return violations, nil
}

// Pure adapta um predicado sem I/O para Check.
func Pure[T any](pred func(req T) bool) Check[T] {
	return func(_ context.Context, req T) (bool, error) {
		return pred(req), nil
	}
}

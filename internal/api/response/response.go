// Package response padroniza o corpo JSON de sucesso e de erro dos Handlers.
package response

import (
	"context"
	"encoding/json"
	"net/http"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

type traceIDKey struct{}

// WithTraceID guarda o correlation ID da requisição no contexto.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceID devolve o correlation ID da requisição ("" se ausente).
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// JSON escreve v com o status informado. v nil gera corpo vazio.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	if v == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error traduz err para ErrorResponse. Erros 5xx são logados com a causa completa;
// o cliente recebe apenas a mensagem genérica.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	mapped := apperror.MapToHTTPStatus(err)
	reqLog := log.WithContext(r.Context())

	if mapped.Internal {
		reqLog.Error("request failed", err)
	} else {
		reqLog.Debug("request rejected", map[string]interface{}{
			"status": mapped.Status,
			"code":   mapped.Code,
			"path":   r.URL.Path,
		})
	}

	JSON(w, mapped.Status, domain.ErrorResponse{
		ErrorCode: mapped.Code,
		Message:   mapped.Message,
		Details:   mapped.Details,
		TraceID:   TraceID(r.Context()),
	})
}

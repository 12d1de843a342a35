package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"gocatalog/internal/api/response"
	"gocatalog/internal/pkg/logger"
)

// CorrelationIDHeader é lido da requisição e devolvido na resposta.
const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationID reaproveita o ID enviado pelo cliente ou gera um novo (UUID sem hífens).
// O ID vai para o header da resposta, para o traceId dos erros e para os campos de log.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(CorrelationIDHeader))
		if id == "" {
			id = strings.ReplaceAll(uuid.NewString(), "-", "")
		}
		w.Header().Set(CorrelationIDHeader, id)

		ctx := response.WithTraceID(r.Context(), id)
		ctx = logger.WithFields(ctx, map[string]interface{}{"correlation_id": id})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

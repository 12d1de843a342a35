package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"gocatalog/internal/api/response"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

// Recoverer converte panics em 500 com o corpo de erro padrão (traceId incluso)
// e registra a pilha pelo logger estruturado.
func Recoverer(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// http.ErrAbortHandler deve continuar subindo para o servidor abortar a conexão.
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				err := apperror.NewInternalError("panic while handling request", fmt.Errorf("panic: %v", rec))
				panicLog := log.With(map[string]interface{}{"stack": string(debug.Stack())})
				response.Error(w, r, panicLog, err)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

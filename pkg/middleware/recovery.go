package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	apperrors "github.com/themilho/product-catalog/pkg/errors"
	"github.com/themilho/product-catalog/pkg/httputil"
	"github.com/themilho/product-catalog/pkg/logger"
)

// Recovery recovers from panics and answers with the standard 500 envelope.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)
					httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorEnvelope{
						Error: &httputil.ErrorResponse{
							Code:      apperrors.CodeInternal,
							Message:   "an internal error occurred",
							RequestID: logger.CorrelationIDFromContext(r.Context()),
						},
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

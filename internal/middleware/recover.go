package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/rpattn/barmenu/pkg/logger"
)

// Recover turns a panic into a 500 JSON response. Panic details are logged,
// never sent to the client.
func Recover(base *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log := logger.FromContext(r.Context(), base)
				log.Error("panic recovered",
					zap.String("path", r.URL.Path),
					zap.Any("reason", rec),
					zap.Stack("stack"),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				if err := json.NewEncoder(w).Encode(map[string]string{"message": "internal server error"}); err != nil {
					log.Error("failed to write response", zap.String("path", r.URL.Path), zap.Error(err))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

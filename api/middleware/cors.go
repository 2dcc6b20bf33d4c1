package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/envatex/storefront-gateway/pkg/config"
)

// CORS returns middleware that applies the gateway's allowed origin policy.
// The session cookie requires credentialed requests, so origins are explicit
// rather than wildcarded.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}

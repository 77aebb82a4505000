package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the mobile web client to call the API from another origin.
// Credentials stay disabled so a wildcard origin remains valid.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:           7200,
		AllowCredentials: false,
	})
	return c.Handler
}

package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS builds the CORS policy for the configured frontend origins. The
// API is cookie-less but AllowCredentials stays on so a local frontend served
// from another port can talk to it during development.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Local dev plus the deployed storefront hosts.
var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"https://feather-mart.vercel.app",
	"https://www.feathermart.store",
}

// CORS returns middleware that applies the storefront's allowed origin
// policy. Credentials stay enabled so the guest cookie survives cross-origin
// fetches from the storefront.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}

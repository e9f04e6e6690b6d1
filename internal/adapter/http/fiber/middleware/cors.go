package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	fibercors "github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/evsync/evsync/pkg/config"
)

const corsMaxAgeSeconds = 86400

// NewCORS builds the CORS middleware from application config. Empty
// config fields fall back to permissive development defaults.
func NewCORS(cfg config.CORSConfig) fiber.Handler {
	maxAge := corsMaxAgeSeconds
	if cfg.MaxAge > 0 {
		maxAge = cfg.MaxAge
	}

	return fibercors.New(fibercors.Config{
		AllowOrigins:     joinOr(cfg.AllowedOrigins, "*"),
		AllowMethods:     joinOr(cfg.AllowedMethods, "GET,POST,PUT,PATCH,DELETE,OPTIONS"),
		AllowHeaders:     joinOr(cfg.AllowedHeaders, "Origin,Content-Type,Accept,Authorization,X-Request-ID"),
		ExposeHeaders:    joinOr(cfg.ExposeHeaders, "Content-Length,Content-Range"),
		AllowCredentials: cfg.Credentials,
		MaxAge:           maxAge,
	})
}

// DefaultCORS is the permissive policy used when no cors section is
// configured.
func DefaultCORS() fiber.Handler {
	return NewCORS(config.CORSConfig{})
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ",")
}

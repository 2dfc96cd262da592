package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// UserResponse is the public projection of a user: never the password hash.
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = resolveAllowedOrigins()
)

// InitAllowedOrigins re-resolves the allowlist from the environment. Package
// init runs before the .env file is loaded, so main must call this after
// godotenv.Load() for file-sourced CLIENT_URL/ALLOWED_ORIGINS to take effect.
func InitAllowedOrigins() {
	AllowedOrigins = resolveAllowedOrigins()
}

func resolveAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}

package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/digital-companion/companion/db"
	"github.com/digital-companion/companion/internal/auth"
	"github.com/digital-companion/companion/internal/models"
	"github.com/digital-companion/companion/internal/types"
	"github.com/gin-gonic/gin"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthMiddleware is the access gate for every protected route. It requires an
// "Authorization: Bearer <token>" header, verifies the token and binds the
// resolved user to the request context, which is the sole source of owner
// identity for downstream handlers. Clients get one uniform 401 message; the
// actual failure cause goes to the log only.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		userID, err := auth.VerifyJWT(parts[1])

		if err != nil {
			log.Printf("Token rejected: %v", err)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		var user models.User

		if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			log.Printf("Token for unknown user %d", userID)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
		ctx.Next()
	}
}

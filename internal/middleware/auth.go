package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/mesa-scheduler/internal/config"
	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
)

const (
	ContextUserID       = "userID"
	ContextRestaurantID = "restaurantID"
	ContextUserRole     = "userRole"
)

// AuthMiddleware valida o Bearer token (HS256) emitido para a equipe do restaurante.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Token de acesso ausente.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Token inválido ou expirado.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_claims", "Token inválido.")
			return
		}

		userID, ok1 := claims["sub"].(float64)
		restaurantID, ok2 := claims["restaurantId"].(float64)
		role, _ := claims["role"].(string)
		if !ok1 || !ok2 || restaurantID <= 0 {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Token sem restaurante associado.")
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextRestaurantID, uint(restaurantID))
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vendr/internal/apierror"
	"vendr/internal/domain"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	UserID     string  `json:"user_id"`
	Role       string  `json:"role"`
	EmpresaID  *string `json:"empresa_id,omitempty"`
	VendedorID *string `json:"vendedor_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticação requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token inválido ou expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose JWT role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !allowed[claims.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permissões insuficientes"))
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}

// Conta resolves the account context from the validated claims. Resolved once
// here; services never look at the raw token again.
func Conta(c *gin.Context) (domain.AccountContext, bool) {
	claims := GetClaims(c)
	if claims == nil {
		return domain.AccountContext{}, false
	}
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.AccountContext{}, false
	}

	switch claims.Role {
	case "dono":
		if claims.EmpresaID == nil {
			return domain.AccountContext{}, false
		}
		empresaID, err := uuid.Parse(*claims.EmpresaID)
		if err != nil {
			return domain.AccountContext{}, false
		}
		return domain.Dono(usuarioID, empresaID), true
	case "vendedor":
		if claims.EmpresaID == nil || claims.VendedorID == nil {
			return domain.AccountContext{}, false
		}
		empresaID, err := uuid.Parse(*claims.EmpresaID)
		if err != nil {
			return domain.AccountContext{}, false
		}
		vendedorID, err := uuid.Parse(*claims.VendedorID)
		if err != nil {
			return domain.AccountContext{}, false
		}
		return domain.Vendedor(usuarioID, vendedorID, empresaID), true
	default:
		return domain.Solo(usuarioID), true
	}
}

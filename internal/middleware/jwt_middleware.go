package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/farellandr/sponzo/internal/helpers"
	"github.com/farellandr/sponzo/internal/models"
)

const accountKey = "account"

type Claims struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, account *models.Account, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: account.ID,
		Role:   account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// AccountLookup resolves the account a token was issued to.
type AccountLookup interface {
	Account(ctx context.Context, id string) (*models.Account, error)
}

// JWTAuthMiddleware requires a bearer token and stores the caller's account in
// the gin context.
func JWTAuthMiddleware(secret string, accounts AccountLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authorization token required.")
			c.Abort()
			return
		}

		claims, err := ParseToken(secret, tokenString)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		account, err := accounts.Account(c.Request.Context(), claims.UserID)
		if errors.Is(err, models.ErrNotFound) {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Account no longer exists.")
			c.Abort()
			return
		}
		if err != nil {
			helpers.RespondWithServiceError(c, err)
			c.Abort()
			return
		}

		c.Set("user_id", account.ID)
		c.Set("role", string(account.Role))
		c.Set(accountKey, account)
		c.Next()
	}
}

// RequireRoles rejects callers whose role is not listed.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := CurrentAccount(c)
		if account == nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
			c.Abort()
			return
		}
		if !account.HasRole(roles...) {
			helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to access this resource.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentAccount returns the authenticated account, or nil.
func CurrentAccount(c *gin.Context) *models.Account {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil
	}
	account, _ := v.(*models.Account)
	return account
}

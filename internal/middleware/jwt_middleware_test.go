package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/sponzo/internal/models"
)

type stubAccounts map[string]*models.Account

func (s stubAccounts) Account(_ context.Context, id string) (*models.Account, error) {
	if a, ok := s[id]; ok {
		return a, nil
	}
	return nil, models.NewNotFoundError("account", id)
}

const secret = "test-secret"

func newRouter(accounts stubAccounts, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", JWTAuthMiddleware(secret, accounts), RequireRoles(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentAccount(c).ID)
	})
	return r
}

func request(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTokenRoundTrip(t *testing.T) {
	account := &models.Account{ID: "brand-1", Role: models.RoleBrand}
	token, err := GenerateToken(secret, account, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "brand-1", claims.UserID)
	assert.Equal(t, models.RoleBrand, claims.Role)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)

	expired, err := GenerateToken(secret, account, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(secret, expired)
	assert.Error(t, err)
}

func TestJWTAuthMiddleware(t *testing.T) {
	brand := &models.Account{ID: "brand-1", Role: models.RoleBrand}
	accounts := stubAccounts{brand.ID: brand}
	r := newRouter(accounts, models.RoleBrand, models.RoleAdmin)

	token, err := GenerateToken(secret, brand, time.Hour)
	require.NoError(t, err)

	rec := request(r, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "brand-1", rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, request(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "garbage").Code)

	ghost, err := GenerateToken(secret, &models.Account{ID: "ghost", Role: models.RoleBrand}, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, request(r, ghost).Code)
}

func TestRequireRoles(t *testing.T) {
	student := &models.Account{ID: "student-1", Role: models.RoleStudent}
	r := newRouter(stubAccounts{student.ID: student}, models.RoleOrganizer)

	token, err := GenerateToken(secret, student, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, request(r, token).Code)
}

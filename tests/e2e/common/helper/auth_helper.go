//go:build e2e

package helper

import (
	"net/http"
	"testing"
	"time"

	"marketplace-api/internal/domain/user"
	reqdto "marketplace-api/internal/handler/dto/request"
	"marketplace-api/internal/pkg/config"
	"marketplace-api/internal/pkg/cookie"
	"marketplace-api/internal/pkg/jwt"
	"marketplace-api/tests/common/dbtest"
	"marketplace-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// AuthHelper creates users and obtains tokens through the real login path.
type AuthHelper struct {
	pool *pgxpool.Pool
	cfg  config.JWTConfig
}

func NewAuthHelper(pool *pgxpool.Pool, cfg config.JWTConfig) *AuthHelper {
	return &AuthHelper{pool: pool, cfg: cfg}
}

func (h *AuthHelper) CreateTestUser(t *testing.T, db dbtest.DBLike, email, role string) uuid.UUID {
	t.Helper()
	return dbtest.CreateTestUser(t, db, email, role)
}

func (h *AuthHelper) LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		reqdto.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	accessToken := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
	require.NotNil(t, accessToken, "access token cookie not set")
	require.NotEmpty(t, accessToken.Value, "access token cookie is empty")

	return accessToken.Value
}

// CreateAndLogin seeds a user row and logs in with the fixture password.
func (h *AuthHelper) CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, role string) (uuid.UUID, string) {
	t.Helper()
	userID := dbtest.CreateTestUser(t, db, email, role)
	return userID, h.LoginUser(t, router, email, "password123")
}

func (h *AuthHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, _ := time.ParseDuration(h.cfg.AccessTokenDuration)
	refreshDuration, _ := time.ParseDuration(h.cfg.RefreshTokenDuration)
	service := jwt.NewService(h.cfg.Secret, duration, refreshDuration)
	token, err := service.GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return token
}

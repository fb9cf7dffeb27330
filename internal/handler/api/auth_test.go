//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"marketplace-api/internal/handler/api"
	reqdto "marketplace-api/internal/handler/dto/request"
	resdto "marketplace-api/internal/handler/dto/response"
	"marketplace-api/internal/pkg/config"
	"marketplace-api/internal/pkg/cookie"
	"marketplace-api/internal/pkg/jwt"
	"marketplace-api/internal/usecase/commands"
	"marketplace-api/internal/usecase/queries"
	"marketplace-api/tests/common/builder"
	"marketplace-api/tests/common/httptest"
	commandsmock "marketplace-api/tests/mock/commands"
	queriesmock "marketplace-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
	userID       uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)

	cfg := config.NewTestConfig()
	jwtService := jwt.NewService(cfg.JWT.Secret, 15*time.Minute, 168*time.Hour)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, jwtService, cfg)
	s.userID = uuid.New()

	withUser := func(h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("user_id", s.userID)
			h(c)
		}
	}
	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/login", s.handler.Login)
	s.router.GET("/auth/me", withUser(s.handler.Me))
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestRegister() {
	s.Run("creates a buyer account", func() {
		req := reqdto.RegisterRequest{Email: "buyer@example.com", Password: "password123", Role: "buyer"}
		s.mockCommands.EXPECT().Register(gomock.Any(), req).Return(s.userID, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", req, "")

		s.Equal(http.StatusCreated, w.Code)
		var resp resdto.RegisterResponse
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), w.Body, &resp))
		s.Equal(s.userID, resp.UserID)
	})

	s.Run("rejects duplicate email", func() {
		req := reqdto.RegisterRequest{Email: "taken@example.com", Password: "password123", Role: "seller"}
		s.mockCommands.EXPECT().Register(gomock.Any(), req).Return(uuid.Nil, commands.ErrEmailAlreadyTaken)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", req, "")

		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("rejects admin role at registration", func() {
		req := reqdto.RegisterRequest{Email: "admin@example.com", Password: "password123", Role: "admin"}

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", req, "")

		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *AuthHandlerTestSuite) TestLogin() {
	req := reqdto.LoginRequest{Email: "buyer@example.com", Password: "password123"}

	s.Run("returns tokens and sets cookies", func() {
		view := builder.NewUserBuilder().BuildReadModel()
		s.mockCommands.EXPECT().Login(gomock.Any(), req).Return(&commands.LoginResult{
			UserID:    view.ID,
			TokenPair: &commands.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
		}, nil)
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), view.ID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", req, "")

		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var resp resdto.LoginResponse
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), w.Body, &resp))
		s.Equal("access", resp.AccessToken)
		s.Equal(view.Email, resp.User.Email)

		access := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
		s.Require().NotNil(access)
		s.Equal("access", access.Value)
	})

	s.Run("rejects invalid credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), req).Return(nil, commands.ErrInvalidCredentials)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", req, "")

		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("rejects inactive account", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), req).Return(nil, commands.ErrUserInactive)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", req, "")

		s.Equal(http.StatusForbidden, w.Code)
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("returns the current user", func() {
		view := builder.NewUserBuilder().With(func(b *builder.UserBuilder) {
			b.Email = "me@example.com"
			b.Role = "seller"
		}).BuildReadModel()
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.userID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")

		s.Require().Equal(http.StatusOK, w.Code)
		var resp queries.AuthorizedUserView
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), w.Body, &resp))
		s.Equal("me@example.com", resp.Email)
		s.Equal("seller", resp.Role)
	})

	s.Run("returns 404 for a deleted user", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.userID).Return(nil, queries.ErrUserNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")

		s.Equal(http.StatusNotFound, w.Code)
	})
}

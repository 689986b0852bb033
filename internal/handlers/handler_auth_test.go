package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vendora/vendora_backend/internal/core/domain"
	portssvc "github.com/vendora/vendora_backend/internal/core/ports/services"
	"github.com/vendora/vendora_backend/internal/dto"
	"github.com/vendora/vendora_backend/internal/handlers"
	"github.com/vendora/vendora_backend/internal/utils"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) RevokeToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) GenerateRefreshToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) RefreshTokenExpiryTime() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

func (m *MockTokenService) ParseExpiredAccessToken(ctx context.Context, tokenString string) (*utils.AccessTokenClaims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.AccessTokenClaims), args.Error(1)
}

func (m *MockTokenService) IsAccessTokenExpired(tokenString string) (bool, error) {
	args := m.Called(tokenString)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockAuthSvc  *MockAuthService
	mockTokenSvc *MockTokenService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()
	suite.mockAuthSvc = new(MockAuthService)
	suite.mockTokenSvc = new(MockTokenService)
	h := handlers.NewAuthHandler(suite.mockAuthSvc, suite.mockTokenSvc)

	suite.router = gin.New()
	suite.router.POST("/auth/register", h.Register)
	suite.router.POST("/auth/login", h.Login)
	suite.router.POST("/auth/refresh", h.Refresh)
	suite.router.POST("/auth/revoke", h.Revoke)
	suite.router.POST("/auth/logout", h.Logout)
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestRegister_Created() {
	req := dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"}
	resp := &dto.AuthResponse{
		Success:      true,
		Message:      "Registration successful",
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         &dto.UserResponse{ID: 1, Username: "alice"},
	}
	suite.mockAuthSvc.On("Register", mock.Anything, req).Return(resp, nil).Once()

	w := suite.postJSON("/auth/register", req, nil)

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.AuthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.True(got.Success)
	suite.Equal("access-token", got.AccessToken)
	suite.mockAuthSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_Duplicate() {
	req := dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"}
	suite.mockAuthSvc.On("Register", mock.Anything, req).
		Return(dto.FailedAuthResponse("Username already exists"), nil).Once()

	w := suite.postJSON("/auth/register", req, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAuthSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_InvalidBody() {
	// Password below the minimum never reaches the service.
	w := suite.postJSON("/auth/register", gin.H{"username": "alice", "email": "alice@example.com", "password": "short"}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAuthSvc.AssertNotCalled(suite.T(), "Register")
}

func (suite *AuthHandlerTestSuite) TestLogin_Unauthorized() {
	req := dto.LoginRequest{Username: "alice", Password: "wrong"}
	suite.mockAuthSvc.On("Login", mock.Anything, req).
		Return(dto.FailedAuthResponse("Invalid username or password"), nil).Once()

	w := suite.postJSON("/auth/login", req, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	var got dto.AuthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.False(got.Success)
	suite.Equal("Invalid username or password", got.Message)
	suite.mockAuthSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRefresh_Success() {
	resp := &dto.AuthResponse{Success: true, Message: "Token refreshed successfully", AccessToken: "new-access", RefreshToken: "new-refresh"}
	suite.mockAuthSvc.On("RefreshToken", mock.Anything, "old-refresh").Return(resp, nil).Once()

	w := suite.postJSON("/auth/refresh", dto.RefreshTokenRequest{RefreshToken: "old-refresh"}, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAuthSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRefresh_TamperedAccessTokenRejected() {
	suite.mockTokenSvc.On("ParseExpiredAccessToken", mock.Anything, "tampered-token").
		Return(nil, assert.AnError).Once()

	w := suite.postJSON("/auth/refresh",
		dto.RefreshTokenRequest{RefreshToken: "old-refresh"},
		map[string]string{"Authorization": "Bearer tampered-token"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAuthSvc.AssertNotCalled(suite.T(), "RefreshToken")
	suite.mockTokenSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRefresh_ExpiredAccessTokenTolerated() {
	claims := &utils.AccessTokenClaims{Username: "alice"}
	suite.mockTokenSvc.On("ParseExpiredAccessToken", mock.Anything, "stale-token").Return(claims, nil).Once()
	suite.mockTokenSvc.On("IsAccessTokenExpired", "stale-token").Return(true, nil).Once()

	resp := &dto.AuthResponse{Success: true, Message: "Token refreshed successfully"}
	suite.mockAuthSvc.On("RefreshToken", mock.Anything, "old-refresh").Return(resp, nil).Once()

	w := suite.postJSON("/auth/refresh",
		dto.RefreshTokenRequest{RefreshToken: "old-refresh"},
		map[string]string{"Authorization": "Bearer stale-token"})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAuthSvc.AssertExpectations(suite.T())
	suite.mockTokenSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRefresh_StaleRefreshToken() {
	suite.mockAuthSvc.On("RefreshToken", mock.Anything, "dead-refresh").
		Return(dto.FailedAuthResponse("Invalid or expired refresh token"), nil).Once()

	w := suite.postJSON("/auth/refresh", dto.RefreshTokenRequest{RefreshToken: "dead-refresh"}, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAuthSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRevoke_Success() {
	resp := &dto.AuthResponse{Success: true, Message: "Token revoked successfully"}
	suite.mockAuthSvc.On("RevokeToken", mock.Anything, "live-refresh").Return(resp, nil).Once()

	w := suite.postJSON("/auth/revoke", dto.RevokeTokenRequest{RefreshToken: "live-refresh"}, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAuthSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRevoke_UnknownToken() {
	suite.mockAuthSvc.On("RevokeToken", mock.Anything, "no-such-token").
		Return(dto.FailedAuthResponse("Invalid token"), nil).Once()

	w := suite.postJSON("/auth/revoke", dto.RevokeTokenRequest{RefreshToken: "no-such-token"}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAuthSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogout_DelegatesToLogout() {
	resp := &dto.AuthResponse{Success: true, Message: "Token revoked successfully"}
	suite.mockAuthSvc.On("Logout", mock.Anything, "live-refresh").Return(resp, nil).Once()

	w := suite.postJSON("/auth/logout", dto.RevokeTokenRequest{RefreshToken: "live-refresh"}, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAuthSvc.AssertExpectations(suite.T())
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

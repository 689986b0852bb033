package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/vendora/vendora_backend/internal/core/ports/services"
	"github.com/vendora/vendora_backend/internal/dto"
	"github.com/vendora/vendora_backend/internal/middleware"
	"github.com/vendora/vendora_backend/internal/platform/config"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService  portssvc.AuthSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvcFacade, ts portssvc.TokenSvcFacade) *AuthHandler {
	return &AuthHandler{
		authService:  as,
		tokenService: ts,
	}
}

// registerAuthRoutes sets up the public authentication routes. The whole
// group is IP rate limited; the auth core itself does not bound attempts.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.Auth, services.Token)

	// 10 requests per minute per IP
	rate, _ := limiter.NewRateFromFormatted("10-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/auth", limitMiddleware)
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/revoke", h.Revoke)
		auth.POST("/logout", h.Logout)
	}
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account and signs it in, returning an access/refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} dto.AuthResponse "Duplicate username or email"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		logger.Error("Registration failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		return
	}
	if !result.Success {
		c.JSON(http.StatusConflict, result)
		return
	}

	logger.Info("User registered", slog.Int64("user_id", result.User.ID))
	c.JSON(http.StatusCreated, result)
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns an access/refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} dto.AuthResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		logger.Error("Login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in"})
		return
	}
	if !result.Success {
		c.JSON(http.StatusUnauthorized, result)
		return
	}

	logger.Info("User logged in", slog.Int64("user_id", result.User.ID))
	c.JSON(http.StatusOK, result)
}

// Refresh godoc
// @Summary Refresh tokens
// @Description Exchanges a live refresh token for a new access/refresh pair; the old refresh token is invalidated.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} dto.AuthResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	// Clients typically still carry their stale access token here. When one
	// is presented it must at least be authentically signed: expiry is fine,
	// tampering is not.
	if bearer := bearerToken(c); bearer != "" {
		claims, err := h.tokenService.ParseExpiredAccessToken(c.Request.Context(), bearer)
		if err != nil {
			logger.Warn("Refresh presented with tampered access token", slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
			return
		}
		if expired, err := h.tokenService.IsAccessTokenExpired(bearer); err == nil && expired {
			logger.Info("Re-identified user from expired access token", slog.String("username", claims.Username))
		}
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		logger.Error("Token refresh failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refresh token"})
		return
	}
	if !result.Success {
		c.JSON(http.StatusUnauthorized, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Revoke godoc
// @Summary Revoke a refresh token
// @Description Invalidates the presented refresh token. Revoking an unknown token reports failure without side effects.
// @Tags auth
// @Accept json
// @Produce json
// @Param revoke body dto.RevokeTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.AuthResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/revoke [post]
func (h *AuthHandler) Revoke(c *gin.Context) {
	h.revoke(c, h.authService.RevokeToken)
}

// Logout godoc
// @Summary Log out
// @Description Alias of revoke: invalidates the presented refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param logout body dto.RevokeTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.AuthResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.revoke(c, h.authService.Logout)
}

func (h *AuthHandler) revoke(c *gin.Context, op func(ctx context.Context, token string) (*dto.AuthResponse, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RevokeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := op(c.Request.Context(), req.RefreshToken)
	if err != nil {
		logger.Error("Token revocation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to revoke token"})
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

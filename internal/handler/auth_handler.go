package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-demo/studyhub/internal/dto/request"
	"github.com/go-demo/studyhub/internal/dto/response"
	"github.com/go-demo/studyhub/internal/middleware"
	"github.com/go-demo/studyhub/internal/pkg/utils"
	"github.com/go-demo/studyhub/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
// @Summary 註冊
// @Description 建立新用戶並回傳 Token
// @Tags 認證
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "註冊資料"
// @Success 201 {object} response.Response{data=response.AuthResponse}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請求格式錯誤")
		return
	}

	// Validate input
	v := utils.NewValidator()
	v.ValidateUsername("username", req.Username)
	v.ValidateEmail("email", req.Email)
	v.ValidatePassword("password", req.Password)

	if v.HasErrors() {
		response.ValidationError(c, v.Errors())
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, newAuthResponse(result))
}

// Login godoc
// @Summary 登入
// @Description 驗證帳號密碼並回傳 Token
// @Tags 認證
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "登入資料"
// @Success 200 {object} response.Response{data=response.AuthResponse}
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請求格式錯誤")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, newAuthResponse(result))
}

// Refresh godoc
// @Summary 更新 Token
// @Description 使用 Refresh Token 換取新的 Token
// @Tags 認證
// @Accept json
// @Produce json
// @Param request body request.RefreshRequest true "Refresh Token"
// @Success 200 {object} response.Response{data=response.TokenResponse}
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req request.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請求格式錯誤")
		return
	}

	tokenPair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &response.TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt.Format(time.RFC3339),
	})
}

// Logout godoc
// @Summary 登出
// @Description 撤銷 Refresh Token
// @Tags 認證
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.LogoutRequest true "Refresh Token"
// @Success 200 {object} response.Response
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req request.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請求格式錯誤")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "已登出", nil)
}

// GetMe godoc
// @Summary 取得當前用戶
// @Description 取得當前登入用戶的資料
// @Tags 認證
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=response.ProfileResponse}
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.authService.GetMe(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.NewProfileResponse(user.ToProfile()))
}

func newAuthResponse(result *service.AuthResult) *response.AuthResponse {
	return &response.AuthResponse{
		User:         response.NewProfileResponse(result.User.ToProfile()),
		AccessToken:  result.TokenPair.AccessToken,
		RefreshToken: result.TokenPair.RefreshToken,
		ExpiresAt:    result.TokenPair.ExpiresAt.Format(time.RFC3339),
	}
}

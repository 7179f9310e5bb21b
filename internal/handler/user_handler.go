package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-demo/studyhub/internal/dto/request"
	"github.com/go-demo/studyhub/internal/dto/response"
	"github.com/go-demo/studyhub/internal/middleware"
	"github.com/go-demo/studyhub/internal/pkg/utils"
	"github.com/go-demo/studyhub/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile godoc
// @Summary 取得用戶頁面
// @Description 取得用戶資料、主持的房間、訊息動態與主題清單
// @Tags 用戶
// @Accept json
// @Produce json
// @Param id path string true "用戶 ID"
// @Success 200 {object} response.Response{data=response.UserPageResponse}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.Param("id")
	if !utils.ValidateUUID(userID) {
		response.BadRequest(c, "無效的用戶 ID")
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	topics := make([]*response.TopicResponse, len(profile.Topics))
	for i, t := range profile.Topics {
		topics[i] = response.NewTopicResponse(t)
	}

	response.Success(c, &response.UserPageResponse{
		User:         response.NewProfileResponse(profile.User.ToProfile()),
		Rooms:        response.NewRoomListResponse(profile.Rooms),
		RoomMessages: response.NewFeedResponse(profile.RoomMessages),
		Topics:       topics,
	})
}

// UpdateBio godoc
// @Summary 更新自我介紹
// @Description 更新當前用戶的自我介紹
// @Tags 用戶
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.UpdateBioRequest true "自我介紹"
// @Success 200 {object} response.Response
// @Router /api/v1/users/me [put]
func (h *UserHandler) UpdateBio(c *gin.Context) {
	var req request.UpdateBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請求格式錯誤")
		return
	}

	userID := middleware.GetUserID(c)

	if err := h.userService.UpdateBio(c.Request.Context(), userID, req.Bio); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "已更新", nil)
}

// DeleteAccount godoc
// @Summary 刪除帳號
// @Description 刪除當前用戶，訊息與參與紀錄一併刪除，主持的房間保留但房主清空
// @Tags 用戶
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 204
// @Router /api/v1/users/me [delete]
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

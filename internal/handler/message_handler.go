package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-demo/studyhub/internal/dto/request"
	"github.com/go-demo/studyhub/internal/dto/response"
	"github.com/go-demo/studyhub/internal/middleware"
	apperrors "github.com/go-demo/studyhub/internal/pkg/errors"
	"github.com/go-demo/studyhub/internal/pkg/utils"
	"github.com/go-demo/studyhub/internal/service"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// Post godoc
// @Summary 發送訊息
// @Description 在房間發送訊息，發送者自動加入參與者
// @Tags 訊息
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "房間 ID"
// @Param request body request.PostMessageRequest true "訊息內容"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/rooms/{id}/messages [post]
func (h *MessageHandler) Post(c *gin.Context) {
	roomID := c.Param("id")
	if !utils.ValidateUUID(roomID) {
		response.BadRequest(c, "無效的房間 ID")
		return
	}

	var req request.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請求格式錯誤")
		return
	}

	userID := middleware.GetUserID(c)

	msg, err := h.messageService.Post(c.Request.Context(), roomID, userID, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.CreatedAt(c, fmt.Sprintf("/api/v1/rooms/%s", roomID), gin.H{
		"id":         msg.ID,
		"room_id":    msg.RoomID,
		"created_at": msg.CreatedAt.Format(time.RFC3339),
	})
}

// GetByID godoc
// @Summary 取得訊息
// @Description 取得單一訊息
// @Tags 訊息
// @Accept json
// @Produce json
// @Param id path string true "訊息 ID"
// @Success 200 {object} response.Response{data=response.MessageResponse}
// @Failure 404 {object} response.Response
// @Router /api/v1/messages/{id} [get]
func (h *MessageHandler) GetByID(c *gin.Context) {
	messageID := c.Param("id")
	if !utils.ValidateUUID(messageID) {
		response.BadRequest(c, "無效的訊息 ID")
		return
	}

	msg, err := h.messageService.GetByID(c.Request.Context(), messageID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.NewMessageResponse(msg))
}

// Delete godoc
// @Summary 刪除訊息
// @Description 刪除訊息，僅發送者可操作，不影響參與者身分
// @Tags 訊息
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "訊息 ID"
// @Success 204
// @Failure 403 {string} string "你沒有權限執行此操作"
// @Failure 404 {object} response.Response
// @Router /api/v1/messages/{id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	messageID := c.Param("id")
	if !utils.ValidateUUID(messageID) {
		response.BadRequest(c, "無效的訊息 ID")
		return
	}

	userID := middleware.GetUserID(c)

	if err := h.messageService.Delete(c.Request.Context(), messageID, userID); err != nil {
		if err == apperrors.ErrNotMessageAuthor {
			response.ForbiddenText(c)
			return
		}
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

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

type RoomHandler struct {
	roomService *service.RoomService
}

func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

// Browse godoc
// @Summary 瀏覽房間
// @Description 依關鍵字搜尋房間（比對主題、名稱、描述），同時回傳主題清單與相關訊息動態
// @Tags 房間
// @Accept json
// @Produce json
// @Param q query string false "搜尋關鍵字"
// @Success 200 {object} response.Response{data=response.BrowseResponse}
// @Router /api/v1/rooms [get]
func (h *RoomHandler) Browse(c *gin.Context) {
	var req request.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "請求格式錯誤")
		return
	}

	result, err := h.roomService.Browse(c.Request.Context(), req.Query)
	if err != nil {
		response.Error(c, err)
		return
	}

	topics := make([]*response.TopicResponse, len(result.Topics))
	for i, t := range result.Topics {
		topics[i] = response.NewTopicResponse(t)
	}

	response.Success(c, &response.BrowseResponse{
		Rooms:        response.NewRoomListResponse(result.Rooms),
		Topics:       topics,
		RoomCount:    result.RoomCount,
		RoomMessages: response.NewFeedResponse(result.RoomMessages),
	})
}

// Create godoc
// @Summary 建立房間
// @Description 以當前用戶為房主建立房間，主題不存在時自動建立
// @Tags 房間
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateRoomRequest true "房間資料"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req request.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請求格式錯誤")
		return
	}

	userID := middleware.GetUserID(c)

	// Validate room name and topic name
	v := utils.NewValidator()
	v.ValidateRoomName("name", req.Name)
	v.ValidateTopicName("topic", req.Topic)
	if v.HasErrors() {
		response.ValidationError(c, v.Errors())
		return
	}

	room, err := h.roomService.Create(c.Request.Context(), &service.CreateRoomInput{
		HostID:      userID,
		Name:        req.Name,
		TopicName:   req.Topic,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.CreatedAt(c, fmt.Sprintf("/api/v1/rooms/%s", room.ID), gin.H{
		"id":         room.ID,
		"name":       room.Name,
		"created_at": room.CreatedAt.Format(time.RFC3339),
	})
}

// GetByID godoc
// @Summary 取得房間
// @Description 取得房間詳情，含訊息（由舊到新）與參與者
// @Tags 房間
// @Accept json
// @Produce json
// @Param id path string true "房間 ID"
// @Success 200 {object} response.Response{data=response.RoomDetailResponse}
// @Failure 404 {object} response.Response
// @Router /api/v1/rooms/{id} [get]
func (h *RoomHandler) GetByID(c *gin.Context) {
	roomID := c.Param("id")
	if !utils.ValidateUUID(roomID) {
		response.BadRequest(c, "無效的房間 ID")
		return
	}

	detail, err := h.roomService.GetDetail(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.NewRoomDetailResponse(detail.Room, detail.Messages, detail.Participants))
}

// GetForEdit godoc
// @Summary 取得房間編輯資料
// @Description 取得房間的可編輯欄位，僅房主可存取
// @Tags 房間
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "房間 ID"
// @Success 200 {object} response.Response{data=response.RoomResponse}
// @Failure 403 {string} string "你沒有權限執行此操作"
// @Failure 404 {object} response.Response
// @Router /api/v1/rooms/{id}/edit [get]
func (h *RoomHandler) GetForEdit(c *gin.Context) {
	roomID := c.Param("id")
	if !utils.ValidateUUID(roomID) {
		response.BadRequest(c, "無效的房間 ID")
		return
	}

	userID := middleware.GetUserID(c)

	room, err := h.roomService.GetForEdit(c.Request.Context(), roomID, userID)
	if err != nil {
		if err == apperrors.ErrNotRoomHost {
			response.ForbiddenText(c)
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, response.NewRoomResponse(room))
}

// Update godoc
// @Summary 更新房間
// @Description 更新房間名稱、主題與描述，僅房主可操作
// @Tags 房間
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "房間 ID"
// @Param request body request.UpdateRoomRequest true "房間資料"
// @Success 200 {object} response.Response
// @Failure 403 {string} string "你沒有權限執行此操作"
// @Failure 404 {object} response.Response
// @Router /api/v1/rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	roomID := c.Param("id")
	if !utils.ValidateUUID(roomID) {
		response.BadRequest(c, "無效的房間 ID")
		return
	}

	var req request.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請求格式錯誤")
		return
	}

	userID := middleware.GetUserID(c)

	v := utils.NewValidator()
	v.ValidateRoomName("name", req.Name)
	v.ValidateTopicName("topic", req.Topic)
	if v.HasErrors() {
		response.ValidationError(c, v.Errors())
		return
	}

	room, err := h.roomService.Update(c.Request.Context(), &service.UpdateRoomInput{
		RoomID:      roomID,
		UserID:      userID,
		Name:        req.Name,
		TopicName:   req.Topic,
		Description: req.Description,
	})
	if err != nil {
		if err == apperrors.ErrNotRoomHost {
			response.ForbiddenText(c)
			return
		}
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "房間已更新", gin.H{
		"id":         room.ID,
		"name":       room.Name,
		"updated_at": room.UpdatedAt.Format(time.RFC3339),
	})
}

// Delete godoc
// @Summary 刪除房間
// @Description 刪除房間及其所有訊息與參與紀錄，僅房主可操作
// @Tags 房間
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "房間 ID"
// @Success 204
// @Failure 403 {string} string "你沒有權限執行此操作"
// @Failure 404 {object} response.Response
// @Router /api/v1/rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	roomID := c.Param("id")
	if !utils.ValidateUUID(roomID) {
		response.BadRequest(c, "無效的房間 ID")
		return
	}

	userID := middleware.GetUserID(c)

	if err := h.roomService.Delete(c.Request.Context(), roomID, userID); err != nil {
		if err == apperrors.ErrNotRoomHost {
			response.ForbiddenText(c)
			return
		}
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

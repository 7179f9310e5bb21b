package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-demo/studyhub/internal/dto/request"
	"github.com/go-demo/studyhub/internal/dto/response"
	"github.com/go-demo/studyhub/internal/service"
)

type TopicHandler struct {
	topicService *service.TopicService
}

func NewTopicHandler(topicService *service.TopicService) *TopicHandler {
	return &TopicHandler{
		topicService: topicService,
	}
}

// Search godoc
// @Summary 搜尋主題
// @Description 依關鍵字搜尋主題並附上各主題的房間數，空關鍵字列出全部
// @Tags 主題
// @Accept json
// @Produce json
// @Param q query string false "搜尋關鍵字"
// @Success 200 {object} response.Response{data=[]response.TopicWithCountResponse}
// @Router /api/v1/topics [get]
func (h *TopicHandler) Search(c *gin.Context) {
	var req request.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "請求格式錯誤")
		return
	}

	topics, err := h.topicService.Search(c.Request.Context(), req.Query)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]*response.TopicWithCountResponse, len(topics))
	for i, t := range topics {
		out[i] = response.NewTopicWithCountResponse(t)
	}

	response.Success(c, out)
}

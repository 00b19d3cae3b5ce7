package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"netqa-go/internal/service"
)

// HotQuestionHandler 提供热门问题列表与点击记录。
type HotQuestionHandler struct {
	hotQuestionService service.HotQuestionService
}

func NewHotQuestionHandler(hotQuestionService service.HotQuestionService) *HotQuestionHandler {
	return &HotQuestionHandler{hotQuestionService: hotQuestionService}
}

func (h *HotQuestionHandler) List(c *gin.Context) {
	respond(c, http.StatusOK, "success", h.hotQuestionService.List(c.Request.Context()))
}

func (h *HotQuestionHandler) Click(c *gin.Context) {
	q, err := h.hotQuestionService.Click(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "HotQuestionClick", err)
		return
	}
	respond(c, http.StatusOK, "success", gin.H{"question_id": q.ID, "count": q.Count})
}

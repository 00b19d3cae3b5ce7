package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"netqa-go/internal/service"
	"netqa-go/pkg/log"
)

// FeedbackHandler 处理反馈、统计以及问题与解答的查询。
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// CreateFeedbackRequest 是提交反馈的请求体，不允许出现未知字段。
type CreateFeedbackRequest struct {
	UserID     string  `json:"user_id" binding:"required"`
	SolutionID string  `json:"solution_id" binding:"required"`
	Rating     int     `json:"rating" binding:"required,min=1,max=5"`
	Comment    *string `json:"comment"`
}

// UpdateStatusRequest 是修改反馈状态的请求体。
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *FeedbackHandler) Create(c *gin.Context) {
	var req CreateFeedbackRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(c, "CreateFeedback", err)
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		badRequest(c, "CreateFeedback", err)
		return
	}

	f, err := h.feedbackService.Create(c.Request.Context(), req.UserID, req.SolutionID, req.Rating, req.Comment)
	if err != nil {
		respondError(c, "CreateFeedback", err)
		return
	}
	respond(c, http.StatusCreated, "Feedback created successfully", f)
}

func (h *FeedbackHandler) List(c *gin.Context) {
	skip, limit := pagination(c, 10, 100)
	list, err := h.feedbackService.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, "ListFeedbacks", err)
		return
	}
	respond(c, http.StatusOK, "success", list)
}

func (h *FeedbackHandler) Stats(c *gin.Context) {
	stats, err := h.feedbackService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, "FeedbackStats", err)
		return
	}
	respond(c, http.StatusOK, "success", stats)
}

func (h *FeedbackHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "UpdateFeedbackStatus", err)
		return
	}

	id := c.Param("id")
	if err := h.feedbackService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, "UpdateFeedbackStatus", err)
		return
	}
	log.Infof("Feedback '%s' status changed to '%s'", id, req.Status)
	respond(c, http.StatusOK, "success", gin.H{"feedback_id": id, "status": req.Status})
}

func (h *FeedbackHandler) QuestionCategories(c *gin.Context) {
	categories, err := h.feedbackService.QuestionCategories(c.Request.Context())
	if err != nil {
		respondError(c, "QuestionCategories", err)
		return
	}
	respond(c, http.StatusOK, "success", categories)
}

func (h *FeedbackHandler) GetQuestion(c *gin.Context) {
	q, err := h.feedbackService.GetQuestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "GetQuestion", err)
		return
	}
	respond(c, http.StatusOK, "success", q)
}

func (h *FeedbackHandler) GetSolution(c *gin.Context) {
	s, err := h.feedbackService.GetSolution(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "GetSolution", err)
		return
	}
	respond(c, http.StatusOK, "success", s)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"netqa-go/internal/service"
)

// KnowledgeHandler 处理协议、知识条目以及解答引用。
type KnowledgeHandler struct {
	knowledgeService service.KnowledgeService
}

func NewKnowledgeHandler(knowledgeService service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{knowledgeService: knowledgeService}
}

type CreateProtocolRequest struct {
	Name      string  `json:"name" binding:"required"`
	RFCNumber *string `json:"rfc_number"`
}

type CreateKnowledgeRequest struct {
	ProtocolID *string `json:"protocol_id"`
	Content    string  `json:"content" binding:"required"`
	Source     *string `json:"source"`
}

type LinkReferenceRequest struct {
	KnowledgeID string `json:"knowledge_id" binding:"required"`
}

func (h *KnowledgeHandler) CreateProtocol(c *gin.Context) {
	var req CreateProtocolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "CreateProtocol", err)
		return
	}
	p, err := h.knowledgeService.CreateProtocol(c.Request.Context(), req.Name, req.RFCNumber)
	if err != nil {
		respondError(c, "CreateProtocol", err)
		return
	}
	respond(c, http.StatusCreated, "success", p)
}

func (h *KnowledgeHandler) ListProtocols(c *gin.Context) {
	skip, limit := pagination(c, 100, 100)
	list, err := h.knowledgeService.ListProtocols(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, "ListProtocols", err)
		return
	}
	respond(c, http.StatusOK, "success", list)
}

func (h *KnowledgeHandler) GetProtocol(c *gin.Context) {
	p, err := h.knowledgeService.GetProtocol(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "GetProtocol", err)
		return
	}
	respond(c, http.StatusOK, "success", p)
}

func (h *KnowledgeHandler) CreateKnowledge(c *gin.Context) {
	var req CreateKnowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "CreateKnowledge", err)
		return
	}
	k, err := h.knowledgeService.CreateKnowledge(c.Request.Context(), req.ProtocolID, req.Content, req.Source)
	if err != nil {
		respondError(c, "CreateKnowledge", err)
		return
	}
	respond(c, http.StatusCreated, "success", k)
}

func (h *KnowledgeHandler) GetKnowledge(c *gin.Context) {
	k, err := h.knowledgeService.GetKnowledge(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "GetKnowledge", err)
		return
	}
	respond(c, http.StatusOK, "success", k)
}

// SearchKnowledge 按关键字检索知识条目，size 默认 10，最大 50。
func (h *KnowledgeHandler) SearchKnowledge(c *gin.Context) {
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		size = 10
	}
	if size > 50 {
		size = 50
	}

	list, err := h.knowledgeService.SearchKnowledge(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		respondError(c, "SearchKnowledge", err)
		return
	}
	respond(c, http.StatusOK, "success", list)
}

// LinkReference 为解答添加一条引用的知识。
func (h *KnowledgeHandler) LinkReference(c *gin.Context) {
	var req LinkReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "LinkReference", err)
		return
	}
	solutionID := c.Param("id")
	if err := h.knowledgeService.LinkSolutionKnowledge(c.Request.Context(), solutionID, req.KnowledgeID); err != nil {
		respondError(c, "LinkReference", err)
		return
	}
	respond(c, http.StatusOK, "success", gin.H{"solution_id": solutionID, "knowledge_id": req.KnowledgeID})
}

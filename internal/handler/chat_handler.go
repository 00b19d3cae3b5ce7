package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"netqa-go/internal/middleware"
	"netqa-go/internal/service"
)

// ChatHandler 负责处理提问请求。
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest 是 JSON 形式的提问请求体。
type ChatRequest struct {
	Content string `json:"content"`
}

// Ask 接收 JSON 或 multipart 表单形式的问题，返回回答以及问题、解答的 ID。
func (h *ChatHandler) Ask(c *gin.Context) {
	cred, ok := middleware.CredentialFrom(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	req := service.ChatRequest{User: cred.User}
	if strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			badRequest(c, "Chat", err)
			return
		}
		if values := form.Value["content"]; len(values) > 0 {
			req.Content = values[0]
		}
		for _, fh := range form.File["files"] {
			req.Attachments = append(req.Attachments, attachmentFromHeader(fh))
		}
	} else {
		var body ChatRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, "Chat", err)
			return
		}
		req.Content = body.Content
	}

	result, err := h.chatService.Ask(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Chat", err)
		return
	}
	respond(c, http.StatusOK, "success", result)
}

func attachmentFromHeader(fh *multipart.FileHeader) service.Attachment {
	return service.Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

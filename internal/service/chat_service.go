package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"netqa-go/internal/model"
	"netqa-go/internal/repository"
	"netqa-go/pkg/apperrors"
	"netqa-go/pkg/log"
	"netqa-go/pkg/storage"
)

// ErrContentRequired 表示提问内容缺失或为空白。
var ErrContentRequired = fmt.Errorf("%w: content is required", apperrors.ErrBadRequest)

// Attachment 是随问题上传的一个文件，Open 由调用方提供。
type Attachment struct {
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// ChatRequest 是已通过认证与解析的一次提问。
type ChatRequest struct {
	User        *model.User
	Content     string
	Attachments []Attachment
}

// ChatResult 是提问成功后的响应。
type ChatResult struct {
	Content    string  `json:"content"`
	SolutionID string  `json:"solution_id"`
	QuestionID string  `json:"question_id"`
	UserID     string  `json:"user_id"`
	ImageURL   *string `json:"image_url"`
	FileURL    *string `json:"file_url"`
	FileName   *string `json:"file_name"`
}

// ChatService 定义了提问-回答流程。
type ChatService interface {
	Ask(ctx context.Context, req ChatRequest) (*ChatResult, error)
}

type chatService struct {
	store   storage.AttachmentStore
	answers AnswerProvider
	ledger  repository.LedgerRepository
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(store storage.AttachmentStore, answers AnswerProvider, ledger repository.LedgerRepository) ChatService {
	return &chatService{
		store:   store,
		answers: answers,
		ledger:  ledger,
	}
}

// Ask 依次保存附件、生成回答、在一个事务中写入问题与解答。
func (s *chatService) Ask(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	if req.User == nil {
		return nil, ErrUnknownSubject
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrContentRequired
	}

	// 1. 保存附件：只保留第一张图片和第一个非图片文件
	refs, err := s.persistAttachments(ctx, req.Attachments)
	if err != nil {
		return nil, err
	}

	// 2. 生成回答（失败时自动使用兜底模板）
	answer := s.answers.Answer(ctx, req.Content)

	// 3. 写入问题与解答
	question := &model.Question{
		QuestionID: uuid.NewString(),
		UserID:     req.User.UserID,
		Content:    req.Content,
		ImageURL:   refs.imageURL,
		FileURL:    refs.fileURL,
		FileName:   refs.fileName,
		AskTime:    time.Now(),
	}
	solution := &model.Solution{
		SolutionID:      uuid.NewString(),
		Steps:           answer.Text,
		ConfidenceScore: answer.Confidence,
		CreatedAt:       time.Now(),
	}
	if err := s.ledger.CreateQuestionWithSolution(ctx, question, solution); err != nil {
		return nil, fmt.Errorf("persist question and solution: %w", err)
	}

	log.Infow("[ChatService] question answered",
		"userId", req.User.UserID,
		"questionId", question.QuestionID,
		"solutionId", solution.SolutionID,
		"source", string(answer.Source),
	)

	return &ChatResult{
		Content:    answer.Text,
		SolutionID: solution.SolutionID,
		QuestionID: question.QuestionID,
		UserID:     req.User.UserID,
		ImageURL:   refs.imageURL,
		FileURL:    refs.fileURL,
		FileName:   refs.fileName,
	}, nil
}

type attachmentRefs struct {
	imageURL *string
	fileURL  *string
	fileName *string
}

func (s *chatService) persistAttachments(ctx context.Context, attachments []Attachment) (attachmentRefs, error) {
	var refs attachmentRefs
	for _, att := range attachments {
		isImage := storage.IsImage(att.ContentType)
		if (isImage && refs.imageURL != nil) || (!isImage && refs.fileURL != nil) {
			log.Infof("[ChatService] extra attachment ignored: %s", att.Filename)
			continue
		}

		ref, err := s.saveAttachment(ctx, att)
		if err != nil {
			return attachmentRefs{}, err
		}
		if isImage {
			refs.imageURL = &ref
		} else {
			name := att.Filename
			refs.fileURL = &ref
			refs.fileName = &name
		}
	}
	return refs, nil
}

func (s *chatService) saveAttachment(ctx context.Context, att Attachment) (string, error) {
	rc, err := att.Open()
	if err != nil {
		return "", fmt.Errorf("open attachment %q: %w", att.Filename, err)
	}
	defer rc.Close()

	ref, err := s.store.Save(ctx, rc, att.Filename, att.ContentType)
	if err != nil {
		return "", fmt.Errorf("store attachment %q: %w", att.Filename, err)
	}
	return ref, nil
}

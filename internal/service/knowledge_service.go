package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netqa-go/internal/model"
	"netqa-go/internal/repository"
	"netqa-go/pkg/apperrors"
	"netqa-go/pkg/log"
)

var (
	ErrProtocolNotFound  = fmt.Errorf("%w: protocol not found", apperrors.ErrNotFound)
	ErrKnowledgeNotFound = fmt.Errorf("%w: knowledge not found", apperrors.ErrNotFound)
	ErrEmptyQuery        = fmt.Errorf("%w: q is required", apperrors.ErrBadRequest)
)

// KnowledgeIndex 是知识全文索引，由 pkg/es.KnowledgeIndex 实现。
type KnowledgeIndex interface {
	Index(ctx context.Context, doc model.KnowledgeDocument) error
	Search(ctx context.Context, query string, size int) ([]string, error)
}

// KnowledgeService 管理协议与知识条目，以及解答对知识的引用。
type KnowledgeService interface {
	CreateProtocol(ctx context.Context, name string, rfcNumber *string) (*model.Protocol, error)
	GetProtocol(ctx context.Context, protocolID string) (*model.Protocol, error)
	ListProtocols(ctx context.Context, skip, limit int) ([]model.Protocol, error)

	CreateKnowledge(ctx context.Context, protocolID *string, content string, source *string) (*model.Knowledge, error)
	GetKnowledge(ctx context.Context, knowledgeID string) (*model.Knowledge, error)
	SearchKnowledge(ctx context.Context, query string, size int) ([]model.Knowledge, error)

	LinkSolutionKnowledge(ctx context.Context, solutionID, knowledgeID string) error
}

type knowledgeService struct {
	protocolRepo  repository.ProtocolRepository
	knowledgeRepo repository.KnowledgeRepository
	ledger        repository.LedgerRepository
	index         KnowledgeIndex
}

// NewKnowledgeService 创建服务。index 为 nil 时检索只走数据库。
func NewKnowledgeService(protocolRepo repository.ProtocolRepository, knowledgeRepo repository.KnowledgeRepository, ledger repository.LedgerRepository, index KnowledgeIndex) KnowledgeService {
	return &knowledgeService{
		protocolRepo:  protocolRepo,
		knowledgeRepo: knowledgeRepo,
		ledger:        ledger,
		index:         index,
	}
}

func (s *knowledgeService) CreateProtocol(ctx context.Context, name string, rfcNumber *string) (*model.Protocol, error) {
	p := &model.Protocol{
		ProtocolID: uuid.NewString(),
		Name:       name,
		RFCNumber:  rfcNumber,
	}
	if err := s.protocolRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *knowledgeService) GetProtocol(ctx context.Context, protocolID string) (*model.Protocol, error) {
	p, err := s.protocolRepo.FindByID(ctx, protocolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProtocolNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *knowledgeService) ListProtocols(ctx context.Context, skip, limit int) ([]model.Protocol, error) {
	return s.protocolRepo.List(ctx, skip, limit)
}

// CreateKnowledge 写入知识条目，随后尽力写入全文索引；索引失败不影响创建结果。
func (s *knowledgeService) CreateKnowledge(ctx context.Context, protocolID *string, content string, source *string) (*model.Knowledge, error) {
	k := &model.Knowledge{
		KnowledgeID: uuid.NewString(),
		ProtocolID:  protocolID,
		Content:     content,
		Source:      source,
	}
	if err := s.knowledgeRepo.Create(ctx, k); err != nil {
		return nil, err
	}

	if s.index != nil {
		if err := s.index.Index(ctx, model.NewKnowledgeDocument(k)); err != nil {
			log.Warnw("[KnowledgeService] index knowledge failed", "knowledgeId", k.KnowledgeID, "error", err)
		}
	}
	return k, nil
}

func (s *knowledgeService) GetKnowledge(ctx context.Context, knowledgeID string) (*model.Knowledge, error) {
	k, err := s.knowledgeRepo.FindByID(ctx, knowledgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKnowledgeNotFound
		}
		return nil, err
	}
	return k, nil
}

// SearchKnowledge 优先使用全文索引，索引不可用或出错时退回数据库子串匹配。
func (s *knowledgeService) SearchKnowledge(ctx context.Context, query string, size int) ([]model.Knowledge, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if s.index != nil {
		ids, err := s.index.Search(ctx, query, size)
		if err == nil {
			return s.knowledgeRepo.FindByIDs(ctx, ids)
		}
		log.Warnw("[KnowledgeService] index search failed, falling back to database", "error", err)
	}
	return s.knowledgeRepo.SearchContent(ctx, query, size)
}

func (s *knowledgeService) LinkSolutionKnowledge(ctx context.Context, solutionID, knowledgeID string) error {
	return s.ledger.LinkKnowledge(ctx, solutionID, knowledgeID)
}

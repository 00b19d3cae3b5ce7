package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"netqa-go/internal/model"
)

// KnowledgeRepository 定义了知识条目的持久化操作。
type KnowledgeRepository interface {
	// Create 写入知识条目；指定的 protocol 不存在时返回 *apperrors.ReferenceNotFoundError。
	Create(ctx context.Context, k *model.Knowledge) error
	FindByID(ctx context.Context, knowledgeID string) (*model.Knowledge, error)
	// FindByIDs 按传入 ID 的顺序返回存在的条目。
	FindByIDs(ctx context.Context, ids []string) ([]model.Knowledge, error)
	SearchContent(ctx context.Context, query string, limit int) ([]model.Knowledge, error)
}

type knowledgeRepository struct {
	db *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) KnowledgeRepository {
	return &knowledgeRepository{db: db}
}

func (r *knowledgeRepository) Create(ctx context.Context, k *model.Knowledge) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if k.ProtocolID != nil {
			if err := requireExists(tx, &model.Protocol{}, "protocol_id", "protocol", *k.ProtocolID); err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Create(k).Error
	})
}

func (r *knowledgeRepository) FindByID(ctx context.Context, knowledgeID string) (*model.Knowledge, error) {
	var k model.Knowledge
	if err := r.db.WithContext(ctx).Where("knowledge_id = ?", knowledgeID).First(&k).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *knowledgeRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Knowledge, error) {
	if len(ids) == 0 {
		return []model.Knowledge{}, nil
	}
	var found []model.Knowledge
	if err := r.db.WithContext(ctx).Where("knowledge_id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]model.Knowledge, len(found))
	for _, k := range found {
		byID[k.KnowledgeID] = k
	}
	ordered := make([]model.Knowledge, 0, len(found))
	for _, id := range ids {
		if k, ok := byID[id]; ok {
			ordered = append(ordered, k)
		}
	}
	return ordered, nil
}

// SearchContent 使用 LIKE 做子串匹配，作为全文索引不可用时的兜底。
func (r *knowledgeRepository) SearchContent(ctx context.Context, query string, limit int) ([]model.Knowledge, error) {
	escaped := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(query)
	var results []model.Knowledge
	err := r.db.WithContext(ctx).
		Where("content LIKE ? ESCAPE '!'", "%"+escaped+"%").
		Order("update_time DESC, knowledge_id ASC").
		Limit(limit).
		Find(&results).Error
	return results, err
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"netqa-go/internal/model"
)

// ProtocolRepository 定义了协议参考数据的持久化操作。
type ProtocolRepository interface {
	Create(ctx context.Context, p *model.Protocol) error
	FindByID(ctx context.Context, protocolID string) (*model.Protocol, error)
	List(ctx context.Context, offset, limit int) ([]model.Protocol, error)
}

type protocolRepository struct {
	db *gorm.DB
}

func NewProtocolRepository(db *gorm.DB) ProtocolRepository {
	return &protocolRepository{db: db}
}

func (r *protocolRepository) Create(ctx context.Context, p *model.Protocol) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *protocolRepository) FindByID(ctx context.Context, protocolID string) (*model.Protocol, error) {
	var p model.Protocol
	if err := r.db.WithContext(ctx).Where("protocol_id = ?", protocolID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *protocolRepository) List(ctx context.Context, offset, limit int) ([]model.Protocol, error) {
	var protocols []model.Protocol
	err := r.db.WithContext(ctx).Order("name ASC, protocol_id ASC").Offset(offset).Limit(limit).Find(&protocols).Error
	return protocols, err
}

package implementation

import (
	"context"
	"errors"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShareSnapshotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ShareSnapshotMapper
}

func NewShareSnapshotRepository(db *gorm.DB) contract.ShareSnapshotRepository {
	return &ShareSnapshotRepositoryImpl{
		db:     db,
		mapper: mapper.NewShareSnapshotMapper(),
	}
}

func (r *ShareSnapshotRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ShareSnapshotRepositoryImpl) Create(ctx context.Context, snapshot *entity.ShareSnapshot) error {
	m := r.mapper.ToModel(snapshot)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*snapshot = *r.mapper.ToEntity(m)
	return nil
}

func (r *ShareSnapshotRepositoryImpl) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ShareSnapshot{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *ShareSnapshotRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ShareSnapshot, error) {
	var m model.ShareSnapshot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ShareSnapshotRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ShareSnapshot{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

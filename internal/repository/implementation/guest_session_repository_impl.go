package implementation

import (
	"context"
	"errors"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuestSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GuestSessionMapper
}

func NewGuestSessionRepository(db *gorm.DB) contract.GuestSessionRepository {
	return &GuestSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewGuestSessionMapper(),
	}
}

func (r *GuestSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GuestSessionRepositoryImpl) Create(ctx context.Context, session *entity.GuestSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *GuestSessionRepositoryImpl) Update(ctx context.Context, session *entity.GuestSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *GuestSessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GuestSession{}, id).Error
}

func (r *GuestSessionRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.GuestSession{})
	return res.RowsAffected, res.Error
}

func (r *GuestSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GuestSession, error) {
	var m model.GuestSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GuestSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GuestSession, error) {
	var models []*model.GuestSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.GuestSession, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *GuestSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GuestSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MatheusOtenio/Pink-Note/internal/entity"
	"github.com/MatheusOtenio/Pink-Note/internal/pkg/apperrors"
)

type IEventRepository interface {
	UsingTx(ctx context.Context, tx *gorm.DB) IEventRepository
	Create(ctx context.Context, event *entity.Event) error
	GetById(ctx context.Context, id entity.EventId) (*entity.Event, error)
	GetByDate(ctx context.Context, date entity.DateKey) ([]*entity.Event, error)
	GetBetween(ctx context.Context, dates entity.DateRange) ([]*entity.Event, error)
	GetDatesBetween(ctx context.Context, dates entity.DateRange) ([]entity.DateKey, error)
	Update(ctx context.Context, event *entity.Event) error
	DeleteById(ctx context.Context, id entity.EventId) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) IEventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) UsingTx(ctx context.Context, tx *gorm.DB) IEventRepository {
	return &eventRepository{db: tx}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) GetById(ctx context.Context, id entity.EventId) (*entity.Event, error) {
	var event entity.Event
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) GetByDate(ctx context.Context, date entity.DateKey) ([]*entity.Event, error) {
	var events []*entity.Event
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) GetBetween(ctx context.Context, dates entity.DateRange) ([]*entity.Event, error) {
	var events []*entity.Event
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", dates.Start, dates.End).
		Order("date ASC, created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// GetDatesBetween is the calendar's date index: every distinct date in the
// range with at least one event, in chronological order.
func (r *eventRepository) GetDatesBetween(ctx context.Context, dates entity.DateRange) ([]entity.DateKey, error) {
	var result []entity.DateKey
	err := r.db.WithContext(ctx).
		Raw("SELECT DISTINCT date FROM events WHERE date BETWEEN ? AND ? ORDER BY date ASC", dates.Start, dates.End).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) DeleteById(ctx context.Context, id entity.EventId) error {
	return r.db.WithContext(ctx).Delete(&entity.Event{}, "id = ?", id).Error
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"vtcal/internal/model"
)

// EventRepository defines calendar event persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Upsert(ctx context.Context, event *model.Event) error
	ListByUser(ctx context.Context, userID uint) ([]model.Event, error)
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id, userID uint) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// Upsert replaces a synced event matching (user, source, title, due date) or
// creates it. Re-linking an account therefore refreshes rows instead of
// duplicating them.
func (r *eventRepository) Upsert(ctx context.Context, event *model.Event) error {
	var existing model.Event
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND source = ? AND title = ? AND due_date = ?",
			event.UserID, event.Source, event.Title, event.DueDate).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(event).Error
	}
	if err != nil {
		return err
	}

	event.ID = existing.ID
	event.Completed = existing.Completed
	event.ReminderSent = existing.ReminderSent
	return r.db.WithContext(ctx).Save(event).Error
}

// ListByUser returns the user's events in ascending due-date order.
func (r *eventRepository) ListByUser(ctx context.Context, userID uint) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Event{}).Error
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"vtcal/internal/cache"
	"vtcal/internal/model"
	"vtcal/internal/repository"
)

const eventsCacheTTL = 5 * time.Minute

// ErrEventNotFound is returned when an event does not exist for the user.
var ErrEventNotFound = errors.New("Event not found")

// CalendarService handles event listing and manual event management.
type CalendarService interface {
	ListEvents(ctx context.Context, userID uint) ([]model.Event, error)
	AddEvent(ctx context.Context, userID uint, title, description string, dueDate time.Time) (uint, error)
	UpdateEvent(ctx context.Context, userID, eventID uint, title, description string, dueDate time.Time, completed bool) error
	DeleteEvent(ctx context.Context, userID, eventID uint) error
	ListCourses(ctx context.Context, userID uint) ([]model.Course, error)
}

type calendarService struct {
	eventRepo  repository.EventRepository
	courseRepo repository.CourseRepository
	cache      *cache.Client
}

// NewCalendarService creates a new calendar service.
func NewCalendarService(eventRepo repository.EventRepository, courseRepo repository.CourseRepository, cache *cache.Client) CalendarService {
	return &calendarService{
		eventRepo:  eventRepo,
		courseRepo: courseRepo,
		cache:      cache,
	}
}

func eventsCacheKey(userID uint) string {
	return fmt.Sprintf("events:%d", userID)
}

// ListEvents returns the user's events in ascending due-date order, serving
// from the cache when possible.
func (s *calendarService) ListEvents(ctx context.Context, userID uint) ([]model.Event, error) {
	if data, _ := s.cache.Get(ctx, eventsCacheKey(userID)); data != nil {
		var cached []model.Event
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	events, err := s.eventRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	if payload, err := json.Marshal(events); err == nil {
		_ = s.cache.Set(ctx, eventsCacheKey(userID), payload, eventsCacheTTL)
	}
	return events, nil
}

// AddEvent creates a manual event and returns its id.
func (s *calendarService) AddEvent(ctx context.Context, userID uint, title, description string, dueDate time.Time) (uint, error) {
	event := &model.Event{
		UserID:      userID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Source:      model.SourceManual,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return 0, fmt.Errorf("create event: %w", err)
	}

	_ = s.cache.Delete(ctx, eventsCacheKey(userID))
	return event.ID, nil
}

// UpdateEvent replaces an event's editable fields, scoped to the owning user.
func (s *calendarService) UpdateEvent(ctx context.Context, userID, eventID uint, title, description string, dueDate time.Time, completed bool) error {
	event, err := s.eventRepo.FindByIDAndUser(ctx, eventID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrEventNotFound
		}
		return fmt.Errorf("find event: %w", err)
	}

	event.Title = title
	event.Description = description
	event.DueDate = dueDate
	event.Completed = completed
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	_ = s.cache.Delete(ctx, eventsCacheKey(userID))
	return nil
}

// DeleteEvent removes an event, scoped to the owning user.
func (s *calendarService) DeleteEvent(ctx context.Context, userID, eventID uint) error {
	if _, err := s.eventRepo.FindByIDAndUser(ctx, eventID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrEventNotFound
		}
		return fmt.Errorf("find event: %w", err)
	}
	if err := s.eventRepo.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	_ = s.cache.Delete(ctx, eventsCacheKey(userID))
	return nil
}

// ListCourses returns the user's linked courses ordered by name.
func (s *calendarService) ListCourses(ctx context.Context, userID uint) ([]model.Course, error) {
	courses, err := s.courseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

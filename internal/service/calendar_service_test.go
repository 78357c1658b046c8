package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vtcal/internal/cache"
	"vtcal/internal/model"
)

func TestCalendarService_ListEvents(t *testing.T) {
	mockEvents := new(MockEventRepository)
	expected := []model.Event{
		{ID: 1, UserID: 1, Title: "Homework 1", DueDate: due(3)},
		{ID: 2, UserID: 1, Title: "Project 1", DueDate: due(10)},
	}
	mockEvents.On("ListByUser", mock.Anything, uint(1)).Return(expected, nil)

	svc := NewCalendarService(mockEvents, new(MockCourseRepository), (*cache.Client)(nil))
	events, err := svc.ListEvents(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, expected, events)
	mockEvents.AssertExpectations(t)
}

func TestCalendarService_AddEventForcesManualSource(t *testing.T) {
	mockEvents := new(MockEventRepository)
	mockEvents.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
		return e.UserID == 1 && e.Source == model.SourceManual && e.Title == "Study session"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Event).ID = 42
	}).Return(nil)

	svc := NewCalendarService(mockEvents, new(MockCourseRepository), (*cache.Client)(nil))
	id, err := svc.AddEvent(context.Background(), 1, "Study session", "McBryde 106", due(4))

	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	mockEvents.AssertExpectations(t)
}

func TestCalendarService_UpdateEvent(t *testing.T) {
	t.Run("updates fields in place", func(t *testing.T) {
		mockEvents := new(MockEventRepository)
		mockEvents.On("FindByIDAndUser", mock.Anything, uint(7), uint(1)).Return(&model.Event{
			ID: 7, UserID: 1, Title: "Old title", Source: model.SourceManual,
		}, nil)
		mockEvents.On("Update", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
			return e.ID == 7 && e.Title == "New title" && e.Completed
		})).Return(nil)

		svc := NewCalendarService(mockEvents, new(MockCourseRepository), (*cache.Client)(nil))
		err := svc.UpdateEvent(context.Background(), 1, 7, "New title", "", due(6), true)

		assert.NoError(t, err)
		mockEvents.AssertExpectations(t)
	})

	t.Run("another user's event reads as missing", func(t *testing.T) {
		mockEvents := new(MockEventRepository)
		mockEvents.On("FindByIDAndUser", mock.Anything, uint(7), uint(2)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewCalendarService(mockEvents, new(MockCourseRepository), (*cache.Client)(nil))
		err := svc.UpdateEvent(context.Background(), 2, 7, "Hijack", "", due(6), false)

		assert.Equal(t, ErrEventNotFound, err)
		mockEvents.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCalendarService_DeleteEvent(t *testing.T) {
	t.Run("deletes an owned event", func(t *testing.T) {
		mockEvents := new(MockEventRepository)
		mockEvents.On("FindByIDAndUser", mock.Anything, uint(9), uint(1)).Return(&model.Event{ID: 9, UserID: 1}, nil)
		mockEvents.On("Delete", mock.Anything, uint(9), uint(1)).Return(nil)

		svc := NewCalendarService(mockEvents, new(MockCourseRepository), (*cache.Client)(nil))
		assert.NoError(t, svc.DeleteEvent(context.Background(), 1, 9))
		mockEvents.AssertExpectations(t)
	})

	t.Run("missing event", func(t *testing.T) {
		mockEvents := new(MockEventRepository)
		mockEvents.On("FindByIDAndUser", mock.Anything, uint(9), uint(1)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewCalendarService(mockEvents, new(MockCourseRepository), (*cache.Client)(nil))
		assert.Equal(t, ErrEventNotFound, svc.DeleteEvent(context.Background(), 1, 9))
	})
}

func TestCalendarService_ListCourses(t *testing.T) {
	mockCourses := new(MockCourseRepository)
	expected := []model.Course{{ID: 1, UserID: 1, CourseID: "101", CourseName: "Data Structures"}}
	mockCourses.On("ListByUser", mock.Anything, uint(1)).Return(expected, nil)

	svc := NewCalendarService(new(MockEventRepository), mockCourses, (*cache.Client)(nil))
	courses, err := svc.ListCourses(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, expected, courses)
}

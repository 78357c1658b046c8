package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vtcal/internal/cache"
	"vtcal/internal/model"
	"vtcal/internal/provider"
)

// stubProvider is a scripted provider: fixed containers, per-container items
// or failures.
type stubProvider struct {
	name       string
	containers []provider.Container
	items      map[string][]provider.Item
	itemErrs   map[string]error
	listErr    error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Containers(ctx context.Context, token string) ([]provider.Container, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.containers, nil
}

func (s *stubProvider) Items(ctx context.Context, token string, c provider.Container) ([]provider.Item, error) {
	if err := s.itemErrs[c.ID]; err != nil {
		return nil, err
	}
	return s.items[c.ID], nil
}

func due(day int) time.Time {
	return time.Date(2026, 9, day, 23, 59, 0, 0, time.UTC)
}

func TestLinkService_CanvasSyncUpsertsCoursesAndEvents(t *testing.T) {
	mockCourses := new(MockCourseRepository)
	mockEvents := new(MockEventRepository)
	mockAccounts := new(MockAccountRepository)

	mockCourses.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Course")).Return(nil).Twice()
	mockEvents.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Event")).Return(nil).Times(3)
	mockAccounts.On("Upsert", mock.Anything, mock.MatchedBy(func(a *model.ConnectedAccount) bool {
		return a.UserID == 1 && a.AccountType == model.SourceCanvas && a.AccessToken == "canvas-token"
	})).Return(nil)

	p := &stubProvider{
		name: model.SourceCanvas,
		containers: []provider.Container{
			{ID: "101", Name: "Data Structures", Code: "CS2114"},
			{ID: "202", Name: "Operating Systems", Code: "CS3214"},
		},
		items: map[string][]provider.Item{
			"101": {
				{Title: "Homework 1", DueAt: due(3)},
				{Title: "Project 1", DueAt: due(10)},
			},
			"202": {
				{Title: "Malloc lab", DueAt: due(17)},
			},
		},
	}

	svc := NewLinkService(mockCourses, mockEvents, mockAccounts, (*cache.Client)(nil))
	result, err := svc.LinkAccount(context.Background(), 1, "canvas-token", p)

	require.NoError(t, err)
	assert.Equal(t, 2, result.CoursesLinked)
	assert.Equal(t, 3, result.SyncedCount)
	mockCourses.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
	mockAccounts.AssertExpectations(t)
}

func TestLinkService_OneFailingContainerDoesNotAbortTheRest(t *testing.T) {
	mockCourses := new(MockCourseRepository)
	mockEvents := new(MockEventRepository)
	mockAccounts := new(MockAccountRepository)

	mockCourses.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Course")).Return(nil)
	mockEvents.On("Upsert", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
		return e.CanvasCourseID == "303"
	})).Return(nil)
	mockAccounts.On("Upsert", mock.Anything, mock.AnythingOfType("*model.ConnectedAccount")).Return(nil)

	p := &stubProvider{
		name: model.SourceCanvas,
		containers: []provider.Container{
			{ID: "101", Name: "Broken Course"},
			{ID: "303", Name: "Healthy Course"},
		},
		items: map[string][]provider.Item{
			"303": {{Title: "Quiz 1", DueAt: due(5)}},
		},
		itemErrs: map[string]error{
			"101": errors.New("remote returned status 500"),
		},
	}

	svc := NewLinkService(mockCourses, mockEvents, mockAccounts, (*cache.Client)(nil))
	result, err := svc.LinkAccount(context.Background(), 1, "canvas-token", p)

	// the overall link call still succeeds
	require.NoError(t, err)
	assert.Equal(t, 2, result.CoursesLinked)
	assert.Equal(t, 1, result.SyncedCount)
	mockEvents.AssertExpectations(t)
}

func TestLinkService_ContainerListingFailureAbortsTheRun(t *testing.T) {
	mockAccounts := new(MockAccountRepository)

	p := &stubProvider{
		name:    model.SourceCanvas,
		listErr: errors.New("remote returned status 401"),
	}

	svc := NewLinkService(new(MockCourseRepository), new(MockEventRepository), mockAccounts, (*cache.Client)(nil))
	_, err := svc.LinkAccount(context.Background(), 1, "bad-token", p)

	assert.Error(t, err)
	// credentials are not recorded for a run that never synced
	mockAccounts.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestLinkService_GoogleSyncSkipsCourseRows(t *testing.T) {
	mockCourses := new(MockCourseRepository)
	mockEvents := new(MockEventRepository)
	mockAccounts := new(MockAccountRepository)

	mockEvents.On("Upsert", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
		return e.Source == model.SourceGoogle && e.CourseName == "hokie@vt.edu" && e.CanvasCourseID == ""
	})).Return(nil)
	mockAccounts.On("Upsert", mock.Anything, mock.MatchedBy(func(a *model.ConnectedAccount) bool {
		return a.AccountType == model.SourceGoogle
	})).Return(nil)

	p := &stubProvider{
		name: model.SourceGoogle,
		containers: []provider.Container{
			{ID: "primary", Name: "hokie@vt.edu"},
		},
		items: map[string][]provider.Item{
			"primary": {{Title: "Office hours", DueAt: due(2)}},
		},
	}

	svc := NewLinkService(mockCourses, mockEvents, mockAccounts, (*cache.Client)(nil))
	result, err := svc.LinkAccount(context.Background(), 2, "google-token", p)

	require.NoError(t, err)
	assert.Equal(t, 1, result.CoursesLinked)
	assert.Equal(t, 1, result.SyncedCount)
	mockCourses.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

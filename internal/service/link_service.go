package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"vtcal/internal/cache"
	"vtcal/internal/model"
	"vtcal/internal/provider"
	"vtcal/internal/repository"
)

// LinkResult reports what a sync run accomplished.
type LinkResult struct {
	CoursesLinked int
	SyncedCount   int
}

// LinkService runs a provider sync for a user: pull remote containers and
// items, flatten them into local rows and record the bearer credentials.
type LinkService interface {
	LinkAccount(ctx context.Context, userID uint, token string, p provider.Provider) (*LinkResult, error)
}

type linkService struct {
	courseRepo  repository.CourseRepository
	eventRepo   repository.EventRepository
	accountRepo repository.AccountRepository
	cache       *cache.Client
}

// NewLinkService creates a new link service.
func NewLinkService(
	courseRepo repository.CourseRepository,
	eventRepo repository.EventRepository,
	accountRepo repository.AccountRepository,
	cache *cache.Client,
) LinkService {
	return &linkService{
		courseRepo:  courseRepo,
		eventRepo:   eventRepo,
		accountRepo: accountRepo,
		cache:       cache,
	}
}

// LinkAccount syncs one provider. A failure listing the containers aborts the
// run; a failure on any single container is logged and skipped so the rest
// still sync. The caller's bearer token replaces any prior credentials for
// this (user, provider) pair.
func (s *linkService) LinkAccount(ctx context.Context, userID uint, token string, p provider.Provider) (*LinkResult, error) {
	containers, err := p.Containers(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list %s containers: %w", p.Name(), err)
	}

	result := &LinkResult{}
	for _, container := range containers {
		if p.Name() == model.SourceCanvas {
			course := &model.Course{
				UserID:       userID,
				CourseID:     container.ID,
				CourseName:   container.Name,
				CourseCode:   container.Code,
				EnrolledDate: container.CreatedAt,
			}
			if err := s.courseRepo.Upsert(ctx, course); err != nil {
				log.Error("upsert course", "course_id", container.ID, "err", err)
				continue
			}
		}
		result.CoursesLinked++

		items, err := p.Items(ctx, token, container)
		if err != nil {
			// one bad container must not abort the remaining ones
			log.Error("fetch items", "provider", p.Name(), "container", container.ID, "err", err)
			continue
		}

		for _, item := range items {
			event := &model.Event{
				UserID:      userID,
				Title:       item.Title,
				Description: item.Description,
				DueDate:     item.DueAt,
				Source:      p.Name(),
				CourseName:  container.Name,
			}
			if p.Name() == model.SourceCanvas {
				event.CanvasCourseID = container.ID
			}
			if err := s.eventRepo.Upsert(ctx, event); err != nil {
				log.Error("upsert event", "provider", p.Name(), "title", item.Title, "err", err)
				continue
			}
			result.SyncedCount++
		}
	}

	if err := s.accountRepo.Upsert(ctx, &model.ConnectedAccount{
		UserID:      userID,
		AccountType: p.Name(),
		AccessToken: token,
	}); err != nil {
		return nil, fmt.Errorf("store %s credentials: %w", p.Name(), err)
	}

	_ = s.cache.Delete(ctx, eventsCacheKey(userID))
	return result, nil
}

package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Bartuster/todo-backend/internal/cache"
	"github.com/Bartuster/todo-backend/internal/domain"
	"github.com/Bartuster/todo-backend/internal/repo"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrNotFound covers both a genuinely missing todo and one owned by
	// a different user. Collapsing the two is deliberate: callers must
	// not be able to probe foreign todo ids.
	ErrNotFound   = errors.New("not found")
	ErrEmptyTitle = errors.New("title must not be empty")
)

type TodoService struct {
	repo   repo.TodoRepo
	cache  *cache.TodoCache
	logger zerolog.Logger
	sf     singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache, logger zerolog.Logger) *TodoService {
	return &TodoService{repo: r, cache: c, logger: logger}
}

func (s *TodoService) Create(ctx context.Context, userID int64, title, desc string) (domain.Todo, error) {
	title = strings.TrimSpace(title)
	desc = strings.TrimSpace(desc)
	if title == "" {
		return domain.Todo{}, ErrEmptyTitle
	}

	t, err := s.repo.Create(ctx, domain.Todo{
		UserID:      userID,
		Title:       title,
		Description: desc,
	})
	if err != nil {
		return domain.Todo{}, err
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

func (s *TodoService) List(ctx context.Context, userID int64) ([]domain.Todo, error) {
	if s.cache == nil {
		return s.repo.List(ctx, userID)
	}
	key := "list:" + strconv.FormatInt(userID, 10)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, userID); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetList(ctx, userID, list); err != nil {
			s.logger.Warn().Err(err).Int64("user_id", userID).Msg("failed to cache todo list")
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Todo), nil
}

func (s *TodoService) GetByID(ctx context.Context, userID, id int64) (domain.Todo, error) {
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Todo{}, ErrNotFound
		}
		return domain.Todo{}, err
	}
	return t, nil
}

// Update applies a partial update: nil fields are left untouched. The
// merge happens here, against the stored row, so a request that omits the
// title can never clear it.
func (s *TodoService) Update(ctx context.Context, userID, id int64, title, desc *string, completed *bool) (domain.Todo, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Todo{}, ErrNotFound
		}
		return domain.Todo{}, err
	}
	patch := existing
	if title != nil {
		patch.Title = strings.TrimSpace(*title)
		if patch.Title == "" {
			return domain.Todo{}, ErrEmptyTitle
		}
	}
	if desc != nil {
		patch.Description = strings.TrimSpace(*desc)
	}
	if completed != nil {
		patch.Completed = *completed
	}
	t, err := s.repo.Update(ctx, userID, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Todo{}, ErrNotFound
		}
		return domain.Todo{}, err
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, id int64) error {
	deleted, err := s.repo.SoftDelete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.invalidateCache(ctx, userID)
	return nil
}

func (s *TodoService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("failed to invalidate todo cache")
	}
}

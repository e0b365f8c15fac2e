// internal/service/post/post.go
package post

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"elizatrader-service/internal/domain/post"
	xerrors "elizatrader-service/internal/pkg/errors"
	ws "elizatrader-service/internal/websocket"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	statsCacheKey = "cache:stats"
	statsCacheTTL = 60 * time.Second
)

type PostService struct {
	postRepo      post.Repository
	hub           *ws.Hub
	cache         *redis.Client
	defaultAuthor string
	logger        *zap.Logger
}

func NewPostService(
	postRepo post.Repository,
	hub *ws.Hub,
	cache *redis.Client,
	defaultAuthor string,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		postRepo:      postRepo,
		hub:           hub,
		cache:         cache,
		defaultAuthor: defaultAuthor,
		logger:        logger,
	}
}

// List returns one page of posts, newest first.
func (s *PostService) List(ctx context.Context, filters post.ListFilters) (*post.ListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = defaultPageSize
	}
	if filters.PageSize > maxPageSize {
		filters.PageSize = maxPageSize
	}

	posts, total, err := s.postRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PageSize) - 1) / int64(filters.PageSize))

	return &post.ListResponse{
		Posts: posts,
		Pagination: post.Pagination{
			CurrentPage: filters.Page,
			TotalPages:  totalPages,
			TotalPosts:  total,
			HasNext:     filters.Page < totalPages,
			HasPrev:     filters.Page > 1,
		},
	}, nil
}

// Get returns one post. Reading a published post counts as a view: the
// counter moves through the repository's atomic increment, never a
// read-modify-write in this layer.
func (s *PostService) Get(ctx context.Context, id int64) (*post.Post, error) {
	p, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.IsPublished {
		views, err := s.postRepo.IncrementViewCount(ctx, id)
		if err != nil {
			// The read itself succeeded; losing one view tick is
			// acceptable, losing the response is not.
			s.logger.Error("failed to increment view count", zap.Int64("post_id", id), zap.Error(err))
		} else {
			p.ViewCount = views
		}
	}

	return p, nil
}

// Create validates and stores a new post.
func (s *PostService) Create(ctx context.Context, req *post.CreatePostRequest) (*post.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", xerrors.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", xerrors.ErrInvalidInput)
	}

	category := req.Category
	if category == "" {
		category = post.CategoryEducation
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", xerrors.ErrInvalidInput, category)
	}

	isPublished := true
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	p := &post.Post{
		Title:         strings.TrimSpace(req.Title),
		Content:       req.Content,
		Category:      category,
		Tags:          pq.StringArray(req.Tags),
		FeaturedImage: req.FeaturedImage,
		Author:        s.defaultAuthor,
		IsPublished:   isPublished,
	}
	if p.Tags == nil {
		p.Tags = pq.StringArray{}
	}

	if err := s.postRepo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create post", zap.Error(err))
		return nil, err
	}

	s.logger.Info("post created",
		zap.Int64("post_id", p.ID),
		zap.String("category", string(p.Category)),
	)

	s.afterMutation(ctx, ws.EventPostCreated, p.ID, p.Title)
	return p, nil
}

// Update applies a partial update. Only supplied fields change; updated_at
// is always refreshed by the repository.
func (s *PostService) Update(ctx context.Context, id int64, req *post.UpdatePostRequest) (*post.Post, error) {
	p, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", xerrors.ErrInvalidInput)
		}
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, fmt.Errorf("%w: content must not be empty", xerrors.ErrInvalidInput)
		}
		p.Content = *req.Content
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", xerrors.ErrInvalidInput, *req.Category)
		}
		p.Category = *req.Category
	}
	if req.Tags != nil {
		p.Tags = pq.StringArray(*req.Tags)
	}
	if req.FeaturedImage != nil {
		p.FeaturedImage = req.FeaturedImage
	}
	if req.IsPublished != nil {
		p.IsPublished = *req.IsPublished
	}

	if err := s.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, ws.EventPostUpdated, p.ID, p.Title)
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("post deleted", zap.Int64("post_id", id))
	s.afterMutation(ctx, ws.EventPostDeleted, id, "")
	return nil
}

// Like bumps the like counter. No dedup and no cap: repeat likes from the
// same caller are accepted behavior.
func (s *PostService) Like(ctx context.Context, id int64) (int64, error) {
	likes, err := s.postRepo.IncrementLikes(ctx, id)
	if err != nil {
		return 0, err
	}
	return likes, nil
}

// Stats returns published-only aggregates, cached briefly in redis.
func (s *PostService) Stats(ctx context.Context) (*post.Stats, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, statsCacheKey).Bytes()
		if err == nil {
			var stats post.Stats
			if err := json.Unmarshal(data, &stats); err == nil {
				return &stats, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
	}

	stats, err := s.postRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if stats.CategoryStats == nil {
		stats.CategoryStats = []post.CategoryCount{}
	}

	if s.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
				s.logger.Warn("stats cache write failed", zap.Error(err))
			}
		}
	}

	return stats, nil
}

// afterMutation drops the stats cache and notifies connected admin consoles.
func (s *PostService) afterMutation(ctx context.Context, event ws.EventType, postID int64, title string) {
	if s.cache != nil {
		if err := s.cache.Del(ctx, statsCacheKey).Err(); err != nil {
			s.logger.Warn("stats cache invalidation failed", zap.Error(err))
		}
	}

	if s.hub != nil {
		s.hub.Broadcast(&ws.Event{
			Type:   event,
			PostID: postID,
			Title:  title,
			At:     time.Now(),
		})
	}
}

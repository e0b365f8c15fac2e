// internal/domain/post/repository.go
package post

import "context"

// Repository is the storage contract for posts. Implementations must make
// IncrementViewCount and IncrementLikes atomic at the storage layer; a
// read-modify-write cycle loses updates under concurrent callers.
type Repository interface {
	Create(ctx context.Context, p *Post) error
	FindByID(ctx context.Context, id int64) (*Post, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id int64) error

	// List returns the filtered page, newest created_at first, plus the
	// total count of matching posts.
	List(ctx context.Context, filters ListFilters) ([]Post, int64, error)

	// IncrementViewCount bumps view_count by one and returns the new value.
	IncrementViewCount(ctx context.Context, id int64) (int64, error)

	// IncrementLikes bumps likes by one and returns the new value.
	IncrementLikes(ctx context.Context, id int64) (int64, error)

	// Stats aggregates over published posts only.
	Stats(ctx context.Context) (*Stats, error)
}

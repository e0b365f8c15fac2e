// internal/repository/postgres/post_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"elizatrader-service/internal/domain/post"
	xerrors "elizatrader-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postColumns = `id, title, content, category, tags, featured_image, author,
	is_published, view_count, likes, created_at, updated_at`

type PostRepository struct {
	db *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post and fills in id, counters and timestamps.
func (r *PostRepository) Create(ctx context.Context, p *post.Post) error {
	query := `
		INSERT INTO posts (title, content, category, tags, featured_image, author, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, view_count, likes, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		p.Title, p.Content, p.Category, p.Tags, p.FeaturedImage, p.Author, p.IsPublished,
	).Scan(&p.ID, &p.ViewCount, &p.Likes, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("%w: create post: %v", xerrors.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	var p post.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Content, &p.Category, &p.Tags, &p.FeaturedImage,
		&p.Author, &p.IsPublished, &p.ViewCount, &p.Likes, &p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find post: %v", xerrors.ErrStorageUnavailable, err)
	}

	return &p, nil
}

// Update writes the mutable fields and refreshes updated_at. Counters are
// deliberately excluded; they only move through the increment operations.
func (r *PostRepository) Update(ctx context.Context, p *post.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, category = $4, tags = $5,
		    featured_image = $6, is_published = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		p.ID, p.Title, p.Content, p.Category, p.Tags, p.FeaturedImage, p.IsPublished,
	).Scan(&p.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: update post: %v", xerrors.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: delete post: %v", xerrors.ErrStorageUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// List returns the filtered page, newest first with id as a stable tiebreak,
// plus the total count of matching posts.
func (r *PostRepository) List(ctx context.Context, filters post.ListFilters) ([]post.Post, int64, error) {
	where, args := buildPostFilters(filters)

	countQuery := `SELECT COUNT(*) FROM posts` + where
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: count posts: %v", xerrors.ErrStorageUnavailable, err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM posts%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		postColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list posts: %v", xerrors.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	posts := make([]post.Post, 0, filters.PageSize)
	for rows.Next() {
		var p post.Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Content, &p.Category, &p.Tags, &p.FeaturedImage,
			&p.Author, &p.IsPublished, &p.ViewCount, &p.Likes, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scan post: %v", xerrors.ErrStorageUnavailable, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: list posts: %v", xerrors.ErrStorageUnavailable, err)
	}

	return posts, total, nil
}

func buildPostFilters(filters post.ListFilters) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filters.PublishedOnly {
		conditions = append(conditions, "is_published = TRUE")
	}

	if filters.Category != "" && filters.Category != "all" {
		args = append(args, filters.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR content ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $%d))",
			n, n, n,
		))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// IncrementViewCount bumps view_count atomically in the database. The counter
// must never go through a read-modify-write cycle in application code.
func (r *PostRepository) IncrementViewCount(ctx context.Context, id int64) (int64, error) {
	return r.incrementCounter(ctx, id, "view_count")
}

// IncrementLikes bumps likes atomically in the database.
func (r *PostRepository) IncrementLikes(ctx context.Context, id int64) (int64, error) {
	return r.incrementCounter(ctx, id, "likes")
}

func (r *PostRepository) incrementCounter(ctx context.Context, id int64, column string) (int64, error) {
	query := fmt.Sprintf(
		`UPDATE posts SET %s = %s + 1 WHERE id = $1 RETURNING %s`,
		column, column, column,
	)

	var value int64
	err := r.db.QueryRow(ctx, query, id).Scan(&value)

	if errors.Is(err, pgx.ErrNoRows) {
		return 0, xerrors.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: increment %s: %v", xerrors.ErrStorageUnavailable, column, err)
	}

	return value, nil
}

// Stats aggregates engagement over published posts only.
func (r *PostRepository) Stats(ctx context.Context) (*post.Stats, error) {
	totalsQuery := `
		SELECT COUNT(*), COALESCE(SUM(view_count), 0), COALESCE(SUM(likes), 0)
		FROM posts
		WHERE is_published = TRUE
	`

	var stats post.Stats
	err := r.db.QueryRow(ctx, totalsQuery).Scan(&stats.TotalPosts, &stats.TotalViews, &stats.TotalLikes)
	if err != nil {
		return nil, fmt.Errorf("%w: post totals: %v", xerrors.ErrStorageUnavailable, err)
	}

	categoryQuery := `
		SELECT category, COUNT(*)
		FROM posts
		WHERE is_published = TRUE
		GROUP BY category
		ORDER BY category
	`

	rows, err := r.db.Query(ctx, categoryQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: category stats: %v", xerrors.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc post.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, fmt.Errorf("%w: scan category stats: %v", xerrors.ErrStorageUnavailable, err)
		}
		stats.CategoryStats = append(stats.CategoryStats, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: category stats: %v", xerrors.ErrStorageUnavailable, err)
	}

	return &stats, nil
}

var _ post.Repository = (*PostRepository)(nil)

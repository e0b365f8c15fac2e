// internal/domain/post/entity.go
package post

import (
	"time"

	"github.com/lib/pq"
)

type Category string

const (
	CategoryMarketAnalysis Category = "market-analysis"
	CategoryEducation      Category = "education"
	CategoryTradingTips    Category = "trading-tips"
	CategoryNews           Category = "news"
	CategoryStrategy       Category = "strategy"
)

// Valid reports whether c is one of the known post categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMarketAnalysis, CategoryEducation, CategoryTradingTips, CategoryNews, CategoryStrategy:
		return true
	}
	return false
}

// Categories lists all known post categories.
func Categories() []Category {
	return []Category{
		CategoryMarketAnalysis,
		CategoryEducation,
		CategoryTradingTips,
		CategoryNews,
		CategoryStrategy,
	}
}

// Post is one blog/news article with publication and engagement metadata.
// ViewCount and Likes only move through the repository's atomic increment
// operations, never through Update.
type Post struct {
	ID            int64          `json:"id" db:"id"`
	Title         string         `json:"title" db:"title"`
	Content       string         `json:"content" db:"content"`
	Category      Category       `json:"category" db:"category"`
	Tags          pq.StringArray `json:"tags" db:"tags"`
	FeaturedImage *string        `json:"featuredImage" db:"featured_image"`
	Author        string         `json:"author" db:"author"`
	IsPublished   bool           `json:"isPublished" db:"is_published"`
	ViewCount     int64          `json:"viewCount" db:"view_count"`
	Likes         int64          `json:"likes" db:"likes"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`
}

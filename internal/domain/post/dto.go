// internal/domain/post/dto.go
package post

import (
	"encoding/json"
	"strings"
)

// Tags accepts either a JSON list of strings or a single comma-delimited
// string, matching what the admin console historically sent.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = normalizeTags(list)
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*t = normalizeTags(strings.Split(single, ","))
	return nil
}

func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

type CreatePostRequest struct {
	Title         string   `json:"title" binding:"required"`
	Content       string   `json:"content" binding:"required"`
	Category      Category `json:"category"`
	Tags          Tags     `json:"tags"`
	FeaturedImage *string  `json:"featuredImage"`
	IsPublished   *bool    `json:"isPublished"`
}

type UpdatePostRequest struct {
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	Category      *Category `json:"category"`
	Tags          *Tags     `json:"tags"`
	FeaturedImage *string   `json:"featuredImage"`
	IsPublished   *bool     `json:"isPublished"`
}

type ListFilters struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"limit"`

	// PublishedOnly is set by the handler, not the caller.
	PublishedOnly bool `form:"-"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalPosts  int64 `json:"totalPosts"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

type ListResponse struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

type CategoryCount struct {
	Category Category `json:"category"`
	Count    int64    `json:"count"`
}

// Stats aggregates engagement over published posts only.
type Stats struct {
	TotalPosts    int64           `json:"totalPosts"`
	TotalViews    int64           `json:"totalViews"`
	TotalLikes    int64           `json:"totalLikes"`
	CategoryStats []CategoryCount `json:"categoryStats"`
}

package postgres

import (
	"testing"

	"elizatrader-service/internal/domain/post"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPostFilters_NoFilters(t *testing.T) {
	t.Parallel()

	where, args := buildPostFilters(post.ListFilters{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildPostFilters_CategoryAllMeansNoFilter(t *testing.T) {
	t.Parallel()

	whereAll, argsAll := buildPostFilters(post.ListFilters{Category: "all"})
	whereNone, argsNone := buildPostFilters(post.ListFilters{Category: ""})

	assert.Equal(t, whereNone, whereAll)
	assert.Equal(t, argsNone, argsAll)
	assert.Empty(t, whereAll)
}

func TestBuildPostFilters_Category(t *testing.T) {
	t.Parallel()

	where, args := buildPostFilters(post.ListFilters{Category: "education"})
	assert.Equal(t, " WHERE category = $1", where)
	assert.Equal(t, []interface{}{"education"}, args)
}

func TestBuildPostFilters_PublishedOnly(t *testing.T) {
	t.Parallel()

	where, args := buildPostFilters(post.ListFilters{PublishedOnly: true})
	assert.Equal(t, " WHERE is_published = TRUE", where)
	assert.Empty(t, args)
}

func TestBuildPostFilters_SearchCoversTitleContentAndTags(t *testing.T) {
	t.Parallel()

	where, args := buildPostFilters(post.ListFilters{Search: "btc"})

	require.Equal(t, []interface{}{"%btc%"}, args)
	assert.Contains(t, where, "title ILIKE $1")
	assert.Contains(t, where, "content ILIKE $1")
	assert.Contains(t, where, "EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $1)")
	assert.Contains(t, where, " OR ")
}

func TestBuildPostFilters_Combined(t *testing.T) {
	t.Parallel()

	where, args := buildPostFilters(post.ListFilters{
		PublishedOnly: true,
		Category:      "news",
		Search:        "halving",
	})

	require.Equal(t, []interface{}{"news", "%halving%"}, args)
	assert.Contains(t, where, "is_published = TRUE")
	assert.Contains(t, where, "category = $1")
	assert.Contains(t, where, "title ILIKE $2")
	assert.Contains(t, where, "tag ILIKE $2")
	assert.Equal(t, 2, len(args))
}

package specification

import (
	"net/url"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestBuild(t *testing.T) {
	t.Run("No conditions uses default order", func(t *testing.T) {
		q := Build(Conditions{})
		assert.Empty(t, q.Where())
		assert.Empty(t, q.Args())
		assert.Equal(t, "p.publish DESC, p.id DESC", q.OrderBy("p.publish DESC", "p.id DESC"))
	})

	t.Run("Default order is not repeated by tie-breakers", func(t *testing.T) {
		q := Build(Conditions{})
		assert.Equal(t, "p.publish DESC, p.id DESC", q.OrderBy("p.publish DESC", "p.publish DESC", "p.id DESC"))
	})

	t.Run("Author", func(t *testing.T) {
		q := Build(Conditions{Filters: []Filter{Author("Jane")}})
		assert.Equal(t, "AND lower(u.username) = lower($1)", q.Where())
		assert.Equal(t, []any{"Jane"}, q.Args())
	})

	t.Run("Period", func(t *testing.T) {
		q := Build(Conditions{Filters: []Filter{Period{Name: "week", Now: now}}})
		assert.Equal(t, "AND p.publish BETWEEN $1 AND $2", q.Where())
		require.Len(t, q.Args(), 2)
		assert.Equal(t, now.Add(-7*24*time.Hour), q.Args()[0])
		assert.Equal(t, now, q.Args()[1])
	})

	t.Run("Unknown period does not filter", func(t *testing.T) {
		q := Build(Conditions{Filters: []Filter{Period{Name: "year", Now: now}}})
		assert.Empty(t, q.Where())
		assert.Empty(t, q.Args())
	})

	t.Run("Orders replace default and follow filter args", func(t *testing.T) {
		q := Build(Conditions{
			Filters: []Filter{Author("jane"), Tags{"go", "sql"}},
			Orders:  []Order{TagsCount{"go", "sql"}},
		})
		assert.Contains(t, q.Where(), "lower(u.username) = lower($1)")
		assert.Contains(t, q.Where(), "t.name = ANY($2)")
		order := q.OrderBy("p.publish DESC", "p.publish DESC", "p.id DESC")
		assert.Contains(t, order, "t.name = ANY($3)")
		assert.Regexp(t, `\) DESC, p\.publish DESC, p\.id DESC$`, order)
		assert.Len(t, q.Args(), 3)
		assert.Len(t, q.FilterArgs(), 2)
	})

	t.Run("Tags use postgres arrays", func(t *testing.T) {
		q := Build(Conditions{Filters: []Filter{Tags{"go"}}})
		arr, ok := q.Args()[0].(*pq.StringArray)
		require.True(t, ok)
		assert.Equal(t, pq.StringArray{"go"}, *arr)
	})
}

func TestFromQuery(t *testing.T) {
	t.Run("All parameters", func(t *testing.T) {
		qs := url.Values{"author": {"jane"}, "tags": {"go,sql"}, "period": {"day"}}
		c := FromQuery(qs, now)
		assert.Equal(t, []Filter{Author("jane"), Tags{"go", "sql"}, Period{Name: "day", Now: now}}, c.Filters)
		assert.Equal(t, []Order{TagsCount{"go", "sql"}}, c.Orders)
	})

	t.Run("Empty parameters are ignored", func(t *testing.T) {
		c := FromQuery(url.Values{"author": {""}}, now)
		assert.Empty(t, c.Filters)
		assert.Empty(t, c.Orders)
	})
}

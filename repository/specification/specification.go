// Package specification composes post list queries from filter and order
// specifications. Each specification renders a SQL fragment against the
// aliases used by the posts repository: p (posts) and u (users).
package specification

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Filter narrows the result set.
type Filter interface {
	Predicate(q *Query) string
}

// Order ranks the result set.
type Order interface {
	Expression(q *Query) string
}

// Conditions is the set of specifications applied to one list query.
type Conditions struct {
	Filters []Filter
	Orders  []Order
}

// Query accumulates rendered fragments and their positional arguments.
type Query struct {
	predicates []string
	orders     []string
	args       []any
	filterArgs int
}

// Arg registers v and returns its placeholder.
func (q *Query) Arg(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

// Build renders c. Filter arguments always precede order arguments so that a
// count query can reuse the filter prefix of Args.
func Build(c Conditions) *Query {
	q := &Query{}
	for _, f := range c.Filters {
		if p := f.Predicate(q); p != "" {
			q.predicates = append(q.predicates, p)
		}
	}
	q.filterArgs = len(q.args)
	for _, o := range c.Orders {
		if e := o.Expression(q); e != "" {
			q.orders = append(q.orders, e)
		}
	}
	return q
}

// Where returns the filter predicates as a series of "AND ..." lines, or "".
func (q *Query) Where() string {
	if len(q.predicates) == 0 {
		return ""
	}
	return "AND " + strings.Join(q.predicates, "\n\t\tAND ")
}

// OrderBy returns the ORDER BY list. Order specifications replace the
// default ordering; tie-breakers are appended in either case unless the
// list already holds them.
func (q *Query) OrderBy(defaultOrder string, tieBreakers ...string) string {
	parts := q.orders
	if len(parts) == 0 {
		parts = []string{defaultOrder}
	}
	parts = parts[:len(parts):len(parts)]
	for _, tb := range tieBreakers {
		if !slices.Contains(parts, tb) {
			parts = append(parts, tb)
		}
	}
	return strings.Join(parts, ", ")
}

// Args returns every argument registered so far.
func (q *Query) Args() []any {
	return q.args
}

// FilterArgs returns the arguments referenced by Where.
func (q *Query) FilterArgs() []any {
	return q.args[:q.filterArgs]
}

// Author matches posts whose author username equals the value, ignoring case.
type Author string

func (a Author) Predicate(q *Query) string {
	return "lower(u.username) = lower(" + q.Arg(string(a)) + ")"
}

// Tags matches posts carrying at least one of the listed tags.
type Tags []string

func (t Tags) Predicate(q *Query) string {
	return `EXISTS (
			SELECT 1 FROM post_tags pt
			INNER JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.name = ANY(` + q.Arg(pq.Array([]string(t))) + `))`
}

// Periods maps the accepted period names to their length.
var Periods = map[string]time.Duration{
	"day":   24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"month": 30 * 24 * time.Hour,
}

// Period matches posts published within the named period before Now.
// Unknown names do not filter.
type Period struct {
	Name string
	Now  time.Time
}

func (p Period) Predicate(q *Query) string {
	d, ok := Periods[p.Name]
	if !ok {
		return ""
	}
	return "p.publish BETWEEN " + q.Arg(p.Now.Add(-d)) + " AND " + q.Arg(p.Now)
}

// TagsCount ranks posts by how many of the listed tags they carry.
type TagsCount []string

func (t TagsCount) Expression(q *Query) string {
	return `(
			SELECT count(*) FROM post_tags pt
			INNER JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.name = ANY(` + q.Arg(pq.Array([]string(t))) + `)) DESC`
}

// FromQuery reads the author, tags and period parameters. A tags parameter
// both filters and orders by the number of matching tags.
func FromQuery(qs url.Values, now time.Time) Conditions {
	var c Conditions
	if author := qs.Get("author"); author != "" {
		c.Filters = append(c.Filters, Author(author))
	}
	if tags := qs.Get("tags"); tags != "" {
		list := strings.Split(tags, ",")
		c.Filters = append(c.Filters, Tags(list))
		c.Orders = append(c.Orders, TagsCount(list))
	}
	if period := qs.Get("period"); period != "" {
		c.Filters = append(c.Filters, Period{Name: period, Now: now})
	}
	return c
}

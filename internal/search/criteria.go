// Package search implements the catalog query layer: filter criteria
// parsed from the URL, the full-text index, and the service that
// combines both against the catalog store.
package search

import (
	"net/url"
	"strconv"
	"strings"
)

// Column is a sortable results column.
type Column string

// Sortable columns, named after the query parameter values they map to.
const (
	ColumnTitle       Column = "title"
	ColumnDescription Column = "description"
	ColumnPublisher   Column = "publisher"
	ColumnPublishDate Column = "publish_date"
)

// Columns lists the sortable columns in display order.
var Columns = []Column{ColumnTitle, ColumnDescription, ColumnPublisher, ColumnPublishDate}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Criteria is the user-supplied search state, round-tripped through
// the URL query string. All fields are optional; empty means "no
// filter applied".
type Criteria struct {
	Title      string
	AuthorID   string
	CategoryID string
	NLP        string
	SortBy     Column
	SortDir    Direction
}

// ParseCriteria normalizes raw query parameters into a Criteria.
// Values are trimmed; non-numeric author/category IDs and
// out-of-whitelist sort values normalize to unset.
func ParseCriteria(v url.Values) Criteria {
	c := Criteria{
		Title:      strings.TrimSpace(v.Get("title")),
		AuthorID:   normalizeID(v.Get("author_id")),
		CategoryID: normalizeID(v.Get("category_id")),
		NLP:        strings.TrimSpace(v.Get("nlp")),
	}

	switch sortBy := Column(strings.TrimSpace(v.Get("sort_by"))); sortBy {
	case ColumnTitle, ColumnDescription, ColumnPublisher, ColumnPublishDate:
		c.SortBy = sortBy
	}
	switch sortDir := Direction(strings.ToLower(strings.TrimSpace(v.Get("sort_dir")))); sortDir {
	case Asc, Desc:
		c.SortDir = sortDir
	}

	return c
}

// Values re-encodes the criteria with the inbound parameter names.
// Empty fields are omitted, so parsing the result yields the criteria
// unchanged.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("title", c.Title)
	set("author_id", c.AuthorID)
	set("category_id", c.CategoryID)
	set("nlp", c.NLP)
	set("sort_by", string(c.SortBy))
	set("sort_dir", string(c.SortDir))
	return v
}

// HasFilter reports whether any filter field is set. Sort state alone
// does not count as a search.
func (c Criteria) HasFilter() bool {
	return c.Title != "" || c.AuthorID != "" || c.CategoryID != "" || c.NLP != ""
}

// AuthorIDInt returns the author filter as an integer, 0 when unset.
func (c Criteria) AuthorIDInt() int64 {
	return idInt(c.AuthorID)
}

// CategoryIDInt returns the category filter as an integer, 0 when unset.
func (c Criteria) CategoryIDInt() int64 {
	return idInt(c.CategoryID)
}

// Selects reports whether the dropdown option with the given ID matches
// the stored filter value. Both sides compare as decimal strings.
func Selects(filterValue string, optionID int64) bool {
	return filterValue != "" && filterValue == strconv.FormatInt(optionID, 10)
}

// NextSort computes the sort state a column header link should submit:
// ascending unless the column is already sorted ascending, in which
// case it flips to descending. All other criteria are preserved by the
// caller.
func NextSort(c Criteria, col Column) (Column, Direction) {
	if c.SortBy == col && c.SortDir == Asc {
		return col, Desc
	}
	return col, Asc
}

// WithSort returns a copy of the criteria with the sort state replaced.
func (c Criteria) WithSort(col Column, dir Direction) Criteria {
	c.SortBy = col
	c.SortDir = dir
	return c
}

// ResultState is the three-way display state of the results section.
type ResultState int

const (
	// ResultNoSearch: no filters submitted, render neither table nor message.
	ResultNoSearch ResultState = iota
	// ResultNoMatches: a filtered search returned nothing.
	ResultNoMatches
	// ResultTable: rows to show.
	ResultTable
)

// DisplayState derives the results-section state from the criteria and
// the number of rows returned.
func DisplayState(c Criteria, rowCount int) ResultState {
	switch {
	case rowCount > 0:
		return ResultTable
	case c.HasFilter():
		return ResultNoMatches
	default:
		return ResultNoSearch
	}
}

// normalizeID keeps only all-digit ID values; anything else is treated
// as "no filter".
func normalizeID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return raw
}

func idInt(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

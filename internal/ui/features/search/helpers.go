package search

import (
	"github.com/openshelf/openshelf/internal/catalog"
	"github.com/openshelf/openshelf/internal/search"
	"github.com/openshelf/openshelf/internal/ui/features/common"
)

const (
	indicatorAsc  = "▲"
	indicatorDesc = "▼"
)

var columnLabels = map[search.Column]string{
	search.ColumnTitle:       "Title",
	search.ColumnDescription: "Description",
	search.ColumnPublisher:   "Publisher",
	search.ColumnPublishDate: "Publish Date",
}

// BuildPage assembles the search view model from the normalized
// criteria, the query results, and the dropdown option lists.
func BuildPage(c search.Criteria, books []catalog.Book, authors, categories []catalog.Option, year int) PageData {
	state := search.DisplayState(c, len(books))

	return PageData{
		Title: "Search the Catalog",
		Year:  year,
		Form: FormState{
			Title:      c.Title,
			AuthorID:   c.AuthorID,
			CategoryID: c.CategoryID,
			NLP:        c.NLP,
			SortBy:     string(c.SortBy),
			SortDir:    string(c.SortDir),
		},
		Authors:       common.BuildOptions(authors, c.AuthorID),
		Categories:    common.BuildOptions(categories, c.CategoryID),
		Headers:       sortHeaders(c),
		Rows:          rowViews(books),
		ShowTable:     state == search.ResultTable,
		ShowNoMatches: state == search.ResultNoMatches,
	}
}

// sortHeaders builds one header per sortable column. Each link carries
// every current filter unchanged and overwrites only the sort state.
func sortHeaders(c search.Criteria) []ColumnHeader {
	headers := make([]ColumnHeader, 0, len(search.Columns))
	for _, col := range search.Columns {
		headers = append(headers, ColumnHeader{
			Label:     columnLabels[col],
			URL:       sortLink(c, col),
			Indicator: indicator(c, col),
		})
	}
	return headers
}

func sortLink(c search.Criteria, col search.Column) string {
	next := c.WithSort(search.NextSort(c, col))
	return "/search?" + next.Values().Encode()
}

// indicator returns the direction arrow for the active sort column,
// empty otherwise.
func indicator(c search.Criteria, col search.Column) string {
	if c.SortBy != col {
		return ""
	}
	switch c.SortDir {
	case search.Asc:
		return indicatorAsc
	case search.Desc:
		return indicatorDesc
	default:
		return ""
	}
}

func rowViews(books []catalog.Book) []RowView {
	rows := make([]RowView, 0, len(books))
	for _, b := range books {
		rows = append(rows, RowView{
			Title:       b.Title,
			Description: b.Description,
			Publisher:   b.Publisher,
			PublishDate: b.PublishDate,
			Authors:     b.Authors,
			Categories:  b.Categories,
		})
	}
	return rows
}

// Package search provides the search page: the filter form and the
// sortable results table.
package search

import "github.com/openshelf/openshelf/internal/ui/features/common"

// PageData is the full view model for the search page.
type PageData struct {
	Title string
	Year  int

	Form       FormState
	Authors    []common.OptionView
	Categories []common.OptionView

	Headers []ColumnHeader
	Rows    []RowView

	ShowTable     bool
	ShowNoMatches bool
}

// FormState pre-fills the filter form with the normalized criteria.
type FormState struct {
	Title      string
	AuthorID   string
	CategoryID string
	NLP        string
	SortBy     string
	SortDir    string
}

// ColumnHeader is one sortable column header: its label, the link that
// re-submits the current filters with toggled sort state, and the
// direction indicator when the column is active.
type ColumnHeader struct {
	Label     string
	URL       string
	Indicator string
}

// RowView is one results-table row. Missing optional fields stay empty
// strings so the cells render blank.
type RowView struct {
	Title       string
	Description string
	Publisher   string
	PublishDate string
	Authors     string
	Categories  string
}

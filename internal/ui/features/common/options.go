// Package common holds view types shared across UI features.
package common

import (
	"strconv"

	"github.com/openshelf/openshelf/internal/catalog"
	"github.com/openshelf/openshelf/internal/search"
)

// OptionView is one dropdown option.
type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

// BuildOptions converts catalog options into view options, marking the
// one whose ID matches the current filter value. An unmatched value
// leaves every option unselected, so the sentinel first entry wins.
func BuildOptions(opts []catalog.Option, selected string) []OptionView {
	views := make([]OptionView, 0, len(opts))
	for _, o := range opts {
		views = append(views, OptionView{
			Value:    strconv.FormatInt(o.ID, 10),
			Label:    o.Label,
			Selected: search.Selects(selected, o.ID),
		})
	}
	return views
}

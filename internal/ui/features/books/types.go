// Package books provides the add-book page.
package books

import "github.com/openshelf/openshelf/internal/ui/features/common"

// PageData is the view model for the add-book page.
type PageData struct {
	Title string
	Year  int

	Flash string
	Error string

	Form       FormState
	Authors    []common.OptionView
	Categories []common.OptionView
}

// FormState echoes the submitted values back into the form when
// validation fails.
type FormState struct {
	Title       string
	Description string
	EANISBN13   string
	UPCISBN10   string
	Publisher   string
	PublishDate string
	AuthorID    string
	CategoryID  string
}

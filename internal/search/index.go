package search

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/openshelf/openshelf/internal/catalog"
)

// maxMatches caps how many book IDs a free-text query can contribute
// to the SQL filter.
const maxMatches = 1000

// Index is the full-text index over the catalog, powering the
// free-text "nlp" query.
type Index struct {
	index bleve.Index
}

// indexDoc is the document shape stored per book.
type indexDoc struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Publisher   string `json:"publisher"`
	Authors     string `json:"authors"`
	Categories  string `json:"categories"`
}

var indexFields = []string{"title", "description", "publisher", "authors", "categories"}

// OpenIndex opens the index at path, creating it if absent.
func OpenIndex(path string) (*Index, error) {
	idx, err := bleve.Open(path)
	if err == nil {
		return &Index{index: idx}, nil
	}

	// If the path exists but bleve.Open failed, the index is corrupt or
	// incompatible; surface that instead of silently recreating.
	if _, statErr := os.Stat(path); statErr == nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}

	idx, err = bleve.New(path, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}
	return &Index{index: idx}, nil
}

// NewMemIndex creates an ephemeral in-memory index.
func NewMemIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}
	return &Index{index: idx}, nil
}

func buildIndexMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = "en"
	textField.Store = false

	for _, field := range indexFields {
		docMapping.AddFieldMappingsAt(field, textField)
	}

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// IndexBook adds or updates one book in the index.
func (ix *Index) IndexBook(_ context.Context, b catalog.Book) error {
	if err := ix.index.Index(docID(b.ID), bookToDoc(b)); err != nil {
		return fmt.Errorf("index book %d: %w", b.ID, err)
	}
	return nil
}

// Reindex indexes all given books in a single batch.
func (ix *Index) Reindex(_ context.Context, books []catalog.Book) error {
	batch := ix.index.NewBatch()
	for _, b := range books {
		if err := batch.Index(docID(b.ID), bookToDoc(b)); err != nil {
			return fmt.Errorf("batch index %d: %w", b.ID, err)
		}
	}
	if err := ix.index.Batch(batch); err != nil {
		return fmt.Errorf("reindex: %w", err)
	}
	return nil
}

// Match returns the IDs of books matching the free-text query, best
// match first. An empty slice means no matches.
func (ix *Index) Match(_ context.Context, text string) ([]int64, error) {
	// Query each text field individually and combine with OR; matching
	// against the composite _all field misbehaves when the fields use
	// the "en" analyzer.
	fieldQueries := make([]blevequery.Query, 0, len(indexFields))
	for _, field := range indexFields {
		q := bleve.NewMatchQuery(text)
		q.SetField(field)
		fieldQueries = append(fieldQueries, q)
	}

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(fieldQueries...))
	req.Size = maxMatches

	results, err := ix.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	ids := make([]int64, 0, len(results.Hits))
	for _, hit := range results.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Close closes the underlying index.
func (ix *Index) Close() error {
	return ix.index.Close()
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func bookToDoc(b catalog.Book) indexDoc {
	return indexDoc{
		Title:       b.Title,
		Description: b.Description,
		Publisher:   b.Publisher,
		Authors:     b.Authors,
		Categories:  b.Categories,
	}
}

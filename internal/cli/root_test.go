package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the CLI with the given args and returns stdout.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	require.NoError(t, cmd.Execute(), "command %v failed: %s", args, out.String())
	return out.String()
}

// writeSeeds creates a minimal seeds directory with two books.
func writeSeeds(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"authors.csv": "id,full_name\n1,Frank Herbert\n2,Ursula K. Le Guin\n",
		"categories.csv": "id,name\n1,Science Fiction\n2,Fantasy\n",
		"books.csv": "id,title,description,publisher,publish_date\n" +
			"1,Dune,A desert planet epic,Chilton,1965-08-01\n" +
			"2,A Wizard of Earthsea,A young wizard's schooling,Parnassus,1968-11-01\n",
		"book_authors.csv":    "book_id,author_id\n1,1\n2,2\n",
		"book_categories.csv": "book_id,category_id\n1,1\n2,2\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestVersionCommand(t *testing.T) {
	out := runCommand(t, "version")
	assert.Contains(t, out, "openshelf v")
}

func TestInitSearchExport(t *testing.T) {
	seedsDir := writeSeeds(t)
	workDir := t.TempDir()
	dbPath := filepath.Join(workDir, "catalog.db")
	indexPath := filepath.Join(workDir, "catalog.bleve")
	exportDir := filepath.Join(workDir, "export")

	base := []string{
		"--database", dbPath,
		"--index", indexPath,
		"--seeds-dir", seedsDir,
		"--export-dir", exportDir,
	}

	out := runCommand(t, append([]string{"init"}, base...)...)
	assert.Contains(t, out, "books.csv")
	assert.Contains(t, out, "Indexed 2 books")

	// Structured title filter matches title or description
	out = runCommand(t, append([]string{"search", "--title", "desert"}, base...)...)
	assert.Contains(t, out, "Dune")
	assert.NotContains(t, out, "Earthsea")
	assert.Contains(t, out, "(1 rows)")

	// Free-text query against the index
	out = runCommand(t, append([]string{"search", "wizard", "schooling"}, base...)...)
	assert.Contains(t, out, "Earthsea")

	// No matches renders the empty marker
	out = runCommand(t, append([]string{"search", "--title", "gormenghast"}, base...)...)
	assert.Contains(t, out, "(0 rows)")

	out = runCommand(t, append([]string{"export"}, base...)...)
	assert.Contains(t, out, "Exported")
	for _, name := range []string{"authors.csv", "categories.csv", "books.csv", "book_authors.csv", "book_categories.csv"} {
		_, err := os.Stat(filepath.Join(exportDir, name))
		assert.NoError(t, err, "expected export file %s", name)
	}
}

// writeTemplates creates a minimal on-disk template set.
func writeTemplates(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"layout.html": `<!doctype html><title>{{.Title}}</title>{{block "content" .}}{{end}}`,
		"search.html": `{{define "content"}}search{{end}}`,
		"add.html":    `{{define "content"}}add{{end}}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestServeCommand_TemplatesDirFlagEnablesWatch(t *testing.T) {
	workDir := t.TempDir()
	// Port 0 binds an ephemeral port.
	t.Setenv("OPENSHELF_PORT", "0")

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"serve",
		"--watch",
		"--templates-dir", writeTemplates(t),
		"--database", filepath.Join(workDir, "catalog.db"),
		"--index", filepath.Join(workDir, "catalog.bleve"),
	})

	// The server starts from disk templates and shuts down cleanly
	// when the context expires.
	require.NoError(t, cmd.ExecuteContext(ctx), "output: %s", out.String())
}

func TestServeCommand_WatchRequiresTemplatesDir(t *testing.T) {
	workDir := t.TempDir()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"serve",
		"--watch",
		"--database", filepath.Join(workDir, "catalog.db"),
		"--index", filepath.Join(workDir, "catalog.bleve"),
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch requires --templates-dir")
}

func TestSearchCommand_RequiresFilter(t *testing.T) {
	workDir := t.TempDir()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"search",
		"--database", filepath.Join(workDir, "catalog.db"),
		"--index", filepath.Join(workDir, "catalog.bleve"),
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no filters given")
}

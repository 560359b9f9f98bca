package xref

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresBothParts(t *testing.T) {
	_, err := New("", "ensembl")
	require.ErrorIs(t, err, ErrInvalidXref)

	_, err = New("ENSG00000012048", "")
	require.ErrorIs(t, err, ErrInvalidXref)

	x, err := New("ENSG00000012048", "ensembl")
	require.NoError(t, err)
	assert.Equal(t, "ensembl:ENSG00000012048", x.String())
}

func TestRegistryLookupAndResolve(t *testing.T) {
	reg, err := NewRegistry([]DataSource{
		{ID: "ensembl", FullName: "Ensembl", URLPattern: "https://www.ensembl.org/id/$id"},
		{ID: "pubmed", FullName: "PubMed"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())

	ds, ok := reg.Lookup("ensembl")
	require.True(t, ok)
	assert.Equal(t, "Ensembl", ds.FullName)

	_, ok = reg.Lookup("uniprot")
	assert.False(t, ok)

	x, err := New("ENSG00000012048", "ensembl")
	require.NoError(t, err)
	url, ok := reg.ResolveURL(x)
	require.True(t, ok)
	assert.Equal(t, "https://www.ensembl.org/id/ENSG00000012048", url)

	// No URL pattern registered for pubmed.
	x, err = New("12345", "pubmed")
	require.NoError(t, err)
	_, ok = reg.ResolveURL(x)
	assert.False(t, ok)
}

func TestRegistryRejectsBadSources(t *testing.T) {
	_, err := NewRegistry([]DataSource{
		{ID: "ensembl"},
		{ID: "ensembl"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate data source id")

	_, err = NewRegistry([]DataSource{{FullName: "nameless"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")
}

func writeSourceFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datasources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoaderInitialLoad(t *testing.T) {
	path := writeSourceFile(t, `
version: v1
sources:
  - id: ensembl
    name: Ensembl
    url_pattern: https://www.ensembl.org/id/$id
`)
	l, err := NewLoader(path)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Registry().Len())
}

func TestLoaderRejectsMissingVersion(t *testing.T) {
	path := writeSourceFile(t, `
sources:
  - id: ensembl
    name: Ensembl
`)
	_, err := NewLoader(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version is required")
}

func TestLoaderReloadNotifiesCallbacks(t *testing.T) {
	path := writeSourceFile(t, `
version: v1
sources:
  - id: ensembl
    name: Ensembl
`)
	l, err := NewLoader(path)
	require.NoError(t, err)

	var got *Registry
	l.OnChange(func(r *Registry) { got = r })

	require.NoError(t, os.WriteFile(path, []byte(`
version: v1
sources:
  - id: ensembl
    name: Ensembl
  - id: uniprot
    name: UniProt
`), 0o644))

	reg, err := l.Reload()
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	require.Same(t, reg, got)
	assert.Same(t, reg, l.Registry())
}

func TestLoaderReloadKeepsOldRegistryOnError(t *testing.T) {
	path := writeSourceFile(t, `
version: v1
sources:
  - id: ensembl
    name: Ensembl
`)
	l, err := NewLoader(path)
	require.NoError(t, err)
	old := l.Registry()

	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o644))
	_, err = l.Reload()
	require.Error(t, err)
	assert.Same(t, old, l.Registry())
}

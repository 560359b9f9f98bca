package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathforge/gpml/internal/xref"
)

const validDoc = `<?xml version="1.0"?>
<Pathway xmlns="http://pathvisio.org/GPML/2021" title="Apoptosis">
  <DataNodes>
    <DataNode elementId="dn1" textLabel="BRCA1" type="GeneProduct">
      <Graphics centerX="100" centerY="100" width="40" height="20"/>
      <Xref identifier="ENSG00000012048" dataSource="ensembl"/>
    </DataNode>
    <DataNode elementId="dn2" textLabel="X" type="Metabolite">
      <Graphics centerX="200" centerY="100" width="40" height="20"/>
      <Xref identifier="1" dataSource="mystery-db"/>
    </DataNode>
  </DataNodes>
</Pathway>`

func newTestHandler(t *testing.T) (http.Handler, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datasources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: v1
sources:
  - id: ensembl
    name: Ensembl
    url_pattern: https://www.ensembl.org/id/$id
`), 0o644))
	loader, err := xref.NewLoader(path)
	require.NoError(t, err)
	return New(loader), path
}

func TestValidatePathway(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/pathways/validate", strings.NewReader(validDoc))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var report validationReport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.True(t, report.Valid)
	assert.NotEmpty(t, report.RequestID)
	assert.Equal(t, "Apoptosis", report.Title)
	assert.Equal(t, 2, report.DataNodes)
	assert.Equal(t, 0, report.RepairedRefs)
	assert.Equal(t, []string{"mystery-db"}, report.UnknownSource)
}

func TestValidatePathwayRejectsBrokenDocument(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/pathways/validate", strings.NewReader("<Pathway><nope"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var report validationReport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.Error)
}

func TestListDataSources(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/datasources", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Count   int               `json:"count"`
		Sources []xref.DataSource `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "ensembl", resp.Sources[0].ID)
}

func TestReloadDataSources(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/datasources/reload", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"reloaded":true`)
}

func TestReloadDataSourcesReportsFailure(t *testing.T) {
	h, path := newTestHandler(t)
	require.NoError(t, os.Remove(path))

	req := httptest.NewRequest(http.MethodPost, "/v1/datasources/reload", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var f failure
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &f))
	assert.Contains(t, f.Error, "read data sources")
}

func TestHealthz(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
}

package ioapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dbca-wa/wastd/internal/ioapi"
	"github.com/dbca-wa/wastd/internal/iotesting"
	"github.com/dbca-wa/wastd/internal/ioworkflow"
	"github.com/dbca-wa/wastd/pkg/audit"
	"github.com/dbca-wa/wastd/pkg/config"
	"github.com/dbca-wa/wastd/pkg/gazettal"
	"github.com/dbca-wa/wastd/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnv struct {
	srv *ioapi.Server
	id  uint
}

func setup(t *testing.T, allow bool) *apiEnv {
	t.Helper()
	gdb := iotesting.SQLite(t).GORM()
	fix := iotesting.Seed(t, gdb)
	cfg := iotesting.SQLiteConfig()
	cfg.Update([]config.Option{config.OptServerAllowTransitions(allow)})

	svc := ioworkflow.New(gdb, cfg)
	g, err := svc.CreateTaxonGazettal(context.Background(),
		workflow.GazettalInput{
			SubjectID:   fix.Taxon.ID,
			CategoryIDs: []uint{fix.CR.ID},
		})
	require.NoError(t, err)
	return &apiEnv{srv: ioapi.New(svc, cfg), id: g.ID}
}

func (e *apiEnv) do(
	t *testing.T,
	method, path, body string,
) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, ioapi.Prefix+path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	res, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, res
}

func TestPing(t *testing.T) {
	e := setup(t, false)
	code, body := e.do(t, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", string(body))

	code, body = e.do(t, http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `"version"`)
}

func TestGazettal(t *testing.T) {
	e := setup(t, false)

	code, body := e.do(t, http.MethodGet, "/gazettals/taxon/1", "")
	require.Equal(t, http.StatusOK, code)
	var res map[string]any
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "[WAWCA] CR", res["category_cache"])
	assert.Equal(t, "proposed", res["status"])
	assert.NotNil(t, res["taxon"])

	tests := []struct {
		msg, path string
		code      int
	}{
		{"missing", "/gazettals/taxon/99", http.StatusNotFound},
		{"bad id", "/gazettals/taxon/abc", http.StatusBadRequest},
		{"zero id", "/gazettals/community/0", http.StatusBadRequest},
		{"missing community", "/gazettals/community/1", http.StatusNotFound},
	}
	for _, v := range tests {
		code, _ := e.do(t, http.MethodGet, v.path, "")
		assert.Equal(t, v.code, code, v.msg)
	}
}

func TestAvailable(t *testing.T) {
	e := setup(t, false)

	code, body := e.do(t, http.MethodGet, "/taxon-gazettal/1/transitions", "")
	require.Equal(t, http.StatusOK, code)
	var st workflow.Status
	require.NoError(t, json.Unmarshal(body, &st))
	assert.Equal(t, gazettal.Proposed, st.State)
	assert.Equal(t, "Proposed", st.Label)
	assert.Contains(t, st.Operations, gazettal.SubmitForExpertReview)

	code, body = e.do(t, http.MethodGet, "/occurrence/1/transitions", "")
	assert.Equal(t, http.StatusNotFound, code)
	var errResp ioapi.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, http.StatusNotFound, errResp.Status)
	assert.Contains(t, errResp.Error, "occurrence")
}

func TestTransitionDisabled(t *testing.T) {
	e := setup(t, false)
	code, _ := e.do(t, http.MethodPost, "/taxon-gazettal/1/transitions",
		`{"operation":"submit_for_expert_review","actor":"alice"}`)
	assert.Equal(t, http.StatusForbidden, code)

	code, body := e.do(t, http.MethodGet, "/taxon-gazettal/1/history", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, "[]", string(body))
}

func TestTransition(t *testing.T) {
	e := setup(t, true)
	path := "/taxon-gazettal/1/transitions"

	tests := []struct {
		msg, body string
		code      int
	}{
		{"ok", `{"operation":"submit_for_panel_review","actor":"alice"}`,
			http.StatusOK},
		{"not allowed", `{"operation":"submit_for_expert_review","actor":"a"}`,
			http.StatusConflict},
		{"unknown op", `{"operation":"publish","actor":"a"}`,
			http.StatusConflict},
		{"no actor", `{"operation":"mark_gazetted"}`, http.StatusBadRequest},
		{"bad json", `{"operation":`, http.StatusBadRequest},
	}
	for _, v := range tests {
		code, _ := e.do(t, http.MethodPost, path, v.body)
		assert.Equal(t, v.code, code, v.msg)
	}

	code, _ := e.do(t, http.MethodPost, "/encounter/5/transitions",
		`{"operation":"curate","actor":"a"}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, body := e.do(t, http.MethodGet, "/taxon-gazettal/1/history", "")
	require.Equal(t, http.StatusOK, code)
	var hist []audit.Entry
	require.NoError(t, json.Unmarshal(body, &hist))
	require.Len(t, hist, 1)
	assert.Equal(t, "alice", hist[0].Actor)
	assert.Equal(t, "in_panel_review", hist[0].Target)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		msg  string
		err  error
		code int
	}{
		{"not found", workflow.RecordNotFoundError("encounter", 1), 404},
		{"conflict", workflow.ConcurrentModificationError("encounter", 1, 2),
			409},
		{"validation", workflow.InputValidationError(assert.AnError), 400},
		{"server", ioapi.ServerStartError(":80", assert.AnError), 500},
		{"plain", assert.AnError, 500},
	}
	for _, v := range tests {
		assert.Equal(t, v.code, ioapi.StatusOf(v.err), v.msg)
	}
}

type emptyHistory struct {
	workflow.Service
}

func (emptyHistory) History(
	context.Context, string, uint,
) ([]audit.Entry, error) {
	return nil, nil
}

func TestHistoryEmpty(t *testing.T) {
	e := &apiEnv{
		srv: ioapi.New(emptyHistory{}, iotesting.SQLiteConfig()),
		id:  1,
	}
	code, body := e.do(t, http.MethodGet, "/taxon-gazettal/1/history", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, "[]", string(body))
}

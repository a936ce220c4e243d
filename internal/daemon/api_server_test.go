package daemon

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slate/internal/analysis"
	"slate/internal/api"
	"slate/internal/indexing"
	"slate/internal/pipeline"
	"slate/internal/testsupport"
)

func newTestDaemon(t *testing.T) *Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	tracker := pipeline.NewTracker(time.Hour, 16)
	adapter := indexing.NewAdapter(&testsupport.StubEmbedder{}, &testsupport.StubIndex{}, store, 200, nil)
	orch := pipeline.New(store, cfg, tracker, pipeline.Dependencies{
		Visual:  &testsupport.StubVisual{Result: analysis.Result{"duration": 5.0, "technical_score": 85.0}},
		Audio:   &testsupport.StubAudio{Result: analysis.Result{"quality_score": 85.0, "transcript": "line"}},
		Aligner: &testsupport.StubAligner{Result: analysis.Result{"similarity": 0.9}},
		Indexer: adapter,
	}, nil)
	d, err := New(cfg, store, orch, tracker, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if out != nil && rec.Code < 400 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

func TestAPIProjectIsLazilyCreated(t *testing.T) {
	d := newTestDaemon(t)
	handler := d.api.Handler()

	var project api.Project
	rec := doJSON(t, handler, http.MethodGet, "/api/project", nil, &project)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if project.Name != "The Perimeter" {
		t.Fatalf("project name = %q", project.Name)
	}
	if project.Settings["aspect_ratio"] != "2.39:1" {
		t.Fatalf("settings = %#v", project.Settings)
	}
}

func TestAPITakeLifecycle(t *testing.T) {
	d := newTestDaemon(t)
	handler := d.api.Handler()

	var created api.TakeResponse
	rec := doJSON(t, handler, http.MethodPost, "/api/takes",
		api.CreateTakeRequest{FileName: "slate_001.mp4", FilePath: "/media/slate_001.mp4"}, &created)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", rec.Code, rec.Body.String())
	}
	id := created.Take.ID
	if id == 0 {
		t.Fatalf("take id missing: %+v", created)
	}

	var list api.TakeListResponse
	doJSON(t, handler, http.MethodGet, "/api/takes", nil, &list)
	if len(list.Takes) != 1 {
		t.Fatalf("list = %+v", list)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/takes/1/process", nil, nil)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("process status = %d body=%s", rec.Code, rec.Body.String())
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		record, _ := d.tracker.Snapshot(id)
		if record.Status == pipeline.StatusCompleted {
			break
		}
		if record.Status == pipeline.StatusError || time.Now().After(deadline) {
			t.Fatalf("run did not complete: %+v", record)
		}
		time.Sleep(10 * time.Millisecond)
	}

	var status api.StatusResponse
	doJSON(t, handler, http.MethodGet, "/api/takes/1/status", nil, &status)
	if status.Progress.Status != pipeline.StatusCompleted || status.Progress.Percent != 100 {
		t.Fatalf("status payload = %+v", status)
	}

	var patched api.TakeResponse
	rec = doJSON(t, handler, http.MethodPatch, "/api/takes/1", api.UpdateTakeRequest{AcceptStatus: "accepted"}, &patched)
	if rec.Code != http.StatusOK || patched.Take.AcceptStatus != "accepted" {
		t.Fatalf("patch = %d %+v", rec.Code, patched)
	}

	var stats api.StatsResponse
	doJSON(t, handler, http.MethodGet, "/api/dashboard/stats", nil, &stats)
	if stats.Stats.TotalTakes != 1 || stats.Stats.ApprovedCount != 1 {
		t.Fatalf("stats = %+v", stats.Stats)
	}
	if stats.Stats.ProcessingProgress != 100.0 {
		t.Fatalf("processing progress = %v", stats.Stats.ProcessingProgress)
	}
}

func TestAPIErrors(t *testing.T) {
	d := newTestDaemon(t)
	handler := d.api.Handler()

	if rec := doJSON(t, handler, http.MethodGet, "/api/takes/99", nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing take status = %d", rec.Code)
	}
	if rec := doJSON(t, handler, http.MethodPost, "/api/takes/99/process", nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("process missing take status = %d", rec.Code)
	}
	if rec := doJSON(t, handler, http.MethodGet, "/api/takes/abc", nil, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d", rec.Code)
	}
	if rec := doJSON(t, handler, http.MethodPost, "/api/takes", api.CreateTakeRequest{}, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("empty create status = %d", rec.Code)
	}
	if rec := doJSON(t, handler, http.MethodPatch, "/api/takes/1", api.UpdateTakeRequest{AcceptStatus: "maybe"}, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad accept status = %d", rec.Code)
	}
	if rec := doJSON(t, handler, http.MethodDelete, "/api/project", nil, nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("method status = %d", rec.Code)
	}

	// Status polling for an unknown take reports unknown rather than 404.
	var status api.StatusResponse
	doJSON(t, handler, http.MethodGet, "/api/takes/42/status", nil, &status)
	if status.Progress.Status != pipeline.StatusUnknown {
		t.Fatalf("unknown take status = %+v", status)
	}
}

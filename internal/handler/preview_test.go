package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pagesmith/internal/domain"
	"pagesmith/internal/domain/models"
	"pagesmith/internal/domain/services"
	"pagesmith/internal/httputil"
	"pagesmith/internal/service/preview"
)

// stubProjectService serves a fixed project set for handler tests.
type stubProjectService struct {
	projects  map[string]*models.Project
	published map[string]string
}

func (s *stubProjectService) CreateProject(context.Context, *services.CreateProjectRequest) (*models.Project, error) {
	panic("not used")
}

func (s *stubProjectService) GetProject(_ context.Context, id, userID string) (*models.Project, error) {
	p, ok := s.projects[id]
	if !ok || p.UserID != userID {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (s *stubProjectService) ListProjects(context.Context, string) ([]models.Project, error) {
	panic("not used")
}

func (s *stubProjectService) GetPreview(context.Context, string, string) (*services.ProjectPreview, error) {
	panic("not used")
}

func (s *stubProjectService) DeleteProject(context.Context, string, string) error {
	panic("not used")
}

func (s *stubProjectService) SaveCode(context.Context, string, *services.SaveCodeRequest) error {
	panic("not used")
}

func (s *stubProjectService) TogglePublish(context.Context, string, string) (bool, error) {
	panic("not used")
}

func (s *stubProjectService) ListPublished(context.Context) ([]models.Project, error) {
	panic("not used")
}

func (s *stubProjectService) GetPublishedCode(_ context.Context, id string) (string, error) {
	code, ok := s.published[id]
	if !ok {
		return "", fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return code, nil
}

func newPreviewTestMux(stub *stubProjectService) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewPreviewHandler(stub, preview.NewManager(), logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/projects/{id}/page", h.GetPage)
	mux.HandleFunc("GET /sites/{id}", h.PublishedSite)
	mux.HandleFunc("POST /api/projects/{id}/editor/messages", h.PostSandboxMessage)
	mux.HandleFunc("POST /api/projects/{id}/editor/updates", h.PostUpdate)
	mux.HandleFunc("DELETE /api/projects/{id}/editor", h.CloseEditor)
	return mux
}

func doAuthed(mux *http.ServeMux, method, target, userID, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		req = httputil.WithUserID(req, userID)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func testStub() *stubProjectService {
	code := "<html><body><h1>Hi</h1></body></html>"
	return &stubProjectService{
		projects: map[string]*models.Project{
			"p1": {ID: "p1", UserID: "u1", CurrentCode: &code},
			"p2": {ID: "p2", UserID: "u1"},
		},
		published: map[string]string{"p1": code},
	}
}

func TestGetPage(t *testing.T) {
	mux := newPreviewTestMux(testStub())

	rec := doAuthed(mux, "GET", "/api/projects/p1/page", "u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if strings.Contains(rec.Body.String(), "<script>") {
		t.Errorf("read-only page was instrumented")
	}

	rec = doAuthed(mux, "GET", "/api/projects/p1/page?edit=1", "u1", "")
	body := rec.Body.String()
	if !strings.Contains(body, "<script>") {
		t.Errorf("editable page missing instrumentation")
	}
	if strings.Index(body, "<script>") > strings.LastIndex(body, "</body>") {
		t.Errorf("script injected after closing body tag")
	}
}

func TestGetPage_StillGenerating(t *testing.T) {
	mux := newPreviewTestMux(testStub())

	rec := doAuthed(mux, "GET", "/api/projects/p2/page", "u1", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestGetPage_Unauthenticated(t *testing.T) {
	mux := newPreviewTestMux(testStub())

	rec := doAuthed(mux, "GET", "/api/projects/p1/page", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestGetPage_WrongOwner(t *testing.T) {
	mux := newPreviewTestMux(testStub())

	rec := doAuthed(mux, "GET", "/api/projects/p1/page", "intruder", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestPublishedSite_NeverInstrumented(t *testing.T) {
	mux := newPreviewTestMux(testStub())

	rec := doAuthed(mux, "GET", "/sites/p1?edit=1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "<script>") {
		t.Errorf("published page was instrumented")
	}
}

func TestEditorMessageRoundTrip(t *testing.T) {
	mux := newPreviewTestMux(testStub())

	selected := `{"type": "ELEMENT_SELECTED", "payload": {"tagName": "H1", "className": "", "text": "Hi", "styles": {"color": "black"}}}`
	rec := doAuthed(mux, "POST", "/api/projects/p1/editor/messages", "u1", selected)
	if rec.Code != http.StatusOK {
		t.Fatalf("select status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"tagName":"H1"`) {
		t.Errorf("selection not echoed: %s", rec.Body.String())
	}

	rec = doAuthed(mux, "POST", "/api/projects/p1/editor/updates", "u1", `{"styles": {"color": "red"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"UPDATE_ELEMENT"`) {
		t.Errorf("forward message missing: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"color":"red"`) {
		t.Errorf("merged style missing: %s", rec.Body.String())
	}

	rec = doAuthed(mux, "DELETE", "/api/projects/p1/editor", "u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("close status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"CLEAR_SELECTION_REQUEST"`) {
		t.Errorf("close forward missing: %s", rec.Body.String())
	}

	// Session dropped on close: the next update has no selection.
	rec = doAuthed(mux, "POST", "/api/projects/p1/editor/updates", "u1", `{"text": "x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("update after close status = %d, want 400", rec.Code)
	}
}

func TestEditorMessage_RejectsBadPayloads(t *testing.T) {
	mux := newPreviewTestMux(testStub())

	for _, body := range []string{
		`{"type": "EVAL_SCRIPT"}`,
		`{"type": "UPDATE_ELEMENT", "payload": {"text": "x"}}`,
		`not json`,
	} {
		rec := doAuthed(mux, "POST", "/api/projects/p1/editor/messages", "u1", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestUpdateWithoutSelection(t *testing.T) {
	mux := newPreviewTestMux(testStub())

	rec := doAuthed(mux, "POST", "/api/projects/p1/editor/updates", "u1", `{"text": "x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

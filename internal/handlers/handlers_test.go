package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/sketchbook/internal/composer"
	"github.com/lehigh-university-libraries/sketchbook/internal/drawing"
	"github.com/lehigh-university-libraries/sketchbook/internal/history"
	"github.com/lehigh-university-libraries/sketchbook/internal/models"
)

type stubComposer struct {
	gotImage bool
	err      error
}

func (s *stubComposer) Compose(ctx context.Context, ref *composer.Image, text string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if strings.TrimSpace(text) == "" {
		return "", composer.ErrMissingText
	}
	s.gotImage = ref != nil
	return "prompt: " + text, nil
}

type stubGenerator struct {
	dir string
	n   int
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.n++
	path := filepath.Join(g.dir, fmt.Sprintf("gen-%d.png", g.n))
	if err := os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"+prompt), 0644); err != nil {
		return "", err
	}
	return path, nil
}

type testEnv struct {
	router   http.Handler
	composer *stubComposer
	saveDir  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	comp := &stubComposer{}
	log := history.NewLog()
	h := New(Options{
		Drawer:  drawing.NewService(comp, &stubGenerator{dir: t.TempDir()}, log),
		History: log,
		SaveDir: t.TempDir(),
	})
	if err := h.EnsureSaveDir(); err != nil {
		t.Fatal(err)
	}
	return &testEnv{router: h.Router(), composer: comp, saveDir: h.saveDir}
}

func (e *testEnv) do(t *testing.T, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) createSession(t *testing.T) models.SessionView {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/sessions", "", nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var view models.SessionView
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("Failed to decode session: %v", err)
	}
	return view
}

func drawForm(t *testing.T, fields map[string]string, image []byte) (string, []byte) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "reference.png")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return w.FormDataContentType(), buf.Bytes()
}

func (e *testEnv) draw(t *testing.T, id string, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	ct, body := drawForm(t, fields, image)
	return e.do(t, http.MethodPost, "/api/sessions/"+id+"/draw", ct, body)
}

func decodeWarning(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode warning: %v", err)
	}
	return body["warning"]
}

var kim = map[string]string{"class_id": "6101", "name": "Kim", "text": "a red balloon"}

func TestHealthcheck(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodGet, "/healthcheck", "", nil)
	if rr.Code != http.StatusOK || rr.Body.String() != "OK" {
		t.Errorf("Expected 200 OK, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestStaticIndex(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodGet, "/", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "<html") {
		t.Errorf("Expected the index page")
	}
}

func TestDrawSelectSave(t *testing.T) {
	env := newTestEnv(t)
	session := env.createSession(t)

	for i := 0; i < 2; i++ {
		rr := env.draw(t, session.ID, kim, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Draw %d: expected 200, got %d: %s", i, rr.Code, rr.Body.String())
		}
		var resp struct {
			Index   int                `json:"index"`
			Prompt  string             `json:"prompt"`
			Session models.SessionView `json:"session"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Index != i || len(resp.Session.Images) != i+1 {
			t.Errorf("Expected index %d with %d images, got %d/%d", i, i+1, resp.Index, len(resp.Session.Images))
		}
		if resp.Prompt != "prompt: a red balloon" {
			t.Errorf("Unexpected prompt %q", resp.Prompt)
		}
	}

	rr := env.do(t, http.MethodPut, "/api/sessions/"+session.ID+"/selection", "application/json", []byte(`{"index": 1}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("Select: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var view models.SessionView
	_ = json.Unmarshal(rr.Body.Bytes(), &view)
	if view.Selected == nil || *view.Selected != 1 {
		t.Errorf("Expected selected=1, got %v", view.Selected)
	}

	rr = env.do(t, http.MethodPost, "/api/sessions/"+session.ID+"/save", "application/json", []byte(`{"class_id":"6101","name":"Kim"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("Save: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var result drawing.SaveResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Paths) != 2 {
		t.Errorf("Expected 2 saved paths, got %d", len(result.Paths))
	}
	if want := filepath.Join(env.saveDir, "6101_Kim_Selected.png"); result.SelectedPath != want {
		t.Errorf("Expected %s, got %s", want, result.SelectedPath)
	}
	entries, _ := os.ReadDir(env.saveDir)
	if len(entries) != 3 {
		t.Errorf("Expected 3 files in save dir, got %d", len(entries))
	}

	rr = env.do(t, http.MethodGet, "/api/sessions/"+session.ID+"/images/0", "", nil)
	if rr.Code != http.StatusOK || rr.Header().Get("Content-Type") != "image/png" {
		t.Errorf("Expected png image, got %d %s", rr.Code, rr.Header().Get("Content-Type"))
	}

	rr = env.do(t, http.MethodGet, "/api/sessions/"+session.ID+"/history", "", nil)
	if rr.Code != http.StatusOK || rr.Body.Len() == 0 {
		t.Errorf("Expected a parquet export, got %d", rr.Code)
	}

	rr = env.do(t, http.MethodDelete, "/api/sessions/"+session.ID+"/selection", "", nil)
	_ = json.Unmarshal(rr.Body.Bytes(), &view)
	if rr.Code != http.StatusOK || view.Selected != nil {
		t.Errorf("Expected selection cleared, got %d %v", rr.Code, view.Selected)
	}
}

func TestDrawWithReferenceImage(t *testing.T) {
	env := newTestEnv(t)
	session := env.createSession(t)

	rr := env.draw(t, session.ID, kim, []byte("\x89PNG\r\n\x1a\nreference"))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !env.composer.gotImage {
		t.Errorf("Expected the reference image to reach the composer")
	}
}

func TestDrawWarnings(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		err    error
		status int
	}{
		{name: "missing class", fields: map[string]string{"name": "Kim", "text": "x"}, status: http.StatusBadRequest},
		{name: "missing name", fields: map[string]string{"class_id": "6101", "text": "x"}, status: http.StatusBadRequest},
		{name: "missing text", fields: map[string]string{"class_id": "6101", "name": "Kim"}, status: http.StatusBadRequest},
		{name: "external failure", fields: kim, err: fmt.Errorf("%w: timeout", composer.ErrExternalFailure), status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.composer.err = tt.err
			session := env.createSession(t)

			rr := env.draw(t, session.ID, tt.fields, nil)
			if rr.Code != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, rr.Code)
			}
			if decodeWarning(t, rr) == "" {
				t.Errorf("Expected a warning message")
			}

			rr = env.do(t, http.MethodGet, "/api/sessions/"+session.ID, "", nil)
			var view models.SessionView
			_ = json.Unmarshal(rr.Body.Bytes(), &view)
			if len(view.Images) != 0 {
				t.Errorf("Expected no images after a failed draw, got %d", len(view.Images))
			}
		})
	}
}

func TestSelectionAndSaveWarnings(t *testing.T) {
	env := newTestEnv(t)
	session := env.createSession(t)
	base := "/api/sessions/" + session.ID

	rr := env.do(t, http.MethodPut, base+"/selection", "application/json", []byte(`{"index": 0}`))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for selecting in an empty gallery, got %d", rr.Code)
	}

	rr = env.do(t, http.MethodPut, base+"/selection", "application/json", []byte(`{}`))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a missing index, got %d", rr.Code)
	}

	rr = env.do(t, http.MethodPost, base+"/save", "application/json", []byte(`{"class_id":"6101","name":"Kim"}`))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for saving an empty gallery, got %d", rr.Code)
	}

	if rr := env.draw(t, session.ID, kim, nil); rr.Code != http.StatusOK {
		t.Fatalf("Draw failed: %d", rr.Code)
	}

	rr = env.do(t, http.MethodPost, base+"/save", "application/json", []byte(`{"class_id":"6101","name":""}`))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a missing name, got %d", rr.Code)
	}

	rr = env.do(t, http.MethodPost, base+"/save", "application/json", []byte(`not json`))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad JSON, got %d", rr.Code)
	}

	rr = env.do(t, http.MethodGet, base+"/images/5", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a missing image, got %d", rr.Code)
	}
}

func TestUnknownSession(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/api/sessions/nope", "/api/sessions/nope/history"} {
		rr := env.do(t, http.MethodGet, path, "", nil)
		if rr.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, rr.Code)
		}
	}
}

func TestListSessions(t *testing.T) {
	env := newTestEnv(t)
	env.createSession(t)
	env.createSession(t)

	rr := env.do(t, http.MethodGet, "/api/sessions", "", nil)
	var views []models.SessionView
	if err := json.Unmarshal(rr.Body.Bytes(), &views); err != nil {
		t.Fatal(err)
	}
	if len(views) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(views))
	}
}

func TestWriteErrorDefault(t *testing.T) {
	h := New(Options{})
	rr := httptest.NewRecorder()
	h.writeError(rr, errors.New("boom"))
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rr.Code)
	}
}

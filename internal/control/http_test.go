package control

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Faultbox/holoframe/internal/config"
	"github.com/Faultbox/holoframe/internal/scene"
)

func setupRouter(sc Scene) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := NewEngine(config.HTTPConfig{AllowOrigins: []string{"*"}})
	NewServer(sc, nil).SetupRoutes(r)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ApiResponse {
	t.Helper()
	var resp ApiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestTriggerRoutes(t *testing.T) {
	tests := []struct {
		path string
		want scene.CommandKind
	}{
		{"/api/v1/frame/float", scene.CommandFloat},
		{"/api/v1/frame/release", scene.CommandRelease},
		{"/api/v1/gallery/next", scene.CommandNext},
		{"/api/v1/gallery/prev", scene.CommandPrevious},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			sc := &fakeScene{}
			w := do(setupRouter(sc), http.MethodPost, tt.path, "")

			if w.Code != http.StatusAccepted {
				t.Fatalf("status = %d, want 202", w.Code)
			}
			if resp := decode(t, w); resp.Status != "success" {
				t.Errorf("response = %+v", resp)
			}
			kinds := sc.kinds()
			if len(kinds) != 1 || kinds[0] != tt.want {
				t.Errorf("posted %v, want [%v]", kinds, tt.want)
			}
		})
	}
}

func TestCommandRoute(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"float", `{"command":"float"}`, http.StatusAccepted},
		{"previous alias", `{"command":"previous"}`, http.StatusAccepted},
		{"unknown", `{"command":"explode"}`, http.StatusBadRequest},
		{"move not remote", `{"command":"move"}`, http.StatusBadRequest},
		{"missing", `{}`, http.StatusBadRequest},
		{"malformed", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := &fakeScene{}
			w := do(setupRouter(sc), http.MethodPost, "/api/v1/command", tt.body)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantCode != http.StatusAccepted && len(sc.kinds()) != 0 {
				t.Errorf("rejected request posted %v", sc.kinds())
			}
		})
	}
}

func TestQueueFull(t *testing.T) {
	sc := &fakeScene{full: true}
	w := do(setupRouter(sc), http.MethodPost, "/api/v1/gallery/next", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if resp := decode(t, w); resp.Status != "error" || resp.Error == "" {
		t.Errorf("response = %+v", resp)
	}
}

func TestStatusRoute(t *testing.T) {
	sc := &fakeScene{status: scene.Status{Floating: true, ImageIndex: 1, ImageCount: 3}}
	w := do(setupRouter(sc), http.MethodGet, "/api/v1/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Status string       `json:"status"`
		Data   scene.Status `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Data.Floating || resp.Data.ImageIndex != 1 || resp.Data.ImageCount != 3 {
		t.Errorf("data = %+v", resp.Data)
	}
}

func TestCurrentImage(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		w := do(setupRouter(&fakeScene{}), http.MethodGet, "/api/v1/gallery/current", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("webp", func(t *testing.T) {
		sc := &fakeScene{current: testTexture(6, 4)}
		w := do(setupRouter(sc), http.MethodGet, "/api/v1/gallery/current", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "image/webp" {
			t.Errorf("Content-Type = %q", ct)
		}
		body := w.Body.Bytes()
		if len(body) < 12 || !bytes.Equal(body[0:4], []byte("RIFF")) || !bytes.Equal(body[8:12], []byte("WEBP")) {
			t.Errorf("body is not a WebP stream: % x", body[:min(len(body), 16)])
		}
	})
}

func TestCORSPreflight(t *testing.T) {
	r := setupRouter(&fakeScene{})
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/frame/float", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

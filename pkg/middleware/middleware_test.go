package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/revisor/pkg/middleware"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestApplyOrder(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mw := middleware.New()
	mw.Use(tag("cors"))
	mw.Use(tag("logger"))

	handler := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "reviews")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/reviews", nil))

	want := []string{"cors", "logger", "reviews"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order: got %v, want %v", order, want)
	}
}

func TestCORS(t *testing.T) {
	base := middleware.CORSConfig{
		Enabled:        true,
		Origins:        []string{"http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
	}

	tests := []struct {
		name        string
		cfg         middleware.CORSConfig
		method      string
		origin      string
		wantOrigin  string
		wantMethods string
		wantMaxAge  string
		wantCreds   string
		wantCalled  bool
	}{
		{
			name:        "allowed origin",
			cfg:         base,
			method:      http.MethodGet,
			origin:      "http://localhost:3000",
			wantOrigin:  "http://localhost:3000",
			wantMethods: "GET, POST, DELETE",
			wantMaxAge:  "600",
			wantCalled:  true,
		},
		{
			name:       "disallowed origin",
			cfg:        base,
			method:     http.MethodGet,
			origin:     "http://evil.example",
			wantCalled: true,
		},
		{
			name:       "disabled",
			cfg:        middleware.CORSConfig{Enabled: false, Origins: base.Origins},
			method:     http.MethodGet,
			origin:     "http://localhost:3000",
			wantCalled: true,
		},
		{
			name:        "preflight",
			cfg:         base,
			method:      http.MethodOptions,
			origin:      "http://localhost:3000",
			wantOrigin:  "http://localhost:3000",
			wantMethods: "GET, POST, DELETE",
			wantMaxAge:  "600",
			wantCalled:  false,
		},
		{
			name:        "wildcard",
			cfg:         middleware.CORSConfig{Enabled: true, Origins: []string{"*"}, AllowedMethods: []string{"GET"}},
			method:      http.MethodGet,
			origin:      "http://any.example",
			wantOrigin:  "*",
			wantMethods: "GET",
			wantCalled:  true,
		},
		{
			name:       "no origin header",
			cfg:        base,
			method:     http.MethodGet,
			origin:     "",
			wantCalled: true,
		},
		{
			name: "credentials",
			cfg: middleware.CORSConfig{
				Enabled:          true,
				Origins:          base.Origins,
				AllowCredentials: true,
			},
			method:     http.MethodPost,
			origin:     "http://localhost:3000",
			wantOrigin: "http://localhost:3000",
			wantCreds:  "true",
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := middleware.CORS(&tt.cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/api/reviews", nil)
			req.Header.Set("Origin", tt.origin)
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status: got %d, want 200", rec.Code)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called: got %v, want %v", called, tt.wantCalled)
			}
			h := rec.Header()
			if got := h.Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("allow-origin: got %q, want %q", got, tt.wantOrigin)
			}
			if got := h.Get("Access-Control-Allow-Methods"); got != tt.wantMethods {
				t.Errorf("allow-methods: got %q, want %q", got, tt.wantMethods)
			}
			if got := h.Get("Access-Control-Max-Age"); got != tt.wantMaxAge {
				t.Errorf("max-age: got %q, want %q", got, tt.wantMaxAge)
			}
			if got := h.Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
				t.Errorf("allow-credentials: got %q, want %q", got, tt.wantCreds)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reviews?page=2", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rec.Code)
	}

	out := buf.String()
	for _, want := range []string{"method=POST", "uri=\"/api/reviews?page=2\"", "status=201", "duration="} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}

func TestLoggerDefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if !strings.Contains(buf.String(), "status=200") {
		t.Errorf("log output missing status=200: %s", buf.String())
	}
}

func TestRecover(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := middleware.Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("pairing failed")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reviews", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
}

func TestRecoverPassThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := middleware.Recover(logger)(http.HandlerFunc(ok))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestCORSConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg middleware.CORSConfig
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if len(cfg.AllowedMethods) != 5 {
			t.Errorf("allowed_methods: got %v, want 5 entries", cfg.AllowedMethods)
		}
		if len(cfg.AllowedHeaders) != 2 {
			t.Errorf("allowed_headers: got %v, want 2 entries", cfg.AllowedHeaders)
		}
		if cfg.MaxAge != 3600 {
			t.Errorf("max_age: got %d, want 3600", cfg.MaxAge)
		}
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("REVISOR_TEST_CORS_ENABLED", "true")
		t.Setenv("REVISOR_TEST_CORS_ORIGINS", "http://a.example, ,http://b.example")
		t.Setenv("REVISOR_TEST_CORS_CREDENTIALS", "true")

		env := &middleware.CORSEnv{
			Enabled:          "REVISOR_TEST_CORS_ENABLED",
			Origins:          "REVISOR_TEST_CORS_ORIGINS",
			AllowCredentials: "REVISOR_TEST_CORS_CREDENTIALS",
		}

		var cfg middleware.CORSConfig
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if !cfg.Enabled {
			t.Error("enabled: got false, want true")
		}
		if len(cfg.Origins) != 2 || cfg.Origins[0] != "http://a.example" || cfg.Origins[1] != "http://b.example" {
			t.Errorf("origins: got %v", cfg.Origins)
		}
		if !cfg.AllowCredentials {
			t.Error("allow_credentials: got false, want true")
		}
	})
}

func TestCORSConfigValidate(t *testing.T) {
	cfg := middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"*"},
		AllowCredentials: true,
	}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("expected error for credentials with wildcard origin")
	}
}

func TestCORSConfigMerge(t *testing.T) {
	base := middleware.CORSConfig{
		Origins:        []string{"http://base.example"},
		AllowedMethods: []string{"GET"},
		MaxAge:         3600,
	}
	overlay := middleware.CORSConfig{
		Enabled: true,
		Origins: []string{"http://overlay.example"},
		MaxAge:  7200,
	}

	base.Merge(&overlay)

	if !base.Enabled {
		t.Error("enabled: got false, want true")
	}
	if len(base.Origins) != 1 || base.Origins[0] != "http://overlay.example" {
		t.Errorf("origins: got %v", base.Origins)
	}
	if len(base.AllowedMethods) != 1 || base.AllowedMethods[0] != "GET" {
		t.Errorf("allowed_methods: got %v, want [GET]", base.AllowedMethods)
	}
	if base.MaxAge != 7200 {
		t.Errorf("max_age: got %d, want 7200", base.MaxAge)
	}
}

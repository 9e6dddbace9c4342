package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/revisor/internal/api"
	"github.com/JaimeStill/revisor/internal/config"
	"github.com/JaimeStill/revisor/internal/infrastructure"
	"github.com/JaimeStill/revisor/internal/oracle"
	"github.com/JaimeStill/revisor/pkg/database"
	"github.com/JaimeStill/revisor/pkg/pagination"
	"github.com/JaimeStill/revisor/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "revisor",
			User:            "revisor",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "reviews",
			ConnectionString: azuriteConnString,
		},
		API: config.APIConfig{
			BasePath:      "/api",
			MaxUploadSize: "10MB",
			Pagination:    pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		},
		Oracle: oracle.Config{
			APIKey:    "sk-test",
			Model:     oracle.DefaultModel,
			MaxTokens: 2000,
			Timeout:   "1m",
		},
		Review:          config.ReviewConfig{Workers: 3, MaxRecordAge: 45},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
}

func setupInfra(t *testing.T) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("infrastructure.New: %v", err)
	}
	return infra
}

func TestNewRuntime(t *testing.T) {
	runtime := api.NewRuntime(validConfig(), setupInfra(t))

	if runtime.Pagination.DefaultPageSize != 20 {
		t.Errorf("default page size: got %d, want 20", runtime.Pagination.DefaultPageSize)
	}
	if runtime.Workflow == nil {
		t.Fatal("workflow runtime is nil")
	}
	if runtime.Workflow.Workers != 3 {
		t.Errorf("workers: got %d, want 3", runtime.Workflow.Workers)
	}
	if got := runtime.Workflow.Policy.MaxRecordAge(); got != 45 {
		t.Errorf("max record age: got %d, want 45", got)
	}
	if runtime.Workflow.Oracle == nil || runtime.Workflow.Signatures == nil {
		t.Error("workflow oracle and signature checker must be set")
	}
}

func TestNewModule(t *testing.T) {
	m, err := api.NewModule(validConfig(), setupInfra(t))
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}

	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"invalid review id", "GET", "/api/reviews/not-a-uuid", http.StatusBadRequest},
		{"invalid report id", "GET", "/api/reviews/not-a-uuid/report", http.StatusBadRequest},
		{"unknown route", "GET", "/api/documents", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			m.Serve(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

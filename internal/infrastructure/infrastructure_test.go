package infrastructure_test

import (
	"testing"

	"github.com/JaimeStill/revisor/internal/config"
	"github.com/JaimeStill/revisor/internal/infrastructure"
	"github.com/JaimeStill/revisor/internal/oracle"
	"github.com/JaimeStill/revisor/pkg/database"
	"github.com/JaimeStill/revisor/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func validConfig() *config.Config {
	return &config.Config{
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "revisor",
			User:            "revisor",
			SSLMode:         "disable",
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "reviews",
			ConnectionString: azuriteConnString,
		},
		Oracle: oracle.Config{APIKey: "sk-test", MaxTokens: 2000, Timeout: "1m"},
	}
}

func TestNew(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if infra.Lifecycle == nil {
		t.Error("lifecycle is nil")
	}
	if infra.Logger == nil {
		t.Error("logger is nil")
	}
	if infra.Database == nil {
		t.Error("database is nil")
	}
	if infra.Storage == nil {
		t.Error("storage is nil")
	}
	if infra.Oracle == nil {
		t.Error("oracle is nil")
	}
}

func TestNewInvalidStorage(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.ConnectionString = "not-a-connection-string"

	if _, err := infrastructure.New(cfg); err == nil {
		t.Fatal("expected error for malformed storage connection string")
	}
}

package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/themizzi/shopflow/internal/config"
	"github.com/themizzi/shopflow/internal/database"
)

// TestDatabase is a migrated catalog in a schema of its own
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	admin      *sql.DB
}

// localDefaults fill in the POSTGRES_* variables a developer machine usually lacks
var localDefaults = map[string]string{
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_HOSTNAME": "localhost",
}

func getenv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return localDefaults[key]
}

// SetupTestDatabase creates a seeded catalog in a fresh schema and drops it
// when the test ends
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	pgConfig, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}

	admin, err := database.Open(pgConfig)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}

	schema := "catalog_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.Exec("CREATE SCHEMA " + pq.QuoteIdentifier(schema)); err != nil {
		admin.Close()
		t.Fatalf("Failed to create schema %s: %v", schema, err)
	}

	td := &TestDatabase{SchemaName: schema, admin: admin}
	t.Cleanup(func() { td.drop(t) })

	db, err := sql.Open("postgres", fmt.Sprintf("%s search_path=%s", pgConfig.ConnectionString(), schema))
	if err != nil {
		t.Fatalf("Failed to open schema %s: %v", schema, err)
	}
	db.SetMaxOpenConns(2)
	td.DB = db

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate schema %s: %v", schema, err)
	}
	return td
}

func (td *TestDatabase) drop(t *testing.T) {
	if td.DB != nil {
		td.DB.Close()
	}
	if _, err := td.admin.Exec("DROP SCHEMA IF EXISTS " + pq.QuoteIdentifier(td.SchemaName) + " CASCADE"); err != nil {
		t.Logf("Warning: Failed to drop test schema %s: %v", td.SchemaName, err)
	}
	td.admin.Close()
}

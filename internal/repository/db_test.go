package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestRebind(t *testing.T) {
	query := `SELECT id FROM documents WHERE id = ? AND owner_id = ?`

	if got := rebind(DialectMySQL, query); got != query {
		t.Errorf("rebind(mysql) = %q, want unchanged", got)
	}

	want := `SELECT id FROM documents WHERE id = $1 AND owner_id = $2`
	if got := rebind(DialectPostgres, query); got != want {
		t.Errorf("rebind(postgres) = %q, want %q", got, want)
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil},
		{name: "plain", err: errors.New("Duplicate entry 'x' for key 'email'")},
		{name: "mysql duplicate", err: &mysql.MySQLError{Number: 1062}, want: true},
		{name: "mysql other", err: &mysql.MySQLError{Number: 1146}},
		{name: "wrapped pg duplicate", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "pg fk violation", err: &pgconn.PgError{Code: "23503"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateKeyError(tt.err); got != tt.want {
				t.Errorf("isDuplicateKeyError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewDBUnsupportedDialect(t *testing.T) {
	_, err := NewDB(context.Background(), Dialect("mongo"), "mongodb://localhost")
	if !errors.Is(err, ErrUnsupportedDialect) {
		t.Fatalf("NewDB error = %v, want %v", err, ErrUnsupportedDialect)
	}
}

func TestMigrateUnsupportedDialect(t *testing.T) {
	err := Migrate(context.Background(), nil, Dialect("sqlite"))
	if !errors.Is(err, ErrUnsupportedDialect) {
		t.Fatalf("Migrate error = %v, want %v", err, ErrUnsupportedDialect)
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	for _, dir := range []string{"migrations/mysql", "migrations/postgres"} {
		entries, err := migrationFiles.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir(%s): %v", dir, err)
		}
		if len(entries) == 0 {
			t.Errorf("no migrations embedded under %s", dir)
		}
	}
}

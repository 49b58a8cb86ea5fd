package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestShippedMigrationsAreValid(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "add_users.sql")
	if err := os.WriteFile(path, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "invalid migration filename") {
		t.Fatalf("expected filename error, got %v", err)
	}
}

func TestValidateDirRejectsMissingGooseMarkers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "20260101000000_add_users.sql")
	if err := os.WriteFile(path, []byte("CREATE TABLE users (id uuid);"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "+goose Up") {
		t.Fatalf("expected goose marker error, got %v", err)
	}
}

func TestValidateDirRejectsDuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	content := []byte("-- +goose Up\n-- +goose Down\n")
	for _, name := range []string{"20260101000000_first.sql", "20260101000000_second.sql"} {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	err := ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Wishlist Table!")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	base := filepath.Base(path)
	if !sqlFileRe.MatchString(base) {
		t.Errorf("filename %q does not match the migration pattern", base)
	}
	if !strings.Contains(base, "add_wishlist_table") {
		t.Errorf("filename %q should carry the sanitized name", base)
	}

	if err := ValidateDir(dir); err != nil {
		t.Errorf("generated migration should validate: %v", err)
	}
}

func TestCreateSQLMigrationRequiresUsableName(t *testing.T) {
	if _, err := CreateSQLMigration(t.TempDir(), "!!!"); err == nil {
		t.Error("expected an error for a name with no usable characters")
	}
}

package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWishlistItemsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_wishlist_items.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no wishlist items migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS wishlist_items",
		"REFERENCES wishlists (id) ON DELETE CASCADE",
		"CHECK (quantity >= 1)",
		"UNIQUE (wishlist_id, product_id)",
		"DROP TABLE IF EXISTS wishlist_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestWishlistsMigrationContainsUniqueName(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_wishlists.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no wishlists migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS wishlists",
		"CONSTRAINT wishlists_name_key UNIQUE (name)",
		"DROP TABLE IF EXISTS wishlists",
	} {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

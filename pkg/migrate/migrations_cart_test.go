package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maisonluxe/storefront-backend/pkg/migrate"
)

func TestCartMigrationsContainConstraints(t *testing.T) {
	cases := []struct {
		glob   string
		checks []string
	}{
		{
			glob: "*_create_carts.sql",
			checks: []string{
				"CREATE TABLE IF NOT EXISTS carts",
				"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL",
				"DROP TABLE IF EXISTS carts",
			},
		},
		{
			glob: "*_create_cart_lines.sql",
			checks: []string{
				"CREATE TABLE IF NOT EXISTS cart_lines",
				"FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE",
				"CHECK (quantity >= 1)",
				"UNIQUE (cart_id, product_id)",
				"DROP TABLE IF EXISTS cart_lines",
			},
		},
		{
			glob: "*_create_users.sql",
			checks: []string{
				"CREATE TABLE IF NOT EXISTS users",
				"idx_users_verification_token",
				"WHERE verification_token IS NOT NULL",
				"DROP TABLE IF EXISTS users",
			},
		},
	}

	for _, tc := range cases {
		matches, err := filepath.Glob(filepath.Join("migrations", tc.glob))
		if err != nil {
			t.Fatalf("glob migrations: %v", err)
		}
		if len(matches) == 0 {
			t.Fatalf("no migration file matching %q", tc.glob)
		}

		data, err := os.ReadFile(matches[0])
		if err != nil {
			t.Fatalf("read migration file: %v", err)
		}
		content := string(data)

		for _, sub := range tc.checks {
			if !strings.Contains(content, sub) {
				t.Errorf("%s: missing expected statement %q", matches[0], sub)
			}
		}
	}
}

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir should validate: %v", err)
	}
}

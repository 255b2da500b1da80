package database

import "testing"

func TestMigrationVersion(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected int
	}{
		{"initial schema", "001_initial_schema.sql", 1},
		{"multi digit", "012_add_indexes.sql", 12},
		{"no padding", "2_fixup.sql", 2},
		{"not sql", "001_initial_schema.txt", 0},
		{"no underscore", "schema.sql", 0},
		{"non numeric prefix", "abc_schema.sql", 0},
		{"zero version", "000_noop.sql", 0},
		{"negative version", "-1_bad.sql", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := migrationVersion(tc.filename); got != tc.expected {
				t.Errorf("migrationVersion(%q) = %d, want %d", tc.filename, got, tc.expected)
			}
		})
	}
}

package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDailyBucketMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_daily_buckets.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS daily_buckets",
		"CONSTRAINT uq_daily_buckets_property_date UNIQUE (property_id, bucket_date)",
		"CHECK (views >= 0)",
		"CHECK (leads >= 0)",
		"DROP TABLE IF EXISTS daily_buckets",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}

	// Events for unknown property ids are absorbed silently, so bucket rows
	// must not reference properties.
	if strings.Contains(content, "FOREIGN KEY") {
		t.Error("daily_buckets must not carry a foreign key")
	}
}

func TestMonthlySummaryMigrationIsIdempotentPerMonth(t *testing.T) {
	content := readMigration(t, "*_create_monthly_summaries.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS monthly_summaries",
		"CONSTRAINT uq_monthly_summaries_property_month UNIQUE (property_id, month)",
		"DROP TABLE IF EXISTS monthly_summaries",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %s found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

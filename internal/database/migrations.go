package database

import (
	"fmt"
	"log"
)

// AddIndexes adds indexes used by the hot list and aggregation queries.
func AddIndexes() error {
	db := DB
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Workout listing is always owner-scoped and ordered by date.
		{"workouts", "idx_workouts_user_id_date", "user_id, date"},
		{"workouts", "idx_workouts_user_id_type", "user_id, type"},

		// Token resolution looks up (user_id, token) on every API request.
		{"auth_tokens", "idx_auth_tokens_user_id", "user_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}

package repositories

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB opens a gorm handle that only builds SQL, capturing every
// generated query so tests can assert on the statements a repository
// produces without a reachable database.
func newDryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()

	db, err := gorm.Open(postgres.Open("host=localhost user=thryfto dbname=thryfto_test sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	assert.NoError(t, err)

	captured := &[]string{}
	// In DryRun mode gorm skips the SQL reset it normally performs between
	// finishers, so a second query on the same chain would reuse the stale
	// buffer; reset here so each finisher builds its own SQL as it would
	// against a real database.
	err = db.Callback().Query().Before("gorm:query").Register("test:reset_sql", func(tx *gorm.DB) {
		tx.Statement.SQL.Reset()
		tx.Statement.Vars = nil
	})
	assert.NoError(t, err)
	err = db.Callback().Query().After("gorm:query").Register("test:capture_sql", func(tx *gorm.DB) {
		*captured = append(*captured, tx.Statement.SQL.String())
	})
	assert.NoError(t, err)
	return db, captured
}

func TestFindUserNotifications_UnreadSortFirst(t *testing.T) {
	t.Parallel()

	db, captured := newDryRunDB(t)
	repo := NewNotificationRepository(db)

	_, _, err := repo.FindUserNotifications("user-1", NotificationCriteria{})
	assert.NoError(t, err)

	// A read entry created a minute ago must never outrank an unread
	// one from last week, so recency sorts within read-state groups.
	var listSQL string
	for _, sql := range *captured {
		if strings.Contains(sql, "ORDER BY") {
			listSQL = sql
		}
	}
	assert.Contains(t, listSQL, "ORDER BY is_read ASC, created_at DESC")
}

func TestFindUserNotifications_HidesExpired(t *testing.T) {
	t.Parallel()

	db, captured := newDryRunDB(t)
	repo := NewNotificationRepository(db)

	_, _, err := repo.FindUserNotifications("user-1", NotificationCriteria{UnreadOnly: true})
	assert.NoError(t, err)

	assert.NotEmpty(t, *captured)
	for _, sql := range *captured {
		assert.Contains(t, sql, "expires_at > ")
	}
}

package mailqueue_test

import (
	"context"
	"testing"
	"time"

	"go-doctask/internal/mailqueue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoTest(t *testing.T) mailqueue.Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&mailqueue.EmailQueue{}))
	return mailqueue.NewRepository(db)
}

func seedRecord(t *testing.T, repo mailqueue.Repository, status string, nextTryAt *time.Time) *mailqueue.EmailQueue {
	t.Helper()
	rec := &mailqueue.EmailQueue{
		ID:           uuid.New(),
		CompanyID:    uuid.New(),
		ToAddress:    "staff@acme.test",
		Subject:      "Reminder: upload documents",
		EntityID:     uuid.New(),
		Status:       status,
		NextTryAtUtc: nextTryAt,
		Version:      1,
	}
	assert.NoError(t, repo.Enqueue(context.Background(), rec))
	return rec
}

func TestMailQueueRepository_ListDue(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	t.Run("returns pending records that are due", func(t *testing.T) {
		repo := setupRepoTest(t)

		due := seedRecord(t, repo, mailqueue.StatusPending, &past)
		nullSchedule := seedRecord(t, repo, mailqueue.StatusPending, nil)
		seedRecord(t, repo, mailqueue.StatusPending, &future)
		seedRecord(t, repo, mailqueue.StatusSent, &past)
		seedRecord(t, repo, mailqueue.StatusFailed, &past)

		records, err := repo.ListDue(context.Background(), now, 100)

		assert.NoError(t, err)
		assert.Len(t, records, 2)
		ids := []uuid.UUID{records[0].ID, records[1].ID}
		assert.Contains(t, ids, due.ID)
		assert.Contains(t, ids, nullSchedule.ID)
	})

	t.Run("spans tenants", func(t *testing.T) {
		repo := setupRepoTest(t)

		first := seedRecord(t, repo, mailqueue.StatusPending, &past)
		second := seedRecord(t, repo, mailqueue.StatusPending, &past)
		assert.NotEqual(t, first.CompanyID, second.CompanyID)

		records, err := repo.ListDue(context.Background(), now, 100)

		assert.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("honours the batch limit", func(t *testing.T) {
		repo := setupRepoTest(t)

		for i := 0; i < 5; i++ {
			seedRecord(t, repo, mailqueue.StatusPending, &past)
		}

		records, err := repo.ListDue(context.Background(), now, 3)

		assert.NoError(t, err)
		assert.Len(t, records, 3)
	})
}

func TestMailQueueRepository_Save(t *testing.T) {
	now := time.Now().UTC()

	t.Run("persists retry bookkeeping", func(t *testing.T) {
		repo := setupRepoTest(t)
		past := now.Add(-time.Hour)
		rec := seedRecord(t, repo, mailqueue.StatusPending, &past)

		nextTry := now.Add(24 * time.Hour)
		sendErr := "dial tcp: connection refused"
		rec.TryCount = 1
		rec.NextTryAtUtc = &nextTry
		rec.Error = &sendErr
		assert.NoError(t, repo.Save(context.Background(), rec))

		records, err := repo.ListDue(context.Background(), now, 100)
		assert.NoError(t, err)
		assert.Empty(t, records)

		later, err := repo.ListDue(context.Background(), now.Add(25*time.Hour), 100)
		assert.NoError(t, err)
		assert.Len(t, later, 1)
		assert.Equal(t, 1, later[0].TryCount)
	})

	t.Run("terminal failure leaves the queue", func(t *testing.T) {
		repo := setupRepoTest(t)
		past := now.Add(-time.Hour)
		rec := seedRecord(t, repo, mailqueue.StatusPending, &past)

		rec.Status = mailqueue.StatusFailed
		rec.NextTryAtUtc = nil
		assert.NoError(t, repo.Save(context.Background(), rec))

		records, err := repo.ListDue(context.Background(), now.Add(240*time.Hour), 100)
		assert.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("sent record keeps rendered body", func(t *testing.T) {
		repo := setupRepoTest(t)
		past := now.Add(-time.Hour)
		rec := seedRecord(t, repo, mailqueue.StatusPending, &past)

		sentAt := now
		rec.Status = mailqueue.StatusSent
		rec.Body = "<html>rendered reminder</html>"
		rec.SentAtUtc = &sentAt
		assert.NoError(t, repo.Save(context.Background(), rec))

		records, err := repo.ListDue(context.Background(), now, 100)
		assert.NoError(t, err)
		assert.Empty(t, records)
	})
}

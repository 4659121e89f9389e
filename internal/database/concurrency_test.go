package database

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentRegistrationSameEmail(t *testing.T) {
	logger := zerolog.Nop()
	dbPath := filepath.Join(t.TempDir(), "concurrency.db")
	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	const numGoroutines = 10
	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	results := make(chan error, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			results <- db.CreateUser(ctx, &models.User{Name: fmt.Sprintf("user-%d", id), Email: "same@example.com"})
		}(i)
	}

	wg.Wait()
	close(results)

	successCount := 0
	conflictCount := 0
	for err := range results {
		switch {
		case err == nil:
			successCount++
		case assert.ErrorIs(t, err, domain.ErrConflict):
			conflictCount++
		}
	}

	assert.Equal(t, 1, successCount, "Exactly one registration should succeed")
	assert.Equal(t, numGoroutines-1, conflictCount)
}

func TestConcurrentApproval(t *testing.T) {
	logger := zerolog.Nop()
	dbPath := filepath.Join(t.TempDir(), "approval.db")
	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	booking := &models.Booking{
		Start:    time.Now().Add(time.Hour),
		End:      time.Now().Add(2 * time.Hour),
		Status:   models.StatusWaiting,
		ItemID:   1,
		BookerID: 2,
	}
	require.NoError(t, db.CreateBooking(ctx, booking))

	const numGoroutines = 8
	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	results := make(chan error, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(approve bool) {
			defer wg.Done()
			to := models.StatusRejected
			if approve {
				to = models.StatusApproved
			}
			results <- db.UpdateBookingStatus(ctx, booking.ID, models.StatusWaiting, to)
		}(i%2 == 0)
	}

	wg.Wait()
	close(results)

	successCount := 0
	for err := range results {
		if err == nil {
			successCount++
		}
	}
	assert.Equal(t, 1, successCount, "Only one decision should be recorded")
}

package workers

import (
	"errors"
	"testing"
	"time"

	"hirelink_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotificationService struct {
	deleted int64
	err     error
	cutoff  time.Time
}

func (s *stubNotificationService) CreateNotification(*dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	return nil, nil
}
func (s *stubNotificationService) ListForUser(string, string, int, int) (*dto.NotificationListResponse, error) {
	return nil, nil
}
func (s *stubNotificationService) MarkRead(string, string, string) (*dto.NotificationResponse, error) {
	return nil, nil
}
func (s *stubNotificationService) MarkAllRead(string, string) (int64, error) { return 0, nil }
func (s *stubNotificationService) Delete(string, string, string) error       { return nil }
func (s *stubNotificationService) UnreadCount(string, string) (int64, error) { return 0, nil }
func (s *stubNotificationService) DeleteExpired(cutoff time.Time) (int64, error) {
	s.cutoff = cutoff
	return s.deleted, s.err
}

func TestCleanupWorker_CutoffMatchesTTL(t *testing.T) {
	stub := &stubNotificationService{deleted: 5}
	worker := NewCleanupWorker(stub)

	require.NoError(t, worker.RunOnce())

	wantCutoff := time.Now().Add(-30 * 24 * time.Hour)
	assert.WithinDuration(t, wantCutoff, stub.cutoff, time.Minute)
}

func TestCleanupWorker_ErrorSurfaces(t *testing.T) {
	stub := &stubNotificationService{err: errors.New("db gone")}
	worker := NewCleanupWorker(stub)

	assert.Error(t, worker.RunOnce())
}

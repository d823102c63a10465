package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"seedround/pkg/apperr"
)

type mockNotificationRepository struct {
	mock.Mock
}

func (m *mockNotificationRepository) CreateNotification(ctx context.Context, recipientID int64, notifType, message string) (Notification, error) {
	args := m.Called(ctx, recipientID, notifType, message)
	n, _ := args.Get(0).(Notification)
	return n, args.Error(1)
}

func (m *mockNotificationRepository) ListByRecipient(ctx context.Context, recipientID int64, limit, offset int) ([]Notification, int64, error) {
	args := m.Called(ctx, recipientID, limit, offset)
	list, _ := args.Get(0).([]Notification)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationRepository) MarkSeen(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockNotificationRepository) MarkAllSeen(ctx context.Context, recipientID int64) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepository) GetRecipientEmail(ctx context.Context, recipientID int64) (string, error) {
	args := m.Called(ctx, recipientID)
	return args.String(0), args.Error(1)
}

func TestNotificationService_Notify_StoresAndPushesToFeed(t *testing.T) {
	repo := new(mockNotificationRepository)
	feed := NewFeed()
	service := NewNotificationService(repo, feed, nil)

	stored := Notification{ID: 1, RecipientID: 2, Type: TypeInvestmentReceived, Message: "hello"}
	repo.On("CreateNotification", mock.Anything, int64(2), TypeInvestmentReceived, "hello").Return(stored, nil)

	client := feed.AddClient(2, nil)

	n, err := service.Notify(context.Background(), 2, TypeInvestmentReceived, "hello")

	require.NoError(t, err)
	require.Equal(t, stored.ID, n.ID)

	select {
	case payload := <-client.Send:
		pushed, ok := payload.(Notification)
		require.True(t, ok)
		require.Equal(t, stored.ID, pushed.ID)
	default:
		t.Fatal("expected a payload on the feed channel")
	}

	repo.AssertExpectations(t)
}

func TestNotificationService_Notify_FeedMissIsNotAnError(t *testing.T) {
	repo := new(mockNotificationRepository)
	feed := NewFeed()
	service := NewNotificationService(repo, feed, nil)

	stored := Notification{ID: 1, RecipientID: 2, Type: TypePoolCompleted, Message: "done"}
	repo.On("CreateNotification", mock.Anything, int64(2), TypePoolCompleted, "done").Return(stored, nil)

	// Recipient has no live connection; Notify still succeeds.
	n, err := service.Notify(context.Background(), 2, TypePoolCompleted, "done")

	require.NoError(t, err)
	require.Equal(t, stored.ID, n.ID)
	repo.AssertExpectations(t)
}

func TestNotificationService_Notify_RecipientMissing(t *testing.T) {
	repo := new(mockNotificationRepository)
	service := NewNotificationService(repo, nil, nil)

	repo.On("CreateNotification", mock.Anything, int64(99), TypeInvestmentAccepted, "x").
		Return(Notification{}, ErrRecipientNotFound)

	_, err := service.Notify(context.Background(), 99, TypeInvestmentAccepted, "x")

	require.True(t, apperr.Is(err, apperr.KindNotFound))
	repo.AssertExpectations(t)
}

func TestNotificationService_MarkSeen_NotFound(t *testing.T) {
	repo := new(mockNotificationRepository)
	service := NewNotificationService(repo, nil, nil)

	repo.On("MarkSeen", mock.Anything, int64(99)).Return(ErrNotificationNotFound)

	err := service.MarkSeen(context.Background(), 99)

	require.True(t, apperr.Is(err, apperr.KindNotFound))
	repo.AssertExpectations(t)
}

func TestNotificationService_ListNotifications_PaginationDefaults(t *testing.T) {
	repo := new(mockNotificationRepository)
	service := NewNotificationService(repo, nil, nil)

	repo.On("ListByRecipient", mock.Anything, int64(2), 10, 0).Return([]Notification{}, int64(0), nil)

	_, _, err := service.ListNotifications(context.Background(), 2, 0, 0)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestNotificationService_MarkAllSeen_ReturnsCount(t *testing.T) {
	repo := new(mockNotificationRepository)
	service := NewNotificationService(repo, nil, nil)

	repo.On("MarkAllSeen", mock.Anything, int64(2)).Return(int64(3), nil)

	count, err := service.MarkAllSeen(context.Background(), 2)

	require.NoError(t, err)
	require.EqualValues(t, 3, count)
	repo.AssertExpectations(t)
}

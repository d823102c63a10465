package notifications

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeed_PushToConnectedClient(t *testing.T) {
	feed := NewFeed()
	client := feed.AddClient(1, nil)

	require.True(t, feed.IsConnected(1))
	require.NoError(t, feed.Push(1, Notification{ID: 7}))

	payload := <-client.Send
	n, ok := payload.(Notification)
	require.True(t, ok)
	require.EqualValues(t, 7, n.ID)
}

func TestFeed_PushToDisconnectedProfile(t *testing.T) {
	feed := NewFeed()

	err := feed.Push(42, Notification{ID: 1})

	require.Error(t, err)
	require.False(t, feed.IsConnected(42))
}

func TestFeed_RemoveClient(t *testing.T) {
	feed := NewFeed()
	client := feed.AddClient(1, nil)

	feed.RemoveClient(1)

	require.False(t, feed.IsConnected(1))
	select {
	case <-client.Done:
	default:
		t.Fatal("expected Done to be closed on removal")
	}

	require.Error(t, feed.Push(1, Notification{ID: 1}))
}

func TestFeed_PushQueueFull(t *testing.T) {
	feed := NewFeed()
	client := feed.AddClient(1, nil)

	for i := 0; i < cap(client.Send); i++ {
		require.NoError(t, feed.Push(1, Notification{ID: int64(i)}))
	}

	// Buffer is full and nothing drains it; the push is dropped with an error.
	require.Error(t, feed.Push(1, Notification{ID: 999}))
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/specs"
	"marketplace/internal/testutil"
)

func TestMessagingService(t *testing.T) {
	ctx := context.Background()
	db, f := newFactory(t)
	svc := NewMessagingService(f).(*messagingService)

	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	alice := testutil.User(t, db, "alice")
	bob := testutil.User(t, db, "bob")
	carol := testutil.User(t, db, "carol")

	send := func(from, to int64, body string) string {
		t.Helper()
		m, err := svc.Send(ctx, NewMessage{SenderID: from, ReceiverID: to, Body: body})
		require.NoError(t, err)
		require.Len(t, m.ID, 36)
		return m.ID
	}
	send(alice.ID, bob.ID, "hi")
	send(bob.ID, alice.ID, "hello")
	last := send(alice.ID, bob.ID, "is the cat still available?")
	send(carol.ID, bob.ID, "unrelated")

	t.Run("conversation", func(t *testing.T) {
		res, err := svc.Conversation(ctx, specs.ConversationParams{UserID: bob.ID, PeerID: alice.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 3, res.Count)
		require.Len(t, res.Data, 3)
		assert.Equal(t, last, res.Data[0].ID)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.Send(ctx, NewMessage{SenderID: alice.ID, ReceiverID: alice.ID, Body: "me"})
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = svc.Send(ctx, NewMessage{SenderID: alice.ID, ReceiverID: bob.ID, Body: ""})
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = svc.Send(ctx, NewMessage{SenderID: alice.ID, ReceiverID: 9999, Body: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("mark read", func(t *testing.T) {
		n, err := svc.UnreadCount(ctx, bob.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)

		marked, err := svc.MarkConversationRead(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, marked)

		n, err = svc.UnreadCount(ctx, bob.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		marked, err = svc.MarkConversationRead(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.Zero(t, marked)

		unread, err := svc.Conversation(ctx, specs.ConversationParams{UserID: alice.ID, PeerID: bob.ID, UnreadOnly: true})
		require.NoError(t, err)
		assert.EqualValues(t, 1, unread.Count)
	})
}

package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/infrastructure/ratelimit"
	ws "campusmarket/internal/infrastructure/websocket"
	"campusmarket/pkg/errors"
)

func TestCreateThreadReturnsExistingThreadForPair(t *testing.T) {
	f := newFixture(t, slowNotifications(), nil)
	ctx := context.Background()
	listing := f.createListing(t, "sarah", "Mini Fridge", "80")

	first, err := f.chatUC.CreateThread(ctx, "alex", CreateThreadInput{RecipientID: "sarah", ListingID: listing.ID})
	require.NoError(t, err)
	assert.True(t, first.IsOpen)
	assert.Equal(t, 0, first.Unread)
	assert.Equal(t, 0, first.MessageCount)
	require.NotNil(t, first.Listing)
	assert.Equal(t, "$80", first.Listing.Price)

	second, err := f.chatUC.CreateThread(ctx, "sarah", CreateThreadInput{RecipientID: "alex"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, listing.ID, second.Listing.ID)

	threads, err := f.chatUC.ListThreads(ctx, "alex")
	require.NoError(t, err)
	assert.Len(t, threads, 1)
}

func TestCreateThreadConcurrentCallersShareOneThread(t *testing.T) {
	f := newFixture(t, slowNotifications(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 10)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from, to := "alex", "sarah"
			if i%2 == 1 {
				from, to = to, from
			}
			thread, err := f.chatUC.CreateThread(ctx, from, CreateThreadInput{RecipientID: to})
			if assert.NoError(t, err) {
				ids[i] = thread.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestCreateThreadRejectsBadInput(t *testing.T) {
	f := newFixture(t, slowNotifications(), nil)
	ctx := context.Background()

	_, err := f.chatUC.CreateThread(ctx, "alex", CreateThreadInput{RecipientID: "alex"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = f.chatUC.CreateThread(ctx, "alex", CreateThreadInput{RecipientID: "ghost"})
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	_, err = f.chatUC.CreateThread(ctx, "alex", CreateThreadInput{RecipientID: "sarah", ListingID: "missing"})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestSendMessageUpdatesUnreadAndNotifies(t *testing.T) {
	f := newFixture(t, slowNotifications(), nil)
	ctx := context.Background()
	listing := f.createListing(t, "sarah", "Mini Fridge", "80")

	thread, err := f.chatUC.CreateThread(ctx, "alex", CreateThreadInput{RecipientID: "sarah", ListingID: listing.ID})
	require.NoError(t, err)

	_, err = f.chatUC.SendMessage(ctx, "alex", SendMessageInput{ThreadID: thread.ID, Text: "Is it still available?"})
	require.NoError(t, err)
	msg, err := f.chatUC.SendMessage(ctx, "alex", SendMessageInput{ThreadID: thread.ID, Text: "  I can pick up today  "})
	require.NoError(t, err)
	assert.Equal(t, "I can pick up today", msg.Text)

	forSarah, err := f.chatUC.GetThread(ctx, "sarah", thread.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, forSarah.Unread)
	assert.Equal(t, 2, forSarah.MessageCount)
	assert.Equal(t, "I can pick up today", forSarah.LastMessage)

	forAlex, err := f.chatUC.GetThread(ctx, "alex", thread.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, forAlex.Unread)

	notifications, err := f.notificationUC.All(ctx, "sarah")
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, entity.NotificationMessage, notifications[0].Type)
	assert.Equal(t, thread.ID, notifications[0].ThreadID)

	_, err = f.chatUC.SendMessage(ctx, "sarah", SendMessageInput{ThreadID: thread.ID, Text: "Yes!"})
	require.NoError(t, err)
	replies, err := f.notificationUC.All(ctx, "alex")
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, entity.NotificationResponse, replies[0].Type)

	assert.Contains(t, f.publisher.types("sarah"), ws.MessageTypeNewMessage)
	assert.Contains(t, f.publisher.types("sarah"), ws.MessageTypeNotification)
	assert.Contains(t, f.publisher.types("alex"), ws.MessageTypeThreadUpdate)
}

func TestSendMessageErrors(t *testing.T) {
	f := newFixture(t, slowNotifications(), nil)
	ctx := context.Background()
	thread, err := f.chatUC.CreateThread(ctx, "alex", CreateThreadInput{RecipientID: "sarah"})
	require.NoError(t, err)

	_, err = f.chatUC.SendMessage(ctx, "alex", SendMessageInput{ThreadID: "missing", Text: "hi"})
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	_, err = f.chatUC.SendMessage(ctx, "mike", SendMessageInput{ThreadID: thread.ID, Text: "hi"})
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	_, err = f.chatUC.SendMessage(ctx, "alex", SendMessageInput{ThreadID: thread.ID, Text: "   "})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	got, err := f.chatUC.GetThread(ctx, "sarah", thread.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.MessageCount)
}

func TestSendMessageRateLimited(t *testing.T) {
	limiter := ratelimit.NewRateLimiter(map[string]ratelimit.Policy{
		actionSendMessage: {Burst: 2, Every: time.Hour},
	}, ratelimit.Policy{Burst: 100, Every: time.Millisecond})
	f := newFixture(t, slowNotifications(), limiter)
	ctx := context.Background()
	thread, err := f.chatUC.CreateThread(ctx, "alex", CreateThreadInput{RecipientID: "sarah"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := f.chatUC.SendMessage(ctx, "alex", SendMessageInput{ThreadID: thread.ID, Text: "hi"})
		require.NoError(t, err)
	}
	_, err = f.chatUC.SendMessage(ctx, "alex", SendMessageInput{ThreadID: thread.ID, Text: "hi"})
	assert.True(t, errors.Is(err, errors.CodeTooManyRequests))

	// other users have their own budget
	_, err = f.chatUC.SendMessage(ctx, "sarah", SendMessageInput{ThreadID: thread.ID, Text: "hey"})
	assert.NoError(t, err)
}

func TestUnreadTotalMatchesThreads(t *testing.T) {
	f := newFixture(t, slowNotifications(), nil)
	ctx := context.Background()

	withSarah, err := f.chatUC.CreateThread(ctx, "sarah", CreateThreadInput{RecipientID: "alex"})
	require.NoError(t, err)
	withMike, err := f.chatUC.CreateThread(ctx, "mike", CreateThreadInput{RecipientID: "alex"})
	require.NoError(t, err)

	send := func(from, threadID string, n int) {
		for i := 0; i < n; i++ {
			_, err := f.chatUC.SendMessage(ctx, from, SendMessageInput{ThreadID: threadID, Text: "ping"})
			require.NoError(t, err)
		}
	}
	send("sarah", withSarah.ID, 3)
	send("mike", withMike.ID, 2)

	check := func(expected int) {
		summary, err := f.chatUC.UnreadTotal(ctx, "alex")
		require.NoError(t, err)
		threads, err := f.chatUC.ListThreads(ctx, "alex")
		require.NoError(t, err)
		sum := 0
		for _, th := range threads {
			sum += th.Unread
		}
		assert.Equal(t, expected, summary.Total)
		assert.Equal(t, sum, summary.Total)
	}

	check(5)

	require.NoError(t, f.chatUC.MarkAsRead(ctx, "alex", withSarah.ID))
	check(2)
	// idempotent
	require.NoError(t, f.chatUC.MarkAsRead(ctx, "alex", withSarah.ID))
	check(2)

	assert.True(t, errors.Is(f.chatUC.MarkAsRead(ctx, "alex", "missing"), errors.CodeNotFound))
}

func TestListThreadsNewestActivityFirst(t *testing.T) {
	f := newFixture(t, slowNotifications(), nil)
	ctx := context.Background()

	older, err := f.chatUC.CreateThread(ctx, "alex", CreateThreadInput{RecipientID: "sarah"})
	require.NoError(t, err)
	newer, err := f.chatUC.CreateThread(ctx, "alex", CreateThreadInput{RecipientID: "mike"})
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	_, err = f.chatUC.SendMessage(ctx, "sarah", SendMessageInput{ThreadID: older.ID, Text: "bump"})
	require.NoError(t, err)

	threads, err := f.chatUC.ListThreads(ctx, "alex")
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, older.ID, threads[0].ID)
	assert.Equal(t, newer.ID, threads[1].ID)
	assert.Equal(t, "sarah", threads[0].OtherUser.ID)
}

func TestToggleCloseAndTyping(t *testing.T) {
	f := newFixture(t, slowNotifications(), nil)
	ctx := context.Background()
	thread, err := f.chatUC.CreateThread(ctx, "alex", CreateThreadInput{RecipientID: "sarah"})
	require.NoError(t, err)

	open, err := f.chatUC.ToggleChat(ctx, "alex", thread.ID)
	require.NoError(t, err)
	assert.False(t, open)
	open, err = f.chatUC.ToggleChat(ctx, "alex", thread.ID)
	require.NoError(t, err)
	assert.True(t, open)

	require.NoError(t, f.chatUC.SetTyping(ctx, "sarah", thread.ID, true))
	view, err := f.chatUC.GetThread(ctx, "alex", thread.ID)
	require.NoError(t, err)
	assert.True(t, view.IsTyping)
	assert.Contains(t, f.publisher.types("alex"), ws.MessageTypeTyping)

	require.NoError(t, f.chatUC.CloseChat(ctx, "alex", thread.ID))
	view, err = f.chatUC.GetThread(ctx, "alex", thread.ID)
	require.NoError(t, err)
	assert.False(t, view.IsOpen)

	_, err = f.chatUC.ToggleChat(ctx, "mike", thread.ID)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestMessagesPaginatesInCreationOrder(t *testing.T) {
	f := newFixture(t, slowNotifications(), nil)
	ctx := context.Background()
	thread, err := f.chatUC.CreateThread(ctx, "alex", CreateThreadInput{RecipientID: "sarah"})
	require.NoError(t, err)

	for _, text := range []string{"one", "two", "three"} {
		_, err := f.chatUC.SendMessage(ctx, "alex", SendMessageInput{ThreadID: thread.ID, Text: text})
		require.NoError(t, err)
	}

	page, total, err := f.chatUC.Messages(ctx, "sarah", thread.ID, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, "two", page[0].Text)
	assert.Equal(t, "three", page[1].Text)

	_, _, err = f.chatUC.Messages(ctx, "mike", thread.ID, 10, 0)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

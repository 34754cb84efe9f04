package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/domain/entity"
	"campusmarket/pkg/errors"
)

func fastNotifications() NotificationConfig {
	return NotificationConfig{
		TTL:          40 * time.Millisecond,
		ClearDelay:   40 * time.Millisecond,
		ClickDelay:   20 * time.Millisecond,
		VisibleLimit: 3,
	}
}

func notify(t *testing.T, uc *NotificationUseCase, userID, title string) *entity.Notification {
	t.Helper()
	n, err := uc.Notify(context.Background(), NotifyInput{
		UserID: userID,
		Type:   entity.NotificationMessage,
		Title:  title,
	})
	require.NoError(t, err)
	return n
}

func TestNotificationExpiresThenClears(t *testing.T) {
	f := newFixture(t, fastNotifications(), nil)
	ctx := context.Background()
	n := notify(t, f.notificationUC, "alex", "hello")

	visible, err := f.notificationUC.Visible(ctx, "alex")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.NotEmpty(t, visible[0].TimeAgo)

	assert.Eventually(t, func() bool {
		stored, err := f.notifications.GetByID(ctx, n.ID)
		return err == nil && stored.Read
	}, time.Second, 5*time.Millisecond)

	visible, err = f.notificationUC.Visible(ctx, "alex")
	require.NoError(t, err)
	assert.Empty(t, visible)

	assert.Eventually(t, func() bool {
		_, err := f.notifications.GetByID(ctx, n.ID)
		return errors.Is(err, errors.CodeNotFound)
	}, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return f.notificationUC.pending() == 0 }, time.Second, 5*time.Millisecond)
}

func TestClickOpensThreadAndClears(t *testing.T) {
	cfg := slowNotifications()
	cfg.ClickDelay = 20 * time.Millisecond
	f := newFixture(t, cfg, nil)
	ctx := context.Background()

	thread, err := f.chatUC.CreateThread(ctx, "sarah", CreateThreadInput{RecipientID: "alex"})
	require.NoError(t, err)
	_, err = f.chatUC.SendMessage(ctx, "sarah", SendMessageInput{ThreadID: thread.ID, Text: "hi"})
	require.NoError(t, err)

	all, err := f.notificationUC.All(ctx, "alex")
	require.NoError(t, err)
	require.Len(t, all, 1)

	clicked, err := f.notificationUC.Click(ctx, "alex", all[0].ID)
	require.NoError(t, err)
	assert.True(t, clicked.Read)

	view, err := f.chatUC.GetThread(ctx, "alex", thread.ID)
	require.NoError(t, err)
	assert.True(t, view.IsOpen)

	assert.Eventually(t, func() bool {
		_, err := f.notifications.GetByID(ctx, all[0].ID)
		return errors.Is(err, errors.CodeNotFound)
	}, time.Second, 5*time.Millisecond)
}

func TestClickCancelsExpiry(t *testing.T) {
	cfg := NotificationConfig{TTL: 30 * time.Millisecond, ClearDelay: 10 * time.Millisecond, ClickDelay: time.Hour, VisibleLimit: 3}
	f := newFixture(t, cfg, nil)
	ctx := context.Background()
	n := notify(t, f.notificationUC, "alex", "hello")

	_, err := f.notificationUC.Click(ctx, "alex", n.ID)
	require.NoError(t, err)

	// the expiry path would have removed it by now
	time.Sleep(100 * time.Millisecond)
	stored, err := f.notifications.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, stored.Read)
	assert.Equal(t, 1, f.notificationUC.pending())
}

func TestDismissRemovesImmediately(t *testing.T) {
	f := newFixture(t, slowNotifications(), nil)
	ctx := context.Background()
	n := notify(t, f.notificationUC, "alex", "hello")
	assert.Equal(t, 1, f.notificationUC.pending())

	assert.True(t, errors.Is(f.notificationUC.Dismiss(ctx, "sarah", n.ID), errors.CodeForbidden))
	require.NoError(t, f.notificationUC.Dismiss(ctx, "alex", n.ID))

	_, err := f.notifications.GetByID(ctx, n.ID)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.Equal(t, 0, f.notificationUC.pending())

	assert.True(t, errors.Is(f.notificationUC.Dismiss(ctx, "alex", n.ID), errors.CodeNotFound))
}

func TestVisibleCapsNewestFirst(t *testing.T) {
	f := newFixture(t, slowNotifications(), nil)
	ctx := context.Background()
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		notify(t, f.notificationUC, "alex", title)
	}

	visible, err := f.notificationUC.Visible(ctx, "alex")
	require.NoError(t, err)
	require.Len(t, visible, 3)
	assert.Equal(t, "five", visible[0].Title)
	assert.Equal(t, "three", visible[2].Title)

	all, err := f.notificationUC.All(ctx, "alex")
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestNotifyRejectsUnknownType(t *testing.T) {
	f := newFixture(t, slowNotifications(), nil)
	_, err := f.notificationUC.Notify(context.Background(), NotifyInput{UserID: "alex", Type: "spam"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestCloseStopsTimers(t *testing.T) {
	f := newFixture(t, fastNotifications(), nil)
	ctx := context.Background()
	n := notify(t, f.notificationUC, "alex", "hello")

	f.notificationUC.Close()
	assert.Equal(t, 0, f.notificationUC.pending())

	time.Sleep(100 * time.Millisecond)
	stored, err := f.notifications.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, stored.Read)
}

func TestLateExpiryKeepsClickTimer(t *testing.T) {
	cfg := slowNotifications()
	cfg.ClickDelay = 20 * time.Millisecond
	cfg.ClearDelay = time.Hour
	f := newFixture(t, cfg, nil)
	ctx := context.Background()
	n := notify(t, f.notificationUC, "alex", "hello")

	_, err := f.notificationUC.Click(ctx, "alex", n.ID)
	require.NoError(t, err)

	// expiry callback that was already running when the click landed
	f.notificationUC.expire(n.ID)
	assert.Equal(t, 1, f.notificationUC.pending())

	assert.Eventually(t, func() bool {
		_, err := f.notifications.GetByID(ctx, n.ID)
		return errors.Is(err, errors.CodeNotFound)
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, f.notificationUC.pending())
}

func TestCloseStopsClickTimerAfterLateExpiry(t *testing.T) {
	cfg := slowNotifications()
	cfg.ClickDelay = 20 * time.Millisecond
	f := newFixture(t, cfg, nil)
	ctx := context.Background()
	n := notify(t, f.notificationUC, "alex", "hello")

	_, err := f.notificationUC.Click(ctx, "alex", n.ID)
	require.NoError(t, err)
	f.notificationUC.expire(n.ID)

	f.notificationUC.Close()
	assert.Equal(t, 0, f.notificationUC.pending())

	time.Sleep(80 * time.Millisecond)
	stored, err := f.notifications.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, stored.Read)
}

package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	memory "campusmarket/internal/adapter/repository"
	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/internal/infrastructure/ratelimit"
	ws "campusmarket/internal/infrastructure/websocket"
)

type frame struct {
	userID string
	msg    ws.WSMessage
}

// recordingPublisher keeps every frame pushed through it.
type recordingPublisher struct {
	mu     sync.Mutex
	frames []frame
}

func (p *recordingPublisher) SendToUser(userID string, message []byte) {
	var msg ws.WSMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, frame{userID: userID, msg: msg})
}

func (p *recordingPublisher) types(userID string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []string
	for _, f := range p.frames {
		if f.userID == userID {
			out = append(out, f.msg.Type)
		}
	}
	return out
}

// pending reports how many notification timers are armed.
func (uc *NotificationUseCase) pending() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.timers)
}

type fixture struct {
	users         repository.UserRepository
	listings      repository.ListingRepository
	threads       repository.ThreadRepository
	notifications repository.NotificationRepository
	drafts        repository.DraftRepository

	publisher *recordingPublisher

	notificationUC *NotificationUseCase
	draftUC        *DraftUseCase
	listingUC      *ListingUseCase
	chatUC         *ChatUseCase
	browseUC       *BrowseUseCase
}

var testUsers = []*entity.User{
	{ID: "alex", Name: "Alex Chen", Dorm: "Whitman Hall", Verified: true, Rating: 4.9},
	{ID: "sarah", Name: "Sarah Johnson", Dorm: "West Hall", Verified: true, Rating: 4.7},
	{ID: "mike", Name: "Mike Rodriguez", Dorm: "North Campus Apartments", Rating: 4.5},
}

func newFixture(t *testing.T, cfg NotificationConfig, limiter *ratelimit.RateLimiter) *fixture {
	t.Helper()

	f := &fixture{
		users:         memory.NewMemoryUserRepository(),
		listings:      memory.NewMemoryListingRepository(),
		threads:       memory.NewMemoryThreadRepository(),
		notifications: memory.NewMemoryNotificationRepository(),
		drafts:        memory.NewMemoryDraftRepository(),
		publisher:     &recordingPublisher{},
	}

	now := time.Now()
	for _, u := range testUsers {
		user := *u
		user.JoinedAt = now.Add(-365 * 24 * time.Hour)
		require.NoError(t, f.users.Create(context.Background(), &user))
	}

	f.notificationUC = NewNotificationUseCase(f.notifications, f.threads, f.publisher, cfg)
	f.draftUC = NewDraftUseCase(f.drafts, 20*time.Millisecond)
	f.listingUC = NewListingUseCase(f.listings, f.users, f.threads, f.draftUC, f.notificationUC, f.publisher)
	f.chatUC = NewChatUseCase(f.threads, f.users, f.listings, f.notificationUC, f.publisher, limiter)
	f.browseUC = NewBrowseUseCase(f.listings, f.users)

	t.Cleanup(func() {
		f.notificationUC.Close()
		f.draftUC.Close()
	})
	return f
}

// slowNotifications keeps timers from firing during a test.
func slowNotifications() NotificationConfig {
	cfg := DefaultNotificationConfig()
	cfg.TTL = time.Hour
	return cfg
}

func (f *fixture) createListing(t *testing.T, sellerID, name, price string) *entity.Listing {
	t.Helper()
	listing, err := f.listingUC.CreateListing(context.Background(), sellerID, CreateListingInput{
		ListingFields: entity.ListingFields{
			Name:           name,
			Category:       "Textbooks",
			Condition:      "good",
			Price:          price,
			Description:    name + " for sale",
			MeetupLocation: "Library",
		},
	})
	require.NoError(t, err)
	return listing
}

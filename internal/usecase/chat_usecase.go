package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/internal/infrastructure/ratelimit"
	ws "campusmarket/internal/infrastructure/websocket"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
	"campusmarket/pkg/utils"
)

const (
	actionCreateThread = "create_thread"
	actionSendMessage  = "send_message"
	actionTyping       = "typing"
)

const maxMessageLength = 2000

type ChatUseCase struct {
	threadRepo  repository.ThreadRepository
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	notifier    Notifier
	publisher   Publisher
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	threadRepo repository.ThreadRepository,
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
	notifier Notifier,
	publisher Publisher,
	rateLimiter *ratelimit.RateLimiter,
) *ChatUseCase {
	if rateLimiter == nil {
		rateLimiter = ratelimit.Unlimited()
	}
	return &ChatUseCase{
		threadRepo:  threadRepo,
		userRepo:    userRepo,
		listingRepo: listingRepo,
		notifier:    notifier,
		publisher:   publisher,
		rateLimiter: rateLimiter,
	}
}

type CreateThreadInput struct {
	RecipientID string
	ListingID   string
}

type SendMessageInput struct {
	ThreadID string
	Text     string
}

// ThreadResponse is a thread as seen by one participant.
type ThreadResponse struct {
	ID            string                 `json:"id"`
	OtherUser     *entity.User           `json:"other_user"`
	Listing       *entity.ListingContext `json:"listing,omitempty"`
	LastMessage   string                 `json:"last_message,omitempty"`
	LastMessageAt time.Time              `json:"last_message_at"`
	Unread        int                    `json:"unread"`
	IsOpen        bool                   `json:"is_open"`
	IsTyping      bool                   `json:"is_typing"`
	MessageCount  int                    `json:"message_count"`
}

// UnreadSummary breaks the unread total down per thread.
type UnreadSummary struct {
	Total   int            `json:"total"`
	Threads map[string]int `json:"threads"`
}

type typingEvent struct {
	ThreadID string `json:"thread_id"`
	UserID   string `json:"user_id"`
	IsTyping bool   `json:"is_typing"`
}

// CreateThread opens the caller's thread with the recipient, creating it the
// first time the pair talks.
func (uc *ChatUseCase) CreateThread(ctx context.Context, userID string, input CreateThreadInput) (*ThreadResponse, error) {
	allowed, waitTime := uc.rateLimiter.Allow(userID, actionCreateThread)
	if !allowed {
		logger.Warn("CreateThread Rate Limited: User %s must wait %v", userID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before starting another conversation", waitTime)
	}

	if userID == input.RecipientID {
		logger.Warn("CreateThread Error: User %s attempted to message themselves", userID)
		return nil, errors.BadRequest("You cannot start a conversation with yourself", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, input.RecipientID); err != nil {
		logger.Warn("CreateThread Error: Recipient %s not found: %v", input.RecipientID, err)
		return nil, errors.NotFound("Recipient", err)
	}

	var listingContext *entity.ListingContext
	if input.ListingID != "" {
		listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
		if err != nil {
			logger.Warn("CreateThread Error: Listing %s not found: %v", input.ListingID, err)
			return nil, errors.NotFound("Listing", err)
		}
		listingContext = &entity.ListingContext{
			ID:       listing.ID,
			Name:     listing.Name,
			Price:    listing.Price,
			ImageSrc: listing.ImageSrc,
			Seller:   listing.Seller,
			SellerID: listing.SellerID,
		}
	}

	candidate := &entity.MessageThread{
		Participants: []string{userID, input.RecipientID},
		Listing:      listingContext,
		UnreadCount:  map[string]int{userID: 0, input.RecipientID: 0},
		Open:         map[string]bool{},
		Typing:       map[string]bool{},
	}

	thread, created, err := uc.threadRepo.FindOrCreate(ctx, candidate)
	if err != nil {
		logger.Error("CreateThread Error: Failed to find or create thread: %v", err)
		return nil, err
	}
	if created {
		logger.Info("Thread %s created between %s and %s", thread.ID, userID, input.RecipientID)
	}

	thread, err = uc.threadRepo.Mutate(ctx, thread.ID, func(t *entity.MessageThread) error {
		t.Open[userID] = true
		if t.Listing == nil && listingContext != nil {
			t.Listing = listingContext
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(ctx, userID, thread), nil
}

// SendMessage appends a message from userID and tells the other participant.
func (uc *ChatUseCase) SendMessage(ctx context.Context, userID string, input SendMessageInput) (*entity.Message, error) {
	allowed, waitTime := uc.rateLimiter.Allow(userID, actionSendMessage)
	if !allowed {
		logger.Warn("SendMessage Rate Limited: User %s must wait %v", userID, waitTime)
		return nil, errors.TooManyRequests("You are sending messages too quickly", waitTime)
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.BadRequest("Message cannot be empty", nil)
	}
	if len(text) > maxMessageLength {
		return nil, errors.BadRequest(fmt.Sprintf("Message cannot exceed %d characters", maxMessageLength), nil)
	}

	var message entity.Message
	thread, err := uc.threadRepo.Mutate(ctx, input.ThreadID, func(t *entity.MessageThread) error {
		if !t.HasParticipant(userID) {
			return errors.Forbidden("User is not a participant in this thread", nil)
		}

		message = entity.Message{
			ID:        newSortableID(),
			ThreadID:  t.ID,
			SenderID:  userID,
			Text:      text,
			CreatedAt: time.Now(),
		}
		t.Messages = append(t.Messages, message)
		t.LastMessage = text
		t.LastMessageAt = message.CreatedAt
		for _, p := range t.Participants {
			if p != userID {
				t.UnreadCount[p]++
			}
		}
		t.Typing[userID] = false
		return nil
	})
	if err != nil {
		logger.Warn("SendMessage Error: User %s could not post to thread %s: %v", userID, input.ThreadID, err)
		return nil, err
	}

	sender, err := uc.userRepo.GetByID(ctx, userID)
	senderName := userID
	if err == nil {
		senderName = sender.Name
	}

	notificationType := entity.NotificationMessage
	if thread.Listing != nil && thread.Listing.SellerID == userID {
		notificationType = entity.NotificationResponse
	}

	var listingID string
	if thread.Listing != nil {
		listingID = thread.Listing.ID
	}

	for _, recipientID := range thread.Participants {
		if recipientID == userID {
			continue
		}

		_, err := uc.notifier.Notify(ctx, NotifyInput{
			UserID:    recipientID,
			Type:      notificationType,
			Title:     notificationTitle(notificationType, senderName),
			Message:   text,
			FromUser:  userID,
			ThreadID:  thread.ID,
			ListingID: listingID,
		})
		if err != nil {
			logger.Warn("SendMessage Warning: failed to notify %s: %v", recipientID, err)
		}

		publish(uc.publisher, recipientID, ws.MessageTypeNewMessage, message)
		publish(uc.publisher, recipientID, ws.MessageTypeThreadUpdate, uc.toResponse(ctx, recipientID, thread))
	}
	publish(uc.publisher, userID, ws.MessageTypeThreadUpdate, uc.toResponse(ctx, userID, thread))

	return &message, nil
}

func notificationTitle(notificationType, senderName string) string {
	if notificationType == entity.NotificationResponse {
		return senderName + " replied"
	}
	return "New message from " + senderName
}

// MarkAsRead zeroes the caller's unread count for the thread.
func (uc *ChatUseCase) MarkAsRead(ctx context.Context, userID, threadID string) error {
	thread, err := uc.threadRepo.Mutate(ctx, threadID, func(t *entity.MessageThread) error {
		if !t.HasParticipant(userID) {
			return errors.Forbidden("User is not a participant in this thread", nil)
		}
		t.UnreadCount[userID] = 0
		return nil
	})
	if err != nil {
		return err
	}

	publish(uc.publisher, userID, ws.MessageTypeThreadUpdate, uc.toResponse(ctx, userID, thread))
	return nil
}

// ToggleChat flips whether the thread is open for the caller and returns the
// new state.
func (uc *ChatUseCase) ToggleChat(ctx context.Context, userID, threadID string) (bool, error) {
	thread, err := uc.threadRepo.Mutate(ctx, threadID, func(t *entity.MessageThread) error {
		if !t.HasParticipant(userID) {
			return errors.Forbidden("User is not a participant in this thread", nil)
		}
		t.Open[userID] = !t.Open[userID]
		return nil
	})
	if err != nil {
		return false, err
	}
	return thread.Open[userID], nil
}

func (uc *ChatUseCase) CloseChat(ctx context.Context, userID, threadID string) error {
	_, err := uc.threadRepo.Mutate(ctx, threadID, func(t *entity.MessageThread) error {
		if !t.HasParticipant(userID) {
			return errors.Forbidden("User is not a participant in this thread", nil)
		}
		t.Open[userID] = false
		t.Typing[userID] = false
		return nil
	})
	return err
}

// SetTyping records the caller's typing flag and tells the other side.
// Updates over the typing rate are dropped without error.
func (uc *ChatUseCase) SetTyping(ctx context.Context, userID, threadID string, isTyping bool) error {
	if allowed, _ := uc.rateLimiter.Allow(userID, actionTyping); !allowed {
		return nil
	}

	thread, err := uc.threadRepo.Mutate(ctx, threadID, func(t *entity.MessageThread) error {
		if !t.HasParticipant(userID) {
			return errors.Forbidden("User is not a participant in this thread", nil)
		}
		t.Typing[userID] = isTyping
		return nil
	})
	if err != nil {
		return err
	}

	event := typingEvent{ThreadID: thread.ID, UserID: userID, IsTyping: isTyping}
	for _, p := range thread.Participants {
		if p != userID {
			publish(uc.publisher, p, ws.MessageTypeTyping, event)
		}
	}
	return nil
}

// ListThreads returns the caller's threads, most recent activity first.
func (uc *ChatUseCase) ListThreads(ctx context.Context, userID string) ([]*ThreadResponse, error) {
	threads, err := uc.threadRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].LastMessageAt.After(threads[j].LastMessageAt)
	})

	out := make([]*ThreadResponse, len(threads))
	for i, t := range threads {
		out[i] = uc.toResponse(ctx, userID, t)
	}
	return out, nil
}

func (uc *ChatUseCase) GetThread(ctx context.Context, userID, threadID string) (*ThreadResponse, error) {
	thread, err := uc.participantThread(ctx, userID, threadID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, userID, thread), nil
}

// Messages returns a page of the thread's messages in creation order.
func (uc *ChatUseCase) Messages(ctx context.Context, userID, threadID string, limit, offset int) ([]entity.Message, int64, error) {
	thread, err := uc.participantThread(ctx, userID, threadID)
	if err != nil {
		return nil, 0, err
	}
	page := utils.Paginate(thread.Messages, limit, offset)
	return page, int64(len(thread.Messages)), nil
}

// UnreadTotal sums the caller's unread counts across threads.
func (uc *ChatUseCase) UnreadTotal(ctx context.Context, userID string) (*UnreadSummary, error) {
	threads, err := uc.threadRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &UnreadSummary{Threads: make(map[string]int)}
	for _, t := range threads {
		n := t.UnreadCount[userID]
		if n == 0 {
			continue
		}
		summary.Threads[t.ID] = n
		summary.Total += n
	}
	return summary, nil
}

func (uc *ChatUseCase) participantThread(ctx context.Context, userID, threadID string) (*entity.MessageThread, error) {
	thread, err := uc.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.HasParticipant(userID) {
		return nil, errors.Forbidden("User is not a participant in this thread", nil)
	}
	return thread, nil
}

func (uc *ChatUseCase) toResponse(ctx context.Context, userID string, t *entity.MessageThread) *ThreadResponse {
	otherID := t.OtherParticipant(userID)
	other, err := uc.userRepo.GetByID(ctx, otherID)
	if err != nil {
		other = &entity.User{ID: otherID, Name: otherID}
	}

	return &ThreadResponse{
		ID:            t.ID,
		OtherUser:     other,
		Listing:       t.Listing,
		LastMessage:   t.LastMessage,
		LastMessageAt: t.LastMessageAt,
		Unread:        t.UnreadCount[userID],
		IsOpen:        t.Open[userID],
		IsTyping:      t.Typing[otherID],
		MessageCount:  len(t.Messages),
	}
}

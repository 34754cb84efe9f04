package entity

import (
	"sort"
	"strings"
	"time"
)

// ListingContext is the listing snapshot a thread was started from.
type ListingContext struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageSrc string `json:"image_src,omitempty"`
	Seller   string `json:"seller"`
	SellerID string `json:"seller_id"`
}

type MessageThread struct {
	ID            string          `json:"id"`
	Participants  []string        `json:"participants"`
	Listing       *ListingContext `json:"listing,omitempty"`
	Messages      []Message       `json:"messages"`
	LastMessage   string          `json:"last_message,omitempty"`
	LastMessageAt time.Time       `json:"last_message_at"`
	UnreadCount   map[string]int  `json:"unread_count"`
	Open          map[string]bool `json:"open"`
	Typing        map[string]bool `json:"typing"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PairKey identifies a participant pair regardless of order.
func PairKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

func (t *MessageThread) PairKey() string {
	if len(t.Participants) != 2 {
		return ""
	}
	return PairKey(t.Participants[0], t.Participants[1])
}

func (t *MessageThread) HasParticipant(userID string) bool {
	for _, p := range t.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not userID.
func (t *MessageThread) OtherParticipant(userID string) string {
	for _, p := range t.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

// Clone returns a deep copy so callers never share maps with the store.
func (t *MessageThread) Clone() *MessageThread {
	c := *t
	c.Participants = append([]string(nil), t.Participants...)
	c.Messages = append([]Message(nil), t.Messages...)
	if t.Listing != nil {
		l := *t.Listing
		c.Listing = &l
	}
	c.UnreadCount = make(map[string]int, len(t.UnreadCount))
	for k, v := range t.UnreadCount {
		c.UnreadCount[k] = v
	}
	c.Open = make(map[string]bool, len(t.Open))
	for k, v := range t.Open {
		c.Open[k] = v
	}
	c.Typing = make(map[string]bool, len(t.Typing))
	for k, v := range t.Typing {
		c.Typing[k] = v
	}
	return &c
}

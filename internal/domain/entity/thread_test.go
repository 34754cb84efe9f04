package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairKeyIsOrderIndependent(t *testing.T) {
	assert.Equal(t, PairKey("alex", "sarah"), PairKey("sarah", "alex"))

	thread := &MessageThread{Participants: []string{"sarah", "alex"}}
	assert.Equal(t, PairKey("alex", "sarah"), thread.PairKey())
	assert.Equal(t, "alex", thread.OtherParticipant("sarah"))
	assert.True(t, thread.HasParticipant("alex"))
	assert.False(t, thread.HasParticipant("mike"))
}

func TestCloneDoesNotShareState(t *testing.T) {
	thread := &MessageThread{
		ID:           "t1",
		Participants: []string{"a", "b"},
		Listing:      &ListingContext{ID: "l1"},
		Messages:     []Message{{ID: "m1"}},
		UnreadCount:  map[string]int{"b": 1},
		Open:         map[string]bool{"a": true},
		Typing:       map[string]bool{},
	}

	c := thread.Clone()
	c.UnreadCount["b"] = 5
	c.Open["a"] = false
	c.Messages = append(c.Messages, Message{ID: "m2"})
	c.Listing.ID = "l2"

	assert.Equal(t, 1, thread.UnreadCount["b"])
	assert.True(t, thread.Open["a"])
	assert.Len(t, thread.Messages, 1)
	assert.Equal(t, "l1", thread.Listing.ID)
}

package core

import "sync"

// MessageStore is the append-only in-memory log of every message sent.
// Messages are never mutated or removed; retrieval is a filtered
// projection of the full log in insertion order. A per-pair index keeps
// conversation reads from scanning the whole log, with no change to
// observable ordering or filtering.
type MessageStore struct {
	mu     sync.RWMutex
	log    []Message
	byPair map[string][]int
}

// NewMessageStore constructs an empty store.
func NewMessageStore() *MessageStore {
	return &MessageStore{
		byPair: make(map[string][]int),
	}
}

// Append adds a message to the end of the log. O(1) amortized.
func (s *MessageStore) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(msg.From, msg.To)
	s.byPair[key] = append(s.byPair[key], len(s.log))
	s.log = append(s.log, msg)
}

// Conversation returns every message whose unordered {from, to} pair
// equals {a, b}, in original insertion order. Symmetric in its
// arguments: Conversation(a, b) == Conversation(b, a).
func (s *MessageStore) Conversation(a, b string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	indices := s.byPair[pairKey(a, b)]
	msgs := make([]Message, len(indices))
	for i, idx := range indices {
		msgs[i] = s.log[idx]
	}
	return msgs
}

// Len returns the total number of messages ever appended.
func (s *MessageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.log)
}

package core

// Message is the domain model for a direct message between two users.
// It is immutable once appended to the store. The timestamp is supplied
// by the sending client and echoed back verbatim; the server never
// stamps messages itself.
type Message struct {
	From      string
	To        string
	Content   string
	Timestamp int64
}

// InConversation reports whether the message belongs to the two-party
// conversation identified by the unordered pair {a, b}.
func (m Message) InConversation(a, b string) bool {
	return (m.From == a && m.To == b) || (m.From == b && m.To == a)
}

// pairKey returns a canonical key for the unordered username pair.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}

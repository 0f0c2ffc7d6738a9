package core

// CommandKind describes what an inbound client event asks for. The set
// is closed: dispatch is an exhaustive switch, so adding a kind is a
// compile-time-checked change.
type CommandKind int

const (
	// CommandSendMessage appends a direct message and pushes the updated
	// conversation to sender and recipient.
	CommandSendMessage CommandKind = iota
	// CommandRequestHistory asks for the conversation between the
	// requester and one other user. Pure read.
	CommandRequestHistory
)

// Command represents an action requested by a client.
type Command struct {
	Kind    CommandKind
	Message Message // CommandSendMessage

	// CommandRequestHistory
	Me         string
	TargetUser string
}

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventPresence carries the full list of connected usernames.
	EventPresence EventKind = iota
	// EventConversation carries the full filtered conversation after a
	// new message, delivered to sender and recipient.
	EventConversation
	// EventHistory carries the conversation requested by a client.
	EventHistory
)

// Event is pushed to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	UserList []string  // EventPresence
	Messages []Message // EventConversation, EventHistory
}

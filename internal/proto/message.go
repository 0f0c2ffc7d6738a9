package proto

import "encoding/json"

// Inbound is the envelope for events coming from the client.
type Inbound struct {
	EventType string          `json:"eventType"`
	Data      json.RawMessage `json:"data"`
}

const (
	InboundTypeMessage = "message"
	InboundTypeHistory = "messageHistory"

	OutboundTypeUserList = "updateUserList"
	OutboundTypeMessage  = "message"
	OutboundTypeHistory  = "updateMessageHistory"
)

// MessageData is a direct message from the client. The timestamp is
// client-supplied and echoed back as-is.
type MessageData struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// HistoryData requests the conversation between Me and TargetUser.
type HistoryData struct {
	Me         string `json:"me"`
	TargetUser string `json:"targetUser"`
}

// Outbound is the envelope for events pushed to the client.
type Outbound struct {
	EventType string `json:"eventType"`
	Data      any    `json:"data"`
}

// UserListData carries the full presence list.
type UserListData struct {
	UserList []string `json:"userList"`
}

// MessagesData carries a full filtered conversation, both for message
// pushes and for history responses.
type MessagesData struct {
	Messages []MessageData `json:"messages"`
}

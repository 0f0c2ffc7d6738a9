package http

import (
	"encoding/json"
	"fmt"

	"github.com/ndsl6211/chatroom-server/internal/core"
	"github.com/ndsl6211/chatroom-server/internal/proto"
)

// inboundToCommand validates a decoded envelope and maps it onto the
// closed command set. Unknown event names and missing required fields
// come back as core.ErrUnknownEvent / core.ErrMalformedEvent; both are
// recoverable per-event failures.
func inboundToCommand(inbound proto.Inbound) (*core.Command, error) {
	switch inbound.EventType {
	case proto.InboundTypeMessage:
		var data proto.MessageData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrMalformedEvent, err)
		}
		if data.From == "" || data.To == "" {
			return nil, fmt.Errorf("%w: from and to are required", core.ErrMalformedEvent)
		}
		return &core.Command{
			Kind: core.CommandSendMessage,
			Message: core.Message{
				From:      data.From,
				To:        data.To,
				Content:   data.Content,
				Timestamp: data.Timestamp,
			},
		}, nil
	case proto.InboundTypeHistory:
		var data proto.HistoryData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrMalformedEvent, err)
		}
		if data.Me == "" || data.TargetUser == "" {
			return nil, fmt.Errorf("%w: me and targetUser are required", core.ErrMalformedEvent)
		}
		return &core.Command{
			Kind:       core.CommandRequestHistory,
			Me:         data.Me,
			TargetUser: data.TargetUser,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownEvent, inbound.EventType)
	}
}

// outboundFromEvent wraps a core event into its wire envelope.
func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventPresence:
		return proto.Outbound{
			EventType: proto.OutboundTypeUserList,
			Data:      proto.UserListData{UserList: event.UserList},
		}
	case core.EventConversation:
		return proto.Outbound{
			EventType: proto.OutboundTypeMessage,
			Data:      messagesData(event.Messages),
		}
	case core.EventHistory:
		return proto.Outbound{
			EventType: proto.OutboundTypeHistory,
			Data:      messagesData(event.Messages),
		}
	default:
		return proto.Outbound{}
	}
}

func messagesData(msgs []core.Message) proto.MessagesData {
	wire := make([]proto.MessageData, 0, len(msgs))
	for _, m := range msgs {
		wire = append(wire, proto.MessageData{
			From:      m.From,
			To:        m.To,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return proto.MessagesData{Messages: wire}
}

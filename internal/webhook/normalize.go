package webhook

import (
	"strings"
	"time"
)

// MsgTypeUnknown is assigned when no source yields a message type.
const MsgTypeUnknown = "unknown"

// Message is the canonical record extracted from an InboundEvent. Fields the
// payload did not carry are empty strings, never an error.
type Message struct {
	Timestamp time.Time
	ChatID    string
	Phone     string
	MsgType   string
	Text      string
}

// extractor pulls one candidate value out of an event. Chains of extractors
// run in declared order and the first non-empty result wins, which makes the
// precedence contract a data structure rather than nested lookups.
type extractor func(*InboundEvent) string

var chatIDChain = []extractor{
	func(e *InboundEvent) string { return e.ChatID },
	func(e *InboundEvent) string {
		if e.SenderData != nil {
			return e.SenderData.ChatID
		}
		return ""
	},
	func(e *InboundEvent) string {
		if e.MessageData != nil {
			return e.MessageData.ChatID
		}
		return ""
	},
	func(e *InboundEvent) string {
		if e.SenderData != nil {
			return e.SenderData.Sender
		}
		return ""
	},
}

var msgTypeChain = []extractor{
	func(e *InboundEvent) string { return e.TypeMessage },
	func(e *InboundEvent) string {
		if e.MessageData != nil {
			return e.MessageData.TypeMessage
		}
		return ""
	},
	func(e *InboundEvent) string {
		if e.MessageData != nil && e.MessageData.TextMessageData != nil {
			return "textMessage"
		}
		return ""
	},
}

var textChain = []extractor{
	func(e *InboundEvent) string { return e.Message },
	func(e *InboundEvent) string { return e.Text },
	func(e *InboundEvent) string {
		if e.MessageData != nil && e.MessageData.TextMessageData != nil {
			return e.MessageData.TextMessageData.TextMessage
		}
		return ""
	},
	func(e *InboundEvent) string {
		if e.MessageData != nil && e.MessageData.ExtendedTextMessageData != nil {
			return e.MessageData.ExtendedTextMessageData.Text
		}
		return ""
	},
	func(e *InboundEvent) string {
		if e.MessageData != nil && e.MessageData.QuotedMessage != nil {
			return e.MessageData.QuotedMessage.TextMessage
		}
		return ""
	},
}

var messageIDChain = []extractor{
	func(e *InboundEvent) string { return e.IDMessage },
	func(e *InboundEvent) string {
		if e.MessageData != nil {
			return e.MessageData.IDMessage
		}
		return ""
	},
	func(e *InboundEvent) string {
		if e.MessageData != nil && e.MessageData.QuotedMessage != nil {
			return e.MessageData.QuotedMessage.StanzaID
		}
		return ""
	},
}

func extractFirst(e *InboundEvent, chain []extractor) string {
	for _, ex := range chain {
		if v := ex(e); v != "" {
			return v
		}
	}
	return ""
}

// Normalize produces the canonical message record for an event. now supplies
// the timestamp when the payload carries none.
func Normalize(e *InboundEvent, now time.Time) Message {
	chatID := extractFirst(e, chatIDChain)

	msgType := extractFirst(e, msgTypeChain)
	if msgType == "" {
		msgType = MsgTypeUnknown
	}

	ts := now
	if e.Timestamp > 0 {
		ts = time.Unix(e.Timestamp, 0).UTC()
	}

	return Message{
		Timestamp: ts,
		ChatID:    chatID,
		Phone:     phoneFromChatID(chatID),
		MsgType:   msgType,
		Text:      extractFirst(e, textChain),
	}
}

// phoneFromChatID takes the part of a chat identifier before its first "@",
// e.g. "972501234567@c.us" -> "972501234567".
func phoneFromChatID(chatID string) string {
	if chatID == "" {
		return ""
	}
	if idx := strings.Index(chatID, "@"); idx >= 0 {
		return chatID[:idx]
	}
	return chatID
}

// eventTag classifies an event for fingerprinting and echo detection:
// webhook type, then the alternate event field, then the message type chain,
// empty if nothing matches.
func eventTag(e *InboundEvent) string {
	if e.TypeWebhook != "" {
		return e.TypeWebhook
	}
	if e.Event != "" {
		return e.Event
	}
	return extractFirst(e, msgTypeChain)
}

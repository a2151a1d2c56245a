// Package convlog appends conversation turns to an audit trail. Rows are
// written once and never mutated or deleted from here.
package convlog

import (
	"context"
	"time"
)

// Direction marks which side of the conversation produced a row.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// maxMessageLen caps the stored message body.
const maxMessageLen = 2000

// Row is one conversation turn in the fixed 10-column log layout. Intent,
// AIModel, TokensIn and TokensOut are reserved for a future classifier and
// always written empty today.
type Row struct {
	Timestamp time.Time
	Phone     string
	ChatID    string
	Direction Direction
	MsgType   string
	Message   string
	Intent    string
	AIModel   string
	TokensIn  string
	TokensOut string
}

// NewRow builds a log row, capping the message body and leaving the reserved
// classifier columns empty.
func NewRow(ts time.Time, phone, chatID string, direction Direction, msgType, message string) Row {
	return Row{
		Timestamp: ts,
		Phone:     phone,
		ChatID:    chatID,
		Direction: direction,
		MsgType:   msgType,
		Message:   truncate(message, maxMessageLen),
	}
}

// Values returns the ordered 10-column projection used by row-oriented
// stores, with the timestamp rendered as RFC 3339.
func (r Row) Values() []any {
	return []any{
		r.Timestamp.UTC().Format(time.RFC3339),
		r.Phone,
		r.ChatID,
		string(r.Direction),
		r.MsgType,
		r.Message,
		r.Intent,
		r.AIModel,
		r.TokensIn,
		r.TokensOut,
	}
}

// Appender is the write-only sink contract for the conversation log.
type Appender interface {
	Append(ctx context.Context, row Row) error
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

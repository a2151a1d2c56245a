package sheetstore

import (
	"context"

	"github.com/barkanor/leadgate/internal/convlog"
)

// logSheet is the tab holding the 10-column conversation log.
const logSheet = "conversation_logs"

// ConversationLog implements convlog.Appender over a spreadsheet tab.
type ConversationLog struct {
	api valuesAPI
}

// NewConversationLog creates a spreadsheet-backed conversation log.
func NewConversationLog(client *Client) *ConversationLog {
	if client == nil {
		panic("sheetstore: client required")
	}
	return &ConversationLog{api: client}
}

func newConversationLogWithAPI(api valuesAPI) *ConversationLog {
	return &ConversationLog{api: api}
}

// Append writes one turn to the log tab.
func (l *ConversationLog) Append(ctx context.Context, row convlog.Row) error {
	return l.api.Append(ctx, logSheet+"!A:J", [][]any{row.Values()})
}

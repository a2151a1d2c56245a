package leads

import "time"

// Status tracks where a lead sits in the funnel. Only "new" is assigned
// automatically; later stages are set by humans editing the store directly.
type Status string

// StatusNew is the status every freshly created lead starts with.
const StatusNew Status = "new"

// maxLastMessageLen caps the stored copy of the most recent message.
const maxLastMessageLen = 500

// Lead is a per-phone customer record. Phone is the unique key; CreatedAt and
// Status are written once at creation and preserved by every later update.
type Lead struct {
	Phone       string    `json:"phone"`
	Name        string    `json:"name"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	LastMessage string    `json:"last_message"`
}

// Action reports what an upsert did.
type Action string

const (
	ActionInserted Action = "inserted"
	ActionUpdated  Action = "updated"
)

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

package webhook

import (
	"context"
	"strings"
	"sync"
	"time"
)

const fingerprintMaxLen = 500

// Fingerprint builds the dedup key for an event: chat id, message id, event
// tag and normalized text joined with "|", capped at 500 characters.
func Fingerprint(e *InboundEvent, msg Message) string {
	parts := []string{
		msg.ChatID,
		extractFirst(e, messageIDChain),
		eventTag(e),
		msg.Text,
	}
	return truncate(strings.Join(parts, "|"), fingerprintMaxLen)
}

// Gate suppresses reprocessing of events seen within a retention window.
// It guards against the gateway's at-least-once delivery retries and against
// our own output looping back in as a fresh inbound event.
//
// The map lives in process memory only: restarts forget it, and multiple
// instances do not share it.
type Gate struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

// NewGate creates a gate with the given retention window.
func NewGate(ttl time.Duration) *Gate {
	return &Gate{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

// CheckAndInsert reports whether fp was already seen. A miss records fp
// atomically with the check, so two concurrent arrivals of the same event
// cannot both pass. Staleness is the sweep's job; a hit counts as duplicate
// no matter how old the entry is.
func (g *Gate) CheckAndInsert(fp string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.seen[fp]; ok {
		return true
	}
	g.seen[fp] = g.now()
	return false
}

// Sweep drops every entry older than the retention window.
func (g *Gate) Sweep() {
	cutoff := g.now().Add(-g.ttl)
	g.mu.Lock()
	defer g.mu.Unlock()
	for fp, firstSeen := range g.seen {
		if firstSeen.Before(cutoff) {
			delete(g.seen, fp)
		}
	}
}

// Run sweeps on a fixed interval until ctx is cancelled. Callers start it on
// its own goroutine; it never keeps the process alive by itself.
func (g *Gate) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Sweep()
		}
	}
}

func (g *Gate) size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.seen)
}

// truncate caps s at n characters (runes, not bytes).
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

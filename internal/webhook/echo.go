package webhook

import "strings"

// IsFromMe decides whether an event originated from our own outbound traffic
// rather than from the remote correspondent. True when any of:
//
//   - a self-origin flag is set at the event root, in the sender block, or in
//     the message block;
//   - the normalized text starts with our auto-reply template;
//   - the event tag contains "outgoing" (case-insensitive).
//
// This is a best-effort heuristic, not a guarantee: the gateway does not
// record which messages we sent, so a false negative lets self-traffic
// re-enter the pipeline and a false positive silently drops a real message.
func IsFromMe(e *InboundEvent, msg Message, replyPrefix string) bool {
	if e.FromMe {
		return true
	}
	if e.SenderData != nil && e.SenderData.FromMe {
		return true
	}
	if e.MessageData != nil && e.MessageData.FromMe {
		return true
	}
	if replyPrefix != "" && strings.HasPrefix(msg.Text, replyPrefix) {
		return true
	}
	return strings.Contains(strings.ToLower(eventTag(e)), "outgoing")
}

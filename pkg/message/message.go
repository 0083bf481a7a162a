// Package message models the slice of a chat message the engine needs:
// its text, its entity annotations, and an optional replied-to message.
// The messaging platform's own types are converted to these by the caller.
package message

// EntityType distinguishes the two annotation kinds the link extractor
// understands. Anything else is ignored.
type EntityType int

const (
	EntityOther EntityType = iota
	// EntityURL marks a span of the message text that is a literal URL.
	EntityURL
	// EntityTextLink marks text whose URL lives in the entity itself.
	EntityTextLink
)

// Entity is one annotation over the message text. Offset and Length are in
// runes of Text. URL is set for EntityTextLink only.
type Entity struct {
	Type   EntityType
	Offset int
	Length int
	URL    string
}

// Message is a platform-neutral chat message.
type Message struct {
	Text     string
	Entities []Entity
	ReplyTo  *Message
}

// ExtractLink returns the first link found on the message, or on the
// replied-to message when the primary one carries none. URL spans win over
// text-link annotations on the same message; within each kind the entity
// declaration order decides. Returns "" when no link is present.
func ExtractLink(m *Message) string {
	if m == nil {
		return ""
	}
	if link := extractFrom(m); link != "" {
		return link
	}
	return extractFrom(m.ReplyTo)
}

func extractFrom(m *Message) string {
	if m == nil || len(m.Entities) == 0 {
		return ""
	}

	for _, e := range m.Entities {
		if e.Type == EntityURL {
			if s := slice(m.Text, e.Offset, e.Length); s != "" {
				return s
			}
		}
	}
	for _, e := range m.Entities {
		if e.Type == EntityTextLink && e.URL != "" {
			return e.URL
		}
	}
	return ""
}

// slice cuts [offset, offset+length) in runes, tolerating out-of-range
// annotations from malformed messages.
func slice(text string, offset, length int) string {
	runes := []rune(text)
	if offset < 0 || length <= 0 || offset >= len(runes) {
		return ""
	}
	end := offset + length
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[offset:end])
}

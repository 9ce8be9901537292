package notify

import (
	"html"
	"strings"
)

// Message builds a Telegram HTML message line by line.
type Message struct {
	b strings.Builder
}

// Title appends a bold heading.
func (m *Message) Title(text string) *Message {
	m.line("<b>" + html.EscapeString(text) + "</b>")
	return m
}

// Field appends "<b>label:</b> value" with value escaped.
func (m *Message) Field(label, value string) *Message {
	m.line("<b>" + html.EscapeString(label) + ":</b> " + html.EscapeString(value))
	return m
}

// Code appends "<b>label:</b> <code>value</code>".
func (m *Message) Code(label, value string) *Message {
	m.line("<b>" + html.EscapeString(label) + ":</b> <code>" + html.EscapeString(value) + "</code>")
	return m
}

// Text appends an escaped plain line.
func (m *Message) Text(text string) *Message {
	m.line(html.EscapeString(text))
	return m
}

// String returns the assembled message.
func (m *Message) String() string {
	return m.b.String()
}

func (m *Message) line(s string) {
	if m.b.Len() > 0 {
		m.b.WriteByte('\n')
	}
	m.b.WriteString(s)
}

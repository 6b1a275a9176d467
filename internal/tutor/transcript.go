package tutor

import (
	"fmt"
	"strings"
	"time"
)

// Role is who wrote a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Substitute replies shown instead of an answer.
const (
	EmptyReplyMessage = "I'm sorry, I missed that. Could you repeat?"
	ConnectionMessage = "I'm having trouble connecting. Check your internet."
)

// Greeting is the first assistant entry of every panel.
func Greeting(topic string) string {
	return fmt.Sprintf("Hi! I'm your EduStream Tutor for %s. How can I assist with your studies today?", topic)
}

// Entry is one line of the chat.
type Entry struct {
	Role Role
	Text string
	At   time.Time
}

// Transcript is an append-only list of entries.
type Transcript struct {
	entries []Entry
	now     func() time.Time
}

func (t *Transcript) append(role Role, text string) {
	t.entries = append(t.entries, Entry{Role: role, Text: text, At: t.now()})
}

// Entries returns a copy of all entries in order.
func (t *Transcript) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of entries.
func (t *Transcript) Len() int { return len(t.entries) }

// Last returns the most recent entry.
func (t *Transcript) Last() (Entry, bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// Ticket identifies one in-flight question.
type Ticket struct {
	Seq     uint64
	Message string
}

// Panel is the chat state machine for one path: closed or open, and idle or
// sending. A new path gets a new panel; the transcript survives open/close.
type Panel struct {
	topic      string
	transcript Transcript
	open       bool
	sending    bool
	seq        uint64
}

// NewPanel creates a closed, idle panel seeded with the greeting for topic.
func NewPanel(topic string) *Panel {
	return newPanel(topic, time.Now)
}

func newPanel(topic string, now func() time.Time) *Panel {
	p := &Panel{topic: topic, transcript: Transcript{now: now}}
	p.transcript.append(RoleAssistant, Greeting(topic))
	return p
}

func (p *Panel) Topic() string           { return p.topic }
func (p *Panel) Transcript() *Transcript { return &p.transcript }
func (p *Panel) IsOpen() bool            { return p.open }
func (p *Panel) IsSending() bool         { return p.sending }
func (p *Panel) Open()                   { p.open = true }
func (p *Panel) Close()                  { p.open = false }
func (p *Panel) ToggleOpen()             { p.open = !p.open }

// Send records a question and returns the ticket for its request. Blank
// text, or any send while a reply is pending, is a no-op.
func (p *Panel) Send(text string) (Ticket, bool) {
	text = strings.TrimSpace(text)
	if text == "" || p.sending {
		return Ticket{}, false
	}
	p.transcript.append(RoleUser, text)
	p.sending = true
	p.seq++
	return Ticket{Seq: p.seq, Message: text}, true
}

// Resolve records the outcome of a ticket and returns the panel to idle.
// A ticket that is not the latest is discarded and Resolve returns false.
// Errors and empty replies become the substitute messages.
func (p *Panel) Resolve(t Ticket, reply string, err error) bool {
	if !p.sending || t.Seq != p.seq {
		return false
	}
	switch {
	case err != nil:
		p.transcript.append(RoleAssistant, ConnectionMessage)
	case strings.TrimSpace(reply) == "":
		p.transcript.append(RoleAssistant, EmptyReplyMessage)
	default:
		p.transcript.append(RoleAssistant, reply)
	}
	p.sending = false
	return true
}

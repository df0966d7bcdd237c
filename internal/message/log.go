package message

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Level sets how a message is highlighted.
type Level uint8

const (
	Info Level = iota
	Spell
	Important
)

// Entry is one logged line.
type Entry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// DefaultCapacity is how many messages a Log keeps unless configured otherwise.
const DefaultCapacity = 50

// Log is a bounded list of player-facing messages. The oldest message is
// dropped once the log is full. It is observational only: nothing in the
// simulation reads it back.
type Log struct {
	capacity int
	entries  []Entry
	upper    cases.Caser
}

// New creates an empty log holding at most capacity messages.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity, upper: cases.Upper(language.English)}
}

// Add appends text, capitalising its first letter.
func (l *Log) Add(level Level, text string) {
	if text == "" {
		return
	}
	if len(l.entries) == l.capacity {
		l.entries = slices.Delete(l.entries, 0, 1)
	}
	l.entries = append(l.entries, Entry{Level: level, Text: l.sentence(text)})
}

// Addf formats and appends a message.
func (l *Log) Addf(level Level, format string, args ...any) {
	l.Add(level, fmt.Sprintf(format, args...))
}

func (l *Log) sentence(s string) string {
	_, n := utf8.DecodeRuneInString(s)
	return l.upper.String(s[:n]) + s[n:]
}

// Entries returns a copy of the log, oldest first.
func (l *Log) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Last returns up to n of the newest messages, oldest first.
func (l *Log) Last(n int) []Entry {
	if n >= len(l.entries) {
		return l.Entries()
	}
	return slices.Clone(l.entries[len(l.entries)-n:])
}

// Len is the number of stored messages.
func (l *Log) Len() int { return len(l.entries) }

// Restore replaces the log's contents, keeping only the newest entries that fit.
func (l *Log) Restore(entries []Entry) {
	if len(entries) > l.capacity {
		entries = entries[len(entries)-l.capacity:]
	}
	l.entries = slices.Clone(entries)
}

package domain

import (
	"strings"
	"time"
)

// LogSeparator joins consecutive entries in a session log.
const LogSeparator = " | "

type SessionState string

const (
	SessionNew    SessionState = "new"
	SessionActive SessionState = "active"
)

// SessionRecord is the stored conversation state for one caller.
// Nil pointers mean the fact is not known yet.
type SessionRecord struct {
	SessionID      string
	Log            string
	Summary        string
	Name           *string
	Phone          *string
	MatchedTopicID *int
	Template       *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SessionFields is the mutable part of a session written on every turn.
type SessionFields struct {
	Name           *string
	Phone          *string
	MatchedTopicID *int
	Template       *string
	Summary        string
}

// StateOf reports whether a session has been seen before.
func StateOf(rec *SessionRecord) SessionState {
	if rec == nil {
		return SessionNew
	}
	return SessionActive
}

// Fields returns the stored fields of rec, or zero fields for a new session.
func (r *SessionRecord) Fields() SessionFields {
	if r == nil {
		return SessionFields{}
	}
	return SessionFields{
		Name:           r.Name,
		Phone:          r.Phone,
		MatchedTopicID: r.MatchedTopicID,
		Template:       r.Template,
		Summary:        r.Summary,
	}
}

// Entries splits the log back into individual turns.
func (r *SessionRecord) Entries() []string {
	if r == nil || r.Log == "" {
		return nil
	}
	return SplitLog(r.Log)
}

// FormatLogEntry renders a single turn for the session log.
func FormatLogEntry(query, reply string) string {
	return "User: " + query + LogSeparator + "Bot: " + reply
}

// AppendLog joins entry onto log, storing the first entry bare.
func AppendLog(log, entry string) string {
	if log == "" {
		return entry
	}
	return log + LogSeparator + entry
}

// SplitLog regroups a stored log into "User: ... | Bot: ..." turns.
// Best effort: separators inside user text cannot be told apart.
func SplitLog(log string) []string {
	parts := strings.Split(log, LogSeparator)
	var turns []string
	for _, p := range parts {
		if strings.HasPrefix(p, "User: ") || len(turns) == 0 {
			turns = append(turns, p)
			continue
		}
		turns[len(turns)-1] += LogSeparator + p
	}
	return turns
}

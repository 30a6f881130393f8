package domain

import (
	"strings"
	"time"
)

// Lead is a dashboard view of a session: who called and what they asked about.
type Lead struct {
	SessionID string
	Name      string
	Phone     string
	Interest  string
	Summary   string
	Log       string
	UpdatedAt time.Time
}

// LeadFilter narrows a lead listing. Empty fields match everything.
type LeadFilter struct {
	Name     string
	Interest string
}

// Matches reports whether l passes the case-insensitive substring filters.
func (f LeadFilter) Matches(l Lead) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Interest != "" && !strings.Contains(strings.ToLower(l.Interest), strings.ToLower(f.Interest)) {
		return false
	}
	return true
}

// LeadDetails is a stored model extraction for one session. It is valid
// while the session's UpdatedAt still equals SessionUpdatedAt.
type LeadDetails struct {
	SessionID        string
	Name             string
	Phone            string
	Interest         string
	SessionUpdatedAt time.Time
	ExtractedAt      time.Time
}

// FreshFor reports whether d was extracted from rec as it is now.
func (d *LeadDetails) FreshFor(rec *SessionRecord) bool {
	return d != nil && rec != nil && d.SessionID == rec.SessionID && d.SessionUpdatedAt.Equal(rec.UpdatedAt)
}

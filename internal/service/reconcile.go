package service

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/frontdesk/internal/domain"
	"github.com/alexanderramin/frontdesk/internal/intelligence"
)

// PlaceholderSummary is stored when the completion carried no summary.
const PlaceholderSummary = "User inquired about services. User: Unknown, Phone: Unknown, Interested in: Unknown"

const (
	suffixAskBoth  = "\n\nCan you share your name and number to help us better?"
	suffixAskName  = "\n\nCan you share your name to help us better?"
	suffixAskPhone = "\n\nCan you share your number to help us better?"
)

// MergeFields applies one turn's parsed fields on top of the prior ones.
// A present value wins; an absent one keeps the prior value. The summary is
// replaced outright.
func MergeFields(prior domain.SessionFields, parsed intelligence.ParsedFields) domain.SessionFields {
	summary := strings.TrimSpace(parsed.Summary)
	if summary == "" {
		summary = PlaceholderSummary
	}
	return domain.SessionFields{
		Name:           domain.CoalesceStrPtr(parsed.Name, prior.Name),
		Phone:          domain.CoalesceStrPtr(parsed.Phone, prior.Phone),
		MatchedTopicID: domain.CoalesceIntPtr(parsed.MatchedTopicID, prior.MatchedTopicID),
		Template:       domain.CoalesceStrPtr(parsed.Template, prior.Template),
		Summary:        summary,
	}
}

// MissingInfoSuffix asks for whichever of name and phone is still unknown.
func MissingInfoSuffix(name, phone *string) string {
	switch {
	case name == nil && phone == nil:
		return suffixAskBoth
	case name == nil:
		return suffixAskName
	case phone == nil:
		return suffixAskPhone
	default:
		return ""
	}
}

// FallbackGreeting is used when the completion had no Response section.
func FallbackGreeting(business string, name *string) string {
	return fmt.Sprintf("%s I'm here to help you with information about %s. How can I assist you today?",
		salutation(name, "Hello!"), business)
}

// Apology is the degraded reply when the model or the store failed.
func Apology(b intelligence.BusinessProfile, name *string) string {
	msg := fmt.Sprintf("Oops, something went wrong! Please call %s at %s for help.", b.Name, b.Phone)
	if name == nil {
		return msg
	}
	return salutation(name, "") + " " + msg
}

// ComposeReply is the model's reply (or the greeting) plus the missing-info suffix.
func ComposeReply(business string, parsed intelligence.ParsedFields, merged domain.SessionFields) string {
	reply := domain.StrOr(parsed.ReplyText, "")
	if reply == "" {
		reply = FallbackGreeting(business, merged.Name)
	}
	return reply + MissingInfoSuffix(merged.Name, merged.Phone)
}

func salutation(name *string, anonymous string) string {
	if name == nil {
		return anonymous
	}
	return "Hi " + *name + "!"
}

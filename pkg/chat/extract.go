// Package chat implements the lead-qualification pipeline behind the site's
// chat widget: heuristic contact extraction, conversation scoring, reply
// pacing, and per-turn orchestration.
package chat

import (
	"regexp"
	"strings"
)

// Interest categories assigned by keyword classification.
const (
	InterestSelling    = "Selling"
	InterestBuying     = "Buying"
	InterestRelocation = "Relocation"
	InterestGeneral    = "General Inquiry"
)

// ContactInfo holds contact details scraped from a conversation transcript.
// Unmatched fields are empty strings, never absent, so callers can
// concatenate without nil checks.
type ContactInfo struct {
	HasValidContact bool   `json:"has_valid_contact"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Interest        string `json:"interest"`
}

var (
	// Phone shapes: (704) 555-0199, 704-555-0199, 704.555.0199, 7045550199.
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)

	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// Primary name heuristic: an introduction phrase followed by one or two
	// word tokens.
	introNamePattern = regexp.MustCompile(`(?i)(?:my name is|i'm|i am|this is)\s+([A-Za-z]+)(?:\s+([A-Za-z]+))?`)

	// Fallback: two word tokens preceding a callback request, on the
	// assumption a name precedes "... my phone/number" or "... call me".
	callbackNamePattern = regexp.MustCompile(`(?i)\b([A-Za-z]+)\s+([A-Za-z]+)\b[^.!?]*\b(?:phone|number|call)`)
)

// Keyword sets for interest classification, tested in priority order:
// selling beats buying beats relocation. First set with a match wins.
var (
	sellingKeywords    = []string{"sell my", "selling", "list my", "want to sell", "listing my"}
	buyingKeywords     = []string{"buy", "buying", "purchase", "looking for a home", "house hunting"}
	relocationKeywords = []string{"relocat", "moving to", "moving from", "transferring"}
)

// ExtractContactInfo scans raw conversation text for a phone number, email,
// name, and interest category. Pure and deterministic. When a field matches
// more than once the last occurrence wins: the most recent statement is
// treated as a correction of earlier ones. Phone punctuation is preserved as
// captured; no validation happens beyond the length and "@" heuristics, so
// false positives such as a ten-digit street-address fragment are accepted.
func ExtractContactInfo(text string) ContactInfo {
	info := ContactInfo{Interest: InterestGeneral}
	if text == "" {
		return info
	}

	lower := strings.ToLower(text)

	if matches := phonePattern.FindAllString(text, -1); len(matches) > 0 {
		info.Phone = matches[len(matches)-1]
	}
	if matches := emailPattern.FindAllString(text, -1); len(matches) > 0 {
		info.Email = matches[len(matches)-1]
	}

	info.FirstName, info.LastName = extractName(text)
	info.Interest = classifyInterest(lower)

	info.HasValidContact = len(info.Phone) >= 10 || strings.Contains(info.Email, "@")
	return info
}

// extractName tries the introduction-phrase pattern first, then the
// callback-request fallback. The first pattern that matches stops the search;
// results are never merged across patterns.
func extractName(text string) (first, last string) {
	if m := introNamePattern.FindStringSubmatch(text); m != nil {
		return m[1], m[2]
	}
	if m := callbackNamePattern.FindStringSubmatch(text); m != nil {
		return m[1], m[2]
	}
	return "", ""
}

func classifyInterest(lower string) string {
	for _, kw := range sellingKeywords {
		if strings.Contains(lower, kw) {
			return InterestSelling
		}
	}
	for _, kw := range buyingKeywords {
		if strings.Contains(lower, kw) {
			return InterestBuying
		}
	}
	for _, kw := range relocationKeywords {
		if strings.Contains(lower, kw) {
			return InterestRelocation
		}
	}
	return InterestGeneral
}

// Package extract implements the rule-based task extractor.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mkondo/taskping/internal/domain"
)

// Fixed local times for unqualified day-part phrases.
const (
	morningHour   = 9
	afternoonHour = 14
	eveningHour   = 19
)

var urgencyMarkers = []string{"urgent", "important", "asap", "now!!"}

var categoryKeywords = map[string]string{
	"call":    "call",
	"phone":   "call",
	"pay":     "payment",
	"payment": "payment",
	"bill":    "payment",
	"buy":     "shopping",
	"email":   "email",
	"mail":    "email",
	"meet":    "meeting",
	"meeting": "meeting",
}

var clockTimeRe = regexp.MustCompile(`\bat\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)

// Extractor turns free text into task drafts using fixed phrase rules.
// It never fails: text it cannot interpret yields an empty slice.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses one draft per non-empty line of text, resolving date
// phrases against nowLocal.
func (e *Extractor) Extract(text string, nowLocal time.Time) []domain.TaskDraft {
	var drafts []domain.TaskDraft
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if draft, ok := parseLine(line, nowLocal); ok {
			drafts = append(drafts, draft)
		}
	}
	return drafts
}

func parseLine(line string, nowLocal time.Time) (domain.TaskDraft, bool) {
	lower := strings.ToLower(line)

	draft := domain.TaskDraft{
		Priority: domain.PriorityNormal,
	}

	for _, marker := range urgencyMarkers {
		if strings.Contains(lower, marker) {
			draft.Priority = domain.PriorityHigh
			break
		}
	}

	for keyword, category := range categoryKeywords {
		if containsWord(lower, keyword) {
			draft.Category = category
			break
		}
	}

	draft.DueAt = resolveDue(lower, nowLocal)
	draft.Title = cleanTitle(line)
	if draft.Title == "" {
		return domain.TaskDraft{}, false
	}
	return draft, true
}

// resolveDue maps the fixed date/time phrases onto an absolute instant.
// "today" keeps the current local date, "tomorrow" moves one day forward;
// day-part words supply the clock time when no explicit time is present.
func resolveDue(lower string, nowLocal time.Time) *time.Time {
	day := nowLocal
	dated := false
	switch {
	case strings.Contains(lower, "tomorrow"):
		day = nowLocal.AddDate(0, 0, 1)
		dated = true
	case strings.Contains(lower, "today"), strings.Contains(lower, "tonight"):
		dated = true
	}

	hour, minute, timed := explicitClockTime(lower)
	if !timed {
		switch {
		case strings.Contains(lower, "morning"):
			hour, timed = morningHour, true
		case strings.Contains(lower, "afternoon"):
			hour, timed = afternoonHour, true
		case strings.Contains(lower, "evening"), strings.Contains(lower, "tonight"), strings.Contains(lower, "after work"):
			// "after work" reads as end of day, not mid-afternoon.
			hour, timed = eveningHour, true
		}
	}

	if !dated && !timed {
		return nil
	}
	if !timed {
		hour = eveningHour
	}

	due := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, nowLocal.Location())
	return &due
}

func explicitClockTime(lower string) (hour, minute int, ok bool) {
	m := clockTimeRe.FindStringSubmatch(lower)
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if m[3] == "pm" && hour < 12 {
		hour += 12
	}
	if m[3] == "am" && hour == 12 {
		hour = 0
	}
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// cleanTitle strips the recognized scheduling phrases so the stored title
// reads as the bare task.
func cleanTitle(line string) string {
	title := clockTimeRe.ReplaceAllString(line, "")
	// Longer phrases first so "in the morning" goes before bare "morning".
	for _, phrase := range []string{"tomorrow", "today", "tonight", "in the morning", "in the afternoon", "in the evening", "this morning", "this afternoon", "this evening", "after work", "morning", "afternoon", "evening"} {
		title = removePhrase(title, phrase)
	}
	title = strings.Join(strings.Fields(title), " ")
	return strings.Trim(title, " ,.")
}

func removePhrase(s, phrase string) string {
	lower := strings.ToLower(s)
	idx := strings.Index(lower, phrase)
	if idx < 0 {
		return s
	}
	return s[:idx] + s[idx+len(phrase):]
}

func containsWord(lower, word string) bool {
	for _, field := range strings.FieldsFunc(lower, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '!' || r == '?'
	}) {
		if field == word {
			return true
		}
	}
	return false
}

// Ensure Extractor implements the port.
var _ domain.Extractor = (*Extractor)(nil)

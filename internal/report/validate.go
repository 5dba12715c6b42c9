package report

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field length invariants, counted in runes so multi-byte Hangul text
// is measured the same way the mobile form counts characters.
const (
	TitleMinLen   = 1
	TitleMaxLen   = 100
	ContentMinLen = 10
	ContentMaxLen = 5000
)

// ValidationError reports a field that violates a length or presence
// invariant. It is surfaced to the caller before any store call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ValidateTitle checks the 1–100 rune title invariant.
func ValidateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < TitleMinLen {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if n > TitleMaxLen {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("title must be at most %d characters", TitleMaxLen)}
	}
	return nil
}

// ValidateContent checks the 10–5000 rune content invariant.
func ValidateContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n < ContentMinLen {
		return &ValidationError{Field: "content", Message: fmt.Sprintf("content must be at least %d characters", ContentMinLen)}
	}
	if n > ContentMaxLen {
		return &ValidationError{Field: "content", Message: fmt.Sprintf("content must be at most %d characters", ContentMaxLen)}
	}
	return nil
}

// ValidateDraft checks all invariants a draft must satisfy before it can
// become a record.
func ValidateDraft(d Draft) error {
	if d.Type == "" {
		return &ValidationError{Field: "type", Message: "type is required"}
	}
	if err := ValidateTitle(d.Title); err != nil {
		return err
	}
	return ValidateContent(d.Content)
}

// SessionLabel returns the Korean display label for a session slot.
func SessionLabel(s Session) string {
	switch s {
	case SessionAM:
		return "출근 보고"
	case SessionPM:
		return "퇴근 보고"
	default:
		return ""
	}
}

// ShareText renders a report as plain text for the share/confirmation
// flow.
func ShareText(r Report) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(r.CreatedAt.Format("2006-01-02"))
	if label := SessionLabel(r.Session); label != "" {
		b.WriteString(" ")
		b.WriteString(label)
	}
	b.WriteString("] ")
	b.WriteString(r.Title)
	b.WriteString("\n\n")
	b.WriteString(r.Content)
	if len(r.Keywords) > 0 {
		b.WriteString("\n\n")
		for i, kw := range r.Keywords {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString("#")
			b.WriteString(kw)
		}
	}
	b.WriteString("\n")
	return b.String()
}

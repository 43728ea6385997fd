package entry

import (
	"fmt"
	"strings"
)

// Text renders the entry as plain text suitable for pasting elsewhere.
func (e *Entry) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Walk Date: %s\n", e.Date)
	fmt.Fprintf(&b, "Tags: %s\n\n", e.Tags)
	for _, s := range e.Sections {
		fmt.Fprintf(&b, "Section: %s\n", s.Title)
		for _, a := range s.Answers {
			fmt.Fprintf(&b, "%s: %s\n", a.Question, a.Answer)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Title is the one-line summary used in listings.
func (e *Entry) Title() string {
	if e.Tags != "" {
		return fmt.Sprintf("[%s] Walk Entry", e.Tags)
	}
	return "Walk Entry"
}

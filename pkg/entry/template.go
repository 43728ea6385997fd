package entry

import "strings"

var (
	// DefaultSectionTitles is the canonical set of section titles.
	DefaultSectionTitles = []string{"Ambient", "Frozen", "ISB", "FOTM", "Fridge", "General"}

	// DefaultQuestions are asked in every templated section.
	DefaultQuestions = []string{"Findings", "Reasoning", "Solution"}
)

const (
	// NewSectionTitle and NewQuestionLabel label user-added sections.
	NewSectionTitle  = "New Section"
	NewQuestionLabel = "New Question"

	DefaultTemplate = "Standard Walk"
)

// Template is a named list of section titles.
type Template struct {
	Name     string
	Sections []string
}

// Templates returns the built-in templates in display order.
func Templates() []Template {
	return []Template{
		{Name: DefaultTemplate, Sections: DefaultSectionTitles},
		{Name: "Quick Check", Sections: []string{"Ambient", "General"}},
	}
}

// TemplateByName finds a template ignoring case and surrounding space.
func TemplateByName(name string) (Template, bool) {
	name = strings.TrimSpace(name)
	for _, t := range Templates() {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Template{}, false
}

// NewQuestionSet returns a section asking each question with an empty answer.
func NewQuestionSet(title string, questions []string) Section {
	s := Section{Title: title, Answers: make([]Answer, 0, len(questions))}
	for _, q := range questions {
		s.Answers = append(s.Answers, Answer{Question: q})
	}
	return s
}

// NewQuestionSection is the section added by hand: one open question.
func NewQuestionSection(title string) Section {
	if strings.TrimSpace(title) == "" {
		title = NewSectionTitle
	}
	return NewQuestionSet(title, []string{NewQuestionLabel})
}

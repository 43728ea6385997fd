package entry

// Draft is an unsaved entry: everything but the id and creation timestamp.
type Draft struct {
	Date     Date      `json:"date"`
	Tags     string    `json:"tags"`
	Sections []Section `json:"sections"`
}

// NewDraft builds a draft for date with one section per title, each holding
// the default questions with empty answers.
func NewDraft(date Date, titles []string) *Draft {
	d := &Draft{Date: date, Sections: make([]Section, 0, len(titles))}
	for _, title := range titles {
		d.Sections = append(d.Sections, NewQuestionSet(title, DefaultQuestions))
	}
	return d
}

// Entry converts the draft into a new entry with a fresh id and timestamp. A
// zero date defaults to today.
func (d *Draft) Entry() *Entry {
	date := d.Date
	if date.IsZero() {
		date = Today()
	}
	e := New(date, d.Tags, d.Sections...)
	e.Normalize()
	return e
}

// Clone returns a deep copy of d.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Sections = cloneSections(d.Sections)
	return &cp
}

// SetAnswer writes text into the answer at the given indices. It reports
// false when the indices do not exist.
func (d *Draft) SetAnswer(section, answer int, text string) bool {
	if section < 0 || section >= len(d.Sections) {
		return false
	}
	answers := d.Sections[section].Answers
	if answer < 0 || answer >= len(answers) {
		return false
	}
	answers[answer].Answer = text
	return true
}

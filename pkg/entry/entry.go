// Package entry defines the journal data model: dated entries made of ordered
// sections, each holding ordered question and answer pairs.
package entry

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Entry is the durable journal record.
type Entry struct {
	ID        string    `json:"id"`
	Date      Date      `json:"date"`
	Timestamp Timestamp `json:"timestamp"`
	Tags      string    `json:"tags"`
	Sections  []Section `json:"sections"`
}

// Section is a titled, ordered group of answers.
type Section struct {
	Title   string   `json:"title"`
	Answers []Answer `json:"answers"`
}

// Answer is one question with the text written for it.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// New returns an entry for date with a fresh id and creation timestamp.
func New(date Date, tags string, sections ...Section) *Entry {
	e := &Entry{
		ID:        NewID(),
		Date:      date,
		Timestamp: Now(),
		Tags:      tags,
		Sections:  cloneSections(sections),
	}
	return e
}

// NewID returns a random UUID, or the current Unix time in milliseconds when
// the system cannot provide randomness.
func NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	return id.String()
}

// NewSection returns a section with no answers.
func NewSection(title string) Section {
	return Section{Title: title, Answers: []Answer{}}
}

// Normalize replaces nil slices with empty ones so the record always carries
// `sections` and `answers` arrays.
func (e *Entry) Normalize() {
	if e.Sections == nil {
		e.Sections = []Section{}
	}
	for i := range e.Sections {
		if e.Sections[i].Answers == nil {
			e.Sections[i].Answers = []Answer{}
		}
	}
}

// Clone returns a deep copy of e.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Sections = cloneSections(e.Sections)
	return &cp
}

// Clone returns a deep copy of s.
func (s Section) Clone() Section {
	answers := make([]Answer, len(s.Answers))
	copy(answers, s.Answers)
	return Section{Title: s.Title, Answers: answers}
}

func cloneSections(sections []Section) []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		out[i] = s.Clone()
	}
	return out
}

// AnswerCount is the total number of answers across all sections.
func (e *Entry) AnswerCount() int {
	n := 0
	for _, s := range e.Sections {
		n += len(s.Answers)
	}
	return n
}

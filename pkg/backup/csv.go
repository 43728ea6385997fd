package backup

import (
	"encoding/csv"
	"io"

	"tableflip.dev/walkjournal/pkg/entry"
)

var csvHeader = []string{"Date", "Section", "Question", "Answer"}

// ExportCSV writes one row per answer. Sections without answers produce no
// rows.
func ExportCSV(w io.Writer, entries []*entry.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		for _, s := range e.Sections {
			for _, a := range s.Answers {
				if err := cw.Write([]string{e.Date.String(), s.Title, a.Question, a.Answer}); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

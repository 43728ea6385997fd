package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/walkjournal/pkg/entry"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints one month per row, highlighting the days that have at least
// one walk.
func (pp *PrettyPrint) Calendar(from, to entry.Date, entries ...*entry.Entry) {
	walked := make(map[entry.Date]int, len(entries))
	for _, e := range entries {
		walked[e.Date]++
	}
	month := entry.NewDate(from.Year, from.Month, 1)
	for !lastOfMonth(to).Before(month) {
		count := make([]int, DaysIn(month))
		for i := range count {
			count[i] = walked[entry.NewDate(month.Year, month.Month, i+1)]
		}
		pp.PrintMonthCount(month, count)
		month = NextMonth(month)
	}
}

func (pp *PrettyPrint) PrintMonthCount(then entry.Date, count []int) {
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", then.Month, then.Year)
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiGreen)

	total := 0
	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			total += count[i]
			_, _ = l2.Fprintf(pp.out(), "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(pp.out(), "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	if d != time.Sunday {
		_, _ = fmt.Fprint(pp.out(), "\n")
	}
	_, _ = color.New(color.Faint).Fprintf(pp.out(), "%d walks\n\n", total)
}

func NextMonth(then entry.Date) entry.Date {
	return entry.NewDate(then.Year, then.Month+1, 1)
}

func DaysIn(then entry.Date) int {
	return time.Date(then.Year, then.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then entry.Date) time.Weekday {
	return entry.NewDate(then.Year, then.Month, 1).Weekday()
}

func lastOfMonth(d entry.Date) entry.Date {
	return entry.NewDate(d.Year, d.Month, DaysIn(d))
}

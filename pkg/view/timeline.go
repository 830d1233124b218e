package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/granular/pkg/glyph"
	"tableflip.dev/granular/pkg/printers"
	"tableflip.dev/granular/pkg/timeutil"
)

// timeline is the shared slot grid under the gantt and heatmap views: a
// run of day, week, or month slots with per-slot display widths and an
// elision set deciding which slots get header labels when the window is
// wider than the terminal.
type timeline struct {
	granularity Granularity
	slots       []time.Time
	widths      []int
	labeled     map[int]bool
	leftWidth   int
}

const defaultLeftColumnWidth = 40

// minLeftColumnWidth is the narrowest usable label column: room for the
// indent and a truncated label with its ellipsis. Narrower configured
// values are clamped up rather than rejected.
const minLeftColumnWidth = 8

// timelineWidth approximates the columns available for slots. The
// composer has no terminal handle, so a fixed budget keeps rendering
// deterministic.
const timelineWidth = 120

func newTimeline(start, end time.Time, g Granularity, leftWidth int) timeline {
	if leftWidth < minLeftColumnWidth {
		leftWidth = minLeftColumnWidth
	}
	tl := timeline{
		granularity: g,
		labeled:     map[int]bool{},
		leftWidth:   leftWidth,
	}
	for cur := slotStart(start, g); !cur.After(end); cur = nextSlot(cur, g) {
		tl.slots = append(tl.slots, cur)
	}
	tl.chooseLabels(timelineWidth - leftWidth)
	tl.computeWidths()
	return tl
}

// slotStart truncates an instant to the beginning of its slot. Weeks
// start on Monday.
func slotStart(t time.Time, g Granularity) time.Time {
	t = timeutil.StartOfDay(t.Local())
	switch g {
	case GranularityWeek:
		for t.Weekday() != time.Monday {
			t = t.AddDate(0, 0, -1)
		}
		return t
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return t
	}
}

func nextSlot(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		return t.AddDate(0, 0, 7)
	case GranularityMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func (tl timeline) slotEnd(i int) time.Time {
	return nextSlot(tl.slots[i], tl.granularity)
}

func slotLabel(t time.Time, g Granularity) string {
	switch g {
	case GranularityWeek:
		_, week := t.ISOWeek()
		return strconv.Itoa(week)
	case GranularityMonth:
		return t.Format("Jan")
	default:
		return t.Format("02")
	}
}

// chooseLabels decides which slots carry header labels. When everything
// fits every slot is labeled; otherwise progressively coarser anchors
// are kept: week starts, then month starts, then year starts.
func (tl *timeline) chooseLabels(available int) {
	if len(tl.slots) <= available {
		for i := range tl.slots {
			tl.labeled[i] = true
		}
		return
	}

	keep := func(pred func(time.Time) bool) map[int]bool {
		set := map[int]bool{}
		for i, slot := range tl.slots {
			if pred(slot) {
				set[i] = true
			}
		}
		return set
	}

	switch tl.granularity {
	case GranularityDay:
		tl.labeled = keep(func(t time.Time) bool {
			return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
		})
		if len(tl.labeled) > available {
			tl.labeled = keep(func(t time.Time) bool { return t.Weekday() == time.Monday })
		}
		if len(tl.labeled) > available {
			tl.labeled = keep(func(t time.Time) bool { return t.Day() == 1 })
		}
	case GranularityWeek:
		tl.labeled = keep(func(t time.Time) bool { return t.Day() <= 7 })
	case GranularityMonth:
		tl.labeled = keep(func(t time.Time) bool { return t.Month() == time.January })
	}

	if len(tl.slots) > 0 {
		tl.labeled[0] = true
		tl.labeled[len(tl.slots)-1] = true
	}
}

// computeWidths sizes each slot: labeled slots take their label plus a
// separating space when they follow another labeled slot, quiet slots
// take a single column.
func (tl *timeline) computeWidths() {
	tl.widths = make([]int, len(tl.slots))
	prevLabeled := false
	for i, slot := range tl.slots {
		if tl.labeled[i] {
			w := len(slotLabel(slot, tl.granularity))
			if prevLabeled {
				w++
			}
			tl.widths[i] = w
			prevLabeled = true
		} else {
			tl.widths[i] = 1
			prevLabeled = false
		}
	}
}

func (tl timeline) totalWidth() int {
	total := 0
	for _, w := range tl.widths {
		total += w
	}
	return total
}

// rangeLine prints the window the timeline covers.
func (tl timeline) rangeLine(useColor bool) string {
	if len(tl.slots) == 0 {
		return ""
	}
	last := tl.slotEnd(len(tl.slots) - 1).AddDate(0, 0, -1)
	label := fmt.Sprintf("%s to %s", tl.slots[0].Format("2006-01-02"), last.Format("2006-01-02"))
	suffix := fmt.Sprintf(" (granularity: %s)", tl.granularity)
	if !useColor {
		return "\n" + label + suffix + "\n"
	}
	return "\n" + glyph.Bold(label) + suffix + "\n"
}

// headerLine renders the slot labels over the grid, highlighting the
// slot containing now.
func (tl timeline) headerLine(now time.Time, useColor bool) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", tl.leftWidth))

	current := slotStart(now, tl.granularity)
	prevLabeled := false
	for i, slot := range tl.slots {
		if !tl.labeled[i] {
			b.WriteString(strings.Repeat(" ", tl.widths[i]))
			prevLabeled = false
			continue
		}
		if prevLabeled {
			b.WriteString(" ")
		}
		label := slotLabel(slot, tl.granularity)
		if useColor {
			switch {
			case slot.Equal(current):
				label = glyph.Bold(glyph.Underline(printers.Colorize("cyan", label, true)))
			case tl.granularity == GranularityDay &&
				(slot.Weekday() == time.Saturday || slot.Weekday() == time.Sunday):
				label = glyph.Bold(printers.Colorize("yellow", label, true))
			default:
				label = glyph.Bold(printers.Colorize("cyan", label, true))
			}
		}
		b.WriteString(label)
		prevLabeled = true
	}
	return b.String()
}

// monthLine adds a month row over day-granularity grids that span more
// than one month, aligning each label with the first visible day of its
// month. Returns "" when no row is needed.
func (tl timeline) monthLine(useColor bool) string {
	if tl.granularity != GranularityDay || len(tl.slots) == 0 {
		return ""
	}
	months := map[time.Month]bool{}
	for _, slot := range tl.slots {
		months[slot.Month()] = true
	}
	if len(months) <= 1 {
		return ""
	}

	chars := []byte(strings.Repeat(" ", tl.totalWidth()))
	pos := 0
	prevLabeled := false
	for i, slot := range tl.slots {
		cell := pos
		if tl.labeled[i] && prevLabeled {
			cell++
		}
		if slot.Day() == 1 || i == 0 {
			label := slot.Format("Jan")
			for j := 0; j < len(label) && cell+j < len(chars); j++ {
				chars[cell+j] = label[j]
			}
		}
		pos += tl.widths[i]
		prevLabeled = tl.labeled[i]
	}

	line := strings.TrimRight(string(chars), " ")
	if line == "" {
		return ""
	}
	if useColor {
		line = glyph.Bold(printers.Colorize("yellow", line, true))
	}
	return strings.Repeat(" ", tl.leftWidth) + line
}

func (tl timeline) separatorLine(useColor bool) string {
	line := strings.Repeat("─", tl.leftWidth+tl.totalWidth())
	if useColor {
		line = glyph.Dim(line)
	}
	return line
}

// leftColumn fits a label into the fixed left column, truncating by rune
// with an ellipsis when it overflows.
func (tl timeline) leftColumn(label string) string {
	runes := []rune(label)
	if len(runes) > tl.leftWidth {
		if tl.leftWidth <= 3 {
			return string(runes[:tl.leftWidth])
		}
		return string(runes[:tl.leftWidth-3]) + "..."
	}
	return label + strings.Repeat(" ", tl.leftWidth-len(runes))
}

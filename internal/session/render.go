package session

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tagmark/internal/console"
	"tagmark/internal/dataset"
)

func (s *Session) renderCounts() {
	marked, unmarked, skipped := s.Counts()
	table := console.RenderTable(
		[]string{"Marked", "Unmarked", "Skipped"},
		[][]string{{
			strconv.Itoa(marked),
			strconv.Itoa(unmarked),
			strconv.Itoa(skipped),
		}},
		[]console.Alignment{console.AlignRight, console.AlignRight, console.AlignRight},
	)
	s.printer.Plain("%s", table)
}

func (s *Session) renderLegend() {
	s.printer.Success("[%s] skip  [%s] back  [%s] more",
		keyName(s.opts.Controls.Skip),
		keyName(s.opts.Controls.Back),
		keyName(s.opts.Controls.More))

	keystrokes := make([]string, 0, len(s.opts.Labels))
	for keystroke := range s.opts.Labels {
		keystrokes = append(keystrokes, keystroke)
	}
	sort.Strings(keystrokes)

	parts := make([]string, 0, len(keystrokes))
	for _, keystroke := range keystrokes {
		parts = append(parts, fmt.Sprintf("[%s] %s", keyName(keystroke), s.opts.Labels[keystroke]))
	}
	s.printer.Success("%s", strings.Join(parts, "  "))
}

// renderRecord shows the session counters, the legend, the context columns,
// and the first reveal of the text.
func (s *Session) renderRecord(row dataset.Row) {
	s.printer.Blank()
	s.renderCounts()
	s.renderLegend()
	s.printer.Blank()

	for _, column := range s.opts.ShowColumns {
		if value := row[column]; value != "" {
			s.printer.Plain("%s: %s", column, value)
		} else {
			s.printer.Alert("%s: (empty)", column)
		}
	}
	if len(s.opts.ShowColumns) > 0 {
		s.printer.Blank()
	}

	text := []rune(row[s.opts.TextColumn])
	if len(text) == 0 {
		s.printer.Alert("EMPTY TEXT")
		s.charsShown = 0
		return
	}
	shown := min(len(text), s.opts.ShowChars)
	s.printer.Plain("%s", string(text[:shown]))
	s.charsShown = shown
}

func keyName(keystroke string) string {
	switch keystroke {
	case " ":
		return "space"
	case "":
		return "enter"
	default:
		return keystroke
	}
}

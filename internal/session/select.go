package session

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"tagmark/internal/console"
	"tagmark/internal/skipcache"
)

// ChooseSession prompts the operator to pick an existing cache session by
// number or name a new one. An out-of-range number is reported and
// re-prompted; any non-numeric input becomes the session name.
func ChooseSession(ctx context.Context, cache *skipcache.Cache, lines *LineReader, printer *console.Printer) (string, error) {
	names := cache.Sessions()
	printer.Info("Cached sessions:")
	if len(names) == 0 {
		printer.Plain("  (none)")
	} else {
		rows := make([][]string, 0, len(names))
		for i, name := range names {
			rows = append(rows, []string{strconv.Itoa(i), name, strconv.Itoa(cache.Count(name))})
		}
		printer.Plain("%s", console.RenderTable(
			[]string{"#", "Session", "Skipped"},
			rows,
			[]console.Alignment{console.AlignRight, console.AlignLeft, console.AlignRight},
		))
	}

	for {
		printer.Info("Enter a number of an existing session or a name for a new one:")
		line, ok := lines.Next(ctx)
		if !ok {
			return "", errors.New("no session selected")
		}
		line = strings.TrimSpace(line)
		if line == "" {
			printer.Warn("Session name cannot be empty")
			continue
		}
		if number, err := strconv.Atoi(line); err == nil {
			name, ok := cache.SessionByIndex(number)
			if !ok {
				printer.Warn("%d is not a valid session number; choose 0-%d", number, len(names)-1)
				continue
			}
			return name, nil
		}
		return line, nil
	}
}

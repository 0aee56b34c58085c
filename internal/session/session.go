package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"tagmark/internal/console"
	"tagmark/internal/dataset"
	"tagmark/internal/logging"
	"tagmark/internal/skipcache"
)

// DefaultSessionName is used when no cache session was chosen.
const DefaultSessionName = "default"

const defaultShowChars = 500

// Controls holds the keystrokes bound to the non-label actions.
type Controls struct {
	Skip string
	Back string
	More string
}

// DefaultControls returns the stock bindings: space skips, "b" goes back,
// and a bare Enter reveals more text.
func DefaultControls() Controls {
	return Controls{Skip: " ", Back: "b", More: ""}
}

// Options configures a labeling session.
type Options struct {
	// Labels maps single-character keystrokes to the values written into
	// the label column. Required.
	Labels map[string]string

	IDColumn    string
	TextColumn  string
	LabelColumn string
	ShowColumns []string

	// ShowChars is the character budget per reveal. Defaults to 500.
	ShowChars int

	// SelectLabel restricts the unmarked table to rows whose current label
	// equals it.
	SelectLabel string

	Controls Controls

	// MarkedPath is the destination the labeled table is rewritten to after
	// every label. The session also holds a flock lock next to it.
	MarkedPath string

	// WriteMeta enables the meta.json snapshot; MetaPrefix entries are
	// merged into it.
	WriteMeta  bool
	MetaPrefix map[string]any

	// Cache persists the skip set between runs; nil disables caching.
	Cache       *skipcache.Cache
	SessionName string

	// SessionMinutes/BreakMinutes enable timed labeling phases when both
	// are positive.
	SessionMinutes int
	BreakMinutes   int

	// Lines supplies operator input. Required for Run.
	Lines *LineReader

	// Printer receives operator-facing output. Required.
	Printer *console.Printer

	Logger *slog.Logger

	// Now and Rand are injectable for tests.
	Now  func() time.Time
	Rand *rand.Rand
}

// Session drives the read-label-write loop over an unmarked table.
type Session struct {
	opts     Options
	unmarked *dataset.Table
	marked   *dataset.Table
	queue    *samplingQueue
	skipped  []int
	history  actionHistory
	written  []int
	clock    *phaseClock
	lock     *flock.Flock
	printer  *console.Printer
	logger   *slog.Logger
	now      func() time.Time

	runID      string
	startedAt  time.Time
	charsShown int
}

// New validates the options against the unmarked table and assembles a
// session ready to run. The marked table is read back from MarkedPath when it
// already exists, which is what makes interrupted runs resumable.
func New(unmarked *dataset.Table, opts Options) (*Session, error) {
	if unmarked == nil {
		return nil, errors.New("unmarked table is required")
	}
	if opts.ShowChars <= 0 {
		opts.ShowChars = defaultShowChars
	}
	if opts.SessionName == "" {
		opts.SessionName = DefaultSessionName
	}
	if opts.Printer == nil {
		return nil, errors.New("printer is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if err := validateOptions(opts, unmarked); err != nil {
		return nil, err
	}

	hadLabels := unmarked.HasColumn(opts.LabelColumn)
	unmarked.EnsureColumn(opts.LabelColumn)
	if opts.SelectLabel != "" && hadLabels {
		unmarked = unmarked.FilterEqual(opts.LabelColumn, opts.SelectLabel)
	}

	marked, err := dataset.LoadOrNew(opts.MarkedPath, unmarked.Columns())
	if err != nil {
		return nil, fmt.Errorf("load marked table: %w", err)
	}
	marked.EnsureColumn(opts.LabelColumn)

	s := &Session{
		opts:     opts,
		unmarked: unmarked,
		marked:   marked,
		queue:    newSamplingQueue(unmarked.Len(), opts.Rand),
		printer:  opts.Printer,
		logger:   logging.NewComponentLogger(opts.Logger, "session"),
		now:      opts.Now,
		runID:    uuid.NewString(),
	}
	if opts.Cache != nil {
		s.skipped = opts.Cache.Skipped(opts.SessionName)
	}
	// Rows already labeled in a previous run, and rows the chosen cache
	// session skipped, never enter the queue.
	s.queue.Filter(func(index int) bool {
		if s.isSkipped(index) {
			return false
		}
		id := unmarked.Value(index, opts.IDColumn)
		return !marked.ContainsValue(opts.IDColumn, id)
	})
	if opts.SessionMinutes > 0 && opts.BreakMinutes > 0 {
		s.clock = newPhaseClock(opts.SessionMinutes, opts.BreakMinutes)
	}
	if opts.MarkedPath != "" {
		s.lock = flock.New(opts.MarkedPath + ".lock")
	}
	return s, nil
}

func validateOptions(opts Options, unmarked *dataset.Table) error {
	if len(opts.Labels) == 0 {
		return errors.New("labels must define at least one keystroke")
	}
	controlNames := map[string]string{
		opts.Controls.Skip: "skip",
		opts.Controls.Back: "back",
		opts.Controls.More: "more",
	}
	if len(controlNames) != 3 {
		return errors.New("skip, back, and more keystrokes must differ")
	}
	for keystroke := range opts.Labels {
		if utf8.RuneCountInString(keystroke) != 1 {
			return fmt.Errorf("label keystroke %q must be a single character", keystroke)
		}
		if name, collides := controlNames[keystroke]; collides {
			return fmt.Errorf("label keystroke %q already bound to the %s control", keystroke, name)
		}
	}

	required := append([]string{opts.IDColumn, opts.TextColumn}, opts.ShowColumns...)
	if missing := unmarked.MissingColumns(required...); len(missing) > 0 {
		return fmt.Errorf("columns %v not in the table columns %v", missing, unmarked.Columns())
	}

	if (opts.SessionMinutes > 0) != (opts.BreakMinutes > 0) {
		return errors.New("session and break lengths must be configured together")
	}
	if opts.SessionMinutes < 0 || opts.BreakMinutes < 0 {
		return errors.New("session and break lengths must be positive")
	}
	if opts.Lines == nil {
		return errors.New("line reader is required")
	}
	return nil
}

// Counts reports the marked, unmarked, and skipped totals shown to the
// operator.
func (s *Session) Counts() (marked, unmarked, skipped int) {
	return s.marked.Len(), s.unmarked.Len(), len(s.skipped)
}

// QueueLen returns the number of indices still queued.
func (s *Session) QueueLen() int { return s.queue.Len() }

// Marked exposes the labeled table.
func (s *Session) Marked() *dataset.Table { return s.marked }

// Run drives the labeling loop until the queue drains, the operator
// interrupts (ctx done), or input ends. Interruption is not an error: the
// loop prints a summary and returns nil.
func (s *Session) Run(ctx context.Context) error {
	if s.lock != nil {
		locked, err := s.lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire session lock: %w", err)
		}
		if !locked {
			return fmt.Errorf("another labeling session holds %s", s.lock.Path())
		}
		defer s.lock.Unlock()
	}

	s.startedAt = s.now()
	if s.clock != nil {
		s.clock.reset(s.startedAt)
	}
	s.logger.Info("labeling session started",
		logging.String("run_id", s.runID),
		logging.String("cache_session", s.opts.SessionName),
		logging.Int("queued", s.queue.Len()),
		logging.Int("marked", s.marked.Len()))

	continuingRecord := false
	for {
		if s.clock != nil {
			s.clock.tick(s.now())
			if s.clock.onBreak {
				s.printer.Alert("BREAK for %s", formatRemaining(s.clock.remaining(s.now())))
				if _, ok := s.opts.Lines.Next(ctx); !ok {
					s.finish("Stopped")
					return nil
				}
				continue
			}
		}

		index, ok := s.queue.Peek()
		if !ok {
			s.finish("All rows labeled")
			return nil
		}

		id := s.unmarked.Value(index, s.opts.IDColumn)
		if s.marked.ContainsValue(s.opts.IDColumn, id) || s.isSkipped(index) {
			s.queue.PopFront()
			continue
		}

		row := s.unmarked.Row(index)
		if !continuingRecord {
			s.renderRecord(row)
		}
		continuingRecord = false

		input, ok := s.readInput(ctx)
		if !ok {
			s.finish("Stopped")
			return nil
		}

		switch input.kind {
		case inputSkip:
			s.skip()
		case inputBack:
			if err := s.back(); err != nil {
				return err
			}
		case inputMore:
			s.more(row)
			continuingRecord = true
		case inputLabel:
			if err := s.applyLabel(row, input.value); err != nil {
				return err
			}
		}
	}
}

type inputKind int

const (
	inputSkip inputKind = iota
	inputBack
	inputMore
	inputLabel
)

type operatorInput struct {
	kind  inputKind
	value string
}

// readInput blocks until a recognized keystroke arrives. Unknown input
// reprints the legend and never advances state.
func (s *Session) readInput(ctx context.Context) (operatorInput, bool) {
	for {
		line, ok := s.opts.Lines.Next(ctx)
		if !ok {
			return operatorInput{}, false
		}
		switch line {
		case s.opts.Controls.Skip:
			return operatorInput{kind: inputSkip}, true
		case s.opts.Controls.Back:
			return operatorInput{kind: inputBack}, true
		case s.opts.Controls.More:
			return operatorInput{kind: inputMore}, true
		}
		if value, ok := s.opts.Labels[line]; ok {
			return operatorInput{kind: inputLabel, value: value}, true
		}
		s.renderLegend()
	}
}

func (s *Session) skip() {
	index, ok := s.queue.PopFront()
	if !ok {
		return
	}
	s.skipped = append(s.skipped, index)
	s.charsShown = 0
	s.history.Push(actionSkip)
	s.persistSkips()
	s.printer.Alert("SKIPPED")
}

func (s *Session) back() error {
	last, ok := s.history.Pop()
	if !ok {
		s.printer.Alert("HISTORY IS EMPTY")
		return nil
	}
	s.charsShown = 0

	switch last {
	case actionSkip:
		index := s.skipped[len(s.skipped)-1]
		s.skipped = s.skipped[:len(s.skipped)-1]
		s.queue.PushFront(index)
		s.persistSkips()
	case actionWrite:
		index := s.written[len(s.written)-1]
		s.written = s.written[:len(s.written)-1]
		s.queue.PushFront(index)
		s.marked.RemoveLast()
		if err := s.marked.Save(s.opts.MarkedPath); err != nil {
			return fmt.Errorf("persist marked table: %w", err)
		}
	}
	s.printer.Alert("BACK")
	return nil
}

func (s *Session) more(row dataset.Row) {
	text := []rune(row[s.opts.TextColumn])
	if len(text) == 0 {
		s.printer.Alert("CAN'T SHOW MORE")
		return
	}
	start := s.charsShown
	if start >= len(text) {
		s.printer.Alert("END")
		return
	}
	end := min(start+s.opts.ShowChars, len(text))
	s.printer.Plain("%s", string(text[start:end]))
	s.charsShown = end
}

func (s *Session) applyLabel(row dataset.Row, value string) error {
	row[s.opts.LabelColumn] = value
	s.marked.Append(row)
	if err := s.marked.Save(s.opts.MarkedPath); err != nil {
		return fmt.Errorf("persist marked table: %w", err)
	}
	if s.opts.WriteMeta {
		if err := s.writeMeta(); err != nil {
			return err
		}
	}

	index, _ := s.queue.PopFront()
	s.written = append(s.written, index)
	s.history.Push(actionWrite)
	s.charsShown = 0

	s.logger.Debug("row labeled",
		logging.String("id", row[s.opts.IDColumn]),
		logging.String("label", value),
		logging.Int("marked", s.marked.Len()),
		logging.Int("queued", s.queue.Len()))
	return nil
}

func (s *Session) isSkipped(index int) bool {
	for _, skipped := range s.skipped {
		if skipped == index {
			return true
		}
	}
	return false
}

// persistSkips mirrors the in-memory skip set into the cache. Cache failures
// degrade to a warning; labeling continues.
func (s *Session) persistSkips() {
	if s.opts.Cache == nil {
		return
	}
	if err := s.opts.Cache.SetSkipped(s.opts.SessionName, s.skipped); err != nil {
		s.logger.Warn("failed to persist skip cache",
			logging.Error(err),
			logging.String("session", s.opts.SessionName))
	}
}

func (s *Session) finish(message string) {
	s.printer.Blank()
	s.printer.Alert("%s", message)
	s.renderCounts()
	s.logger.Info("labeling session finished",
		logging.String("run_id", s.runID),
		logging.Int("marked", s.marked.Len()),
		logging.Int("skipped", len(s.skipped)),
		logging.Int("queued", s.queue.Len()))
}

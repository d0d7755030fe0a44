// Package dialog runs NPC conversations: paged lines advanced by confirm,
// optionally ending in a quiz.
package dialog

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chosenoffset.com/quizfield/internal/input"
	"chosenoffset.com/quizfield/internal/quiz"
	"chosenoffset.com/quizfield/internal/world"
)

// Entry is one NPC's script.
type Entry struct {
	Key     string
	Speaker string
	Lines   []string
	Quiz    *quiz.Definition
	// Position is the NPC's tile; an entry without one cannot be talked to.
	Position *world.Position
	MapID    string
}

// Session is an open conversation.
type Session struct {
	ID        uuid.UUID
	Entry     Entry
	Lines     []string
	LineIndex int
	Cooldown  int
	// Reveal counts characters shown by the typewriter effect. It only
	// affects drawing.
	Reveal int

	handedOff bool
	outcome   bool
}

// Event reports what Update did.
type Event int

const (
	EventNone Event = iota
	EventAdvanced
	EventQuizStarted
	EventCorrect
	EventWrong
	EventClosed
	EventCancelled
	EventRevealed
)

func (e Event) String() string {
	switch e {
	case EventAdvanced:
		return "advanced"
	case EventQuizStarted:
		return "quiz_started"
	case EventCorrect:
		return "correct"
	case EventWrong:
		return "wrong"
	case EventClosed:
		return "closed"
	case EventCancelled:
		return "cancelled"
	case EventRevealed:
		return "revealed"
	default:
		return "none"
	}
}

// Options tune the engine.
type Options struct {
	// CooldownFrames is how many frames a new session, or a quiz hand-off,
	// ignores input.
	CooldownFrames int
	// RevealSpeed is characters revealed per frame; 0 shows lines at once.
	RevealSpeed int
}

// DefaultOptions returns a 10 frame cooldown and instant text.
func DefaultOptions() Options {
	return Options{CooldownFrames: 10}
}

// Engine owns the NPC scripts and at most one open session.
type Engine struct {
	entries []Entry
	opts    Options
	logger  *zap.Logger

	session *Session
	quiz    *quiz.Session
	cleared map[string]bool
}

// NewEngine validates entries and sorts them by key.
func NewEngine(entries []Entry, opts Options, logger *zap.Logger) (*Engine, error) {
	if opts.CooldownFrames < 0 {
		return nil, fmt.Errorf("cooldown must not be negative, got %d", opts.CooldownFrames)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	for i, e := range sorted {
		if e.Key == "" {
			return nil, fmt.Errorf("dialog entry %d has no key", i)
		}
		if i > 0 && sorted[i-1].Key == e.Key {
			return nil, fmt.Errorf("duplicate dialog key %q", e.Key)
		}
		if e.Quiz != nil {
			if err := e.Quiz.Validate(); err != nil {
				return nil, fmt.Errorf("dialog %q: %w", e.Key, err)
			}
		}
	}
	return &Engine{entries: sorted, opts: opts, logger: logger, cleared: make(map[string]bool)}, nil
}

// Entries returns the scripts in key order.
func (e *Engine) Entries() []Entry { return e.entries }

// NPCsOn returns the placed entries on mapID, in key order.
func (e *Engine) NPCsOn(mapID string) []Entry {
	var out []Entry
	for _, en := range e.entries {
		if en.Position != nil && en.MapID == mapID {
			out = append(out, en)
		}
	}
	return out
}

// Occupied reports whether an NPC stands on p in mapID.
func (e *Engine) Occupied(mapID string, p world.Position) bool {
	for _, en := range e.entries {
		if en.Position != nil && en.MapID == mapID && *en.Position == p {
			return true
		}
	}
	return false
}

// TryTalk opens the first NPC on mapID standing next to pos. It does nothing
// while a session is open.
func (e *Engine) TryTalk(mapID string, pos world.Position) bool {
	if e.Active() {
		return false
	}
	for _, en := range e.entries {
		if en.Position == nil || en.MapID != mapID {
			continue
		}
		if en.Position.Manhattan(pos) == 1 {
			e.Open(en)
			return true
		}
	}
	return false
}

// Open starts a session for entry, replacing any open one.
func (e *Engine) Open(entry Entry) {
	lines := make([]string, len(entry.Lines))
	copy(lines, entry.Lines)
	e.quiz = nil
	e.session = &Session{
		ID:       uuid.New(),
		Entry:    entry,
		Lines:    lines,
		Cooldown: e.opts.CooldownFrames,
	}
	e.logger.Debug("dialog opened",
		zap.String("session", e.session.ID.String()),
		zap.String("npc", entry.Key))
}

// Update applies one frame of input. rewards receives quiz rewards.
func (e *Engine) Update(in input.Frame, rewards quiz.Rewarder) Event {
	s := e.session
	if s == nil {
		return EventNone
	}
	if in.Cancel {
		e.close("cancelled")
		return EventCancelled
	}
	if e.opts.RevealSpeed > 0 {
		s.Reveal += e.opts.RevealSpeed
	}
	if s.Cooldown > 0 {
		s.Cooldown--
		return EventNone
	}

	if e.quiz != nil {
		if !e.quiz.Update(in, rewards) {
			return EventNone
		}
		return e.showOutcome()
	}

	if !in.Confirm {
		return EventNone
	}
	// the first confirm on a half-typed line finishes it
	if e.opts.RevealSpeed > 0 {
		if n := utf8.RuneCountInString(e.CurrentLine()); s.Reveal < n {
			s.Reveal = n
			return EventRevealed
		}
	}
	s.LineIndex++
	if s.LineIndex < len(s.Lines) {
		s.Reveal = 0
		return EventAdvanced
	}
	if s.Entry.Quiz != nil && !s.handedOff && !s.outcome {
		return e.handOff()
	}
	e.close("finished")
	return EventClosed
}

func (e *Engine) handOff() Event {
	s := e.session
	qs, err := quiz.NewSession(*s.Entry.Quiz)
	if err != nil {
		// definitions are validated in NewEngine; only Open with an
		// unchecked entry can get here
		e.logger.Error("invalid quiz", zap.String("npc", s.Entry.Key), zap.Error(err))
		e.close("invalid quiz")
		return EventClosed
	}
	s.handedOff = true
	s.Lines = nil
	s.LineIndex = 0
	s.Reveal = 0
	s.Cooldown = e.opts.CooldownFrames
	e.quiz = qs
	return EventQuizStarted
}

func (e *Engine) showOutcome() Event {
	s := e.session
	correct := e.quiz.Correct()
	s.Lines = e.quiz.Outcome()
	s.LineIndex = 0
	s.Reveal = 0
	s.outcome = true
	e.quiz = nil

	e.logger.Info("quiz answered",
		zap.String("session", s.ID.String()),
		zap.String("npc", s.Entry.Key),
		zap.Bool("correct", correct))
	if correct {
		e.cleared[s.Entry.Key] = true
		return EventCorrect
	}
	return EventWrong
}

func (e *Engine) close(reason string) {
	e.logger.Debug("dialog closed",
		zap.String("session", e.session.ID.String()),
		zap.String("npc", e.session.Entry.Key),
		zap.String("reason", reason))
	e.session = nil
	e.quiz = nil
}

// Active reports whether a session is open.
func (e *Engine) Active() bool { return e.session != nil }

// Session returns the open session, or nil.
func (e *Engine) Session() *Session { return e.session }

// Quiz returns the quiz being answered, or nil.
func (e *Engine) Quiz() *quiz.Session { return e.quiz }

// Speaker returns the name shown above the text.
func (e *Engine) Speaker() string {
	if e.session == nil {
		return ""
	}
	if e.session.Entry.Speaker != "" {
		return e.session.Entry.Speaker
	}
	return e.session.Entry.Key
}

// CurrentLine returns the line being shown. Past the end it keeps showing
// the last line.
func (e *Engine) CurrentLine() string {
	if e.session == nil || len(e.session.Lines) == 0 {
		return ""
	}
	i := e.session.LineIndex
	if last := len(e.session.Lines) - 1; i > last {
		i = last
	}
	return e.session.Lines[i]
}

// VisibleLine returns the part of CurrentLine the typewriter has revealed.
func (e *Engine) VisibleLine() string {
	line := e.CurrentLine()
	if e.opts.RevealSpeed <= 0 || e.session == nil {
		return line
	}
	n := e.session.Reveal
	if n >= utf8.RuneCountInString(line) {
		return line
	}
	return string([]rune(line)[:n])
}

// Cleared reports whether the NPC's quiz has been answered correctly.
func (e *Engine) Cleared(key string) bool { return e.cleared[key] }

// Package quiz runs a single multiple-choice question.
package quiz

import (
	"errors"
	"fmt"

	"chosenoffset.com/quizfield/internal/input"
)

// Definition is a question with its choices, the index of the right one and
// an optional reward token.
type Definition struct {
	Question     string
	Choices      []string
	CorrectIndex int
	Reward       string
}

// Validate checks the definition is answerable.
func (d Definition) Validate() error {
	if len(d.Choices) == 0 {
		return errors.New("quiz has no choices")
	}
	if d.CorrectIndex < 0 || d.CorrectIndex >= len(d.Choices) {
		return fmt.Errorf("quiz answer %d out of range [0,%d)", d.CorrectIndex, len(d.Choices))
	}
	return nil
}

// Rewarder receives reward tokens. Add returns false when the token was
// already held.
type Rewarder interface {
	Add(token string) bool
}

// Session is one attempt at a Definition. It starts selecting and ends
// resolved after a confirm; a resolved session ignores further input.
type Session struct {
	Def      Definition
	Selected int
	// Result is nil while selecting.
	Result *bool
}

// NewSession starts a session with the first choice selected.
func NewSession(def Definition) (*Session, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &Session{Def: def}, nil
}

// Update applies one frame of input. It returns true on the frame the
// session resolves.
func (s *Session) Update(in input.Frame, rewards Rewarder) bool {
	if s.Resolved() {
		return false
	}
	n := len(s.Def.Choices)
	switch {
	case in.UpPressed:
		s.Selected = (s.Selected - 1 + n) % n
	case in.DownPressed:
		s.Selected = (s.Selected + 1) % n
	case in.Confirm:
		s.resolve(rewards)
		return true
	}
	return false
}

func (s *Session) resolve(rewards Rewarder) {
	ok := s.Selected == s.Def.CorrectIndex
	s.Result = &ok
	if ok && s.Def.Reward != "" && rewards != nil {
		rewards.Add(s.Def.Reward)
	}
}

// Resolved reports whether an answer has been committed.
func (s *Session) Resolved() bool { return s.Result != nil }

// Correct reports whether the committed answer was right.
func (s *Session) Correct() bool { return s.Result != nil && *s.Result }

// Outcome returns the two result lines, or nil while selecting.
func (s *Session) Outcome() []string {
	if !s.Resolved() {
		return nil
	}
	if s.Correct() {
		if s.Def.Reward == "" {
			return []string{"Correct!", "No reward."}
		}
		return []string{"Correct!", "Reward: " + s.Def.Reward}
	}
	return []string{"Wrong.", "Answer: " + s.Def.Choices[s.Def.CorrectIndex]}
}

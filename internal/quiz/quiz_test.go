package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"chosenoffset.com/quizfield/internal/input"
)

type ledger map[string]bool

func (l ledger) Add(token string) bool {
	if l[token] {
		return false
	}
	l[token] = true
	return true
}

var twoPlusTwo = Definition{Question: "2+2?", Choices: []string{"3", "4"}, CorrectIndex: 1, Reward: "gem"}

func TestCorrectAnswerGrantsReward(t *testing.T) {
	s, err := NewSession(twoPlusTwo)
	require.NoError(t, err)
	inv := ledger{}

	assert.False(t, s.Update(input.Frame{DownPressed: true}, inv))
	assert.Equal(t, 1, s.Selected)
	assert.True(t, s.Update(input.Frame{Confirm: true}, inv))

	require.NotNil(t, s.Result)
	assert.True(t, *s.Result)
	assert.True(t, inv["gem"])
	assert.Equal(t, []string{"Correct!", "Reward: gem"}, s.Outcome())
}

func TestRewardGrantedOnce(t *testing.T) {
	inv := ledger{}
	for i := 0; i < 2; i++ {
		s, err := NewSession(twoPlusTwo)
		require.NoError(t, err)
		s.Selected = 1
		s.Update(input.Frame{Confirm: true}, inv)
		assert.True(t, s.Correct())
	}
	assert.Len(t, inv, 1)
}

func TestWrongAnswer(t *testing.T) {
	s, err := NewSession(twoPlusTwo)
	require.NoError(t, err)
	inv := ledger{}
	s.Update(input.Frame{Confirm: true}, inv)
	assert.False(t, s.Correct())
	assert.Empty(t, inv)
	assert.Equal(t, []string{"Wrong.", "Answer: 4"}, s.Outcome())
}

func TestCorrectWithoutReward(t *testing.T) {
	s, err := NewSession(Definition{Question: "?", Choices: []string{"yes"}})
	require.NoError(t, err)
	s.Update(input.Frame{Confirm: true}, ledger{})
	assert.Equal(t, []string{"Correct!", "No reward."}, s.Outcome())
}

func TestResolvedIgnoresInput(t *testing.T) {
	s, err := NewSession(twoPlusTwo)
	require.NoError(t, err)
	s.Update(input.Frame{Confirm: true}, nil)
	assert.False(t, s.Update(input.Frame{DownPressed: true}, nil))
	assert.False(t, s.Update(input.Frame{Confirm: true}, nil))
	assert.Equal(t, 0, s.Selected)
	assert.False(t, s.Correct())
}

func TestSelectingHasNoOutcome(t *testing.T) {
	s, err := NewSession(twoPlusTwo)
	require.NoError(t, err)
	assert.Nil(t, s.Outcome())
	assert.False(t, s.Resolved())
}

func TestNewSessionValidates(t *testing.T) {
	_, err := NewSession(Definition{Question: "?"})
	assert.Error(t, err)
	_, err = NewSession(Definition{Choices: []string{"a"}, CorrectIndex: 1})
	assert.Error(t, err)
	_, err = NewSession(Definition{Choices: []string{"a"}, CorrectIndex: -1})
	assert.Error(t, err)
}

func TestPropertySelectionWraps(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		choices := make([]string, n)
		for i := range choices {
			choices[i] = string(rune('a' + i))
		}
		s, err := NewSession(Definition{Choices: choices})
		if err != nil {
			t.Fatal(err)
		}
		want := 0
		moves := rapid.SliceOfN(rapid.Bool(), 0, 40).Draw(t, "moves")
		for _, down := range moves {
			if down {
				s.Update(input.Frame{DownPressed: true}, nil)
				want = (want + 1) % n
			} else {
				s.Update(input.Frame{UpPressed: true}, nil)
				want = (want - 1 + n) % n
			}
			assert.Equal(t, want, s.Selected)
			assert.GreaterOrEqual(t, s.Selected, 0)
			assert.Less(t, s.Selected, n)
		}
	})
}

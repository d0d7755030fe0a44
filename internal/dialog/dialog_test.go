package dialog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chosenoffset.com/quizfield/internal/input"
	"chosenoffset.com/quizfield/internal/inventory"
	"chosenoffset.com/quizfield/internal/quiz"
	"chosenoffset.com/quizfield/internal/world"
)

var confirm = input.Frame{Confirm: true}

func pos(x, y int) *world.Position { return &world.Position{X: x, Y: y} }

func newEngine(t *testing.T, opts Options, entries ...Entry) *Engine {
	t.Helper()
	e, err := NewEngine(entries, opts, zap.NewNop())
	require.NoError(t, err)
	return e
}

// idle runs n frames without input.
func idle(e *Engine, n int) {
	for i := 0; i < n; i++ {
		e.Update(input.Frame{}, nil)
	}
}

func TestGreetingScenario(t *testing.T) {
	e := newEngine(t, DefaultOptions(), Entry{Key: "npc", Lines: []string{"Hi"}, Position: pos(8, 9), MapID: "world"})

	require.True(t, e.TryTalk("world", world.Position{X: 8, Y: 8}))
	assert.True(t, e.Active())
	assert.Equal(t, "Hi", e.CurrentLine())

	idle(e, 10)
	assert.Equal(t, EventClosed, e.Update(confirm, nil))
	assert.False(t, e.Active())
}

func TestCooldownSwallowsConfirm(t *testing.T) {
	e := newEngine(t, DefaultOptions(), Entry{Key: "npc", Lines: []string{"a", "b"}, Position: pos(1, 0)})
	require.True(t, e.TryTalk("", world.Position{}))

	for i := 0; i < 10; i++ {
		assert.Equal(t, EventNone, e.Update(confirm, nil))
	}
	assert.Equal(t, "a", e.CurrentLine())
	assert.Equal(t, EventAdvanced, e.Update(confirm, nil))
	assert.Equal(t, "b", e.CurrentLine())
}

func TestCancelDuringCooldown(t *testing.T) {
	e := newEngine(t, DefaultOptions(), Entry{Key: "npc", Lines: []string{"a"}, Position: pos(1, 0)})
	require.True(t, e.TryTalk("", world.Position{}))
	assert.Equal(t, EventCancelled, e.Update(input.Frame{Cancel: true}, nil))
	assert.False(t, e.Active())
}

func TestAdjacencyIsManhattanOne(t *testing.T) {
	e := newEngine(t, DefaultOptions(), Entry{Key: "npc", Lines: []string{"a"}, Position: pos(5, 5), MapID: "m"})
	assert.False(t, e.TryTalk("m", world.Position{X: 6, Y: 6}), "diagonal")
	assert.False(t, e.TryTalk("m", world.Position{X: 5, Y: 7}), "two away")
	assert.False(t, e.TryTalk("other", world.Position{X: 5, Y: 6}), "other map")
	assert.True(t, e.TryTalk("m", world.Position{X: 4, Y: 5}))
}

func TestTryTalkPicksFirstKey(t *testing.T) {
	e := newEngine(t, DefaultOptions(),
		Entry{Key: "b", Lines: []string{"from b"}, Position: pos(1, 0)},
		Entry{Key: "a", Lines: []string{"from a"}, Position: pos(0, 1)},
	)
	require.True(t, e.TryTalk("", world.Position{}))
	assert.Equal(t, "from a", e.CurrentLine())
	assert.False(t, e.TryTalk("", world.Position{}), "already talking")
}

func TestUnplacedEntryCannotBeTalkedTo(t *testing.T) {
	e := newEngine(t, DefaultOptions(), Entry{Key: "ghost", Lines: []string{"boo"}})
	assert.False(t, e.TryTalk("", world.Position{}))
	assert.False(t, e.Occupied("", world.Position{}))
}

func gemEntry() Entry {
	return Entry{
		Key:      "sage",
		Speaker:  "Sage",
		Lines:    []string{"Answer me this."},
		Position: pos(8, 9),
		MapID:    "world",
		Quiz:     &quiz.Definition{Question: "2+2?", Choices: []string{"3", "4"}, CorrectIndex: 1, Reward: "gem"},
	}
}

func TestQuizHandOffHappensOnce(t *testing.T) {
	e := newEngine(t, Options{}, gemEntry())
	inv := inventory.New()
	require.True(t, e.TryTalk("world", world.Position{X: 8, Y: 8}))

	assert.Equal(t, EventQuizStarted, e.Update(confirm, inv))
	require.NotNil(t, e.Quiz())
	first := e.Quiz()
	assert.Equal(t, "", e.CurrentLine(), "lines are cleared for the quiz")

	e.Update(input.Frame{DownPressed: true}, inv)
	assert.Same(t, first, e.Quiz())
	assert.Equal(t, 1, e.Quiz().Selected)
}

func TestQuizCorrectScenario(t *testing.T) {
	e := newEngine(t, DefaultOptions(), gemEntry())
	inv := inventory.New()
	require.True(t, e.TryTalk("world", world.Position{X: 8, Y: 8}))
	assert.Equal(t, "Sage", e.Speaker())

	idle(e, 10)
	require.Equal(t, EventQuizStarted, e.Update(confirm, inv))
	// the hand-off re-arms the cooldown
	for i := 0; i < 10; i++ {
		e.Update(confirm, inv)
	}
	require.NotNil(t, e.Quiz())
	assert.False(t, e.Quiz().Resolved())

	e.Update(input.Frame{DownPressed: true}, inv)
	assert.Equal(t, EventCorrect, e.Update(confirm, inv))
	assert.Nil(t, e.Quiz())
	assert.True(t, inv.Has("gem"))
	assert.True(t, e.Cleared("sage"))
	assert.Equal(t, "Correct!", e.CurrentLine())

	assert.Equal(t, EventAdvanced, e.Update(confirm, inv))
	assert.Equal(t, "Reward: gem", e.CurrentLine())
	assert.Equal(t, EventClosed, e.Update(confirm, inv))
	assert.False(t, e.Active())
}

func TestRepeatQuizGrantsRewardOnce(t *testing.T) {
	e := newEngine(t, Options{}, gemEntry())
	inv := inventory.New()
	for round := 0; round < 2; round++ {
		require.True(t, e.TryTalk("world", world.Position{X: 8, Y: 8}))
		e.Update(confirm, inv)
		e.Update(input.Frame{DownPressed: true}, inv)
		e.Update(confirm, inv)
		for e.Active() {
			e.Update(confirm, inv)
		}
	}
	assert.Equal(t, []string{"gem"}, inv.Items())
}

func TestWrongAnswerShowsCorrectChoice(t *testing.T) {
	e := newEngine(t, Options{}, gemEntry())
	inv := inventory.New()
	require.True(t, e.TryTalk("world", world.Position{X: 8, Y: 8}))
	e.Update(confirm, inv)
	assert.Equal(t, EventWrong, e.Update(confirm, inv))
	assert.Equal(t, "Wrong.", e.CurrentLine())
	e.Update(confirm, inv)
	assert.Equal(t, "Answer: 4", e.CurrentLine())
	assert.False(t, e.Cleared("sage"))
	assert.Zero(t, inv.Len())
}

func TestCancelDuringQuiz(t *testing.T) {
	e := newEngine(t, Options{}, gemEntry())
	require.True(t, e.TryTalk("world", world.Position{X: 8, Y: 8}))
	e.Update(confirm, nil)
	require.NotNil(t, e.Quiz())
	assert.Equal(t, EventCancelled, e.Update(input.Frame{Cancel: true}, nil))
	assert.False(t, e.Active())
	assert.Nil(t, e.Quiz())
}

func TestCurrentLineClampsToLast(t *testing.T) {
	e := newEngine(t, Options{}, Entry{Key: "n", Lines: []string{"a", "b"}})
	e.Open(e.Entries()[0])
	e.Session().LineIndex = 5
	assert.Equal(t, "b", e.CurrentLine())
}

func TestTypewriterReveal(t *testing.T) {
	e := newEngine(t, Options{RevealSpeed: 2}, Entry{Key: "n", Lines: []string{"héllo", "x"}})
	e.Open(e.Entries()[0])
	assert.Equal(t, "", e.VisibleLine())
	e.Update(input.Frame{}, nil)
	assert.Equal(t, "hé", e.VisibleLine())
	e.Update(input.Frame{}, nil)
	e.Update(input.Frame{}, nil)
	assert.Equal(t, "héllo", e.VisibleLine())
}

func TestConfirmFinishesRevealFirst(t *testing.T) {
	e := newEngine(t, Options{RevealSpeed: 1}, Entry{Key: "n", Lines: []string{"long line", "next"}})
	e.Open(e.Entries()[0])

	assert.Equal(t, EventRevealed, e.Update(confirm, nil))
	assert.Equal(t, "long line", e.VisibleLine())
	assert.Equal(t, EventAdvanced, e.Update(confirm, nil))
	assert.Equal(t, "next", e.CurrentLine())
	assert.Equal(t, "", e.VisibleLine())

	// a fully typed line advances on the first confirm
	e.Update(input.Frame{}, nil)
	e.Update(input.Frame{}, nil)
	e.Update(input.Frame{}, nil)
	assert.Equal(t, EventClosed, e.Update(confirm, nil))
}

func TestSpeakerDefaultsToKey(t *testing.T) {
	e := newEngine(t, Options{}, Entry{Key: "guard", Lines: []string{"halt"}})
	e.Open(e.Entries()[0])
	assert.Equal(t, "guard", e.Speaker())
}

func TestNewEngineValidates(t *testing.T) {
	_, err := NewEngine([]Entry{{Key: "a"}, {Key: "a"}}, Options{}, nil)
	assert.Error(t, err)
	_, err = NewEngine([]Entry{{Key: "q", Quiz: &quiz.Definition{}}}, Options{}, nil)
	assert.Error(t, err)
	_, err = NewEngine(nil, Options{CooldownFrames: -1}, nil)
	assert.Error(t, err)
}

func TestOccupiedAndNPCsOn(t *testing.T) {
	e := newEngine(t, Options{},
		Entry{Key: "a", Lines: []string{"x"}, Position: pos(1, 1), MapID: "m"},
		Entry{Key: "b", Lines: []string{"x"}, Position: pos(2, 2), MapID: "n"},
	)
	assert.True(t, e.Occupied("m", world.Position{X: 1, Y: 1}))
	assert.False(t, e.Occupied("n", world.Position{X: 1, Y: 1}))
	require.Len(t, e.NPCsOn("n"), 1)
	assert.Equal(t, "b", e.NPCsOn("n")[0].Key)
}

const dialoguesJSON = `{
  "sage": {
    "position": [8, 9],
    "lines": ["Café?"],
    "quiz": {"question": "2+2?", "choices": ["3", "4"], "answer": 1, "reward": "gem"}
  },
  "miner": {"position": [2, 2], "map_id": "cave", "speaker": "Old Miner", "lines": ["Dig."]}
}`

func TestLoadFromBytes(t *testing.T) {
	entries, err := LoadFromBytes([]byte(dialoguesJSON), "world")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	miner, sage := entries[0], entries[1]
	assert.Equal(t, "cave", miner.MapID)
	assert.Equal(t, "Old Miner", miner.Speaker)
	assert.Equal(t, "world", sage.MapID)
	assert.Equal(t, &world.Position{X: 8, Y: 9}, sage.Position)
	require.NotNil(t, sage.Quiz)
	assert.Equal(t, 1, sage.Quiz.CorrectIndex)
	assert.Equal(t, "Café?", sage.Lines[0], "normalised to NFC")
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dialogues.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
npc:
  position: [8, 9]
  lines: ["Hi"]
`), 0o644))
	entries, err := Load(path, "world")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "world", entries[0].MapID)
	assert.Equal(t, []string{"Hi"}, entries[0].Lines)
}

func TestLoadRejectsBadEntries(t *testing.T) {
	cases := map[string]string{
		"bad position": `{"a": {"position": [1], "lines": ["x"]}}`,
		"no choices":   `{"a": {"lines": ["x"], "quiz": {"question": "?", "choices": []}}}`,
		"answer range": `{"a": {"lines": ["x"], "quiz": {"question": "?", "choices": ["y"], "answer": 3}}}`,
		"empty":        `{"a": {}}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(data), "world")
			assert.Error(t, err)
		})
	}
}

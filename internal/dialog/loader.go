package dialog

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"

	"chosenoffset.com/quizfield/internal/quiz"
	"chosenoffset.com/quizfield/internal/world"
)

// fileEntry is the on-disk representation of one NPC.
type fileEntry struct {
	Position []int    `json:"position" yaml:"position"`
	MapID    string   `json:"map_id" yaml:"map_id"`
	Speaker  string   `json:"speaker" yaml:"speaker"`
	Lines    []string `json:"lines" yaml:"lines"`
	Quiz     *struct {
		Question string   `json:"question" yaml:"question"`
		Choices  []string `json:"choices" yaml:"choices"`
		Answer   int      `json:"answer" yaml:"answer"`
		Reward   string   `json:"reward" yaml:"reward"`
	} `json:"quiz" yaml:"quiz"`
}

// Load reads NPC scripts from a JSON or YAML file. Entries without a map_id
// are placed on defaultMap.
func Load(path, defaultMap string) ([]Entry, error) {
	var file map[string]fileEntry
	if err := world.DecodeFile(path, &file); err != nil {
		return nil, err
	}
	entries, err := convertEntries(file, defaultMap)
	if err != nil {
		return nil, fmt.Errorf("invalid dialog data in %s: %w", path, err)
	}
	return entries, nil
}

// LoadFromBytes parses JSON NPC scripts.
func LoadFromBytes(data []byte, defaultMap string) ([]Entry, error) {
	var file map[string]fileEntry
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing dialog JSON: %w", err)
	}
	return convertEntries(file, defaultMap)
}

func convertEntries(file map[string]fileEntry, defaultMap string) ([]Entry, error) {
	keys := make([]string, 0, len(file))
	for k := range file {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		e, err := convertEntry(k, file[k], defaultMap)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, e)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return entries, nil
}

func convertEntry(key string, fe fileEntry, defaultMap string) (Entry, error) {
	e := Entry{
		Key:     nfc(key),
		Speaker: nfc(fe.Speaker),
		MapID:   fe.MapID,
		Lines:   make([]string, len(fe.Lines)),
	}
	if e.Key == "" {
		return Entry{}, errors.New("dialog entry with empty key")
	}
	if e.MapID == "" {
		e.MapID = defaultMap
	}
	for i, l := range fe.Lines {
		e.Lines[i] = nfc(l)
	}

	if fe.Position != nil {
		if len(fe.Position) != 2 {
			return Entry{}, fmt.Errorf("dialog %q: position: want [x, y], got %v", key, fe.Position)
		}
		e.Position = &world.Position{X: fe.Position[0], Y: fe.Position[1]}
	}

	if fe.Quiz != nil {
		def := &quiz.Definition{
			Question:     nfc(fe.Quiz.Question),
			Choices:      make([]string, len(fe.Quiz.Choices)),
			CorrectIndex: fe.Quiz.Answer,
			Reward:       nfc(fe.Quiz.Reward),
		}
		for i, c := range fe.Quiz.Choices {
			def.Choices[i] = nfc(c)
		}
		if err := def.Validate(); err != nil {
			return Entry{}, fmt.Errorf("dialog %q: %w", key, err)
		}
		e.Quiz = def
	}

	if len(e.Lines) == 0 && e.Quiz == nil {
		return Entry{}, fmt.Errorf("dialog %q: no lines and no quiz", key)
	}
	return e, nil
}

func nfc(s string) string {
	return norm.NFC.String(s)
}

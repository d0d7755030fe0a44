// Package audio plays sound effects and looping background music.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"go.uber.org/zap"

	"chosenoffset.com/quizfield/internal/config"
)

// Sound effect names the game plays.
const (
	SoundInventoryOpen  = "inventory_open"
	SoundInventoryClose = "inventory_close"
	SoundCorrect        = "correct"
	SoundWrong          = "wrong"
	SoundSave           = "save"
)

// Service plays named sounds. Names are resolved against the sound directory
// with one of the supported extensions.
type Service interface {
	Play(name string)
	PlayMusic(name string)
	StopMusic()
}

// Silent is a Service that plays nothing.
type Silent struct{}

func (Silent) Play(string)      {}
func (Silent) PlayMusic(string) {}
func (Silent) StopMusic()       {}

// ErrNotFound is returned when no file exists for a sound name.
var ErrNotFound = errors.New("audio: sound not found")

var extensions = []string{".wav", ".ogg", ".mp3"}

// Resolve finds the file for name in dir, trying each supported extension.
// A name that already carries an extension is used as is.
func Resolve(dir, name string) (string, error) {
	if ext := filepath.Ext(name); ext != "" {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return p, nil
	}
	for _, ext := range extensions {
		p := filepath.Join(dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

type decodedStream interface {
	io.ReadSeeker
	Length() int64
}

func decode(path string, sampleRate int) (decodedStream, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.DecodeWithSampleRate(sampleRate, r)
	case ".mp3":
		return mp3.DecodeWithSampleRate(sampleRate, r)
	case ".ogg":
		return vorbis.DecodeWithSampleRate(sampleRate, r)
	default:
		return nil, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
}

// EbitenService plays sounds through an ebiten audio context. Sound effects
// are decoded once and cached; failures are logged once per name and then
// ignored.
type EbitenService struct {
	ctx    *audio.Context
	dir    string
	volume float64
	logger *zap.Logger

	effects map[string][]byte
	failed  map[string]bool

	music     *audio.Player
	musicName string
}

// NewEbitenService creates the audio context. Only one may exist per process.
func NewEbitenService(cfg config.AudioConfig, logger *zap.Logger) *EbitenService {
	return &EbitenService{
		ctx:     audio.NewContext(cfg.SampleRate),
		dir:     cfg.Dir,
		volume:  cfg.Volume,
		logger:  logger,
		effects: make(map[string][]byte),
		failed:  make(map[string]bool),
	}
}

// New returns an EbitenService when audio is enabled and Silent otherwise.
func New(cfg config.AudioConfig, logger *zap.Logger) Service {
	if !cfg.Enabled {
		return Silent{}
	}
	return NewEbitenService(cfg, logger)
}

func (s *EbitenService) load(name string) (decodedStream, bool) {
	if s.failed[name] {
		return nil, false
	}
	path, err := Resolve(s.dir, name)
	if err == nil {
		var stream decodedStream
		stream, err = decode(path, s.ctx.SampleRate())
		if err == nil {
			return stream, true
		}
	}
	s.failed[name] = true
	s.logger.Warn("sound unavailable", zap.String("name", name), zap.String("dir", s.dir), zap.Error(err))
	return nil, false
}

// Play starts a sound effect from the beginning.
func (s *EbitenService) Play(name string) {
	pcm, ok := s.effects[name]
	if !ok {
		stream, ok := s.load(name)
		if !ok {
			return
		}
		data, err := io.ReadAll(stream)
		if err != nil {
			s.failed[name] = true
			s.logger.Warn("reading sound", zap.String("name", name), zap.Error(err))
			return
		}
		pcm = data
		s.effects[name] = pcm
	}
	p := s.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(s.volume)
	p.Play()
}

// PlayMusic loops the named track, replacing the current one. Asking for the
// track that is already playing does nothing.
func (s *EbitenService) PlayMusic(name string) {
	if name == "" {
		s.StopMusic()
		return
	}
	if s.music != nil && s.musicName == name {
		return
	}
	stream, ok := s.load(name)
	if !ok {
		s.StopMusic()
		return
	}
	p, err := s.ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		s.logger.Warn("starting music", zap.String("name", name), zap.Error(err))
		return
	}
	s.StopMusic()
	p.SetVolume(s.volume)
	p.Play()
	s.music = p
	s.musicName = name
}

// StopMusic stops the background track if one is playing.
func (s *EbitenService) StopMusic() {
	if s.music == nil {
		return
	}
	s.music.Pause()
	if err := s.music.Close(); err != nil {
		s.logger.Debug("closing music player", zap.Error(err))
	}
	s.music = nil
	s.musicName = ""
}

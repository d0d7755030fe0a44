package game

// Scene is what the manager is showing.
type Scene int

const (
	SceneTitle Scene = iota
	ScenePlaying
)

func (s Scene) String() string {
	if s == ScenePlaying {
		return "playing"
	}
	return "title"
}

// Camera tracks the viewport position for scrolling large maps.
type Camera struct {
	X, Y float64 // Camera position (top-left corner of viewport in world coords)
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

package tui

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResults
	SceneInfo
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// QuitMsg signals the application should exit
type QuitMsg struct{}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Form"
	case SceneResults:
		return "Results"
	case SceneInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

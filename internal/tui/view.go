package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fmgo/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(m.renderLoading())
	}

	if m.err != nil {
		return m.renderApp(m.renderError())
	}

	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.formModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneInfo:
		content = m.infoModel.View()
	default:
		content = "Unknown scene"
	}

	return AppStyle.Render(m.renderApp(content))
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - chromeHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	container := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		container,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and the scene name
func (m Model) renderTitleBar() string {
	labels := output.LabelsFor(m.locale)

	scene := labels.ModeLabel(m.formModel.Mode())
	switch m.currentScene {
	case SceneResults:
		scene = labels.YearlyDetail
		if r := m.resultsModel.Result(); r != nil {
			scene = labels.OutcomeLabel(r.Outcome)
		}
	case SceneInfo:
		scene = labels.Info
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Render(labels.Title),
		SubtitleStyle.Render(scene),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	labels := output.LabelsFor(m.locale)
	status := m.help.View(m.keys) + "  " + StatusKeyStyle.Render("→ "+labels.Language)
	return StatusBarStyle.Width(m.width).Render(status)
}

// renderLoading renders the loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return BorderStyle.Render(fmt.Sprintf("⠋ %s", message))
}

// renderError renders an error message
func (m Model) renderError() string {
	return ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)
}

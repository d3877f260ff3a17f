package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/tui/tuimsg"
)

// chromeHeight is the title bar, status bar and padding around a scene
const chromeHeight = 4

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.formModel.SetSize(msg.Width, msg.Height-chromeHeight)
		m.resultsModel.SetSize(msg.Width, msg.Height-chromeHeight)
		m.infoModel.SetSize(msg.Width, msg.Height-chromeHeight)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.CalculateRequestedMsg:
		m.loading = true
		m.loadingMessage = "Calculating..."
		return m, calculateCmd(m.calcEngine, msg.Request)

	case tuimsg.CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.resultsModel.SetResult(msg.Result, m.locale)
		m.previousScene = m.currentScene
		m.currentScene = SceneResults
		return m, nil

	case tuimsg.FormClearedMsg:
		m.resultsModel.Clear()
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Language):
		return m.toggleLocale()

	case key.Matches(msg, m.keys.Info):
		if m.currentScene != SceneInfo {
			return m, navigate(SceneInfo)
		}
		return m, navigate(m.previousScene)

	case key.Matches(msg, m.keys.Back):
		if m.currentScene != SceneForm {
			return m, navigate(SceneForm)
		}
		return m, nil
	}

	if m.currentScene != SceneForm {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			return m, navigate(SceneInfo)
		case "r":
			if m.resultsModel.Result() != nil {
				return m, navigate(SceneResults)
			}
		}
	}

	return m.updateCurrentScene(msg)
}

// toggleLocale switches between English and Portuguese and recomputes the
// shown projection so its summary message follows.
func (m Model) toggleLocale() (tea.Model, tea.Cmd) {
	if m.locale == domain.LocalePortuguese {
		m.locale = domain.LocaleEnglish
	} else {
		m.locale = domain.LocalePortuguese
	}
	m.calcEngine.Config.Locale = m.locale
	m.formModel.SetLocale(m.locale)
	m.infoModel.SetLocale(m.locale)

	if result := m.resultsModel.Result(); result != nil {
		return m, calculateCmd(m.calcEngine, result.Request)
	}
	return m, nil
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneForm:
		m.formModel, cmd = m.formModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneInfo:
		m.infoModel, cmd = m.infoModel.Update(msg)
	}
	return m, cmd
}

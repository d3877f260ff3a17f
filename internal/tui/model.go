package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/tui/scenes"
	"github.com/rgehrsitz/fmgo/internal/tui/tuimsg"
)

// Options configures the application model
type Options struct {
	Engine  *calculation.CalculationEngine
	Locale  domain.Locale
	Request *domain.CalculationRequest // pre-fills the form
}

type keyMap struct {
	Quit     key.Binding
	Back     key.Binding
	Info     key.Binding
	Language key.Binding
	Scroll   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Info, k.Language, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Scroll}}
}

var defaultKeys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "form")),
	Info:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
	Language: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "language")),
	Scroll:   key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑↓", "scroll")),
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	locale     domain.Locale
	calcEngine *calculation.CalculationEngine

	formModel    *scenes.FormModel
	resultsModel *scenes.ResultsModel
	infoModel    *scenes.InfoModel

	keys keyMap
	help help.Model

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	engine := opts.Engine
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	locale := opts.Locale
	if locale == "" {
		locale = engine.Config.Locale
	}
	locale = locale.OrDefault()
	engine.Config.Locale = locale

	m := Model{
		currentScene: SceneForm,
		locale:       locale,
		calcEngine:   engine,
		formModel:    scenes.NewFormModel(locale),
		resultsModel: scenes.NewResultsModel(),
		infoModel:    scenes.NewInfoModel(locale),
		keys:         defaultKeys,
		help:         help.New(),
		width:        80,
		height:       24,
	}
	if opts.Request != nil {
		m.formModel.SetRequest(*opts.Request)
	}
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene { return m.currentScene }

// Locale returns the active locale
func (m Model) Locale() domain.Locale { return m.locale }

// Form returns the form scene
func (m Model) Form() *scenes.FormModel { return m.formModel }

// Result returns the projection on screen, if any
func (m Model) Result() *domain.CalculationResult { return m.resultsModel.Result() }

// Err returns the error being displayed
func (m Model) Err() error { return m.err }

// calculateCmd returns a command that runs one projection
func calculateCmd(engine *calculation.CalculationEngine, req domain.CalculationRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.Compute(context.Background(), req)
		return tuimsg.CalculationCompleteMsg{Result: result, Err: err}
	}
}

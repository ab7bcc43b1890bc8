package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tetraplane/ricochet/internal/core"
	"github.com/tetraplane/ricochet/internal/games/shatter"
)

// ShatterMode represents the selected game mode.
type ShatterMode int

const (
	ShatterModeCampaign ShatterMode = iota
	ShatterModeEndless
)

// ShatterSelection holds the user's selection from the Shatter menu.
type ShatterSelection struct {
	Mode   ShatterMode
	Level  int    // 0 = start from beginning, 1-N = specific level
	Preset string // Difficulty preset name; empty keeps the config default
}

// difficultyChoices are the selectable presets, in cycle order.
// The empty name keeps whatever the loaded config says.
var difficultyChoices = []string{"", "easy", "normal", "hard", "fixed"}

// difficultyLabel renders a preset name for display.
func difficultyLabel(preset string) string {
	if preset == "" {
		return "Default"
	}
	return strings.ToUpper(preset[:1]) + preset[1:]
}

// ShatterModeModel lets users choose game mode, starting level, and
// difficulty for Shatter.
type ShatterModeModel struct {
	cursor        int
	levelCursor   int
	presetCursor  int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     ShatterSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewShatterModeModel creates a new Shatter mode selection model.
func NewShatterModeModel(width, height int) ShatterModeModel {
	return ShatterModeModel{
		cursor:    0,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m ShatterModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ShatterModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m ShatterModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m ShatterModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < 3 { // 4 rows: Campaign, Endless, Select Level, Difficulty
			m.cursor++
		}
	case MenuActionLeft:
		if m.cursor == 3 {
			m.presetCursor--
			if m.presetCursor < 0 {
				m.presetCursor = len(difficultyChoices) - 1
			}
		}
	case MenuActionRight:
		if m.cursor == 3 {
			m.presetCursor = (m.presetCursor + 1) % len(difficultyChoices)
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0: // Campaign
			m.choosing = false
			m.selection = ShatterSelection{
				Mode:   ShatterModeCampaign,
				Preset: difficultyChoices[m.presetCursor],
			}
			return m, tea.Quit
		case 1: // Endless
			m.choosing = false
			m.selection = ShatterSelection{
				Mode:   ShatterModeEndless,
				Preset: difficultyChoices[m.presetCursor],
			}
			return m, tea.Quit
		case 2: // Select Level
			m.inLevelSelect = true
			m.levelCursor = 0
		case 3: // Difficulty row: Enter also cycles forward
			m.presetCursor = (m.presetCursor + 1) % len(difficultyChoices)
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m ShatterModeModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	levelCount := shatter.LevelCount()

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < levelCount-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = ShatterSelection{
			Mode:   ShatterModeCampaign,
			Level:  m.levelCursor + 1, // 1-indexed
			Preset: difficultyChoices[m.presetCursor],
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the mode/level selection.
func (m ShatterModeModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m ShatterModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("S H A T T E R", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("Campaign (%d levels)", shatter.LevelCount()),
		"Endless Mode",
		"Select Level...",
		fmt.Sprintf("Difficulty: < %s >", difficultyLabel(difficultyChoices[m.presetCursor])),
	}

	for i, row := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, row), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Left/Right: Difficulty  |  Esc: Back", m.width))

	return b.String()
}

func (m ShatterModeModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i, level := range shatter.BuiltinLevels() {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%2d. %s", cursor, i+1, level.Name)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m ShatterModeModel) Selected() *ShatterSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsChoosing returns true if still in selection mode.
func (m ShatterModeModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m ShatterModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m ShatterModeModel) WantsBack() bool {
	return m.back
}

// RunShatterModeSelector runs the Shatter mode selection and returns the selection.
func RunShatterModeSelector(cfg core.RuntimeConfig) (*ShatterSelection, core.RuntimeConfig, error) {
	model := NewShatterModeModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(ShatterModeModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tetraplane/ricochet/internal/core"
)

// BounceSelection holds the user's selection from the Bounce menu.
type BounceSelection struct {
	Preset string // Difficulty preset name; empty keeps the config default
}

// BounceModeModel lets users pick the difficulty before a Bounce run.
type BounceModeModel struct {
	cursor       int
	presetCursor int
	width        int
	height       int
	keyMapper    *KeyMapper
	selection    BounceSelection
	choosing     bool
	quitting     bool
	back         bool
}

// NewBounceModeModel creates a new Bounce mode selection model.
func NewBounceModeModel(width, height int) BounceModeModel {
	return BounceModeModel{
		cursor:    0,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m BounceModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m BounceModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m BounceModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < 1 { // 2 rows: Start, Difficulty
			m.cursor++
		}
	case MenuActionLeft:
		if m.cursor == 1 {
			m.presetCursor--
			if m.presetCursor < 0 {
				m.presetCursor = len(difficultyChoices) - 1
			}
		}
	case MenuActionRight:
		if m.cursor == 1 {
			m.presetCursor = (m.presetCursor + 1) % len(difficultyChoices)
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0: // Start
			m.choosing = false
			m.selection = BounceSelection{
				Preset: difficultyChoices[m.presetCursor],
			}
			return m, tea.Quit
		case 1: // Difficulty row: Enter cycles forward
			m.presetCursor = (m.presetCursor + 1) % len(difficultyChoices)
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the difficulty selection.
func (m BounceModeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("B O U N C E", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Climb as high as you can:", m.width))
	b.WriteString("\n\n")

	rows := []string{
		"Start Game",
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

// Selected returns the selection, or nil if still choosing.
func (m BounceModeModel) Selected() *BounceSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsChoosing returns true if still in selection mode.
func (m BounceModeModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m BounceModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m BounceModeModel) WantsBack() bool {
	return m.back
}

// RunBounceModeSelector runs the Bounce difficulty selection and returns the selection.
func RunBounceModeSelector(cfg core.RuntimeConfig) (*BounceSelection, core.RuntimeConfig, error) {
	model := NewBounceModeModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(BounceModeModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}

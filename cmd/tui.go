package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/graydelve/graydelve/internal/rules"
	"github.com/graydelve/graydelve/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	partyBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#875FD7")).
			Padding(1, 2)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D75F5F"))

	autocompleteStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F25D94"))
)

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

var baseCommands = []string{
	`create "`, "xp ", "save ", "shock ", "morale ", `cast `, "roll ", "exit", "quit",
}

type replModel struct {
	app          *session.Session
	textInput    textinput.Model
	viewport     viewport.Model
	suggestions  list.Model
	history      []string
	historyIdx   int
	logContent   string
	width        int
	height       int
	worldName    string
	campaignName string
	showList     bool
}

func newREPLModel(app *session.Session, worldName, campaignName string) replModel {
	ti := textinput.New()
	ti.Placeholder = `Enter command (e.g., roll 2d6+1)...`
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	vp := viewport.New(0, 0)
	welcome := "Welcome to the Graydelve table!\nType 'exit' to quit."
	vp.SetContent(welcome)

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	sugList := list.New([]list.Item{}, delegate, 50, 7)
	sugList.SetShowTitle(false)
	sugList.SetShowStatusBar(false)
	sugList.SetFilteringEnabled(false)
	sugList.SetShowHelp(false)

	return replModel{
		app:          app,
		textInput:    ti,
		viewport:     vp,
		suggestions:  sugList,
		history:      []string{},
		historyIdx:   -1,
		logContent:   welcome,
		worldName:    worldName,
		campaignName: campaignName,
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) updateSuggestions() {
	val := m.textInput.Value()
	var items []list.Item

	defer func() {
		m.suggestions.SetItems(items)
		m.showList = len(items) > 0
		if m.showList {
			h := len(items)
			if h > 10 {
				h = 10
			}
			if h < 4 {
				h = 4
			}
			m.suggestions.SetHeight(h)
			m.suggestions.ResetSelected()
		}
	}()

	if val == "" {
		return
	}

	for _, c := range baseCommands {
		if strings.HasPrefix(strings.ToLower(c), strings.ToLower(val)) && len(val) < len(c) {
			items = append(items, suggestion(c))
		}
	}

	// Character id completion after the command word.
	fields := strings.Fields(val)
	if len(fields) >= 1 && strings.HasSuffix(val, fields[len(fields)-1]) && len(fields) >= 2 {
		prefix := strings.ToLower(fields[len(fields)-1])
		base := val[:len(val)-len(prefix)]
		for _, id := range m.app.State().EntityIDs() {
			if strings.HasPrefix(id, prefix) {
				items = append(items, suggestion(base+id+" "))
			}
		}
	}
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		lsCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyUp:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else if len(m.history) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.history) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.history[m.historyIdx])
				m.updateSuggestions()
			}

		case tea.KeyDown:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else if len(m.history) > 0 && m.historyIdx != -1 {
				if m.historyIdx < len(m.history)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.history[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.updateSuggestions()
			}

		case tea.KeyTab:
			if m.showList {
				if i, ok := m.suggestions.SelectedItem().(suggestion); ok {
					m.textInput.SetValue(string(i))
					m.textInput.SetCursor(len(string(i)))
					m.updateSuggestions()
				}
			}

		case tea.KeyEnter:
			val := strings.TrimSpace(m.textInput.Value())
			if val == "exit" || val == "quit" {
				return m, tea.Quit
			}

			if val != "" {
				if len(m.history) == 0 || m.history[len(m.history)-1] != val {
					m.history = append(m.history, val)
				}
				m.historyIdx = -1
				m.textInput.SetValue("")
				m.updateSuggestions()

				m.logContent += fmt.Sprintf("\n\n> %s\n", val)
				res, err := m.app.Execute(context.Background(), val)
				switch {
				case err != nil:
					m.logContent += failStyle.Render(fmt.Sprintf("Error: %v", err))
				case res.Success:
					m.logContent += res.Message
				default:
					m.logContent += failStyle.Render(res.Message)
				}

				m.viewport.SetContent(m.logContent)
				m.viewport.GotoBottom()
			}
		default:
			m.textInput, tiCmd = m.textInput.Update(msg)
			m.updateSuggestions()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.suggestions.SetWidth(msg.Width - 6)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	titleH := lipgloss.Height(titleStyle.Render("Dummy"))
	partyH := lipgloss.Height(m.renderParty())
	inputH := 1

	listAreaHeight := 0
	if m.showList {
		listAreaHeight = m.suggestions.Height() + 2
	}

	infoH := lipgloss.Height(infoStyle.Render("Dummy"))

	overhead := titleH + partyH + inputH + listAreaHeight + infoH + 8
	m.viewport.Height = m.height - overhead
	if m.viewport.Height < 4 {
		m.viewport.Height = 4
	}

	return m, tea.Batch(tiCmd, vpCmd, lsCmd)
}

func (m *replModel) renderParty() string {
	view := "=== Party ===\n\n"

	ids := m.app.State().EntityIDs()
	sort.Strings(ids)

	if len(ids) == 0 {
		view += "No characters yet. Try: create \"Name\" human fighter"
	} else {
		for _, id := range ids {
			c, ok := m.app.State().GetEntity(id).(*rules.Character)
			if !ok {
				continue
			}
			conds := ""
			if len(c.Conditions) > 0 {
				conds = fmt.Sprintf(" [%s]", strings.Join(c.Conditions, ", "))
			}
			view += fmt.Sprintf(" - %s: level %d %s %s, %d/%d HP, %d XP%s\n",
				c.Name, c.Level, c.Race, c.Class, c.HitPoints, c.MaxHitPoints, c.Experience, conds)
		}
	}

	return partyBoxStyle.Width(m.width - 4).Render(view)
}

func (m *replModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf(" Graydelve | %s / %s ", m.worldName, m.campaignName))
	partyBox := m.renderParty()
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	var inputArea string
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", m.textInput.View(), autocompleteStyle.Render(m.suggestions.View()))
	} else {
		inputArea = m.textInput.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		partyBox,
		logBox,
		"\n",
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete, up/down history)"),
	)
}

// RunTUI starts the interactive shell against an open session.
func RunTUI(app *session.Session, worldName, campaignName string) error {
	m := newREPLModel(app, worldName, campaignName)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

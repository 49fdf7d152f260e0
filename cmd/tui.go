package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mikyjpeg/asynchis/internal/session"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	stateBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	autocompleteStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F25D94"))
)

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

// baseCommands seeds autocomplete with every operation plus the shell
// built-ins.
var baseCommands = []string{
	"add_formation space=", "remove_formation space=",
	"add_squadron location=", "remove_squadron location=",
	"set_piracy_token zone=",
	"declare_war target=", "make_peace target=",
	"declare_alliance target=", "remove_alliance target=",
	"excommunicate ruler=", "remove_excommunication ruler=",
	"change_ruler", "add_vp amount=", "grant_bonus_vp key=",
	"set_control space=", "set_religion space=",
	"set_siege space=", "set_jesuit_university space=",
	"capture_leader leader=", "release_leader leader=",
	"bind_controller user=", "unbind_controller",
	"shuffle_deck turn=", "draw_cards", "discard_card card=",
	"play_card card=", "undo", "exit", "quit",
}

type replModel struct {
	sess        *session.Session
	textInput   textinput.Model
	viewport    viewport.Model
	suggestions list.Model
	history     []string
	historyIdx  int
	logContent  string
	width       int
	height      int
	actor       string
	faction     string
	showList    bool
}

func newREPLModel(sess *session.Session, actor, faction string) replModel {
	ti := textinput.New()
	ti.Placeholder = "Enter command (e.g., draw_cards)..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	vp := viewport.New(0, 0)
	welcome := "Welcome to asynchis!\nType 'exit' to quit."
	vp.SetContent(welcome)

	// Configure a minimalist list for autocomplete
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
		sess:        sess,
		textInput:   ti,
		viewport:    vp,
		suggestions: sugList,
		history:     []string{},
		historyIdx:  -1,
		logContent:  welcome,
		actor:       actor,
		faction:     faction,
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
			listHeight := h
			if listHeight > 0 && listHeight < 4 {
				listHeight = 4
			}
			m.suggestions.SetHeight(listHeight)
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

	// Space completion when the cursor sits after "space=".
	if idx := strings.LastIndex(strings.ToLower(val), "space="); idx != -1 {
		prefix := strings.ToLower(val[idx+len("space="):])
		base := val[:idx+len("space=")]
		if ids, err := m.sess.Spaces().List(); err == nil {
			for _, id := range ids {
				if strings.HasPrefix(id, prefix) && prefix != id {
					items = append(items, suggestion(base+id))
				}
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
			} else {
				if len(m.history) > 0 {
					if m.historyIdx == -1 {
						m.historyIdx = len(m.history) - 1
					} else if m.historyIdx > 0 {
						m.historyIdx--
					}
					m.textInput.SetValue(m.history[m.historyIdx])
					m.updateSuggestions()
				}
			}

		case tea.KeyDown:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else {
				if len(m.history) > 0 && m.historyIdx != -1 {
					if m.historyIdx < len(m.history)-1 {
						m.historyIdx++
						m.textInput.SetValue(m.history[m.historyIdx])
					} else {
						m.historyIdx = -1
						m.textInput.SetValue("")
					}
					m.updateSuggestions()
				}
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
				// Prevent duplicate history entries
				if len(m.history) == 0 || m.history[len(m.history)-1] != val {
					m.history = append(m.history, val)
				}
				m.historyIdx = -1
				m.textInput.SetValue("")
				m.updateSuggestions()

				m.logContent += fmt.Sprintf("\n\n> %s\n", val)
				m.logContent += m.runCommand(val)

				m.viewport.SetContent(m.logContent)
				m.viewport.GotoBottom()
			}
		default:
			// Normal typing
			m.textInput, tiCmd = m.textInput.Update(msg)
			m.updateSuggestions()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 30
		if m.viewport.Height < 5 {
			m.viewport.Height = 5
		}
		m.suggestions.SetWidth(msg.Width - 6)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	// Calculate accurate heights for dynamic components
	titleH := lipgloss.Height(titleStyle.Render("Dummy"))
	stateH := lipgloss.Height(m.renderState())
	inputH := 1

	listAreaHeight := 0
	if m.showList {
		listAreaHeight = m.suggestions.Height() + 2
	}

	infoH := lipgloss.Height(infoStyle.Render("Dummy"))
	paddingH := 7

	overhead := titleH + stateH + inputH + listAreaHeight + infoH + paddingH + 4

	m.viewport.Height = m.height - overhead
	if m.viewport.Height < 4 {
		m.viewport.Height = 4
	}

	return m, tea.Batch(tiCmd, vpCmd, lsCmd)
}

// runCommand executes one shell line and returns the printable outcome.
// "undo" and "undo <id>" are shell built-ins; everything else goes through
// the session pipeline.
func (m *replModel) runCommand(val string) string {
	fields := strings.Fields(val)
	if fields[0] == "undo" {
		if len(fields) > 1 {
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				return fmt.Sprintf("Error: invalid entry id %q", fields[1])
			}
			if err := m.sess.Undo(id); err != nil {
				return fmt.Sprintf("Error: %v", err)
			}
			return fmt.Sprintf("Entry %d undone.", id)
		}
		id, err := m.sess.UndoLast()
		if err != nil {
			return fmt.Sprintf("Error: %v", err)
		}
		return fmt.Sprintf("Entry %d undone.", id)
	}

	cmd, err := session.ParseInput(val, m.actor, m.faction)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	res, err := m.sess.Execute(cmd)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return res.Message
}

func (m *replModel) renderState() string {
	stateView := "=== Board State ==="
	stateView += "\n\n"

	if st, err := m.sess.Status(); err == nil {
		stateView += fmt.Sprintf("Turn %d", st.Turn)
		if st.ActiveCard != "" {
			stateView += fmt.Sprintf(" | Impulse: %s (%d CP)", st.ActiveCard, st.AvailableCP)
		}
		stateView += fmt.Sprintf(" | Deck: %d, Discard: %d\n", len(st.Deck), len(st.Discard))
	}
	stateView += "\n"

	names, err := m.sess.Factions().List()
	if err != nil || len(names) == 0 {
		stateView += "No factions."
	} else {
		for _, name := range names {
			f, err := m.sess.Factions().Get(name)
			if err != nil {
				continue
			}
			marker := ""
			if f.Controller != "" {
				marker = fmt.Sprintf(" (%s)", f.Controller)
			}
			stateView += fmt.Sprintf(" - %s%s: %d VP, %d cards\n", f.Name, marker, f.TotalVP(), len(f.Hand))
		}
	}

	return stateBoxStyle.Width(m.width - 4).Render(stateView)
}

func (m *replModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	faction := m.faction
	if faction == "" {
		faction = "observer"
	}
	title := titleStyle.Render(fmt.Sprintf(" asynchis | %s | %s as %s ", m.sess.GameID(), m.actor, faction))
	stateBox := m.renderState()
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	var inputArea string
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", m.textInput.View(), autocompleteStyle.Render(m.suggestions.View()))
	} else {
		inputArea = m.textInput.View()
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		title,
		stateBox,
		logBox,
		"\n",
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete, up/down history)"),
	)

	return mainView + strings.Repeat("\n", 7)
}

func RunTUI(sess *session.Session, actor, faction string) error {
	m := newREPLModel(sess, actor, faction)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

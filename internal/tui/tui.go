package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/game"
	"github.com/lox/bluff/internal/session"
)

// Session is the part of session.Session the terminal drives
type Session interface {
	Snapshot() game.State
	Subscribe(fn func(game.State)) func()
	AddScriptedPlayer() (string, error)
	Start() error
	Play(cards []deck.Card, rank deck.Rank, actorID string) error
	Pass(actorID string) error
	Challenge(challengerID string) error
	Reset() error
}

// snapshotBuffer bounds how far the UI may fall behind the session before
// snapshots are dropped. Dropped snapshots lose nothing but intermediate
// round summaries because the history travels with every snapshot.
const snapshotBuffer = 64

type snapshotMsg game.State

// Model is the Bubble Tea model for a local match. It renders session
// snapshots and turns typed commands into session calls; it holds no rules.
type Model struct {
	session Session
	self    string // local player ID, empty when spectating
	logger  *log.Logger

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	state       game.State
	gameLog     []string
	notice      string
	noticeIsErr bool
	updates     chan game.State
	unsubscribe func()
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool
}

// New creates a model bound to sess. self is the ID of the local human
// player; pass "" to watch scripted players only.
func New(sess Session, self string, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "play 1 3 as Q, pass, challenge, help"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = promptStyle
	ti.TextStyle = inputTextStyle
	ti.Prompt = "> "

	m := &Model{
		session:     sess,
		self:        self,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		state:       sess.Snapshot(),
		updates:     make(chan game.State, snapshotBuffer),
		focusedPane: 1,
	}
	updates, l := m.updates, m.logger
	m.unsubscribe = sess.Subscribe(func(st game.State) {
		select {
		case updates <- st:
		default:
			l.Warn("Dropping snapshot, UI is behind", "version", st.Version)
		}
	})

	m.AddLogEntry(TitleStyle.Render(" Bluff "))
	m.AddLogEntry("Type start to deal, bot to add a computer player, help for everything else.")
	for _, p := range m.state.Players {
		m.AddLogEntry(fmt.Sprintf("%s is seated (%s)", p.Name, p.Kind()))
	}
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForSnapshot())
}

// waitForSnapshot delivers the next session snapshot as a message
func (m *Model) waitForSnapshot() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		return snapshotMsg(<-updates)
	}
}

// Close stops listening to the session
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case snapshotMsg:
		m.applySnapshot(game.State(msg))
		return m, m.waitForSnapshot()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updated dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := strings.TrimSpace(m.actionInput.Value())
				m.actionInput.SetValue("")
				if cmd := m.submit(input); cmd != nil {
					return m, cmd
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// applySnapshot logs what changed and adopts st if it is newer
func (m *Model) applySnapshot(st game.State) {
	if st.Version <= m.state.Version {
		return
	}
	for _, line := range Changes(m.state, st, m.self) {
		m.AddLogEntry(line)
	}
	m.state = st
}

// submit runs a typed command against the session
func (m *Model) submit(input string) tea.Cmd {
	m.notice = ""
	cmd, err := ParseCommand(input)
	if err != nil {
		m.setNotice(err.Error(), true)
		return nil
	}

	switch cmd.Kind {
	case CmdNone:
		return nil
	case CmdQuit:
		m.quitting = true
		return tea.Quit
	case CmdHelp:
		for _, line := range strings.Split(helpText, "\n") {
			m.AddLogEntry(MutedStyle.Render(line))
		}
		return nil
	case CmdStart:
		err = m.session.Start()
	case CmdAddBot:
		_, err = m.session.AddScriptedPlayer()
	case CmdReset:
		err = m.session.Reset()
	case CmdPlay, CmdPass, CmdChallenge:
		err = m.act(cmd)
	}

	if err != nil {
		m.setNotice(m.explain(cmd, err), true)
		m.logger.Debug("Command refused", "input", input, "error", err)
	}
	return nil
}

func (m *Model) act(cmd Command) error {
	if m.self == "" {
		return errSpectating
	}
	switch cmd.Kind {
	case CmdPlay:
		me, _ := m.state.Player(m.self)
		cards, err := cmd.Select(SortHand(me.Hand))
		if err != nil {
			return err
		}
		return m.session.Play(cards, cmd.Rank, m.self)
	case CmdPass:
		return m.session.Pass(m.self)
	default:
		return m.session.Challenge(m.self)
	}
}

var errSpectating = errors.New("you are watching, not playing")

// explain turns a refused command into a hint for the player
func (m *Model) explain(cmd Command, err error) string {
	if !errors.Is(err, session.ErrRejected) {
		return err.Error()
	}
	st := m.state
	switch cmd.Kind {
	case CmdPlay:
		if current, ok := st.CurrentPlayer(); ok && current.ID != m.self {
			return fmt.Sprintf("Wait for your turn, %s is playing", current.Name)
		}
		return "You can't play those cards"
	case CmdPass, CmdChallenge:
		if st.Claim == nil {
			return "There is no claim to respond to"
		}
		if st.Claim.PlayerID == m.self {
			return "That is your own claim"
		}
		return "You already answered this claim"
	default:
		return "Not allowed right now"
	}
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeIsErr = isErr
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := pane(max(m.width-2, 1), max(actionHeight, 1), m.focusedPane == 1).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := pane(sidebarWidth, paneHeight, false).Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := pane(logWidth, paneHeight, m.focusedPane == 0).Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderSidebarPane shows the table: players, pile and pending claim
func (m *Model) renderSidebarPane() string {
	st := m.state
	var content strings.Builder

	switch {
	case !st.Started:
		content.WriteString(PhaseStyle.Render("Lobby"))
	case st.Ended:
		content.WriteString(PhaseStyle.Render("Match over"))
	default:
		content.WriteString(PhaseStyle.Render(fmt.Sprintf("Pile: %d", len(st.Pile))))
		content.WriteString(" | ")
		content.WriteString(MutedStyle.Render(fmt.Sprintf("Discard: %d", len(st.Discard))))
	}
	content.WriteString("\n\n")

	if st.Claim != nil {
		content.WriteString(ClaimStyle.Render(fmt.Sprintf("%s claims %d × %s",
			name(st, st.Claim.PlayerID, m.self), st.Claim.Count, st.Claim.Rank)))
		content.WriteString("\n\n")
	}

	content.WriteString(MutedStyle.Render("Players:"))
	content.WriteString("\n")
	for _, p := range st.Players {
		line := p.Name
		if p.ID == m.self {
			line += " (you)"
		}
		if p.Host {
			line += " *"
		}
		if st.Started {
			line = fmt.Sprintf("%s: %d", line, p.CardCount())
		}
		if p.CurrentTurn && st.InProgress() {
			content.WriteString(TurnStyle.Render("▶ " + line))
		} else {
			content.WriteString("  " + line)
		}
		content.WriteString("\n")
	}
	return content.String()
}

// renderActionPane renders the hand, notices and the input field
func (m *Model) renderActionPane() string {
	var content strings.Builder

	if me, ok := m.state.Player(m.self); ok && m.state.Started {
		content.WriteString(StatusStyle.Render("Hand: "))
		content.WriteString(m.formatHand(SortHand(me.Hand)))
		content.WriteString("\n")
	}

	content.WriteString(m.statusLine())
	content.WriteString("\n")

	if m.notice != "" {
		style := MutedStyle
		if m.noticeIsErr {
			style = NoticeStyle
		}
		content.WriteString(style.Render(m.notice))
		content.WriteString("\n")
	}

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(MutedStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(MutedStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return content.String()
}

// statusLine tells the local player what they can do right now
func (m *Model) statusLine() string {
	st := m.state
	switch {
	case !st.Started:
		return StatusStyle.Render("Waiting to start")
	case st.Ended:
		return StatusStyle.Render(fmt.Sprintf("%s won. Type reset for a new match.", name(st, st.Winner, m.self)))
	}

	current, _ := st.CurrentPlayer()
	var parts []string
	if current.ID == m.self && m.self != "" {
		parts = append(parts, "Your turn to play")
	} else {
		parts = append(parts, fmt.Sprintf("%s to play", current.Name))
	}
	if st.Claim != nil && st.Claim.PlayerID != m.self && m.self != "" {
		parts = append(parts, "pass or challenge the claim")
	}
	return StatusStyle.Render(strings.Join(parts, ", "))
}

// formatHand numbers cards in display order
func (m *Model) formatHand(cards []deck.Card) string {
	if len(cards) == 0 {
		return MutedStyle.Render("(empty)")
	}
	formatted := make([]string, len(cards))
	for i, card := range cards {
		style := BlackSuitStyle
		if card.IsRed() {
			style = RedSuitStyle
		}
		formatted[i] = fmt.Sprintf("%d:%s", i+1, style.Render(card.String()))
	}
	return strings.Join(formatted, " ")
}

// AddLogEntry adds an entry to the game log
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns a copy of the game log
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}

// Notice returns the current notice line, if any
func (m *Model) Notice() string {
	return m.notice
}

// State returns the snapshot the model last rendered
func (m *Model) State() game.State {
	return m.state
}

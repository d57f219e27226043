// Package tui provides the two-screen terminal interface: a login screen
// that optionally remembers the credential, and a home screen that reads it
// back.
package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/benaskins/rememberme/internal/home"
	"github.com/benaskins/rememberme/internal/keychain"
	"github.com/benaskins/rememberme/internal/logbuf"
	"github.com/benaskins/rememberme/internal/login"
)

// Screen identifies which screen is showing.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenHome
)

// Focus targets on the login screen, in tab order.
const (
	focusEmail = iota
	focusPassword
	focusRemember
	focusLogin
	focusCount
)

const logPaneLines = 4

// Deps are the collaborators the model needs.
type Deps struct {
	Store  keychain.Store
	Logger *slog.Logger
	// Logs, when set, is rendered as a pane under the active screen.
	Logs *logbuf.Ring
	// MetadataPath, when set, enables live refresh of the home screen.
	MetadataPath string
}

type (
	metadataChangedMsg struct{}
	logTickMsg         time.Time
)

// Model is the TUI application state.
type Model struct {
	deps Deps

	screen   Screen
	width    int
	height   int
	inputs   []textinput.Model
	focus    int
	remember bool
	alert    *login.AlertError

	session   login.Session
	label     string
	lookupErr error
	// stamp is the metadata version the label was read at.
	stamp string
}

// NewModel creates the model on the login screen with the email field focused.
func NewModel(deps Deps) *Model {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	email := textinput.New()
	email.Placeholder = "Email"
	email.Prompt = ""
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &Model{
		deps:   deps,
		screen: ScreenLogin,
		inputs: []textinput.Model{email, password},
		label:  home.DefaultLabel,
	}
}

// Screen returns the screen currently showing.
func (m *Model) Screen() Screen {
	return m.screen
}

// Label returns the home screen label.
func (m *Model) Label() string {
	return m.label
}

// Alert returns the alert currently raised, if any.
func (m *Model) Alert() *login.AlertError {
	return m.alert
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.deps.Logs != nil {
		cmds = append(cmds, logTick())
	}
	return tea.Batch(cmds...)
}

func logTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return logTickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == ScreenHome {
			return m.handleHomeKey(msg)
		}
		return m.handleLoginKey(msg)

	case metadataChangedMsg:
		if m.screen == ScreenHome && m.metadataStamp() != m.stamp {
			m.deps.Logger.Debug("credential changed on disk, refreshing", "account", m.session.Email)
			m.refresh()
		}
		return m, nil

	case logTickMsg:
		// Redraw only happens on a message; the tick keeps the log pane current.
		if m.deps.Logs == nil {
			return m, nil
		}
		return m, logTick()
	}

	return m, m.updateInputs(msg)
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.alert != nil {
		switch msg.String() {
		case "enter", "esc":
			m.alert = nil
		}
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "enter":
		m.submit()
		return m, nil
	case " ":
		if m.focus == focusRemember {
			m.remember = !m.remember
			return m, nil
		}
	case "q":
		if m.focus >= focusRemember {
			return m, tea.Quit
		}
	}

	return m, m.updateInputs(msg)
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.screen = ScreenLogin
		return m, m.setFocus(m.focus)
	case "r":
		m.refresh()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	if m.screen != ScreenLogin || m.focus >= len(m.inputs) {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *Model) form() login.Form {
	return login.Form{
		Email:      m.inputs[focusEmail].Value(),
		Password:   m.inputs[focusPassword].Value(),
		RememberMe: m.remember,
	}
}

func (m *Model) submit() {
	session, err := login.Submit(m.deps.Store, m.form(), m.deps.Logger)
	if err != nil {
		var alert *login.AlertError
		if errors.As(err, &alert) {
			m.alert = alert
			return
		}
		m.deps.Logger.Error("login failed", "error", err)
		return
	}
	m.session = session
	m.screen = ScreenHome
	m.refresh()
}

func (m *Model) refresh() {
	m.stamp = m.metadataStamp()
	m.label, m.lookupErr = home.Label(m.deps.Store, m.session.Email)
	if m.lookupErr != nil {
		m.deps.Logger.Info("no remembered credential", "account", m.session.Email, "error", m.lookupErr)
	}
}

// metadataStamp identifies the stored version of the session's credential.
// Retrievals do not change it, so reading the credential cannot retrigger a
// refresh.
func (m *Model) metadataStamp() string {
	if m.deps.MetadataPath == "" {
		return ""
	}
	ms, err := keychain.NewMetadataStore(m.deps.MetadataPath)
	if err != nil {
		return ""
	}
	meta := ms.Get(m.session.Email)
	if meta == nil {
		return "absent"
	}
	return meta.CreatedAt.String() + "/" + meta.UpdatedAt.String()
}

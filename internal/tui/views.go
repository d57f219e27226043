package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(10)

	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	blurredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 3).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	activeButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("205")).
				Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 3)

	alertTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	logPaneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")).
			MarginTop(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)
)

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.screen {
	case ScreenHome:
		body = m.homeView()
	default:
		body = m.loginView()
	}
	if m.alert != nil {
		body = m.alertView()
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString(m.logView())
	return b.String()
}

func (m *Model) loginView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in"))
	b.WriteString("\n")

	for i, label := range []string{"Email", "Password"} {
		style := blurredStyle
		if m.focus == i {
			style = focusedStyle
		}
		b.WriteString(fieldLabelStyle.Render(label))
		b.WriteString(style.Render(m.inputs[i].View()))
		b.WriteString("\n")
	}

	toggle := "[ ]"
	if m.remember {
		toggle = "[x]"
	}
	toggleStyle := blurredStyle
	if m.focus == focusRemember {
		toggleStyle = focusedStyle
	}
	b.WriteString("\n")
	b.WriteString(toggleStyle.Render(toggle + " Remember me"))
	b.WriteString("\n\n")

	button := buttonStyle
	if m.focus == focusLogin {
		button = activeButtonStyle
	}
	b.WriteString(button.Render("Login"))

	box := boxStyle.Render(b.String())
	footer := footerStyle.Render("tab: next field • space: toggle • enter: login • ctrl+c: quit")
	return box + "\n" + footer
}

func (m *Model) homeView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Home"))
	b.WriteString("\n")

	if m.lookupErr != nil {
		b.WriteString(mutedStyle.Render(m.label))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("No remembered credential for %s", m.session.Email)))
	} else {
		b.WriteString(labelStyle.Render(m.label))
	}

	if m.session.StoreErr != nil {
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("Not remembered: " + m.session.StoreErr.Error()))
	}

	box := boxStyle.Render(b.String())
	footer := footerStyle.Render("esc: back • r: refresh • q: quit")
	return box + "\n" + footer
}

func (m *Model) alertView() string {
	content := alertTitleStyle.Render(m.alert.Title) + "\n\n" + m.alert.Message + "\n\n" +
		activeButtonStyle.Render("Ok")
	return alertStyle.Render(content)
}

func (m *Model) logView() string {
	if m.deps.Logs == nil {
		return ""
	}
	lines := m.deps.Logs.Last(logPaneLines)
	if len(lines) == 0 {
		return ""
	}
	style := logPaneStyle
	if m.width > 0 {
		style = style.MaxWidth(m.width)
	}
	return "\n" + style.Render(strings.Join(lines, "\n"))
}

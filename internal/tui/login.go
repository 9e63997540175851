package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/niyontwali/personal-job-at/internal/auth"
)

type loginField int

const (
	fieldEmail loginField = iota
	fieldPassword
	numLoginFields
)

type loginModel struct {
	auth           *auth.Service
	fields         [numLoginFields]string
	focus          loginField
	authenticating bool
	statusMsg      string
	width          int
	height         int
}

func newLoginModel(svc *auth.Service) loginModel {
	return loginModel{auth: svc}
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loggedInMsg:
		m.authenticating = false
		if msg.err == nil {
			m.fields = [numLoginFields]string{}
			m.focus = fieldEmail
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m loginModel) handleKey(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	if m.authenticating {
		return m, nil
	}
	m.statusMsg = ""

	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numLoginFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numLoginFields) % numLoginFields
	case "enter":
		if m.focus == fieldEmail {
			m.focus = fieldPassword
			return m, nil
		}
		return m.submit()
	default:
		f := &m.fields[m.focus]
		*f = editRune(*f, msg.String())
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.fields[fieldEmail])
	password := m.fields[fieldPassword]
	if email == "" || password == "" {
		m.statusMsg = "email and password are required"
		return m, nil
	}

	m.authenticating = true
	svc := m.auth
	return m, func() tea.Msg {
		state, err := svc.Login(context.Background(), email, password)
		return loggedInMsg{state: state, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + selectedStyle.Render("Sign in") + "\n")
	b.WriteString(" " + dimStyle.Render("track every application in one place") + "\n\n")

	labels := [numLoginFields]string{"email", "password"}
	for i := loginField(0); i < numLoginFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = accentStyle.Render(">")
			style = selectedStyle
		}
		value := m.fields[i]
		if i == fieldPassword {
			value = strings.Repeat("*", len([]rune(value)))
		}
		if i == m.focus && !m.authenticating {
			value += accentStyle.Render("_")
		}
		if value == "" && i != m.focus {
			value = inputPlaceholderStyle.Render("...")
		}
		b.WriteString(" " + cursor + " " + style.Render(labels[i]+":") + " " + value + "\n")
	}

	b.WriteString("\n")
	if m.authenticating {
		b.WriteString(" " + dimStyle.Render("signing in...") + "\n")
	} else if m.statusMsg != "" {
		b.WriteString(" " + warnStyle.Render(m.statusMsg) + "\n")
	}

	return b.String()
}

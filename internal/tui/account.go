package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/niyontwali/personal-job-at/internal/auth"
	"github.com/niyontwali/personal-job-at/pkg/appwrite"
	"github.com/niyontwali/personal-job-at/pkg/domain"
)

// accountState is the state machine for account interactions.
type accountState int

const (
	acNormal accountState = iota
	acEditName
	acEditPassword // new + current password fields
	acLogout       // logout confirmation
)

// -- messages --

type sessionsLoadedMsg struct {
	sessions []domain.Session
	err      error
}

type nameUpdatedMsg struct {
	user *domain.User
	err  error
}

type passwordUpdatedMsg struct{ err error }

// -- model --

type accountModel struct {
	auth     *auth.Service
	client   *appwrite.Client
	user     *domain.User
	sessions []domain.Session

	state      accountState
	inputs     [2]string // name, or new/current password
	focus      int
	submitting bool
	statusMsg  string
	isErr      bool
	width      int
	height     int
}

func newAccountModel(svc *auth.Service, c *appwrite.Client) accountModel {
	m := accountModel{auth: svc, client: c}
	if st := svc.State(); st.User != nil {
		m.user = st.User
	}
	return m
}

func (m accountModel) Init() tea.Cmd {
	return m.loadSessions()
}

func (m accountModel) loadSessions() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		sessions, err := c.ListSessions(context.Background())
		return sessionsLoadedMsg{sessions: sessions, err: err}
	}
}

func (m accountModel) Update(msg tea.Msg) (accountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case sessionsLoadedMsg:
		if msg.err == nil {
			m.sessions = msg.sessions
		}

	case nameUpdatedMsg:
		m.submitting = false
		m.state = acNormal
		if msg.err != nil {
			m.statusMsg = "Failed to update name: " + humanError(msg.err)
			m.isErr = true
		} else {
			m.user = msg.user
			m.statusMsg = "Name updated."
			m.isErr = false
		}

	case passwordUpdatedMsg:
		m.submitting = false
		if msg.err != nil {
			if appwrite.IsStatus(msg.err, 401) {
				m.statusMsg = "Current password is incorrect."
			} else {
				m.statusMsg = "Failed to update password: " + humanError(msg.err)
			}
			m.isErr = true
		} else {
			m.state = acNormal
			m.statusMsg = "Password updated."
			m.isErr = false
		}
		m.inputs = [2]string{}
		m.focus = 0

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m accountModel) handleKey(msg tea.KeyMsg) (accountModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.statusMsg = ""

	switch m.state {
	case acEditName:
		return m.handleKeyEditName(msg)
	case acEditPassword:
		return m.handleKeyEditPassword(msg)
	case acLogout:
		return m.handleKeyLogout(msg)
	}

	switch msg.String() {
	case "e":
		m.state = acEditName
		if m.user != nil {
			m.inputs[0] = m.user.Name
		}
	case "p":
		m.state = acEditPassword
		m.inputs = [2]string{}
		m.focus = 0
	case "x":
		m.state = acLogout
	case "r":
		return m, m.loadSessions()
	}
	return m, nil
}

func (m accountModel) handleKeyEditName(msg tea.KeyMsg) (accountModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.inputs[0])
		if name == "" {
			m.statusMsg = "name is required"
			m.isErr = true
			return m, nil
		}
		m.submitting = true
		c := m.client
		return m, func() tea.Msg {
			user, err := c.UpdateName(context.Background(), name)
			return nameUpdatedMsg{user: user, err: err}
		}
	case "esc":
		m.state = acNormal
		m.inputs = [2]string{}
	default:
		m.inputs[0] = editRune(m.inputs[0], msg.String())
	}
	return m, nil
}

func (m accountModel) handleKeyEditPassword(msg tea.KeyMsg) (accountModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.focus = 1 - m.focus
	case "enter":
		newPw := m.inputs[0]
		oldPw := m.inputs[1]
		if len(newPw) < 8 {
			m.statusMsg = "new password must be at least 8 characters"
			m.isErr = true
			return m, nil
		}
		m.submitting = true
		c := m.client
		return m, func() tea.Msg {
			_, err := c.UpdatePassword(context.Background(), newPw, oldPw)
			return passwordUpdatedMsg{err: err}
		}
	case "esc":
		m.state = acNormal
		m.inputs = [2]string{}
		m.focus = 0
	default:
		m.inputs[m.focus] = editRune(m.inputs[m.focus], msg.String())
	}
	return m, nil
}

func (m accountModel) handleKeyLogout(msg tea.KeyMsg) (accountModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.state = acNormal
		m.submitting = true
		svc := m.auth
		return m, func() tea.Msg {
			return loggedOutMsg{state: svc.Logout(context.Background())}
		}
	case "n", "N", "esc":
		m.state = acNormal
	}
	return m, nil
}

func (m accountModel) View() string {
	var b strings.Builder

	// -- Identity --
	if m.user != nil {
		b.WriteString(" " + selectedStyle.Render(m.user.Name) + "\n")
		b.WriteString("   " + metaStyle.Render(m.user.Email) + "\n")
		if m.user.Registration != "" {
			b.WriteString("   " + metaStyle.Render("member since "+formatDate(m.user.Registration)) + "\n")
		}
	}

	if m.statusMsg != "" {
		if m.isErr {
			b.WriteString("\n " + errorStyle.Render(m.statusMsg) + "\n")
		} else {
			b.WriteString("\n " + successStyle.Render(m.statusMsg) + "\n")
		}
	}

	switch m.state {
	case acEditName:
		b.WriteString("\n " + inputPromptStyle.Render("name:") + " " + m.inputs[0] + accentStyle.Render("_") + "\n")
		b.WriteString("   " + dimStyle.Render("enter save · esc cancel") + "\n")
	case acEditPassword:
		masked := func(s string) string { return strings.Repeat("*", len([]rune(s))) }
		labels := [2]string{"new password:", "current password:"}
		for i := 0; i < 2; i++ {
			cursor := "  "
			value := masked(m.inputs[i])
			if i == m.focus {
				cursor = accentStyle.Render(">") + " "
				value += accentStyle.Render("_")
			}
			b.WriteString("\n " + cursor + inputPromptStyle.Render(labels[i]) + " " + value)
		}
		b.WriteString("\n   " + dimStyle.Render("tab next · enter save · esc cancel") + "\n")
	case acLogout:
		b.WriteString("\n " + errorStyle.Render("log out? ") +
			accentStyle.Render("y") + dimStyle.Render("/") + dimStyle.Render("n") + "\n")
	}

	// -- Sessions --
	if len(m.sessions) > 0 {
		b.WriteString("\n " + sectionHeaderStyle.Render(fmt.Sprintf("── SESSIONS %d active ──", len(m.sessions))) + "\n")
		for _, s := range m.sessions {
			name := s.ClientName
			if name == "" {
				name = s.Provider
			}
			line := "   " + normalStyle.Render(truncStr(name, 24))
			if s.OSName != "" {
				line += "  " + dimStyle.Render(s.OSName)
			}
			if s.Current {
				line += "  " + successStyle.Render("(this device)")
			}
			b.WriteString(line + "\n")
		}
	}

	if m.submitting {
		b.WriteString("\n " + dimStyle.Render("working...") + "\n")
	}

	return b.String()
}

func (m accountModel) helpKeys() string {
	switch m.state {
	case acEditName:
		return helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	case acEditPassword:
		return helpEntry("tab", "next") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	case acLogout:
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	default:
		return helpEntry("e", "edit name") + "  " + helpEntry("p", "password") + "  " + helpEntry("x", "logout") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
	}
}

package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/niyontwali/personal-job-at/internal/auth"
	"github.com/niyontwali/personal-job-at/pkg/appwrite"
	"github.com/niyontwali/personal-job-at/pkg/domain"
)

func newTestAccountModel(t *testing.T) accountModel {
	t.Helper()
	client := appwrite.New("http://127.0.0.1:1", "test-project", "db-1", "applications")
	svc := auth.NewService(client, filepath.Join(t.TempDir(), "session.json"), "user-1")
	m := newAccountModel(svc, client)
	m.user = &domain.User{
		ID:           "user-1",
		Name:         "Niyonshuti",
		Email:        "me@example.com",
		Registration: "2023-06-01T00:00:00.000+00:00",
	}
	return m
}

func TestAccountRendersIdentityAndSessions(t *testing.T) {
	m := newTestAccountModel(t)
	m, _ = m.Update(sessionsLoadedMsg{sessions: []domain.Session{
		{ID: "s-1", ClientName: "CLI", OSName: "Linux", Current: true},
		{ID: "s-2", Provider: "email", OSName: "Mac OS X"},
	}})

	view := m.View()
	for _, want := range []string{
		"Niyonshuti",
		"me@example.com",
		"member since 1st June 2023",
		"── SESSIONS 2 active ──",
		"(this device)",
		"Linux",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("account view missing %q:\n%s", want, view)
		}
	}
}

func TestAccountEditNamePrefillsAndSubmits(t *testing.T) {
	m := newTestAccountModel(t)

	m, _ = m.Update(keyMsg("e"))
	if m.state != acEditName {
		t.Fatal("expected edit-name state after e")
	}
	if m.inputs[0] != "Niyonshuti" {
		t.Errorf("inputs[0] = %q, want current name prefilled", m.inputs[0])
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected update command on enter")
	}
	if !m.submitting {
		t.Error("expected submitting state")
	}
}

func TestAccountEditNameRejectsEmpty(t *testing.T) {
	m := newTestAccountModel(t)
	m, _ = m.Update(keyMsg("e"))
	for range "Niyonshuti" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty name must not submit")
	}
	if !strings.Contains(m.View(), "name is required") {
		t.Errorf("expected validation message, got:\n%s", m.View())
	}
}

func TestAccountNameUpdatedRefreshesIdentity(t *testing.T) {
	m := newTestAccountModel(t)
	m.state = acEditName
	m.submitting = true

	m, _ = m.Update(nameUpdatedMsg{user: &domain.User{ID: "user-1", Name: "N. Twali", Email: "me@example.com"}})
	if m.state != acNormal || m.submitting {
		t.Error("expected normal state after the result")
	}
	if !strings.Contains(m.View(), "N. Twali") {
		t.Errorf("expected updated name in view, got:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "Name updated.") {
		t.Errorf("expected confirmation, got:\n%s", m.View())
	}
}

func TestAccountPasswordTooShort(t *testing.T) {
	m := newTestAccountModel(t)
	m, _ = m.Update(keyMsg("p"))
	if m.state != acEditPassword {
		t.Fatal("expected edit-password state after p")
	}
	for _, r := range "short" {
		m, _ = m.Update(keyMsg(string(r)))
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("short password must not submit")
	}
	if !strings.Contains(m.View(), "at least 8 characters") {
		t.Errorf("expected length message, got:\n%s", m.View())
	}
}

func TestAccountPasswordMaskedAndTabToggles(t *testing.T) {
	m := newTestAccountModel(t)
	m, _ = m.Update(keyMsg("p"))
	for _, r := range "hunter2222" {
		m, _ = m.Update(keyMsg(string(r)))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 1 {
		t.Errorf("focus = %d after tab, want current-password field", m.focus)
	}
	for _, r := range "oldpass99" {
		m, _ = m.Update(keyMsg(string(r)))
	}

	view := m.View()
	if strings.Contains(view, "hunter2222") || strings.Contains(view, "oldpass99") {
		t.Error("passwords must be masked in the view")
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected update command on enter")
	}
	if !m.submitting {
		t.Error("expected submitting state")
	}
}

func TestAccountWrongCurrentPassword(t *testing.T) {
	m := newTestAccountModel(t)
	m.state = acEditPassword
	m.submitting = true
	m.inputs = [2]string{"hunter2222", "wrong"}

	m, _ = m.Update(passwordUpdatedMsg{err: &appwrite.HTTPError{StatusCode: 401, Type: "user_invalid_credentials"}})
	if !strings.Contains(m.View(), "Current password is incorrect.") {
		t.Errorf("expected credentials message, got:\n%s", m.View())
	}
	if m.state != acEditPassword {
		t.Error("a failed change should stay on the password form")
	}
	if m.inputs[0] != "" || m.inputs[1] != "" {
		t.Error("password inputs must be cleared after a failure")
	}
}

func TestAccountLogoutConfirmation(t *testing.T) {
	m := newTestAccountModel(t)

	m, _ = m.Update(keyMsg("x"))
	if m.state != acLogout {
		t.Fatal("expected logout confirmation after x")
	}
	if !strings.Contains(m.View(), "log out?") {
		t.Errorf("expected confirmation prompt, got:\n%s", m.View())
	}

	m, cmd := m.Update(keyMsg("n"))
	if m.state != acNormal || cmd != nil {
		t.Error("n should cancel without a command")
	}

	m, _ = m.Update(keyMsg("x"))
	_, cmd = m.Update(keyMsg("y"))
	if cmd == nil {
		t.Error("expected logout command on y")
	}
}

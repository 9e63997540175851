package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/niyontwali/personal-job-at/pkg/appwrite"
	"github.com/niyontwali/personal-job-at/pkg/domain"
)

func TestDetailRendersRecord(t *testing.T) {
	app := makeTestApp("app-1", "Acme Corp", domain.StatusInterview)
	app.JobLink = "https://jobs.acme.test/42"
	app.Stacks = "Go, Postgres"
	app.Description = "Platform team opening"
	app.Notes = "referred by sam"
	app.NextStep = "prep system design round"

	m := newDetailModel(nil)
	m, _ = m.Update(appLoadedMsg{app: &app})

	view := m.View()
	for _, want := range []string{
		"Acme Corp",
		"[Interview]",
		"Engineer",
		"10th January 2024",
		"https://jobs.acme.test/42",
		"── DESCRIPTION ──",
		"Platform team opening",
		"── NOTES ──",
		"referred by sam",
		"── NEXT STEP ──",
		"prep system design round",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q:\n%s", want, view)
		}
	}
}

func TestDetailShowsLoadingBeforeFetch(t *testing.T) {
	m := newDetailModel(nil)
	if !strings.Contains(m.View(), "loading...") {
		t.Errorf("expected loading state before the record arrives, got:\n%s", m.View())
	}

	app := makeTestApp("app-1", "Acme Corp", domain.StatusApplied)
	m, _ = m.Update(appLoadedMsg{app: &app})
	if strings.Contains(m.View(), "loading...") {
		t.Error("loading state must clear once the record arrives")
	}
}

func TestDetailRelativeUpdatedTime(t *testing.T) {
	app := makeTestApp("app-1", "Acme Corp", domain.StatusApplied)
	app.UpdatedAt = time.Now().Add(-3 * time.Hour).Format(time.RFC3339)

	m := newDetailModel(nil)
	m, _ = m.Update(appLoadedMsg{app: &app})
	if !strings.Contains(m.View(), "3h ago") {
		t.Errorf("expected relative update time, got:\n%s", m.View())
	}
}

func TestDetailOmitsEmptySections(t *testing.T) {
	app := makeTestApp("app-1", "Acme Corp", domain.StatusApplied)
	m := newDetailModel(nil)
	m, _ = m.Update(appLoadedMsg{app: &app})

	view := m.View()
	if strings.Contains(view, "── NOTES ──") {
		t.Error("notes section rendered for an empty field")
	}
	if strings.Contains(view, "link:") {
		t.Error("link row rendered for an empty field")
	}
}

func TestDetailLoadError(t *testing.T) {
	m := newDetailModel(nil)
	m, _ = m.Update(appLoadedMsg{err: &appwrite.HTTPError{StatusCode: 404, Type: "document_not_found"}})

	if !strings.Contains(m.View(), "It may have been deleted.") {
		t.Errorf("expected not-found text, got:\n%s", m.View())
	}
}

func TestDetailEscReturnsToBoard(t *testing.T) {
	m := newDetailModel(nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected command on esc")
	}
	if _, ok := cmd().(backToBoardMsg); !ok {
		t.Errorf("esc produced %#v, want backToBoardMsg", cmd())
	}
}

func TestDetailEditOpensForm(t *testing.T) {
	app := makeTestApp("app-1", "Acme Corp", domain.StatusApplied)
	m := newDetailModel(nil)
	m, _ = m.Update(appLoadedMsg{app: &app})

	_, cmd := m.Update(keyMsg("e"))
	if cmd == nil {
		t.Fatal("expected command on e")
	}
	msg, ok := cmd().(openFormMsg)
	if !ok || msg.app == nil || msg.app.ID != "app-1" {
		t.Errorf("e produced %#v, want edit openFormMsg", cmd())
	}
}

func TestDetailEditWithoutRecordIsNoop(t *testing.T) {
	m := newDetailModel(nil)
	_, cmd := m.Update(keyMsg("e"))
	if cmd != nil {
		t.Error("e without a loaded record must be a no-op")
	}
}

func TestDetailCopyStatus(t *testing.T) {
	app := makeTestApp("app-1", "Acme Corp", domain.StatusApplied)
	m := newDetailModel(nil)
	m, _ = m.Update(appLoadedMsg{app: &app})

	m, _ = m.Update(copyLinkMsg{})
	if !strings.Contains(m.View(), "link copied!") {
		t.Errorf("expected copy confirmation, got:\n%s", m.View())
	}

	m, _ = m.Update(copyLinkMsg{err: errors.New("no clipboard")})
	if !strings.Contains(m.View(), "copy failed") {
		t.Errorf("expected copy failure text, got:\n%s", m.View())
	}

	// Any keypress clears the flash
	m, _ = m.Update(keyMsg("x"))
	if m.statusMsg != "" {
		t.Errorf("statusMsg = %q after a key, want cleared", m.statusMsg)
	}
}

func TestDetailErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", &appwrite.HTTPError{StatusCode: 404}, "This application could not be found. It may have been deleted."},
		{"forbidden", &appwrite.HTTPError{StatusCode: 403}, "You don't have permission to view this application."},
		{"transport failure", errors.New("dial tcp: connection refused"), "Network error. Check your connection and try again."},
		{"server error", &appwrite.HTTPError{StatusCode: 500}, "Something went wrong loading this application."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detailErrorText(tt.err); got != tt.want {
				t.Errorf("detailErrorText() = %q, want %q", got, tt.want)
			}
		})
	}
}

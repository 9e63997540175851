package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/niyontwali/personal-job-at/internal/browser"
	"github.com/niyontwali/personal-job-at/internal/store"
	"github.com/niyontwali/personal-job-at/pkg/appwrite"
	"github.com/niyontwali/personal-job-at/pkg/domain"
)

// -- messages --

type appLoadedMsg struct {
	app *domain.Application
	err error
}

type copyLinkMsg struct{ err error }

// -- model --

type detailModel struct {
	store     *store.Store
	app       *domain.Application
	err       error
	loading   bool
	statusMsg string
	width     int
	height    int
}

func newDetailModel(st *store.Store) detailModel {
	return detailModel{store: st, loading: true}
}

func (m detailModel) Init() tea.Cmd {
	return nil
}

func (m detailModel) load(id string) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		app, err := st.Application(context.Background(), id)
		return appLoadedMsg{app: app, err: err}
	}
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case appLoadedMsg:
		m.loading = false
		m.app = msg.app
		m.err = msg.err

	case copyLinkMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed"
		} else {
			m.statusMsg = "link copied!"
		}

	case tea.KeyMsg:
		m.statusMsg = ""
		return m.handleKey(msg)
	}
	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		return m, func() tea.Msg { return backToBoardMsg{} }
	case "e":
		if m.app != nil {
			app := m.app
			return m, func() tea.Msg { return openFormMsg{app: app} }
		}
	case "o":
		if m.app != nil && m.app.JobLink != "" {
			browser.Open(m.app.JobLink) //nolint:errcheck // best-effort browser open
		}
	case "c":
		if m.app != nil && m.app.JobLink != "" {
			link := m.app.JobLink
			return m, func() tea.Msg {
				return copyLinkMsg{err: clipboard.WriteAll(link)}
			}
		}
	}
	return m, nil
}

// detailErrorText maps load failures to the messages shown in place of
// the record.
func detailErrorText(err error) string {
	switch {
	case appwrite.IsStatus(err, 404):
		return "This application could not be found. It may have been deleted."
	case appwrite.IsStatus(err, 401), appwrite.IsStatus(err, 403):
		return "You don't have permission to view this application."
	case !appwrite.IsHTTP(err):
		return "Network error. Check your connection and try again."
	default:
		return "Something went wrong loading this application."
	}
}

func (m detailModel) View() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("\n " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	if m.err != nil {
		b.WriteString("\n " + errorStyle.Render(detailErrorText(m.err)) + "\n")
		b.WriteString("\n " + dimStyle.Render("esc to go back") + "\n")
		return b.String()
	}
	if m.app == nil {
		return "\n " + dimStyle.Render("nothing to show") + "\n"
	}

	app := m.app
	b.WriteString(" " + selectedStyle.Render(app.CompanyName) + "  " + StatusBadge(app.Status) + "\n")
	b.WriteString(" " + normalStyle.Render(app.PositionTitle) + "\n\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(" " + metaStyle.Render(label+":") + " " + normalStyle.Render(value) + "\n")
	}
	row("applied", formatDate(app.ApplicationDate))
	row("location", app.Location)
	row("source", app.Source)
	row("link", app.JobLink)
	row("stacks", app.Stacks)
	row("resume", app.ResumeVersion)
	if t, err := parseDate(app.UpdatedAt); err == nil {
		row("updated", formatTime(t))
	}

	if app.Description != "" {
		b.WriteString("\n " + sectionHeaderStyle.Render("── DESCRIPTION ──") + "\n")
		b.WriteString(" " + dimStyle.Render(app.Description) + "\n")
	}
	if app.Notes != "" {
		b.WriteString("\n " + sectionHeaderStyle.Render("── NOTES ──") + "\n")
		b.WriteString(" " + dimStyle.Render(app.Notes) + "\n")
	}
	if app.NextStep != "" {
		b.WriteString("\n " + sectionHeaderStyle.Render("── NEXT STEP ──") + "\n")
		b.WriteString(" " + normalStyle.Render(app.NextStep) + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n " + successStyle.Render(m.statusMsg) + "\n")
	}

	return b.String()
}

func (m detailModel) helpKeys() string {
	return helpEntry("e", "edit") + "  " + helpEntry("o", "open link") + "  " + helpEntry("c", "copy link") + "  " + helpEntry("esc", "back") + "  " + helpEntry("q", "quit")
}

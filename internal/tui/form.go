package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/niyontwali/personal-job-at/internal/store"
	"github.com/niyontwali/personal-job-at/pkg/domain"
)

type formField int

const (
	ffCompany formField = iota
	ffPosition
	ffDate
	ffStatus
	ffLocation
	ffSource
	ffJobLink
	ffStacks
	ffDescription
	ffNotes
	ffNextStep
	ffResume
	numFormFields
)

var formLabels = [numFormFields]string{
	"company", "position", "date", "status", "location", "source",
	"job link", "stacks", "description", "notes", "next step", "resume",
}

// formFieldNames maps form fields to the validation message keys.
var formFieldNames = [numFormFields]string{
	"CompanyName", "PositionTitle", "ApplicationDate", "Status", "Location",
	"Source", "JobLink", "Stacks", "Description", "Notes", "NextStep",
	"ResumeVersion",
}

type formModel struct {
	store      *store.Store
	fields     [numFormFields]string
	focus      formField
	editID     string // non-empty when editing an existing record
	fieldErrs  map[string]string
	submitting bool
	width      int
	height     int
}

func newFormModel(st *store.Store) formModel {
	m := formModel{store: st}
	m.fields[ffStatus] = string(domain.StatusApplied)
	m.fields[ffDate] = time.Now().Format("2006-01-02")
	return m
}

// setEditing pre-fills the form from an existing record.
func (m *formModel) setEditing(app domain.Application) {
	m.editID = app.ID
	m.fields = [numFormFields]string{
		ffCompany:     app.CompanyName,
		ffPosition:    app.PositionTitle,
		ffDate:        app.ApplicationDate,
		ffStatus:      string(app.Status),
		ffLocation:    app.Location,
		ffSource:      app.Source,
		ffJobLink:     app.JobLink,
		ffStacks:      app.Stacks,
		ffDescription: app.Description,
		ffNotes:       app.Notes,
		ffNextStep:    app.NextStep,
		ffResume:      app.ResumeVersion,
	}
}

func (m formModel) Init() tea.Cmd {
	return nil
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case appCreatedMsg, appUpdatedMsg:
		// The root handles navigation and toasts; the form only needs
		// to unlock so a failed submit can be corrected and retried.
		m.submitting = false

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m formModel) handleKey(msg tea.KeyMsg) (formModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return backToBoardMsg{} }
	case "ctrl+s":
		return m.submit()
	case "tab", "down":
		m.focus = (m.focus + 1) % numFormFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numFormFields) % numFormFields
	case "enter":
		m.focus = (m.focus + 1) % numFormFields
	default:
		key := msg.String()
		if m.focus == ffStatus {
			if key == "h" || key == "left" {
				m.fields[ffStatus] = string(nextStatus(domain.Status(m.fields[ffStatus]), -1))
				return m, nil
			}
			if key == "l" || key == "right" {
				m.fields[ffStatus] = string(nextStatus(domain.Status(m.fields[ffStatus]), 1))
				return m, nil
			}
			return m, nil
		}
		f := &m.fields[m.focus]
		*f = editRune(*f, key)
	}
	return m, nil
}

func (m formModel) buildInput() domain.ApplicationInput {
	return domain.ApplicationInput{
		CompanyName:     strings.TrimSpace(m.fields[ffCompany]),
		PositionTitle:   strings.TrimSpace(m.fields[ffPosition]),
		ApplicationDate: strings.TrimSpace(m.fields[ffDate]),
		Status:          domain.Status(m.fields[ffStatus]),
		Location:        strings.TrimSpace(m.fields[ffLocation]),
		Source:          strings.TrimSpace(m.fields[ffSource]),
		JobLink:         strings.TrimSpace(m.fields[ffJobLink]),
		Stacks:          strings.TrimSpace(m.fields[ffStacks]),
		Description:     strings.TrimSpace(m.fields[ffDescription]),
		Notes:           strings.TrimSpace(m.fields[ffNotes]),
		NextStep:        strings.TrimSpace(m.fields[ffNextStep]),
		ResumeVersion:   strings.TrimSpace(m.fields[ffResume]),
	}
}

func (m formModel) submit() (formModel, tea.Cmd) {
	in := m.buildInput()
	if errs := in.Validate(); len(errs) > 0 {
		m.fieldErrs = errs
		// Jump to the first failing field in form order
		for i := formField(0); i < numFormFields; i++ {
			if _, ok := errs[formFieldNames[i]]; ok {
				m.focus = i
				break
			}
		}
		return m, nil
	}

	m.fieldErrs = nil
	m.submitting = true
	st := m.store
	if m.editID != "" {
		id := m.editID
		return m, func() tea.Msg {
			app, err := st.Update(context.Background(), id, in)
			return appUpdatedMsg{app: app, err: err}
		}
	}
	return m, func() tea.Msg {
		app, err := st.Create(context.Background(), in)
		return appCreatedMsg{app: app, err: err}
	}
}

func (m formModel) View() string {
	var b strings.Builder

	title := "NEW APPLICATION"
	if m.editID != "" {
		title = "EDIT APPLICATION"
	}
	b.WriteString(" " + sectionHeaderStyle.Render("── "+title+" ──") + "\n\n")

	for i := formField(0); i < numFormFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = accentStyle.Render(">")
			style = selectedStyle
		}

		if i == ffStatus {
			fmt.Fprintf(&b, " %s %s %s  %s\n",
				cursor, style.Render(formLabels[i]+":"),
				StatusBadge(domain.Status(m.fields[i])), dimStyle.Render("(h/l to cycle)"))
		} else {
			value := m.fields[i]
			if i == m.focus && !m.submitting {
				value += accentStyle.Render("_")
			}
			fmt.Fprintf(&b, " %s %s %s\n", cursor, style.Render(formLabels[i]+":"), value)
		}

		if msg, ok := m.fieldErrs[formFieldNames[i]]; ok {
			b.WriteString("     " + errorStyle.Render(msg) + "\n")
		}
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("saving...") + "\n")
	}

	return b.String()
}

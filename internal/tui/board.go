package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/niyontwali/personal-job-at/internal/store"
	"github.com/niyontwali/personal-job-at/pkg/domain"
)

// boardState is the state machine for list interactions.
type boardState int

const (
	bsNormal    boardState = iota
	bsSearching            // typing in the search box
	bsUpdating             // picking a new status for the selected row
	bsDeleting             // delete confirmation on the selected row
)

// -- messages --

type appsLoadedMsg struct {
	apps []domain.Application
	err  error
}

// -- model --

// filterOrder is the cycle order for the status filter.
var filterOrder = append([]domain.Status{domain.StatusAll}, domain.Statuses...)

type boardModel struct {
	store   *store.Store
	apps    []domain.Application
	state   boardState
	cursor  int // row within the current page
	page    int // 1-based
	filter  domain.Status
	cycle   int // index into filterOrder
	query   string
	pending domain.Status // candidate status while bsUpdating
	err     string
	loading bool
	width   int
	height  int
}

func newBoardModel(st *store.Store) boardModel {
	return boardModel{store: st, filter: domain.StatusAll, page: 1}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadApps()
}

func (m boardModel) loadApps() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		apps, err := st.Applications(context.Background())
		return appsLoadedMsg{apps: apps, err: err}
	}
}

// visible returns the filtered and searched set the pages are cut from.
func (m boardModel) visible() []domain.Application {
	return domain.Derive(m.apps, m.filter, m.query)
}

// pageApps returns the rows on the current page.
func (m boardModel) pageApps() []domain.Application {
	return domain.Page(m.visible(), m.page)
}

// clampCursor keeps the cursor and page inside the derived set.
func (m *boardModel) clampCursor() {
	total := domain.TotalPages(len(m.visible()))
	if m.page > total {
		m.page = total
	}
	if m.page < 1 {
		m.page = 1
	}
	rows := len(m.pageApps())
	if m.cursor >= rows {
		m.cursor = rows - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m boardModel) selected() *domain.Application {
	rows := m.pageApps()
	if len(rows) == 0 || m.cursor >= len(rows) {
		return nil
	}
	app := rows[m.cursor]
	return &app
}

func (m boardModel) Update(msg tea.Msg) (boardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case appsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.apps = msg.apps
			m.err = ""
			m.clampCursor()
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	switch m.state {
	case bsSearching:
		return m.handleKeySearching(msg)
	case bsUpdating:
		return m.handleKeyUpdating(msg)
	case bsDeleting:
		return m.handleKeyDeleting(msg)
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.pageApps())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "]", "right":
		if m.page < domain.TotalPages(len(m.visible())) {
			m.page++
			m.cursor = 0
		}
	case "[", "left":
		if m.page > 1 {
			m.page--
			m.cursor = 0
		}
	case "f":
		// Cycle status filter; derivation changes reset to page 1
		m.cycle = (m.cycle + 1) % len(filterOrder)
		m.filter = filterOrder[m.cycle]
		m.page = 1
		m.cursor = 0
	case "/":
		m.state = bsSearching
	case "u":
		if app := m.selected(); app != nil {
			m.state = bsUpdating
			m.pending = app.Status
		}
	case "d":
		if m.selected() != nil {
			m.state = bsDeleting
		}
	case "n":
		return m, func() tea.Msg { return openFormMsg{} }
	case "e":
		if app := m.selected(); app != nil {
			return m, func() tea.Msg { return openFormMsg{app: app} }
		}
	case "enter":
		if app := m.selected(); app != nil {
			id := app.ID
			return m, func() tea.Msg { return openDetailMsg{id: id} }
		}
	case "r":
		m.loading = true
		return m, m.loadApps()
	}
	return m, nil
}

func (m boardModel) handleKeySearching(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.state = bsNormal
	case "esc":
		m.state = bsNormal
		m.query = ""
		m.page = 1
		m.cursor = 0
	default:
		m.query = editRune(m.query, msg.String())
		m.page = 1
		m.cursor = 0
	}
	return m, nil
}

func (m boardModel) handleKeyUpdating(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	switch msg.String() {
	case "l", "right":
		m.pending = nextStatus(m.pending, 1)
	case "h", "left":
		m.pending = nextStatus(m.pending, -1)
	case "enter":
		app := m.selected()
		m.state = bsNormal
		if app == nil || m.pending == app.Status {
			return m, nil
		}
		in := applicationToInput(*app)
		in.Status = m.pending
		id := app.ID
		st := m.store
		return m, func() tea.Msg {
			updated, err := st.Update(context.Background(), id, in)
			return appUpdatedMsg{app: updated, err: err}
		}
	case "esc":
		m.state = bsNormal
	}
	return m, nil
}

func (m boardModel) handleKeyDeleting(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		app := m.selected()
		m.state = bsNormal
		if app == nil {
			return m, nil
		}
		id := app.ID
		st := m.store
		return m, func() tea.Msg {
			err := st.Delete(context.Background(), id)
			return appDeletedMsg{id: id, err: err}
		}
	case "n", "N", "esc":
		m.state = bsNormal
	}
	return m, nil
}

// nextStatus steps through the status cycle in either direction.
func nextStatus(s domain.Status, dir int) domain.Status {
	idx := 0
	for i, st := range domain.Statuses {
		if st == s {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(domain.Statuses)) % len(domain.Statuses)
	return domain.Statuses[idx]
}

// applicationToInput rebuilds the writable payload from a stored record
// so an inline status change round-trips the other fields untouched.
func applicationToInput(app domain.Application) domain.ApplicationInput {
	return domain.ApplicationInput{
		CompanyName:     app.CompanyName,
		PositionTitle:   app.PositionTitle,
		ApplicationDate: app.ApplicationDate,
		Status:          app.Status,
		Location:        app.Location,
		Source:          app.Source,
		JobLink:         app.JobLink,
		Description:     app.Description,
		Stacks:          app.Stacks,
		Notes:           app.Notes,
		NextStep:        app.NextStep,
		ResumeVersion:   app.ResumeVersion,
	}
}

func (m boardModel) View() string {
	var b strings.Builder

	stats := domain.CountStats(m.apps)
	visible := m.visible()
	b.WriteString(" " + sectionHeaderStyle.Render(fmt.Sprintf("── APPLICATIONS %d of %d ──", len(visible), stats.Total)) + "\n")
	b.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d total · %d applied · %d interview · %d offer · %d rejected",
		stats.Total, stats.Applied, stats.Interview, stats.Offer, stats.Rejected)) + "\n")

	// Filter / search line
	filterLabel := "all"
	if m.filter != domain.StatusAll {
		filterLabel = m.filter.Label()
	}
	line := " " + dimStyle.Render("filter:") + " " + StatusStyle(m.filter).Render(filterLabel)
	if m.state == bsSearching {
		line += "  " + inputPromptStyle.Render("/") + m.query + accentStyle.Render("_")
	} else if m.query != "" {
		line += "  " + dimStyle.Render("search:") + " " + normalStyle.Render(m.query)
	}
	b.WriteString(line + "\n\n")

	if m.loading && len(m.apps) == 0 {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n")
		return b.String()
	}
	if len(visible) == 0 {
		if len(m.apps) == 0 {
			b.WriteString(" " + dimStyle.Render("no applications yet · press n to add one") + "\n")
		} else {
			b.WriteString(" " + dimStyle.Render("nothing matches the current filter") + "\n")
		}
		return b.String()
	}

	for i, app := range m.pageApps() {
		isActive := i == m.cursor

		cursor := "  "
		if isActive {
			cursor = accentStyle.Render("▸") + " "
		}

		company := normalStyle.Render(truncStr(app.CompanyName, 22))
		if isActive {
			company = selectedStyle.Render(truncStr(app.CompanyName, 22))
		}
		position := dimStyle.Render(truncStr(app.PositionTitle, 28))
		date := metaStyle.Render(formatDate(app.ApplicationDate))

		badge := StatusBadge(app.Status)
		if isActive && m.state == bsUpdating {
			badge = dimStyle.Render("<") + " " + StatusBadge(m.pending) + " " + dimStyle.Render("> enter to set")
		}

		fmt.Fprintf(&b, " %s%s  %s  %s  %s\n", cursor, company, position, badge, date)

		if isActive && m.state == bsDeleting {
			b.WriteString("   " + errorStyle.Render("delete this application? ") +
				accentStyle.Render("y") + dimStyle.Render("/") + dimStyle.Render("n") + "\n")
		}
	}

	totalPages := domain.TotalPages(len(visible))
	if totalPages > 1 {
		b.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d/%d · [ ] to flip", m.page, totalPages)) + "\n")
	}

	return b.String()
}

func (m boardModel) helpKeys() string {
	switch m.state {
	case bsSearching:
		return helpEntry("enter", "done") + "  " + helpEntry("esc", "clear")
	case bsUpdating:
		return helpEntry("h/l", "status") + "  " + helpEntry("enter", "set") + "  " + helpEntry("esc", "cancel")
	case bsDeleting:
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("f", "filter") + "  " + helpEntry("/", "search") + "  " + helpEntry("u", "status") + "  " + helpEntry("n", "new") + "  " + helpEntry("e", "edit") + "  " + helpEntry("d", "delete") + "  " + helpEntry("enter", "open") + "  " + helpEntry("2", "account") + "  " + helpEntry("q", "quit")
	}
}

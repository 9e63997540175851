// Package tui is the terminal front end: a root model that owns auth
// routing, network status, and toasts, with one sub-model per screen.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/niyontwali/personal-job-at/internal/auth"
	"github.com/niyontwali/personal-job-at/internal/netmon"
	"github.com/niyontwali/personal-job-at/internal/store"
	"github.com/niyontwali/personal-job-at/pkg/appwrite"
	"github.com/niyontwali/personal-job-at/pkg/domain"
)

type view int

const (
	viewLogin view = iota
	viewBoard
	viewDetail
	viewForm
	viewAccount
)

// toastDuration is how long a toast stays on screen.
const toastDuration = 3 * time.Second

// -- shared messages --

// authCheckedMsg carries the result of the startup auth check.
type authCheckedMsg struct {
	state      auth.State
	needVerify bool
}

// authVerifiedMsg carries the result of the background re-verification
// that follows a cached auth presentation.
type authVerifiedMsg struct {
	state auth.State
}

type loggedInMsg struct {
	state auth.State
	err   error
}

type loggedOutMsg struct {
	state auth.State
}

type netProbeMsg struct{ reachable bool }
type netTickMsg struct{}

type toastMsg struct {
	text  string
	isErr bool
}

type toastExpiredMsg struct{ id int }

// openDetailMsg asks the root to show one application.
type openDetailMsg struct{ id string }

// openFormMsg asks the root to show the form; a nil app means create.
type openFormMsg struct{ app *domain.Application }

type backToBoardMsg struct{}

// Mutation results are shared: the board issues inline status updates
// and deletes, the form issues creates and full updates, and the root
// routes the outcome (toast + navigation) for all of them.
type appCreatedMsg struct {
	app *domain.Application
	err error
}

type appUpdatedMsg struct {
	app *domain.Application
	err error
}

type appDeletedMsg struct {
	id  string
	err error
}

type toast struct {
	text  string
	isErr bool
	id    int
}

// App is the root Bubbletea model.
type App struct {
	auth    *auth.Service
	store   *store.Store
	client  *appwrite.Client
	monitor *netmon.Monitor

	view      view
	authState auth.State
	checked   bool // startup auth check finished

	login   loginModel
	board   boardModel
	detail  detailModel
	form    formModel
	account accountModel

	online   netmon.Status
	toast    toast
	toastSeq int
	width    int
	height   int
}

// NewApp creates the root model.
func NewApp(svc *auth.Service, st *store.Store, c *appwrite.Client, mon *netmon.Monitor) App {
	return App{
		auth:    svc,
		store:   st,
		client:  c,
		monitor: mon,
		login:   newLoginModel(svc),
		board:   newBoardModel(st),
		detail:  newDetailModel(st),
		form:    newFormModel(st),
		account: newAccountModel(svc, c),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.checkAuth(), a.probeNet())
}

func (a App) checkAuth() tea.Cmd {
	svc := a.auth
	return func() tea.Msg {
		state, needVerify := svc.Start(context.Background())
		return authCheckedMsg{state: state, needVerify: needVerify}
	}
}

func (a App) verifyAuth() tea.Cmd {
	svc := a.auth
	return func() tea.Msg {
		return authVerifiedMsg{state: svc.Verify(context.Background())}
	}
}

func (a App) probeNet() tea.Cmd {
	mon := a.monitor
	return func() tea.Msg {
		return netProbeMsg{reachable: mon.Probe(context.Background())}
	}
}

func netTickCmd() tea.Cmd {
	return tea.Tick(netmon.Interval, func(time.Time) tea.Msg {
		return netTickMsg{}
	})
}

func (a *App) showToast(text string, isErr bool) tea.Cmd {
	a.toastSeq++
	a.toast = toast{text: text, isErr: isErr, id: a.toastSeq}
	id := a.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// gotoBoard routes to the board and reloads it.
func (a *App) gotoBoard() tea.Cmd {
	a.view = viewBoard
	return a.board.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(1) + toast(1) + help(1) = 3 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 3}
		a.login, _ = a.login.Update(bodyMsg)
		a.board, _ = a.board.Update(bodyMsg)
		a.detail, _ = a.detail.Update(bodyMsg)
		a.form, _ = a.form.Update(bodyMsg)
		a.account, _ = a.account.Update(bodyMsg)
		return a, nil

	case authCheckedMsg:
		a.checked = true
		a.authState = msg.state
		var cmds []tea.Cmd
		if msg.state.Authenticated {
			cmds = append(cmds, a.gotoBoard())
		} else {
			a.view = viewLogin
		}
		if msg.needVerify {
			cmds = append(cmds, a.verifyAuth())
		}
		return a, tea.Batch(cmds...)

	case authVerifiedMsg:
		a.authState = msg.state
		if !msg.state.Authenticated && a.view != viewLogin {
			a.view = viewLogin
			a.store.Invalidate()
			return a, a.showToast("Session expired. Please log in again.", true)
		}
		return a, nil

	case loggedInMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		if msg.err != nil {
			return a, tea.Batch(cmd, a.showToast(loginErrorText(msg.err), true))
		}
		a.authState = msg.state
		a.store.Invalidate()
		return a, tea.Batch(cmd, a.gotoBoard(), a.showToast("Logged in successfully!", false))

	case loggedOutMsg:
		a.authState = msg.state
		a.store.Invalidate()
		a.view = viewLogin
		a.login = newLoginModel(a.auth)
		return a, a.showToast("Logged out.", false)

	case netProbeMsg:
		prev := a.online
		next, changed := netmon.Next(prev, msg.reachable)
		a.online = next
		if changed && next == netmon.StatusOffline {
			return a, tea.Batch(netTickCmd(), a.showToast("You are offline. Changes will fail until the connection returns.", true))
		}
		// Recovery only; the first probe after startup stays quiet
		if changed && next == netmon.StatusOnline && prev == netmon.StatusOffline {
			return a, tea.Batch(netTickCmd(), a.showToast("You're back online!", false))
		}
		return a, netTickCmd()

	case netTickMsg:
		return a, a.probeNet()

	case toastExpiredMsg:
		if msg.id == a.toast.id {
			a.toast = toast{}
		}
		return a, nil

	case openDetailMsg:
		a.view = viewDetail
		a.detail = newDetailModel(a.store)
		return a, a.detail.load(msg.id)

	case openFormMsg:
		a.view = viewForm
		a.form = newFormModel(a.store)
		if msg.app != nil {
			a.form.setEditing(*msg.app)
		}
		return a, nil

	case backToBoardMsg:
		return a, a.gotoBoard()

	case appCreatedMsg:
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		if msg.err != nil {
			return a, tea.Batch(cmd, a.showToast("Failed to create application: "+humanError(msg.err), true))
		}
		return a, tea.Batch(cmd, a.gotoBoard(), a.showToast("Application created.", false))

	case appUpdatedMsg:
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		if msg.err != nil {
			return a, tea.Batch(cmd, a.showToast("Failed to update application: "+humanError(msg.err), true))
		}
		if a.view == viewForm {
			return a, tea.Batch(cmd, a.gotoBoard(), a.showToast("Application updated.", false))
		}
		return a, tea.Batch(cmd, a.board.Init(), a.showToast("Application updated.", false))

	case appDeletedMsg:
		if msg.err != nil {
			return a, a.showToast("Failed to delete application: "+humanError(msg.err), true)
		}
		return a, tea.Batch(a.board.Init(), a.showToast("Application deleted.", false))

	case tea.KeyMsg:
		// Global keys apply only outside text entry
		if !a.isEditing() {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				if a.authState.Authenticated && a.view != viewBoard {
					return a, a.gotoBoard()
				}
			case "2":
				if a.authState.Authenticated && a.view != viewAccount {
					a.view = viewAccount
					a.account = newAccountModel(a.auth, a.client)
					return a, a.account.Init()
				}
			}
		} else if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewBoard:
		a.board, cmd = a.board.Update(msg)
	case viewDetail:
		a.detail, cmd = a.detail.Update(msg)
	case viewForm:
		a.form, cmd = a.form.Update(msg)
	case viewAccount:
		a.account, cmd = a.account.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.view {
	case viewLogin:
		return true
	case viewForm:
		return true
	case viewBoard:
		return a.board.state == bsSearching
	case viewAccount:
		return a.account.state != acNormal
	}
	return false
}

func (a App) View() string {
	// Header: wordmark, signed-in user, offline badge
	header := " " + titleStyle.Render("JOBTRACK")
	if a.authState.User != nil {
		header += "  " + metaStyle.Render(a.authState.User.Email)
	}
	if a.online == netmon.StatusOffline {
		badge := offlineStyle.Render(" OFFLINE ")
		pad := a.width - lipgloss.Width(header) - lipgloss.Width(badge) - 1
		if pad < 1 {
			pad = 1
		}
		header += strings.Repeat(" ", pad) + badge
	}

	var body, help string
	switch {
	case !a.checked || a.authState.Loading:
		body = "\n " + dimStyle.Render("checking session...")
		help = " " + helpEntry("q", "quit")
	case a.view == viewLogin:
		body = a.login.View()
		help = " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "sign in") + "  " + helpEntry("ctrl+c", "quit")
	case a.view == viewBoard:
		body = a.board.View()
		help = " " + a.board.helpKeys()
	case a.view == viewDetail:
		body = a.detail.View()
		help = " " + a.detail.helpKeys()
	case a.view == viewForm:
		body = a.form.View()
		help = " " + helpEntry("tab", "next") + "  " + helpEntry("h/l", "status") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	case a.view == viewAccount:
		body = a.account.View()
		help = " " + helpEntry("1", "applications") + "  " + a.account.helpKeys()
	}

	toastLine := ""
	if a.toast.text != "" {
		if a.toast.isErr {
			toastLine = " " + errorStyle.Render(a.toast.text)
		} else {
			toastLine = " " + successStyle.Render(a.toast.text)
		}
	}

	// Chrome budget: header(1) + toast(1) + help(1) = 3 lines + body
	body = strings.TrimRight(truncateToHeight(body, a.height-3), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, body, toastLine, help)
}

// loginErrorText maps a sign-in failure to the message shown in the
// toast, keying on status rather than raw error text where possible.
func loginErrorText(err error) string {
	switch {
	case appwrite.IsStatus(err, 401):
		return "Invalid email or password."
	case appwrite.IsStatus(err, 429):
		return "Too many attempts. Please wait a moment and try again."
	case !appwrite.IsHTTP(err):
		return "Network error. Check your connection and try again."
	default:
		return "Sign in failed. Please try again."
	}
}

// humanError maps mutation failures to short human-readable text.
func humanError(err error) string {
	switch {
	case appwrite.IsStatus(err, 404):
		return "record not found"
	case appwrite.IsStatus(err, 401), appwrite.IsStatus(err, 403):
		return "permission denied"
	case !appwrite.IsHTTP(err):
		return "network error"
	default:
		return "server error"
	}
}

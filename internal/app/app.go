// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/roster/internal/config"
	"github.com/zjrosen/roster/internal/keys"
	"github.com/zjrosen/roster/internal/log"
	"github.com/zjrosen/roster/internal/pubsub"
	"github.com/zjrosen/roster/internal/registry"
	"github.com/zjrosen/roster/internal/ui/logoverlay"
	"github.com/zjrosen/roster/internal/ui/modal"
	"github.com/zjrosen/roster/internal/ui/picker"
	"github.com/zjrosen/roster/internal/ui/regform"
	"github.com/zjrosen/roster/internal/ui/roster"
	"github.com/zjrosen/roster/internal/ui/styles"
	"github.com/zjrosen/roster/internal/ui/toaster"
)

type focus int

const (
	focusForm focus = iota
	focusList
)

// Params carries everything the root model needs from the entry point.
type Params struct {
	Manager  *registry.Manager
	Config   config.Config
	Tracer   trace.Tracer
	Recorder registry.Recorder
	Filter   string
	Debug    bool

	// ConfigEvents and Reload together enable live role updates when the
	// config file changes.
	ConfigEvents pubsub.Subscriber[string]
	Reload       func() (config.Config, error)
}

// Model is the root application state.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	ctrl    *registry.Controller
	manager *registry.Manager
	display *display
	cfg     config.Config

	form    regform.Model
	list    roster.Model
	toaster toaster.Model
	help    help.Model

	picker     picker.Model
	pickerOpen bool

	modal     modal.Model
	modalOpen bool

	debug       bool
	logs        logoverlay.Model
	logListener *pubsub.Listener[string]

	records *pubsub.Listener[registry.Record]

	configListener *pubsub.Listener[string]
	reload         func() (config.Config, error)

	onDelete func(email string)
	count    int
	focus    focus
	stacked  bool
	width    int
	height   int
}

// New wires a controller to a fresh model and paints the initial state.
func New(p Params) Model {
	ctx, cancel := context.WithCancel(context.Background())

	d := &display{}
	opts := []registry.ControllerOption{
		registry.WithTracer(p.Tracer),
		registry.WithRecorder(p.Recorder),
		registry.WithInitialFilter(p.Filter),
	}

	m := Model{
		ctx:     ctx,
		cancel:  cancel,
		ctrl:    registry.NewController(p.Manager, d, opts...),
		manager: p.Manager,
		display: d,
		cfg:     p.Config,
		form:    regform.New(p.Config.Roles),
		list:    roster.New(),
		toaster: toaster.New(),
		help:    help.New(),
		logs:    logoverlay.New(),
		debug:   p.Debug,
		records: pubsub.NewListener[registry.Record](ctx, p.Manager.Broker()),
	}
	if p.Debug {
		m.logListener = log.NewListener(ctx)
	}
	if p.ConfigEvents != nil && p.Reload != nil {
		m.configListener = pubsub.NewListener(ctx, p.ConfigEvents)
		m.reload = p.Reload
	}

	m.ctrl.Refresh()
	m = m.apply()
	m.form = m.form.SetRoles(m.roleChoices())
	return m.setFocus(focusForm)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.form.Init(), m.records.Listen()}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	if m.configListener != nil {
		cmds = append(cmds, m.configListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.modal.SetSize(msg.Width, msg.Height)
		m.picker = m.picker.SetSize(msg.Width, msg.Height)
		m.logs = m.logs.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m.layout(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.modalOpen || m.pickerOpen || m.logs.Visible() {
			return m, nil
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case regform.SubmitMsg:
		return m.submit(msg.Fields)

	case roster.DeleteRequestMsg:
		if m.onDelete == nil {
			return m, nil
		}
		log.Debug(log.CatUI, "Delete requested", "email", msg.Email)
		m.modal = modal.NewConfirm("Delete registration", registry.MsgConfirmDelete, msg.Email)
		m.modal.SetSize(m.width, m.height)
		m.modalOpen = true
		return m, nil

	case modal.ConfirmMsg:
		m.modalOpen = false
		if m.onDelete == nil {
			return m, nil
		}
		before := m.manager.Count()
		m.onDelete(msg.Subject)
		m = m.apply()
		if before == m.manager.Count() {
			return m, nil
		}
		return m.toast("Registration removed", toaster.StyleInfo)

	case modal.CancelMsg:
		m.modalOpen = false
		return m, nil

	case modal.DismissMsg:
		m.modalOpen = false
		return m, nil

	case picker.SelectMsg:
		m.pickerOpen = false
		m.ctrl.Filter(m.ctx, msg.Value)
		return m.apply(), nil

	case picker.CancelMsg:
		m.pickerOpen = false
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case logoverlay.CloseMsg:
		return m, nil

	case pubsub.Event[registry.Record]:
		log.Debug(log.CatUI, "Registry event", "type", msg.Type, "email", msg.Payload.Email)
		m.form = m.form.SetRoles(m.roleChoices())
		return m, m.records.Listen()

	case pubsub.Event[string]:
		if msg.Type == pubsub.UpdatedEvent {
			return m.reloadConfig()
		}
		m.logs = m.logs.Append(msg.Payload)
		if m.logListener == nil {
			return m, nil
		}
		return m, m.logListener.Listen()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return m.quit()
	}

	if m.modalOpen {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	if m.pickerOpen {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	if m.debug && msg.String() == "ctrl+x" {
		m.logs = m.logs.Toggle()
		return m, nil
	}
	if m.logs.Visible() {
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}

	if m.focus == focusForm {
		if key.Matches(msg, keys.Form.FocusList) {
			return m.setFocus(focusList), nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.List.Quit):
		return m.quit()
	case key.Matches(msg, keys.List.FocusForm):
		return m.setFocus(focusForm), nil
	case key.Matches(msg, keys.List.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.List.Filter):
		m.picker = picker.New("Filter by role", picker.RoleOptions(m.cfg.Roles, m.manager.Roles())).
			SetSelected(m.ctrl.Selected()).
			SetSize(m.width, m.height)
		m.pickerOpen = true
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// reloadConfig picks up roles and theme from an edited config file. An
// invalid file keeps the running configuration.
func (m Model) reloadConfig() (tea.Model, tea.Cmd) {
	next := m.configListener.Listen()
	cfg, err := m.reload()
	if err != nil {
		log.ErrorErr(log.CatConfig, "Config reload failed", err)
		m2, cmd := m.toast("Config not reloaded: "+err.Error(), toaster.StyleError)
		return m2, tea.Batch(cmd, next)
	}
	m.cfg = cfg
	styles.ApplyTheme(cfg.Theme.Muted, cfg.Theme.Error, cfg.Theme.Success)
	m.form = m.form.SetRoles(m.roleChoices())
	log.Info(log.CatConfig, "Config reloaded", "roles", len(cfg.Roles))
	m2, cmd := m.toast("Configuration reloaded", toaster.StyleInfo)
	return m2, tea.Batch(cmd, next)
}

func (m Model) submit(fields registry.Fields) (tea.Model, tea.Cmd) {
	err := m.ctrl.Submit(m.ctx, fields)
	m = m.apply()
	if err != nil {
		log.Debug(log.CatUI, "Submission rejected", "error", err)
		return m, nil
	}
	return m.toast("Registered "+strings.TrimSpace(fields.Name), toaster.StyleSuccess)
}

// apply moves pending controller output into the sub-models.
func (m Model) apply() Model {
	out := m.display.drain()
	if out.rendered {
		m.list = m.list.SetRecords(out.records).SetEmptyText(m.emptyText())
		m.onDelete = out.onDelete
	}
	if out.counted {
		m.count = out.count
	}
	if out.reset {
		m.form = m.form.Reset()
	}
	if n := len(out.alerts); n > 0 {
		m.modal = modal.NewAlert("Attention", out.alerts[n-1])
		m.modal.SetSize(m.width, m.height)
		m.modalOpen = true
	}
	return m
}

func (m Model) toast(message string, style toaster.Style) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(message, style, time.Duration(m.cfg.UI.ToastSeconds)*time.Second)
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}

// Close stops the event listeners.
func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m Model) setFocus(f focus) Model {
	m.focus = f
	if f == focusForm {
		m.form = m.form.Focus()
		m.list = m.list.Blur()
	} else {
		m.form = m.form.Blur()
		m.list = m.list.Focus()
	}
	return m
}

// roleChoices are the configured roles followed by any other role present
// in the collection.
func (m Model) roleChoices() []string {
	opts := picker.RoleOptions(m.cfg.Roles, m.manager.Roles())
	roles := make([]string, 0, len(opts)-1)
	for _, o := range opts[1:] {
		roles = append(roles, o.Value)
	}
	return roles
}

func (m Model) emptyText() string {
	if sel := m.ctrl.Selected(); sel != registry.AllRoles {
		return fmt.Sprintf("No registrations with role %q.", sel)
	}
	return "No registrations yet."
}

// Selected returns the active role filter.
func (m Model) Selected() string {
	return m.ctrl.Selected()
}

// Count returns the counter value shown in the header.
func (m Model) Count() int {
	return m.count
}

// Form exposes the form state.
func (m Model) Form() regform.Model {
	return m.form
}

// List exposes the list state.
func (m Model) List() roster.Model {
	return m.list
}

const (
	formWidth    = 56
	minListWidth = 30
	chromeLines  = 4
	formLines    = 12
)

// layout puts the form left of the list, or above it on narrow terminals.
func (m Model) layout() Model {
	m.stacked = m.width-formWidth-1 < minListWidth
	if m.stacked {
		m.form = m.form.SetWidth(m.width)
		m.list = m.list.SetSize(m.width, max(m.height-chromeLines-formLines, 4))
		return m
	}
	m.form = m.form.SetWidth(formWidth)
	m.list = m.list.SetSize(m.width-formWidth-1, max(m.height-chromeLines, 4))
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	header := styles.TitleStyle.Render("roster")
	if m.cfg.UI.ShowCounter {
		header += "  " + styles.StatusBarStyle.Render(fmt.Sprintf("Registered: %d", m.count))
	}
	header += "  " + styles.HelpStyle.Render("filter: "+m.ctrl.Selected())

	var body string
	if m.stacked {
		body = lipgloss.JoinVertical(lipgloss.Left, m.form.View(), m.list.View())
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.form.View(), " ", m.list.View())
	}

	var helpView string
	if m.focus == focusForm {
		helpView = m.help.View(keys.FormHelp{})
	} else {
		helpView = m.help.View(keys.ListHelp{})
	}

	view := header + "\n\n" + body + "\n" + helpView

	switch {
	case m.modalOpen:
		view = m.modal.Overlay(view)
	case m.pickerOpen:
		view = m.picker.Overlay(view)
	}
	view = m.toaster.Overlay(view, m.width, m.height)
	if m.debug {
		view = m.logs.Overlay(view)
	}
	return zone.Scan(view)
}

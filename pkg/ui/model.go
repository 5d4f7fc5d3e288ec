// Package ui hosts the panel navigator in a terminal with bubbletea.
//
// The terminal is the navigator's viewport: its width decides between the
// pinned horizontal track and the stacked fallback, the mouse wheel and
// j/k keys scroll it, and each tea frame applies the engine's Frame.
package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/panelnav/pkg/config"
	"github.com/Dicklesworthstone/panelnav/pkg/history"
	"github.com/Dicklesworthstone/panelnav/pkg/model"
	"github.com/Dicklesworthstone/panelnav/pkg/nav"
)

// FrameMsg is the paint tick that drives Instance.Frame.
type FrameMsg time.Time

// ReloadMsg carries panels re-read from the content file.
type ReloadMsg struct {
	Panels []model.PanelRecord
	Err    error
}

// NavigateMsg asks the host's routing layer to follow a panel's call to
// action.
type NavigateMsg struct {
	Target string
	Panel  model.PanelRecord
}

// Options configures a Model.
type Options struct {
	// Title is shown in the intro rows above the section.
	Title string
	// Source identifies the content for history; usually its path.
	Source string
	Config *config.Config
	// History, when set, is used to resume and is updated on quit.
	History *history.DB
	// StartIndex jumps to a panel once the first frame lands; -1 resumes
	// from History, or starts at the top when there is none.
	StartIndex int
	// Clipboard copies navigation targets when true.
	Clipboard bool
	Renderer  *lipgloss.Renderer
}

// Model is the bubbletea model hosting one navigator instance.
type Model struct {
	host   *termHost
	inst   *nav.Instance
	cfg    *config.Config
	theme  Theme
	render *panelRenderer

	keys        KeyMap
	help        help.Model
	helpOverlay HelpOverlayModel
	search      SearchModel
	searching   bool

	title     string
	source    string
	history   *history.DB
	clipboard bool
	resume    int

	width, height int
	status        string
	ready         bool
	ticking       bool
	quitting      bool
}

// NewModel mounts a navigator over panels. The navigator starts with a
// zero viewport and is measured on the first tea.WindowSizeMsg.
func NewModel(panels []model.PanelRecord, opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	theme := DefaultTheme(renderer)
	keys := DefaultKeyMap()

	m := Model{
		cfg:         cfg,
		theme:       theme,
		render:      newPanelRenderer(theme),
		keys:        keys,
		help:        help.New(),
		helpOverlay: NewHelpOverlayModel(theme, keys),
		search:      NewSearchModel(theme),
		title:       opts.Title,
		source:      opts.Source,
		history:     opts.History,
		clipboard:   opts.Clipboard,
		resume:      opts.StartIndex,
	}
	if m.title == "" {
		m.title = "Panels"
	}
	if m.resume < 0 && m.history != nil && m.source != "" {
		if pos, ok, err := m.history.Load(m.source); err != nil {
			log.Printf("[ui] history load %s: %v", m.source, err)
		} else if ok {
			m.resume = history.ResumeIndex(pos, panels)
			log.Printf("[ui] resuming %s at panel %d", m.source, m.resume)
		}
	}

	m.host = &termHost{render: m.render}
	m.inst = nav.New(m.host, panels, cfg.NavOptions()...)
	m.host.inst = m.inst
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Instance exposes the navigator, mainly for tests and robot output.
func (m Model) Instance() *nav.Instance { return m.inst }

// Status returns the transient status line.
func (m Model) Status() string { return m.status }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)

	case FrameMsg:
		m.ticking = false
		m.inst.Frame(time.Time(msg))
		if m.ready && m.resume >= 0 && len(m.inst.Panels()) > 0 {
			m.jumpTo(m.resume)
			m.resume = -1
		}

	case ReloadMsg:
		if msg.Err != nil {
			m.status = "reload failed: " + msg.Err.Error()
			log.Printf("[ui] reload: %v", msg.Err)
			break
		}
		m.render.reset()
		m.inst.SetPanels(msg.Panels)
		m.host.offset = m.host.clamp(m.host.offset)
		m.status = fmt.Sprintf("reloaded %d panels", len(msg.Panels))
		log.Printf("[ui] reloaded %d panels, mode %s", len(msg.Panels), m.inst.Mode())

	case NavigateMsg:
		m.navigate(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.scrollBy(float64(m.cfg.Scroll.Step))
		case tea.MouseButtonWheelUp:
			m.scrollBy(-float64(m.cfg.Scroll.Step))
		}

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if cmd := m.scheduleFrame(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.searching {
		done, idx, cmd := m.search.Update(msg)
		if done {
			m.searching = false
			if idx >= 0 {
				m.jumpTo(idx)
			}
		}
		return cmd
	}
	if m.helpOverlay.IsVisible() {
		m.helpOverlay, _ = m.helpOverlay.Update(msg)
		return nil
	}

	m.status = ""
	ctrl := m.inst.Controls()
	n := len(m.inst.Panels())

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.helpOverlay.Toggle()
	case key.Matches(msg, m.keys.Search):
		if n == 0 {
			return nil
		}
		m.searching = true
		return m.search.Open(m.inst.Panels())
	case key.Matches(msg, m.keys.Prev):
		ctrl.Prev()
	case key.Matches(msg, m.keys.Next):
		ctrl.Next()
	case key.Matches(msg, m.keys.First):
		m.jumpTo(0)
	case key.Matches(msg, m.keys.Last):
		m.jumpTo(n - 1)
	case key.Matches(msg, m.keys.Jump):
		if i := int(msg.Runes[0] - '1'); i < n {
			m.jumpTo(i)
		}
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(float64(m.cfg.Scroll.Step))
	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-float64(m.cfg.Scroll.Step))
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(float64(m.cfg.Scroll.PageStep))
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-float64(m.cfg.Scroll.PageStep))
	case key.Matches(msg, m.keys.Follow):
		return m.follow()
	}
	return nil
}

func (m *Model) setSize(width, height int) {
	m.width, m.height = width, height
	vh := height - ControlBarHeight
	if vh < MinContentHeight {
		vh = MinContentHeight
	}
	m.host.width, m.host.height = width, vh
	m.help.Width = width
	m.helpOverlay.SetSize(width, height)
	m.ready = true
	m.inst.Resize()
	m.host.offset = m.host.clamp(m.host.offset)
}

// scrollBy is direct user scrolling; it cancels any jump in flight.
func (m *Model) scrollBy(delta float64) {
	m.host.offset = m.host.clamp(m.host.offset + delta)
	m.inst.UserScroll()
}

// jumpTo goes to panel i. Pinned mode animates through the controller;
// stacked mode has no controls, so the host scrolls the panel into view.
func (m *Model) jumpTo(i int) {
	if m.inst.Mode() == model.ModePinned {
		m.inst.Controls().Jump(i)
		return
	}
	if top, ok := m.host.panelTop(i); ok {
		m.host.offset = m.host.clamp(top)
		m.inst.UserScroll()
	}
}

// currentIndex is the panel the user is looking at in either mode.
func (m *Model) currentIndex() int {
	if m.inst.Mode() == model.ModePinned {
		return m.inst.Controls().ActiveIndex()
	}
	return m.host.stackedIndex()
}

func (m *Model) follow() tea.Cmd {
	panels := m.inst.Panels()
	i := m.currentIndex()
	if i < 0 || i >= len(panels) || panels[i].NavigationTarget == "" {
		return nil
	}
	p := panels[i]
	return func() tea.Msg {
		return NavigateMsg{Target: p.NavigationTarget, Panel: p}
	}
}

func (m *Model) navigate(msg NavigateMsg) {
	log.Printf("[ui] navigate %q from panel %q", msg.Target, msg.Panel.Title)
	if !m.clipboard {
		m.status = "link: " + msg.Target
		return
	}
	if err := clipboard.WriteAll(msg.Target); err != nil {
		log.Printf("[ui] clipboard: %v", err)
		m.status = "link: " + msg.Target
		return
	}
	m.status = "copied " + msg.Target
}

func (m *Model) quit() {
	m.quitting = true
	m.savePosition()
	m.inst.Close()
}

func (m *Model) savePosition() {
	if m.history == nil || m.source == "" {
		return
	}
	panels := m.inst.Panels()
	i := m.currentIndex()
	if i < 0 || i >= len(panels) {
		return
	}
	state := model.NavigationState{ActiveIndex: i, Progress: m.inst.State().Progress}
	if err := m.history.Save(m.source, panels[i].ID, state); err != nil {
		log.Printf("[ui] history save: %v", err)
	}
}

// scheduleFrame turns the navigator's frame request into a tea tick. At
// most one tick is outstanding.
func (m *Model) scheduleFrame() tea.Cmd {
	if !m.host.frameRequested || m.ticking || m.quitting {
		return nil
	}
	m.host.frameRequested = false
	m.ticking = true
	return tea.Tick(m.cfg.Nav.FrameInterval.Duration, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

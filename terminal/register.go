// Package terminal is the keyboard-driven register UI. It follows The Elm
// Architecture via bubbletea: keystrokes become messages, the debouncer
// settles queries after a quiet interval and the controller decides what
// lands in the cart.
package terminal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogEntity "meezy.GO/model/entity/catalog"
	"meezy.GO/service/cart"
	"meezy.GO/service/catalog"
	"meezy.GO/service/debounce"
	"meezy.GO/service/pos"
)

const resolveTimeout = 20 * time.Second

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("55")).Padding(0, 1)
	resultStyle  = lipgloss.NewStyle().PaddingLeft(2)
	pickedStyle  = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("212")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	flashStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	cartBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	totalStyle   = lipgloss.NewStyle().Bold(true)
)

// DebounceMsg carries a settled or inactive query from the debouncer into
// the message loop. The program entry pumps these via Program.Send.
type DebounceMsg struct {
	Event debounce.Event
}

type resolvedMsg struct {
	res catalog.Resolution
}

type clearMsg struct {
	gen uint64
}

// Model is the register's whole screen state.
type Model struct {
	input    textinput.Model
	deb      *debounce.Debouncer
	resolver *catalog.Resolver
	register *pos.Controller
	cart     *cart.Store

	resetDelay time.Duration
	resetGen   uint64 // invalidates pending post-add clears

	active  bool
	items   []catalogEntity.Item
	outcome catalog.Outcome
	lastRes catalog.Resolution
	flash   string
	warning string

	width int
}

// NewModel wires the register UI. The controller is used without its own
// timers; delayed clears run through the bubbletea message loop so they can
// be cancelled by the next keystroke.
func NewModel(resolver *catalog.Resolver, store *cart.Store, deb *debounce.Debouncer) Model {
	ti := textinput.New()
	ti.Placeholder = "scan barcode or type to search"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 48

	return Model{
		input:      ti,
		deb:        deb,
		resolver:   resolver,
		register:   pos.NewController(store, nil, nil),
		cart:       store,
		resetDelay: pos.DefaultResetDelay,
		outcome:    catalog.OutcomeOK,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.commit()
		case tea.KeyCtrlL:
			m.cart.Clear()
			m.flash = "cart cleared"
			return m, nil
		}
		return m.keystroke(msg)

	case DebounceMsg:
		if !msg.Event.Active {
			m.active = false
			m.items = nil
			m.lastRes = catalog.Resolution{}
			return m, nil
		}
		return m, m.resolveCmd(msg.Event.Query)

	case resolvedMsg:
		return m.settled(msg.res)

	case clearMsg:
		if msg.gen != m.resetGen {
			return m, nil
		}
		return m.resetSearch(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// keystroke feeds the input to the debouncer and invalidates any pending
// post-add clear: a cashier who has started the next query must not have it
// wiped from under them.
func (m Model) keystroke(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	m.resetGen++
	m.flash = ""
	m.warning = ""
	m.deb.Feed(m.input.Value())
	return m, cmd
}

func (m Model) resolveCmd(query string) tea.Cmd {
	resolver := m.resolver
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()
		return resolvedMsg{res: resolver.Resolve(ctx, query)}
	}
}

// settled applies a finished resolution: stale ones are dropped, current
// ones update the result list and may auto-add through the controller.
func (m Model) settled(res catalog.Resolution) (tea.Model, tea.Cmd) {
	if !m.resolver.Deliver(res) {
		return m, nil
	}
	m.active = true
	m.items = res.Items
	m.outcome = res.Outcome
	m.lastRes = res

	d := m.register.HandleSettled(res)
	switch d.Action {
	case pos.ActionAdded:
		m.flash = fmt.Sprintf("added %s  %.2f", d.Item.Title, d.Item.Price)
		m.resetGen++
		gen := m.resetGen
		return m, tea.Tick(m.resetDelay, func(time.Time) tea.Msg {
			return clearMsg{gen: gen}
		})
	case pos.ActionAlreadyInCart:
		m.warning = d.Item.Title + " is already in the cart"
	case pos.ActionBlockedPrice:
		m.warning = d.Item.Title + " has no price"
	case pos.ActionBlockedStock:
		m.warning = d.Item.Title + " is out of stock"
	}
	return m, nil
}

// commit is the Enter key: take the first listed item right now.
func (m Model) commit() (tea.Model, tea.Cmd) {
	d := m.register.HandleCommit(m.lastRes)
	switch d.Action {
	case pos.ActionAdded:
		m.flash = fmt.Sprintf("added %s  %.2f", d.Item.Title, d.Item.Price)
		return m.resetSearch(), nil
	case pos.ActionNotFound:
		m.warning = "nothing to add"
	case pos.ActionBlockedPrice:
		m.warning = d.Item.Title + " has no price"
	case pos.ActionBlockedStock:
		m.warning = d.Item.Title + " is out of stock"
	}
	return m, nil
}

func (m Model) resetSearch() Model {
	m.resetGen++
	m.input.SetValue("")
	m.active = false
	m.items = nil
	m.lastRes = catalog.Resolution{}
	m.deb.Stop()
	return m
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("MEEZY POS"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.flash != "":
		b.WriteString(flashStyle.Render(m.flash))
		b.WriteString("\n")
	case m.warning != "":
		b.WriteString(warnStyle.Render(m.warning))
		b.WriteString("\n")
	}

	b.WriteString(m.resultsView())
	b.WriteString("\n")
	b.WriteString(m.cartView())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter take first · ctrl+l void sale · esc quit"))
	return b.String()
}

func (m Model) resultsView() string {
	if !m.active {
		return mutedStyle.Render("keep typing to search")
	}
	switch m.outcome {
	case catalog.OutcomeConnectivity:
		return warnStyle.Render("backend unreachable")
	case catalog.OutcomeServer:
		return warnStyle.Render("backend error")
	}
	if len(m.items) == 0 {
		return mutedStyle.Render("no matches")
	}

	var b strings.Builder
	for i, it := range m.items {
		if i >= 8 {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  … %d more", len(m.items)-i)))
			b.WriteString("\n")
			break
		}
		line := fmt.Sprintf("%-32s %-14s %8.2f", clip(it.Title, 32), it.Code(), it.Price)
		if i == 0 {
			b.WriteString(pickedStyle.Render(line))
		} else {
			b.WriteString(resultStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) cartView() string {
	lines := m.cart.Lines()
	if len(lines) == 0 {
		return cartBoxStyle.Render(mutedStyle.Render("cart is empty"))
	}
	var b strings.Builder
	for _, l := range lines {
		title := l.Item.Title
		if l.IsCustom() && l.Size != "" {
			title += " (" + l.Size + ")"
		}
		b.WriteString(fmt.Sprintf("%d × %-30s %8.2f\n", l.Quantity, clip(title, 30), l.Subtotal()))
	}
	b.WriteString(totalStyle.Render(fmt.Sprintf("%-34s %8.2f", "TOTAL", m.cart.Total())))
	return cartBoxStyle.Render(b.String())
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

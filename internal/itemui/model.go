// Package itemui provides the Bubble Tea item browser.
package itemui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/itemstats/internal/inventory"
	"github.com/verte-zerg/itemstats/internal/model"
	"github.com/verte-zerg/itemstats/internal/stats"
)

const (
	tabItems = iota
	tabStats
	tabPlugs
	tabCurve
)

const (
	plotHeight    = 10
	valueWidth    = 6
	maxNameWidth  = 24
	defaultWidth  = 80
	noSelection   = -1
	noItemsBanner = "No items found."
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	warnStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	tableMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Catalog resolves the definitions the browser displays.
type Catalog interface {
	Item(hash uint32) (*model.ItemDefinition, bool)
	Stat(hash model.StatHash) (*model.StatDefinition, bool)
	StatGroup(hash uint32) (*model.StatGroupDefinition, bool)
}

// Options configures the browser.
type Options struct {
	BarWidth int
}

// Model implements the Bubble Tea item browser.
type Model struct {
	catalog Catalog
	opts    Options
	results []inventory.Result

	// visible indexes results that pass the filter, in table order.
	visible   []int
	selected  int
	curveStat int

	tabs      []string
	activeTab int
	viewports []viewport.Model
	itemTable table.Model

	width  int
	height int

	filterMode  bool
	filterInput textinput.Model
	filter      string
	errMsg      string
}

// NewModel constructs a browser over built inventory results.
func NewModel(results []inventory.Result, catalog Catalog, opts Options) *Model {
	m := &Model{
		catalog:  catalog,
		opts:     opts,
		results:  results,
		selected: noSelection,
		tabs:     []string{"Items", "Stats", "Plugs", "Curve"},
	}
	m.filterInput = newFilterInput("Filter: ")
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.itemTable = table.New(table.WithColumns(itemColumns(defaultWidth)), table.WithFocused(true))
	m.itemTable.SetStyles(itemTableStyles())
	m.applyFilter("")
	if len(m.visible) > 0 {
		m.selected = m.visible[0]
	}
	m.renderTabContents()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			return m.startFilter()
		case "enter":
			if m.activeTab == tabItems {
				m.selectCursor()
				m.activeTab = tabStats
				m.itemTable.Blur()
				return m, tea.ClearScreen
			}
			return m, nil
		case "[":
			m.moveCurveStat(-1)
			return m, nil
		case "]":
			m.moveCurveStat(1)
			return m, nil
		case "g", "home":
			if m.activeTab == tabItems {
				m.itemTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabItems {
				m.itemTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabItems {
				var cmd tea.Cmd
				m.itemTable, cmd = m.itemTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.itemTable.SetColumns(itemColumns(m.width))
	m.itemTable.SetWidth(m.width)
	m.itemTable.SetHeight(max(1, bodyHeight-1))
	m.filterInput.Width = max(10, m.width-lipgloss.Width(m.filterInput.Prompt)-2)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabItems {
		m.itemTable.Focus()
	} else {
		m.itemTable.Blur()
	}
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterInput.SetValue(m.filter)
	m.filterInput.CursorEnd()
	return m, m.filterInput.Focus()
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.filterMode = false
		m.filterInput.Blur()
		m.applyFilter(m.filterInput.Value())
		m.activeTab = tabItems
		m.itemTable.Focus()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// applyFilter keeps items whose name, ID or type contains the query.
func (m *Model) applyFilter(query string) {
	m.filter = strings.TrimSpace(query)
	needle := strings.ToLower(m.filter)
	m.visible = m.visible[:0]
	for i, r := range m.results {
		item := r.Entry.Item
		haystack := strings.ToLower(item.Name + " " + item.ID + " " + string(item.Type))
		if needle == "" || strings.Contains(haystack, needle) {
			m.visible = append(m.visible, i)
		}
	}
	m.itemTable.SetRows(itemRows(m.results, m.visible))
	m.itemTable.GotoTop()
	if len(m.visible) == 0 && m.filter != "" {
		m.errMsg = fmt.Sprintf("No items match %q.", m.filter)
	} else {
		m.errMsg = ""
	}
}

func (m *Model) selectCursor() {
	cur := m.itemTable.Cursor()
	if cur < 0 || cur >= len(m.visible) {
		return
	}
	m.selected = m.visible[cur]
	m.curveStat = 0
	m.renderTabContents()
}

func (m *Model) moveCurveStat(delta int) {
	displays := m.curveDisplays()
	if len(displays) == 0 {
		return
	}
	m.curveStat = (m.curveStat + delta + len(displays)) % len(displays)
	m.renderTabContents()
}

func (m *Model) current() (inventory.Result, bool) {
	if m.selected < 0 || m.selected >= len(m.results) {
		return inventory.Result{}, false
	}
	return m.results[m.selected], true
}

// curveDisplays returns the interpolated stat displays of the selected
// item, in its stat order.
func (m *Model) curveDisplays() []model.StatDisplay {
	r, ok := m.current()
	if !ok || r.Entry.Def == nil || r.Entry.Def.Stats == nil {
		return nil
	}
	group, ok := m.catalog.StatGroup(r.Entry.Def.Stats.StatGroupHash)
	if !ok {
		return nil
	}
	byHash := make(map[model.StatHash]model.StatDisplay, len(group.ScaledStats))
	for _, d := range group.ScaledStats {
		if len(d.DisplayInterpolation) > 0 {
			byHash[d.StatHash] = d
		}
	}
	var out []model.StatDisplay
	for _, s := range r.Stats {
		if d, ok := byHash[s.StatHash]; ok {
			out = append(out, d)
		}
	}
	return out
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	return tabs + "\n" + padLines(m.renderSummary(), m.width)
}

func (m *Model) renderSummary() string {
	filter := m.filter
	if filter == "" {
		filter = "none"
	}
	name := "none"
	if r, ok := m.current(); ok {
		name = r.Entry.Item.Name
	}
	summary := fmt.Sprintf("Items: %d/%d  filter=%s  selected=%s", len(m.visible), len(m.results), filter, name)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Select: enter  Filter: /  Quit: q"
	switch m.activeTab {
	case tabStats, tabPlugs:
		help = "Nav: left/right  Scroll: up/down/pgup/pgdn  Filter: /  Quit: q"
	case tabCurve:
		help = "Nav: left/right  Stat: [/]  Scroll: up/down  Filter: /  Quit: q"
	}
	return headerStyle.Render(help)
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("enter: apply  esc: cancel")
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.filterInput.View(), m.width, height)
	}
	if m.activeTab == tabItems {
		if len(m.results) == 0 {
			return fitLines(noItemsBanner, m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.itemTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	r, ok := m.current()
	if !ok {
		for i := range m.viewports {
			m.viewports[i].SetContent(noItemsBanner)
		}
		return
	}
	m.viewports[tabStats].SetContent(renderStats(r, m.opts.BarWidth, width))
	m.viewports[tabPlugs].SetContent(m.renderPlugs(r))
	m.viewports[tabCurve].SetContent(m.renderCurve(width))
}

func renderStats(r inventory.Result, barWidth, width int) string {
	item := r.Entry.Item
	lines := []string{titleStyle.Render(itemTitle(item))}
	if r.Entry.Def != nil && r.Entry.Def.DisplayProperties.Description != "" {
		lines = append(lines, wrapText(r.Entry.Def.DisplayProperties.Description, descriptionStyle, width))
	}
	lines = append(lines, "")
	if len(r.Stats) == 0 {
		return strings.Join(append(lines, "No stats."), "\n")
	}

	names := make([]string, len(r.Stats))
	for i, s := range r.Stats {
		names[i] = stats.StatName(s)
	}
	nameWidth := nameColumnWidth(names, maxNameWidth)
	mayBeWrong := false
	for i, s := range r.Stats {
		bar := ""
		if s.Bar {
			bar = stats.Bar(s.Value, s.MaximumValue, barWidth)
		}
		base := ""
		if s.Base != s.Value {
			base = "base " + strconv.Itoa(s.Base)
		}
		line := statLine(names[i], nameWidth, stats.FormatValue(s), bar, base)
		if s.StatMayBeWrong {
			line = warnStyle.Render(line)
			mayBeWrong = true
		}
		lines = append(lines, line)
	}
	if mayBeWrong {
		lines = append(lines, "", wrapText("* A negative mod may have hidden part of this stat's base value.", warnStyle, width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderPlugs(r inventory.Result) string {
	if len(r.PlugStats) == 0 {
		return "No plug stats."
	}
	var buf bytes.Buffer
	err := stats.RenderPlugStats(&buf, r.PlugStats, m.plugName, m.statName)
	if err != nil {
		return fmt.Sprintf("Failed to render plugs: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) renderCurve(width int) string {
	displays := m.curveDisplays()
	if len(displays) == 0 {
		return "No interpolated stats."
	}
	d := displays[min(m.curveStat, len(displays)-1)]
	title := fmt.Sprintf("%s (%d/%d)", m.statName(d.StatHash), m.curveStat+1, len(displays))
	var buf bytes.Buffer
	if err := stats.RenderCurve(&buf, title, &d, stats.PlotWidthFor(width), plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render curve: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) plugName(hash uint32) string {
	if def, ok := m.catalog.Item(hash); ok && def.DisplayProperties.Name != "" {
		return def.DisplayProperties.Name
	}
	return fmt.Sprintf("#%d", hash)
}

func (m *Model) statName(hash model.StatHash) string {
	if def, ok := m.catalog.Stat(hash); ok && def.DisplayProperties.Name != "" {
		return def.DisplayProperties.Name
	}
	return fmt.Sprintf("#%d", hash)
}

func itemTitle(item *model.Item) string {
	title := item.Name
	if item.Type != model.ItemTypeUnknown {
		title += " · " + string(item.Type)
	}
	if item.ID != "" {
		title += " · " + item.ID
	}
	return title
}

func itemColumns(width int) []table.Column {
	fixed := 12 + 8 + 6 + 4
	return []table.Column{
		{Title: "Item", Width: max(16, width-fixed)},
		{Title: "Type", Width: 12},
		{Title: "Class", Width: 8},
		{Title: "Total", Width: 6},
	}
}

func itemRows(results []inventory.Result, visible []int) []table.Row {
	rows := make([]table.Row, 0, len(visible))
	for _, idx := range visible {
		r := results[idx]
		total := "-"
		for _, s := range r.Stats {
			if s.StatHash == model.StatTotal {
				total = stats.FormatValue(s)
			}
		}
		itemType := string(r.Entry.Item.Type)
		if itemType == "" {
			itemType = "-"
		}
		rows = append(rows, table.Row{r.Entry.Item.Name, itemType, r.Entry.Item.ClassType.String(), total})
	}
	return rows
}

func itemTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

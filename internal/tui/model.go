// Package tui is a terminal browser for the roadmap. It drives the same
// roadmap.View as the web page: the list is the scrolling page, moving the
// cursor scrolls it and reveals nodes, and the detail box is the modal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vacmar/portfolio/internal/roadmap"
)

// Map grid size in cells.
const (
	mapCols = 40
	mapRows = 20
)

// Viewport span limits, in logical units.
const (
	minSpan     = 20.0
	maxSpan     = roadmap.SurfaceSize
	defaultSpan = 40.0
	unitsPerRow = 2.5
)

// scrollMsg arrives when the view asks for the canvas to be scrolled into
// view after a filter change.
type scrollMsg struct{}

// Model is the bubbletea model of the roadmap browser.
type Model struct {
	view     *roadmap.View
	doc      *listDocument
	keys     KeyMap
	help     help.Model
	bar      progress.Model
	scrolls  chan struct{}
	done     chan struct{}
	cursor   int
	link     int
	span     float64
	width    int
	height   int
	quitting bool
}

// New mounts a view on store. Labels always show, as on a touch device.
func New(store *roadmap.Store, opts roadmap.Options) Model {
	m := Model{
		doc:     &listDocument{},
		keys:    DefaultKeyMap(),
		help:    help.New(),
		bar:     progress.New(progress.WithSolidFill(roadmap.ProjectAccent), progress.WithWidth(30)),
		scrolls: make(chan struct{}, 1),
		done:    make(chan struct{}),
		span:    defaultSpan,
	}

	opts.Document = m.doc
	opts.Touch = true
	scrolls := m.scrolls
	opts.Scroller = func() {
		select {
		case scrolls <- struct{}{}:
		default:
		}
	}
	if opts.Tracker.Observer == (roadmap.ObserverOptions{}) {
		opts.Tracker.Observer = roadmap.ObserverOptions{Threshold: 0.3, RootMargin: 2}
	}

	m.view = roadmap.NewView(store, opts)
	m.view.Resize(roadmap.Rect{Width: roadmap.SurfaceSize, Height: roadmap.SurfaceSize})
	m.report()
	return m
}

// RoadmapView returns the underlying roadmap view.
func (m Model) RoadmapView() *roadmap.View { return m.view }

// Init waits for scroll requests.
func (m Model) Init() tea.Cmd { return m.waitForScroll() }

func (m Model) waitForScroll() tea.Cmd {
	scrolls, done := m.scrolls, m.done
	return func() tea.Msg {
		select {
		case <-scrolls:
			return scrollMsg{}
		case <-done:
			return nil
		}
	}
}

// Update handles keys, resizes and scroll requests.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.span = spanFor(msg.Height)
		m.report()

	case scrollMsg:
		m.cursor = 0
		m.doc.scroll(0)
		if nodes := m.view.FilteredNodes(); len(nodes) > 0 {
			m.follow(nodes[0])
		}
		m.report()
		return m, m.waitForScroll()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.view.Unmount()
		close(m.done)
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if _, open := m.view.Selected(); open {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.All):
		m.view.SetFilter(roadmap.FilterAll)
	case key.Matches(msg, m.keys.Learning):
		m.view.SetFilter(roadmap.FilterLearning)
	case key.Matches(msg, m.keys.Projects):
		m.view.SetFilter(roadmap.FilterProject)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Open):
		nodes := m.view.FilteredNodes()
		if m.cursor < len(nodes) {
			m.open(nodes[m.cursor].ID)
		}
	}
	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	links := m.view.Links()
	switch {
	case key.Matches(msg, m.keys.Back):
		m.view.CloseModal()
		m.report()
	case key.Matches(msg, m.keys.Prev):
		if m.link > 0 {
			m.link--
		}
	case key.Matches(msg, m.keys.Next):
		if m.link < len(links)-1 {
			m.link++
		}
	case key.Matches(msg, m.keys.Open):
		if m.link < len(links) {
			m.open(links[m.link].ID)
		}
	}
	return m, nil
}

func (m *Model) open(id int) {
	if err := m.view.Select(id); err != nil {
		return
	}
	m.link = 0
}

// moveCursor steps through the filtered list.
func (m *Model) moveCursor(delta int) {
	nodes := m.view.FilteredNodes()
	if len(nodes) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(nodes)-1)
	m.follow(nodes[m.cursor])
}

// follow scrolls so n sits inside the viewport.
func (m *Model) follow(n roadmap.Node) {
	y := n.Position.Y
	top := float64(m.doc.top())
	if y >= top && y <= top+m.span {
		return
	}
	next := min(max(y-m.span/2, 0), maxSpan-m.span)
	if m.doc.scroll(int(next)) {
		m.report()
	}
}

// report tells the view where the list is scrolled to.
func (m *Model) report() {
	m.view.Scroll(roadmap.Rect{
		Top:    float64(m.doc.top()),
		Width:  roadmap.SurfaceSize,
		Height: m.span,
	})
}

// spanFor converts a terminal height into a viewport span.
func spanFor(rows int) float64 {
	return min(max(float64(rows)*unitsPerRow, minSpan), maxSpan)
}

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("My Learning Journey & Project Roadmap"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n\n")

	scene := m.view.Scene()
	if n, open := m.view.Selected(); open {
		b.WriteString(m.renderModal(n))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			styleMap.Render(m.renderMap(scene)),
			"  ",
			m.renderList(scene),
		))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderTabs() string {
	active := m.view.Filter()
	store := m.view.Store()
	tabs := make([]string, 0, len(roadmap.Filters))
	for i, f := range roadmap.Filters {
		label := fmt.Sprintf("%d %s (%d)", i+1, f.Label(), len(store.Filter(f)))
		if f == active {
			tabs = append(tabs, styleTabActive.Render(label))
		} else {
			tabs = append(tabs, styleTab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStats() string {
	st := m.view.Stats()
	return strings.Join([]string{
		statusStyle(roadmap.StatusCompleted).Render(fmt.Sprintf("%d Completed", st.Completed)),
		statusStyle(roadmap.StatusCurrent).Render(fmt.Sprintf("%d In Progress", st.Current)),
		statusStyle(roadmap.StatusPlanned).Render(fmt.Sprintf("%d Planned", st.Planned)),
	}, styleMuted.Render(" · "))
}

// renderMap draws node markers on a coarse grid. The rows currently inside
// the viewport carry a gutter mark.
func (m Model) renderMap(scene roadmap.Scene) string {
	grid := make([][]string, mapRows)
	for r := range grid {
		grid[r] = make([]string, mapCols)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}

	nodes := m.view.FilteredNodes()
	current := 0
	if m.cursor < len(nodes) {
		current = nodes[m.cursor].ID
	}
	for _, mark := range scene.Nodes {
		col := min(int(mark.At.X*mapCols/roadmap.SurfaceSize), mapCols-1)
		row := min(int(mark.At.Y*mapRows/roadmap.SurfaceSize), mapRows-1)
		switch {
		case !mark.Revealed:
			grid[row][col] = styleMuted.Render("·")
		case mark.ID == current:
			grid[row][col] = statusStyle(mark.Status).Bold(true).Render("◉")
		case mark.Kind == roadmap.KindProject:
			grid[row][col] = statusStyle(mark.Status).Render("★")
		default:
			grid[row][col] = statusStyle(mark.Status).Render("●")
		}
	}

	top := float64(m.doc.top())
	lines := make([]string, mapRows)
	for r, cells := range grid {
		y := (float64(r) + 0.5) * roadmap.SurfaceSize / mapRows
		gutter := " "
		if y >= top && y <= top+m.span {
			gutter = styleMuted.Render("▏")
		}
		lines[r] = gutter + strings.Join(cells, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderList(scene roadmap.Scene) string {
	details := make(map[int]string, len(scene.Labels))
	for _, l := range scene.Labels {
		details[l.NodeID] = l.Detail
	}

	nodes := m.view.FilteredNodes()
	lines := make([]string, 0, len(nodes))
	for i, n := range nodes {
		mark := scene.Nodes[i]
		prefix := "  "
		if i == m.cursor {
			prefix = selectionIndicator + " "
		}

		var line string
		if mark.Revealed {
			line = fmt.Sprintf("%s %s  %s",
				statusStyle(n.Status).Render(mark.Glyph),
				n.Title,
				styleMuted.Render(details[n.ID]))
		} else {
			line = styleMuted.Render(fmt.Sprintf("%s %s", mark.Glyph, n.Title))
		}
		if i == m.cursor {
			line = styleSelected.Render(line)
		}
		lines = append(lines, prefix+line)
	}
	return strings.Join(lines, "\n")
}

// renderModal draws the detail box for n.
func (m Model) renderModal(n roadmap.Node) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(roadmap.AccentColor(n))).Render(n.Title))
	b.WriteString("\n")
	badges := []string{statusStyle(n.Status).Render(n.Status.Label()), styleChip.Render(n.Category)}
	if n.Duration != "" {
		badges = append(badges, styleMuted.Render(n.Duration))
	}
	if n.Date != "" {
		badges = append(badges, styleMuted.Render(n.Date))
	}
	b.WriteString(strings.Join(badges, " "))
	b.WriteString("\n\n")
	b.WriteString(n.Description)
	b.WriteString("\n")

	if n.HasProgress() {
		b.WriteString(styleSection.Render("Progress"))
		b.WriteString("\n")
		b.WriteString(m.bar.ViewAs(float64(n.ProgressPercent()) / 100))
		b.WriteString("\n")
	}
	writeList(&b, "Key Features", n.Features)
	writeList(&b, "Tech Stack", n.TechStack)
	if !n.IsProject() {
		writeList(&b, "Skills", n.Skills)
	}
	if n.HasLinks() {
		b.WriteString(styleSection.Render("Links"))
		b.WriteString("\n")
		if n.GitHub != "" {
			b.WriteString("GitHub: " + n.GitHub + "\n")
		}
		if n.Demo != "" {
			b.WriteString("Live Demo: " + n.Demo + "\n")
		}
	}

	if links := m.view.Links(); len(links) > 0 {
		b.WriteString(styleSection.Render("Connected To"))
		b.WriteString("\n")
		chips := make([]string, 0, len(links))
		for i, l := range links {
			chip := statusStyle(l.Status).Render("● ") + l.Title
			if i == m.link {
				chip = styleSelected.Render(selectionIndicator + chip)
			}
			chips = append(chips, chip)
		}
		b.WriteString(strings.Join(chips, "   "))
	}

	box := styleModal.BorderForeground(lipgloss.Color(roadmap.AccentColor(n)))
	if m.width > 4 {
		box = box.Width(m.width - 4)
	}
	return box.Render(b.String())
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(styleSection.Render(title))
	b.WriteString("\n")
	for _, it := range items {
		b.WriteString("• " + it + "\n")
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mmcdole/photodeck/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	layout := m.calculateLayout()

	sections := []string{m.renderHeader(), m.renderSearchBar()}
	if m.bannerVisible() {
		sections = append(sections, m.renderBanner())
	}

	content := lipgloss.Place(layout.mainWidth, layout.height,
		lipgloss.Left, lipgloss.Top, m.renderContent(layout))
	if layout.inspectorWidth > 0 {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.Inspector.View())
	}
	sections = append(sections, content, m.renderFooter())

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Overlay album picker if visible
	if m.AlbumPicker.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.AlbumPicker.View())
	}

	// Overlay sort modal if visible
	if m.SortModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SortModal.View())
	}

	// Overlay bulk modal if visible
	if m.BulkModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.BulkModal.View())
	}

	return view
}

// renderContent renders the active view or one of the whole-screen states
func (m Model) renderContent(layout contentLayout) string {
	switch {
	case m.pager.IsLoading():
		return m.centered(layout,
			RenderSpinner(m.SpinnerFrame)+" "+styles.DimStyle.Render("Loading photos..."))

	case m.pager.IsError() && m.pager.Len() == 0:
		return m.centered(layout,
			styles.ErrorStyle.Render("Could not load photos")+"\n"+
				styles.DimStyle.Render("Press r to retry"))

	case m.pager.IsEmpty():
		return m.centered(layout,
			styles.TitleStyle.Render("No photos found")+"\n"+
				styles.DimStyle.Render("Try adjusting your search or filters"))
	}

	if m.Mode == ModeTable {
		return m.Table.View()
	}
	return m.Grid.View()
}

func (m Model) centered(layout contentLayout, s string) string {
	return lipgloss.Place(layout.mainWidth, layout.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, strings.Split(s, "\n")...))
}

// renderHeader renders the title line: view tabs, counts and active filters
func (m Model) renderHeader() string {
	grid, table := styles.DimChipStyle, styles.DimChipStyle
	if m.Mode == ModeGrid {
		grid = styles.ChipStyle
	} else {
		table = styles.ChipStyle
	}
	left := styles.TitleStyle.Render("PhotoDeck") + " " +
		grid.Render("Grid") + table.Render("Table")

	var info []string
	if total := m.pager.Total(); total > 0 {
		info = append(info, fmt.Sprintf("%s of %s photos",
			humanize.Comma(int64(m.pager.Len())), humanize.Comma(int64(total))))
	} else {
		info = append(info, humanize.Comma(int64(m.pager.Len()))+" photos")
	}

	filters := m.holder.Committed()
	if filters.AlbumID != "" {
		info = append(info, "Album "+filters.AlbumID)
	}
	info = append(info, "Sort: "+filters.SortBy.Label())

	right := styles.DimStyle.Render(strings.Join(info, " · "))
	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderSearchBar renders the search input and the pending indicator
func (m Model) renderSearchBar() string {
	bar := m.Search.View()
	if m.State != StateSearching && m.Search.Value() == "" {
		bar = styles.DimStyle.Render("/ Search titles...")
	}
	if m.holder.Pending() {
		bar += " " + RenderSpinner(m.SpinnerFrame)
	}
	return bar
}

// renderBanner renders the dismissible fetch error
func (m Model) renderBanner() string {
	text := "Error: " + m.pager.Err().Error()
	hint := "  r retry · esc dismiss"
	text = styles.Truncate(text, max(m.Width-lipgloss.Width(hint)-2, 10))
	return styles.BannerStyle.Width(max(m.Width, 1)).Render(text + hint)
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner while a page is in flight, otherwise the status
	var left string
	switch {
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	case m.pager.IsFetchingNextPage():
		left = RenderSpinner(m.SpinnerFrame) + " " +
			styles.DimStyle.Render(fmt.Sprintf("Loading page %d...", m.pager.Pages()+1))
	case m.tableTick != 0:
		left = styles.DimStyle.Render("Loading more photos...")
	}

	// Center section: context-specific hints
	var center string
	if m.Mode == ModeTable {
		center = styles.AccentStyle.Render("1-4") + styles.DimStyle.Render(" quick filters  ")
	}
	center += styles.AccentStyle.Render("b") + styles.DimStyle.Render(" bulk request")

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      FILTERS
  h/j/k/l    Move                  /      Search titles
  g/Home     First photo           a      Album picker
  G/End      Last photo            s      Cycle sort
  PgUp/PgDn  Scroll page           S      Sort picker
  Ctrl+u/d   Scroll half page      1-4    Quick filters (table)
  Tab/v      Grid / table          0      Clear quick filters
                                   c      Clear all filters

PHOTOS                          OTHER
  o/Enter    Open photo            r      Retry after error
  O          Open thumbnail        R      Refresh (drop cache)
  i          Toggle inspector      q      Quit
  b          Bulk request          ?      This help
  y          Copy HTML table       Esc    Close / dismiss

Press ? or esc to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}

package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/photodeck/internal/domain"
	"github.com/mmcdole/photodeck/internal/tui/styles"
	"github.com/mmcdole/photodeck/internal/window"
)

// Table chrome: quick filter chips, column header, loader row
const (
	TableChipLines   = 1
	TableHeaderLines = 1
	TableFooterLines = 1
)

// Column widths (cells). Title takes whatever is left.
const (
	colIDWidth    = 6
	colAlbumWidth = 7
	colURLWidth   = 34
	minTitleWidth = 10
)

// Table renders the loaded photos one per line. Only rows intersecting
// the viewport are rendered, however many are loaded.
type Table struct {
	raw    []domain.Photo
	quick  window.QuickSet
	rows   []domain.Photo // after quick filters
	rawIdx []int          // raw index of each row; nil when no quick filter is active

	cursor int
	offset int

	width  int
	height int

	hasMore bool
	loading bool
}

// NewTable creates an empty table
func NewTable() Table {
	return Table{}
}

// SetItems replaces the loaded photos and reapplies quick filters
func (t *Table) SetItems(photos []domain.Photo) {
	t.raw = photos
	t.apply()
}

// SetLoader sets the state of the loader row
func (t *Table) SetLoader(hasMore, loading bool) {
	t.hasMore = hasMore
	t.loading = loading
}

// Reset moves back to the first row
func (t *Table) Reset() {
	t.cursor = 0
	t.offset = 0
}

// ToggleQuick flips one quick filter
func (t *Table) ToggleQuick(q window.QuickFilter) {
	t.quick = t.quick.Toggle(q)
	t.Reset()
	t.apply()
}

// ClearQuick turns every quick filter off
func (t *Table) ClearQuick() {
	if len(t.quick) == 0 {
		return
	}
	t.quick = nil
	t.Reset()
	t.apply()
}

// Quick returns the active quick filters
func (t Table) Quick() window.QuickSet {
	return t.quick
}

func (t *Table) apply() {
	t.rows, t.rawIdx = t.quick.Apply(t.raw)
	if t.cursor >= len(t.rows) {
		t.cursor = max(len(t.rows)-1, 0)
	}
	t.offset = window.ClampOffset(t.cursor, t.offset, t.bodyHeight(), len(t.rows))
}

// SetSize updates the component dimensions
func (t *Table) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.offset = window.ClampOffset(t.cursor, t.offset, t.bodyHeight(), len(t.rows))
}

func (t Table) bodyHeight() int {
	return max(t.height-TableChipLines-TableHeaderLines-TableFooterLines, 1)
}

// RowCount returns the number of rows after quick filters
func (t Table) RowCount() int {
	return len(t.rows)
}

// VisibleRange returns the [start, stop) span of rows in the viewport
func (t Table) VisibleRange() (int, int) {
	return window.Range(t.offset, t.bodyHeight(), len(t.rows))
}

// StopRawIndex returns the raw index of the last visible row, with a
// quick-filtered view at its end counting as the raw end.
func (t Table) StopRawIndex() int {
	_, stop := t.VisibleRange()
	if t.rawIdx == nil {
		if len(t.raw) == 0 {
			return -1
		}
		return max(stop-1, 0)
	}
	return window.StopRawIndex(t.rawIdx, stop, len(t.raw))
}

// Selected returns the photo under the cursor
func (t Table) Selected() (domain.Photo, bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return domain.Photo{}, false
	}
	return t.rows[t.cursor], true
}

// Cursor returns the selected row index
func (t Table) Cursor() int {
	return t.cursor
}

func (t *Table) moveTo(pos int) {
	if len(t.rows) == 0 {
		return
	}
	t.cursor = min(max(pos, 0), len(t.rows)-1)
	t.offset = window.ClampOffset(t.cursor, t.offset, t.bodyHeight(), len(t.rows))
}

// Update handles navigation keys
func (t Table) Update(msg tea.Msg) (Table, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	page := t.bodyHeight()

	switch {
	case key.Matches(keyMsg, NavKeys.Up):
		t.moveTo(t.cursor - 1)
	case key.Matches(keyMsg, NavKeys.Down):
		t.moveTo(t.cursor + 1)
	case key.Matches(keyMsg, NavKeys.Home):
		t.moveTo(0)
	case key.Matches(keyMsg, NavKeys.End):
		t.moveTo(len(t.rows) - 1)
	case key.Matches(keyMsg, NavKeys.HalfDown):
		t.moveTo(t.cursor + max(page/2, 1))
	case key.Matches(keyMsg, NavKeys.HalfUp):
		t.moveTo(t.cursor - max(page/2, 1))
	case key.Matches(keyMsg, NavKeys.PageDown):
		t.moveTo(t.cursor + page)
	case key.Matches(keyMsg, NavKeys.PageUp):
		t.moveTo(t.cursor - page)
	}
	return t, nil
}

func (t Table) titleWidth() int {
	// two cells of row margin plus single spaces between columns
	return max(t.width-2-colIDWidth-colAlbumWidth-colURLWidth-3, minTitleWidth)
}

// View renders chips, header, the visible rows and the loader row
func (t Table) View() string {
	var lines []string
	lines = append(lines, t.renderChips())

	titleW := t.titleWidth()
	header := styles.Pad("ID", colIDWidth) + " " +
		styles.Pad("Album", colAlbumWidth) + " " +
		styles.Pad("Title", titleW) + " " +
		styles.Pad("URL", colURLWidth)
	lines = append(lines, " "+styles.TitleStyle.Render(header))

	start, stop := t.VisibleRange()
	for i := start; i < stop; i++ {
		lines = append(lines, t.renderRow(t.rows[i], i == t.cursor, titleW))
	}
	if len(t.rows) == 0 && len(t.raw) > 0 {
		lines = append(lines, styles.DimStyle.Render(" No loaded photos match the quick filters"))
	}

	switch {
	case t.loading:
		lines = append(lines, styles.SpinnerStyle.Render(" Loading more photos..."))
	case t.hasMore:
		lines = append(lines, styles.DimStyle.Render(" Loading more photos..."))
	default:
		lines = append(lines, styles.DimStyle.Render(fmt.Sprintf(" %d of %d rows", len(t.rows), len(t.raw))))
	}

	return strings.Join(lines, "\n")
}

func (t Table) renderChips() string {
	chips := make([]string, 0, len(window.AllQuickFilters))
	for i, q := range window.AllQuickFilters {
		label := strconv.Itoa(i+1) + " " + q.Label()
		if t.quick.Has(q) {
			chips = append(chips, styles.ChipStyle.Render(label))
		} else {
			chips = append(chips, styles.DimChipStyle.Render(label))
		}
	}
	return " " + strings.Join(chips, " ")
}

func (t Table) renderRow(p domain.Photo, selected bool, titleW int) string {
	accent := styles.AccentSoft
	dim := styles.DimGray
	parts := []styles.RowPart{
		{Text: styles.Pad(strconv.Itoa(p.ID), colIDWidth) + " ", Foreground: &accent},
		{Text: styles.Pad(strconv.Itoa(p.AlbumID), colAlbumWidth) + " "},
		{Text: styles.Pad(styles.Truncate(p.DisplayTitle(), titleW), titleW) + " "},
		{Text: styles.Truncate(p.URL, colURLWidth), Foreground: &dim},
	}
	return styles.RenderListRow(parts, selected, t.width)
}

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/photodeck/internal/domain"
	"github.com/mmcdole/photodeck/internal/tui/styles"
)

// Card geometry
const (
	// CardInnerWidth is the text width inside a card
	CardInnerWidth = 24

	// CardWidth adds horizontal padding (2) and border (2)
	CardWidth = CardInnerWidth + 4

	// CardHeight is two title lines, chips, thumbnail ref, plus border
	CardHeight = 6

	// GridFooterLines is the sentinel row under the cards
	GridFooterLines = 1
)

// FooterState is what the row after the last card says
type FooterState int

const (
	FooterMore FooterState = iota
	FooterLoading
	FooterEnd
)

// String returns the footer text
func (f FooterState) String() string {
	switch f {
	case FooterLoading:
		return "Loading more photos..."
	case FooterEnd:
		return "You've reached the end!"
	default:
		return "(scroll for more)"
	}
}

// Grid lays loaded photos out as fixed-size cards. Every loaded item is
// kept; only the card rows inside the viewport are drawn.
type Grid struct {
	photos []domain.Photo

	// Selection
	cursor    int
	offsetRow int

	// Dimensions
	width   int
	height  int
	columns int // configured column count, 0 = fit to width

	footer FooterState
}

// NewGrid creates a grid. columns <= 0 fits as many cards as the width allows.
func NewGrid(columns int) Grid {
	if columns < 0 {
		columns = 0
	}
	return Grid{columns: columns}
}

// SetItems replaces the photos. The fetched sequence only grows for one
// query key, so the cursor is kept when still in range.
func (g *Grid) SetItems(photos []domain.Photo) {
	g.photos = photos
	if g.cursor >= len(photos) {
		g.cursor = max(len(photos)-1, 0)
	}
	g.ensureVisible()
}

// Reset moves back to the first card
func (g *Grid) Reset() {
	g.cursor = 0
	g.offsetRow = 0
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.ensureVisible()
}

// SetFooter sets the sentinel row text
func (g *Grid) SetFooter(state FooterState) {
	g.footer = state
}

// Columns returns how many cards fit on one row
func (g Grid) Columns() int {
	fit := max(g.width/CardWidth, 1)
	if g.columns > 0 && g.columns < fit {
		return g.columns
	}
	return fit
}

// VisibleRows returns how many card rows fit above the footer
func (g Grid) VisibleRows() int {
	return max((g.height-GridFooterLines)/CardHeight, 1)
}

// RowCount returns the number of card rows for the loaded photos
func (g Grid) RowCount() int {
	cols := g.Columns()
	return (len(g.photos) + cols - 1) / cols
}

// SentinelVisible reports whether the row after the last card is on
// screen, which is the case once the last card row is in the viewport.
func (g Grid) SentinelVisible() bool {
	return g.offsetRow+g.VisibleRows() >= g.RowCount()
}

// Cursor returns the index of the selected photo
func (g Grid) Cursor() int {
	return g.cursor
}

// Selected returns the photo under the cursor
func (g Grid) Selected() (domain.Photo, bool) {
	if g.cursor < 0 || g.cursor >= len(g.photos) {
		return domain.Photo{}, false
	}
	return g.photos[g.cursor], true
}

// ensureVisible scrolls so the cursor's row is on screen
func (g *Grid) ensureVisible() {
	row := g.cursor / g.Columns()
	visible := g.VisibleRows()
	if row < g.offsetRow {
		g.offsetRow = row
	}
	if row >= g.offsetRow+visible {
		g.offsetRow = row - visible + 1
	}
	maxOffset := max(g.RowCount()-visible, 0)
	if g.offsetRow > maxOffset {
		g.offsetRow = maxOffset
	}
}

func (g *Grid) moveTo(pos int) {
	if len(g.photos) == 0 {
		return
	}
	g.cursor = min(max(pos, 0), len(g.photos)-1)
	g.ensureVisible()
}

// Update handles navigation keys
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(g.photos) == 0 {
		return g, nil
	}

	cols := g.Columns()
	lastRow := (len(g.photos) - 1) / cols

	switch {
	case key.Matches(keyMsg, NavKeys.Left):
		g.moveTo(g.cursor - 1)
	case key.Matches(keyMsg, NavKeys.Right):
		g.moveTo(g.cursor + 1)
	case key.Matches(keyMsg, NavKeys.Up):
		if g.cursor >= cols {
			g.moveTo(g.cursor - cols)
		}
	case key.Matches(keyMsg, NavKeys.Down):
		if g.cursor+cols < len(g.photos) {
			g.moveTo(g.cursor + cols)
		} else if g.cursor/cols < lastRow {
			// short last row: land on its last card
			g.moveTo(len(g.photos) - 1)
		}
	case key.Matches(keyMsg, NavKeys.Home):
		g.moveTo(0)
	case key.Matches(keyMsg, NavKeys.End):
		g.moveTo(len(g.photos) - 1)
	case key.Matches(keyMsg, NavKeys.HalfDown):
		g.moveTo(g.cursor + max(g.VisibleRows()/2, 1)*cols)
	case key.Matches(keyMsg, NavKeys.HalfUp):
		g.moveTo(g.cursor - max(g.VisibleRows()/2, 1)*cols)
	case key.Matches(keyMsg, NavKeys.PageDown):
		g.moveTo(g.cursor + g.VisibleRows()*cols)
	case key.Matches(keyMsg, NavKeys.PageUp):
		g.moveTo(g.cursor - g.VisibleRows()*cols)
	}
	return g, nil
}

// View renders the visible card rows followed by the footer row
func (g Grid) View() string {
	cols := g.Columns()
	var rows []string

	end := min(g.offsetRow+g.VisibleRows(), g.RowCount())
	for r := g.offsetRow; r < end; r++ {
		var cards []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(g.photos) {
				break
			}
			cards = append(cards, g.renderCard(g.photos[i], i == g.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	footer := styles.DimStyle.Render(g.footer.String())
	if g.footer == FooterLoading {
		footer = styles.SpinnerStyle.Render(g.footer.String())
	}
	if !g.SentinelVisible() {
		footer = styles.DimStyle.Render("↓ more")
	}
	rows = append(rows, lipgloss.PlaceHorizontal(max(g.width, 1), lipgloss.Center, footer))

	return strings.Join(rows, "\n")
}

func (g Grid) renderCard(p domain.Photo, selected bool) string {
	titleStyle := styles.SubtitleStyle
	cardStyle := styles.CardStyle
	albumChip := styles.DimChipStyle
	if selected {
		titleStyle = styles.TitleStyle
		cardStyle = styles.CardSelectedStyle
		albumChip = styles.ChipStyle
	}

	title := styles.Wrap(p.DisplayTitle(), CardInnerWidth, 2)
	for len(title) < 2 {
		title = append(title, "")
	}

	lines := []string{
		titleStyle.Render(styles.Pad(title[0], CardInnerWidth)),
		titleStyle.Render(styles.Pad(title[1], CardInnerWidth)),
		albumChip.Render(p.AlbumLabel()) + " " + styles.DimChipStyle.Render("#"+strconv.Itoa(p.ID)),
		styles.DimStyle.Render(styles.Truncate(p.ThumbnailRef(), CardInnerWidth)),
	}

	return cardStyle.Width(CardInnerWidth + 2).Render(strings.Join(lines, "\n"))
}

package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/photodeck/internal/domain"
	"github.com/mmcdole/photodeck/internal/export"
	"github.com/mmcdole/photodeck/internal/tui/styles"
)

// BulkAction is what the model should do after a key in the bulk modal
type BulkAction int

const (
	BulkNone BulkAction = iota
	BulkClose
	BulkExport
	BulkCopy
)

// BulkModal lets the user tick up to export.MaxBulkPhotos loaded photos
// for a bulk request draft. The selection lives only as long as the modal.
type BulkModal struct {
	visible  bool
	photos   []domain.Photo
	selected map[int]bool
	cursor   int
	offset   int
	width    int
	height   int
	notice   string
	noticeOK bool
	closing  bool
}

// NewBulkModal creates a hidden bulk modal
func NewBulkModal() BulkModal {
	return BulkModal{selected: make(map[int]bool)}
}

// Show opens the modal over the first export.MaxBulkPhotos of loaded
func (m *BulkModal) Show(loaded []domain.Photo) {
	n := min(len(loaded), export.MaxBulkPhotos)
	m.photos = append([]domain.Photo(nil), loaded[:n]...)
	m.selected = make(map[int]bool)
	m.cursor = 0
	m.offset = 0
	m.notice = ""
	m.closing = false
	m.visible = true
}

// Hide closes the modal and drops the selection
func (m *BulkModal) Hide() {
	m.visible = false
	m.photos = nil
	m.selected = make(map[int]bool)
	m.notice = ""
	m.closing = false
}

// IsVisible returns whether the modal is shown
func (m BulkModal) IsVisible() bool {
	return m.visible
}

// SetSize updates the component dimensions
func (m *BulkModal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Shown returns how many photos the modal offers
func (m BulkModal) Shown() int {
	return len(m.photos)
}

// SelectedCount returns how many photos are ticked
func (m BulkModal) SelectedCount() int {
	return len(m.selected)
}

// CanExport reports whether the export action is enabled
func (m BulkModal) CanExport() bool {
	return len(m.selected) > 0 && !m.closing
}

// AllSelected reports whether every shown photo is ticked
func (m BulkModal) AllSelected() bool {
	return len(m.photos) > 0 && len(m.selected) == len(m.photos)
}

// Toggle flips the photo with the given id
func (m *BulkModal) Toggle(id int) {
	if m.selected[id] {
		delete(m.selected, id)
		return
	}
	m.selected[id] = true
}

// ToggleAll selects every shown photo, or clears the selection when all
// are already selected
func (m *BulkModal) ToggleAll() {
	if m.AllSelected() {
		m.selected = make(map[int]bool)
		return
	}
	for _, p := range m.photos {
		m.selected[p.ID] = true
	}
}

// SelectedPhotos returns the ticked photos in display order
func (m BulkModal) SelectedPhotos() []domain.Photo {
	out := make([]domain.Photo, 0, len(m.selected))
	for _, p := range m.photos {
		if m.selected[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// SetNotice shows a one-line result under the list
func (m *BulkModal) SetNotice(text string, ok bool) {
	m.notice = text
	m.noticeOK = ok
}

// BeginClose marks the export as done; the model hides the modal after
// a short delay
func (m *BulkModal) BeginClose() {
	m.closing = true
}

// IsClosing reports whether the modal is waiting to close
func (m BulkModal) IsClosing() bool {
	return m.closing
}

func (m BulkModal) listHeight() int {
	// title, blank, footer, blank, actions, hints, notice + modal frame
	return max(m.height-13, 3)
}

func (m *BulkModal) ensureVisible() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

// HandleKeyMsg processes a key press. All keys are consumed while visible.
func (m *BulkModal) HandleKeyMsg(msg tea.KeyMsg) (handled bool, action BulkAction) {
	if !m.visible {
		return false, BulkNone
	}
	if m.closing {
		if key.Matches(msg, BulkModalKeys.Escape) {
			return true, BulkClose
		}
		return true, BulkNone
	}

	switch {
	case key.Matches(msg, BulkModalKeys.Down):
		if m.cursor < len(m.photos)-1 {
			m.cursor++
			m.ensureVisible()
		}
	case key.Matches(msg, BulkModalKeys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
	case key.Matches(msg, BulkModalKeys.Toggle):
		if m.cursor < len(m.photos) {
			m.Toggle(m.photos[m.cursor].ID)
		}
	case key.Matches(msg, BulkModalKeys.SelectAll):
		m.ToggleAll()
	case key.Matches(msg, BulkModalKeys.Export):
		if !m.CanExport() {
			m.SetNotice("Select at least one photo", false)
			return true, BulkNone
		}
		return true, BulkExport
	case key.Matches(msg, BulkModalKeys.Copy):
		if len(m.selected) == 0 {
			m.SetNotice("Select at least one photo", false)
			return true, BulkNone
		}
		return true, BulkCopy
	case key.Matches(msg, BulkModalKeys.Escape):
		return true, BulkClose
	}
	return true, BulkNone
}

// View renders the bulk modal
func (m BulkModal) View() string {
	if !m.visible {
		return ""
	}

	modalWidth := 70
	if m.width > 0 && m.width < modalWidth+10 {
		modalWidth = max(m.width-10, 30)
	}
	inner := modalWidth - 4

	var lines []string

	allLabel := "Select All"
	if m.AllSelected() {
		allLabel = "Deselect All"
	}
	title := styles.TitleStyle.Render("Bulk Request - Select Photos")
	hint := styles.DimStyle.Render("[a] " + allLabel)
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(hint), 1)
	lines = append(lines, title+strings.Repeat(" ", gap)+hint, "")

	if len(m.photos) == 0 {
		lines = append(lines, styles.DimStyle.Render("No photos loaded yet"))
	}

	end := min(m.offset+m.listHeight(), len(m.photos))
	for i := m.offset; i < end; i++ {
		p := m.photos[i]
		checked := m.selected[p.ID]
		box := styles.UncheckedChar
		if checked {
			box = styles.CheckedChar
		}
		meta := fmt.Sprintf(" #%-5s a%-3s ", strconv.Itoa(p.ID), strconv.Itoa(p.AlbumID))
		line := box + meta + styles.Truncate(p.DisplayTitle(), inner-len(box)-len(meta))

		switch {
		case i == m.cursor:
			line = lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(styles.Pad(line, inner))
		case checked:
			line = lipgloss.NewStyle().
				Foreground(styles.AccentSoft).
				Render(styles.Pad(line, inner))
		default:
			line = lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(styles.Pad(line, inner))
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	lines = append(lines, styles.SubtitleStyle.Render(
		fmt.Sprintf("%d of %d photos selected", len(m.selected), len(m.photos))))

	send := "[enter] Send Bulk Request"
	if m.CanExport() {
		send = styles.ChipStyle.Render(send)
	} else {
		send = styles.DimChipStyle.Render(send + " (disabled)")
	}
	lines = append(lines, "")
	lines = append(lines, send)
	lines = append(lines, styles.DimStyle.Render("space: toggle  y: copy table  esc: cancel"))

	if m.notice != "" {
		style := styles.ErrorStyle
		if m.noticeOK {
			style = styles.SuccessStyle
		}
		lines = append(lines, "", style.Render(styles.Truncate(m.notice, inner)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent).
		Background(styles.SlateDark).
		Padding(1, 2).
		Width(modalWidth).
		Render(strings.Join(lines, "\n"))
}

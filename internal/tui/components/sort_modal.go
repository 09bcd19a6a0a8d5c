package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/photodeck/internal/domain"
	"github.com/mmcdole/photodeck/internal/tui/styles"
)

// SortModal is a small popup for choosing the sort order
type SortModal struct {
	visible bool
	options []domain.SortOrder
	cursor  int
	active  domain.SortOrder
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{options: domain.AllSortOrders}
}

// Show displays the modal with the cursor on the active order
func (m *SortModal) Show(active domain.SortOrder) {
	m.visible = true
	m.active = active
	m.cursor = 0
	for i, opt := range m.options {
		if opt == active {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *SortModal) HandleKey(key string) (handled bool, selection *domain.SortOrder) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		chosen := m.options[m.cursor]
		m.visible = false
		return true, &chosen
	case "esc", "S":
		m.visible = false
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		prefix := "  "
		if opt == m.active {
			prefix = styles.ActiveChar + " "
		}
		text := styles.Pad(prefix+opt.Label(), 24)

		switch {
		case i == m.cursor:
			text = lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(text)
		case opt == m.active:
			text = lipgloss.NewStyle().
				Foreground(styles.AccentSoft).
				Render(text)
		default:
			text = lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(text)
		}
		lines = append(lines, text)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"))
}

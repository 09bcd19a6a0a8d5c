package components

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mmcdole/photodeck/internal/domain"
	"github.com/mmcdole/photodeck/internal/tui/styles"
)

// Inspector shows every field of the selected photo in a side panel
type Inspector struct {
	photo    *domain.Photo
	position int // 1-based index in the loaded sequence
	loaded   int
	width    int
	height   int
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetPhoto sets the photo to display; nil clears the panel
func (i *Inspector) SetPhoto(p *domain.Photo, position, loaded int) {
	i.photo = p
	i.position = position
	i.loaded = loaded
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// HasPhoto returns true if there is a photo to display
func (i Inspector) HasPhoto() bool {
	return i.photo != nil
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder
	contentWidth := max(i.width-4, 10)

	var parts []string
	parts = append(parts, styles.AccentStyle.Render("Info"), "")

	if i.photo == nil {
		parts = append(parts, styles.DimStyle.Render("No photo selected"))
	} else {
		parts = append(parts, i.renderPhoto(*i.photo, contentWidth)...)
	}

	// Keep within the panel; the body never scrolls
	maxLines := max(i.height-2, 1)
	if len(parts) > maxLines {
		parts = parts[:maxLines]
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(i.width-frameW, 1)).
		Height(max(i.height-frameH, 1)).
		Render(strings.Join(parts, "\n"))
}

func (i Inspector) renderPhoto(p domain.Photo, width int) []string {
	var lines []string
	for _, l := range styles.Wrap(p.DisplayTitle(), width, 3) {
		lines = append(lines, styles.TitleStyle.Render(l))
	}
	lines = append(lines, "")

	field := func(label, value string) {
		lines = append(lines, styles.DimStyle.Render(label))
		lines = append(lines, styles.SubtitleStyle.Render(styles.Truncate(value, width)))
	}
	field("ID", strconv.Itoa(p.ID))
	field("Album", p.AlbumLabel())
	field("Photo URL", p.URL)
	field("Thumbnail", p.ThumbnailRef())

	if i.loaded > 0 {
		lines = append(lines, "")
		lines = append(lines, styles.DimStyle.Render(
			humanize.Comma(int64(i.position))+" of "+humanize.Comma(int64(i.loaded))+" loaded"))
	}

	lines = append(lines, "")
	lines = append(lines,
		styles.HelpKeyStyle.Render("o")+styles.HelpDescStyle.Render(" open photo  ")+
			styles.HelpKeyStyle.Render("O")+styles.HelpDescStyle.Render(" open thumbnail"))
	return lines
}

package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/photodeck/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// AllAlbumsLabel is the picker entry that clears the album filter
const AllAlbumsLabel = "All Albums"

// FallbackAlbums is offered when the album list could not be loaded
var FallbackAlbums = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

type albumEntry struct {
	albumID string // "" = all
	label   string
}

type albumResult struct {
	albumEntry
	matched []int
}

// albumSource adapts the entries for fuzzy.FindFrom
type albumSource []albumEntry

func (s albumSource) String(i int) string { return s[i].label }
func (s albumSource) Len() int            { return len(s) }

// AlbumPicker is a type-to-filter modal for choosing the album filter
type AlbumPicker struct {
	input     textinput.Model
	entries   []albumEntry
	results   []albumResult
	cursor    int
	visible   bool
	width     int
	height    int
	active    string
	prevQuery string
}

// NewAlbumPicker creates a picker offering the fallback albums until
// SetAlbums is called
func NewAlbumPicker() AlbumPicker {
	ti := textinput.New()
	ti.Placeholder = "Type an album number..."
	ti.CharLimit = 20
	ti.Width = 30
	ti.Prompt = "album: "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.PlaceholderStyle = styles.DimStyle

	p := AlbumPicker{input: ti}
	p.SetAlbums(FallbackAlbums)
	return p
}

// SetAlbums replaces the album ids on offer
func (p *AlbumPicker) SetAlbums(ids []int) {
	p.entries = make([]albumEntry, 0, len(ids)+1)
	p.entries = append(p.entries, albumEntry{label: AllAlbumsLabel})
	for _, id := range ids {
		p.entries = append(p.entries, albumEntry{
			albumID: strconv.Itoa(id),
			label:   "Album " + strconv.Itoa(id),
		})
	}
	p.refilter()
}

// AlbumCount returns the number of real albums on offer
func (p AlbumPicker) AlbumCount() int {
	return len(p.entries) - 1
}

// Show opens the picker with the cursor on the active album
func (p *AlbumPicker) Show(active string) {
	p.visible = true
	p.active = active
	p.input.SetValue("")
	p.input.Focus()
	p.prevQuery = ""
	p.refilter()
	for i, r := range p.results {
		if r.albumID == active {
			p.cursor = i
			break
		}
	}
}

// Hide closes the picker
func (p *AlbumPicker) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns true if the picker is open
func (p AlbumPicker) IsVisible() bool {
	return p.visible
}

// SetSize updates the component dimensions
func (p *AlbumPicker) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Selected returns the album id under the cursor ("" = all albums)
func (p AlbumPicker) Selected() (string, bool) {
	if p.cursor < 0 || p.cursor >= len(p.results) {
		return "", false
	}
	return p.results[p.cursor].albumID, true
}

func (p *AlbumPicker) refilter() {
	query := strings.TrimSpace(p.input.Value())
	p.cursor = 0
	if query == "" {
		p.results = make([]albumResult, len(p.entries))
		for i, e := range p.entries {
			p.results[i] = albumResult{albumEntry: e}
		}
		return
	}
	matches := fuzzy.FindFrom(query, albumSource(p.entries))
	p.results = make([]albumResult, len(matches))
	for i, m := range matches {
		p.results[i] = albumResult{albumEntry: p.entries[m.Index], matched: m.MatchedIndexes}
	}
}

// Update handles messages. The bool is true when the user chose an entry.
func (p AlbumPicker) Update(msg tea.Msg) (AlbumPicker, tea.Cmd, bool) {
	if !p.visible {
		return p, nil, false
	}

	var cmd tea.Cmd
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, PickerKeys.Escape):
			p.Hide()
			return p, nil, false
		case key.Matches(keyMsg, PickerKeys.Enter):
			if len(p.results) == 0 {
				return p, nil, false
			}
			p.Hide()
			return p, nil, true
		case key.Matches(keyMsg, PickerKeys.Down):
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return p, nil, false
		case key.Matches(keyMsg, PickerKeys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil, false
		}
	}

	p.input, cmd = p.input.Update(msg)
	if q := p.input.Value(); q != p.prevQuery {
		p.prevQuery = q
		p.refilter()
	}
	return p, cmd, false
}

// View renders the picker
func (p AlbumPicker) View() string {
	if !p.visible {
		return ""
	}

	const maxResults = 10
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Filter by album"))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	if len(p.results) == 0 {
		b.WriteString(styles.DimStyle.Render("No matching albums"))
	}

	// keep the cursor inside the window of shown results
	start := 0
	if p.cursor >= maxResults {
		start = p.cursor - maxResults + 1
	}
	end := min(start+maxResults, len(p.results))
	for i := start; i < end; i++ {
		r := p.results[i]
		marker := "  "
		if r.albumID == p.active {
			marker = styles.ActiveChar + " "
		}
		b.WriteString(marker)
		b.WriteString(highlightMatches(r.label, r.matched, i == p.cursor))
		b.WriteString("\n")
	}
	if rest := len(p.results) - end; rest > 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", rest)))
	}

	return styles.ModalStyle.Width(40).Render(strings.TrimRight(b.String(), "\n"))
}

// highlightMatches renders text with fuzzy-matched runes emphasized
func highlightMatches(text string, matched []int, selected bool) string {
	normal := lipgloss.NewStyle().Foreground(styles.LightGray)
	match := styles.MatchHighlightStyle
	if selected {
		normal = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight)
		match = styles.MatchHighlightSelectedStyle
	}
	if len(matched) == 0 {
		return normal.Render(text)
	}

	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	// fuzzy reports byte offsets; batch consecutive bytes of the same kind
	var out strings.Builder
	i := 0
	for i < len(text) {
		isMatch := set[i]
		j := i
		for j < len(text) && set[j] == isMatch {
			j++
		}
		if isMatch {
			out.WriteString(match.Render(text[i:j]))
		} else {
			out.WriteString(normal.Render(text[i:j]))
		}
		i = j
	}
	return out.String()
}

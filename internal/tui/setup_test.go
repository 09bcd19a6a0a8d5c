package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/photodeck/internal/adapter"
	"github.com/mmcdole/photodeck/internal/domain"
	"github.com/mmcdole/photodeck/internal/export"
	"github.com/mmcdole/photodeck/internal/paginate"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

const testTotal = 5000

// =============================================================================
// Fakes
// =============================================================================

// fakePhotos serves generated pages of testTotal photos, ten per album
type fakePhotos struct {
	queries     []domain.PageQuery
	albums      []int
	albumErr    error
	fetchErr    error
	invalidated int
	refreshed   int
}

func (f *fakePhotos) FetchPhotos(_ context.Context, q domain.PageQuery) (domain.Page, error) {
	f.queries = append(f.queries, q)
	if f.fetchErr != nil {
		return domain.Page{}, f.fetchErr
	}
	start := (q.Page - 1) * 50
	photos := makePhotos(start+1, min(50, testTotal-start))
	hasMore := q.Page*50 < testTotal
	next := 0
	if hasMore {
		next = q.Page + 1
	}
	return domain.Page{Items: photos, Number: q.Page, HasMore: hasMore, NextPage: next, Total: testTotal}, nil
}

func (f *fakePhotos) AlbumIDs(context.Context) ([]int, error) {
	return f.albums, f.albumErr
}

func (f *fakePhotos) RefreshAlbums(context.Context) ([]int, error) {
	f.refreshed++
	return f.albums, f.albumErr
}

func (f *fakePhotos) Invalidate() { f.invalidated++ }

type fakeOpener struct {
	urls []string
}

func (o *fakeOpener) Open(url string) error {
	o.urls = append(o.urls, url)
	return nil
}

type fakeClipboard struct {
	html string
	err  error
}

func (c *fakeClipboard) CopyHTML(html string) (export.Method, error) {
	if c.err != nil {
		return "", c.err
	}
	c.html = html
	return export.MethodSystem, nil
}

// =============================================================================
// Fixtures
// =============================================================================

// makePhotos returns n photos starting at id first
func makePhotos(first, n int) []domain.Photo {
	if n <= 0 {
		return nil
	}
	photos := make([]domain.Photo, n)
	for i := range photos {
		id := first + i
		photos[i] = domain.Photo{
			AlbumID:      (id-1)/10 + 1,
			ID:           id,
			Title:        fmt.Sprintf("photo %d", id),
			URL:          fmt.Sprintf("https://via.placeholder.com/600/%d", id),
			ThumbnailURL: fmt.Sprintf("https://via.placeholder.com/150/%d", id),
		}
	}
	return photos
}

type testEnv struct {
	photos *fakePhotos
	opener *fakeOpener
	clip   *fakeClipboard
	cfg    *adapter.Config
}

// newTestModel returns a sized model in the given view with page 1 in flight
func newTestModel(t *testing.T, view string) (Model, *testEnv) {
	t.Helper()
	env := &testEnv{
		photos: &fakePhotos{albums: []int{1, 2, 3}},
		opener: &fakeOpener{},
		clip:   &fakeClipboard{},
		cfg:    adapter.DefaultConfig(),
	}
	env.cfg.UI.DefaultView = view
	env.cfg.Bulk.OutputDir = t.TempDir()

	m := NewModel(env.photos, env.opener, env.clip, env.cfg)
	m, _ = sendMsg(t, m, tea.WindowSizeMsg{Width: 120, Height: 20})
	return m, env
}

// deliverPage resolves the in-flight request of the current generation
func deliverPage(t *testing.T, m Model, number int, photos []domain.Photo, hasMore bool) (Model, tea.Cmd) {
	t.Helper()
	req := pageRequest(m, number)
	next := 0
	if hasMore {
		next = number + 1
	}
	page := domain.Page{Items: photos, Number: number, HasMore: hasMore, NextPage: next, Total: testTotal}
	return sendMsg(t, m, PageLoadedMsg{Req: req, Page: page})
}

// pageRequest is the request the current generation issues for page n
func pageRequest(m Model, n int) paginate.Request {
	return paginate.Request{Generation: m.pager.Generation(), Page: n, Filters: m.pager.Filters()}
}

// sendKey sends a key message to the model and returns the updated concrete Model.
func sendKey(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	newM, cmd := m.Update(k)
	return newM.(Model), cmd
}

// sendMsg sends any tea.Msg through Update and returns the concrete Model.
func sendMsg(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	newM, cmd := m.Update(msg)
	return newM.(Model), cmd
}

// typeText sends each rune as a key press
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = sendKey(t, m, keyRune(r))
	}
	return m
}

// keyRune returns a KeyMsg for a single rune (e.g., keyRune('x'))
func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// keyEnter returns a KeyMsg for the Enter key
func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// keyEsc returns a KeyMsg for the Escape key
func keyEsc() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

// keyTab returns a KeyMsg for the Tab key
func keyTab() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyTab}
}

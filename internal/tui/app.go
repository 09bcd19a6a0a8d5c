package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/mmcdole/photodeck/internal/adapter"
	"github.com/mmcdole/photodeck/internal/domain"
	"github.com/mmcdole/photodeck/internal/export"
	"github.com/mmcdole/photodeck/internal/filter"
	"github.com/mmcdole/photodeck/internal/paginate"
	"github.com/mmcdole/photodeck/internal/tui/components"
	"github.com/mmcdole/photodeck/internal/tui/styles"
	"github.com/mmcdole/photodeck/internal/window"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StateHelp
)

// ViewMode selects how loaded photos are rendered
type ViewMode int

const (
	ModeGrid ViewMode = iota
	ModeTable
)

// String returns the mode name as used in config
func (v ViewMode) String() string {
	if v == ModeTable {
		return adapter.ViewTable
	}
	return adapter.ViewGrid
}

// PhotoService is the data side of the gallery (gallery.Service)
type PhotoService interface {
	FetchPhotos(ctx context.Context, q domain.PageQuery) (domain.Page, error)
	AlbumIDs(ctx context.Context) ([]int, error)
	RefreshAlbums(ctx context.Context) ([]int, error)
	Invalidate()
}

// URLOpener opens a URL outside the terminal (adapter.Launcher)
type URLOpener interface {
	Open(url string) error
}

// ClipboardWriter copies HTML for pasting into a mail client (export.Clipboard)
type ClipboardWriter interface {
	CopyHTML(html string) (export.Method, error)
}

// tickInterval drives the loading spinner
const tickInterval = 100 * time.Millisecond

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool
	Mode  ViewMode

	// Services
	Photos    PhotoService
	Opener    URLOpener
	Clipboard ClipboardWriter
	Config    *adapter.Config

	// Query state. Pointers so copies of the model share one instance.
	pager       *paginate.Controller
	holder      *filter.Holder
	sentinel    *window.Sentinel
	sentinelSub window.Subscription
	trigger     *window.Trigger
	tableTick   uint64 // generation a delayed table load is scheduled for, 0 = none
	initialReq  paginate.Request

	// UI Components
	Grid        components.Grid
	Table       components.Table
	Search      textinput.Model
	AlbumPicker components.AlbumPicker
	SortModal   components.SortModal
	BulkModal   components.BulkModal
	Inspector   components.Inspector

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg       string
	StatusIsErr     bool
	SpinnerFrame    int
	ShowInspector   bool
	bannerDismissed bool
}

// NewModel creates a new application model and issues the first page
// request for the empty filters. cfg may be nil.
func NewModel(photos PhotoService, opener URLOpener, clip ClipboardWriter, cfg *adapter.Config) Model {
	if cfg == nil {
		cfg = adapter.DefaultConfig()
	}

	search := textinput.New()
	search.Placeholder = "Search titles..."
	search.Prompt = "/ "
	search.CharLimit = 200
	search.PromptStyle = styles.FilterPromptStyle
	search.TextStyle = styles.FilterStyle
	search.PlaceholderStyle = styles.DimStyle

	m := Model{
		State:       StateBrowsing,
		Photos:      photos,
		Opener:      opener,
		Clipboard:   clip,
		Config:      cfg,
		pager:       paginate.New(),
		holder:      filter.NewHolder(cfg.UI.Debounce),
		sentinel:    &window.Sentinel{},
		trigger:     window.NewTrigger(window.DefaultThreshold),
		Grid:        components.NewGrid(cfg.UI.GridColumns),
		Table:       components.NewTable(),
		Search:      search,
		AlbumPicker: components.NewAlbumPicker(),
		SortModal:   components.NewSortModal(),
		BulkModal:   components.NewBulkModal(),
		Inspector:   components.NewInspector(),
	}

	if cfg.UI.DefaultView == adapter.ViewTable {
		m.Mode = ModeTable
	} else {
		m.Mode = ModeGrid
		m.sentinelSub = m.sentinel.Observe()
	}

	m.initialReq, _ = m.pager.Reset(m.holder.Committed())
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetch(m.initialReq),
		LoadAlbumsCmd(m.Photos, false, m.Config.Source.Timeout),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, m.checkPagination()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case PageLoadedMsg:
		if !m.pager.Resolve(msg.Req, msg.Page, msg.Err) {
			slog.Debug("discarding stale page", "page", msg.Req.Page, "gen", msg.Req.Generation)
			return m, nil
		}
		if msg.Err != nil {
			slog.Error("page fetch failed",
				"page", msg.Req.Page, "gen", msg.Req.Generation, "filters", msg.Req.Filters.Key(), "error", msg.Err)
			m.bannerDismissed = false
		}
		m.syncItems()
		return m, m.checkPagination()

	case SearchDebounceMsg:
		filters, changed := m.holder.Fire(msg.Seq)
		if !changed {
			return m, nil
		}
		return m, m.restart(filters)

	case TableLoadMsg:
		if msg.Gen != m.tableTick {
			return m, nil
		}
		m.tableTick = 0
		if msg.Gen != m.pager.Generation() {
			return m, nil
		}
		req, ok := m.pager.LoadNext()
		m.syncItems()
		if !ok {
			return m, nil
		}
		return m, m.fetch(req)

	case AlbumsLoadedMsg:
		if msg.Err != nil {
			slog.Warn("album list unavailable, using fallback", "error", msg.Err)
			m.AlbumPicker.SetAlbums(components.FallbackAlbums)
			return m, nil
		}
		m.AlbumPicker.SetAlbums(msg.IDs)
		return m, nil

	case DraftSavedMsg:
		if msg.Err != nil {
			slog.Error("saving bulk draft failed", "error", msg.Err)
			m.BulkModal.SetNotice("Could not save draft: "+msg.Err.Error(), false)
			return m, nil
		}
		notice := fmt.Sprintf("Email draft saved: %s (%s)", msg.Path, humanize.Bytes(uint64(msg.Size)))
		slog.Info("bulk draft saved", "path", msg.Path, "photos", msg.Count)
		m.BulkModal.SetNotice(notice, true)
		m.BulkModal.BeginClose()
		m.StatusMsg = notice
		m.StatusIsErr = false
		return m, tea.Batch(
			BulkCloseCmd(m.Config.Bulk.CloseDelay),
			ClearStatusCmd(5*time.Second),
		)

	case BulkCloseMsg:
		if m.BulkModal.IsClosing() {
			m.BulkModal.Hide()
		}
		return m, nil

	case ClipboardMsg:
		if msg.Err != nil {
			slog.Error("clipboard copy failed", "error", msg.Err)
			m.StatusMsg = "Copy failed: " + msg.Err.Error()
			m.StatusIsErr = true
			if m.BulkModal.IsVisible() {
				m.BulkModal.SetNotice(m.StatusMsg, false)
			}
			return m, ClearStatusCmd(5 * time.Second)
		}
		m.StatusMsg = fmt.Sprintf("Copied %s photos as HTML table via %s",
			humanize.Comma(int64(msg.Count)), msg.Method)
		m.StatusIsErr = false
		if m.BulkModal.IsVisible() {
			m.BulkModal.SetNotice(m.StatusMsg, true)
		}
		return m, ClearStatusCmd(3 * time.Second)

	case OpenedMsg:
		m.StatusMsg = "Opened " + msg.URL
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case ErrMsg:
		slog.Error("command failed", "context", msg.Context, "error", msg.Err)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other textinput traffic
	if m.State == StateSearching {
		var cmd tea.Cmd
		m.Search, cmd = m.Search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// fetch returns the command that performs req
func (m *Model) fetch(req paginate.Request) tea.Cmd {
	slog.Debug("fetching page", "page", req.Page, "gen", req.Generation, "filters", req.Filters.Key())
	return FetchPageCmd(m.Photos, req, m.Config.Source.Timeout)
}

// restart switches the paged result to filters. It does nothing when the
// key is unchanged.
func (m *Model) restart(filters domain.PhotoFilters) tea.Cmd {
	req, ok := m.pager.Reset(filters)
	if !ok {
		return nil
	}
	m.newGeneration()
	return m.fetch(req)
}

// reload restarts the current key from page 1
func (m *Model) reload() tea.Cmd {
	req := m.pager.Reload()
	m.newGeneration()
	return m.fetch(req)
}

// newGeneration clears per-key view state after the controller restarted
func (m *Model) newGeneration() {
	m.trigger.Reset()
	m.tableTick = 0
	m.bannerDismissed = false
	m.Grid.Reset()
	m.Table.Reset()
	m.syncItems()
}

// syncItems pushes controller state into the views
func (m *Model) syncItems() {
	items := m.pager.Items()
	m.Grid.SetItems(items)
	m.Table.SetItems(items)

	switch {
	case m.pager.IsFetchingNextPage():
		m.Grid.SetFooter(components.FooterLoading)
	case !m.pager.HasNextPage() && !m.pager.IsError() && m.pager.Len() > 0:
		m.Grid.SetFooter(components.FooterEnd)
	default:
		m.Grid.SetFooter(components.FooterMore)
	}
	m.Table.SetLoader(m.pager.HasNextPage(), m.pager.IsFetchingNextPage() || m.tableTick != 0)

	m.updateLayout()
	m.updateInspector()
}

// checkPagination asks the active view whether the next page is needed.
// The grid loads as soon as its sentinel row is on screen; the table
// schedules a delayed load once its window nears the end.
func (m *Model) checkPagination() tea.Cmd {
	if m.Mode == ModeGrid {
		m.sentinel.Update(m.Grid.SentinelVisible())
		if !m.sentinel.InView() || !m.pager.HasNextPage() || m.pager.InFlight() || m.pager.IsError() {
			return nil
		}
		req, ok := m.pager.LoadNext()
		if !ok {
			return nil
		}
		m.syncItems()
		return m.fetch(req)
	}

	canLoad := m.pager.HasNextPage() && !m.pager.InFlight() && !m.pager.IsError() && m.tableTick == 0
	if !m.trigger.Check(m.pager.Len(), m.Table.StopRawIndex(), canLoad) {
		return nil
	}
	m.tableTick = m.pager.Generation()
	m.Table.SetLoader(true, true)
	slog.Debug("scheduling table load", "gen", m.tableTick, "loaded", m.pager.Len())
	return TableLoadCmd(m.tableTick, m.Config.UI.TableLoadDelay)
}

// switchView toggles grid and table. Only the grid holds a sentinel
// subscription.
func (m *Model) switchView() tea.Cmd {
	if m.Mode == ModeGrid {
		m.sentinelSub.Release()
		m.Mode = ModeTable
	} else {
		m.Mode = ModeGrid
		m.sentinelSub = m.sentinel.Observe()
	}
	m.trigger.Reset()
	m.updateInspector()
	return m.checkPagination()
}

// selectedPhoto returns the photo under the cursor of the active view
func (m Model) selectedPhoto() (domain.Photo, bool) {
	if m.Mode == ModeTable {
		return m.Table.Selected()
	}
	return m.Grid.Selected()
}

// updateInspector updates the inspector with the current selection
func (m *Model) updateInspector() {
	p, ok := m.selectedPhoto()
	if !ok {
		m.Inspector.SetPhoto(nil, 0, 0)
		return
	}
	pos, count := m.Grid.Cursor()+1, m.pager.Len()
	if m.Mode == ModeTable {
		pos, count = m.Table.Cursor()+1, m.Table.RowCount()
	}
	m.Inspector.SetPhoto(&p, pos, count)
}

// bannerVisible reports whether the fetch error banner is shown
func (m Model) bannerVisible() bool {
	return m.pager.IsError() && !m.bannerDismissed
}

// bulkCandidates returns the loaded photos offered for export
func (m Model) bulkCandidates() []domain.Photo {
	items := m.pager.Items()
	return items[:min(len(items), export.MaxBulkPhotos)]
}

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/photodeck/internal/adapter"
	"github.com/mmcdole/photodeck/internal/domain"
	"github.com/mmcdole/photodeck/internal/export"
	"github.com/mmcdole/photodeck/internal/paginate"
)

// Command factories for async operations

// defaultFetchTimeout applies when the source timeout is not configured
const defaultFetchTimeout = 30 * time.Second

func fetchTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultFetchTimeout
	}
	return d
}

// FetchPageCmd fetches the page described by req. The result always comes
// back as a PageLoadedMsg so the controller can settle the request.
func FetchPageCmd(svc PhotoService, req paginate.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout(timeout))
		defer cancel()

		page, err := svc.FetchPhotos(ctx, req.Query())
		return PageLoadedMsg{Req: req, Page: page, Err: err}
	}
}

// LoadAlbumsCmd loads the album ids for the picker. refresh bypasses the
// cached list.
func LoadAlbumsCmd(svc PhotoService, refresh bool, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout(timeout))
		defer cancel()

		var ids []int
		var err error
		if refresh {
			ids, err = svc.RefreshAlbums(ctx)
		} else {
			ids, err = svc.AlbumIDs(ctx)
		}
		return AlbumsLoadedMsg{IDs: ids, Err: err}
	}
}

// DebounceCmd delivers seq once the quiet period has passed. A newer edit
// makes the token stale, which is how a pending commit is cancelled.
func DebounceCmd(seq uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return SearchDebounceMsg{Seq: seq}
	})
}

// TableLoadCmd schedules the table's next-page load for generation gen
func TableLoadCmd(gen uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return TableLoadMsg{Gen: gen}
	})
}

// SaveDraftCmd writes the bulk request draft for rows
func SaveDraftCmd(cfg adapter.BulkConfig, rows []domain.Photo) tea.Cmd {
	req := export.BulkRequest{
		To:      cfg.Recipients,
		Subject: cfg.Subject,
		Rows:    rows,
	}
	return func() tea.Msg {
		path, size, err := export.WriteDraft(cfg.OutputDir, cfg.Filename, req)
		return DraftSavedMsg{Path: path, Size: size, Count: len(rows), Err: err}
	}
}

// CopyTableCmd copies photos to the clipboard as an HTML table
func CopyTableCmd(cb ClipboardWriter, photos []domain.Photo) tea.Cmd {
	return func() tea.Msg {
		html, err := export.PhotoTableHTML(photos)
		if err != nil {
			return ClipboardMsg{Count: len(photos), Err: err}
		}
		method, err := cb.CopyHTML(html)
		return ClipboardMsg{Method: method, Count: len(photos), Err: err}
	}
}

// OpenURLCmd hands url to the external viewer
func OpenURLCmd(opener URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening photo"}
		}
		return OpenedMsg{URL: url}
	}
}

// BulkCloseCmd closes the bulk modal after a delay
func BulkCloseCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return BulkCloseMsg{}
	})
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

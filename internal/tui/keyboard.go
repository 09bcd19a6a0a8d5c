package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/photodeck/internal/tui/components"
	"github.com/mmcdole/photodeck/internal/window"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil

	case StateSearching:
		return m.handleSearchKey(msg)
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		m.sentinelSub.Release()
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape, Keys.Dismiss):
		if m.bannerVisible() {
			m.bannerDismissed = true
			m.updateLayout()
			return m, m.checkPagination()
		}
		if key.Matches(msg, Keys.Escape) && m.ShowInspector {
			m.ShowInspector = false
			m.updateLayout()
		}
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.State = StateSearching
		return m, m.Search.Focus()

	case key.Matches(msg, Keys.SwitchView):
		return m, m.switchView()

	case key.Matches(msg, Keys.Album):
		m.AlbumPicker.SetSize(m.Width, m.Height)
		m.AlbumPicker.Show(m.holder.Committed().AlbumID)
		return m, nil

	case key.Matches(msg, Keys.Sort):
		filters, changed := m.holder.SetSort(m.holder.Committed().SortBy.Next())
		if !changed {
			return m, nil
		}
		m.StatusMsg = "Sort: " + filters.SortBy.Label()
		m.StatusIsErr = false
		return m, tea.Batch(m.restart(filters), ClearStatusCmd(2*time.Second))

	case key.Matches(msg, Keys.SortPicker):
		m.SortModal.Show(m.holder.Committed().SortBy)
		return m, nil

	case key.Matches(msg, Keys.QuickFilter):
		if m.Mode != ModeTable {
			return m, nil
		}
		idx := int(msg.Runes[0] - '1')
		if idx < 0 || idx >= len(window.AllQuickFilters) {
			return m, nil
		}
		m.Table.ToggleQuick(window.AllQuickFilters[idx])
		m.updateInspector()
		return m, m.checkPagination()

	case key.Matches(msg, Keys.ClearQuick):
		if m.Mode != ModeTable {
			return m, nil
		}
		m.Table.ClearQuick()
		m.updateInspector()
		return m, m.checkPagination()

	case key.Matches(msg, Keys.Bulk):
		m.BulkModal.SetSize(m.Width, m.Height)
		m.BulkModal.Show(m.pager.Items())
		return m, nil

	case key.Matches(msg, Keys.Copy):
		photos := m.bulkCandidates()
		if len(photos) == 0 {
			return m, func() tea.Msg { return StatusMsg{Message: "No photos loaded yet", IsError: true} }
		}
		return m, CopyTableCmd(m.Clipboard, photos)

	case key.Matches(msg, Keys.Open):
		if p, ok := m.selectedPhoto(); ok {
			return m, OpenURLCmd(m.Opener, p.URL)
		}
		return m, nil

	case key.Matches(msg, Keys.OpenThumbnail):
		if p, ok := m.selectedPhoto(); ok {
			return m, OpenURLCmd(m.Opener, p.ThumbnailURL)
		}
		return m, nil

	case key.Matches(msg, Keys.Inspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		m.updateInspector()
		return m, m.checkPagination()

	case key.Matches(msg, Keys.Retry):
		req, ok := m.pager.Retry()
		if !ok {
			return m, nil
		}
		m.bannerDismissed = false
		m.syncItems()
		return m, m.fetch(req)

	case key.Matches(msg, Keys.Refresh):
		m.Photos.Invalidate()
		m.StatusMsg = "Refreshing..."
		m.StatusIsErr = false
		return m, tea.Batch(
			m.reload(),
			LoadAlbumsCmd(m.Photos, true, m.Config.Source.Timeout),
			ClearStatusCmd(2*time.Second),
		)

	case key.Matches(msg, Keys.ClearFilters):
		filters, _ := m.holder.Reset()
		m.Search.SetValue("")
		m.Table.ClearQuick()
		return m, m.restart(filters)
	}

	// Navigation goes to the active view
	if m.Mode == ModeTable {
		m.Table, _ = m.Table.Update(msg)
	} else {
		m.Grid, _ = m.Grid.Update(msg)
	}
	m.updateInspector()
	return m, m.checkPagination()
}

// handleSearchKey edits the search draft. Every edit restarts the quiet
// period; enter commits at once.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, Keys.Escape):
		m.State = StateBrowsing
		m.Search.Blur()
		return m, nil

	case key.Matches(msg, Keys.Submit):
		m.State = StateBrowsing
		m.Search.Blur()
		filters, changed := m.holder.Flush()
		if !changed {
			return m, nil
		}
		return m, m.restart(filters)
	}

	var cmd tea.Cmd
	before := m.Search.Value()
	m.Search, cmd = m.Search.Update(msg)
	if m.Search.Value() == before {
		return m, cmd
	}
	seq := m.holder.SetDraft(m.Search.Value())
	return m, tea.Batch(cmd, DebounceCmd(seq, m.holder.Debounce()))
}

// routeToModal sends the key to the visible modal, if any
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	// Handle album picker if visible
	if m.AlbumPicker.IsVisible() {
		var cmd tea.Cmd
		var chosen bool
		m.AlbumPicker, cmd, chosen = m.AlbumPicker.Update(msg)
		if chosen {
			if albumID, ok := m.AlbumPicker.Selected(); ok {
				if filters, changed := m.holder.SetAlbum(albumID); changed {
					return true, m, m.restart(filters)
				}
			}
		}
		return true, m, cmd
	}

	// Handle sort modal if visible
	if m.SortModal.IsVisible() {
		handled, selection := m.SortModal.HandleKey(msg.String())
		if handled {
			if selection != nil {
				if filters, changed := m.holder.SetSort(*selection); changed {
					return true, m, m.restart(filters)
				}
			}
			return true, m, nil
		}
	}

	// Handle bulk modal if visible
	if m.BulkModal.IsVisible() {
		handled, action := m.BulkModal.HandleKeyMsg(msg)
		if handled {
			switch action {
			case components.BulkClose:
				m.BulkModal.Hide()
			case components.BulkExport:
				return true, m, SaveDraftCmd(m.Config.Bulk, m.BulkModal.SelectedPhotos())
			case components.BulkCopy:
				return true, m, CopyTableCmd(m.Clipboard, m.BulkModal.SelectedPhotos())
			}
			return true, m, nil
		}
	}

	return false, m, nil
}

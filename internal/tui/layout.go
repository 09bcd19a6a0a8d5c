package tui

// Layout proportions
const (
	InspectorPercent  = 35
	MinInspectorWidth = 30
	MinContentWidth   = 30

	// Vertical chrome: header, search bar, footer
	HeaderHeight = 2
	FooterHeight = 1
)

// contentLayout holds calculated sizes for the View
type contentLayout struct {
	mainWidth      int
	inspectorWidth int // 0 if not shown
	height         int
}

// calculateLayout splits the space below the chrome between the active
// view and the inspector
func (m Model) calculateLayout() contentLayout {
	height := m.Height - HeaderHeight - FooterHeight
	if m.bannerVisible() {
		height--
	}
	layout := contentLayout{
		mainWidth: m.Width,
		height:    max(height, 1),
	}

	if m.ShowInspector {
		layout.inspectorWidth = max(m.Width*InspectorPercent/100, MinInspectorWidth)
		layout.mainWidth = max(m.Width-layout.inspectorWidth, MinContentWidth)
		layout.inspectorWidth = max(m.Width-layout.mainWidth, 0)
	}
	return layout
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	layout := m.calculateLayout()
	m.Grid.SetSize(layout.mainWidth, layout.height)
	m.Table.SetSize(layout.mainWidth, layout.height)
	if layout.inspectorWidth > 0 {
		m.Inspector.SetSize(layout.inspectorWidth, layout.height)
	}

	m.Search.Width = max(m.Width-4, 10)
	m.AlbumPicker.SetSize(m.Width, m.Height)
	m.BulkModal.SetSize(m.Width, m.Height)
}

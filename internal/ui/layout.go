package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// Layout arranges paired article panes for the current device
type Layout struct {
	device fyne.Device
}

// NewLayout creates a layout helper for device
func NewLayout(device fyne.Device) *Layout {
	return &Layout{device: device}
}

// currentLayout returns the layout for the running app
func currentLayout() *Layout {
	return NewLayout(fyne.CurrentApp().Driver().Device())
}

// IsMobileDevice checks if the app is running on a mobile device
func (l *Layout) IsMobileDevice() bool {
	return l.device != nil && l.device.IsMobile()
}

// IsPortrait returns true if device is in portrait orientation
func (l *Layout) IsPortrait() bool {
	if l.device == nil {
		return false
	}
	orientation := l.device.Orientation()
	return orientation == fyne.OrientationVertical || orientation == fyne.OrientationVerticalUpsideDown
}

// Stacked reports whether paired panes go above each other instead of side by side
func (l *Layout) Stacked() bool {
	return l.IsMobileDevice() && l.IsPortrait()
}

// ArticlePanes places two scrollable panes in a split. The split is vertical
// on portrait mobile screens.
func (l *Layout) ArticlePanes(leading, trailing fyne.CanvasObject) *container.Split {
	var split *container.Split
	if l.Stacked() {
		split = container.NewVSplit(leading, trailing)
	} else {
		split = container.NewHSplit(leading, trailing)
	}
	split.Offset = SplitOffset
	return split
}

// Pair lays out two objects in columns, or one column when stacked
func (l *Layout) Pair(leading, trailing fyne.CanvasObject) *fyne.Container {
	if l.Stacked() {
		return container.NewGridWithColumns(1, leading, trailing)
	}
	return container.NewGridWithColumns(2, leading, trailing)
}

package gesture

// WindowDrag moves a floating window by following the pointer in raw screen
// coordinates. Window-relative coordinates cannot be used because the window
// itself moves under the pointer while dragging.
type WindowDrag struct {
	active         bool
	startX, startY float64
	winX, winY     int
}

// Begin records the pointer position and the window origin at press time.
func (d *WindowDrag) Begin(rawX, rawY float64, winX, winY int) {
	d.active = true
	d.startX, d.startY = rawX, rawY
	d.winX, d.winY = winX, winY
}

// Move returns the new window origin for the pointer at (rawX, rawY). ok is
// false when no drag is in progress.
func (d *WindowDrag) Move(rawX, rawY float64) (x, y int, ok bool) {
	if !d.active {
		return 0, 0, false
	}
	x = d.winX + int(rawX-d.startX)
	y = d.winY + int(rawY-d.startY)
	return x, y, true
}

// End stops tracking.
func (d *WindowDrag) End() { d.active = false }

// Active reports whether a drag is in progress.
func (d *WindowDrag) Active() bool { return d.active }

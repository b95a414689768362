package gesture

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/soocke/sshot-go/domain/geometry"
	"github.com/soocke/sshot-go/domain/regions"
)

func newTestMachine() (*Machine, *regions.Store) {
	store := regions.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMachine(store, Options{}, logger), store
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Time { return t0.Add(time.Duration(n) * time.Millisecond) }

// draw performs a full down/up drawing gesture and returns the created region.
func draw(t *testing.T, m *Machine, x1, y1, x2, y2 float64, at time.Time) regions.Region {
	t.Helper()
	if ev := m.Down(x1, y1, at); ev != nil {
		t.Fatalf("unexpected event on draw start: %#v", ev)
	}
	ev := m.Up(x2, y2, at)
	created, ok := ev.(RectangleCreated)
	if !ok {
		t.Fatalf("expected RectangleCreated, got %#v", ev)
	}
	return created.Region
}

func TestMachine_DrawNormalizesOnRelease(t *testing.T) {
	m, store := newTestMachine()
	if ev := m.Down(50, 50, t0); ev != nil {
		t.Fatalf("unexpected event %#v", ev)
	}
	if m.State() != StateDrawing {
		t.Fatalf("expected drawing, got %v", m.State())
	}
	m.Move(30, 30, t0)
	p, ok := m.Provisional()
	if !ok || p != geometry.R(50, 50, 30, 30) {
		t.Fatalf("provisional should follow pointer unnormalized, got %v %v", p, ok)
	}
	ev := m.Up(10, 10, t0)
	created, ok := ev.(RectangleCreated)
	if !ok {
		t.Fatalf("expected RectangleCreated, got %#v", ev)
	}
	if created.Region.Rect != geometry.R(10, 10, 50, 50) {
		t.Fatalf("stored rect not normalized: %v", created.Region.Rect)
	}
	if created.Region.Number != 1 || m.NextNumber() != 2 {
		t.Fatalf("numbering: got %d next %d", created.Region.Number, m.NextNumber())
	}
	if store.Len() != 1 || m.State() != StateIdle {
		t.Fatalf("store len %d state %v", store.Len(), m.State())
	}
	if _, ok := m.Provisional(); ok {
		t.Fatalf("provisional should be cleared after release")
	}
}

func TestMachine_ZeroAreaDrawIsDiscarded(t *testing.T) {
	m, store := newTestMachine()
	m.Down(10, 10, t0)
	if ev := m.Up(10, 10, t0); ev != nil {
		t.Fatalf("tap without drag should not create, got %#v", ev)
	}
	m.Down(10, 10, ms(1000))
	if ev := m.Up(60, 10, ms(1000)); ev != nil {
		t.Fatalf("zero-height rect should not create, got %#v", ev)
	}
	if store.Len() != 0 || m.NextNumber() != 1 {
		t.Fatalf("expected empty store and counter 1, got %d / %d", store.Len(), m.NextNumber())
	}
}

func TestMachine_NumbersIncrement(t *testing.T) {
	m, _ := newTestMachine()
	a := draw(t, m, 0, 0, 10, 10, t0)
	b := draw(t, m, 100, 100, 120, 120, ms(1000))
	if a.Number != 1 || b.Number != 2 {
		t.Fatalf("expected 1 and 2, got %d and %d", a.Number, b.Number)
	}
	m.SetNextNumber(0)
	if m.NextNumber() != 3 {
		t.Fatalf("non-positive SetNextNumber should be ignored")
	}
	m.SetNextNumber(10)
	if c := draw(t, m, 200, 200, 220, 220, ms(2000)); c.Number != 10 {
		t.Fatalf("expected 10, got %d", c.Number)
	}
}

func TestMachine_DoubleTapWithinWindowShowsOptions(t *testing.T) {
	m, _ := newTestMachine()
	r := draw(t, m, 10, 10, 110, 60, t0)

	m.Down(60, 35, ms(1000))
	if m.State() != StateDragging {
		t.Fatalf("first tap should start a drag, got %v", m.State())
	}
	m.Up(60, 35, ms(1000))

	ev := m.Down(60, 35, ms(1200))
	opts, ok := ev.(ShowOptions)
	if !ok || opts.Region.Key != r.Key {
		t.Fatalf("expected ShowOptions for %d, got %#v", r.Key, ev)
	}
	if m.State() != StateIdle {
		t.Fatalf("double tap must not start a gesture, got %v", m.State())
	}
	// The pointer keeps moving; the rectangle must not follow.
	m.Move(500, 500, ms(1210))
	if ev := m.Up(500, 500, ms(1220)); ev != nil {
		t.Fatalf("up after double tap should be a no-op, got %#v", ev)
	}

	// Tap memory was cleared: a third quick tap is a fresh first tap.
	if ev := m.Down(60, 35, ms(1300)); ev != nil {
		t.Fatalf("tap after double tap should not show options again, got %#v", ev)
	}
	m.Up(60, 35, ms(1300))
}

func TestMachine_SameInstantDoubleTap(t *testing.T) {
	m, _ := newTestMachine()
	draw(t, m, 10, 10, 110, 60, t0)
	m.Down(60, 35, ms(1000))
	m.Up(60, 35, ms(1000))
	if _, ok := m.Down(60, 35, ms(1000)).(ShowOptions); !ok {
		t.Fatalf("two taps 0ms apart should show options")
	}
}

func TestMachine_SlowTapsDoNotShowOptions(t *testing.T) {
	m, _ := newTestMachine()
	draw(t, m, 10, 10, 110, 60, t0)
	m.Down(60, 35, ms(1000))
	m.Up(60, 35, ms(1000))
	if ev := m.Down(60, 35, ms(1400)); ev != nil {
		t.Fatalf("taps 400ms apart should not show options, got %#v", ev)
	}
	if m.State() != StateDragging {
		t.Fatalf("expected drag, got %v", m.State())
	}
	m.Up(60, 35, ms(1400))
	// The slow tap became the new reference.
	if _, ok := m.Down(60, 35, ms(1500)).(ShowOptions); !ok {
		t.Fatalf("tap 100ms after the slow tap should show options")
	}
}

func TestMachine_TapsOnDifferentRectanglesDoNotShowOptions(t *testing.T) {
	m, _ := newTestMachine()
	draw(t, m, 0, 0, 100, 100, t0)
	draw(t, m, 200, 0, 300, 100, ms(1000))
	m.Down(50, 50, ms(2000))
	m.Up(50, 50, ms(2000))
	if ev := m.Down(250, 50, ms(2100)); ev != nil {
		t.Fatalf("taps on different rectangles should not show options, got %#v", ev)
	}
	m.Up(250, 50, ms(2100))
}

func TestMachine_DragPreservesSize(t *testing.T) {
	m, store := newTestMachine()
	r := draw(t, m, 0, 0, 100, 50, t0)

	m.Down(50, 25, ms(1000))
	if m.State() != StateDragging {
		t.Fatalf("expected dragging, got %v", m.State())
	}
	x, y := 50.0, 25.0
	for i := 0; i < 200; i++ {
		x += 0.75
		y -= 0.25
		m.Move(x, y, ms(1000+i))
		got, _ := store.Get(r.Key)
		if got.Rect.Width() != 100 || got.Rect.Height() != 50 {
			t.Fatalf("size drifted at step %d: %v", i, got.Rect)
		}
	}
	ev := m.Up(x, y, ms(1300))
	changed, ok := ev.(RectangleChanged)
	if !ok {
		t.Fatalf("expected RectangleChanged, got %#v", ev)
	}
	want := geometry.R(150, -50, 250, 0)
	if changed.Region.Rect != want {
		t.Fatalf("final rect %v want %v", changed.Region.Rect, want)
	}
}

func TestMachine_ResizeIsIncremental(t *testing.T) {
	m, store := newTestMachine()
	r := draw(t, m, 100, 100, 300, 200, t0)

	m.Down(295, 105, ms(1000))
	if m.State() != StateResizing {
		t.Fatalf("expected resizing near top-right, got %v", m.State())
	}
	m.Move(305, 95, ms(1010))
	m.Move(320, 90, ms(1020))
	ev := m.Up(320, 90, ms(1030))
	if _, ok := ev.(RectangleChanged); !ok {
		t.Fatalf("expected RectangleChanged, got %#v", ev)
	}
	got, _ := store.Get(r.Key)
	if got.Rect != geometry.R(100, 85, 325, 200) {
		t.Fatalf("unexpected resized rect %v", got.Rect)
	}
}

func TestMachine_ResizeEachCorner(t *testing.T) {
	cases := []struct {
		name   string
		downX  float64
		downY  float64
		want   geometry.Rect
		corner string
	}{
		{"top-left", 105, 105, geometry.R(110, 110, 300, 300), "topLeft"},
		{"top-right", 295, 105, geometry.R(100, 110, 310, 300), "topRight"},
		{"bottom-left", 105, 295, geometry.R(110, 100, 300, 310), "bottomLeft"},
		{"bottom-right", 295, 295, geometry.R(100, 100, 310, 310), "bottomRight"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, store := newTestMachine()
			r := draw(t, m, 100, 100, 300, 300, t0)
			m.Down(c.downX, c.downY, ms(1000))
			if m.State() != StateResizing {
				t.Fatalf("expected resizing, got %v", m.State())
			}
			if m.corner.String() != c.corner {
				t.Fatalf("corner %v want %s", m.corner, c.corner)
			}
			m.Up(c.downX+10, c.downY+10, ms(1010))
			got, _ := store.Get(r.Key)
			if got.Rect != c.want {
				t.Fatalf("rect %v want %v", got.Rect, c.want)
			}
		})
	}
}

func TestMachine_ResizePastOppositeEdgeNormalizes(t *testing.T) {
	m, store := newTestMachine()
	r := draw(t, m, 0, 0, 100, 100, t0)
	m.Down(100, 100, ms(1000))
	m.Move(-50, 50, ms(1010))
	m.Up(-50, 50, ms(1020))
	got, _ := store.Get(r.Key)
	if got.Rect != geometry.R(-50, 0, 0, 50) {
		t.Fatalf("expected normalized rect, got %v", got.Rect)
	}
}

func TestMachine_TopmostRectangleIsGrabbed(t *testing.T) {
	m, store := newTestMachine()
	a := draw(t, m, 0, 0, 200, 200, t0)
	b := draw(t, m, 300, 300, 100, 100, ms(1000))
	m.Down(150, 150, ms(2000))
	m.Move(160, 150, ms(2010))
	m.Up(160, 150, ms(2020))
	ga, _ := store.Get(a.Key)
	gb, _ := store.Get(b.Key)
	if ga.Rect != a.Rect {
		t.Fatalf("lower rectangle moved: %v", ga.Rect)
	}
	if gb.Rect != geometry.R(110, 100, 310, 300) {
		t.Fatalf("topmost rectangle not dragged: %v", gb.Rect)
	}
}

func TestMachine_RenumberAndDelete(t *testing.T) {
	m, store := newTestMachine()
	r := draw(t, m, 0, 0, 100, 100, t0)

	if m.Renumber(r.Key, 0) || m.Renumber(r.Key, -5) {
		t.Fatalf("non-positive renumber must be rejected")
	}
	if got, _ := store.Get(r.Key); got.Number != 1 {
		t.Fatalf("number changed: %d", got.Number)
	}
	if !m.Renumber(r.Key, 7) {
		t.Fatalf("renumber to 7 should succeed")
	}

	ev := m.Delete(r.Key)
	del, ok := ev.(RectangleDeleted)
	if !ok || del.Region.Key != r.Key || del.Region.Number != 7 {
		t.Fatalf("expected RectangleDeleted for %d, got %#v", r.Key, ev)
	}
	if store.Len() != 0 {
		t.Fatalf("store not empty after delete")
	}
	if ev := m.Delete(r.Key); ev != nil {
		t.Fatalf("deleting unknown key should return nil, got %#v", ev)
	}
}

func TestMachine_ResetKeepsNumbering(t *testing.T) {
	m, store := newTestMachine()
	draw(t, m, 0, 0, 10, 10, t0)
	m.Down(500, 500, ms(1000))
	m.Move(600, 600, ms(1010))
	m.Reset()
	if m.State() != StateIdle {
		t.Fatalf("reset should return to idle")
	}
	if _, ok := m.Provisional(); ok {
		t.Fatalf("reset should drop provisional rect")
	}
	if store.Len() != 1 || m.NextNumber() != 2 {
		t.Fatalf("reset touched store or counter: %d / %d", store.Len(), m.NextNumber())
	}
}

func TestMachine_LostReleaseFinishesDrawAtLastPointer(t *testing.T) {
	m, store := newTestMachine()
	m.Down(10, 10, t0)
	m.Move(50, 40, ms(10))
	// The release never arrives; the next press lands elsewhere.
	m.Down(300, 300, ms(20))

	rs := store.Snapshot()
	if len(rs) != 1 {
		t.Fatalf("expected the interrupted drawing to be kept, got %d regions", len(rs))
	}
	if want := geometry.R(10, 10, 50, 40); rs[0].Rect != want {
		t.Fatalf("interrupted drawing should end at the last move, got %+v want %+v", rs[0].Rect, want)
	}
	if m.State() != StateDrawing {
		t.Fatalf("new press should start a drawing, got %s", m.State())
	}
}

func TestMachine_LostReleaseFinishesDragAtLastPointer(t *testing.T) {
	m, store := newTestMachine()
	r := draw(t, m, 100, 100, 200, 150, t0)
	m.Down(150, 125, ms(1000))
	m.Move(160, 135, ms(1010))
	m.Down(600, 600, ms(1020))

	got, _ := store.Get(r.Key)
	if want := geometry.R(110, 110, 210, 160); got.Rect != want {
		t.Fatalf("drag should stop where the pointer was last seen, got %+v want %+v", got.Rect, want)
	}
}

func TestWindowDrag_FollowsRawPointer(t *testing.T) {
	var d WindowDrag
	if _, _, ok := d.Move(10, 10); ok {
		t.Fatalf("move without begin should report !ok")
	}
	d.Begin(500, 400, 100, 100)
	x, y, ok := d.Move(530, 380)
	if !ok || x != 130 || y != 80 {
		t.Fatalf("unexpected position %d,%d %v", x, y, ok)
	}
	x, y, _ = d.Move(450, 450)
	if x != 50 || y != 150 {
		t.Fatalf("delta should be measured from press, got %d,%d", x, y)
	}
	d.End()
	if d.Active() {
		t.Fatalf("drag still active after End")
	}
}

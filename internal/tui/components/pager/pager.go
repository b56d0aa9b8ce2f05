// Package pager is a horizontally paged pane. It implements agenda.Controller
// and reports every offset change back through a callback.
package pager

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/julianstephens/agenda/internal/agenda"
	"github.com/julianstephens/agenda/internal/constants"
)

// ScrollFunc receives the pane's offset after every change.
type ScrollFunc func(p agenda.Pane, offset float64) bool

type snap struct {
	from  float64
	to    float64
	frame int
}

// Model holds a pane's horizontal position. Use it through a pointer so the
// synchronizer and the TUI share one instance.
type Model struct {
	pane     agenda.Pane
	width    int
	pages    int
	offset   float64
	onScroll ScrollFunc

	dragging   bool
	dragX      int
	dragOffset float64

	anim *snap
}

func New(pane agenda.Pane) *Model {
	return &Model{pane: pane}
}

// OnScroll sets the callback that receives offset reports.
func (m *Model) OnScroll(fn ScrollFunc) {
	m.onScroll = fn
}

// Pane returns the pane this pager renders.
func (m *Model) Pane() agenda.Pane { return m.pane }

// Width returns the page width in cells.
func (m *Model) Width() int { return m.width }

// Pages returns the number of pages.
func (m *Model) Pages() int { return m.pages }

// Offset returns the horizontal offset in cells.
func (m *Model) Offset() float64 { return m.offset }

// SetWidth changes the page width and keeps the same relative position. It
// does not report the change.
func (m *Model) SetWidth(width int) {
	if width < 0 {
		width = 0
	}
	if m.width > 0 {
		m.offset = m.offset / float64(m.width) * float64(width)
	} else {
		m.offset = 0
	}
	if m.anim != nil && m.width > 0 {
		scale := float64(width) / float64(m.width)
		m.anim.from *= scale
		m.anim.to *= scale
	}
	m.width = width
	m.offset = m.clamp(m.offset)
}

// SetPages changes the page count, clamping the offset without reporting.
func (m *Model) SetPages(n int) {
	if n < 0 {
		n = 0
	}
	m.pages = n
	m.offset = m.clamp(m.offset)
	if m.anim != nil {
		m.anim.to = m.clamp(m.anim.to)
	}
}

func (m *Model) maxOffset() float64 {
	if m.pages <= 1 {
		return 0
	}
	return float64((m.pages - 1) * m.width)
}

func (m *Model) clamp(offset float64) float64 {
	if math.IsNaN(offset) || offset < 0 {
		return 0
	}
	return math.Min(offset, m.maxOffset())
}

// Page returns the page nearest the current offset.
func (m *Model) Page() int {
	if m.width == 0 {
		return 0
	}
	p := int(math.Round(m.offset / float64(m.width)))
	if p >= m.pages {
		p = m.pages - 1
	}
	if p < 0 {
		p = 0
	}
	return p
}

// ScrollTo moves the pane. An animated scroll only records the target; call
// Step until it reports done.
func (m *Model) ScrollTo(offset float64, animated bool) {
	offset = m.clamp(offset)
	if animated {
		m.anim = &snap{from: m.offset, to: offset}
		return
	}
	m.anim = nil
	m.set(offset)
}

// ScrollToPage moves to page i.
func (m *Model) ScrollToPage(i int, animated bool) {
	m.ScrollTo(float64(i*m.width), animated)
}

// Position places the pane on page i without reporting it. Used for the
// initial layout, where both panes are placed directly.
func (m *Model) Position(i int) {
	m.anim = nil
	m.offset = m.clamp(float64(i * m.width))
}

func (m *Model) set(offset float64) {
	m.offset = offset
	if m.onScroll != nil {
		m.onScroll(m.pane, offset)
	}
}

// Animating reports whether a snap is in flight.
func (m *Model) Animating() bool { return m.anim != nil }

// Stop abandons an in-flight snap where it is.
func (m *Model) Stop() { m.anim = nil }

// Step advances the snap by one frame and reports the new offset. It returns
// true once the pane rests on its target or when nothing was animating.
func (m *Model) Step() bool {
	if m.anim == nil {
		return true
	}
	m.anim.frame++
	t := float64(m.anim.frame) / constants.SnapFrames
	if t >= 1 {
		to := m.anim.to
		m.anim = nil
		m.set(to)
		return true
	}
	// ease-out cubic
	e := 1 - math.Pow(1-t, 3)
	m.set(m.anim.from + (m.anim.to-m.anim.from)*e)
	return false
}

// BeginDrag anchors a pointer drag at column x.
func (m *Model) BeginDrag(x int) {
	m.anim = nil
	m.dragging = true
	m.dragX = x
	m.dragOffset = m.offset
}

// Dragging reports whether a pointer drag is in progress.
func (m *Model) Dragging() bool { return m.dragging }

// DragTo follows the pointer; content moves with it.
func (m *Model) DragTo(x int) {
	if !m.dragging {
		return
	}
	m.set(m.clamp(m.dragOffset - float64(x-m.dragX)))
}

// EndDrag releases the pointer and starts a snap to the nearest page.
func (m *Model) EndDrag() {
	if !m.dragging {
		return
	}
	m.dragging = false
	m.ScrollToPage(m.Page(), true)
}

// View composes the visible slice of pages. Each page is expected to be
// width cells wide; shorter lines are padded.
func (m *Model) View(pages []string, height int) string {
	if m.width == 0 || len(pages) == 0 || height <= 0 {
		return ""
	}

	off := int(math.Round(m.offset))
	first := off / m.width
	shift := off % m.width

	left := pageLines(pages, first, m.width, height)
	var right []string
	if shift > 0 {
		right = pageLines(pages, first+1, m.width, height)
	}

	lines := make([]string, height)
	for i := range lines {
		if shift == 0 {
			lines[i] = left[i]
			continue
		}
		lines[i] = ansi.Cut(left[i]+right[i], shift, shift+m.width)
	}
	return strings.Join(lines, "\n")
}

func pageLines(pages []string, i, width, height int) []string {
	lines := make([]string, height)
	var src []string
	if i >= 0 && i < len(pages) {
		src = strings.Split(pages[i], "\n")
	}
	for j := range lines {
		var line string
		if j < len(src) {
			line = ansi.Truncate(src[j], width, "")
		}
		if pad := width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lines[j] = line
	}
	return lines
}

package agenda

import (
	"math"

	"github.com/julianstephens/agenda/internal/logger"
)

// Pane identifies one of the two synchronized views.
type Pane int

const (
	PaneNone Pane = iota
	PaneCalendar
	PaneAgenda
)

func (p Pane) String() string {
	switch p {
	case PaneCalendar:
		return "calendar"
	case PaneAgenda:
		return "agenda"
	default:
		return "none"
	}
}

// Other returns the opposite pane. PaneNone has no opposite.
func (p Pane) Other() Pane {
	switch p {
	case PaneCalendar:
		return PaneAgenda
	case PaneAgenda:
		return PaneCalendar
	default:
		return PaneNone
	}
}

func (p Pane) valid() bool {
	return p == PaneCalendar || p == PaneAgenda
}

// State is the synchronizer's drag state.
type State int

const (
	StateIdle State = iota
	StateDraggingCalendar
	StateDraggingAgenda
)

func (s State) String() string {
	switch s {
	case StateDraggingCalendar:
		return "dragging-calendar"
	case StateDraggingAgenda:
		return "dragging-agenda"
	default:
		return "idle"
	}
}

// Controller repositions a pane. ScrollTo must apply before it returns; a
// controller may report the new offset back through OnScroll.
type Controller interface {
	ScrollTo(offset float64, animated bool)
}

type scrollState struct {
	width  float64
	offset float64
	ctrl   Controller
}

// Synchronizer mirrors horizontal scrolling between the calendar and agenda
// panes proportionally to their page widths. Only the pane that started the
// current drag drives the other, so programmatic scrolls never echo back.
//
// A Synchronizer is not safe for concurrent use.
type Synchronizer struct {
	panes [3]scrollState // indexed by Pane; PaneNone unused
	owner Pane
}

// NewSynchronizer returns an idle synchronizer. Either controller may be nil
// and attached later.
func NewSynchronizer(calendar, agenda Controller) *Synchronizer {
	s := &Synchronizer{}
	s.panes[PaneCalendar].ctrl = calendar
	s.panes[PaneAgenda].ctrl = agenda
	return s
}

// Attach binds a controller to a pane.
func (s *Synchronizer) Attach(p Pane, ctrl Controller) {
	if !p.valid() {
		return
	}
	s.panes[p].ctrl = ctrl
}

// OnDragStart makes p the drag owner, replacing any previous owner.
func (s *Synchronizer) OnDragStart(p Pane) {
	if !p.valid() {
		return
	}
	if s.owner != p {
		logger.Debug("drag started", "pane", p, "previous", s.owner)
	}
	s.owner = p
}

// OnDragEnd returns to idle if p still owns the drag. A release from a pane
// that lost ownership to the other pane is ignored.
func (s *Synchronizer) OnDragEnd(p Pane) {
	if !p.valid() || s.owner != p {
		return
	}
	logger.Debug("drag ended", "pane", p)
	s.owner = PaneNone
}

// OnScroll records p's offset and, when p owns the drag, scrolls the other
// pane to the same fraction of its width. It reports whether a command was
// issued.
func (s *Synchronizer) OnScroll(p Pane, offset float64) bool {
	if !p.valid() || isNonFinite(offset) {
		return false
	}
	s.panes[p].offset = offset
	if s.owner != p {
		return false
	}

	src := s.panes[p]
	other := p.Other()
	dst := &s.panes[other]
	if src.width == 0 || dst.ctrl == nil {
		return false
	}

	target := offset / src.width * dst.width
	if isNonFinite(target) {
		return false
	}
	dst.offset = target
	dst.ctrl.ScrollTo(target, false)
	return true
}

// OnLayout records p's measured page width. The other pane's offset is left
// untouched.
func (s *Synchronizer) OnLayout(p Pane, width float64) {
	if !p.valid() || isNonFinite(width) {
		return
	}
	if width < 0 {
		width = 0
	}
	s.panes[p].width = width
}

// Owner returns the pane currently driving synchronization.
func (s *Synchronizer) Owner() Pane { return s.owner }

// State returns the drag state derived from the owner.
func (s *Synchronizer) State() State {
	switch s.owner {
	case PaneCalendar:
		return StateDraggingCalendar
	case PaneAgenda:
		return StateDraggingAgenda
	default:
		return StateIdle
	}
}

// Width returns the last measured width of p.
func (s *Synchronizer) Width(p Pane) float64 {
	if !p.valid() {
		return 0
	}
	return s.panes[p].width
}

// Offset returns the last known offset of p.
func (s *Synchronizer) Offset(p Pane) float64 {
	if !p.valid() {
		return 0
	}
	return s.panes[p].offset
}

func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

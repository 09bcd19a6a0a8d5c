package window

// Sentinel tracks whether the pseudo row after the last card is on
// screen. Visibility only counts while a subscription is held; the grid
// acquires one when it becomes the active view and releases it when it
// stops being rendered.
type Sentinel struct {
	gen     uint64
	active  bool
	visible bool
}

// Subscription is a scoped hold on a Sentinel
type Subscription struct {
	s  *Sentinel
	id uint64
}

// Observe starts a new subscription, superseding any earlier one
func (s *Sentinel) Observe() Subscription {
	s.gen++
	s.active = true
	s.visible = false
	return Subscription{s: s, id: s.gen}
}

// Release ends the subscription. Releasing a superseded or already
// released subscription does nothing.
func (sub *Subscription) Release() {
	if sub.s == nil {
		return
	}
	if sub.s.gen == sub.id {
		sub.s.active = false
		sub.s.visible = false
	}
	sub.s = nil
}

// Held reports whether this subscription is still the live one
func (sub Subscription) Held() bool {
	return sub.s != nil && sub.s.active && sub.s.gen == sub.id
}

// Update records the latest visibility; ignored with no live subscription
func (s *Sentinel) Update(visible bool) {
	if s.active {
		s.visible = visible
	}
}

// Active reports whether a subscription is live
func (s *Sentinel) Active() bool { return s.active }

// InView reports whether the sentinel is observed and on screen
func (s *Sentinel) InView() bool { return s.active && s.visible }

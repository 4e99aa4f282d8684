package engine

import (
	log "github.com/sirupsen/logrus"
)

// swipeSession accumulates 2-D motion between GESTURE_SWIPE_BEGIN and
// GESTURE_SWIPE_END. idle → active → (classify) → idle.
type swipeSession struct {
	on        bool
	fingers   string
	dx, dy    float64
	minDistSq float64
}

func (s *swipeSession) active() bool { return s.on }

func (s *swipeSession) begin(ev RawEvent) {
	s.on = true
	s.fingers = ev.Primary
	s.dx, s.dy = 0, 0
}

func (s *swipeSession) update(ev RawEvent) error {
	if !s.on {
		// libinput can emit updates for a gesture we never saw begin, e.g.
		// when attaching mid-stream. Treat it as an implicit begin.
		s.begin(ev)
	}
	dx, dy, err := parseSwipeDeltas(ev.Params)
	if err != nil {
		return err
	}
	s.dx += dx
	s.dy += dy
	return nil
}

// end classifies the accumulated motion. ok=false is a decline (no net
// motion), not an error.
func (s *swipeSession) end(table *BindingTable) (motion, qualifier string, ok bool) {
	s.on = false
	motion, ok = ClassifySwipe(s.dx, s.dy, s.minDistSq, table.HasOblique(KindSwipe))
	if !ok {
		log.Debugf("swipe declined: dx=%.2f dy=%.2f", s.dx, s.dy)
		return "", "", false
	}
	return motion, s.fingers, true
}

// pinchSession accumulates (scale deviation, rotation angle) between
// GESTURE_PINCH_BEGIN and GESTURE_PINCH_END.
type pinchSession struct {
	on    bool
	scale float64 // sum of per-update (ratio - 1)
	angle float64 // summed rotation, degrees
}

func (p *pinchSession) active() bool { return p.on }

func (p *pinchSession) begin(ev RawEvent) {
	p.on = true
	p.scale, p.angle = 0, 0
}

func (p *pinchSession) update(ev RawEvent) error {
	if !p.on {
		p.begin(ev)
	}
	ratio, angle, err := parsePinchParams(ev.Params)
	if err != nil {
		return err
	}
	p.scale += ratio - 1
	p.angle += angle
	return nil
}

func (p *pinchSession) end(table *BindingTable) (motion, qualifier string, ok bool) {
	p.on = false
	motion, ok = ClassifyPinch(p.scale, p.angle, table.HasOblique(KindPinch))
	if !ok {
		log.Debugf("pinch declined: scale=%.2f angle=%.2f", p.scale, p.angle)
		return "", "", false
	}
	// pinch has no qualifier
	return motion, "", true
}

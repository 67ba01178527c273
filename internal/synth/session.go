package synth

import "github.com/data-sculptor/aws-lakehouse-clickstream/internal/domain"

// Follow-up event distribution within a session, modeling funnel drop-off.
const (
	pageViewWeight  = 0.78
	addToCartWeight = 0.18
)

// Session produces an ordered sequence of 1..maxEvents events sharing one
// freshly minted session identifier. The first event is always a page view;
// follow-up types are drawn from the funnel distribution. The returned
// slice is the only state the session leaves behind.
func (s *Synthesizer) Session(userID string, maxEvents int) []*domain.ClickstreamEvent {
	sessionID := s.NewSessionID()
	n := 1 + s.rng.Intn(maxEvents)

	events := make([]*domain.ClickstreamEvent, 0, n)
	events = append(events, s.Event(userID, sessionID, domain.EventTypePageView))
	for i := 1; i < n; i++ {
		events = append(events, s.Event(userID, sessionID, s.followUpType()))
	}
	return events
}

// followUpType draws an event type with weights
// page_view 0.78, add_to_cart 0.18, purchase 0.04.
func (s *Synthesizer) followUpType() domain.EventType {
	switch r := s.rng.Float64(); {
	case r < pageViewWeight:
		return domain.EventTypePageView
	case r < pageViewWeight+addToCartWeight:
		return domain.EventTypeAddToCart
	default:
		return domain.EventTypePurchase
	}
}

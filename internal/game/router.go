package game

// NotificationRouter hands a spotlight activation to a single policeman.
type NotificationRouter struct {
	roster []*Policeman
}

// NewNotificationRouter creates a router over the session's policeman roster.
func NewNotificationRouter(roster []*Policeman) *NotificationRouter {
	return &NotificationRouter{roster: roster}
}

// NotifySpotlightActivated delivers the notification to the nearest policeman
// that is not at capacity or returning to the drop-off zone. Returns the id of
// the notified policeman, or "" if nobody was eligible.
func (r *NotificationRouter) NotifySpotlightActivated(pos Vec2) string {
	var nearest *Policeman
	best := 0.0
	for _, p := range r.roster {
		if p.AtCapacity() || p.Behavior.Kind == BehaviorReturningToDropOff {
			continue
		}
		d := Distance(p.Position, pos)
		if nearest == nil || d < best {
			nearest, best = p, d
		}
	}
	if nearest == nil || !nearest.Notify(pos) {
		return ""
	}
	return nearest.ID
}

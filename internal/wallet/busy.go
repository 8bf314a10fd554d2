package wallet

import "ewallet/internal/domain" // Busy error

// OpClass groups operations that share one busy flag
type OpClass int

const (
	OpAuth     OpClass = iota // Signup and login
	OpMutation                // Recharge, transfer and manual reload
	OpLookup                  // Receiver preview
	opClassCount
)

// String names the class for logs and metrics
func (o OpClass) String() string {
	switch o {
	case OpAuth:
		return "auth"
	case OpMutation:
		return "mutation"
	case OpLookup:
		return "lookup"
	}
	return "unknown"
}

// blockers lists the classes that must be idle before a class may start.
// Nothing overlaps a session transition, and no two mutating calls overlap.
var blockers = [opClassCount][]OpClass{
	OpAuth:     {OpAuth, OpMutation, OpLookup},
	OpMutation: {OpAuth, OpMutation},
	OpLookup:   {OpAuth, OpLookup},
}

// BusyFlags is the per-class busy state exposed to views
type BusyFlags struct {
	Auth     bool `json:"auth"`     // Disable signup and login submit
	Mutation bool `json:"mutation"` // Disable recharge and transfer submit
	Lookup   bool `json:"lookup"`   // Disable the receiver lookup button
}

// busyFlags copies the flags; c.mu must be held
func (s *state) busyFlags() BusyFlags {
	return BusyFlags{Auth: s.busy[OpAuth], Mutation: s.busy[OpMutation], Lookup: s.busy[OpLookup]}
}

// Busy reports whether class is in flight
func (c *Controller) Busy(class OpClass) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.busy[class]
}

// CanStart reports whether class would be accepted right now
func (c *Controller) CanStart(class OpClass) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canStartLocked(class)
}

// canStartLocked checks blockers; c.mu must be held
func (c *Controller) canStartLocked(class OpClass) bool {
	for _, b := range blockers[class] {
		if c.st.busy[b] {
			return false
		}
	}
	return true
}

// begin marks class busy and clears the status surface. The returned release
// must be deferred; it clears the flag on every exit path. A rejected start
// returns domain.ErrBusy and leaves the state untouched.
func (c *Controller) begin(class OpClass) (release func(), epoch uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.canStartLocked(class) {
		opsTotal.WithLabelValues(class.String(), string(domain.KindBusy)).Inc()
		return nil, 0, domain.ErrBusy
	}
	c.st.busy[class] = true
	c.st.status = Status{}
	released := false
	release = func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !released {
			released = true
			c.st.busy[class] = false
		}
	}
	return release, c.st.epoch, nil
}

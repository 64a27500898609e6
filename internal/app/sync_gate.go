package app

// gateState is what the synchronization gate currently has in flight.
type gateState int

const (
	gateIdle gateState = iota
	gateSaving
	gateDeleting
)

// syncGate serializes writes to the server: at most one save or delete is in
// flight at any time. Being in a non-idle state is itself the guard; there
// is no separate flag to drift out of sync.
type syncGate struct {
	state gateState
}

func (g *syncGate) Busy() bool {
	return g.state != gateIdle
}

// BeginSave claims the gate for a save. It reports false when something is
// already in flight.
func (g *syncGate) BeginSave() bool {
	if g.state != gateIdle {
		return false
	}
	g.state = gateSaving
	return true
}

// BeginDelete claims the gate for a delete.
func (g *syncGate) BeginDelete() bool {
	if g.state != gateIdle {
		return false
	}
	g.state = gateDeleting
	return true
}

// Settle releases the gate once the in-flight operation's result message
// arrives, success or failure.
func (g *syncGate) Settle() {
	g.state = gateIdle
}

package apply

import "fmt"

// Position names a heap slot: either the runtime-provided Host slot for the
// current redex, or a Named offset from a locally bound reference.
type Position struct {
	// Host is true for Position::Host; false for Position::Named.
	Host bool

	// Ref and GateIndex are meaningful only when Host is false.
	Ref       string
	GateIndex uint64
}

// NewPosition builds a Named position at the given gate index.
func NewPosition(ref string, gateIndex uint64) Position {
	return Position{Ref: ref, GateIndex: gateIndex}
}

// InitialPosition builds a Named position at gate index 0 — the cell's own
// head slot.
func InitialPosition(ref string) Position {
	return NewPosition(ref, 0)
}

// HostPosition is the runtime's host slot for the current redex.
func HostPosition() Position {
	return Position{Host: true}
}

func (p Position) String() string {
	if p.Host {
		return "host"
	}
	if p.GateIndex == 0 {
		return p.Ref
	}
	return fmt.Sprintf("%s+%d", p.Ref, p.GateIndex)
}

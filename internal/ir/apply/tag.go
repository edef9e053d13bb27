package apply

import "fmt"

// NameId is the numeric id carried by a Tag, an extension/constructor
// name, or a binary operator — anywhere spec.md calls for a fixed,
// bit-compatible integer.
type NameId = uint64

// Arity is the number of heap cells a tagged value occupies.
type Arity = uint64

// Tag identifies the shape of a heap pointer. The id and size assignments
// below are fixed for bit-compatible interop with the runtime and must
// never be renumbered; see spec.md §3's tag table.
type Tag int

const (
	Dup0 Tag = iota
	Dup1
	AtomTag
	Argument
	Erased
	Lam
	App
	Super
	Constructor
	Function
	Binary
	U60
	F60
	Nil
)

// Size returns the number of heap cells a value of this tag occupies.
func (t Tag) Size() Arity {
	switch t {
	case Dup0, Dup1, AtomTag, Argument, Erased, U60, F60:
		return 1
	case Lam, App, Constructor, Function, Binary:
		return 2
	case Super:
		return 3
	case Nil:
		return 0
	default:
		panic(fmt.Sprintf("apply: unknown tag %v", int(t)))
	}
}

// ID returns the fixed wire id of the tag.
func (t Tag) ID() NameId {
	switch t {
	case Dup0:
		return 0x0
	case Dup1:
		return 0x1
	case AtomTag:
		return 0x2
	case Argument:
		return 0x3
	case Erased:
		return 0x4
	case Lam:
		return 0x5
	case App:
		return 0x6
	case Super:
		return 0x7
	case Constructor:
		return 0x8
	case Function:
		return 0x9
	case Binary:
		return 0xa
	case U60:
		return 0xb
	case F60:
		return 0xc
	case Nil:
		return 0xf
	default:
		panic(fmt.Sprintf("apply: unknown tag %v", int(t)))
	}
}

func (t Tag) String() string {
	switch t {
	case Dup0:
		return "Dup0"
	case Dup1:
		return "Dup1"
	case AtomTag:
		return "Atom"
	case Argument:
		return "Argument"
	case Erased:
		return "Erased"
	case Lam:
		return "Lam"
	case App:
		return "App"
	case Super:
		return "Super"
	case Constructor:
		return "Constructor"
	case Function:
		return "Function"
	case Binary:
		return "Binary"
	case U60:
		return "U60"
	case F60:
		return "F60"
	case Nil:
		return "Nil"
	default:
		return "?"
	}
}

// AllTags lists every tag in ascending id order, for checkers that need to
// walk the whole table (spec.md §8 Testable Property 6).
var AllTags = []Tag{Dup0, Dup1, AtomTag, Argument, Erased, Lam, App, Super, Constructor, Function, Binary, U60, F60, Nil}

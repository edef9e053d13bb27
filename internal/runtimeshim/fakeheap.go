package runtimeshim

import (
	apply "ruleforge/internal/ir/apply"
)

// cell is one heap slot in FakeHeap's backing store.
type cell struct {
	tag  apply.Tag
	ext  uint64
	num  uint64
	f60  float64
	slot []Pointer
}

// FakeHeap is a deterministic, single-threaded RuntimeABI suitable for
// tests and the interpreter back-end: it never touches real shared
// memory, so Eval runs over it are reproducible byte-for-byte (spec.md
// §8 Testable Property 2).
type FakeHeap struct {
	cells []cell
	cost  uint64
	host  uint64
	term  Pointer
}

func NewFakeHeap(term Pointer) *FakeHeap {
	return &FakeHeap{term: term}
}

func (h *FakeHeap) pack(index uint64, tag apply.Tag, ext uint64) Pointer {
	return Pointer(tag)<<60 | Pointer(ext&0xfffffff)<<32 | Pointer(index)
}

func (h *FakeHeap) indexOf(p Pointer) int { return int(p & 0xffffffff) }

func (h *FakeHeap) IncrementCost()    { h.cost++ }
func (h *FakeHeap) GetHost() uint64   { return h.host }
func (h *FakeHeap) GetTerm() Pointer  { return h.term }

func (h *FakeHeap) Link(position Position, value Pointer) {
	idx := h.indexOf(position)
	slot := position & 1 // deterministic low-bit slot selector for a 2-cell node
	_ = slot
	if idx >= len(h.cells) {
		return
	}
	h.cells[idx].slot = append(h.cells[idx].slot, value)
}

func (h *FakeHeap) Free(position Position, arity uint64) {
	idx := h.indexOf(position)
	if idx >= 0 && idx < len(h.cells) {
		h.cells[idx] = cell{}
	}
}

func (h *FakeHeap) UpdateCont(goup uint64)                                  {}
func (h *FakeHeap) UpdateHost(vbuf []Pointer, vlen uint64)                  {}
func (h *FakeHeap) Visit(vbuf []Pointer, vlen, index uint64) bool           { return vlen < index }
func (h *FakeHeap) IncreaseVlen(vbuf []Pointer, vlen, index uint64) uint64  { return vlen + 1 }
func (h *FakeHeap) CreateVBuf() []Pointer                                  { return nil }

func (h *FakeHeap) alloc(tag apply.Tag, arity uint64) Pointer {
	index := uint64(len(h.cells))
	h.cells = append(h.cells, cell{tag: tag, slot: make([]Pointer, 0, arity)})
	return h.pack(index, tag, 0)
}

func (h *FakeHeap) Alloc(arity uint64) uint64 {
	index := uint64(len(h.cells))
	h.cells = append(h.cells, cell{slot: make([]Pointer, 0, arity)})
	return index
}

func (h *FakeHeap) LoadArgument(term Pointer, argumentIndex uint64) Pointer {
	idx := h.indexOf(term)
	if idx >= len(h.cells) || int(argumentIndex) >= len(h.cells[idx].slot) {
		return 0
	}
	return h.cells[idx].slot[argumentIndex]
}

func (h *FakeHeap) GetPosition(pointer Pointer, argument uint64) Pointer {
	idx := h.indexOf(pointer)
	return Pointer(idx)<<32 | argument
}

func (h *FakeHeap) GetExt(pointer Pointer) uint64 {
	idx := h.indexOf(pointer)
	if idx < len(h.cells) {
		return h.cells[idx].ext
	}
	return 0
}

func (h *FakeHeap) GetTag(pointer Pointer) uint64 { return uint64(pointer >> 60) }

func (h *FakeHeap) GetNumber(pointer Pointer) uint64 {
	idx := h.indexOf(pointer)
	if idx < len(h.cells) {
		return h.cells[idx].num
	}
	return 0
}

func (h *FakeHeap) CreateU60(value uint64) Pointer {
	p := h.alloc(apply.U60, 1)
	idx := h.indexOf(p)
	h.cells[idx].num = value
	return p
}

func (h *FakeHeap) CreateF60(value float64) Pointer {
	p := h.alloc(apply.F60, 1)
	idx := h.indexOf(p)
	h.cells[idx].f60 = value
	return p
}

func (h *FakeHeap) CreateConstructor(fun uint64, position Position) Pointer {
	idx := h.indexOf(position)
	if idx < len(h.cells) {
		h.cells[idx].tag = apply.Constructor
		h.cells[idx].ext = fun
	}
	return h.pack(uint64(idx), apply.Constructor, fun)
}

func (h *FakeHeap) CreateFunction(fun uint64, position Position) Pointer {
	idx := h.indexOf(position)
	if idx < len(h.cells) {
		h.cells[idx].tag = apply.Function
		h.cells[idx].ext = fun
	}
	return h.pack(uint64(idx), apply.Function, fun)
}

func (h *FakeHeap) CreateErased() Pointer {
	return h.pack(0, apply.Erased, 0)
}

func (h *FakeHeap) CreateBinary(operand uint64, position Position) Pointer {
	idx := h.indexOf(position)
	return h.pack(uint64(idx), apply.Binary, operand)
}

func (h *FakeHeap) CreateApp(position Position) Pointer {
	return h.pack(uint64(h.indexOf(position)), apply.App, 0)
}

func (h *FakeHeap) CreateVar(position Position) Pointer {
	return h.pack(uint64(h.indexOf(position)), apply.AtomTag, 0)
}

func (h *FakeHeap) CreateLam(position Position) Pointer {
	return h.pack(uint64(h.indexOf(position)), apply.Lam, 0)
}

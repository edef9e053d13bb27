// Package checks runs the static checkers spec.md §8 names over compiled
// apply IR before it reaches a back-end: every referenced name is bound
// before it's used, every freed cell stays unread afterward, every tag in
// the fixed table reports a size, and a compiled rule group always falls
// through to Return(False) rather than crashing on a non-matching redex.
package checks

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	apply "ruleforge/internal/ir/apply"
)

// Finding is one checker's complaint: a human-readable message plus
// which checker raised it, so callers can filter by category.
type Finding struct {
	Checker string
	Message string
}

func (f Finding) String() string { return fmt.Sprintf("[%s] %s", f.Checker, f.Message) }

// CheckBindBeforeUse walks a block's straight-line instructions and
// reports any Ref that names a variable not yet bound by a preceding
// Bind, nor present in the initial `bound` set (the rule's collected
// parameter bindings).
func CheckBindBeforeUse(block apply.Block, bound map[string]bool) []Finding {
	seen := maps.Clone(bound)
	var findings []Finding

	var walkTerm func(t apply.Term)
	walkTerm = func(t apply.Term) {
		switch t.Kind {
		case apply.KRef:
			if !seen[t.Ref] {
				findings = append(findings, Finding{"bind-before-use", fmt.Sprintf("reference to %q before any binding", t.Ref)})
			}
		case apply.KArityOf, apply.KGetExt, apply.KGetNumber, apply.KGetTag, apply.KLoadArgument:
			walkTerm(*t.Term)
		case apply.KEqual, apply.KLogicalOr, apply.KLogicalAnd:
			walkTerm(*t.Lhs)
			walkTerm(*t.Rhs)
		}
	}

	var walk func(instructions []apply.Instruction)
	walk = func(instructions []apply.Instruction) {
		for _, inst := range instructions {
			switch inst.Kind {
			case apply.IBind:
				walkTerm(inst.Value)
				seen[inst.Name] = true
			case apply.ILink:
				walkTerm(inst.Link)
			case apply.ICollect, apply.ITerm, apply.IReturn:
				walkTerm(inst.Term)
			case apply.IIf:
				walkTerm(inst.Cond)
				branchSeen := maps.Clone(seen)
				walkWithScope(inst.Then.Instructions, branchSeen, &findings)
				if inst.Else != nil {
					elseSeen := maps.Clone(seen)
					walkWithScope(inst.Else.Instructions, elseSeen, &findings)
				}
			case apply.IMetadata:
				walk(inst.MetaBlock)
			}
		}
	}
	walk(block.Instructions)

	return findings
}

func walkWithScope(instructions []apply.Instruction, seen map[string]bool, findings *[]Finding) {
	sub := CheckBindBeforeUse(apply.Block{Instructions: instructions}, seen)
	*findings = append(*findings, sub...)
}

// freeKey names the cell a Free/Link/LoadArgument position refers to, so
// the checker can compare them without caring whether the position is
// spelled as a Position struct (Link) or a get_position(ref, 0) Term
// (Free, per DESIGN.md's "Free position arithmetic reuses GetPosition").
func freeKey(pos apply.Position) string {
	if pos.Host {
		return "host"
	}
	return pos.Ref
}

// baseKey extracts the freeKey a cell-referencing base term names, if it
// is one of the shapes the apply builder emits (ref or current).
func baseKey(t apply.Term) (string, bool) {
	switch t.Kind {
	case apply.KRef:
		return t.Ref, true
	case apply.KCurrent:
		return "host", true
	default:
		return "", false
	}
}

// freeTermKey extracts the freeKey a Free instruction's position Term
// names — always shaped get_position(ref, _) or get_position(current, _)
// per DESIGN.md's "Free position arithmetic reuses GetPosition".
func freeTermKey(t apply.Term) (string, bool) {
	if t.Kind != apply.KGetPosition {
		return "", false
	}
	return baseKey(*t.Term)
}

// CheckFreeAfterUse walks a block's straight-line instructions and reports
// any Link or LoadArgument that reads a position whose backing cell a
// preceding Free has already released — spec.md §8 Testable Property 4.
func CheckFreeAfterUse(block apply.Block) []Finding {
	return checkFreeAfterUse(block.Instructions, map[string]bool{})
}

func checkFreeAfterUse(instructions []apply.Instruction, freed map[string]bool) []Finding {
	freed = maps.Clone(freed)
	var findings []Finding

	var walkTerm func(t apply.Term)
	walkTerm = func(t apply.Term) {
		switch t.Kind {
		case apply.KLoadArgument:
			if key, ok := baseKey(*t.Term); ok && freed[key] {
				findings = append(findings, Finding{"free-after-use", fmt.Sprintf("load_argument reads %q after it was freed", key)})
			}
			walkTerm(*t.Term)
		case apply.KArityOf, apply.KGetExt, apply.KGetNumber, apply.KGetTag, apply.KGetPosition:
			walkTerm(*t.Term)
		case apply.KEqual, apply.KLogicalOr, apply.KLogicalAnd:
			walkTerm(*t.Lhs)
			walkTerm(*t.Rhs)
		}
	}

	for _, inst := range instructions {
		switch inst.Kind {
		case apply.IBind:
			walkTerm(inst.Value)
		case apply.ILink:
			if key := freeKey(inst.Position); freed[key] {
				findings = append(findings, Finding{"free-after-use", fmt.Sprintf("link writes %q after it was freed", key)})
			}
			walkTerm(inst.Link)
		case apply.IFree:
			walkTerm(inst.FreePosition)
			if key, ok := freeTermKey(inst.FreePosition); ok {
				freed[key] = true
			}
		case apply.ICollect, apply.ITerm, apply.IReturn:
			walkTerm(inst.Term)
		case apply.IIf:
			walkTerm(inst.Cond)
			findings = append(findings, checkFreeAfterUse(inst.Then.Instructions, freed)...)
			if inst.Else != nil {
				findings = append(findings, checkFreeAfterUse(inst.Else.Instructions, freed)...)
			}
		case apply.IMetadata:
			findings = append(findings, checkFreeAfterUse(inst.MetaBlock, freed)...)
		}
	}

	return findings
}

// CheckTagSizeTable verifies every tag in apply.AllTags reports a size
// without panicking, and that the table is free of duplicate ids —
// spec.md §8 Testable Property 6.
func CheckTagSizeTable() (findings []Finding) {
	seenIDs := make(map[apply.NameId]apply.Tag)
	for _, tag := range apply.AllTags {
		func() {
			defer func() {
				if r := recover(); r != nil {
					findings = append(findings, Finding{"tag-size-table", fmt.Sprintf("tag %s has no size: %v", tag, r)})
				}
			}()
			_ = tag.Size()
		}()

		if existing, dup := seenIDs[tag.ID()]; dup {
			findings = append(findings, Finding{"tag-size-table", fmt.Sprintf("tags %s and %s share id %d", existing, tag, tag.ID())})
		}
		seenIDs[tag.ID()] = tag
	}
	return findings
}

// CheckGuardTotality reports whether a compiled block ends in a
// Return(False) (or Return(True)) as its final top-level instruction —
// every rule group must terminate rather than fall off the end of its
// instruction list with no verdict.
func CheckGuardTotality(block apply.Block) []Finding {
	if len(block.Instructions) == 0 {
		return []Finding{{"guard-totality", "empty rule group block has no terminating Return"}}
	}
	last := block.Instructions[len(block.Instructions)-1]
	if last.Kind != apply.IReturn {
		return []Finding{{"guard-totality", "rule group block does not end in a Return instruction"}}
	}
	return nil
}

// SortedFindings returns findings sorted by checker name then message,
// for stable test assertions and CLI output.
func SortedFindings(findings []Finding) []Finding {
	out := slices.Clone(findings)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Checker != out[j].Checker {
			return out[i].Checker < out[j].Checker
		}
		return out[i].Message < out[j].Message
	})
	return out
}

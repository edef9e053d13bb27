package apply

import (
	"fmt"

	"ruleforge/internal/ir/syntax"
)

// InstKind discriminates the apply Instruction variants (spec.md §3).
type InstKind int

const (
	IBind InstKind = iota
	ILink
	IFree
	ICollect
	IIf
	IIncrementCost
	ITerm
	IReturn
	IMetadata
	IPrintln
)

// Instruction is one step of the apply Block's straight-line program.
type Instruction struct {
	Kind InstKind

	// IBind
	Name  string
	Value Term

	// ILink
	Position Position
	Link     Term

	// IFree
	FreePosition Term
	Arity        uint64

	// ICollect, ITerm, IReturn
	Term Term

	// IIf
	Cond Term
	Then Block
	Else *Block

	// IMetadata
	Source       syntax.Term
	Comments     []string
	MetaBlock    []Instruction

	// IPrintln
	Message string
}

func Bind(name string, value Term) Instruction { return Instruction{Kind: IBind, Name: name, Value: value} }
func Link(pos Position, term Term) Instruction { return Instruction{Kind: ILink, Position: pos, Link: term} }
func Free(pos Term, arity uint64) Instruction {
	return Instruction{Kind: IFree, FreePosition: pos, Arity: arity}
}
func Collect(term Term) Instruction { return Instruction{Kind: ICollect, Term: term} }
func If(cond Term, then Block, els *Block) Instruction {
	return Instruction{Kind: IIf, Cond: cond, Then: then, Else: els}
}
func IncrementCost() Instruction   { return Instruction{Kind: IIncrementCost} }
func TermInst(term Term) Instruction { return Instruction{Kind: ITerm, Term: term} }
func Return(term Term) Instruction { return Instruction{Kind: IReturn, Term: term} }
func Println(message string) Instruction { return Instruction{Kind: IPrintln, Message: message} }
func Metadata(source syntax.Term, comments []string, block []Instruction) Instruction {
	return Instruction{Kind: IMetadata, Source: source, Comments: comments, MetaBlock: block}
}

// TermString implements graph.HasTerm for apply.Instruction, needed once
// the block has been flattened into a graph.BasicBlock[Instruction, Term]
// whose terminator carries a bare Term but whose body is still Instructions.
func (i Instruction) TermString() string {
	switch i.Kind {
	case IBind:
		return fmt.Sprintf("%s = %s", i.Name, i.Value.TermString())
	case ILink:
		return fmt.Sprintf("link(%s, %s)", i.Position, i.Link.TermString())
	case IFree:
		return fmt.Sprintf("free(%s, %d)", i.FreePosition.TermString(), i.Arity)
	case ICollect:
		return fmt.Sprintf("collect(%s)", i.Term.TermString())
	case IIf:
		return fmt.Sprintf("if %s", i.Cond.TermString())
	case IIncrementCost:
		return "increment_cost"
	case ITerm:
		return i.Term.TermString()
	case IReturn:
		return fmt.Sprintf("return %s", i.Term.TermString())
	case IMetadata:
		return fmt.Sprintf("metadata(%s)", i.Source)
	case IPrintln:
		return fmt.Sprintf("println(%q)", i.Message)
	default:
		return "?"
	}
}

// Block is an ordered list of apply instructions plus the set of tag and
// extension ids it references, recorded sorted by id for debug/prettyprint
// (spec.md §3 invariant: "Tag-id and extension-id maps attached to a Block
// are sorted by id").
type Block struct {
	Instructions []Instruction
	Tags         []NamedID
	Extensions   []NamedID
}

// NamedID pairs a debug name with the numeric id it stands for.
type NamedID struct {
	Name string
	ID   NameId
}

// Push appends an instruction to the block.
func (b *Block) Push(inst Instruction) {
	b.Instructions = append(b.Instructions, inst)
}

// With returns a new Block containing a single instruction.
func With(inst Instruction) Block {
	return Block{Instructions: []Instruction{inst}}
}

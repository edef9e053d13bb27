// Package grammar parses the textual rule-book notation the CLI, REPL,
// and tests use to feed a surface.RuleBook into the compiler. It is not
// a parser for the graph-rewriting language's own surface syntax — that
// stays out of scope — but a small convenience DSL in the same shape
// the spec sketches informally: `Foo(Succ(x)) = Succ(Foo(x))`.
package grammar

// Program is a sequence of comments and rule declarations, in source
// order.
type Program struct {
	Items []*TopLevel `@@*`
}

type TopLevel struct {
	Comment *Comment  `  @@`
	Rule    *RuleDecl `| @@`
}

type Comment struct {
	Text string `@Comment`
}

// RuleDecl is one textual rule clause: a group name, its LHS parameter
// patterns, and its RHS expression.
type RuleDecl struct {
	Name       string         `@Ident`
	Parameters []*ParamPattern `[ "(" [ @@ { "," @@ } ] ")" ]`
	Value      *Expr          `"=" @@`
}

// ParamPattern is one LHS parameter slot: erased, a bound variable, a
// numeric literal, or a constructor applied to flat (one-level) inner
// patterns.
type ParamPattern struct {
	Erased      bool            `(   @"_"`
	Float       *string         ` | @Float`
	Int         *string         ` | @Integer`
	Constructor *ConstructorPat ` | @@`
	Var         *string         ` | @Ident )`
}

// ConstructorPat matches a constructor pattern's name and its flattened
// inner bindings.
type ConstructorPat struct {
	Name   string         `@Ident "("`
	Fields []*FlatPattern `[ @@ { "," @@ } ] ")"`
}

// FlatPattern is one inner slot of a constructor pattern: a bound
// variable or an erased placeholder. Never a nested constructor.
type FlatPattern struct {
	Erased bool    `(   @"_"`
	Name   *string ` | @Ident )`
}

// Expr is the RHS expression grammar: let/dup/lambda binders layered
// over a flat binary-operator chain over applications.
type Expr struct {
	Let    *LetExpr    `  @@`
	Dup    *DupExpr    `| @@`
	Lam    *LamExpr    `| @@`
	Super  *SuperExpr  `| @@`
	Binary *BinaryExpr `| @@`
}

type LetExpr struct {
	Name  string `"let" @Ident "="`
	Value *Expr  `@@ ";"`
	Body  *Expr  `@@`
}

type DupExpr struct {
	From  string `"dup" @Ident`
	To    string `@Ident "="`
	Value *Expr  `@@ ";"`
	Body  *Expr  `@@`
}

type LamExpr struct {
	Parameter string `"\\" @Ident "->"`
	Value     *Expr  `@@`
}

// SuperExpr is a superposition of exactly two branches: `{a, b}`.
type SuperExpr struct {
	First  *Expr `"{" @@`
	Second *Expr `"," @@ "}"`
}

type BinaryExpr struct {
	Left *AppExpr `@@`
	Ops  []*BinOp `{ @@ }`
}

type BinOp struct {
	Operator string   `@("||" | "&&" | "==" | "!=" | "<=" | ">=" | "<<" | ">>" | "<" | ">" | "+" | "-" | "*" | "/" | "%" | "&" | "|" | "^")`
	Right    *AppExpr `@@`
}

// AppExpr is an atom, optionally applied to a parenthesized argument
// list — the RHS counterpart of a constructor/function call. Call is
// non-nil exactly when parens were written, so `Zero()` (a nullary
// constructor call) is distinguishable from the bare variable `Zero`.
type AppExpr struct {
	Callee *AtomExpr    `@@`
	Call   *CallSuffix  `@@?`
}

type CallSuffix struct {
	Args []*Expr `"(" [ @@ { "," @@ } ] ")"`
}

type AtomExpr struct {
	Float *string `  @Float`
	Int   *string `| @Integer`
	Ident *string `| @Ident`
	Paren *Expr   `| "(" @@ ")"`
}

package diag

// Diagnostic code ranges:
// L0001-L0099: lowering errors (surface rule book -> IR syntax)
// C0001-C0099: apply/visit codegen errors
// F0001-F0099: CFG construction errors
// R0001-R0099: interpreter/eval runtime errors
// N0001-N0099: native backend errors

const (
	// L0001: a rule group's name is neither marked as a function nor
	// present in the name table.
	CodeNotConstructor = "L0001"

	// L0002: a rule group or term has a shape the compiler does not
	// recognize (an unrecognized term kind during lowering, or a rule
	// group with no rules at codegen).
	CodeInvalidPattern = "L0002"

	// L0003: a surface Var term referenced a name absent from the
	// lexical stack built while walking the rule's parameters/lets.
	CodeUnboundVariable = "L0003"

	// L0004: an App's argument count didn't match the callee's known
	// arity.
	CodeArityMismatch = "L0004"

	// L0005: a rule group mixes strict/non-strict parameter shapes in a
	// way the strictness vector can't represent.
	CodeStrictnessConflict = "L0005"

	// C0001: codegen reached a construct it does not support (currently
	// superposition/duplication on the RHS).
	CodeUnsupportedConstruct = "C0001"

	// R0001: the interpreter evaluated a Term whose Kind had no runtime
	// value (an apply.NotFound placeholder reached Eval).
	CodeNotFoundAtRuntime = "R0001"
)

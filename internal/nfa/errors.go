package nfa

import "fmt"

// UndefinedSymbolError reports a reference to a rule that was never declared.
type UndefinedSymbolError struct {
	Name string
}

func (e *UndefinedSymbolError) Error() string {
	return fmt.Sprintf("undefined symbol <%s>", e.Name)
}

// RuleNotFoundError reports a sub-program lookup for a name that is not a
// top-level rule of the program.
type RuleNotFoundError struct {
	Name string
}

func (e *RuleNotFoundError) Error() string {
	return fmt.Sprintf("rule <%s> not found", e.Name)
}

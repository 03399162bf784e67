package evaluator

import "fmt"

// ArityError is raised calling a function with the wrong number of
// arguments (spec §7).
type ArityError struct {
	Function string
	Want     int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s expects %d argument(s), got %d", e.Function, e.Want, e.Got)
}

// CallTypeError is raised when a call's argument has the wrong runtime
// type, for the built-ins whose contract isn't statically enforced
// (spec §7, §9 "Any-typed built-ins").
type CallTypeError struct {
	Function string
	Detail   string
}

func (e *CallTypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Function, e.Detail)
}

// NotAFunctionError is raised calling an identifier that isn't a
// function binding.
type NotAFunctionError struct {
	Name string
}

func (e *NotAFunctionError) Error() string {
	return "not a function: " + e.Name
}

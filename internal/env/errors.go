package env

// RedeclarationError is raised by Declare when the name is already visible
// anywhere on the scope stack.
type RedeclarationError struct {
	Name string
}

func (e *RedeclarationError) Error() string {
	return "identifier already declared: " + e.Name
}

// UnknownIdentifierError is raised by Lookup/Update when no binding named
// Name is visible.
type UnknownIdentifierError struct {
	Name string
}

func (e *UnknownIdentifierError) Error() string {
	return "unknown identifier: " + e.Name
}

// NotAVariableError is raised by Update when the matching binding is a
// function, not a variable.
type NotAVariableError struct {
	Name string
}

func (e *NotAVariableError) Error() string {
	return "not a variable: " + e.Name
}

// ConstAssignmentError is raised by Update when the variable is constant.
type ConstAssignmentError struct {
	Name string
}

func (e *ConstAssignmentError) Error() string {
	return "cannot assign to constant: " + e.Name
}

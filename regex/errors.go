package regex

import "errors"

// ErrDuplicateBinding is wrapped by Bindings.Define when a variable
// name is bound twice.
var ErrDuplicateBinding = errors.New("variable already bound")

// ErrUndefinedBinding is wrapped by NFA construction when a Var
// references a name with no binding, or when a binding's expansion
// cycles back to itself (bindings are required to form a DAG; a cycle
// is reported as this same error class rather than diverging).
var ErrUndefinedBinding = errors.New("undefined binding")

package results

// Definition is a reusable template for results of a specific kind.
type Definition struct {
	Code    string
	Message string
	Kind    ResultKind
}

func Define(kind ResultKind, code string, message string) *Definition {
	return &Definition{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// New creates a result instance out of the definition.
func (d *Definition) New(attributes ...any) Result {
	return Result{
		Definition: d,
		Attributes: attributes,
	}
}

type Result struct {
	*Definition

	Attributes []any
}

func (r Result) IsSuccess() bool {
	return r.Kind == ResultKindSuccess
}

func (r Result) Error() string {
	return r.Message
}

func (r Result) String() string {
	return r.Code + ": " + r.Message
}

package evaluation

import "errors"

// InputError marks problems with what the caller sent (maps to 400).
type InputError struct {
	Msg string
	Err error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *InputError) Unwrap() error { return e.Err }

func NewInputError(msg string) *InputError { return &InputError{Msg: msg} }

var (
	ErrMissingAPIKey  = NewInputError("falta la API key del proveedor LLM")
	ErrMissingArticle = NewInputError("falta el texto del artículo")
)

// MalformedOutputError means no JSON object could be recovered from the
// model output.
type MalformedOutputError struct {
	Reason string
	Err    error
}

func (e *MalformedOutputError) Error() string {
	msg := "respuesta del modelo no es JSON válido"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// IsInputError reports whether err (or anything it wraps) is an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

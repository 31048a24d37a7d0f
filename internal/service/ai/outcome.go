package ai

// Outcome is the result of a single completion attempt: either generated
// text or the reason no text was produced. Callers branch on OK instead of
// treating provider failures as errors of their own.
type Outcome struct {
	Text string
	Err  error
}

// Success wraps generated text.
func Success(text string) Outcome {
	return Outcome{Text: text}
}

// Failure wraps the reason a completion failed.
func Failure(err error) Outcome {
	return Outcome{Err: err}
}

// OK reports whether the completion produced text.
func (o Outcome) OK() bool {
	return o.Err == nil
}

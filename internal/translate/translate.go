package translate

// Translator converts text between English and Urdu. Implementations
// are external black boxes; callers keep the input text when a call
// fails, so translation problems never abort a request.
type Translator interface {
	EnToUr(text string) (string, error)
	UrToEn(text string) (string, error)
}

// Rewriter reformats a question into grammatically formal Urdu phrasing
// while preserving meaning.
type Rewriter interface {
	Rewrite(text string) (string, error)
}

// Passthrough returns input text unchanged. It stands in when no
// translation backend is configured and in tests.
type Passthrough struct{}

func (Passthrough) EnToUr(text string) (string, error)  { return text, nil }
func (Passthrough) UrToEn(text string) (string, error)  { return text, nil }
func (Passthrough) Rewrite(text string) (string, error) { return text, nil }

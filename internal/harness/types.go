package harness

// ParseFailure describes a pattern the parser rejected.
type ParseFailure struct {
	Offset  int    `json:"offset"`
	Message string `json:"message"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses match.
	Pass bool `json:"pass"`

	// Lines is the formatter output for the compiled automaton.
	Lines []string `json:"lines"`

	// AcceptCount is the size of the end frontier.
	AcceptCount int `json:"accept_count"`

	// Hash is the content hash of the stored snapshot.
	Hash string `json:"hash,omitempty"`

	// ParseError is set when the pattern did not parse.
	ParseError *ParseFailure `json:"parse_error,omitempty"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Lines:  []string{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

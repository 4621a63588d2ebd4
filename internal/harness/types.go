package harness

// DiffOp classifies a line of a mismatch diff.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
)

// DiffLine is one line of a mismatch diff between the expected and the
// rendered JSON, both indented with sorted keys.
type DiffLine struct {
	Op   DiffOp `json:"op"`
	Text string `json:"text"`
}

// Prefix returns the marker printed before the line: "+", "-" or " ".
func (l DiffLine) Prefix() string {
	switch l.Op {
	case DiffInsert:
		return "+"
	case DiffDelete:
		return "-"
	default:
		return " "
	}
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Name is the scenario name.
	Name string `json:"name"`

	// Pass is true when the rendered JSON matches Expect and, if the
	// scenario asserts it, the skip decision matches too.
	Pass bool `json:"pass"`

	// Rendered is the exact wire JSON produced by the builder.
	Rendered string `json:"rendered"`

	// Skipped is the ShouldSkip result of the built value.
	Skipped bool `json:"skipped"`

	// Diff is populated on a JSON mismatch. Deleted lines are expected
	// content that is missing, inserted lines are unexpected output.
	Diff []DiffLine `json:"diff,omitempty"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(name string) *Result {
	return &Result{
		Name:   name,
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

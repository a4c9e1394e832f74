package sandbox

import "context"

// Result is what the execution service reports back for one submission.
type Result struct {
	Verdict string `json:"verdict"` // accepted, wrong_answer, runtime_error, timeout
	Stdout  string `json:"stdout"`
	Stderr  string `json:"stderr"`
	TimeMS  int    `json:"timeMs"`
}

// Runner executes untrusted candidate code in an external sandbox. The
// sandbox itself is an opaque collaborator, only the call contract matters.
type Runner interface {
	Execute(ctx context.Context, language, code, stdin string) (*Result, error)
}

// NopRunner is used when no sandbox is configured. Submissions keep
// whatever verdict the client reported.
type NopRunner struct{}

func (NopRunner) Execute(ctx context.Context, language, code, stdin string) (*Result, error) {
	return nil, nil
}

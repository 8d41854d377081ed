package ports

// Prompter asks the user yes/no questions during an interactive
// session. Implementations must treat a read failure (e.g. stdin
// closed) as a declined answer.
type Prompter interface {
	// Confirm shows the question and returns the user's answer.
	// An empty reply returns def.
	Confirm(question string, def bool) bool
}

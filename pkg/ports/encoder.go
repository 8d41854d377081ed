package ports

import "context"

// Encoder abstracts the external encoder process (ffmpeg). The front
// end never inspects media bytes itself; everything it knows about an
// input comes from the encoder's diagnostic text output.
type Encoder interface {
	// Run invokes the encoder with the given arguments, inheriting the
	// caller's standard streams so the user sees encoding progress.
	// Returns the captured stderr tail and an error on non-zero exit
	// or spawn failure.
	Run(ctx context.Context, args []string) (stderr string, err error)

	// Output invokes the encoder and captures both output streams.
	// The exit status is reported but not treated as an error: probe
	// invocations (`-i` without an output) exit non-zero by design.
	Output(ctx context.Context, args []string) (Result, error)
}

// Result holds the outcome of a captured external process invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Player abstracts the external interactive player process (mpv).
type Player interface {
	// Run invokes the player with the given arguments, letting its
	// video output and OSD reach the user, and returns the captured
	// stderr where the control script emits its event lines.
	Run(ctx context.Context, args []string) (stderr string, err error)

	// Output invokes the player and captures both output streams, for
	// version probing. Exit status handling matches Encoder.Output.
	Output(ctx context.Context, args []string) (Result, error)
}

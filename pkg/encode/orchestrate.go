package encode

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/user/webm/pkg/plan"
	"github.com/user/webm/pkg/ports"
)

// passLogSuffix is what the encoder appends to the statistics log base
// for the first stream; the temp file is created with that exact suffix
// so trimming it yields the base to pass on the command line.
const passLogSuffix = "-0.log"

// EncoderError reports a failed encoder invocation together with the
// diagnostics it produced.
type EncoderError struct {
	Pass   Pass
	Stderr string
	Err    error
}

func (e *EncoderError) Error() string {
	return fmt.Sprintf("encoder pass %d: %v", e.Pass, e.Err)
}

func (e *EncoderError) Unwrap() error {
	return e.Err
}

// Orchestrator drives the encoder through the analysis and final
// passes for a resolved plan.
type Orchestrator struct {
	enc     ports.Encoder
	log     ports.Logger
	threads int
	verbose bool
}

// New creates an orchestrator running on the given encoder.
func New(enc ports.Encoder, log ports.Logger, threads int, verbose bool) *Orchestrator {
	return &Orchestrator{enc: enc, log: log, threads: threads, verbose: verbose}
}

// Run executes the encode. In the default two-pass mode the analysis
// pass writes its statistics to a temp log which the final pass reads;
// the log is removed afterwards on every path, including failures.
func (o *Orchestrator) Run(ctx context.Context, p *plan.Plan) error {
	spec := Spec{
		TwoPass: !p.SinglePass,
		OutPath: p.OutPath,
		Threads: o.threads,
		Verbose: o.verbose,
	}

	if p.SinglePass {
		o.log.Info("Single pass requested, skipping analysis pass")
	} else {
		logFile, err := os.CreateTemp("", "webm-*"+passLogSuffix)
		if err != nil {
			return fmt.Errorf("creating pass log: %w", err)
		}
		logPath := logFile.Name()
		logFile.Close()
		defer func() {
			if err := os.Remove(logPath); err != nil {
				o.log.Warn("Error during cleanup: %s", err)
			}
		}()
		spec.PassLogBase = strings.TrimSuffix(logPath, passLogSuffix)

		o.log.Info("Running analysis pass")
		if err := o.runPass(ctx, p, spec, AnalysisPass, os.DevNull); err != nil {
			return err
		}
	}

	o.log.Info("Running final pass")
	return o.runPass(ctx, p, spec, FinalPass, p.OutPath)
}

func (o *Orchestrator) runPass(ctx context.Context, p *plan.Plan, spec Spec, pass Pass, out string) error {
	spec.Pass = pass
	spec.OutPath = out
	args := BuildArgs(p, spec)
	o.log.Debug("Encoder arguments: %s", strings.Join(args, " "))
	stderr, err := o.enc.Run(ctx, args)
	if err != nil {
		return &EncoderError{Pass: pass, Stderr: stderr, Err: err}
	}
	return nil
}

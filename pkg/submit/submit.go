// Package submit turns an experiment into a batch of concrete jobs and hands
// each one to the scheduler command.
package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/slingproj/sling/pkg/config"
	"github.com/slingproj/sling/pkg/execs"
	"github.com/slingproj/sling/pkg/expand"
	"github.com/slingproj/sling/pkg/label"
	"github.com/slingproj/sling/pkg/table"
)

// ErrSubmission is returned when one or more job submissions fail.
var ErrSubmission = errors.New("submission")

// Job is one fully-expanded configuration, ready for submission.
type Job struct {
	// Params holds the expanded parameter values for this job.
	Params map[string]any
	// Labels is the sanitized label map attached to the submission.
	Labels map[string]string
	// Name is the job name, derived from the experiment name.
	Name string
	// Args is the flattened argument list passed to the workload.
	Args []string
}

// Plan expands the experiment's parameter grid into jobs. Each job carries
// its parameter combination as `--name value` argument pairs (plus any
// extraArgs), and a label map derived from those arguments overlaid with the
// experiment's static labels.
func Plan(e *config.Experiment, extraArgs ...string) []Job {
	static := []label.Pair{
		{Key: "experiment", Value: e.Name},
	}
	for _, k := range slices.Sorted(maps.Keys(e.Labels)) {
		static = append(static, label.Pair{Key: k, Value: e.Labels[k]})
	}

	var (
		jobs []Job
		i    int
	)

	for combo := range expand.Product(e.Parameters) {
		i++

		args := make([]string, 0, 2*len(combo)+len(extraArgs))
		for _, k := range slices.Sorted(maps.Keys(combo)) {
			args = append(args, "--"+k, fmt.Sprintf("%v", combo[k]))
		}

		args = append(args, extraArgs...)

		// Static labels win over labels derived from the argument list.
		labels := table.Merge(label.FromArgs(args), label.FromPairs(static))

		jobs = append(jobs, Job{
			Name:   fmt.Sprintf("%s-%d", e.Name, i),
			Params: combo,
			Args:   args,
			Labels: labels,
		})
	}

	return jobs
}

// LabelArgs renders a label map as scheduler metadata arguments, in
// lexicographic key order.
func LabelArgs(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}

	pairs := make([]string, 0, len(labels))
	for _, k := range slices.Sorted(maps.Keys(labels)) {
		pairs = append(pairs, k+"="+labels[k])
	}

	return []string{"--labels", strings.Join(pairs, ",")}
}

// RunnerOpt configures a [Runner].
type RunnerOpt func(*Runner)

// WithDir sets the working directory for submissions.
func WithDir(dir string) RunnerOpt {
	return func(r *Runner) {
		r.dir = dir
	}
}

// WithDryRun plans submissions without executing them.
func WithDryRun(dryRun bool) RunnerOpt {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

// Runner submits a batch of jobs through a single scheduler command.
type Runner struct {
	dir    string
	cmd    execs.Command
	dryRun bool
}

// NewRunner creates a [Runner] for the given scheduler command.
func NewRunner(cmd execs.Command, opts ...RunnerOpt) *Runner {
	r := &Runner{cmd: cmd}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Result is the outcome of one job submission.
type Result struct {
	Execution *execs.Result
	Err       error
	Job       Job
}

// Run submits each job in order. A failed submission does not stop the
// batch; all failures are joined into the returned error. Cancellation of
// ctx stops the batch before the next job.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, 0, len(jobs))

	var errs []error

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("batch canceled: %w", err))

			break
		}

		args := append(append([]string{}, job.Args...), LabelArgs(job.Labels)...)
		executor := execs.NewExecutor(r.cmd, args...)

		logger := slog.With(
			slog.String("job", job.Name),
			slog.String("command", executor.String()),
		)

		if r.dryRun {
			logger.InfoContext(ctx, "dry run, skipping submission")
			results = append(results, Result{Job: job})

			continue
		}

		logger.InfoContext(ctx, "submitting job")

		execution, err := executor.Exec(ctx, r.dir)
		if err != nil {
			logger.ErrorContext(ctx, "submission failed", slog.Any("error", err))
			errs = append(errs, fmt.Errorf("job %q: %w", job.Name, err))
		}

		results = append(results, Result{
			Job:       job,
			Execution: execution,
			Err:       err,
		})
	}

	if len(errs) > 0 {
		return results, fmt.Errorf("%w: %w", ErrSubmission, errors.Join(errs...))
	}

	return results, nil
}

package agent

import (
	"context"
	"fmt"

	"github.com/clawome/clawome/internal/action"
	"github.com/clawome/clawome/internal/browser"
	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/pipeline"
	"github.com/clawome/clawome/internal/telemetry"
	"github.com/hashicorp/go-multierror"
)

// Options configures a Run, including its iteration safety limit.
type Options struct {
	MaxIterations int
	Verbose       bool
	OnStep        func(format string, args ...any) // progress callback, nil is fine
	// OnAction fires immediately after each action executes (or fails),
	// resolved selector included, so internal/record can position and
	// capture a cursor frame without duplicating the loop's control flow.
	OnAction func(a action.Action, selector string, res action.Result, err error)
}

func DefaultOptions() Options {
	return Options{MaxIterations: 20}
}

// StepLog records one executed action plus, for checkpoints, the diff
// against the extraction that preceded it — enough for cmd/clawome to print
// a transcript or for internal/record to caption a frame.
type StepLog struct {
	Action action.Action
	Result action.Result
	Diff   *pipeline.Diff
}

// Run drives the agentic loop: extract, ask the provider for a batch of
// hid-addressed actions, execute until a checkpoint fires, re-extract,
// diff against the pre-checkpoint tree, and continue.
func Run(ctx context.Context, cfg *config.Config, page browser.PageHandle, provider Provider, prompt string, opts Options) ([]StepLog, error) {
	log := func(format string, args ...any) {
		if opts.OnStep != nil {
			opts.OnStep(format, args...)
		}
	}

	_, _, sess, err := pipeline.Extract(ctx, cfg, page, false)
	if err != nil {
		return nil, fmt.Errorf("initial extract: %w", err)
	}

	actions, err := provider.GenerateActions(sessionPage(sess, cfg), prompt)
	if err != nil {
		return nil, fmt.Errorf("generate actions: %w", err)
	}

	var steps []StepLog
	var completed []action.Action
	var toleratedErrs *multierror.Error

	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultOptions().MaxIterations
	}

	for iter := 0; len(actions) > 0 && iter < maxIter; iter++ {
		checkpointHit := false

		for _, a := range actions {
			sel, _ := pipeline.Resolve(sess.NodeMap, a.HID)
			res, err := action.Execute(ctx, page, sess.NodeMap, a)
			if opts.OnAction != nil {
				opts.OnAction(a, sel, res, err)
			}
			if err != nil {
				log("action %s [%s] failed: %v", a.Kind, a.HID, err)
				telemetry.RecordToleratedFailure(string(a.Kind))
				toleratedErrs = multierror.Append(toleratedErrs, fmt.Errorf("%s [%s]: %w", a.Kind, a.HID, err))
				continue
			}
			log("%s", res.Description)
			steps = append(steps, StepLog{Action: a, Result: res})
			completed = append(completed, a)
			if a.Checkpoint {
				checkpointHit = true
				break
			}
		}

		if !checkpointHit {
			break
		}

		log("checkpoint reached, re-extracting")
		before := sess.Flat
		_, _, newSess, err := pipeline.Extract(ctx, cfg, page, false)
		if err != nil {
			return steps, fmt.Errorf("re-extract after checkpoint: %w", err)
		}
		d := pipeline.DiffNodes(before, newSess.Flat, 20)
		if len(steps) > 0 {
			steps[len(steps)-1].Diff = &d
		}
		sess = newSess

		log("continuing action generation")
		summary := formatCompletedActions(completed)
		actions, err = provider.ContinueActions(sessionPage(sess, cfg), prompt, summary)
		if err != nil {
			return steps, fmt.Errorf("continue generation: %w", err)
		}
	}

	if toleratedErrs != nil {
		log("run finished with %d tolerated action failure(s): %v", len(toleratedErrs.Errors), toleratedErrs)
	}

	return steps, nil
}

// sessionPage re-renders sess's cached flat nodes in full mode so the
// provider always sees the same grammar Extract returned, without having to
// thread the render.Result through the loop separately.
func sessionPage(sess *pipeline.Session, cfg *config.Config) Page {
	result, _ := pipeline.RenderLite(sess, cfg, false)
	return Page{URL: sess.URL, Rendered: result.Rendered}
}

func formatCompletedActions(actions []action.Action) string {
	var out string
	for i, a := range actions {
		switch a.Kind {
		case action.TypeText:
			out += fmt.Sprintf("%d. Typed %q into [%s]\n", i+1, a.Text, a.HID)
		case action.Click:
			out += fmt.Sprintf("%d. Clicked [%s]\n", i+1, a.HID)
		case action.Navigate:
			out += fmt.Sprintf("%d. Navigated to %s\n", i+1, a.URL)
		case action.Hover:
			out += fmt.Sprintf("%d. Hovered over [%s]\n", i+1, a.HID)
		case action.Select:
			out += fmt.Sprintf("%d. Selected %q in [%s]\n", i+1, a.Value, a.HID)
		case action.Submit:
			out += fmt.Sprintf("%d. Submitted [%s]\n", i+1, a.HID)
		default:
			out += fmt.Sprintf("%d. %s [%s]\n", i+1, a.Kind, a.HID)
		}
	}
	return out
}

package record

import (
	"bytes"
	"context"
	"image"
	_ "image/png"

	"github.com/clawome/clawome/internal/action"
	"github.com/clawome/clawome/internal/agent"
	"github.com/clawome/clawome/internal/browser"
	"github.com/clawome/clawome/internal/config"
)

// RunOptions configures a recorded agent run.
type RunOptions struct {
	FPS      int
	MaxWidth uint
	Output   string
	Agent    agent.Options
}

func DefaultRunOptions(output string) RunOptions {
	return RunOptions{FPS: 20, MaxWidth: 800, Output: output, Agent: agent.DefaultOptions()}
}

const screenCenterX, screenCenterY = 640, 360

// Run drives agent.Run while capturing a screenshot plus cursor position
// around every action, then writes the captured session as a cursor-overlay
// GIF to opts.Output.
func Run(ctx context.Context, cfg *config.Config, page browser.PageHandle, provider agent.Provider, prompt string, opts RunOptions) ([]agent.StepLog, int64, error) {
	var frames []image.Image
	var positions []Position
	currentCursor := Position{X: screenCenterX, Y: screenCenterY, State: CursorDefault}

	captureHold := func(cursor Position, n int) {
		for i := 0; i < n; i++ {
			if img := capture(ctx, page); img != nil {
				frames = append(frames, img)
				positions = append(positions, cursor)
			}
		}
	}

	captureHold(currentCursor, opts.FPS) // initial ~1s hold

	userHook := opts.Agent.OnAction
	opts.Agent.OnAction = func(a action.Action, selector string, res action.Result, err error) {
		if userHook != nil {
			userHook(a, selector, res, err)
		}
		if err != nil {
			return
		}

		state := CursorPointer
		if a.Kind == action.TypeText {
			state = CursorText
		}

		if selector != "" {
			if x, y, ok := elementCenter(ctx, page, selector); ok {
				currentCursor = Position{X: x, Y: y, State: state}
			}
		}

		clickFrame := currentCursor
		clickFrame.Click = a.Kind == action.Click
		captureHold(clickFrame, opts.FPS/3)
	}

	steps, err := agent.Run(ctx, cfg, page, provider, prompt, opts.Agent)
	captureHold(currentCursor, opts.FPS) // final ~1s hold

	if err != nil {
		return steps, 0, err
	}

	overlaid := ApplyCursor(frames, positions)
	size, genErr := Generate(overlaid, opts.Output, Options{FPS: opts.FPS, MaxWidth: opts.MaxWidth})
	return steps, size, genErr
}

func capture(ctx context.Context, page browser.PageHandle) image.Image {
	data, err := page.Screenshot(ctx)
	if err != nil {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}

// elementCenter resolves sel's bounding box in the live DOM so the cursor
// overlay can move toward the element the action actually targeted.
func elementCenter(ctx context.Context, page browser.PageHandle, sel string) (int, int, bool) {
	var out struct{ X, Y int }
	err := page.Eval(ctx, `(sel) => {
		const el = document.querySelector(sel);
		if (!el) return null;
		const r = el.getBoundingClientRect();
		return {X: Math.round(r.x + r.width/2), Y: Math.round(r.y + r.height/2)};
	}`, []any{sel}, &out)
	if err != nil {
		return 0, 0, false
	}
	return out.X, out.Y, true
}

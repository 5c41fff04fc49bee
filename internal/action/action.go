// Package action implements the node-id addressed action layer:
// Click/Type/Select/Hover/Scroll/Navigate, each resolving a hid through the
// current node map before acting through the thin browser.PageHandle.Eval
// interface instead of a direct element handle, since Resolve() only ever
// hands the action layer a CSS selector.
package action

import (
	"context"
	"fmt"

	"github.com/clawome/clawome/internal/browser"
	"github.com/clawome/clawome/internal/pipeline"
	"github.com/clawome/clawome/internal/render"
)

// Type enumerates the action kinds a collaborator can perform against a
// resolved node.
type Type string

const (
	Click      Type = "click"
	TypeText   Type = "type"
	Select     Type = "select"
	Hover      Type = "hover"
	Scroll     Type = "scroll"
	ScrollUp   Type = "scroll_up"
	ScrollDown Type = "scroll_down"
	Navigate   Type = "navigate"
	Submit     Type = "submit"
	Check      Type = "check"
)

// Action is one agent-issued step, addressed by hid instead of a raw
// selector.
type Action struct {
	Kind       Type   `json:"action"`
	HID        string `json:"hid,omitempty"`
	Text       string `json:"text,omitempty"`
	Value      string `json:"value,omitempty"`   // select option value
	Checked    bool   `json:"checked,omitempty"`  // check/uncheck
	Pixels     int    `json:"pixels,omitempty"`   // scroll_up/scroll_down
	URL        string `json:"url,omitempty"`      // navigate
	Checkpoint bool   `json:"checkpoint,omitempty"`
}

// ErrNotFound is returned when an Action's hid no longer resolves to a live
// selector in the node map.
type ErrNotFound struct{ HID string }

func (e *ErrNotFound) Error() string { return fmt.Sprintf("hid %q not in node map", e.HID) }

// Result is a human-readable description of what happened, for an agent
// transcript or a recorded run.
type Result struct {
	Description string
}

// Execute resolves a's hid through nodeMap (pipeline.Resolve) and performs
// it against page. Navigate and ScrollUp/ScrollDown (viewport-relative)
// don't carry a hid and skip resolution; Scroll resolves its hid and
// scrolls that element into view.
func Execute(ctx context.Context, page browser.PageHandle, nodeMap render.NodeMap, a Action) (Result, error) {
	switch a.Kind {
	case Navigate:
		if err := page.Navigate(ctx, a.URL); err != nil {
			return Result{}, err
		}
		return Result{Description: fmt.Sprintf("navigated to %s", a.URL)}, nil

	case ScrollDown:
		return evalScroll(ctx, page, a.Pixels, "scrolled down %dpx")
	case ScrollUp:
		return evalScroll(ctx, page, -a.Pixels, "scrolled up %dpx")
	}

	sel, ok := pipeline.Resolve(nodeMap, a.HID)
	if !ok {
		return Result{}, &ErrNotFound{HID: a.HID}
	}

	switch a.Kind {
	case Click:
		if err := evalOnSelector(ctx, page, sel, clickScript); err != nil {
			return Result{}, err
		}
		return Result{Description: fmt.Sprintf("clicked [%s]", a.HID)}, nil

	case TypeText:
		if err := page.Eval(ctx, typeScript, []any{sel, a.Text}, nil); err != nil {
			return Result{}, err
		}
		return Result{Description: fmt.Sprintf("typed into [%s]", a.HID)}, nil

	case Select:
		if err := page.Eval(ctx, selectScript, []any{sel, a.Value}, nil); err != nil {
			return Result{}, err
		}
		return Result{Description: fmt.Sprintf("selected %q in [%s]", a.Value, a.HID)}, nil

	case Hover:
		if err := evalOnSelector(ctx, page, sel, hoverScript); err != nil {
			return Result{}, err
		}
		return Result{Description: fmt.Sprintf("hovered [%s]", a.HID)}, nil

	case Scroll:
		if err := evalOnSelector(ctx, page, sel, scrollIntoViewScript); err != nil {
			return Result{}, err
		}
		return Result{Description: fmt.Sprintf("scrolled to [%s]", a.HID)}, nil

	case Submit:
		if err := evalOnSelector(ctx, page, sel, submitScript); err != nil {
			return Result{}, err
		}
		return Result{Description: fmt.Sprintf("submitted [%s]", a.HID)}, nil

	case Check:
		if err := page.Eval(ctx, checkScript, []any{sel, a.Checked}, nil); err != nil {
			return Result{}, err
		}
		verb := "checked"
		if !a.Checked {
			verb = "unchecked"
		}
		return Result{Description: fmt.Sprintf("%s [%s]", verb, a.HID)}, nil

	default:
		return Result{}, fmt.Errorf("unknown action kind: %q", a.Kind)
	}
}

func evalOnSelector(ctx context.Context, page browser.PageHandle, sel, script string) error {
	return page.Eval(ctx, script, []any{sel}, nil)
}

func evalScroll(ctx context.Context, page browser.PageHandle, pixels int, desc string) (Result, error) {
	if err := page.Eval(ctx, `(dy) => window.scrollBy(0, dy)`, []any{pixels}, nil); err != nil {
		return Result{}, err
	}
	return Result{Description: fmt.Sprintf(desc, pixels)}, nil
}

const clickScript = `(sel) => { const el = document.querySelector(sel); if (!el) throw new Error('not found'); el.scrollIntoView({block: 'center'}); el.click(); }`

const hoverScript = `(sel) => {
  const el = document.querySelector(sel);
  if (!el) throw new Error('not found');
  el.scrollIntoView({block: 'center'});
  const rect = el.getBoundingClientRect();
  const opts = {bubbles: true, cancelable: true, clientX: rect.x + rect.width/2, clientY: rect.y + rect.height/2};
  el.dispatchEvent(new MouseEvent('mouseover', opts));
  el.dispatchEvent(new MouseEvent('mouseenter', opts));
}`

const scrollIntoViewScript = `(sel) => { const el = document.querySelector(sel); if (!el) throw new Error('not found'); el.scrollIntoView({block: 'center'}); }`

const submitScript = `(sel) => {
  const el = document.querySelector(sel);
  if (!el) throw new Error('not found');
  if (el.submit) el.submit(); else { const f = el.closest('form'); if (f) f.submit(); }
}`

// typeScript focuses the target, selects any existing value, then assigns
// the new text and fires input/change so framework-bound listeners see it,
// in a single DOM-context eval instead of per-character keyboard events.
const typeScript = `(sel, text) => {
  const el = document.querySelector(sel);
  if (!el) throw new Error('not found');
  el.focus();
  if (typeof el.select === 'function') el.select();
  el.value = text;
  el.dispatchEvent(new Event('input', {bubbles: true}));
  el.dispatchEvent(new Event('change', {bubbles: true}));
}`

const selectScript = `(sel, value) => {
  const el = document.querySelector(sel);
  if (!el) throw new Error('not found');
  el.value = value;
  el.dispatchEvent(new Event('change', {bubbles: true}));
}`

const checkScript = `(sel, checked) => {
  const el = document.querySelector(sel);
  if (!el) throw new Error('not found');
  if (el.checked !== checked) { el.checked = checked; el.dispatchEvent(new Event('change', {bubbles: true})); }
}`

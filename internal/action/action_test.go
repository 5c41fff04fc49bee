package action

import (
	"context"
	"testing"

	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePage is a minimal browser.PageHandle double that records every Eval
// call instead of driving a real browser, so Execute's selector-resolution
// and dispatch logic can be tested without go-rod.
type fakePage struct {
	evalCalls [][]any
	evalErr   error
	navigated string
}

func (f *fakePage) Prepare(ctx context.Context, cfg *config.Config) error { return nil }
func (f *fakePage) Snapshot(ctx context.Context) (string, error)          { return "", nil }
func (f *fakePage) Eval(ctx context.Context, js string, args []any, out any) error {
	f.evalCalls = append(f.evalCalls, args)
	return f.evalErr
}
func (f *fakePage) Navigate(ctx context.Context, url string) error {
	f.navigated = url
	return nil
}
func (f *fakePage) URL(ctx context.Context) (string, error)            { return "", nil }
func (f *fakePage) Screenshot(ctx context.Context) ([]byte, error)     { return nil, nil }
func (f *fakePage) Close() error                                       { return nil }

func TestExecuteClickResolvesHidToSelector(t *testing.T) {
	page := &fakePage{}
	nodeMap := render.NodeMap{"1.2": `[data-bid="7"]`}
	res, err := Execute(context.Background(), page, nodeMap, Action{Kind: Click, HID: "1.2"})
	require.NoError(t, err)
	assert.Contains(t, res.Description, "[1.2]")
	require.Len(t, page.evalCalls, 1)
	assert.Equal(t, `[data-bid="7"]`, page.evalCalls[0][0])
}

func TestExecuteUnknownHidReturnsErrNotFound(t *testing.T) {
	page := &fakePage{}
	_, err := Execute(context.Background(), page, render.NodeMap{}, Action{Kind: Click, HID: "9"})
	var notFound *ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "9", notFound.HID)
}

func TestExecuteTypeTextPassesSelectorAndText(t *testing.T) {
	page := &fakePage{}
	nodeMap := render.NodeMap{"1": "#email"}
	_, err := Execute(context.Background(), page, nodeMap, Action{Kind: TypeText, HID: "1", Text: "hello"})
	require.NoError(t, err)
	require.Len(t, page.evalCalls, 1)
	assert.Equal(t, []any{"#email", "hello"}, page.evalCalls[0])
}

func TestExecuteNavigateSkipsNodeMapResolution(t *testing.T) {
	page := &fakePage{}
	res, err := Execute(context.Background(), page, render.NodeMap{}, Action{Kind: Navigate, URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", page.navigated)
	assert.Contains(t, res.Description, "https://example.com")
}

func TestExecuteScrollDownDoesNotRequireHid(t *testing.T) {
	page := &fakePage{}
	res, err := Execute(context.Background(), page, render.NodeMap{}, Action{Kind: ScrollDown, Pixels: 300})
	require.NoError(t, err)
	require.Len(t, page.evalCalls, 1)
	assert.Equal(t, 300, page.evalCalls[0][0])
	assert.Contains(t, res.Description, "300")
}

func TestExecuteScrollUpNegatesPixels(t *testing.T) {
	page := &fakePage{}
	_, err := Execute(context.Background(), page, render.NodeMap{}, Action{Kind: ScrollUp, Pixels: 300})
	require.NoError(t, err)
	assert.Equal(t, -300, page.evalCalls[0][0])
}

func TestExecuteCheckDescribesUncheckedVerb(t *testing.T) {
	page := &fakePage{}
	nodeMap := render.NodeMap{"1": "#agree"}
	res, err := Execute(context.Background(), page, nodeMap, Action{Kind: Check, HID: "1", Checked: false})
	require.NoError(t, err)
	assert.Contains(t, res.Description, "unchecked")
}

func TestExecuteUnknownKindErrors(t *testing.T) {
	page := &fakePage{}
	nodeMap := render.NodeMap{"1": "#x"}
	_, err := Execute(context.Background(), page, nodeMap, Action{Kind: Type("bogus"), HID: "1"})
	assert.Error(t, err)
}

func TestExecutePropagatesEvalError(t *testing.T) {
	page := &fakePage{evalErr: assertErr}
	nodeMap := render.NodeMap{"1": "#x"}
	_, err := Execute(context.Background(), page, nodeMap, Action{Kind: Click, HID: "1"})
	assert.ErrorIs(t, err, assertErr)
}

var assertErr = errNotRealBrowser{}

type errNotRealBrowser struct{}

func (errNotRealBrowser) Error() string { return "simulated eval failure" }

package record

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/clawome/clawome/internal/action"
	"github.com/clawome/clawome/internal/agent"
	"github.com/clawome/clawome/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{30, 30, 30, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fakePage struct {
	png  []byte
	html string
}

func (f *fakePage) Prepare(ctx context.Context, cfg *config.Config) error { return nil }
func (f *fakePage) Snapshot(ctx context.Context) (string, error)          { return f.html, nil }
func (f *fakePage) Eval(ctx context.Context, js string, args []any, out any) error {
	if o, ok := out.(*struct{ X, Y int }); ok {
		o.X, o.Y = 15, 25
	}
	return nil
}
func (f *fakePage) Navigate(ctx context.Context, url string) error { return nil }
func (f *fakePage) URL(ctx context.Context) (string, error)        { return "https://example.com", nil }
func (f *fakePage) Screenshot(ctx context.Context) ([]byte, error) { return f.png, nil }
func (f *fakePage) Close() error                                   { return nil }

type oneShotProvider struct{ actions []action.Action }

func (p *oneShotProvider) GenerateActions(page agent.Page, prompt string) ([]action.Action, error) {
	return p.actions, nil
}

func (p *oneShotProvider) ContinueActions(page agent.Page, originalPrompt, completedActions string) ([]action.Action, error) {
	return nil, nil
}

func TestCaptureDecodesScreenshotIntoImage(t *testing.T) {
	page := &fakePage{png: encodePNG(t, 10, 10)}
	img := capture(context.Background(), page)
	require.NotNil(t, img)
	assert.Equal(t, 10, img.Bounds().Dx())
}

func TestCaptureReturnsNilOnUndecodableBytes(t *testing.T) {
	page := &fakePage{png: []byte("not a png")}
	img := capture(context.Background(), page)
	assert.Nil(t, img)
}

func TestRunProducesFramesAndWritesGIF(t *testing.T) {
	page := &fakePage{png: encodePNG(t, 20, 20), html: `<html><body><button>Save</button></body></html>`}
	provider := &oneShotProvider{actions: []action.Action{{Kind: action.Click, HID: "1"}}}

	out := t.TempDir() + "/run.gif"
	opts := DefaultRunOptions(out)
	opts.Agent.MaxIterations = 1

	steps, size, err := Run(context.Background(), config.Default(), page, provider, "click save", opts)
	require.NoError(t, err)
	assert.Len(t, steps, 1)
	assert.Positive(t, size)
}

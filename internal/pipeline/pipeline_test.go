package pipeline

import (
	"context"
	"testing"

	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePage is a minimal browser.PageHandle double that skips Prepare (no
// live DOM to annotate) and serves a fixed snapshot, letting Extract's
// Walk/Compress/Render wiring be tested without go-rod.
type fakePage struct {
	html      string
	url       string
	prepareErr error
}

func (f *fakePage) Prepare(ctx context.Context, cfg *config.Config) error { return f.prepareErr }
func (f *fakePage) Snapshot(ctx context.Context) (string, error)          { return f.html, nil }
func (f *fakePage) Eval(ctx context.Context, js string, args []any, out any) error { return nil }
func (f *fakePage) Navigate(ctx context.Context, url string) error        { return nil }
func (f *fakePage) URL(ctx context.Context) (string, error)               { return f.url, nil }
func (f *fakePage) Screenshot(ctx context.Context) ([]byte, error)        { return nil, nil }
func (f *fakePage) Close() error                                          { return nil }

func TestExtractWiresWalkCompressRenderTogether(t *testing.T) {
	page := &fakePage{html: `<html><body><button>Save</button></body></html>`, url: "https://example.com"}
	result, stats, sess, err := Extract(context.Background(), config.Default(), page, false)
	require.NoError(t, err)
	assert.Contains(t, result.Rendered, "button")
	assert.Contains(t, result.Rendered, "Save")
	assert.Equal(t, "https://example.com", sess.URL)
	assert.Equal(t, 1, stats.NodesAfterCount)
}

func TestExtractPropagatesPrepareError(t *testing.T) {
	page := &fakePage{prepareErr: assertErr}
	_, _, _, err := Extract(context.Background(), config.Default(), page, false)
	assert.Error(t, err)
}

func TestExtractSessionSurvivesIntoRenderLiteWithStableNodeIDs(t *testing.T) {
	page := &fakePage{html: `<html><body><button>Save</button></body></html>`}
	full, _, sess, err := Extract(context.Background(), config.Default(), page, false)
	require.NoError(t, err)

	lite, _ := RenderLite(sess, config.Default(), true)
	for hid := range full.NodeMap {
		_, ok := lite.NodeMap[hid]
		assert.True(t, ok, "hid %s missing from lite re-render node map", hid)
	}
}

func TestResolveReturnsFalseForUnknownID(t *testing.T) {
	_, ok := Resolve(render.NodeMap{"1": "#a"}, "2")
	assert.False(t, ok)
}

func TestResolveReturnsSelectorForKnownID(t *testing.T) {
	sel, ok := Resolve(render.NodeMap{"1": "#a"}, "1")
	require.True(t, ok)
	assert.Equal(t, "#a", sel)
}

type simpleErr struct{ msg string }

func (e simpleErr) Error() string { return e.msg }

var assertErr = simpleErr{"prepare failed"}

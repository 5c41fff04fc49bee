package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/clawome/clawome/internal/browser"
	"github.com/clawome/clawome/internal/compress"
	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/render"
	"github.com/clawome/clawome/internal/telemetry"
	"github.com/clawome/clawome/internal/walker"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Session is the per-page node map owned by the host, plus the compressed
// flat-node slice a lite re-render needs so it never re-runs
// Prepare/Walk/Compress.
type Session struct {
	URL      string
	Flat     []compress.FlatNode
	NodeMap  render.NodeMap
	RawChars int
	Before   int
}

// Extract runs Prepare against the live page, takes one outerHTML
// snapshot, then runs Walk/Compress/Render as pure host-side transforms
// and assembles the summary statistics. lite selects the lite-mode text
// truncation rule. The returned *Session lets the caller re-render in
// lite mode later without repeating Prepare/Walk/Compress.
func Extract(ctx context.Context, cfg *config.Config, page browser.PageHandle, lite bool) (render.Result, render.Stats, *Session, error) {
	tracer := telemetry.Tracer()
	spanCtx, span := tracer.Start(ctx, "pipeline.Extract")
	defer span.End()

	if err := page.Prepare(spanCtx, cfg); err != nil {
		telemetry.RecordExtraction("error", 0, 0, 0)
		return render.Result{}, render.Stats{}, nil, fmt.Errorf("prepare: %w", err)
	}

	raw, err := page.Snapshot(spanCtx)
	if err != nil {
		telemetry.RecordExtraction("error", 0, 0, 0)
		return render.Result{}, render.Stats{}, nil, fmt.Errorf("snapshot: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		telemetry.RecordExtraction("error", 0, 0, 0)
		return render.Result{}, render.Stats{}, nil, fmt.Errorf("parse html: %w", err)
	}

	nodes, wstats := walker.Walk(doc, cfg, telemetry.L())
	if wstats.TruncatedNodes {
		telemetry.L().Warn("walk hit a resource limit (max-nodes or max-depth)", zap.Int("emitted", wstats.NodesEmitted))
	}

	flat := compress.Process(nodes, cfg)
	result := render.Render(flat, cfg, lite)
	stats := render.Assemble(len(raw), len(nodes), len(flat), result.Rendered)

	telemetry.RecordExtraction("success", stats.CompressionRatio, stats.NodesBeforeCount, stats.NodesAfterCount)

	sess := &Session{
		URL:      currentURL(spanCtx, page),
		Flat:     flat,
		NodeMap:  result.NodeMap,
		RawChars: len(raw),
		Before:   len(nodes),
	}
	return result, stats, sess, nil
}

// RenderLite re-runs only the Render stage against a Session's already
// compressed node slice, guaranteeing the same node IDs as the Extract call
// that produced sess, whether the new render is lite or full.
func RenderLite(sess *Session, cfg *config.Config, lite bool) (render.Result, render.Stats) {
	result := render.Render(sess.Flat, cfg, lite)
	stats := render.Assemble(sess.RawChars, sess.Before, len(sess.Flat), result.Rendered)
	return result, stats
}

// Resolve is a pure lookup the action collaborator uses to translate an
// agent-supplied identifier into a concrete element selector.
func Resolve(nodeMap render.NodeMap, id string) (string, bool) {
	sel, ok := nodeMap[id]
	return sel, ok
}

func currentURL(ctx context.Context, page browser.PageHandle) string {
	u, err := page.URL(ctx)
	if err != nil {
		return ""
	}
	return u
}

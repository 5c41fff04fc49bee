package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/clawome/clawome/internal/browser"
	"github.com/clawome/clawome/internal/compress/scripts"
	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/render"
	"github.com/clawome/clawome/internal/telemetry"
	"github.com/clawome/clawome/internal/walker"
	"golang.org/x/net/html"
)

// ExtractWithScript runs the same Prepare/Walk stages as Extract but
// compresses with a site-specific script from the registry instead of the
// generic pipeline, letting a host pick a specialized compressor by URL.
// settings overrides the script's own default settings.
func ExtractWithScript(ctx context.Context, cfg *config.Config, page browser.PageHandle, lite bool, script *scripts.Script, settings scripts.Settings) (render.Result, render.Stats, *Session, error) {
	tracer := telemetry.Tracer()
	spanCtx, span := tracer.Start(ctx, "pipeline.ExtractWithScript")
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
		telemetry.L().Warn("walk hit a resource limit (max-nodes or max-depth)")
	}

	flat := script.Process(nodes, cfg, settings)
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

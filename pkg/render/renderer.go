package render

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/screenflow/pkg/cache"
	"github.com/matzehuels/screenflow/pkg/engine"
	"github.com/matzehuels/screenflow/pkg/errors"
	"github.com/matzehuels/screenflow/pkg/graph"
	"github.com/matzehuels/screenflow/pkg/observability"
)

// DefaultPNGScale is the raster scale used for PNG export.
const DefaultPNGScale = 2.0

// Renderer produces artifacts from layout results, with caching keyed by
// the layout's graph hash and the render options.
type Renderer struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRenderer builds a renderer. Nil arguments fall back to a NullCache,
// the default keyer, and the default logger.
func NewRenderer(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Renderer {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{Cache: c, Keyer: keyer, Logger: logger}
}

// Render produces the requested artifact for a layout result. Supported
// formats are [FormatDOT], [FormatSVG], [FormatPNG] and [FormatPDF].
func (r *Renderer) Render(ctx context.Context, res *engine.Result, g *graph.Graph, format string, opts Options) ([]byte, error) {
	if res == nil || g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "render needs a layout result and a graph snapshot")
	}
	switch format {
	case FormatDOT, FormatSVG, FormatPNG, FormatPDF:
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported render format %q", format)
	}

	observability.Engine().OnRenderStart(ctx, format)
	start := time.Now()

	key := r.Keyer.RenderKey(res.GraphHash, cache.RenderKeyOpts{Format: format, Network: opts.Network})
	if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "render")
		observability.Engine().OnRenderComplete(ctx, format, time.Since(start), nil)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	data, err := r.produce(ctx, res, g, format, opts)
	observability.Engine().OnRenderComplete(ctx, format, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if cerr := r.Cache.Set(ctx, key, data, cache.TTLRender); cerr != nil {
		r.Logger.Warn("render cache write failed", "error", cerr)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}

	r.Logger.Debug("artifact rendered", "format", format, "bytes", len(data), "duration", time.Since(start))
	return data, nil
}

func (r *Renderer) produce(ctx context.Context, res *engine.Result, g *graph.Graph, format string, opts Options) ([]byte, error) {
	dot := ToDOT(res, g, opts)
	if format == FormatDOT {
		return []byte(dot), nil
	}

	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rendering SVG")
	}

	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPNG:
		png, err := ToPNG(ctx, svg, DefaultPNGScale)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "converting to PNG")
		}
		return png, nil
	default: // FormatPDF
		pdf, err := ToPDF(ctx, svg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "converting to PDF")
		}
		return pdf, nil
	}
}

package dot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wiregraph/pkg/cache"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

// Renderer renders SVG through a cache keyed by graph fingerprint and
// options. The zero value renders without caching.
type Renderer struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// SVG returns the SVG for g, from the cache when possible. Cache failures are
// logged and otherwise ignored.
func (r Renderer) SVG(ctx context.Context, g wire.View, opts Options) ([]byte, error) {
	c := r.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	keyer := r.Keyer
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	key := keyer.RenderKey(wire.Fingerprint(g), cache.RenderKeyOpts{Format: "svg", Layout: "neato", Scale: opts.Scale})
	if data, ok, err := c.Get(ctx, key); err != nil {
		logger.Warn("render cache read failed", "err", err)
	} else if ok {
		logger.Debug("render cache hit", "key", key)
		return data, nil
	}

	svg, err := RenderSVG(ctx, ToDOT(g, opts))
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, svg, 0); err != nil {
		logger.Warn("render cache write failed", "err", err)
	}
	return svg, nil
}

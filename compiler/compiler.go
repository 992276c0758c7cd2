// Package compiler runs the resgen pipeline: it loads definitions, resolves
// them into a graph and generates the files of every group.
package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/syssam/resgen/compiler/gen"
	"github.com/syssam/resgen/compiler/load"
)

// Compiler drives one generation pass, or a watch loop of passes, over a set
// of patterns.
type Compiler struct {
	cfg      *gen.Config
	dir      string
	log      *slog.Logger
	debounce time.Duration
	hook     func(gen.Metrics, error)
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithDir sets the directory patterns are resolved against.
func WithDir(dir string) Option {
	return func(c *Compiler) { c.dir = dir }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.log = l
		}
	}
}

// WithDebounce sets how long Watch waits for changes to settle before
// regenerating.
func WithDebounce(d time.Duration) Option {
	return func(c *Compiler) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithHook registers fn to be called after every pass of Watch.
func WithHook(fn func(gen.Metrics, error)) Option {
	return func(c *Compiler) { c.hook = fn }
}

// New returns a Compiler generating with cfg.
func New(cfg *gen.Config, opts ...Option) *Compiler {
	c := &Compiler{
		cfg:      cfg,
		log:      slog.Default(),
		debounce: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadGraph loads the definitions matched by patterns and resolves them.
func (c *Compiler) LoadGraph(ctx context.Context, patterns ...string) (*gen.Graph, error) {
	if c.cfg == nil {
		return nil, gen.NewConfigError("Config", nil, "missing generator configuration")
	}
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	lc := &load.Config{Dir: c.dir, BuildFlags: c.cfg.BuildFlags}
	start := time.Now()
	defs, err := lc.Load(ctx, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load %v: %w", patterns, err)
	}
	c.log.Debug("loaded definitions", "patterns", patterns, "groups", len(defs), "duration", time.Since(start))
	if len(defs) == 0 {
		c.log.Warn("no resource groups found", "patterns", patterns)
	}
	return gen.NewGraph(c.cfg, defs...)
}

// Generate runs one pass over patterns and returns its metrics.
func (c *Compiler) Generate(ctx context.Context, patterns ...string) (gen.Metrics, error) {
	g, err := c.LoadGraph(ctx, patterns...)
	if err != nil {
		return gen.Metrics{}, err
	}
	return c.generate(ctx, g)
}

func (c *Compiler) generate(ctx context.Context, g *gen.Graph) (gen.Metrics, error) {
	start := time.Now()
	jg := gen.NewJenniferGenerator(g)
	if err := jg.Generate(ctx); err != nil {
		return jg.Metrics(), err
	}
	m := jg.Metrics()
	c.log.Info("generated resource groups",
		"groups", len(g.Groups),
		"written", m.FilesGenerated,
		"unchanged", m.FilesUnchanged,
		"cached", m.FilesCached,
		"bytes", m.TotalBytes,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return m, nil
}

// Generate runs one pass over patterns with cfg.
func Generate(ctx context.Context, cfg *gen.Config, patterns ...string) error {
	_, err := New(cfg).Generate(ctx, patterns...)
	return err
}

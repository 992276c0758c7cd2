package gen

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/resgen/compiler/load"
)

// SnapshotFile is the name of the definitions snapshot written by
// FeatureSnapshot.
const SnapshotFile = "resgen_snapshot.json"

// JenniferGenerator renders one file per resource group with Jennifer and
// writes the files in parallel.
type JenniferGenerator struct {
	graph   *Graph
	workers int

	mu      sync.Mutex
	metrics Metrics
}

// NewJenniferGenerator creates a new Jennifer-based generator.
//
//	g, err := gen.NewGraph(cfg, groups...)
//	if err != nil {
//		return err
//	}
//	return gen.NewJenniferGenerator(g).Generate(ctx)
func NewJenniferGenerator(g *Graph) *JenniferGenerator {
	workers := runtime.GOMAXPROCS(0)
	if g.Config != nil {
		workers = g.workers()
	}
	return &JenniferGenerator{graph: g, workers: workers}
}

// WithWorkers sets the number of parallel workers.
func (g *JenniferGenerator) WithWorkers(n int) *JenniferGenerator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Metrics returns the results of the last Generate call.
func (g *JenniferGenerator) Metrics() Metrics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.metrics
}

// Generate writes the files of all groups. Files whose content would not
// change are left untouched, so repeated runs are idempotent.
func (g *JenniferGenerator) Generate(ctx context.Context) error {
	g.mu.Lock()
	g.metrics = Metrics{}
	g.mu.Unlock()

	var cache *Cache
	if file := g.graph.CacheFile; file != "" {
		c, err := OpenCache(file)
		if err != nil {
			return err
		}
		cache = c
	}

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for _, grp := range g.graph.Groups {
		errg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return g.generateGroup(grp, cache)
			}
		})
	}
	for dir, defs := range g.packages() {
		errg.Go(func() error {
			return g.snapshot(dir, defs)
		})
	}
	if err := errg.Wait(); err != nil {
		return err
	}
	if cache != nil {
		return cache.Save()
	}
	return nil
}

func (g *JenniferGenerator) generateGroup(grp *Group, cache *Cache) error {
	path := filepath.Join(g.outputDir(grp), grp.File())
	var input string
	if cache != nil {
		key, err := inputDigest(g.graph.Config, grp)
		if err != nil {
			return NewGenerationError("cache", path, "digest inputs", err)
		}
		if cache.Fresh(path, key) {
			g.count(func(m *Metrics) { m.FilesCached++ })
			return nil
		}
		input = key
	}
	content, err := g.Render(grp)
	if err != nil {
		return err
	}
	written, err := writeFile(path, content)
	if err != nil {
		return err
	}
	if cache != nil {
		cache.Put(path, input, content)
	}
	g.count(func(m *Metrics) {
		if written {
			m.FilesGenerated++
			m.TotalBytes += int64(len(content))
		} else {
			m.FilesUnchanged++
		}
	})
	return nil
}

// Render returns the formatted source of the file of grp.
func (g *JenniferGenerator) Render(grp *Group) ([]byte, error) {
	path := filepath.Join(g.outputDir(grp), grp.File())
	var buf bytes.Buffer
	if err := g.File(grp).Render(&buf); err != nil {
		return nil, NewGenerationError("render", path, "", err)
	}
	return format(path, buf.Bytes())
}

// File returns the Jennifer file of grp: aliases, the rewritten record, the
// extractor and, for restricted groups, the extractor variable.
func (g *JenniferGenerator) File(grp *Group) *jen.File {
	f := g.newFile(grp)
	a := grp.Artifacts()
	for _, alias := range a.Aliases {
		f.Add(alias)
	}
	f.Line()
	f.Add(a.Record)
	f.Line()
	f.Add(a.Extractor)
	if a.ExtractorVar != nil {
		f.Line()
		f.Commentf("%s re-exports %s for the packages of the enclosing module.", grp.ExtractorVar(), grp.Extractor)
		f.Add(a.ExtractorVar)
	}
	return f
}

// newFile creates a new Jennifer file with the header comment and the build
// constraint excluding it from definition builds.
func (g *JenniferGenerator) newFile(grp *Group) *jen.File {
	var f *jen.File
	if grp.PkgPath != "" {
		f = jen.NewFilePathName(grp.PkgPath, grp.Package)
	} else {
		f = jen.NewFile(grp.Package)
	}
	f.HeaderComment(g.graph.header())
	f.HeaderComment("//go:build !" + load.BuildTag)
	return f
}

// snapshot writes the definitions of one output directory, or removes a
// stale snapshot when the feature is off.
func (g *JenniferGenerator) snapshot(dir string, defs []*load.Group) error {
	if !g.graph.enabled(FeatureSnapshot) {
		if err := FeatureSnapshot.cleanup(dir); err != nil {
			return NewGenerationError("snapshot", filepath.Join(dir, SnapshotFile), "cleanup", err)
		}
		return nil
	}
	path := filepath.Join(dir, SnapshotFile)
	data, err := json.MarshalIndent(defs, "", "  ")
	if err != nil {
		return NewGenerationError("snapshot", path, "encode", err)
	}
	_, err = writeFile(path, append(data, '\n'))
	return err
}

// packages returns the definitions of each output directory.
func (g *JenniferGenerator) packages() map[string][]*load.Group {
	m := make(map[string][]*load.Group)
	for _, grp := range g.graph.Groups {
		dir := g.outputDir(grp)
		m[dir] = append(m[dir], grp.def)
	}
	return m
}

func (g *JenniferGenerator) outputDir(grp *Group) string {
	return g.graph.outputDir(grp)
}

func (g *JenniferGenerator) count(fn func(*Metrics)) {
	g.mu.Lock()
	fn(&g.metrics)
	g.mu.Unlock()
}

// outputDir returns the directory the file of grp is written to.
func (c *Config) outputDir(grp *Group) string {
	if c.Target != "" {
		return c.Target
	}
	return grp.Dir
}

// Generate is the convenience function generating all files of g.
func Generate(ctx context.Context, g *Graph) error {
	if g == nil || g.Config == nil {
		return NewConfigError("Graph", nil, "missing graph configuration")
	}
	return NewJenniferGenerator(g).Generate(ctx)
}

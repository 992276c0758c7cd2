package compiler

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/resgen/compiler/gen"
)

// Watch generates patterns, then regenerates whenever a definition file in
// one of the watched directories changes. Failed passes are logged and the
// loop keeps running. Watch returns when ctx is done.
func (c *Compiler) Watch(ctx context.Context, patterns ...string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	watched := make(map[string]bool)
	track := func(g *gen.Graph) {
		for _, dir := range c.watchDirs(patterns, g) {
			if watched[dir] {
				continue
			}
			if err := w.Add(dir); err != nil {
				c.log.Warn("cannot watch directory", "dir", dir, "error", err)
				continue
			}
			watched[dir] = true
			c.log.Debug("watching", "dir", dir)
		}
	}
	pass := func() {
		var m gen.Metrics
		g, err := c.LoadGraph(ctx, patterns...)
		if err == nil {
			m, err = c.generate(ctx, g)
		}
		if err != nil && ctx.Err() == nil {
			c.log.Error("generation failed", "error", err)
		}
		track(g)
		if c.hook != nil {
			c.hook(m, err)
		}
	}
	pass()

	timer := time.NewTimer(c.debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			c.log.Debug("definition changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(c.debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.log.Warn("watcher error", "error", err)
		case <-timer.C:
			pass()
		}
	}
}

// watchDirs returns the directories holding the definitions of patterns.
// Schema files and local package directories are watched even when they
// fail to load.
func (c *Compiler) watchDirs(patterns []string, g *gen.Graph) []string {
	var dirs []string
	for _, p := range patterns {
		switch {
		case isSchema(p):
			dirs = append(dirs, c.abs(filepath.Dir(p)))
		case localDir(p):
			dirs = append(dirs, c.abs(p))
		}
	}
	if g != nil {
		for _, grp := range g.Groups {
			dirs = append(dirs, c.abs(grp.Dir))
		}
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}

func (c *Compiler) abs(dir string) string {
	if !filepath.IsAbs(dir) && c.dir != "" {
		dir = filepath.Join(c.dir, dir)
	}
	if a, err := filepath.Abs(dir); err == nil {
		return a
	}
	return dir
}

// relevant reports whether ev may change a definition. Generated files,
// snapshots and temporary files are ignored so a pass does not trigger the
// next one.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(ev.Name)
	switch {
	case strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~"):
		return false
	case name == gen.SnapshotFile:
		return false
	case strings.HasSuffix(name, "_resgen.go"):
		return false
	case strings.HasSuffix(name, ".go"), isSchema(name):
		return true
	}
	return false
}

func localDir(p string) bool {
	return !strings.Contains(p, "...") && (filepath.IsAbs(p) || p == "." || strings.HasPrefix(p, "./") || strings.HasPrefix(p, "../"))
}

func isSchema(p string) bool {
	return strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml")
}

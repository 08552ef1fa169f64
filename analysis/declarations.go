package analysis

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"
)

// Catalog maps exported component names to the module that declares them.
type Catalog struct {
	Modules map[string][]string `json:"modules" yaml:"modules"`

	index map[string]string
}

// ParseCatalog reads a YAML or JSON catalog of the form
// {modules: {"module/path": [ExportA, ExportB]}}.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse declarations: %w", err)
	}
	c.build()
	return &c, nil
}

// NewCatalog builds a catalog from a module -> exports map.
func NewCatalog(modules map[string][]string) *Catalog {
	c := &Catalog{Modules: modules}
	c.build()
	return c
}

// When two modules export the same name, the module that sorts first wins.
func (c *Catalog) build() {
	modules := make([]string, 0, len(c.Modules))
	for m := range c.Modules {
		modules = append(modules, m)
	}
	sort.Strings(modules)

	c.index = make(map[string]string)
	for _, m := range modules {
		for _, name := range c.Modules[m] {
			if _, taken := c.index[name]; !taken {
				c.index[name] = m
			}
		}
	}
}

// Lookup returns the module exporting name.
func (c *Catalog) Lookup(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	m, ok := c.index[name]
	return m, ok
}

// Len returns the number of exported names.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.index)
}

// LoadFunc produces a catalog.
type LoadFunc func(ctx context.Context) (*Catalog, error)

// DeclarationLoader loads the catalog once per process. Concurrent callers
// share one in-flight load; later callers get the cached value. A failed
// load is not cached. There is no invalidation: edits to the underlying
// declarations are not seen until the process restarts.
type DeclarationLoader struct {
	load  LoadFunc
	group singleflight.Group

	mu     sync.Mutex
	cached *Catalog
}

// NewDeclarationLoader wraps fn with single-flight memoization.
func NewDeclarationLoader(fn LoadFunc) *DeclarationLoader {
	return &DeclarationLoader{load: fn}
}

// FileDeclarations loads the catalog from a file. An empty path yields an
// empty catalog.
func FileDeclarations(path string) *DeclarationLoader {
	return NewDeclarationLoader(func(_ context.Context) (*Catalog, error) {
		if path == "" {
			return NewCatalog(nil), nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read declarations: %w", err)
		}
		return ParseCatalog(data)
	})
}

// Load returns the catalog, loading it on first use. The shared load keeps
// the first caller's values but not its cancellation; a canceled caller
// stops waiting while the load goes on for the others.
func (l *DeclarationLoader) Load(ctx context.Context) (*Catalog, error) {
	if c := l.get(); c != nil {
		return c, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan("declarations", func() (any, error) {
		if c := l.get(); c != nil {
			return c, nil
		}
		c, err := l.load(loadCtx)
		if err != nil {
			return nil, err
		}
		if c == nil {
			c = NewCatalog(nil)
		}
		l.mu.Lock()
		l.cached = c
		l.mu.Unlock()
		return c, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Catalog), nil
	}
}

func (l *DeclarationLoader) get() *Catalog {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cached
}

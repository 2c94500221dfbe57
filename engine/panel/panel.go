package panel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gallery/log"
	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

var logger = log.New("panel")

// ErrInvalidValue is returned for an override value that is not a number or a hex color.
var ErrInvalidValue = errors.New("invalid override value")

// document is the TOML layout of an override file:
//
//	[materials.diamond]
//	color = "#ffffff"
//	reflectivity = 0.9
type document struct {
	Materials map[string]map[string]any `toml:"materials"`
}

type panel struct {
	mu *sync.Mutex

	materials *material.MaterialSet
	path      string
	pending   []material.Edit
}

// Panel is a live material editor driven by a TOML file. File changes are parsed on the
// watcher goroutine into queued edits; Apply performs them on the frame thread.
type Panel interface {
	// Path returns the watched override file.
	//
	// Returns:
	//   - string: the file path
	Path() string

	// Load parses the override file and queues its edits. A missing file queues nothing.
	//
	// Returns:
	//   - error: error if the file cannot be read or parsed
	Load() error

	// Start loads the file once and watches it until ctx is done.
	//
	// Parameters:
	//   - ctx: stops the watcher when done
	//
	// Returns:
	//   - error: error if the watcher cannot be created
	Start(ctx context.Context) error

	// Apply performs every queued edit. Unknown materials or parameters are logged and skipped.
	//
	// Returns:
	//   - int: the number of edits applied
	Apply() int

	// Pending returns the number of queued edits.
	//
	// Returns:
	//   - int: the queue length
	Pending() int
}

var _ Panel = &panel{}

// NewPanel creates a Panel editing materials from the override file at path.
//
// Parameters:
//   - materials: the live material set
//   - path: the TOML override file
//
// Returns:
//   - Panel: the panel
func NewPanel(materials *material.MaterialSet, path string) Panel {
	return &panel{
		mu:        &sync.Mutex{},
		materials: materials,
		path:      filepath.Clean(path),
	}
}

func (p *panel) Path() string {
	return p.path
}

func (p *panel) Load() error {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read overrides %s: %w", p.path, err)
	}
	edits, err := ParseEdits(data)
	if err != nil {
		return fmt.Errorf("failed to parse overrides %s: %w", p.path, err)
	}

	p.mu.Lock()
	p.pending = append(p.pending, edits...)
	p.mu.Unlock()
	logger.Debugf("queued %d edits from %s", len(edits), p.path)
	return nil
}

func (p *panel) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Editors often replace the file, so the directory is watched.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(p.path), err)
	}
	if err := p.Load(); err != nil {
		logger.Warningf("%v", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != p.path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
					continue
				}
				if err := p.Load(); err != nil {
					logger.Warningf("%v", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warningf("watcher: %v", err)
			}
		}
	}()
	logger.Infof("watching %s", p.path)
	return nil
}

func (p *panel) Apply() int {
	p.mu.Lock()
	edits := p.pending
	p.pending = nil
	p.mu.Unlock()

	applied := 0
	for _, e := range edits {
		if err := p.materials.Apply(e); err != nil {
			logger.Warningf("skipping edit %s.%s: %v", e.Material, e.Param, err)
			continue
		}
		applied++
	}
	return applied
}

func (p *panel) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// ParseEdits decodes an override document into edits, ordered by material then parameter.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - []material.Edit: the edits
//   - error: error if the document is malformed or a value is invalid
func ParseEdits(data []byte) ([]material.Edit, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return EditsFromTables(doc.Materials)
}

// EditsFromTables converts material override tables into edits, ordered by material then
// parameter. Numbers are used as-is; strings are parsed as hex colors ("#rrggbb" or "0xrrggbb").
//
// Parameters:
//   - tables: parameter values keyed by material name then parameter name
//
// Returns:
//   - []material.Edit: the edits
//   - error: an error wrapping ErrInvalidValue
func EditsFromTables(tables map[string]map[string]any) ([]material.Edit, error) {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	var edits []material.Edit
	for _, name := range names {
		params := make([]string, 0, len(tables[name]))
		for param := range tables[name] {
			params = append(params, param)
		}
		sort.Strings(params)

		for _, param := range params {
			value, err := toFloat(tables[name][param])
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", name, param, err)
			}
			edits = append(edits, material.Edit{Material: name, Param: param, Value: value})
		}
	}
	return edits, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		s := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(n), "#"), "0x")
		hex, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, n)
		}
		return float64(hex), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidValue, v)
	}
}

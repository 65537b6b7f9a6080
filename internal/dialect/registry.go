package dialect

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"remessa/internal/cnab"
)

// ErrConfiguration reports a missing or invalid dialect registration.
var ErrConfiguration = errors.New("dialect configuration")

//go:embed dialects/*.toml
var builtinFS embed.FS

// Registry holds the dialects available to one encoder or parser instance,
// keyed by bank code and layout. Read-only after construction; safe for
// concurrent readers.
type Registry struct {
	byKey map[string]*Dialect
}

func registryKey(bank string, layout cnab.Layout) string {
	return fmt.Sprintf("%s/%d", bank, int(layout))
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]*Dialect)}
}

// Register normalizes, validates, and adds a dialect. A later registration
// for the same bank and layout replaces the earlier one, which is how on-disk
// documents override embedded built-ins.
func (r *Registry) Register(d *Dialect) error {
	if err := normalize(d); err != nil {
		return err
	}
	r.byKey[registryKey(d.BankCode, d.CNABLayout())] = d
	return nil
}

// Lookup resolves the dialect for a bank code and layout. A miss wraps
// ErrConfiguration: it signals missing static configuration, never retried.
func (r *Registry) Lookup(bank string, layout cnab.Layout) (*Dialect, error) {
	d, ok := r.byKey[registryKey(bank, layout)]
	if !ok {
		return nil, fmt.Errorf("%w: no dialect registered for bank %s layout %s", ErrConfiguration, bank, layout)
	}
	return d, nil
}

// All returns every registered dialect ordered by bank code then layout.
func (r *Registry) All() []*Dialect {
	out := make([]*Dialect, 0, len(r.byKey))
	for _, d := range r.byKey {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BankCode != out[j].BankCode {
			return out[i].BankCode < out[j].BankCode
		}
		return out[i].Layout < out[j].Layout
	})
	return out
}

// Parse decodes a single dialect document. Source annotates provenance for
// listings and error messages.
func Parse(data []byte, source string) (*Dialect, error) {
	var d Dialect
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrConfiguration, source, err)
	}
	d.Source = source
	return &d, nil
}

// Builtin returns a registry holding the embedded bank dialects.
func Builtin() (*Registry, error) {
	reg := NewRegistry()
	if err := registerFS(reg, builtinFS, "dialects", "embedded"); err != nil {
		return nil, err
	}
	return reg, nil
}

// Load returns the built-in registry with any *.toml documents from dir
// registered on top. A missing or empty directory yields just the built-ins.
func Load(dir string) (*Registry, error) {
	reg, err := Builtin()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dir) == "" {
		return reg, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return reg, nil
		}
		return nil, fmt.Errorf("%w: read dialect directory: %w", ErrConfiguration, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrConfiguration, path, err)
		}
		d, err := Parse(data, path)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(d); err != nil {
			return nil, fmt.Errorf("register %s: %w", path, err)
		}
	}
	return reg, nil
}

func registerFS(reg *Registry, fsys embed.FS, root, source string) error {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return fmt.Errorf("%w: read embedded dialects: %w", ErrConfiguration, err)
	}
	for _, entry := range entries {
		data, err := fs.ReadFile(fsys, root+"/"+entry.Name())
		if err != nil {
			return fmt.Errorf("%w: read embedded %s: %w", ErrConfiguration, entry.Name(), err)
		}
		d, err := Parse(data, source)
		if err != nil {
			return err
		}
		if err := reg.Register(d); err != nil {
			return fmt.Errorf("register embedded %s: %w", entry.Name(), err)
		}
	}
	return nil
}

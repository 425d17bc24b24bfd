// Package franchise holds the static directory of official franchise
// names, codes and display colours, and resolves free text against it.
package franchise

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"os"
	"regexp"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const (
	FallbackColor = "#888888"
	UnknownName   = "Unknown Team"
	UnknownLabel  = "Unknown"
)

//go:embed directory.yaml
var defaultDirectoryYAML []byte

var (
	codePattern  = regexp.MustCompile(`^[A-Z]{2,3}$`)
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// Entry is one franchise in the directory.
type Entry struct {
	Code  string `yaml:"code" json:"code"`
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
}

type document struct {
	Franchises []Entry `yaml:"franchises"`
}

// Lookup is the read-only view of the directory handed to use cases.
type Lookup interface {
	Entries() []Entry
	Names() []string
	Get(code string) (Entry, bool)
	NameOf(code string) string
	ColorOf(code string) string
	LabelOf(code string) string
}

// Directory is immutable once built.
type Directory struct {
	entries []Entry
	names   []string
	byCode  map[string]Entry
	byName  map[string]Entry
	digest  string
}

// Default returns the directory embedded in the binary.
func Default() *Directory {
	dir, err := Parse(defaultDirectoryYAML)
	if err != nil {
		panic(crerr.Wrap(err, "embedded franchise directory"))
	}
	return dir
}

// LoadFile parses a directory document from disk. An empty path yields
// the embedded default.
func LoadFile(path string) (*Directory, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read franchise directory %q", path)
	}
	dir, err := Parse(raw)
	if err != nil {
		return nil, crerr.Wrapf(err, "franchise directory %q", path)
	}
	return dir, nil
}

// Parse decodes and validates a YAML directory document.
func Parse(raw []byte) (*Directory, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, crerr.Wrap(err, "decode yaml")
	}
	if len(doc.Franchises) == 0 {
		return nil, crerr.New("directory has no franchises")
	}

	dir := &Directory{
		entries: make([]Entry, 0, len(doc.Franchises)),
		names:   make([]string, 0, len(doc.Franchises)),
		byCode:  make(map[string]Entry, len(doc.Franchises)),
		byName:  make(map[string]Entry, len(doc.Franchises)),
	}
	for i, item := range doc.Franchises {
		item.Code = strings.ToUpper(strings.TrimSpace(item.Code))
		item.Name = strings.TrimSpace(item.Name)
		item.Color = strings.TrimSpace(item.Color)

		if !codePattern.MatchString(item.Code) {
			return nil, crerr.Newf("entry %d: invalid code %q", i, item.Code)
		}
		if item.Name == "" {
			return nil, crerr.Newf("entry %d (%s): name is required", i, item.Code)
		}
		if !colorPattern.MatchString(item.Color) {
			return nil, crerr.WithHint(
				crerr.Newf("entry %d (%s): invalid color %q", i, item.Code, item.Color),
				"colors are #RRGGBB hex values",
			)
		}
		if _, dup := dir.byCode[item.Code]; dup {
			return nil, crerr.Newf("entry %d: duplicate code %q", i, item.Code)
		}
		if _, dup := dir.byName[item.Name]; dup {
			return nil, crerr.Newf("entry %d: duplicate name %q", i, item.Name)
		}

		dir.entries = append(dir.entries, item)
		dir.names = append(dir.names, item.Name)
		dir.byCode[item.Code] = item
		dir.byName[item.Name] = item
	}
	dir.digest = Digest(dir.entries)

	return dir, nil
}

// Digest fingerprints an ordered entry list. Any change to a code, name,
// colour or the order yields a different value.
func Digest(entries []Entry) string {
	h := sha256.New()
	for _, item := range entries {
		h.Write([]byte(item.Code))
		h.Write([]byte{0})
		h.Write([]byte(item.Name))
		h.Write([]byte{0})
		h.Write([]byte(item.Color))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (d *Directory) Entries() []Entry {
	return append([]Entry(nil), d.entries...)
}

func (d *Directory) Digest() string {
	return d.digest
}

// Names returns the canonical names in directory order.
func (d *Directory) Names() []string {
	return append([]string(nil), d.names...)
}

func (d *Directory) Get(code string) (Entry, bool) {
	item, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return item, ok
}

func (d *Directory) NameOf(code string) string {
	if item, ok := d.Get(code); ok {
		return item.Name
	}
	return UnknownName
}

func (d *Directory) ColorOf(code string) string {
	if item, ok := d.Get(code); ok {
		return item.Color
	}
	return FallbackColor
}

// LabelOf is the short segment label: the code itself, or UnknownLabel for
// an unresolved franchise.
func (d *Directory) LabelOf(code string) string {
	if strings.TrimSpace(code) == "" {
		return UnknownLabel
	}
	return code
}

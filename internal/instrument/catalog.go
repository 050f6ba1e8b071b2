package instrument

import (
	"embed"
	"fmt"
	"path"
)

//go:embed catalog/*.yaml
var builtinFS embed.FS

// builtinFiles lists the embedded catalog in display order.
var builtinFiles = []string{"phq9.yaml", "gad7.yaml"}

// ErrUnknownInstrument is returned when an instrument ID is not in the catalog.
type ErrUnknownInstrument struct {
	ID ID
}

func (e *ErrUnknownInstrument) Error() string {
	return fmt.Sprintf("unknown instrument %q", e.ID)
}

// Catalog is an ordered, read-only set of instruments.
type Catalog struct {
	ordered []*Instrument
	byID    map[ID]*Instrument
}

// NewCatalog validates instruments and indexes them in the given order.
func NewCatalog(instruments ...*Instrument) (*Catalog, error) {
	if err := validateCatalog(instruments); err != nil {
		return nil, err
	}
	c := &Catalog{
		ordered: make([]*Instrument, len(instruments)),
		byID:    make(map[ID]*Instrument, len(instruments)),
	}
	copy(c.ordered, instruments)
	for _, in := range instruments {
		c.byID[in.ID] = in
	}
	return c, nil
}

// Get returns the instrument with the given ID or *ErrUnknownInstrument.
func (c *Catalog) Get(id ID) (*Instrument, error) {
	in, ok := c.byID[id]
	if !ok {
		return nil, &ErrUnknownInstrument{ID: id}
	}
	return in, nil
}

// All returns every instrument in catalog order.
func (c *Catalog) All() []*Instrument {
	out := make([]*Instrument, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// IDs returns every instrument ID in catalog order.
func (c *Catalog) IDs() []ID {
	out := make([]ID, len(c.ordered))
	for i, in := range c.ordered {
		out[i] = in.ID
	}
	return out
}

// Len returns the number of instruments.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// builtin is the package-level catalog, set by init().
var builtin *Catalog

func init() {
	c, err := loadBuiltin()
	if err != nil {
		panic(fmt.Sprintf("instrument: invalid built-in catalog: %v", err))
	}
	builtin = c
}

func loadBuiltin() (*Catalog, error) {
	instruments := make([]*Instrument, 0, len(builtinFiles))
	for _, name := range builtinFiles {
		data, err := builtinFS.ReadFile(path.Join("catalog", name))
		if err != nil {
			return nil, err
		}
		in, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		instruments = append(instruments, in)
	}
	return NewCatalog(instruments...)
}

// Builtin returns the embedded PHQ-9 / GAD-7 catalog.
func Builtin() *Catalog {
	return builtin
}

// Get looks up an instrument in the built-in catalog.
func Get(id ID) (*Instrument, error) {
	return builtin.Get(id)
}

// All returns the built-in instruments in display order.
func All() []*Instrument {
	return builtin.All()
}

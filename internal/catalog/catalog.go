package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCatalog  = errors.New("catalog has no methods")
	ErrDuplicateName = errors.New("duplicate method name")
	ErrBadCategory   = errors.New("unknown method category")
)

// Catalog is an immutable, ordered method table. Safe for concurrent reads.
type Catalog struct {
	methods []Method
	byName  map[string]int
}

// New validates rows and freezes them in the given order.
func New(methods []Method) (*Catalog, error) {
	if len(methods) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		methods: make([]Method, len(methods)),
		byName:  make(map[string]int, len(methods)),
	}
	for i, m := range methods {
		if m.Name == "" {
			return nil, fmt.Errorf("method at position %d has no name", i)
		}
		if !validCategory(m.Category) {
			return nil, fmt.Errorf("%w: %q for %s", ErrBadCategory, m.Category, m.Name)
		}
		if _, dup := c.byName[m.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, m.Name)
		}
		c.methods[i] = m
		c.byName[m.Name] = i
	}
	return c, nil
}

// Lookup returns the method with the given name.
func (c *Catalog) Lookup(name string) (Method, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Method{}, false
	}
	return c.methods[i], true
}

// Methods returns a copy of every method in enumeration order.
func (c *Catalog) Methods() []Method {
	out := make([]Method, len(c.methods))
	copy(out, c.methods)
	return out
}

// Names lists method names in enumeration order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.methods))
	for i, m := range c.methods {
		out[i] = m.Name
	}
	return out
}

// Universe returns the names of methods whose category is one of categories,
// in enumeration order.
func (c *Catalog) Universe(categories ...string) []string {
	want := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		want[cat] = struct{}{}
	}
	var out []string
	for _, m := range c.methods {
		if _, ok := want[m.Category]; ok {
			out = append(out, m.Name)
		}
	}
	return out
}

// Len reports the number of methods.
func (c *Catalog) Len() int {
	return len(c.methods)
}

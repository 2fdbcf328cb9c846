package markup

import (
	"sort"
	"strings"

	"snaptext/grid"
)

// ClassSet is a set of CSS class names (or element ids treated as classes).
type ClassSet map[string]struct{}

func NewClassSet(names ...string) ClassSet {
	s := make(ClassSet, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// ParseClassList builds set from comma separated list as given on command
// line.
func ParseClassList(list string) ClassSet {
	if list == "" {
		return ClassSet{}
	}
	return NewClassSet(strings.Split(list, ",")...)
}

func (s ClassSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s ClassSet) Add(name string) {
	s[name] = struct{}{}
}

// Intersects reports whether sets have at least one common member.
func (s ClassSet) Intersects(other ClassSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for n := range small {
		if large.Has(n) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether s is a superset of names.
func (s ClassSet) ContainsAll(names ClassSet) bool {
	for n := range names {
		if !s.Has(n) {
			return false
		}
	}
	return true
}

func (s ClassSet) Clone() ClassSet {
	c := make(ClassSet, len(s))
	for n := range s {
		c[n] = struct{}{}
	}
	return c
}

// Sorted returns members in lexical order.
func (s ClassSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s ClassSet) String() string {
	return strings.Join(s.Sorted(), ",")
}

// Options are immutable rendering settings shared by all documents.
type Options struct {
	// Ignore lists classes whose elements are dropped with all content.
	Ignore ClassSet
	// Icons lists classes and ids rendered as icon glyphs.
	Icons ClassSet
	// Modals lists classes of div elements which are modal dialogs.
	Modals ClassSet
	// ShowInvisible disables all visibility checks.
	ShowInvisible bool
	// Grid is passed to table layout.
	Grid []grid.Option
}

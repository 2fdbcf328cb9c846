package css

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw       string  // Original CSS value string without !important (e.g., "0px", "none", "#ff0000")
	Value     float64 // Numeric value if applicable
	Unit      string  // Unit if applicable: "em", "px", "%", etc.
	Keyword   string  // Keyword if applicable: "none", "hidden", "absolute", etc.
	Important bool
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	if v.Raw != "" && v.Keyword == "" {
		first := rune(v.Raw[0])
		if unicode.IsDigit(first) || first == '.' || first == '-' || first == '+' {
			return true
		}
	}
	return false
}

// IsZero is true for numeric zero in any unit.
func (v Value) IsZero() bool {
	return v.IsNumeric() && v.Value == 0
}

// IsNegative is true when value text starts with minus sign, so offsets like
// "-9999px" or "-100%" qualify.
func (v Value) IsNegative() bool {
	return strings.HasPrefix(v.Raw, "-")
}

// Declarations is a set of property declarations, for example content of
// the inline style attribute. Later declarations of the same property win.
type Declarations map[string]Value

// Get returns the value for a property.
func (d Declarations) Get(name string) (Value, bool) {
	v, ok := d[name]
	return v, ok
}

// Keyword returns lowercased keyword of the property or empty string.
func (d Declarations) Keyword(name string) string {
	return d[name].Keyword
}

// Selector represents a parsed compound CSS selector: optional element,
// classes and at most one attribute presence test.
type Selector struct {
	Raw     string   // Original selector string
	Element string   // Element name (e.g., "div") or empty
	Classes []string // Class names without dots in source order
	Attr    string   // Attribute name from [attr] or [attr=value], empty if none
	Complex bool     // Combinators, pseudo-classes or multiple attributes: not analyzed
}

// IsClassOnly returns true if selector consists of classes and optional
// attribute test only.
func (s Selector) IsClassOnly() bool {
	return !s.Complex && s.Element == "" && len(s.Classes) > 0
}

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   Selector         // Parsed selector
	Properties map[string]Value // Property name -> value
	Media      string           // Enclosing @media query, empty at top level
}

// GetProperty returns the value for a property, or empty Value if not found.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// Stylesheet represents a parsed CSS stylesheet. Rules nested into
// conditional group at-rules are flattened, source order is preserved.
type Stylesheet struct {
	Rules    []Rule
	Warnings []string // Warnings for selectors which were not analyzed
}

// RulesWithProperty returns rules declaring property in source order.
func (s *Stylesheet) RulesWithProperty(name string) []Rule {
	var matches []Rule
	for _, r := range s.Rules {
		if _, ok := r.Properties[name]; ok {
			matches = append(matches, r)
		}
	}
	return matches
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, rule := range s.Rules {
		n, err := writeRule(w, &rule)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeRule(w io.Writer, rule *Rule) (int, error) {
	indent := ""
	var total int
	if rule.Media != "" {
		n, err := fmt.Fprintf(w, "@media %s {\n", rule.Media)
		total += n
		if err != nil {
			return total, err
		}
		indent = "  "
	}

	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.Selector.Raw)
	total += n
	if err != nil {
		return total, err
	}

	names := make([]string, 0, len(rule.Properties))
	for name := range rule.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		val := rule.Properties[name]
		important := ""
		if val.Important {
			important = " !important"
		}
		n, err = fmt.Fprintf(w, "%s  %s: %s%s;\n", indent, name, val.Raw, important)
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	if err != nil || rule.Media == "" {
		return total, err
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

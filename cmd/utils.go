package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wastenot/brik/engine"
)

// MapToAlias maps a configured alias to a canonical material label. If
// it's not found in the map, it returns the original string.
func MapToAlias(name string) string {
	if Cfg == nil {
		return name
	}
	aliasMap := Cfg.LabelAliases
	if aliasMap == nil {
		return name
	}

	if val, ok := aliasMap[strings.ToLower(name)]; ok {
		return val
	}

	return name
}

// ResolveLabel turns user input into a registry label: configured
// aliases first, then an exact match, then a case-insensitive match,
// then a unique substring match. Ambiguous substrings report the
// candidates so the user can be more specific.
func ResolveLabel(e *engine.Engine, input string) (string, error) {
	name := MapToAlias(strings.TrimSpace(input))

	if _, ok := e.Quantity(name); ok {
		return name, nil
	}

	lower := strings.ToLower(name)
	var matches []string
	for _, entry := range e.OrderedEntries() {
		l := strings.ToLower(entry.Label)
		if l == lower {
			return entry.Label, nil
		}
		if strings.Contains(l, lower) {
			matches = append(matches, entry.Label)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no material matches %q", input)
	}
	return "", fmt.Errorf("%q is ambiguous; matches: %s", input, strings.Join(matches, ", "))
}

// ParseQuantity parses a kilogram amount from user input.
func ParseQuantity(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: expected a number of kilograms", s)
	}
	return v, nil
}

// FormatQty renders a quantity without trailing float noise.
func FormatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Bar renders a proportional bar of width chars for value out of max.
// A non-zero value always gets at least one cell so tiny quantities
// stay visible.
func Bar(value, max float64, width int) string {
	if max <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	n := int(value / max * float64(width))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}

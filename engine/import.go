package engine

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Applied records one registry update made by ImportQuantities: source
// key, the label it matched, and the quantity stored (after clamping).
type Applied struct {
	Key      string
	Label    string
	Quantity float64
}

// ImportReport summarizes an ImportQuantities call. A key appears in
// Applied once per label it matched (the heuristic allows several),
// in Unmatched when no label matched, and in Malformed when its value
// could not be coerced to a number.
type ImportReport struct {
	Applied   []Applied
	Unmatched []string
	Malformed []string
}

// ImportQuantities applies an externally sourced key→quantity mapping,
// units assumed kilograms. External keys rarely spell labels the way
// the registry does ("plastic_shreds" vs "Plastic shreds"), so matching
// is a permissive two-way substring test over normalized keys rather
// than a fixed schema. Short generic keys can therefore hit more than
// one label; the report lists every hit so the caller can show what
// happened. Keys are processed in sorted order for a deterministic
// report. One notification fires after the whole source is processed,
// and the result is persisted in full.
func (e *Engine) ImportQuantities(source map[string]any) (ImportReport, error) {
	var report ImportReport

	keys := make([]string, 0, len(source))
	for k := range source {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		qty, ok := coerceFloat(source[key])
		if !ok {
			report.Malformed = append(report.Malformed, key)
			continue
		}
		matched := false
		norm := normalizeKey(key)
		for _, label := range e.labels {
			if !labelMatches(label, norm) {
				continue
			}
			e.quantities[label] = math.Max(0, qty)
			report.Applied = append(report.Applied, Applied{Key: key, Label: label, Quantity: e.quantities[label]})
			matched = true
		}
		if !matched {
			report.Unmatched = append(report.Unmatched, key)
		}
	}

	err := e.Save()
	e.notify()
	return report, err
}

// normalizeKey lowercases and turns underscore separators into spaces.
// Hyphens are kept: "e-waste" must still line up with the "E-waste"
// label's first token.
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "_", " ")
	return strings.Join(strings.Fields(key), " ")
}

// labelMatches reports whether a normalized external key refers to a
// registry label: either the lowercased label contains the key, or the
// key contains the label's first token ("plastic" hits "Plastic
// shreds"). False positives on very short keys are accepted; the label
// set is small and human-curated.
func labelMatches(label, normKey string) bool {
	if normKey == "" {
		return false
	}
	lower := strings.ToLower(label)
	if strings.Contains(lower, normKey) {
		return true
	}
	first, _, _ := strings.Cut(lower, " ")
	return strings.Contains(normKey, first)
}

// coerceFloat accepts the numeric shapes a decoded JSON or YAML object
// can carry, plus string-encoded numbers. Anything else is skipped.
func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

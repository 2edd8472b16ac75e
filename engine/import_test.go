package engine

import (
	"testing"
)

func TestImportQuantitiesFuzzyMatch(t *testing.T) {
	tests := []struct {
		name      string
		source    map[string]any
		label     string
		want      float64
		unmatched int
		malformed int
	}{
		{
			name:   "underscore separator",
			source: map[string]any{"plastic_shreds": 3.5},
			label:  "Plastic shreds",
			want:   3.5,
		},
		{
			name:   "first token only",
			source: map[string]any{"plastic": 2.0},
			label:  "Plastic shreds",
			want:   2.0,
		},
		{
			name:   "case insensitive",
			source: map[string]any{"SAWDUST": 6.0},
			label:  "Sawdust",
			want:   6.0,
		},
		{
			name:   "hyphenated label",
			source: map[string]any{"e-waste": 1.25},
			label:  "E-waste",
			want:   1.25,
		},
		{
			name:   "string encoded number",
			source: map[string]any{"sand": "4.5"},
			label:  "Sand",
			want:   4.5,
		},
		{
			name:   "integer value",
			source: map[string]any{"garden_waste": 7},
			label:  "Garden waste",
			want:   7,
		},
		{
			name:   "negative clamps to zero",
			source: map[string]any{"sawdust": -2.0},
			label:  "Sawdust",
			want:   0,
		},
		{
			name:      "unknown key ignored",
			source:    map[string]any{"unknown_material_xyz": 9.0},
			label:     "",
			unmatched: 1,
		},
		{
			name:      "malformed value skipped",
			source:    map[string]any{"sawdust": "lots"},
			label:     "",
			malformed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(nil)
			before := e.OrderedEntries()

			report, err := e.ImportQuantities(tt.source)
			if err != nil {
				t.Fatalf("ImportQuantities() error = %v", err)
			}
			if len(report.Unmatched) != tt.unmatched {
				t.Errorf("Unmatched = %v, want %d entries", report.Unmatched, tt.unmatched)
			}
			if len(report.Malformed) != tt.malformed {
				t.Errorf("Malformed = %v, want %d entries", report.Malformed, tt.malformed)
			}

			for i, entry := range e.OrderedEntries() {
				if entry.Label == tt.label {
					if entry.Quantity != tt.want {
						t.Errorf("%q = %v, want %v", entry.Label, entry.Quantity, tt.want)
					}
					continue
				}
				// Everything the import did not target is untouched.
				if entry != before[i] {
					t.Errorf("entry %q changed: %+v -> %+v", before[i].Label, before[i], entry)
				}
			}
		})
	}
}

func TestImportMixedSource(t *testing.T) {
	e := New(nil)

	report, err := e.ImportQuantities(map[string]any{
		"plastic_shreds": 3.5,
		"vegetable":      "10",
		"mystery_goo":    1.0,
		"paper_scraps":   "not a number",
	})
	if err != nil {
		t.Fatalf("ImportQuantities() error = %v", err)
	}

	if got, _ := e.Quantity("Plastic shreds"); got != 3.5 {
		t.Errorf("Plastic shreds = %v, want 3.5", got)
	}
	if got, _ := e.Quantity("Vegetable peels"); got != 10 {
		t.Errorf("Vegetable peels = %v, want 10", got)
	}
	if got, _ := e.Quantity("Paper scraps"); got != 2 {
		t.Errorf("Paper scraps = %v, want untouched default 2", got)
	}
	if len(report.Applied) != 2 {
		t.Errorf("Applied = %+v, want 2 entries", report.Applied)
	}
	if len(report.Unmatched) != 1 || report.Unmatched[0] != "mystery_goo" {
		t.Errorf("Unmatched = %v, want [mystery_goo]", report.Unmatched)
	}
	if len(report.Malformed) != 1 || report.Malformed[0] != "paper_scraps" {
		t.Errorf("Malformed = %v, want [paper_scraps]", report.Malformed)
	}
}

func TestImportNotifiesOnce(t *testing.T) {
	e := New(nil)

	var fired int
	e.Subscribe(func() { fired++ })

	if _, err := e.ImportQuantities(map[string]any{
		"sawdust": 1.0,
		"sand":    2.0,
	}); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Fatalf("fired = %d for a two-key import, want 1", fired)
	}
}

func TestImportPersists(t *testing.T) {
	s := newMemStore()
	e := New(s)

	if _, err := e.ImportQuantities(map[string]any{"sawdust": 7.5}); err != nil {
		t.Fatal(err)
	}

	fresh := New(s)
	if err := fresh.Load(); err != nil {
		t.Fatal(err)
	}
	if got, _ := fresh.Quantity("Sawdust"); got != 7.5 {
		t.Errorf("Sawdust = %v after reload, want 7.5", got)
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Plastic_Shreds", "plastic shreds"},
		{"  sawdust  ", "sawdust"},
		{"e-waste", "e-waste"},
		{"a__b", "a b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeKey(tt.in); got != tt.want {
			t.Errorf("normalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float64", 3.5, 3.5, true},
		{"int", 4, 4, true},
		{"string number", "2.25", 2.25, true},
		{"padded string", " 7 ", 7, true},
		{"word", "lots", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceFloat(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("coerceFloat(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

package cmd

import (
	"testing"

	"github.com/wastenot/brik/engine"
)

func TestMapToAlias(t *testing.T) {
	// Setup Cfg for testing
	oldCfg := Cfg
	defer func() { Cfg = oldCfg }()

	Cfg = &Config{
		LabelAliases: map[string]string{
			"veg":     "Vegetable peels",
			"plastic": "Plastic shreds",
		},
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"veg", "Vegetable peels"},
		{"VEG", "Vegetable peels"}, // alias lookup is case-insensitive
		{"plastic", "Plastic shreds"},
		{"Sawdust", "Sawdust"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			actual := MapToAlias(tt.input)
			if actual != tt.expected {
				t.Errorf("MapToAlias(%q) = %q, want %q", tt.input, actual, tt.expected)
			}
		})
	}
}

func TestResolveLabel(t *testing.T) {
	oldCfg := Cfg
	defer func() { Cfg = oldCfg }()

	Cfg = &Config{
		LabelAliases: map[string]string{
			"veg": "Vegetable peels",
		},
	}

	e := engine.New(nil)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"exact", "Sawdust", "Sawdust", false},
		{"case insensitive", "sawdust", "Sawdust", false},
		{"alias", "veg", "Vegetable peels", false},
		{"unique substring", "plastic", "Plastic shreds", false},
		{"trimmed", "  Sand  ", "Sand", false},
		{"ambiguous substring", "waste", "", true}, // Garden waste and E-waste
		{"no match", "concrete", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveLabel(e, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolveLabel(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveLabel(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ResolveLabel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"3.5", 3.5, false},
		{" 21 ", 21, false},
		{"-2", -2, false},
		{"0", 0, false},
		{"lots", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseQuantity(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseQuantity(%q) = %v, want error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseQuantity(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseQuantity(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{21, "21"},
		{0.02, "0.02"},
		{3.5, "3.5"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := FormatQty(tt.input); got != tt.expected {
			t.Errorf("FormatQty(%v) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		max   float64
		width int
		cells int
	}{
		{"full", 10, 10, 20, 20},
		{"half", 5, 10, 20, 10},
		{"tiny stays visible", 0.01, 10, 20, 1},
		{"zero", 0, 10, 20, 0},
		{"zero max", 5, 0, 20, 0},
		{"over max clamps", 15, 10, 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bar(tt.value, tt.max, tt.width)
			cells := len([]rune(got))
			if cells != tt.cells {
				t.Errorf("Bar(%v, %v, %d) = %d cells, want %d", tt.value, tt.max, tt.width, cells, tt.cells)
			}
		})
	}
}

func TestResolveSettingName(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"brickMass", engine.SettingBrickMass, false},
		{"brickmass", engine.SettingBrickMass, false},
		{"brick_mass", engine.SettingBrickMass, false},
		{"LANDFILL_DEPTH", engine.SettingLandfillDepth, false},
		{"brickColor", "", true},
	}

	for _, tt := range tests {
		got, err := resolveSettingName(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("resolveSettingName(%q) = %q, want error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolveSettingName(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveSettingName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

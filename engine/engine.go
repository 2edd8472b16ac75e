// Package engine holds the conversion model: a fixed registry of waste
// material quantities, the brick/landfill conversion settings, and the
// derived metrics computed from them. All mutation goes through Engine
// methods so the registry and settings invariants hold at all times.
package engine

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors callers can test with errors.Is.
var (
	// ErrUnknownLabel means a mutation targeted a label outside the
	// fixed registry key set.
	ErrUnknownLabel = errors.New("unknown material label")

	// ErrUnknownSetting means a setting name outside the four known
	// conversion parameters.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrInvalidValue means a proposed setting value was not positive.
	// The prior value is retained.
	ErrInvalidValue = errors.New("invalid setting value")

	// ErrPersistence wraps failures of the backing store. The in-memory
	// state is still updated and valid when this is returned.
	ErrPersistence = errors.New("persistence unavailable")
)

// Setting names, also used as their persisted keys.
const (
	SettingBrickMass     = "brickMass"
	SettingBrickVolume   = "brickVolume"
	SettingLandfillArea  = "landfillArea"
	SettingLandfillDepth = "landfillDepth"
)

// SettingNames lists the four conversion parameters in display order.
var SettingNames = []string{
	SettingBrickMass,
	SettingBrickVolume,
	SettingLandfillArea,
	SettingLandfillDepth,
}

// valueKeyPrefix namespaces registry quantities in the store so they
// cannot collide with setting names.
const valueKeyPrefix = "value:"

// defaultEntries is the canonical material set. Order matters: it is the
// iteration order of OrderedEntries and the color/index assignment
// consumers rely on.
var defaultEntries = []Entry{
	{"Vegetable peels", 8},
	{"Garden waste", 5},
	{"Sawdust", 4},
	{"Paper scraps", 2},
	{"Sand", 1},
	{"Plastic shreds", 0.5},
	{"E-waste", 0.2},
	{"Other", 0.3},
}

// defaultSettings are the compiled-in conversion parameters: a 2 kg,
// 2-liter brick and a 1000 m² landfill cell dug 2 m deep.
var defaultSettings = Settings{
	BrickMass:     2.0,
	BrickVolume:   0.002,
	LandfillArea:  1000.0,
	LandfillDepth: 2.0,
}

// Entry is one (label, quantity) pair of the registry. Quantity is in
// kilograms and never negative.
type Entry struct {
	Label    string
	Quantity float64
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %.2f kg", e.Label, e.Quantity)
}

// Settings holds the four conversion parameters. All are strictly
// positive while owned by an Engine.
type Settings struct {
	BrickMass     float64 // kg of material per brick
	BrickVolume   float64 // m³ per brick
	LandfillArea  float64 // m² of modeled landfill
	LandfillDepth float64 // m of landfill depth
}

// Store is the named-scalar persistence collaborator. Both methods
// operate on individual entries; a missing key is not an error.
type Store interface {
	GetFloat(key string) (val float64, ok bool, err error)
	PutFloat(key string, val float64) error
}

// Engine owns the material registry and conversion settings. It is not
// safe for concurrent use; the expected caller is a single command or
// event loop issuing operations serially. Construct with New.
type Engine struct {
	labels     []string
	quantities map[string]float64
	settings   Settings

	store Store // optional; nil disables persistence

	subs    map[int]func()
	subIDs  []int
	nextSub int
}

// New builds an engine at compiled-in defaults. store may be nil, in
// which case mutations are in-memory only and Save/Load are no-ops.
func New(store Store) *Engine {
	e := &Engine{
		labels:     make([]string, 0, len(defaultEntries)),
		quantities: make(map[string]float64, len(defaultEntries)),
		settings:   defaultSettings,
		store:      store,
		subs:       map[int]func(){},
	}
	for _, d := range defaultEntries {
		e.labels = append(e.labels, d.Label)
		e.quantities[d.Label] = d.Quantity
	}
	return e
}

// Subscribe registers fn to run synchronously after every completed
// mutation. The returned function removes the subscription. Callbacks
// may read from the engine but must not mutate it.
func (e *Engine) Subscribe(fn func()) (unsubscribe func()) {
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.subIDs = append(e.subIDs, id)
	return func() {
		delete(e.subs, id)
	}
}

func (e *Engine) notify() {
	for _, id := range e.subIDs {
		if fn, ok := e.subs[id]; ok {
			fn()
		}
	}
}

// OrderedEntries returns the registry in canonical order. The slice is
// a copy; mutating it does not affect the engine.
func (e *Engine) OrderedEntries() []Entry {
	out := make([]Entry, 0, len(e.labels))
	for _, l := range e.labels {
		out = append(out, Entry{Label: l, Quantity: e.quantities[l]})
	}
	return out
}

// Quantity returns the current quantity for label, and whether the
// label exists in the registry.
func (e *Engine) Quantity(label string) (float64, bool) {
	q, ok := e.quantities[label]
	return q, ok
}

// Settings returns a copy of the current conversion parameters.
func (e *Engine) Settings() Settings {
	return e.settings
}

// Setting returns one parameter by name.
func (e *Engine) Setting(name string) (float64, error) {
	switch name {
	case SettingBrickMass:
		return e.settings.BrickMass, nil
	case SettingBrickVolume:
		return e.settings.BrickVolume, nil
	case SettingLandfillArea:
		return e.settings.LandfillArea, nil
	case SettingLandfillDepth:
		return e.settings.LandfillDepth, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSetting, name)
}

// Derived metrics. These are never cached: each read recomputes from
// the current registry and settings, so a read can never observe a
// stale combination. Each stage guards its divisor because settings are
// user-edited and a caller may probe mid-edit.

// TotalAvailableWaste is the sum of all registry quantities in kg.
func (e *Engine) TotalAvailableWaste() float64 {
	var total float64
	for _, l := range e.labels {
		total += e.quantities[l]
	}
	return total
}

// BricksProducible is floor(total / brickMass). Quantities have no
// upper bound, so the quotient can exceed what an int holds; it is
// clamped rather than left to wrap negative in the conversion.
func (e *Engine) BricksProducible() int {
	bm := e.settings.BrickMass
	if bm <= 0 {
		return 0
	}
	q := math.Floor(e.TotalAvailableWaste() / bm)
	if q >= math.MaxInt64 {
		return math.MaxInt
	}
	return int(q)
}

// VolumeDiverted is the landfill volume in m³ kept out by bricks.
func (e *Engine) VolumeDiverted() float64 {
	return float64(e.BricksProducible()) * e.settings.BrickVolume
}

// AreaReduced converts diverted volume to an area at landfill depth.
func (e *Engine) AreaReduced() float64 {
	d := e.settings.LandfillDepth
	if d <= 0 {
		return 0
	}
	return e.VolumeDiverted() / d
}

// PercentLandfillReduced is AreaReduced as a percentage of the landfill
// area, clamped to [0, 100].
func (e *Engine) PercentLandfillReduced() float64 {
	a := e.settings.LandfillArea
	if a <= 0 {
		return 0
	}
	pct := e.AreaReduced() / a * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// UpdateValue sets the quantity for label, clamping negative input to
// zero. Returns ErrUnknownLabel if label is not a registry key. The new
// quantity is persisted and observers are notified; a store failure is
// reported via ErrPersistence after the in-memory update has applied.
func (e *Engine) UpdateValue(label string, quantity float64) error {
	if _, ok := e.quantities[label]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	e.quantities[label] = math.Max(0, quantity)
	err := e.persistValue(label)
	e.notify()
	return err
}

// UpdateSetting sets one conversion parameter. A value ≤ 0 is rejected
// with ErrInvalidValue and the prior value is retained.
func (e *Engine) UpdateSetting(name string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidValue, name, value)
	}
	switch name {
	case SettingBrickMass:
		e.settings.BrickMass = value
	case SettingBrickVolume:
		e.settings.BrickVolume = value
	case SettingLandfillArea:
		e.settings.LandfillArea = value
	case SettingLandfillDepth:
		e.settings.LandfillDepth = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	err := e.persistSetting(name, value)
	e.notify()
	return err
}

// ResetToDefaults restores the canonical registry and settings in one
// step. Observers see only the fully reset state, in one notification.
func (e *Engine) ResetToDefaults() error {
	for _, d := range defaultEntries {
		e.quantities[d.Label] = d.Quantity
	}
	e.settings = defaultSettings
	err := e.Save()
	e.notify()
	return err
}

// Save writes every registry quantity and every setting to the store as
// individual scalar entries. A write interrupted partway leaves a mix
// of old and new fields, each individually valid; Load tolerates that.
func (e *Engine) Save() error {
	if e.store == nil {
		return nil
	}
	for _, l := range e.labels {
		if err := e.store.PutFloat(valueKeyPrefix+l, e.quantities[l]); err != nil {
			return fmt.Errorf("%w: save %q: %w", ErrPersistence, l, err)
		}
	}
	for _, name := range SettingNames {
		v, _ := e.Setting(name)
		if err := e.store.PutFloat(name, v); err != nil {
			return fmt.Errorf("%w: save %q: %w", ErrPersistence, name, err)
		}
	}
	return nil
}

// Load overwrites in-memory state with any stored fields; missing keys
// keep their compiled-in values. Stored quantities are clamped to ≥ 0
// and non-positive stored settings are ignored, so a tampered or
// damaged store can never produce an invalid engine. One notification
// fires after all fields are read.
func (e *Engine) Load() error {
	if e.store == nil {
		return nil
	}
	for _, l := range e.labels {
		v, ok, err := e.store.GetFloat(valueKeyPrefix + l)
		if err != nil {
			return fmt.Errorf("%w: load %q: %w", ErrPersistence, l, err)
		}
		if ok {
			e.quantities[l] = math.Max(0, v)
		}
	}
	for _, name := range SettingNames {
		v, ok, err := e.store.GetFloat(name)
		if err != nil {
			return fmt.Errorf("%w: load %q: %w", ErrPersistence, name, err)
		}
		if ok && v > 0 {
			// Names come from SettingNames, so this cannot fail.
			_ = e.setSettingDirect(name, v)
		}
	}
	e.notify()
	return nil
}

func (e *Engine) setSettingDirect(name string, v float64) error {
	switch name {
	case SettingBrickMass:
		e.settings.BrickMass = v
	case SettingBrickVolume:
		e.settings.BrickVolume = v
	case SettingLandfillArea:
		e.settings.LandfillArea = v
	case SettingLandfillDepth:
		e.settings.LandfillDepth = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	return nil
}

func (e *Engine) persistValue(label string) error {
	if e.store == nil {
		return nil
	}
	if err := e.store.PutFloat(valueKeyPrefix+label, e.quantities[label]); err != nil {
		return fmt.Errorf("%w: save %q: %w", ErrPersistence, label, err)
	}
	return nil
}

func (e *Engine) persistSetting(name string, v float64) error {
	if e.store == nil {
		return nil
	}
	if err := e.store.PutFloat(name, v); err != nil {
		return fmt.Errorf("%w: save %q: %w", ErrPersistence, name, err)
	}
	return nil
}

// DefaultEntries returns a copy of the canonical material set, mainly
// for presentation code that wants to show what reset will produce.
func DefaultEntries() []Entry {
	out := make([]Entry, len(defaultEntries))
	copy(out, defaultEntries)
	return out
}

// DefaultSettings returns the compiled-in conversion parameters.
func DefaultSettings() Settings {
	return defaultSettings
}

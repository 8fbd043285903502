package multiworld

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
)

type OptionKind string

const (
	KindToggle OptionKind = "toggle"
	KindRange  OptionKind = "range"
	KindChoice OptionKind = "choice"
)

type ChoiceOption struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// OptionDef declares one player-facing setting. Resolved values are always
// ints: toggles are 0/1 and choices resolve to their declared value.
type OptionDef struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Description string         `json:"description,omitempty"`
	Kind        OptionKind     `json:"kind"`
	Default     int            `json:"default"`
	Min         int            `json:"min,omitempty"`
	Max         int            `json:"max,omitempty"`
	Choices     []ChoiceOption `json:"choices,omitempty"`
}

func Toggle(name, display, description string, def bool) OptionDef {
	d := 0
	if def {
		d = 1
	}
	return OptionDef{Name: name, DisplayName: display, Description: description, Kind: KindToggle, Default: d, Min: 0, Max: 1}
}

func Range(name, display, description string, min, max, def int) OptionDef {
	return OptionDef{Name: name, DisplayName: display, Description: description, Kind: KindRange, Default: def, Min: min, Max: max}
}

func Choice(name, display, description string, def int, choices ...ChoiceOption) OptionDef {
	return OptionDef{Name: name, DisplayName: display, Description: description, Kind: KindChoice, Default: def, Choices: choices}
}

// Validate checks the definition itself, not a player's value.
func (d OptionDef) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("option has empty name")
	}
	switch d.Kind {
	case KindToggle:
		if d.Default != 0 && d.Default != 1 {
			return fmt.Errorf("option %s: toggle default must be 0 or 1, got %d", d.Name, d.Default)
		}
	case KindRange:
		if d.Min > d.Max {
			return fmt.Errorf("option %s: min %d above max %d", d.Name, d.Min, d.Max)
		}
		if d.Default < d.Min || d.Default > d.Max {
			return fmt.Errorf("option %s: default %d outside %d..%d", d.Name, d.Default, d.Min, d.Max)
		}
	case KindChoice:
		if len(d.Choices) == 0 {
			return fmt.Errorf("option %s: choice without choices", d.Name)
		}
		if _, ok := d.choiceByValue(d.Default); !ok {
			return fmt.Errorf("option %s: default %d is not a declared choice", d.Name, d.Default)
		}
	default:
		return fmt.Errorf("option %s: invalid kind %q", d.Name, d.Kind)
	}
	return nil
}

func (d OptionDef) choiceByValue(v int) (ChoiceOption, bool) {
	for _, c := range d.Choices {
		if c.Value == v {
			return c, true
		}
	}
	return ChoiceOption{}, false
}

// ChoiceName renders a resolved choice value back to its name.
func (d OptionDef) ChoiceName(v int) string {
	if c, ok := d.choiceByValue(v); ok {
		return c.Name
	}
	return strconv.Itoa(v)
}

// Resolve turns a raw player-file value into the option's int value. raw may
// be nil (default), a scalar, or a weighted map of scalars to weights.
func (d OptionDef) Resolve(raw any, rng *rand.Rand) (int, error) {
	switch v := raw.(type) {
	case nil:
		return d.Default, nil
	case map[string]any:
		weighted := make(map[string]int, len(v))
		for k, w := range v {
			n, err := weightOf(w)
			if err != nil {
				return 0, d.invalid(raw, err.Error())
			}
			weighted[k] = n
		}
		return d.resolveWeighted(weighted, rng)
	case map[any]any:
		weighted := make(map[string]int, len(v))
		for k, w := range v {
			n, err := weightOf(w)
			if err != nil {
				return 0, d.invalid(raw, err.Error())
			}
			weighted[fmt.Sprint(k)] = n
		}
		return d.resolveWeighted(weighted, rng)
	}

	switch d.Kind {
	case KindToggle:
		return d.resolveToggle(raw)
	case KindRange:
		return d.resolveRange(raw, rng)
	case KindChoice:
		return d.resolveChoice(raw, rng)
	}
	return 0, d.invalid(raw, "unknown option kind")
}

func (d OptionDef) resolveWeighted(weighted map[string]int, rng *rand.Rand) (int, error) {
	names := make([]string, 0, len(weighted))
	total := 0
	for k, w := range weighted {
		if w <= 0 {
			continue
		}
		names = append(names, k)
		total += w
	}
	if total == 0 {
		return 0, d.invalid(weighted, "no entry has a positive weight")
	}
	sort.Strings(names)
	roll := rng.IntN(total)
	for _, n := range names {
		roll -= weighted[n]
		if roll < 0 {
			return d.Resolve(n, rng)
		}
	}
	return d.Resolve(names[len(names)-1], rng)
}

func (d OptionDef) resolveToggle(raw any) (int, error) {
	switch v := raw.(type) {
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case int:
		if v == 0 || v == 1 {
			return v, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "yes", "1":
			return 1, nil
		case "false", "off", "no", "0":
			return 0, nil
		}
	}
	return 0, d.invalid(raw, "expected true or false")
}

func (d OptionDef) resolveRange(raw any, rng *rand.Rand) (int, error) {
	var n int
	switch v := raw.(type) {
	case int:
		n = v
	case float64:
		if v != float64(int(v)) {
			return 0, d.invalid(raw, "expected a whole number")
		}
		n = int(v)
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		switch s {
		case "default":
			return d.Default, nil
		case "random":
			return d.Min + rng.IntN(d.Max-d.Min+1), nil
		case "random-low":
			return d.Min + triangular(rng, d.Max-d.Min, false), nil
		case "random-high":
			return d.Min + triangular(rng, d.Max-d.Min, true), nil
		}
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return 0, d.invalid(raw, "expected a number or random")
		}
		n = parsed
	default:
		return 0, d.invalid(raw, "expected a number")
	}
	if n < d.Min || n > d.Max {
		return 0, d.invalid(raw, fmt.Sprintf("must be between %d and %d", d.Min, d.Max))
	}
	return n, nil
}

// triangular skews a draw in 0..span toward one end.
func triangular(rng *rand.Rand, span int, high bool) int {
	a := rng.IntN(span + 1)
	b := rng.IntN(span + 1)
	if high {
		return max(a, b)
	}
	return min(a, b)
}

func (d OptionDef) resolveChoice(raw any, rng *rand.Rand) (int, error) {
	switch v := raw.(type) {
	case int:
		if _, ok := d.choiceByValue(v); ok {
			return v, nil
		}
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if s == "default" {
			return d.Default, nil
		}
		if s == "random" {
			return d.Choices[rng.IntN(len(d.Choices))].Value, nil
		}
		names := make([]string, 0, len(d.Choices))
		for _, c := range d.Choices {
			if normaliseName(c.Name) == normaliseName(s) {
				return c.Value, nil
			}
			names = append(names, c.Name)
		}
		if n, err := strconv.Atoi(s); err == nil {
			return d.resolveChoice(n, rng)
		}
		if hint := Suggest(s, names); hint != "" {
			return 0, d.invalid(raw, fmt.Sprintf("did you mean %q?", hint))
		}
	}
	return 0, d.invalid(raw, "not one of "+d.choiceList())
}

func (d OptionDef) choiceList() string {
	names := make([]string, 0, len(d.Choices))
	for _, c := range d.Choices {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

func (d OptionDef) invalid(raw any, reason string) error {
	return fmt.Errorf("%w: %s=%v: %s", ErrInvalidOption, d.Name, raw, reason)
}

func weightOf(w any) (int, error) {
	switch v := w.(type) {
	case int:
		if v < 0 {
			return 0, fmt.Errorf("negative weight %d", v)
		}
		return v, nil
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("negative weight %v", v)
		}
		return int(v), nil
	}
	return 0, fmt.Errorf("weight %v is not a number", w)
}

// Values is a resolved option set. Names keep declaration order.
type Values struct {
	order []string
	vals  map[string]int
}

func NewValues() Values {
	return Values{vals: make(map[string]int)}
}

func (v *Values) Set(name string, value int) {
	if _, ok := v.vals[name]; !ok {
		v.order = append(v.order, name)
	}
	v.vals[name] = value
}

func (v Values) Get(name string) int {
	return v.vals[name]
}

func (v Values) Bool(name string) bool {
	return v.vals[name] != 0
}

func (v Values) Has(name string) bool {
	_, ok := v.vals[name]
	return ok
}

func (v Values) Names() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// ResolveOptions resolves every definition against a player's raw values.
// Keys with no definition are rejected.
func ResolveOptions(defs []OptionDef, raw map[string]any, rng *rand.Rand) (Values, error) {
	known := make(map[string]OptionDef, len(defs))
	for _, d := range defs {
		known[d.Name] = d
	}
	for name := range raw {
		if _, ok := known[name]; !ok {
			return Values{}, unknownName(ErrUnknownOption, name, keys(known))
		}
	}

	out := NewValues()
	for _, d := range defs {
		v, err := d.Resolve(raw[d.Name], rng)
		if err != nil {
			return Values{}, err
		}
		out.Set(d.Name, v)
	}
	return out, nil
}

// DefaultValues resolves every definition to its default.
func DefaultValues(defs []OptionDef) Values {
	out := NewValues()
	for _, d := range defs {
		out.Set(d.Name, d.Default)
	}
	return out
}

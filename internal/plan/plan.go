package plan

import "fmt"

// Unit scale constants.
//
// Plan entries store frequencies in the device's native unit. Intent
// documents express the channel centre in THz and the span in GHz;
// these factors convert both into plan units.
const (
	// centerScale converts a centre frequency in THz to plan units.
	centerScale = 1e6

	// spanScale converts a span in GHz to plan units.
	spanScale = 1e3
)

// Entry is a single named frequency slot in the channel plan.
// Entries are immutable once the Plan is built.
type Entry struct {
	// Name is the slot identifier, unique within the plan
	// (e.g. "C1", "13.5", "C-band").
	Name string

	// LowerFrequency is the lower bound of the slot in plan units.
	LowerFrequency float64

	// UpperFrequency is the upper bound of the slot in plan units.
	// Always strictly greater than LowerFrequency.
	UpperFrequency float64
}

// Resolution is the outcome of matching a descriptor onto the grid.
// All frequency fields are populated together regardless of which
// resolution direction produced it.
type Resolution struct {
	// Name is the matched entry's name.
	Name string

	// LowerFrequency and UpperFrequency are the entry's bounds in
	// plan units.
	LowerFrequency float64
	UpperFrequency float64

	// CenterTHz is the channel centre in THz.
	CenterTHz float64

	// SpanGHz is the channel span in GHz.
	SpanGHz float64
}

// Plan is an ordered, validated channel plan. It is safe for
// concurrent use: it is never mutated after New returns.
type Plan struct {
	entries []Entry
}

// New builds a Plan from entries in declared order.
//
// It enforces the plan invariants: every entry has a non-empty name,
// names are unique, and lower < upper. A violation returns an error
// wrapping ErrInvalidPlan that names the offending entry.
func New(entries []Entry) (*Plan, error) {
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has an empty name", ErrInvalidPlan, i)
		}
		if _, ok := seen[e.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate entry name %q", ErrInvalidPlan, e.Name)
		}
		seen[e.Name] = struct{}{}

		if e.LowerFrequency >= e.UpperFrequency {
			return nil, fmt.Errorf("%w: entry %q has lower-frequency %v >= upper-frequency %v",
				ErrInvalidPlan, e.Name, e.LowerFrequency, e.UpperFrequency)
		}
	}

	// Copy so the caller's slice cannot mutate the plan afterwards.
	own := make([]Entry, len(entries))
	copy(own, entries)

	return &Plan{entries: own}, nil
}

// Len returns the number of entries in the plan.
func (p *Plan) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the plan entries in declared order.
func (p *Plan) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// ResolveWindow matches a centre (THz) / span (GHz) window onto the
// grid. The first entry whose bounds exactly equal the computed window
// is the match; no match returns an error wrapping ErrNoMatch.
func (p *Plan) ResolveWindow(centerTHz, spanGHz float64) (Resolution, error) {
	lower := centerTHz*centerScale - spanGHz*spanScale/2
	upper := centerTHz*centerScale + spanGHz*spanScale/2

	for _, e := range p.entries {
		if e.LowerFrequency == lower && e.UpperFrequency == upper {
			return Resolution{
				Name:           e.Name,
				LowerFrequency: e.LowerFrequency,
				UpperFrequency: e.UpperFrequency,
				CenterTHz:      centerTHz,
				SpanGHz:        spanGHz,
			}, nil
		}
	}

	return Resolution{}, fmt.Errorf("%w: no slot for centre %v THz span %v GHz (window %v..%v)",
		ErrNoMatch, centerTHz, spanGHz, lower, upper)
}

// ResolveName matches a slot by exact name and derives the centre and
// span from the entry's bounds. No match returns an error wrapping
// ErrNoMatch.
func (p *Plan) ResolveName(name string) (Resolution, error) {
	for _, e := range p.entries {
		if e.Name != name {
			continue
		}

		span := e.UpperFrequency - e.LowerFrequency
		center := e.LowerFrequency + span/2

		return Resolution{
			Name:           e.Name,
			LowerFrequency: e.LowerFrequency,
			UpperFrequency: e.UpperFrequency,
			CenterTHz:      center / centerScale,
			SpanGHz:        span / spanScale,
		}, nil
	}

	return Resolution{}, fmt.Errorf("%w: no slot named %q", ErrNoMatch, name)
}

package channel

import (
	"fmt"
	"strings"

	"github.com/nerrad567/roadm-core/internal/plan"
)

// WholeBand is the name of the sentinel whole-band channel. It carries
// no discrete add/drop ports and is compared by name alone.
const WholeBand = "C-band"

// Origin records which descriptor shape a Channel was built from.
type Origin string

// Channel origins.
const (
	// OriginDeviceState marks a channel built from the element's live
	// configuration.
	OriginDeviceState Origin = "device-state"

	// OriginIntent marks a channel built from the operator's proposal.
	OriginIntent Origin = "intent"
)

// PortAttenuation is one leg (add or drop) of a device-state
// descriptor. Pointer fields distinguish absent from zero.
type PortAttenuation struct {
	Port          *string
	AttenuationDB *float64
}

// DeviceStateDescriptor is the typed form of one media-channels block
// read from the element. Add and Drop are required unless the channel
// is the whole-band sentinel.
type DeviceStateDescriptor struct {
	Name        string
	Add         *PortAttenuation
	Drop        *PortAttenuation
	Description *string
}

// IntentDescriptor is the typed form of one entry of the operator's
// proposal document. Port, AttenuationDB, SpanGHz and CenterTHz are
// required; Description is optional.
type IntentDescriptor struct {
	Port          *string
	AttenuationDB *float64
	SpanGHz       *float64
	CenterTHz     *float64
	Description   *string
}

// Channel is one media channel with its frequency fields fully
// resolved against the channel plan. It is immutable after
// construction: the reconciler and renderers only read it.
type Channel struct {
	// Origin is the descriptor shape this channel was built from.
	Origin Origin

	// Name is the plan slot name, always populated post-resolution.
	Name string

	// Port and AttenuationDB describe the symmetric add/drop legs.
	// Nil only for the whole-band sentinel.
	Port          *string
	AttenuationDB *float64

	// Description is the optional operator note.
	Description *string

	// Resolved frequency fields, populated together at construction.
	LowerFrequency float64
	UpperFrequency float64
	CenterTHz      float64
	SpanGHz        float64
}

// FromDeviceState builds a Channel from the element's live state,
// resolving the slot by name.
//
// Unless the channel is the whole-band sentinel, the add and drop
// blocks must both be present, each carrying a port and an
// attenuation, and must agree pairwise; a disagreement returns an
// error wrapping ErrAddDropMismatch.
func FromDeviceState(desc DeviceStateDescriptor, p *plan.Plan) (*Channel, error) {
	if desc.Name == "" {
		return nil, fmt.Errorf("%w: channel name", ErrMissingField)
	}

	ch := &Channel{
		Origin: OriginDeviceState,
		Name:   desc.Name,
	}

	if desc.Name != WholeBand {
		if desc.Add == nil {
			return nil, fmt.Errorf("%w: channel %q has no add block", ErrMissingField, desc.Name)
		}
		if desc.Drop == nil {
			return nil, fmt.Errorf("%w: channel %q has no drop block", ErrMissingField, desc.Name)
		}
		if desc.Add.Port == nil || desc.Drop.Port == nil {
			return nil, fmt.Errorf("%w: channel %q add/drop port", ErrMissingField, desc.Name)
		}
		if desc.Add.AttenuationDB == nil || desc.Drop.AttenuationDB == nil {
			return nil, fmt.Errorf("%w: channel %q add/drop attenuation", ErrMissingField, desc.Name)
		}
		if *desc.Add.Port != *desc.Drop.Port {
			return nil, fmt.Errorf("%w: channel %q port %q vs %q",
				ErrAddDropMismatch, desc.Name, *desc.Add.Port, *desc.Drop.Port)
		}
		if *desc.Add.AttenuationDB != *desc.Drop.AttenuationDB {
			return nil, fmt.Errorf("%w: channel %q attenuation %v vs %v",
				ErrAddDropMismatch, desc.Name, *desc.Add.AttenuationDB, *desc.Drop.AttenuationDB)
		}

		ch.Port = copyString(desc.Add.Port)
		ch.AttenuationDB = copyFloat(desc.Add.AttenuationDB)
		ch.Description = copyString(desc.Description)
	}

	res, err := p.ResolveName(desc.Name)
	if err != nil {
		return nil, fmt.Errorf("device-state channel %q: %w", desc.Name, err)
	}
	ch.applyResolution(res)

	return ch, nil
}

// FromIntent builds a Channel from one entry of the operator's
// proposal, resolving the slot by frequency window.
func FromIntent(desc IntentDescriptor, p *plan.Plan) (*Channel, error) {
	if desc.Port == nil {
		return nil, fmt.Errorf("%w: leaf_port", ErrMissingField)
	}
	if desc.AttenuationDB == nil {
		return nil, fmt.Errorf("%w: attenuation", ErrMissingField)
	}
	if desc.SpanGHz == nil {
		return nil, fmt.Errorf("%w: frequency_span", ErrMissingField)
	}
	if desc.CenterTHz == nil {
		return nil, fmt.Errorf("%w: frequency_center", ErrMissingField)
	}

	res, err := p.ResolveWindow(*desc.CenterTHz, *desc.SpanGHz)
	if err != nil {
		return nil, fmt.Errorf("proposed channel (centre %v THz, span %v GHz): %w",
			*desc.CenterTHz, *desc.SpanGHz, err)
	}

	ch := &Channel{
		Origin:        OriginIntent,
		Port:          copyString(desc.Port),
		AttenuationDB: copyFloat(desc.AttenuationDB),
		Description:   copyString(desc.Description),
	}
	ch.applyResolution(res)

	return ch, nil
}

// applyResolution fills every frequency field from a plan resolution.
func (c *Channel) applyResolution(res plan.Resolution) {
	c.Name = res.Name
	c.LowerFrequency = res.LowerFrequency
	c.UpperFrequency = res.UpperFrequency
	c.CenterTHz = res.CenterTHz
	c.SpanGHz = res.SpanGHz
}

// Equal reports whether two channels describe the same configuration.
//
// The whole-band sentinel is compared by name alone: two C-band
// channels are always equal, and a C-band channel never equals a
// per-slot channel. All other channels are equal iff name, port,
// attenuation and both frequency bounds match.
func Equal(a, b *Channel) bool {
	if a.Name == WholeBand || b.Name == WholeBand {
		return a.Name == b.Name
	}

	return a.Name == b.Name &&
		equalString(a.Port, b.Port) &&
		equalFloat(a.AttenuationDB, b.AttenuationDB) &&
		a.LowerFrequency == b.LowerFrequency &&
		a.UpperFrequency == b.UpperFrequency
}

// Compare orders channels by name. The order is used only for
// deterministic output, never for identity.
func Compare(a, b *Channel) int {
	return strings.Compare(a.Name, b.Name)
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

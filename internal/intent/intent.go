// Package intent parses the operator's proposed-channel YAML document
// into channels resolved against the device's plan.
package intent

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nerrad567/roadm-core/internal/channel"
	"github.com/nerrad567/roadm-core/internal/plan"
)

// ErrMalformedDocument is returned when the proposal is not a YAML
// sequence of channel entries.
var ErrMalformedDocument = errors.New("intent: malformed document")

// entryYAML is one entry of the proposal document:
//
//	- leaf_port: "E1"
//	  attenuation: 3.0
//	  frequency_span: 100     # GHz
//	  frequency_center: 191.35 # THz
//	  description: uplink to PoP
//
// Pointer fields distinguish absent from zero so that required-field
// validation in the channel package sees what the operator actually
// wrote.
type entryYAML struct {
	LeafPort        *string  `yaml:"leaf_port"`
	Attenuation     *float64 `yaml:"attenuation"`
	FrequencySpan   *float64 `yaml:"frequency_span"`
	FrequencyCenter *float64 `yaml:"frequency_center"`
	Description     *string  `yaml:"description"`
}

// Parse decodes the proposal and builds one channel per entry, in
// document order. The first invalid entry aborts the parse: a
// malformed proposal invalidates the whole run.
func Parse(data []byte, p *plan.Plan) ([]*channel.Channel, error) {
	var entries []entryYAML
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	channels := make([]*channel.Channel, 0, len(entries))
	for i, e := range entries {
		ch, err := channel.FromIntent(channel.IntentDescriptor{
			Port:          e.LeafPort,
			AttenuationDB: e.Attenuation,
			SpanGHz:       e.FrequencySpan,
			CenterTHz:     e.FrequencyCenter,
			Description:   e.Description,
		}, p)
		if err != nil {
			return nil, fmt.Errorf("proposal entry %d: %w", i, err)
		}
		channels = append(channels, ch)
	}

	return channels, nil
}

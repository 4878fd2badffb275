package netconf

import (
	"encoding/xml"
	"fmt"

	"github.com/nerrad567/roadm-core/internal/channel"
)

// XML namespaces of the rendered config payload.
const (
	// netconfBaseNS is the NETCONF base namespace of the config root.
	netconfBaseNS = "urn:ietf:params:xml:ns:netconf:base:1.0"

	// roadmDeviceNS is the CzechLight ROADM device YANG namespace.
	roadmDeviceNS = "http://czechlight.cesnet.cz/yang/czechlight-roadm-device"
)

// defaultIndent is used when RenderOptions.Indent is empty.
const defaultIndent = "  "

// RenderOptions carries the formatting of the rendered payload.
// Passed explicitly so rendering never depends on package state.
type RenderOptions struct {
	// Indent is the per-level indentation string.
	Indent string
}

type configXML struct {
	XMLName  xml.Name          `xml:"config"`
	Xmlns    string            `xml:"xmlns,attr"`
	Channels []mediaChannelOut `xml:"media-channels"`
}

type mediaChannelOut struct {
	Xmlns       string  `xml:"xmlns,attr"`
	Channel     string  `xml:"channel"`
	Add         *legOut `xml:"add,omitempty"`
	Drop        *legOut `xml:"drop,omitempty"`
	Description *string `xml:"description,omitempty"`
}

type legOut struct {
	Port        string  `xml:"port"`
	Attenuation float64 `xml:"attenuation"`
}

// Render serialises the final channel set into the NETCONF <config>
// payload, one media-channels block per channel in input order. The
// add and drop legs mirror the channel's single stored port and
// attenuation.
//
// A channel without port and attenuation (the whole-band sentinel)
// gets no add/drop blocks at all: emitting legs with empty values
// would push undefined configuration at the device.
func Render(channels []*channel.Channel, opts RenderOptions) ([]byte, error) {
	indent := opts.Indent
	if indent == "" {
		indent = defaultIndent
	}

	doc := configXML{
		Xmlns:    netconfBaseNS,
		Channels: make([]mediaChannelOut, 0, len(channels)),
	}

	for _, ch := range channels {
		out := mediaChannelOut{
			Xmlns:       roadmDeviceNS,
			Channel:     ch.Name,
			Description: ch.Description,
		}
		if ch.Port != nil && ch.AttenuationDB != nil {
			leg := legOut{Port: *ch.Port, Attenuation: *ch.AttenuationDB}
			out.Add = &leg
			out.Drop = &leg
		}
		doc.Channels = append(doc.Channels, out)
	}

	body, err := xml.MarshalIndent(doc, "", indent)
	if err != nil {
		return nil, fmt.Errorf("rendering config: %w", err)
	}

	return append([]byte(xml.Header), append(body, '\n')...), nil
}

package netconf

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/nerrad567/roadm-core/internal/channel"
	"github.com/nerrad567/roadm-core/internal/plan"
)

// planDocument mirrors the channel-plan NETCONF reply:
//
//	<data>
//	  <channel-plan>
//	    <channel>
//	      <name>C1</name>
//	      <lower-frequency>191300000</lower-frequency>
//	      <upper-frequency>191400000</upper-frequency>
//	    </channel>
//	    ...
type planDocument struct {
	XMLName  xml.Name         `xml:"data"`
	Channels []planChannelXML `xml:"channel-plan>channel"`
}

type planChannelXML struct {
	Name           string `xml:"name"`
	LowerFrequency string `xml:"lower-frequency"`
	UpperFrequency string `xml:"upper-frequency"`
}

// mediaDocument mirrors the media-channels NETCONF reply:
//
//	<data>
//	  <media-channels>
//	    <channel>C1</channel>
//	    <add><port>E1</port><attenuation>3.0</attenuation></add>
//	    <drop><port>E1</port><attenuation>3.0</attenuation></drop>
//	    <description>uplink</description>
//	  </media-channels>
//	  ...
type mediaDocument struct {
	XMLName  xml.Name          `xml:"data"`
	Channels []mediaChannelXML `xml:"media-channels"`
}

type mediaChannelXML struct {
	Channel     string  `xml:"channel"`
	Add         *legXML `xml:"add"`
	Drop        *legXML `xml:"drop"`
	Description *string `xml:"description"`
}

type legXML struct {
	Port        *string `xml:"port"`
	Attenuation *string `xml:"attenuation"`
}

// ParseChannelPlan parses a channel-plan reply into a validated Plan.
// Structural problems return an error wrapping ErrMalformedDocument;
// plan invariant violations surface as plan.ErrInvalidPlan.
func ParseChannelPlan(data []byte) (*plan.Plan, error) {
	var doc planDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: channel plan: %v", ErrMalformedDocument, err)
	}

	entries := make([]plan.Entry, 0, len(doc.Channels))
	for _, c := range doc.Channels {
		lower, err := parseFrequency(c.LowerFrequency, c.Name, "lower-frequency")
		if err != nil {
			return nil, err
		}
		upper, err := parseFrequency(c.UpperFrequency, c.Name, "upper-frequency")
		if err != nil {
			return nil, err
		}
		entries = append(entries, plan.Entry{
			Name:           c.Name,
			LowerFrequency: lower,
			UpperFrequency: upper,
		})
	}

	return plan.New(entries)
}

// ParseMediaChannels parses a media-channels reply into device-state
// channels resolved against the plan. Construction failures
// (channel.ErrMissingField, channel.ErrAddDropMismatch,
// plan.ErrNoMatch) abort the whole parse: a single malformed entry
// invalidates the run.
func ParseMediaChannels(data []byte, p *plan.Plan) ([]*channel.Channel, error) {
	var doc mediaDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: media channels: %v", ErrMalformedDocument, err)
	}

	channels := make([]*channel.Channel, 0, len(doc.Channels))
	for _, mc := range doc.Channels {
		desc := channel.DeviceStateDescriptor{
			Name:        mc.Channel,
			Description: mc.Description,
		}

		var err error
		if desc.Add, err = parseLeg(mc.Add, mc.Channel); err != nil {
			return nil, err
		}
		if desc.Drop, err = parseLeg(mc.Drop, mc.Channel); err != nil {
			return nil, err
		}

		ch, err := channel.FromDeviceState(desc, p)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}

	return channels, nil
}

func parseLeg(leg *legXML, name string) (*channel.PortAttenuation, error) {
	if leg == nil {
		return nil, nil
	}

	pa := &channel.PortAttenuation{Port: leg.Port}
	if leg.Attenuation != nil {
		att, err := strconv.ParseFloat(*leg.Attenuation, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: channel %q attenuation %q is not numeric",
				ErrMalformedDocument, name, *leg.Attenuation)
		}
		pa.AttenuationDB = &att
	}
	return pa, nil
}

func parseFrequency(raw, name, field string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: plan entry %q %s %q is not numeric",
			ErrMalformedDocument, name, field, raw)
	}
	return f, nil
}

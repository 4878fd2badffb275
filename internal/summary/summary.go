package summary

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/nerrad567/roadm-core/internal/channel"
	"github.com/nerrad567/roadm-core/internal/reconcile"
)

// Summary document filenames.
const (
	AddedFile   = "added_channels.yaml"
	RemovedFile = "removed_channels.yaml"
	ChangedFile = "changed_channels.yaml"
	FinalFile   = "final_configuration.yaml"
)

// Placeholder is the document body written for an empty category.
const Placeholder = "No channels in this category"

// filePermissions is the mode for written summary documents.
const filePermissions = 0600

// defaultIndent is used when Options.Indent is zero.
const defaultIndent = 2

// Options carries the YAML formatting of the rendered documents.
// Passed explicitly so rendering never depends on package state.
type Options struct {
	// Indent is the number of spaces per nesting level.
	Indent int
}

// Write renders the four summary documents for a reconciliation
// result into dir, creating it if needed.
func Write(dir string, res reconcile.Result, opts Options) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating summary directory: %w", err)
	}

	docs := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{AddedFile, func() ([]byte, error) { return RenderChannels(res.Added, opts) }},
		{RemovedFile, func() ([]byte, error) { return RenderChannels(res.Removed, opts) }},
		{ChangedFile, func() ([]byte, error) { return RenderChanges(res.Changed, opts) }},
		{FinalFile, func() ([]byte, error) { return RenderChannels(res.Final, opts) }},
	}

	for _, doc := range docs {
		data, err := doc.render()
		if err != nil {
			return fmt.Errorf("rendering %s: %w", doc.name, err)
		}
		path := filepath.Join(dir, doc.name)
		if err := os.WriteFile(path, data, filePermissions); err != nil {
			return fmt.Errorf("writing %s: %w", doc.name, err)
		}
	}

	return nil
}

// RenderChannels renders an ordered channel list as a YAML sequence of
// presentation records, or the placeholder document when empty.
func RenderChannels(channels []*channel.Channel, opts Options) ([]byte, error) {
	if len(channels) == 0 {
		return marshal(Placeholder, opts)
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, ch := range channels {
		node, err := channelNode(ch)
		if err != nil {
			return nil, err
		}
		seq.Content = append(seq.Content, node)
	}

	return marshal(seq, opts)
}

// RenderChanges renders changed-channel pairs. Each record carries the
// proposed value for unchanged fields and a "<current> -> <proposed>"
// transition string for fields that differ.
func RenderChanges(changes []reconcile.Change, opts Options) ([]byte, error) {
	if len(changes) == 0 {
		return marshal(Placeholder, opts)
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, chg := range changes {
		node, err := changeNode(chg)
		if err != nil {
			return nil, err
		}
		seq.Content = append(seq.Content, node)
	}

	return marshal(seq, opts)
}

// field is one key of a presentation record, in document order.
type field struct {
	key     string
	value   any
	comment string
}

// fields lists a channel's presentation record in the order the
// operator sees it.
func fields(ch *channel.Channel) []field {
	return []field{
		{key: "name", value: ch.Name},
		{key: "leaf_port", value: ch.Port},
		{key: "attenuation", value: ch.AttenuationDB},
		{key: "frequency_span", value: ch.SpanGHz, comment: "GHz"},
		{key: "frequency_center", value: ch.CenterTHz, comment: "THz"},
		{key: "description", value: ch.Description},
	}
}

func channelNode(ch *channel.Channel) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields(ch) {
		if err := appendField(node, f.key, f.value, f.comment); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func changeNode(chg reconcile.Change) (*yaml.Node, error) {
	proposed := fields(chg.Proposed)
	current := fields(chg.Current)

	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, f := range proposed {
		value := f.value
		if !equalValue(f.value, current[i].value) {
			value = formatValue(current[i].value) + " -> " + formatValue(f.value)
		}
		if err := appendField(node, f.key, value, f.comment); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func appendField(node *yaml.Node, key string, value any, comment string) error {
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}

	valueNode := &yaml.Node{}
	if v := deref(value); v == nil {
		valueNode.Kind = yaml.ScalarNode
		valueNode.Tag = "!!null"
		valueNode.Value = "null"
	} else if err := valueNode.Encode(v); err != nil {
		return fmt.Errorf("encoding field %s: %w", key, err)
	}
	valueNode.LineComment = comment

	node.Content = append(node.Content, keyNode, valueNode)
	return nil
}

// deref unwraps the optional pointer fields so they encode as their
// value, or YAML null when absent.
func deref(v any) any {
	switch p := v.(type) {
	case *string:
		if p == nil {
			return nil
		}
		return *p
	case *float64:
		if p == nil {
			return nil
		}
		return *p
	default:
		return v
	}
}

func equalValue(a, b any) bool {
	return formatValue(a) == formatValue(b)
}

// formatValue renders a field value for transition strings.
func formatValue(v any) string {
	switch x := deref(v).(type) {
	case nil:
		return "null"
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func marshal(v any, opts Options) ([]byte, error) {
	indent := opts.Indent
	if indent == 0 {
		indent = defaultIndent
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Package inventory loads the operator's device list and renders the
// host inventory consumed by the external automation runner.
//
// The runner owns all remote access: it fetches device documents and
// pushes rendered configs. This package only describes the fleet to
// it; credentials pass straight through from the operator's file.
package inventory

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nerrad567/roadm-core/internal/reconcile"
)

// ErrInvalidDevice is returned when a device entry fails validation.
var ErrInvalidDevice = errors.New("inventory: invalid device")

// filePermissions is the mode for the written inventory file, which
// contains credentials.
const filePermissions = 0600

// Device is one network element from the operator's devices file.
type Device struct {
	// Name identifies the device and prefixes all of its per-device
	// files (plan, state, proposal, rendered config).
	Name string `yaml:"name"`

	// IPAddress is the management address handed to the runner.
	IPAddress string `yaml:"ip_address"`

	// Username and Password are the runner's login credentials.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Mode selects merge or replace reconciliation for this device.
	Mode reconcile.Mode `yaml:"mode"`

	// Validate pauses this device for operator review: summaries are
	// written and the config is only applied after confirmation.
	Validate bool `yaml:"validate"`
}

// LoadDevices reads and validates the operator's devices file.
// Device names must be non-empty and unique; every entry needs an
// address and a recognised mode.
func LoadDevices(path string) ([]Device, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading devices file: %w", err)
	}

	var devices []Device
	if err := yaml.Unmarshal(data, &devices); err != nil {
		return nil, fmt.Errorf("parsing devices file: %w", err)
	}

	seen := make(map[string]struct{}, len(devices))
	for i, d := range devices {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalidDevice, i)
		}
		if _, ok := seen[d.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate device %q", ErrInvalidDevice, d.Name)
		}
		seen[d.Name] = struct{}{}

		if d.IPAddress == "" {
			return nil, fmt.Errorf("%w: device %q has no ip_address", ErrInvalidDevice, d.Name)
		}
		if _, err := reconcile.ParseMode(string(d.Mode)); err != nil {
			return nil, fmt.Errorf("%w: device %q: %v", ErrInvalidDevice, d.Name, err)
		}
	}

	return devices, nil
}

// Render serialises the runner inventory for the fleet, preserving
// device order:
//
//	all:
//	  hosts:
//	    roadm-1:
//	      ansible_host: 10.0.0.1
//	      ansible_user: admin
//	      ansible_password: secret
func Render(devices []Device) ([]byte, error) {
	hosts := &yaml.Node{Kind: yaml.MappingNode}
	for _, d := range devices {
		host := &yaml.Node{Kind: yaml.MappingNode}
		appendScalar(host, "ansible_host", d.IPAddress)
		appendScalar(host, "ansible_user", d.Username)
		appendScalar(host, "ansible_password", d.Password)

		hosts.Content = append(hosts.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: d.Name}, host)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	group := &yaml.Node{Kind: yaml.MappingNode}
	group.Content = append(group.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "hosts"}, hosts)
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "all"}, group)

	return yaml.Marshal(root)
}

// WriteFile renders the inventory and writes it with restricted
// permissions.
func WriteFile(path string, devices []Device) error {
	data, err := Render(devices)
	if err != nil {
		return fmt.Errorf("rendering inventory: %w", err)
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("writing inventory: %w", err)
	}
	return nil
}

func appendScalar(node *yaml.Node, key, value string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value})
}

// Package config handles loading and validating the roadmctl
// configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// The operator's device list and per-device proposal documents are
// separate files loaded by the inventory and intent packages; this
// package only locates them.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Paths.DataDir)
package config

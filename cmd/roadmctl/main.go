// roadmctl reconciles CzechLight ROADM optical-channel configuration.
//
// For every device in the operator's device list it loads the channel
// plan and live media-channel state the automation runner fetched,
// diffs them against the operator's proposal, renders the final
// NETCONF config payload and writes review summaries. The runner,
// not this tool, talks to the network elements.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/nerrad567/roadm-core/migrations"

	"github.com/nerrad567/roadm-core/internal/audit"
	"github.com/nerrad567/roadm-core/internal/infrastructure/config"
	"github.com/nerrad567/roadm-core/internal/infrastructure/database"
	"github.com/nerrad567/roadm-core/internal/infrastructure/logging"
	"github.com/nerrad567/roadm-core/internal/intent"
	"github.com/nerrad567/roadm-core/internal/inventory"
	"github.com/nerrad567/roadm-core/internal/netconf"
	"github.com/nerrad567/roadm-core/internal/reconcile"
	"github.com/nerrad567/roadm-core/internal/summary"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// renderedConfigPermissions is the mode for written config payloads.
const renderedConfigPermissions = 0600

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the application logic, separated from main for testability.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting roadmctl",
		"version", version,
		"commit", commit,
	)

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log = logging.New(cfg.Logging, version)

	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening run history database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating run history database: %w", err)
	}
	runs := audit.NewSQLiteRepository(db.DB)

	devices, err := inventory.LoadDevices(cfg.Paths.DevicesFile)
	if err != nil {
		return fmt.Errorf("loading devices: %w", err)
	}
	log.Info("loaded device list", "devices", len(devices))

	if err := inventory.WriteFile(cfg.Paths.InventoryFile, devices); err != nil {
		return fmt.Errorf("writing runner inventory: %w", err)
	}

	failed := 0
	for _, dev := range devices {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := processDevice(ctx, cfg, runs, log, dev); err != nil {
			// One device's bad documents must not block the fleet.
			log.Error("device reconciliation failed", "device", dev.Name, "error", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d devices failed", failed, len(devices))
	}
	return nil
}

// processDevice runs one device's reconciliation end to end: parse
// the fetched documents, diff, render the final config and write the
// review summaries.
func processDevice(ctx context.Context, cfg *config.Config, runs audit.Repository,
	log *logging.Logger, dev inventory.Device) error {

	devLog := log.With("device", dev.Name, "mode", string(dev.Mode))
	devLog.Info("processing device", "address", dev.IPAddress)

	planDoc, err := os.ReadFile(filepath.Join(cfg.Paths.DataDir, dev.Name+"_channel_plan.xml"))
	if err != nil {
		return fmt.Errorf("reading channel plan: %w", err)
	}
	stateDoc, err := os.ReadFile(filepath.Join(cfg.Paths.DataDir, dev.Name+"_media_channels.xml"))
	if err != nil {
		return fmt.Errorf("reading media channels: %w", err)
	}
	proposalDoc, err := os.ReadFile(filepath.Join(cfg.Paths.ConfigDir, dev.Name+".yaml"))
	if err != nil {
		return fmt.Errorf("reading proposal: %w", err)
	}

	channelPlan, err := netconf.ParseChannelPlan(planDoc)
	if err != nil {
		return fmt.Errorf("parsing channel plan: %w", err)
	}
	current, err := netconf.ParseMediaChannels(stateDoc, channelPlan)
	if err != nil {
		return fmt.Errorf("parsing media channels: %w", err)
	}
	proposed, err := intent.Parse(proposalDoc, channelPlan)
	if err != nil {
		return fmt.Errorf("parsing proposal: %w", err)
	}

	result := reconcile.Diff(current, proposed, dev.Mode)
	devLog.Info("reconciled",
		"added", len(result.Added),
		"removed", len(result.Removed),
		"changed", len(result.Changed),
		"final", len(result.Final),
	)

	if dev.Validate {
		checkupDir := filepath.Join(cfg.Paths.CheckupDir, dev.Name)
		opts := summary.Options{Indent: cfg.Output.YAMLIndent}
		if err := summary.Write(checkupDir, result, opts); err != nil {
			return fmt.Errorf("writing summaries: %w", err)
		}
		devLog.Info("wrote review summaries", "dir", checkupDir)
	} else {
		devLog.Warn("skipping proposal review summaries")
	}

	payload, err := netconf.Render(result.Final, netconf.RenderOptions{Indent: cfg.Output.XMLIndent})
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	configPath := filepath.Join(cfg.Paths.DataDir, dev.Name+".xml")
	if err := os.WriteFile(configPath, payload, renderedConfigPermissions); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	devLog.Info("wrote final configuration", "path", configPath)

	// Run history is best effort; a full checkup dir and rendered
	// config already exist on disk.
	if err := runs.Create(ctx, audit.NewRun(dev.Name, dev.Mode, result)); err != nil &&
		!errors.Is(err, context.Canceled) {
		devLog.Error("recording run history failed", "error", err)
	}

	return nil
}

// getConfigPath returns the configuration file path from
// ROADM_CONFIG, falling back to the default.
func getConfigPath() string {
	if v := os.Getenv("ROADM_CONFIG"); v != "" {
		return v
	}
	return defaultConfigPath
}

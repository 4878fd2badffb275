package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/roadm-core/internal/audit"
	"github.com/nerrad567/roadm-core/internal/infrastructure/config"
	"github.com/nerrad567/roadm-core/internal/infrastructure/logging"
	"github.com/nerrad567/roadm-core/internal/inventory"
	"github.com/nerrad567/roadm-core/internal/reconcile"
	"github.com/nerrad567/roadm-core/internal/summary"
)

const testPlanDoc = `<data>
  <channel-plan>
    <channel>
      <name>C1</name>
      <lower-frequency>191300000</lower-frequency>
      <upper-frequency>191400000</upper-frequency>
    </channel>
    <channel>
      <name>C2</name>
      <lower-frequency>191400000</lower-frequency>
      <upper-frequency>191500000</upper-frequency>
    </channel>
  </channel-plan>
</data>`

const testStateDoc = `<data>
  <media-channels>
    <channel>C2</channel>
    <add><port>E2</port><attenuation>1.0</attenuation></add>
    <drop><port>E2</port><attenuation>1.0</attenuation></drop>
  </media-channels>
</data>`

const testProposalDoc = `
- leaf_port: "E1"
  attenuation: 3.0
  frequency_span: 100
  frequency_center: 191.35
`

// recordingRepo captures runs without a database.
type recordingRepo struct {
	runs []*audit.Run
}

func (r *recordingRepo) Create(_ context.Context, run *audit.Run) error {
	r.runs = append(r.runs, run)
	return nil
}

func (r *recordingRepo) List(context.Context, audit.Filter) (*audit.ListResult, error) {
	return &audit.ListResult{}, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Paths: config.PathsConfig{
			ConfigDir:  filepath.Join(root, "config"),
			DataDir:    filepath.Join(root, "data"),
			CheckupDir: filepath.Join(root, "checkup"),
		},
		Output: config.OutputConfig{XMLIndent: "  ", YAMLIndent: 2},
	}
	for _, dir := range []string{cfg.Paths.ConfigDir, cfg.Paths.DataDir} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return cfg
}

func writeDeviceFixtures(t *testing.T, cfg *config.Config, name string) {
	t.Helper()
	files := map[string]string{
		filepath.Join(cfg.Paths.DataDir, name+"_channel_plan.xml"):   testPlanDoc,
		filepath.Join(cfg.Paths.DataDir, name+"_media_channels.xml"): testStateDoc,
		filepath.Join(cfg.Paths.ConfigDir, name+".yaml"):             testProposalDoc,
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
}

func TestProcessDevice(t *testing.T) {
	cfg := testConfig(t)
	writeDeviceFixtures(t, cfg, "roadm-1")

	repo := &recordingRepo{}
	dev := inventory.Device{
		Name:      "roadm-1",
		IPAddress: "10.0.0.1",
		Mode:      reconcile.ModeMerge,
		Validate:  true,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := processDevice(ctx, cfg, repo, logging.Default(), dev); err != nil {
		t.Fatalf("processDevice() error = %v", err)
	}

	// Final config rendered into the data dir.
	payload, err := os.ReadFile(filepath.Join(cfg.Paths.DataDir, "roadm-1.xml"))
	if err != nil {
		t.Fatalf("reading rendered config: %v", err)
	}
	// Merge keeps the device-only C2 and adds the proposed C1.
	if !strings.Contains(string(payload), "<channel>C1</channel>") ||
		!strings.Contains(string(payload), "<channel>C2</channel>") {
		t.Errorf("rendered config incomplete:\n%s", payload)
	}

	// Review summaries written for a validate-enabled device.
	added, err := os.ReadFile(filepath.Join(cfg.Paths.CheckupDir, "roadm-1", summary.AddedFile))
	if err != nil {
		t.Fatalf("reading added summary: %v", err)
	}
	if !strings.Contains(string(added), "name: C1") {
		t.Errorf("added summary missing C1:\n%s", added)
	}

	// Run recorded.
	if len(repo.runs) != 1 {
		t.Fatalf("recorded runs = %d, want 1", len(repo.runs))
	}
	run := repo.runs[0]
	if run.Device != "roadm-1" || run.AddedCount != 1 || run.FinalCount != 2 {
		t.Errorf("run = %+v, want device roadm-1, added 1, final 2", run)
	}
}

func TestProcessDevice_NoValidate(t *testing.T) {
	cfg := testConfig(t)
	writeDeviceFixtures(t, cfg, "roadm-2")

	dev := inventory.Device{
		Name:      "roadm-2",
		IPAddress: "10.0.0.2",
		Mode:      reconcile.ModeReplace,
	}

	if err := processDevice(context.Background(), cfg, &recordingRepo{}, logging.Default(), dev); err != nil {
		t.Fatalf("processDevice() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.Paths.CheckupDir, "roadm-2")); !os.IsNotExist(err) {
		t.Error("summaries written for a device with validate disabled")
	}

	// Replace drops the device-only C2.
	payload, err := os.ReadFile(filepath.Join(cfg.Paths.DataDir, "roadm-2.xml"))
	if err != nil {
		t.Fatalf("reading rendered config: %v", err)
	}
	if strings.Contains(string(payload), "<channel>C2</channel>") {
		t.Errorf("replace mode kept unproposed channel:\n%s", payload)
	}
}

func TestProcessDevice_MissingDocuments(t *testing.T) {
	cfg := testConfig(t)

	dev := inventory.Device{Name: "ghost", IPAddress: "10.0.0.9", Mode: reconcile.ModeMerge}
	err := processDevice(context.Background(), cfg, &recordingRepo{}, logging.Default(), dev)
	if err == nil {
		t.Fatal("processDevice() succeeded without device documents")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("ROADM_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

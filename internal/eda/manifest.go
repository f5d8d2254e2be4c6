package eda

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// manifestStep is the persisted status of one report step.
type manifestStep struct {
	Name      string   `yaml:"name"`
	Status    string   `yaml:"status"`
	Error     string   `yaml:"error,omitempty"`
	Reason    string   `yaml:"reason,omitempty"`
	Artifacts []string `yaml:"artifacts,omitempty"`
}

// runManifest is the structured per-run log written next to the artifacts.
type runManifest struct {
	RunID       string         `yaml:"run_id"`
	DataFile    string         `yaml:"data_file,omitempty"`
	Rows        int            `yaml:"rows"`
	Columns     int            `yaml:"columns"`
	GeneratedAt time.Time      `yaml:"generated_at"`
	Steps       []manifestStep `yaml:"steps"`
}

// writeManifest records the run id and per-step outcomes as yaml.
func (g *Generator) writeManifest(results []StepResult) error {
	m := runManifest{
		RunID:       g.runID,
		DataFile:    g.opts.DataFile,
		Rows:        g.df.Nrow(),
		Columns:     g.df.Ncol(),
		GeneratedAt: time.Now().UTC(),
	}
	for _, r := range results {
		ms := manifestStep{Name: r.Name, Status: "ok", Artifacts: r.Artifacts}
		switch {
		case r.Skipped:
			ms.Status = "skipped"
			ms.Reason = r.Reason
		case r.Err != nil:
			ms.Status = "failed"
			ms.Error = r.Err.Error()
		}
		m.Steps = append(m.Steps, ms)
	}
	b, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return writeFileAtomic(g.path("run_manifest.yaml"), b)
}

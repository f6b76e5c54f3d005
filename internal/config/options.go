// Package config defines the options struct the out-of-scope collaborators
// (GUI panel, worker thread, CLI) populate and hand to the bake engine. It
// is intentionally free of any Model/Motion parsing logic -- those remain
// external collaborators.
package config

import (
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Options mirrors the options contract plus the worker-pool sizing
// inputs supplemented from original_source/'s IKtoFKWorkerThread (the
// "exec-saving" single-worker mode and the cpu_count+4 default).
type Options struct {
	MotionPath    string `yaml:"motion_path"`
	ModelPath     string `yaml:"model_path"`
	OutputPath    string `yaml:"output_path"`
	MaxWorkers    int    `yaml:"max_workers"`
	ExecSaving    bool   `yaml:"exec_saving"`
	LoggingLevel  string `yaml:"logging_level"`
	VersionName   string `yaml:"version_name"`
	MirrorLogFile bool   `yaml:"mirror_log_file"`
}

// ResolvedMaxWorkers returns the worker cap the source IKtoFKWorkerThread
// computes: 1 when ExecSaving is set, else min(32, NumCPU()+4), further
// bounded by an explicit MaxWorkers override when positive.
func (o Options) ResolvedMaxWorkers() int {
	cap := 1
	if !o.ExecSaving {
		cap = runtime.NumCPU() + 4
		if cap > 32 {
			cap = 32
		}
	}
	if o.MaxWorkers > 0 && o.MaxWorkers < cap {
		cap = o.MaxWorkers
	}
	return cap
}

// Load reads a YAML options file into an Options value. It does no
// layering itself: the CLI (cmd/ikbake) overlays its non-zero flag values
// on the result with Merge.
func Load(path string) (Options, error) {
	var o Options
	data, err := os.ReadFile(path)
	if err != nil {
		return o, err
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return o, err
	}
	return o, nil
}

// Merge overlays non-zero fields of override onto o, returning the result.
func (o Options) Merge(override Options) Options {
	out := o
	if override.MotionPath != "" {
		out.MotionPath = override.MotionPath
	}
	if override.ModelPath != "" {
		out.ModelPath = override.ModelPath
	}
	if override.OutputPath != "" {
		out.OutputPath = override.OutputPath
	}
	if override.MaxWorkers != 0 {
		out.MaxWorkers = override.MaxWorkers
	}
	if override.ExecSaving {
		out.ExecSaving = true
	}
	if override.LoggingLevel != "" {
		out.LoggingLevel = override.LoggingLevel
	}
	if override.VersionName != "" {
		out.VersionName = override.VersionName
	}
	if override.MirrorLogFile {
		out.MirrorLogFile = true
	}
	return out
}

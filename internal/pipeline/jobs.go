package pipeline

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Job is one document to process. Jobs come from a YAML job file so that
// enabling or disabling a document is a data change, not a code edit.
type Job struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Title  string `yaml:"title,omitempty"`

	// Active defaults to true when omitted.
	Active *bool `yaml:"active,omitempty"`

	// Cleanup forces brochure cleanup regardless of the path tag.
	Cleanup bool `yaml:"cleanup,omitempty"`
}

// IsActive reports whether the job should be processed.
func (j Job) IsActive() bool {
	return j.Active == nil || *j.Active
}

// JobFile is the top-level structure of a job file.
type JobFile struct {
	// Marker overrides the configured marker token for this run.
	Marker string `yaml:"marker,omitempty"`
	Jobs   []Job  `yaml:"jobs"`
}

// LoadJobs reads and validates a YAML job file.
func LoadJobs(path string) (*JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}

	var jf JobFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("decode job file: %w", err)
	}

	if len(jf.Jobs) == 0 {
		return nil, fmt.Errorf("job file %s defines no jobs", path)
	}
	for i, j := range jf.Jobs {
		if j.Input == "" {
			return nil, fmt.Errorf("job %d: input is required", i)
		}
		if j.Output == "" {
			return nil, fmt.Errorf("job %d: output is required", i)
		}
	}

	return &jf, nil
}

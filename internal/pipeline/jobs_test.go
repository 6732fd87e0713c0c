package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeJobFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJobs(t *testing.T) {
	path := writeJobFile(t, `
marker: "[SECTION]"
jobs:
  - input: RAG/brochure.md
    output: RAG/brochure_marked.md
  - input: RAG/rulebook.md
    output: RAG/rulebook_marked.md
    title: School Rules
    active: false
  - input: RAG/extra.md
    output: RAG/extra_marked.md
    cleanup: true
`)

	jf, err := LoadJobs(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if jf.Marker != "[SECTION]" {
		t.Errorf("expected marker override, got %q", jf.Marker)
	}
	if len(jf.Jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jf.Jobs))
	}

	if !jf.Jobs[0].IsActive() {
		t.Error("job without active field defaults to active")
	}
	if jf.Jobs[1].IsActive() {
		t.Error("active: false must disable the job")
	}
	if jf.Jobs[1].Title != "School Rules" {
		t.Errorf("expected title, got %q", jf.Jobs[1].Title)
	}
	if !jf.Jobs[2].Cleanup {
		t.Error("cleanup flag not decoded")
	}
}

func TestLoadJobs_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"no jobs", "jobs: []\n", "defines no jobs"},
		{"missing input", "jobs:\n  - output: out.md\n", "input is required"},
		{"missing output", "jobs:\n  - input: in.md\n", "output is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadJobs(writeJobFile(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadJobs_MissingFile(t *testing.T) {
	_, err := LoadJobs(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing job file")
	}
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docmark/internal/marker"
	"github.com/dgallion1/docmark/internal/normalize"
	"github.com/dgallion1/docmark/internal/parser"
)

// Generator produces the marked document text for a prompt.
// *marker.GeminiClient satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
}

// Pipeline runs documents through load → normalize → mark → write.
type Pipeline struct {
	gen        Generator
	log        *slog.Logger
	marker     string
	cleanupTag string
}

func New(gen Generator, log *slog.Logger, markerToken, cleanupTag string) *Pipeline {
	return &Pipeline{
		gen:        gen,
		log:        log,
		marker:     markerToken,
		cleanupTag: cleanupTag,
	}
}

// Process handles a single document. Any stage failure aborts this document
// only; the output file is not touched unless every prior stage succeeded.
func (p *Pipeline) Process(ctx context.Context, job Job) error {
	log := p.log.With("input", job.Input)

	f, err := os.Open(job.Input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	ps, err := parser.ForFile(job.Input)
	if err != nil {
		return err
	}
	doc, err := ps.Parse(f, filepath.Base(job.Input))
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}
	if job.Title != "" {
		doc.Title = job.Title
	}
	log.Info("loaded document", "title", doc.Title, "bytes", len(doc.Text))

	text := normalize.Normalize(doc.Text)
	if job.Cleanup || normalize.NeedsCleanup(job.Input, p.cleanupTag) {
		log.Info("applying brochure cleanup")
		text = normalize.CleanupBrochure(text)
	}

	prompt := marker.BuildPrompt(p.marker, text)
	out, err := p.gen.GenerateContent(ctx, marker.SystemInstruction, prompt)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	out = marker.StripFence(out)

	if dir := filepath.Dir(job.Output); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(job.Output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	log.Info("wrote marked document",
		"output", job.Output,
		"markers", strings.Count(out, p.marker),
	)
	log.Info("check the output by hand: verify marker placement and that no original content was lost",
		"output", job.Output,
	)
	return nil
}

// Result records the outcome of one job.
type Result struct {
	Job     Job
	Skipped bool
	Err     error
}

// Run processes jobs strictly one after another. A failing job is logged and
// does not stop the run.
func (p *Pipeline) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, 0, len(jobs))
	for _, job := range jobs {
		if !job.IsActive() {
			p.log.Info("job disabled, skipping", "input", job.Input)
			results = append(results, Result{Job: job, Skipped: true})
			continue
		}
		err := p.Process(ctx, job)
		if err != nil {
			p.log.Error("processing failed", "input", job.Input, "error", err)
		}
		results = append(results, Result{Job: job, Err: err})
	}
	return results
}

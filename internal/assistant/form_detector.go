// Package assistant holds the stand-ins for the AI collaborators: a form
// detector that replays a YAML template and a templated answer generator.
// Both simulate model latency and honour context cancellation.
package assistant

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"job-copilot-backend/internal/domain"
	"job-copilot-backend/pkg/validation"
)

//go:embed templates/application_form.yaml
var defaultFormTemplate []byte

// TemplateFormDetector returns the same detected form for every page
type TemplateFormDetector struct {
	form    domain.DetectedForm
	latency time.Duration
}

// NewTemplateFormDetector parses the template at path, or the embedded
// application form when path is empty.
func NewTemplateFormDetector(path string, latency time.Duration) (*TemplateFormDetector, error) {
	raw := defaultFormTemplate
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read form template: %w", err)
		}
		raw = b
	}

	form, err := ParseFormTemplate(raw, validation.New())
	if err != nil {
		return nil, err
	}
	return &TemplateFormDetector{form: *form, latency: latency}, nil
}

// ParseFormTemplate decodes and validates a YAML form template
func ParseFormTemplate(raw []byte, v *validator.Validate) (*domain.DetectedForm, error) {
	var form domain.DetectedForm
	if err := yaml.Unmarshal(raw, &form); err != nil {
		return nil, fmt.Errorf("parse form template: %w", err)
	}
	if len(form.Fields) == 0 {
		return nil, fmt.Errorf("form template %q declares no fields", form.PageTitle)
	}
	seen := make(map[string]bool, len(form.Fields))
	for i, f := range form.Fields {
		if err := v.Struct(f); err != nil {
			return nil, fmt.Errorf("form template field %d: %w", i, err)
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("form template field %q declared twice", f.ID)
		}
		seen[f.ID] = true
	}
	return &form, nil
}

// Detect ignores pageURL; a real detector would inspect the page
func (d *TemplateFormDetector) Detect(ctx context.Context, pageURL string) (*domain.DetectedForm, error) {
	if err := wait(ctx, d.latency); err != nil {
		return nil, err
	}
	out := d.form
	out.Fields = make([]domain.FieldDescriptor, len(d.form.Fields))
	for i, f := range d.form.Fields {
		f.Options = append([]string(nil), f.Options...)
		out.Fields[i] = f
	}
	return &out, nil
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

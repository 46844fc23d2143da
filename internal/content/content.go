// Package content holds the study guide shipped with the program and the
// checks it has to pass before it can be shown.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"studyguide/internal/model"
)

//go:embed guide.yaml
var guideYAML []byte

// Load decodes and validates the embedded guide.
func Load() (*model.Guide, error) {
	return Parse(guideYAML)
}

// Parse decodes a guide document and validates it: every struct constraint,
// exactly one kind per block, and section and term ids unique across the guide.
func Parse(data []byte) (*model.Guide, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var g model.Guide
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("failed to decode guide: %w", err)
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&g); err != nil {
		return nil, fmt.Errorf("invalid guide: %w", err)
	}
	if err := checkStructure(&g); err != nil {
		return nil, fmt.Errorf("invalid guide: %w", err)
	}
	return &g, nil
}

func checkStructure(g *model.Guide) error {
	var errs []error

	sections := make(map[string]bool, len(g.Sections))
	terms := make(map[string]string)
	for _, s := range g.Sections {
		if sections[s.ID] {
			errs = append(errs, fmt.Errorf("duplicate section id %q", s.ID))
		}
		sections[s.ID] = true

		for i, b := range s.Blocks {
			if kinds := b.Kinds(); len(kinds) != 1 {
				errs = append(errs, fmt.Errorf("section %q block %d: want exactly one kind, got %v", s.ID, i, kinds))
				continue
			}
			if b.Term == nil {
				continue
			}
			if owner, ok := terms[b.Term.ID]; ok {
				errs = append(errs, fmt.Errorf("term id %q in section %q already used in section %q", b.Term.ID, s.ID, owner))
				continue
			}
			terms[b.Term.ID] = s.ID
		}
	}
	return errors.Join(errs...)
}

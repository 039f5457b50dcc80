// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// exportLimit caps how many runs an export includes.
const exportLimit = 100000

// ExportYAML writes the recorded runs, including per-file outcomes, to w
// as YAML, newest run first.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	runs, err := s.exportRuns(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(runs)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes the recorded runs, including per-file outcomes, to w
// as indented JSON, newest run first.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	runs, err := s.exportRuns(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func (s *Store) exportRuns(ctx context.Context) ([]Run, error) {
	runs, err := s.ListRuns(ctx, exportLimit)
	if err != nil {
		return nil, err
	}
	for i := range runs {
		outcomes, err := s.RunOutcomes(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Outcomes = outcomes
	}
	return runs, nil
}

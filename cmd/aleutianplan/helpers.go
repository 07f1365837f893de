// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AleutianAI/AleutianPlan/services/planning"
	"github.com/AleutianAI/AleutianPlan/services/planning/ai"
	"github.com/AleutianAI/AleutianPlan/services/planning/estimation"
)

// =============================================================================
// SERVICE CONSTRUCTION
// =============================================================================

// session bundles the service with its optional persistence hand-off.
type session struct {
	svc   *planning.Service
	store *estimation.Store
}

// newSession builds the planning service from the global flags. With
// --data-dir, calibration history is loaded from the badger store and
// Close persists it back. With --ai, the OpenAI assessor is wired in.
func newSession(ctx context.Context) (*session, error) {
	opts := []planning.Option{planning.WithLogger(logger)}

	if flagAI {
		assessor, err := ai.NewOpenAIAssessor()
		if err != nil {
			return nil, fmt.Errorf("enabling AI signal: %w", err)
		}
		opts = append(opts, planning.WithAssessor(assessor))
	}

	s := &session{}
	if flagDataDir != "" {
		store, err := estimation.OpenStore(estimation.StoreConfig{
			Path: filepath.Join(flagDataDir, "estimation"),
		})
		if err != nil {
			return nil, err
		}

		records, err := store.Load(ctx)
		if err != nil {
			store.Close()
			return nil, err
		}
		calibrator := estimation.NewCalibrator()
		calibrator.Import(records)

		s.store = store
		opts = append(opts, planning.WithCalibrator(calibrator))
	}

	s.svc = planning.NewService(opts...)
	return s, nil
}

// Close persists calibration history and releases the store.
func (s *session) Close(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	saveErr := s.store.Save(ctx, s.svc.Calibrator().Export())
	closeErr := s.store.Close()
	if saveErr != nil {
		return saveErr
	}
	return closeErr
}

// =============================================================================
// OUTPUT
// =============================================================================

// emit writes the result: JSON to stdout with --json, otherwise the
// rendered report.
func emit(v any, report string) error {
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	fmt.Println(report)
	return nil
}

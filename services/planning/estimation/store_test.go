// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package estimation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(StoreConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	actual := 8
	records := []Record{
		{RecordID: "b", TaskID: "t2", EstimatedPoints: 5, ComplexityBand: BandMedium, EstimatedAt: base.Add(time.Hour)},
		{RecordID: "a", TaskID: "t1", EstimatedPoints: 3, ActualPoints: &actual, ComplexityBand: BandLow, EstimatedAt: base},
	}
	require.NoError(t, store.Save(ctx, records))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// Chronological order restored regardless of key order.
	assert.Equal(t, "a", loaded[0].RecordID)
	assert.Equal(t, "b", loaded[1].RecordID)
	require.NotNil(t, loaded[0].ActualPoints)
	assert.Equal(t, 8, *loaded[0].ActualPoints)
	assert.Nil(t, loaded[1].ActualPoints)
}

func TestStore_SaveReplacesHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []Record{
		{RecordID: "old-1", TaskID: "x"},
		{RecordID: "old-2", TaskID: "y"},
	}))
	require.NoError(t, store.Save(ctx, []Record{
		{RecordID: "new-1", TaskID: "z"},
	}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "new-1", loaded[0].RecordID)
}

func TestStore_LoadEmpty(t *testing.T) {
	store := openTestStore(t)
	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_NilContext(t *testing.T) {
	store := openTestStore(t)
	assert.ErrorIs(t, store.Save(nil, nil), ErrNilContext) //nolint:staticcheck // nil context is the case under test
	_, err := store.Load(nil)                              //nolint:staticcheck
	assert.ErrorIs(t, err, ErrNilContext)
}

func TestStore_CalibratorBridge(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	src := NewCalibrator()
	for _, id := range []string{"a", "b", "c"} {
		src.RecordEstimate(EstimateParams{TaskID: id, EstimatedPoints: 5, Complexity: 5})
		require.True(t, src.RecordActual(id, 10))
	}
	require.NoError(t, store.Save(ctx, src.Export()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	dst := NewCalibrator()
	dst.Import(loaded)
	factor := dst.CalibrationFactor(BandMedium)
	require.NotNil(t, factor)
	assert.InDelta(t, 2.0, *factor, 1e-9)
}

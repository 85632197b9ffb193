package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalcFSM_HappyPath(t *testing.T) {
	ctx := context.Background()
	m := NewRecalcFSM(1)
	assert.Equal(t, RecalcStateClean, m.Current())

	require.NoError(t, m.Start(ctx))
	assert.Equal(t, RecalcStateRecomputing, m.Current())

	require.NoError(t, m.Finish(ctx))
	assert.Equal(t, RecalcStateClean, m.Current())
}

func TestRecalcFSM_OverlappingStartRejected(t *testing.T) {
	ctx := context.Background()
	m := NewRecalcFSM(1)

	require.NoError(t, m.Start(ctx))
	assert.Error(t, m.Start(ctx))
	assert.Equal(t, RecalcStateRecomputing, m.Current())
}

func TestRecalcFSM_FailureAllowsRetry(t *testing.T) {
	ctx := context.Background()
	m := NewRecalcFSM(1)

	require.NoError(t, m.Start(ctx))
	require.NoError(t, m.Fail(ctx))
	assert.Equal(t, RecalcStateFailed, m.Current())

	require.NoError(t, m.Start(ctx))
	require.NoError(t, m.Finish(ctx))
	assert.Equal(t, RecalcStateClean, m.Current())
}

func TestRecalcFSM_FinishRequiresRecomputing(t *testing.T) {
	m := NewRecalcFSM(1)
	assert.Error(t, m.Finish(context.Background()))
}

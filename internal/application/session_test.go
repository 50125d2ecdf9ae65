package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"agriassure/internal/domain/entity"
	"agriassure/internal/infrastructure/storage"
)

func TestSessionService_BeginCheckAndCancel(t *testing.T) {
	svc := NewSessionService(storage.NewMemorySessionRepository(), nil)
	ctx := context.Background()

	s, err := svc.BeginCheck(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, s.State)

	s, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateIdle, s.State)
}

func TestSessionService_Diagnose(t *testing.T) {
	repo := storage.NewMemorySessionRepository()
	cascade := NewPlantTriage(stubDecoder{}, returning("PLANT"), returning("HEALTHY"), failing(errMustNotRun))
	svc := NewSessionService(repo, cascade)
	ctx := context.Background()

	_, err := svc.BeginCheck(ctx, 1, 10)
	require.NoError(t, err)

	result, err := svc.Diagnose(ctx, 1, 10, []byte("img"))
	require.NoError(t, err)
	require.Equal(t, entity.ResultHealthy, result.Kind)

	s, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateIdle, s.State)
	require.Equal(t, 1, s.Diagnoses)
}

func TestSessionService_DiagnoseDecodeFailureReturnsToIdle(t *testing.T) {
	repo := storage.NewMemorySessionRepository()
	cascade := NewPlantTriage(stubDecoder{}, failing(errMustNotRun), failing(errMustNotRun), failing(errMustNotRun))
	svc := NewSessionService(repo, cascade)
	ctx := context.Background()

	result, err := svc.Diagnose(ctx, 2, 20, []byte("not an image"))
	require.ErrorIs(t, err, entity.ErrDecode)
	require.Equal(t, entity.ResultError, result.Kind)

	s, err := repo.Get(ctx, 2, 20)
	require.NoError(t, err)
	require.Equal(t, entity.StateIdle, s.State)
}

func TestSessionService_DiagnoseWithoutCascade(t *testing.T) {
	svc := NewSessionService(storage.NewMemorySessionRepository(), nil)

	_, err := svc.Diagnose(context.Background(), 1, 10, []byte("img"))
	require.Error(t, err)
}

package register_client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	"github.com/m04kA/SMC-PostBookingService/internal/testutils/memstore"
	"github.com/m04kA/SMC-PostBookingService/pkg/auth"
	"github.com/m04kA/SMC-PostBookingService/pkg/logger"
)

func newUseCase(t *testing.T, store *memstore.Store) (*UseCase, *auth.TokenManager) {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return NewUseCase(store.Clients(), tokens, logger.Nop()), tokens
}

func TestExecute_RegisterOrFetch(t *testing.T) {
	store := memstore.New()
	uc, tokens := newUseCase(t, store)
	ctx := context.Background()

	first, err := uc.Execute(ctx, &Request{DeviceID: " ios-42 "})
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := uc.Execute(ctx, &Request{DeviceID: "ios-42"})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.ClientID, second.ClientID)

	clientID, err := tokens.Parse(second.Token)
	require.NoError(t, err)
	assert.Equal(t, first.ClientID, clientID)

	assert.Len(t, store.AllClients(), 1)
	assert.Equal(t, "ios-42", store.AllClients()[0].DeviceID)
}

func TestExecute_InvalidDeviceID(t *testing.T) {
	uc, _ := newUseCase(t, memstore.New())

	_, err := uc.Execute(context.Background(), &Request{DeviceID: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	store := memstore.New()
	store.FailOn("client.CreateOrGet", errors.New("connection refused"))
	uc, _ := newUseCase(t, store)

	_, err := uc.Execute(context.Background(), &Request{DeviceID: "ios-42"})
	assert.ErrorIs(t, err, ErrInternal)
}

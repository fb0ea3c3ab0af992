package api_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness probe answers on a fresh stack.
func TestLivezEndpoint(t *testing.T) {
	client, _ := setupServer(t)

	health, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "e2e", health.Version)
}

// TestReadyzEndpoint verifies the readiness probe sees the database.
func TestReadyzEndpoint(t *testing.T) {
	client, _ := setupServer(t)

	health, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
}

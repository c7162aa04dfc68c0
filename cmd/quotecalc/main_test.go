package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-quotes/internal/app"
)

func TestAppCommands(t *testing.T) {
	a := newApp()
	for _, name := range []string{"serve", "compute", "aggregate"} {
		assert.NotNil(t, a.Command(name), name)
	}
}

func TestServeInTestModeReturns(t *testing.T) {
	t.Setenv("APP_TEST_MODE", "true")

	require.NoError(t, newApp().RunContext(context.Background(), []string{"quotecalc", "serve", "--env-file", "does-not-exist.env"}))
}

func TestServeRejectsBadConfig(t *testing.T) {
	t.Setenv("DEFAULT_VAT_PERCENTAGE", "-1")

	err := serve(context.Background(), nil)
	assert.ErrorIs(t, err, app.ErrInvalidConfig)
}

func TestExitCode(t *testing.T) {
	assert.NoError(t, exitCode(0))
	assert.Error(t, exitCode(10))
}

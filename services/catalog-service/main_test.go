package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsConfigErrors(t *testing.T) {
	t.Setenv("CATALOG_CORS_ORIGINS", " , ")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRunReturnsDatabaseErrors(t *testing.T) {
	t.Setenv("DATABASE_URL", "mysql://localhost/catalog")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open database")
}

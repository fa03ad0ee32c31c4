package main

import (
	"context"
	"testing"

	"pluain/backend/config"
	"pluain/backend/storage"
	"pluain/backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestRun_ReturnsStorageErrors(t *testing.T) {
	err := run(context.Background(), &config.Config{StorageDriver: "floppy"}, utils.NewNopLogger())
	assert.ErrorIs(t, err, storage.ErrUnknownDriver)
}

func TestStart_ReportsFailureAsExitCode(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "floppy")
	t.Setenv("LOG_MODE", "production")

	assert.Equal(t, 1, start())
}

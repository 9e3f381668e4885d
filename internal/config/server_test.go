package config

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerRequiresFiberAndLogger(t *testing.T) {
	_, err := NewServer()
	assert.Error(t, err)

	logger := logrus.New()
	_, err = NewServer(WithLogger(logger))
	assert.Error(t, err)
}

func TestServerRegistersHealthCheck(t *testing.T) {
	clearAlertnessEnv(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	server, err := NewServer(
		WithFiber(NewFiber(logger)),
		WithLogger(logger),
		WithValidator(NewValidator()),
		WithMiddleware(),
		WithMonitorSettings(),
		WithS3Client(),
		WithUtils(),
	)
	require.NoError(t, err)
	require.NoError(t, server.RegisterHandler())
	defer server.monitor.Close(context.Background())

	assert.Nil(t, server.s3Client)

	resp, err := server.engine.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

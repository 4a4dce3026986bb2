package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--endpoint", "http://example.test/api/chat",
		"--single-flight",
		"--timeout", "3s",
	}))

	endpoint, err := cmd.Flags().GetString("endpoint")
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/api/chat", endpoint)

	single, err := cmd.Flags().GetBool("single-flight")
	require.NoError(t, err)
	assert.True(t, single)

	timeout, err := cmd.Flags().GetDuration("timeout")
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, timeout)
}

func TestRootCmdDefaults(t *testing.T) {
	cmd := newRootCmd()

	logFile, err := cmd.Flags().GetString("log-file")
	require.NoError(t, err)
	assert.Contains(t, logFile, "softchat")

	single, err := cmd.Flags().GetBool("single-flight")
	require.NoError(t, err)
	assert.False(t, single)
}

package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestAppFlags(t *testing.T) {
	app := newApp()
	// Swap the action out so flag behavior can be exercised without a
	// cluster.
	var captured *cli.Context
	app.Action = func(c *cli.Context) error {
		captured = c
		return nil
	}

	t.Run("input is required", func(t *testing.T) {
		err := app.Run([]string{"commitload"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input")
	})

	t.Run("defaults", func(t *testing.T) {
		err := app.Run([]string{"commitload", "--input", "*.json"})
		require.NoError(t, err)
		require.NotNil(t, captured)

		assert.Equal(t, "*.json", captured.String("input"))
		assert.Equal(t, 75, captured.Int("max_workers"))
		assert.Equal(t, "127.0.0.1", captured.String("cluster"))
		assert.Equal(t, 9002, captured.Int("port"))
		assert.False(t, captured.Bool("sniff"))
		assert.False(t, captured.Bool("cleanup"))
	})

	t.Run("credentials from environment", func(t *testing.T) {
		t.Setenv("ES_USERNAME", "metrics")
		t.Setenv("ES_PASSWORD", "hunter2")

		err := app.Run([]string{"commitload", "--input", "*.json"})
		require.NoError(t, err)

		assert.Equal(t, "metrics", captured.String("username"))
		assert.Equal(t, "hunter2", captured.String("password"))
	})

	t.Run("overrides", func(t *testing.T) {
		err := app.Run([]string{
			"commitload",
			"--input", "dump/*.json",
			"--max_workers", "8",
			"--cluster", "es.internal",
			"--port", "9200",
			"--sniff",
			"--cleanup",
		})
		require.NoError(t, err)

		assert.Equal(t, 8, captured.Int("max_workers"))
		assert.Equal(t, "es.internal", captured.String("cluster"))
		assert.Equal(t, 9200, captured.Int("port"))
		assert.True(t, captured.Bool("sniff"))
		assert.True(t, captured.Bool("cleanup"))
	})
}

func TestSetupLogLevel(t *testing.T) {
	t.Run("rejects unknown level", func(t *testing.T) {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", "verbose", "")
		c := cli.NewContext(newApp(), set, nil)

		err := setup(c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("accepts known levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
			set := flag.NewFlagSet("test", flag.ContinueOnError)
			set.String("log-level", level, "")
			c := cli.NewContext(newApp(), set, nil)

			assert.NoError(t, setup(c), "level %s", level)
		}
	})
}

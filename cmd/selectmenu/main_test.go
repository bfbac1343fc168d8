package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selectmenu/internal/config"
	"selectmenu/internal/domain"
	"selectmenu/internal/eventbus"
)

func TestParseItems(t *testing.T) {
	input := "alpha\n\nbeta\tBeta\r\ngamma\tGamma\tline one\\nline\ttwo\n"

	items, err := parseItems(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []domain.Item{
		{Key: "alpha"},
		{Key: "beta", Title: "Beta"},
		{Key: "gamma", Title: "Gamma", Detail: "line one\nline\ttwo"},
	}, items)
}

func TestParseItemsEmpty(t *testing.T) {
	items, err := parseItems(strings.NewReader("\n  \n"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReadItems(t *testing.T) {
	t.Run("args win over stdin", func(t *testing.T) {
		items, err := readItems([]string{"a", "b"}, strings.NewReader("c\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, domain.Keys(items))
	})

	t.Run("stdin", func(t *testing.T) {
		items, err := readItems(nil, strings.NewReader("c\nd\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "d"}, domain.Keys(items))
	})

	t.Run("duplicate keys", func(t *testing.T) {
		_, err := readItems([]string{"a", "b", "a"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"a"`)
	})
}

func TestWriteKeys(t *testing.T) {
	var out bytes.Buffer
	err := writeKeys(&out, []domain.Item{{Key: "x", Title: "X"}, {Key: "y"}})
	require.NoError(t, err)
	assert.Equal(t, "x\ny\n", out.String())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
title = "From file"
policy = "multi"
dismiss_on_select = false
preselected = ["a"]
`)

	t.Run("file values without flags", func(t *testing.T) {
		opts := &options{}
		cmd := newCommand(opts, nil, nil)
		require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

		cfg, err := loadConfig(cmd, opts, eventbus.Nop())
		require.NoError(t, err)
		assert.Equal(t, "From file", cfg.Title)
		assert.Equal(t, "multi", cfg.Policy)
		assert.False(t, cfg.DismissOnSelect)
		assert.Equal(t, []string{"a"}, cfg.Preselected)
	})

	t.Run("flags override", func(t *testing.T) {
		opts := &options{}
		cmd := newCommand(opts, nil, nil)
		require.NoError(t, cmd.ParseFlags([]string{
			"-c", path, "--single", "--dismiss", "-t", "Flags", "-p", "b", "-p", "c",
		}))

		cfg, err := loadConfig(cmd, opts, eventbus.Nop())
		require.NoError(t, err)
		assert.Equal(t, "Flags", cfg.Title)
		assert.Equal(t, "single", cfg.Policy)
		assert.True(t, cfg.DismissOnSelect)
		assert.Equal(t, []string{"b", "c"}, cfg.Preselected)
	})
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	opts := &options{}
	cmd := newCommand(opts, nil, nil)
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", filepath.Join(t.TempDir(), "none.toml"), "-m",
	}))

	cfg, err := loadConfig(cmd, opts, eventbus.Nop())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Title, cfg.Title)
	assert.Equal(t, "multi", cfg.Policy)
}

func TestLoadConfigRejectsBadPolicy(t *testing.T) {
	path := writeConfig(t, `policy = "several"`)
	opts := &options{}
	cmd := newCommand(opts, nil, nil)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

	_, err := loadConfig(cmd, opts, eventbus.Nop())
	assert.True(t, errors.Is(err, config.ErrInvalidPolicy))
}

func TestMultiAndSingleAreExclusive(t *testing.T) {
	cmd := newRootCmd(strings.NewReader(""), &bytes.Buffer{})
	cmd.SetArgs([]string{"--log", filepath.Join(t.TempDir(), "log"), "-m", "-s", "a"})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multi")
}

func TestNoItemsIsAnError(t *testing.T) {
	dir := t.TempDir()
	cmd := newRootCmd(strings.NewReader("\n"), &bytes.Buffer{})
	cmd.SetArgs([]string{"--log", filepath.Join(dir, "log"), "--config", filepath.Join(dir, "c.toml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no items")
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	var out bytes.Buffer
	cmd := newRootCmd(nil, nil)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init-config", "--config", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), path)

	cfg, err := config.NewConfigServiceAt(path).Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	cmd = newRootCmd(nil, nil)
	cmd.SetArgs([]string{"init-config", "--config", path})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	cmd = newRootCmd(nil, nil)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"init-config", "--config", path, "--force"})
	assert.NoError(t, cmd.Execute())
}

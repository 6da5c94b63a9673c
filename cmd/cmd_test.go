package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristendillon/promify/core/config"
	"github.com/tristendillon/promify/core/version"
)

const tokenSource = `pragma solidity ^0.8.20;

contract Token {
    function transfer(address to, uint256 amount) external async returns (bool) {}
}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	logfile, verbose, configPath, file, force = "", false, "", "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testChdir(t, dir)
	require.NoError(t, os.MkdirAll("src", 0755))
	require.NoError(t, os.WriteFile(filepath.Join("src", "Token.sol"), []byte(tokenSource), 0644))
	return dir
}

func TestRootGeneratesEverything(t *testing.T) {
	project(t)

	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Scanned 1 file(s): 1 generated, 0 skipped, 1 patched")
	assert.Contains(t, out, "Writing generated interfaces to: "+filepath.Join("src", "interface", "async", "RemoteToken.sol"))

	data, err := os.ReadFile(filepath.Join("src", "Token.sol"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `import {RemoteToken, transferPromise} from "./interface/async/RemoteToken.sol";`)
}

func TestRootFileFlag(t *testing.T) {
	project(t)
	require.NoError(t, os.WriteFile(filepath.Join("src", "Other.sol"), []byte(tokenSource), 0644))

	_, err := run(t, "--file", "Token")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("src", "interface", "async", "RemoteToken.sol"))
	assert.NoFileExists(t, filepath.Join("src", "interface", "async", "RemoteOther.sol"))
}

func TestGenerateMissingFileIsLoggedNotFatal(t *testing.T) {
	project(t)

	out, err := run(t, "generate", "--file", "Missing")
	require.NoError(t, err)
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, filepath.Join("src", "Missing.sol"))
	assert.NoDirExists(t, filepath.Join("src", "interface"))
}

func TestVerboseShowsDebug(t *testing.T) {
	project(t)

	out, err := run(t, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "Found contracts: [Token]")

	out, err = run(t)
	require.NoError(t, err)
	assert.NotContains(t, out, "DEBUG")
}

func TestConfigFileIsHonoured(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	require.NoError(t, os.MkdirAll("contracts", 0755))
	require.NoError(t, os.WriteFile(filepath.Join("contracts", "Token.sol"), []byte(tokenSource), 0644))
	require.NoError(t, os.WriteFile(config.FileName, []byte("source_root: contracts\noutput_root: generated\n"), 0644))

	_, err := run(t)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("generated", "RemoteToken.sol"))

	data, err := os.ReadFile(filepath.Join("contracts", "Token.sol"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `from "../generated/RemoteToken.sol";`)
}

func TestExplicitConfigFlag(t *testing.T) {
	project(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extension: sol\n"), 0644))

	_, err := run(t, "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestLogfileFlag(t *testing.T) {
	project(t)

	_, err := run(t, "--logfile", "promify.log")
	require.NoError(t, err)

	data, err := os.ReadFile("promify.log")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Reading source file")
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)

	out, err := run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+config.FileName)

	cfg, err := config.LoadFile(config.FileName)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = run(t, "init")
	require.Error(t, err)

	_, err = run(t, "init", "--force")
	require.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "Promify "+version.Version, strings.TrimSpace(out))
}

// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// chdir moves the process into dir for the duration of the test so
// initConfig's search path finds its files.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	cfgFile = ""
}

func TestInitConfigMissingFileIsFine(t *testing.T) {
	resetConfig(t)
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	chdir(t, tmp)

	if err := initConfig(); err != nil {
		t.Errorf("initConfig with no config file: %v", err)
	}
}

func TestInitConfigRejectsMalformedSearchedFile(t *testing.T) {
	resetConfig(t)
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	chdir(t, tmp)

	// The file is found by search, not --config; a parse error must
	// still surface.
	path := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(path, []byte("device: [oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := initConfig(); err == nil {
		t.Error("initConfig swallowed a parse error in a searched config file")
	}
}

func TestInitConfigRejectsMalformedExplicitFile(t *testing.T) {
	resetConfig(t)
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	chdir(t, tmp)

	cfgFile = filepath.Join(tmp, "custom.yaml")
	if err := os.WriteFile(cfgFile, []byte("{{not yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := initConfig(); err == nil {
		t.Error("initConfig swallowed a parse error in an explicit config file")
	}
}

func TestInitConfigReadsValues(t *testing.T) {
	resetConfig(t)
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	chdir(t, tmp)

	path := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(path, []byte("device: /dev/sunpci9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := initConfig(); err != nil {
		t.Fatal(err)
	}
	if got := viper.GetString("device"); got != "/dev/sunpci9" {
		t.Errorf("device = %q, want /dev/sunpci9", got)
	}
}

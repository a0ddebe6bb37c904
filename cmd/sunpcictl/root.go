// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sunpci/go-sunpci"
	"github.com/sunpci/go-sunpci/internal/logging"
)

// envPrefix makes every setting overridable as SUNPCI_<NAME>.
const envPrefix = "SUNPCI"

var (
	cfgFile string
	log     *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "sunpcictl",
	Short: "Control a sunpci co-processor card",
	Long: `sunpcictl manages the guest session on a sunpci co-processor card:
starting and stopping the guest, mounting virtual storage media
(disk images, ISOs, floppy images), redirecting host directories to
guest drive letters, and creating new virtual disk images.

Most commands need the sunpci driver loaded and access to its device
node (conventionally ` + sunpci.DefaultDevicePath + `).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		var err error
		log, err = logging.New(logging.Config{
			Debug:  viper.GetBool("debug"),
			Format: viper.GetString("log_format"),
			File:   viper.GetString("log_file"),
		})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.sunpci/config.yaml)")
	pf.String("device", sunpci.DefaultDevicePath, "driver device node")
	pf.Bool("debug", false, "enable debug logging")
	pf.String("log-format", "human", "log format: json or human")

	viper.BindPFlag("device", pf.Lookup("device"))
	viper.BindPFlag("debug", pf.Lookup("debug"))
	viper.BindPFlag("log_format", pf.Lookup("log-format"))
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".sunpci"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; a malformed one is not,
		// wherever it was found.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", viper.ConfigFileUsed(), err)
	}
	return nil
}

// openClient connects to the driver, translating the two open-time
// failures into actionable guidance.
func openClient() (*sunpci.Client, error) {
	c, err := sunpci.OpenPath(viper.GetString("device"))
	switch {
	case sunpci.IsDeviceUnavailableErr(err):
		return nil, fmt.Errorf("driver not loaded: device node %s does not exist", viper.GetString("device"))
	case sunpci.IsPermissionDeniedErr(err):
		return nil, fmt.Errorf("permission denied opening %s: check device group membership", viper.GetString("device"))
	case err != nil:
		return nil, err
	}
	return c, nil
}

func runWithClient(fn func(*sunpci.Client) error) error {
	c, err := openClient()
	if err != nil {
		log.Error(err)
		return err
	}
	defer c.Close()
	if err := fn(c); err != nil {
		log.Error(err)
		return err
	}
	return nil
}

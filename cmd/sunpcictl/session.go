// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sunpci/go-sunpci"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the loaded driver's version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithClient(func(c *sunpci.Client) error {
			v, err := c.GetVersion()
			if err != nil {
				return err
			}
			fmt.Printf("sunpci driver %d.%d.%d\n", v.Major, v.Minor, v.Patch)
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithClient(func(c *sunpci.Client) error {
			st, err := c.GetStatus()
			if err != nil {
				return err
			}
			fmt.Printf("state:         %s\n", st.State)
			fmt.Printf("cpu:           %.2f%%\n", st.CPUUsage)
			fmt.Printf("memory used:   %d MB\n", st.MemoryUsed/(1024*1024))
			fmt.Printf("uptime:        %s\n", st.Uptime)
			fmt.Printf("disk activity: %#x\n", st.DiskActivity)
			fmt.Printf("packets:       rx %d / tx %d\n", st.RxPackets, st.TxPackets)
			return nil
		})
	},
}

var (
	startMemoryMB      uint32
	startPrimaryDisk   string
	startSecondaryDisk string
	startBIOSPath      string
	startNetwork       bool
	startClipboard     bool
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Boot the guest session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithClient(func(c *sunpci.Client) error {
			var flags sunpci.SessionFlags
			if startNetwork {
				flags |= sunpci.SessionFlagNetworkEnabled
			}
			if startClipboard {
				flags |= sunpci.SessionFlagClipboardEnabled |
					sunpci.SessionFlagClipboardToHost |
					sunpci.SessionFlagClipboardToGuest
			}
			cfg := sunpci.SessionConfig{
				MemoryMB:      startMemoryMB,
				Flags:         flags,
				PrimaryDisk:   startPrimaryDisk,
				SecondaryDisk: startSecondaryDisk,
				BIOSPath:      startBIOSPath,
			}
			log.Infow("starting session",
				"memory_mb", cfg.MemoryMB,
				"primary_disk", cfg.PrimaryDisk,
			)
			if err := c.StartSession(cfg); err != nil {
				if sunpci.IsSessionConflictErr(err) {
					return fmt.Errorf("a session is already running; stop it first")
				}
				return err
			}
			fmt.Println("session started")
			return nil
		})
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Shut the guest session down",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithClient(func(c *sunpci.Client) error {
			if err := c.StopSession(); err != nil {
				if sunpci.IsSessionConflictErr(err) {
					return fmt.Errorf("no session is running")
				}
				return err
			}
			fmt.Println("session stopped")
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Warm-reboot the guest session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithClient(func(c *sunpci.Client) error {
			if err := c.ResetSession(); err != nil {
				if sunpci.IsSessionConflictErr(err) {
					return fmt.Errorf("no session is running")
				}
				return err
			}
			fmt.Println("session reset")
			return nil
		})
	},
}

func init() {
	startCmd.Flags().Uint32Var(&startMemoryMB, "memory", 64, "guest memory in MB (1-256)")
	startCmd.Flags().StringVar(&startPrimaryDisk, "primary-disk", "", "primary disk image (C:)")
	startCmd.Flags().StringVar(&startSecondaryDisk, "secondary-disk", "", "secondary disk image (D:)")
	startCmd.Flags().StringVar(&startBIOSPath, "bios", "", "BIOS image path")
	startCmd.Flags().BoolVar(&startNetwork, "network", false, "enable guest networking")
	startCmd.Flags().BoolVar(&startClipboard, "clipboard", false, "enable bidirectional clipboard")

	rootCmd.AddCommand(versionCmd, statusCmd, startCmd, stopCmd, resetCmd)
}

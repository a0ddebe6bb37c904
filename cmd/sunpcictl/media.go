// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sunpci/go-sunpci"
)

var mountCmd = &cobra.Command{
	Use:   "mount",
	Short: "Attach virtual media to the guest",
}

var mountReadonly bool

var mountDiskCmd = &cobra.Command{
	Use:   "disk <slot> <path>",
	Short: "Mount a disk image to slot 0 (C:) or 1 (D:)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := parseSlot(args[0], 1)
		if err != nil {
			return err
		}
		path := expandPath(args[1])
		return runWithClient(func(c *sunpci.Client) error {
			log.Infow("mounting disk", "slot", slot, "path", path)
			if err := c.MountDisk(slot, path, mountReadonly); err != nil {
				return err
			}
			fmt.Printf("mounted %s to slot %d\n", path, slot)
			return nil
		})
	},
}

var mountCDROMCmd = &cobra.Command{
	Use:   "cdrom <iso>",
	Short: "Mount an ISO image as the CD-ROM",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := expandPath(args[0])
		return runWithClient(func(c *sunpci.Client) error {
			log.Infow("mounting iso", "path", path)
			if err := c.MountCDROM(path); err != nil {
				if sunpci.IsInvalidConfigErr(err) {
					return fmt.Errorf("cannot mount %s: %w", path, err)
				}
				return err
			}
			fmt.Printf("mounted %s\n", path)
			return nil
		})
	},
}

var mountFloppyCmd = &cobra.Command{
	Use:   "floppy <drive> <path>",
	Short: "Mount a floppy image to drive 0 (A:) or 1 (B:)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		drive, err := parseSlot(args[0], 1)
		if err != nil {
			return err
		}
		path := expandPath(args[1])
		return runWithClient(func(c *sunpci.Client) error {
			log.Infow("mounting floppy", "drive", drive, "path", path)
			if err := c.MountFloppy(drive, path); err != nil {
				return err
			}
			fmt.Printf("mounted %s to drive %d\n", path, drive)
			return nil
		})
	},
}

var ejectCmd = &cobra.Command{
	Use:   "eject",
	Short: "Detach virtual media from the guest",
}

var ejectDiskCmd = &cobra.Command{
	Use:   "disk <slot>",
	Short: "Unmount the disk image in a slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := parseSlot(args[0], 1)
		if err != nil {
			return err
		}
		return runWithClient(func(c *sunpci.Client) error {
			return c.UnmountDisk(slot)
		})
	},
}

var ejectCDROMCmd = &cobra.Command{
	Use:   "cdrom",
	Short: "Eject the mounted ISO",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithClient(func(c *sunpci.Client) error {
			return c.EjectCDROM()
		})
	},
}

var ejectFloppyCmd = &cobra.Command{
	Use:   "floppy <drive>",
	Short: "Eject the floppy image in a drive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		drive, err := parseSlot(args[0], 1)
		if err != nil {
			return err
		}
		return runWithClient(func(c *sunpci.Client) error {
			return c.EjectFloppy(drive)
		})
	},
}

var mapReadonly bool

var mapCmd = &cobra.Command{
	Use:   "map <letter> <directory>",
	Short: "Redirect a guest drive letter (E-Z) to a host directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		letter, err := parseLetter(args[0])
		if err != nil {
			return err
		}
		path := expandPath(args[1])
		return runWithClient(func(c *sunpci.Client) error {
			if err := c.AddDriveMapping(letter, path, mapReadonly); err != nil {
				return err
			}
			fmt.Printf("mapped %c: to %s\n", letter, path)
			return nil
		})
	},
}

var unmapCmd = &cobra.Command{
	Use:   "unmap <letter>",
	Short: "Remove a guest drive letter redirection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		letter, err := parseLetter(args[0])
		if err != nil {
			return err
		}
		return runWithClient(func(c *sunpci.Client) error {
			return c.RemoveDriveMapping(letter)
		})
	},
}

func parseSlot(s string, max uint64) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n > max {
		return 0, fmt.Errorf("slot must be 0-%d, got %q", max, s)
	}
	return uint32(n), nil
}

func parseLetter(s string) (byte, error) {
	if len(s) != 1 && !(len(s) == 2 && s[1] == ':') {
		return 0, fmt.Errorf("drive letter must be a single letter, got %q", s)
	}
	letter := s[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	return letter, nil
}

// expandPath resolves a leading ~/ against the home directory so the
// driver always receives absolute paths.
func expandPath(path string) string {
	if len(path) >= 2 && path[0] == '~' && path[1] == '/' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func init() {
	mountDiskCmd.Flags().BoolVar(&mountReadonly, "readonly", false, "mount read-only")
	mapCmd.Flags().BoolVar(&mapReadonly, "readonly", false, "map read-only")

	mountCmd.AddCommand(mountDiskCmd, mountCDROMCmd, mountFloppyCmd)
	ejectCmd.AddCommand(ejectDiskCmd, ejectCDROMCmd, ejectFloppyCmd)
	rootCmd.AddCommand(mountCmd, ejectCmd, mapCmd, unmapCmd)
}

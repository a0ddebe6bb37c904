// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sunpci/go-sunpci"
)

var volumeCmd = &cobra.Command{
	Use:   "volume [level]",
	Short: "Show or set guest audio volume",
	Long: `With no argument, print the current audio volume and playback state.
With a level 0-255, set both channels to that level. Use --mute or
--unmute to toggle muting without changing levels.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithClient(func(c *sunpci.Client) error {
			if len(args) == 0 && !cmd.Flags().Changed("mute") {
				return printVolume(c)
			}

			vol, err := c.GetAudioVolume()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				level, err := strconv.ParseUint(args[0], 10, 8)
				if err != nil {
					return fmt.Errorf("level must be 0-255, got %q", args[0])
				}
				vol.Left = uint8(level)
				vol.Right = uint8(level)
			}
			if cmd.Flags().Changed("mute") {
				vol.Muted, _ = cmd.Flags().GetBool("mute")
			}
			return c.SetAudioVolume(vol)
		})
	},
}

func printVolume(c *sunpci.Client) error {
	vol, err := c.GetAudioVolume()
	if err != nil {
		return err
	}
	st, err := c.GetAudioStatus()
	if err != nil {
		return err
	}
	muted := ""
	if vol.Muted {
		muted = " (muted)"
	}
	fmt.Printf("volume: L %d / R %d%s\n", vol.Left, vol.Right, muted)
	fmt.Printf("playback: playing=%v rate=%d Hz buffered=%d bytes underruns=%d\n",
		st.Playing(), st.SampleRate, st.BufferAvailable, st.Underruns)
	return nil
}

func init() {
	volumeCmd.Flags().Bool("mute", false, "mute or unmute audio output")
	rootCmd.AddCommand(volumeCmd)
}

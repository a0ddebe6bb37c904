// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sunpci/go-sunpci/diskimage"
)

var diskCmd = &cobra.Command{
	Use:   "disk",
	Short: "Create and inspect virtual disk images",
}

var (
	diskCreateSizeMB   uint32
	diskCreateRevision uint8
)

var diskCreateCmd = &cobra.Command{
	Use:   "create <path>",
	Short: "Create a new formattable disk image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := expandPath(args[0])
		log.Infow("creating disk image",
			"path", path,
			"size_mb", diskCreateSizeMB,
			"revision", diskCreateRevision,
		)
		if err := diskimage.Create(path, diskCreateSizeMB, diskCreateRevision); err != nil {
			log.Errorw("disk creation failed", "error", err)
			return err
		}
		geo := diskimage.GeometryForSize(diskCreateSizeMB)
		fmt.Printf("created %s: %d cylinders, %d heads, %d sectors/track (%d MB)\n",
			path, geo.Cylinders, geo.Heads, geo.SectorsPerTrack,
			geo.TotalBytes()/(1024*1024))
		return nil
	},
}

var diskInfoCmd = &cobra.Command{
	Use:   "info <path>...",
	Short: "Show disk image headers",
	Long: `Show the parsed header of one or more disk images. Images are read
concurrently; a file that cannot be parsed is reported per-file
without failing the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		type result struct {
			path string
			info diskimage.Info
			err  error
		}
		results := make([]result, len(args))

		var g errgroup.Group
		g.SetLimit(8)
		for i, arg := range args {
			i, path := i, expandPath(arg)
			g.Go(func() error {
				info, err := diskimage.ReadHeader(path)
				results[i] = result{path: path, info: info, err: err}
				return nil
			})
		}
		g.Wait()

		bad := 0
		for _, r := range results {
			if r.err != nil {
				fmt.Printf("%s: unreadable: %v\n", r.path, r.err)
				bad++
				continue
			}
			printInfo(r.path, r.info)
		}
		if bad > 0 {
			return fmt.Errorf("%d of %d images unreadable", bad, len(args))
		}
		return nil
	},
}

func printInfo(path string, info diskimage.Info) {
	format := "foreign"
	if info.Valid {
		format = fmt.Sprintf("sunpci rev %d", info.Revision)
	}
	boot := ""
	if info.Bootable {
		boot = ", bootable"
	}
	fmt.Printf("%s: %s, %d MB, CHS %d/%d/%d, %d sectors, %s%s\n",
		path, format, info.SizeMB,
		info.Geometry.Cylinders, info.Geometry.Heads, info.Geometry.SectorsPerTrack,
		info.TotalSectors, info.PartitionType, boot)
}

func init() {
	diskCreateCmd.Flags().Uint32Var(&diskCreateSizeMB, "size", 512, "capacity in MB")
	diskCreateCmd.Flags().Uint8Var(&diskCreateRevision, "revision", 2, "format revision byte")

	diskCmd.AddCommand(diskCreateCmd, diskInfoCmd)
	rootCmd.AddCommand(diskCmd)
}

/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Abyteon/vhr-parser/pkg/codec"
	"github.com/Abyteon/vhr-parser/pkg/mmap"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print the container structure of one logger file",
	Long: `Inspect walks every layer of a single container file and prints one line
per segment with its source identifier, offset, and nested record counts.
Useful when checking whether a capture matches the expected framing.

Examples:
  vhr inspect data/input/trip.bin
  vhr inspect --frames data/input/trip.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		showFrames, _ := cmd.Flags().GetBool("frames")

		buf, err := mmap.Open(args[0])
		if err != nil {
			return err
		}
		defer buf.Close()

		segments := 0
		totalFrames := 0

		it := codec.NewSegmentIterator(buf.Bytes())
		for it.Next() {
			seg := it.Segment()
			blocks, sequences, frames := 0, 0, 0

			bi := codec.NewSpanIterator(codec.BlockLayout, seg.Payload)
			for bi.Next() {
				blocks++
				si := codec.NewSpanIterator(codec.SequenceLayout, bi.Span().Payload)
				for si.Next() {
					sequences++
					fi := codec.NewSpanIterator(codec.FrameLayout, si.Span().Payload)
					for fi.Next() {
						frames++
						if showFrames {
							cmd.Printf("    frame % x\n", fi.Span().Payload)
						}
					}
				}
			}

			cmd.Printf("segment %d: source=%s offset=%d payload=%d blocks=%d sequences=%d frames=%d\n",
				segments, seg.SourceID, seg.Offset, len(seg.Payload), blocks, sequences, frames)
			segments++
			totalFrames += frames
		}
		if err := it.Err(); err != nil {
			return err
		}

		cmd.Printf("%d segments, %d frames\n", segments, totalFrames)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("frames", false, "Also dump every frame's bytes")
}

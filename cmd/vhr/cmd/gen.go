/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Abyteon/vhr-parser/pkg/codec"
)

// genCmd represents the gen command
var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate synthetic logger files",
	Long: `Gen writes well-formed synthetic container files, useful for testing the
pipeline and for benchmarking without real captures. Each file holds the
requested number of segments, each wrapping one block/sequence chain of
random frames.

Examples:
  vhr gen --out ./data/input --files 10
  vhr gen --out ./data/input --files 100 --segments 4 --frames 256 --seed 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		files, _ := cmd.Flags().GetInt("files")
		segments, _ := cmd.Flags().GetInt("segments")
		frames, _ := cmd.Flags().GetInt("frames")
		seed, _ := cmd.Flags().GetInt64("seed")

		if out == "" {
			return fmt.Errorf("--out is required")
		}
		if err := os.MkdirAll(out, 0755); err != nil {
			return err
		}

		rng := rand.New(rand.NewSource(seed))

		for f := 0; f < files; f++ {
			var container []byte
			for s := 0; s < segments; s++ {
				sourceID := fmt.Sprintf("VEH%015d", s+1)
				seg, err := genSegment(rng, sourceID, frames)
				if err != nil {
					return err
				}
				container = append(container, seg...)
			}

			path := filepath.Join(out, fmt.Sprintf("synthetic-%04d.bin", f))
			if err := os.WriteFile(path, container, 0644); err != nil {
				return err
			}
			cmd.Printf("wrote %s (%d bytes)\n", path, len(container))
		}
		return nil
	},
}

// genSegment builds one segment wrapping a single block/sequence chain of
// random 4-byte-id frames with 8 data bytes each.
func genSegment(rng *rand.Rand, sourceID string, frames int) ([]byte, error) {
	var seqPayload []byte
	for i := 0; i < frames; i++ {
		frame := make([]byte, 12)
		binary.BigEndian.PutUint32(frame, uint32(rng.Intn(0x800)))
		rng.Read(frame[4:])

		rec, err := codec.EncodeSpan(codec.FrameLayout, frame)
		if err != nil {
			return nil, err
		}
		seqPayload = append(seqPayload, rec...)
	}

	seq, err := codec.EncodeSpan(codec.SequenceLayout, seqPayload)
	if err != nil {
		return nil, err
	}
	block, err := codec.EncodeSpan(codec.BlockLayout, seq)
	if err != nil {
		return nil, err
	}
	return codec.EncodeSegment(sourceID, block)
}

func init() {
	rootCmd.AddCommand(genCmd)

	genCmd.Flags().String("out", "", "Directory to write synthetic files into")
	genCmd.Flags().Int("files", 1, "Number of files to generate")
	genCmd.Flags().Int("segments", 2, "Segments per file")
	genCmd.Flags().Int("frames", 64, "Frames per segment")
	genCmd.Flags().Int64("seed", 1, "Random seed")
}

/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abyteon/vhr-parser/pkg/codec"
)

func TestGenSegment(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	seg, err := genSegment(rng, "VEH000000000000001", 16)
	require.NoError(t, err)

	// The generated segment decodes back into the requested frame count.
	ex := codec.NewFrameExtractor(seg)
	frames := 0
	for ex.Next() {
		assert.Equal(t, "VEH000000000000001", ex.Frame().SourceID)
		assert.Len(t, ex.Frame().Bytes, 12)
		frames++
	}
	require.NoError(t, ex.Err())
	assert.Equal(t, 16, frames)
}

func TestGenSegment_Reproducible(t *testing.T) {
	a, err := genSegment(rand.New(rand.NewSource(7)), "VEH000000000000001", 8)
	require.NoError(t, err)
	b, err := genSegment(rand.New(rand.NewSource(7)), "VEH000000000000001", 8)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

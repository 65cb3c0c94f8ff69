package utils

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMapCoversRange(t *testing.T) {
	for _, tc := range [][2]int{{1, 10}, {4, 10}, {4, 100}, {32, 287}, {8, 3}} {
		pm := NewPartitionMap(tc[0], tc[1])

		covered := make([]bool, tc[1])
		for np := 0; np < pm.ParallelDegree; np++ {
			kMin, kMax := pm.GetBucketRange(np)
			for k := kMin; k < kMax; k++ {
				assert.False(t, covered[k], "index %d covered twice", k)
				covered[k] = true
			}
		}
		for k, c := range covered {
			assert.True(t, c, "index %d not covered", k)
		}

		// Imbalance of at most one item.
		minDim, maxDim := tc[1], 0
		for np := 0; np < pm.ParallelDegree; np++ {
			d := pm.GetBucketDimension(np)
			if d < minDim {
				minDim = d
			}
			if d > maxDim {
				maxDim = d
			}
		}
		assert.LessOrEqual(t, maxDim-minDim, 1)
	}
}

func TestPartitionMapClampsDegree(t *testing.T) {
	pm := NewPartitionMap(16, 3)
	assert.Equal(t, 3, pm.ParallelDegree)

	pm = NewPartitionMap(0, 5)
	assert.Equal(t, 1, pm.ParallelDegree)
}

func TestRunParallel(t *testing.T) {
	pm := NewPartitionMap(4, 1000)

	var sum int64
	pm.RunParallel(func(np, kMin, kMax int) {
		var local int64
		for k := kMin; k < kMax; k++ {
			local += int64(k)
		}
		atomic.AddInt64(&sum, local)
	})
	assert.Equal(t, int64(999*1000/2), sum)
}

func TestVec3Operations(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, -3, -3}, a.Sub(b))
	assert.Equal(t, 32.0, a.Dot(b))
	assert.Equal(t, Vec3{-3, 6, -3}, a.Cross(b))
	assert.InDelta(t, math.Sqrt(14.0), a.Norm(), 1.0e-15)

	n := a.Normalize()
	assert.InDelta(t, 1.0, n.Norm(), 1.0e-15)

	assert.InDelta(t, math.Sqrt(27.0), Distance(a, b), 1.0e-15)
	assert.Equal(t, Vec3{2.5, 3.5, 4.5}, MidPoint(a, b))
}

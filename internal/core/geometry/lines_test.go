package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkmark/internal/core/domain"
)

func TestGroupByLine(t *testing.T) {
	in := []domain.NormalizedRect{
		rect(0.1, 0.200, 0.2, 0.02),
		rect(0.3, 0.2005, 0.2, 0.02),
		rect(0.1, 0.27, 0.2, 0.02),
	}

	groups := GroupByLine(in, domain.DefaultYThreshold)

	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 2)
	assert.Len(t, groups[1], 1)
}

func TestGroupByLine_JoinsFirstGroupInRange(t *testing.T) {
	// 0.21 is within range of both 0.2 and 0.215; it must join the first.
	in := []domain.NormalizedRect{
		rect(0.1, 0.2, 0.1, 0.02),
		rect(0.1, 0.215, 0.1, 0.02),
		rect(0.5, 0.21, 0.1, 0.02),
	}

	groups := GroupByLine(in, domain.DefaultYThreshold)

	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 2)
	assert.Equal(t, 0.21, groups[0][1].Y)
	assert.Len(t, groups[1], 1)
}

func TestGroupByLine_ComparesAgainstRepresentative(t *testing.T) {
	// Each step is within threshold of the previous rect but the third is
	// too far from the group's first rect, so it starts a new group.
	in := []domain.NormalizedRect{
		rect(0.1, 0.200, 0.1, 0.02),
		rect(0.1, 0.210, 0.1, 0.02),
		rect(0.1, 0.220, 0.1, 0.02),
	}

	groups := GroupByLine(in, domain.DefaultYThreshold)

	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 2)
	assert.Len(t, groups[1], 1)
}

func TestGroupByLine_Empty(t *testing.T) {
	assert.Empty(t, GroupByLine(nil, domain.DefaultYThreshold))
}

func TestSplitByHorizontalGap(t *testing.T) {
	t.Run("column gap splits", func(t *testing.T) {
		group := []domain.NormalizedRect{
			rect(0.62, 0.2, 0.3, 0.02),
			rect(0.08, 0.2, 0.3, 0.02),
		}

		subs := SplitByHorizontalGap(group, domain.DefaultGapThreshold)

		require.Len(t, subs, 2)
		assert.Equal(t, 0.08, subs[0][0].X)
		assert.Equal(t, 0.62, subs[1][0].X)
	})

	t.Run("word gaps stay together", func(t *testing.T) {
		group := []domain.NormalizedRect{
			rect(0.1, 0.2, 0.1, 0.02),
			rect(0.22, 0.2, 0.1, 0.02),
			rect(0.35, 0.2, 0.1, 0.02),
		}

		subs := SplitByHorizontalGap(group, domain.DefaultGapThreshold)

		require.Len(t, subs, 1)
		assert.Len(t, subs[0], 3)
	})

	t.Run("gap measured from rightmost edge", func(t *testing.T) {
		// The wide first rect covers the second, so the third is close
		// to the running right edge even though it is far from the second.
		group := []domain.NormalizedRect{
			rect(0.1, 0.2, 0.6, 0.02),
			rect(0.15, 0.2, 0.05, 0.02),
			rect(0.72, 0.2, 0.1, 0.02),
		}

		subs := SplitByHorizontalGap(group, domain.DefaultGapThreshold)

		assert.Len(t, subs, 1)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, SplitByHorizontalGap(nil, domain.DefaultGapThreshold))
	})
}

func TestMergeLineGroup(t *testing.T) {
	got := MergeLineGroup([]domain.NormalizedRect{
		rect(0.1, 0.2, 0.2, 0.02),
		rect(0.35, 0.195, 0.2, 0.03),
	})

	if diff := cmp.Diff(rect(0.1, 0.195, 0.45, 0.03), got, approx); diff != "" {
		t.Errorf("MergeLineGroup() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, domain.NormalizedRect{}, MergeLineGroup(nil))
}

func TestDropOversized(t *testing.T) {
	in := []domain.NormalizedRect{
		rect(0.1, 0.2, 0.5, 0.02),
		rect(0, 0, 1, 1),
		rect(0.1, 0.1, 0.1, 0.4),
		rect(0.05, 0.3, 0.9, 0.12),
	}

	got := dropOversized(in, domain.DefaultMaxFragmentHeight, domain.DefaultMaxFragmentArea)

	require.Len(t, got, 1)
	assert.Equal(t, in[0], got[0])
}

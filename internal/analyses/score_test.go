package analyses

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreMixedLevels(t *testing.T) {
	gaps := []GapItem{
		{MatchLevel: MatchStrong},
		{MatchLevel: MatchStrong},
		{MatchLevel: MatchPartial},
		{MatchLevel: MatchGap},
	}
	score, ok := Score(gaps)
	assert.True(t, ok)
	// (100+100+50+0)/4 = 62.5, rounded half away from zero.
	assert.Equal(t, 63, score)
}

func TestScoreAllStrong(t *testing.T) {
	score, ok := Score([]GapItem{{MatchLevel: MatchStrong}, {MatchLevel: MatchStrong}})
	assert.True(t, ok)
	assert.Equal(t, 100, score)
}

func TestScoreAllGaps(t *testing.T) {
	score, ok := Score([]GapItem{{MatchLevel: MatchGap}})
	assert.True(t, ok)
	assert.Equal(t, 0, score)
}

func TestScoreUnknownLevelCountsAsGap(t *testing.T) {
	score, ok := Score([]GapItem{{MatchLevel: MatchStrong}, {MatchLevel: "unknown"}})
	assert.True(t, ok)
	assert.Equal(t, 50, score)
}

func TestScoreEmptyNotApplicable(t *testing.T) {
	score, ok := Score(nil)
	assert.False(t, ok)
	assert.Equal(t, 0, score)
}

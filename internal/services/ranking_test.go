package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/salesgame/salesgame-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRankEntries_OrdersByPoints(t *testing.T) {
	entries := []models.RankingEntry{
		{TeamName: "bronze", Points: 10},
		{TeamName: "gold", Points: 90},
		{TeamName: "silver", Points: 40},
	}

	rankEntries(entries)

	assert.Equal(t, "gold", entries[0].TeamName)
	assert.Equal(t, "silver", entries[1].TeamName)
	assert.Equal(t, "bronze", entries[2].TeamName)
	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Position, entries[1].Position, entries[2].Position})
}

func TestRankEntries_TieBrokenBySaleValue(t *testing.T) {
	entries := []models.RankingEntry{
		{TeamName: "low", Points: 50, TotalSaleValue: 1000},
		{TeamName: "high", Points: 50, TotalSaleValue: 9000},
	}

	rankEntries(entries)

	assert.Equal(t, "high", entries[0].TeamName)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "low", entries[1].TeamName)
	assert.Equal(t, 2, entries[1].Position)
}

func TestRankEntries_FullTieIsDeterministic(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")

	run := func(order []models.RankingEntry) []uuid.UUID {
		rankEntries(order)
		ids := make([]uuid.UUID, len(order))
		for i, e := range order {
			ids[i] = e.TeamID
		}
		return ids
	}

	first := run([]models.RankingEntry{
		{TeamID: a, Points: 30, TotalSaleValue: 500},
		{TeamID: b, Points: 30, TotalSaleValue: 500},
	})
	second := run([]models.RankingEntry{
		{TeamID: b, Points: 30, TotalSaleValue: 500},
		{TeamID: a, Points: 30, TotalSaleValue: 500},
	})

	assert.Equal(t, first, second)
	assert.Equal(t, a, first[0]) // lower uuid wins the tie
}

func TestRankEntries_PositionsAreGapFree(t *testing.T) {
	entries := []models.RankingEntry{
		{TeamName: "a", Points: 10},
		{TeamName: "b", Points: 10},
		{TeamName: "c", Points: 10},
		{TeamName: "d", Points: 0},
	}

	rankEntries(entries)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
	}
}

func TestRankEntries_Empty(t *testing.T) {
	assert.NotPanics(t, func() { rankEntries(nil) })
	assert.NotPanics(t, func() { rankEntries([]models.RankingEntry{}) })
}

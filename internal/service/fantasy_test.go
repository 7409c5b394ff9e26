package service

import (
	"testing"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/projection"
	"github.com/stretchr/testify/assert"
)

func TestCountCategoryWins(t *testing.T) {
	categories := projection.DefaultCategories

	target := projection.ProjectedTotals{
		"PTS": 500, "TREB": 180, "AST": 120, "STL": 30, "BLK": 20,
		"3PM": 55, "TO": 40, projection.CatAFG: 0.55, projection.CatFT: 0.80,
		"FGM": 190, "FGA": 400, "FTM": 90, "FTA": 110,
	}
	opp := projection.ProjectedTotals{
		"PTS": 480, "TREB": 200, "AST": 100, "STL": 30, "BLK": 25,
		"3PM": 50, "TO": 50, projection.CatAFG: 0.52, projection.CatFT: 0.85,
		"FGM": 500, "FGA": 900, "FTM": 200, "FTA": 250,
	}

	// Wins: PTS, AST, 3PM, AFG%, and TO (lower). Losses: TREB, BLK, FT%.
	// Ties (STL) and the hidden shooting counters do not count.
	assert.Equal(t, 5, countCategoryWins(target, opp, categories))
}

func TestCountCategoryWinsLowerIsBetter(t *testing.T) {
	target := projection.ProjectedTotals{"TO": 10}
	opp := projection.ProjectedTotals{"TO": 20}

	assert.Equal(t, 1, countCategoryWins(target, opp, []string{"TO"}))
	assert.Equal(t, 0, countCategoryWins(opp, target, []string{"TO"}))
}

func TestCountCategoryWinsSkipsHiddenCounters(t *testing.T) {
	target := projection.ProjectedTotals{"FGM": 100, "FGA": 200, "FTM": 50, "FTA": 60}
	opp := projection.ProjectedTotals{}

	assert.Equal(t, 0, countCategoryWins(target, opp, []string{"FGM", "FGA", "FTM", "FTA"}))
}

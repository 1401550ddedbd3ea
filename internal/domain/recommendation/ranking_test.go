package recommendation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dishes(n int, prefix string) []DishFrequency {
	out := make([]DishFrequency, n)
	for i := range out {
		out[i] = DishFrequency{MenuItemID: uuid.New(), Name: prefix, OrderCount: int64(n - i)}
	}
	return out
}

func TestRank_FavoritesBeforePopular(t *testing.T) {
	fav := dishes(2, "fav")
	pop := dishes(3, "pop")

	got := Rank(fav, pop, DefaultLimit)

	require.Len(t, got, 5)
	assert.Equal(t, fav[0].MenuItemID, got[0].MenuItemID)
	assert.Equal(t, SourceFavorite, got[1].Source)
	assert.Equal(t, pop[0].MenuItemID, got[2].MenuItemID)
	assert.Equal(t, SourcePopular, got[4].Source)
}

func TestRank_Dedupes(t *testing.T) {
	fav := dishes(2, "fav")
	pop := append([]DishFrequency{fav[1]}, dishes(1, "pop")...)

	got := Rank(fav, pop, DefaultLimit)

	require.Len(t, got, 3)
	assert.Equal(t, SourceFavorite, got[1].Source)
	assert.Equal(t, pop[1].MenuItemID, got[2].MenuItemID)
}

func TestRank_CapsAtLimit(t *testing.T) {
	got := Rank(dishes(7, "fav"), dishes(7, "pop"), DefaultLimit)
	assert.Len(t, got, 10)

	got = Rank(dishes(3, "fav"), nil, 0)
	assert.Len(t, got, 3)
}

func TestRank_NoFallbackWhenEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil, nil, DefaultLimit))
}

package catalog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRestaurant(t *testing.T) {
	t.Run("third-party restaurant is not house", func(t *testing.T) {
		r, err := NewRestaurant("Spice Route", "Meera")
		require.NoError(t, err)
		assert.False(t, r.IsHouse())
		assert.False(t, r.Approved)
	})

	t.Run("name alone does not make a restaurant house", func(t *testing.T) {
		r, err := NewRestaurant(HouseRestaurantName, "")
		require.NoError(t, err)
		assert.False(t, r.IsHouse())
	})

	t.Run("house restaurant is flagged and approved", func(t *testing.T) {
		r, err := NewHouseRestaurant(HouseRestaurantName)
		require.NoError(t, err)
		assert.True(t, r.IsHouse())
		assert.True(t, r.Approved)
	})

	t.Run("blank name fails", func(t *testing.T) {
		_, err := NewRestaurant("  ", "")
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestNewMenuItem(t *testing.T) {
	restaurantID := uuid.New()

	t.Run("creates orderable item", func(t *testing.T) {
		m, err := NewMenuItem(restaurantID, "Paneer Tikka", decimal.NewFromInt(120))
		require.NoError(t, err)
		assert.True(t, m.Orderable())
		assert.True(t, m.BelongsTo(restaurantID))
		assert.False(t, m.BelongsTo(uuid.New()))
		assert.True(t, m.Price.Equal(decimal.NewFromInt(120)))
	})

	t.Run("negative price fails", func(t *testing.T) {
		_, err := NewMenuItem(restaurantID, "Dal", decimal.NewFromInt(-1))
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("missing restaurant fails", func(t *testing.T) {
		_, err := NewMenuItem(uuid.Nil, "Dal", decimal.NewFromInt(1))
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestMenuItem_Lifecycle(t *testing.T) {
	m, err := NewMenuItem(uuid.New(), "Dosa", decimal.NewFromInt(60))
	require.NoError(t, err)

	require.NoError(t, m.ChangePrice(decimal.NewFromInt(75)))
	assert.True(t, m.Price.Equal(decimal.NewFromInt(75)))
	assert.Error(t, m.ChangePrice(decimal.NewFromInt(-5)))

	m.SetAvailable(false)
	assert.False(t, m.Orderable())

	m.SetAvailable(true)
	m.SoftDelete()
	assert.True(t, m.Deleted)
	assert.False(t, m.Orderable())
}

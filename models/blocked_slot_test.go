package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockedSlotTableIDList(t *testing.T) {
	var block BlockedSlot

	assert.NoError(t, block.SetTableIDList(nil))
	assert.Equal(t, "[]", block.TableIDs)
	assert.True(t, block.IsRestaurantWide())
	// Blok seluruh restoran mengenai meja manapun
	assert.True(t, block.AppliesToTable(42))

	assert.NoError(t, block.SetTableIDList([]uint{3, 7}))
	assert.False(t, block.IsRestaurantWide())
	assert.Equal(t, []uint{3, 7}, block.TableIDList())
	assert.True(t, block.AppliesToTable(3))
	assert.True(t, block.AppliesToTable(7))
	assert.False(t, block.AppliesToTable(5))
}

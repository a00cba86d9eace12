package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/utils"
)

func TestDescribe(t *testing.T) {
	t.Run("EmptyCriteria", func(t *testing.T) {
		assert.Equal(t, "All tournaments", Describe(models.FilterCriteria{}))
	})

	t.Run("GameTypeAndFeeRange", func(t *testing.T) {
		got := Describe(models.FilterCriteria{
			GameType:    utils.ToPtr("8-ball"),
			EntryFeeMin: utils.ToPtr(20.0),
			EntryFeeMax: utils.ToPtr(50.0),
		})
		assert.Equal(t, "8-ball • $20-50", got)
	})

	t.Run("StateOnly", func(t *testing.T) {
		assert.Equal(t, "in AZ", Describe(models.FilterCriteria{State: utils.ToPtr("AZ")}))
	})

	t.Run("MinOnly", func(t *testing.T) {
		assert.Equal(t, "$20+", Describe(models.FilterCriteria{EntryFeeMin: utils.ToPtr(20.0)}))
	})

	t.Run("MaxOnly", func(t *testing.T) {
		assert.Equal(t, "up to $50", Describe(models.FilterCriteria{EntryFeeMax: utils.ToPtr(50.0)}))
	})

	t.Run("AllParts", func(t *testing.T) {
		got := Describe(models.FilterCriteria{
			GameType:    utils.ToPtr("9-ball"),
			State:       utils.ToPtr("TX"),
			EntryFeeMax: utils.ToPtr(100.0),
		})
		assert.Equal(t, "9-ball • in TX • up to $100", got)
	})

	t.Run("CriteriaOutsideTheLabelSetAreIgnored", func(t *testing.T) {
		got := Describe(models.FilterCriteria{
			TableSize:  utils.ToPtr("9ft"),
			DaysOfWeek: []int{5, 6},
		})
		assert.Equal(t, "All tournaments", got)
	})

	t.Run("FractionalFee", func(t *testing.T) {
		assert.Equal(t, "$12.5+", Describe(models.FilterCriteria{EntryFeeMin: utils.ToPtr(12.5)}))
	})
}

package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tannermartz/breakline/app/dto"
	businessflow "github.com/tannermartz/breakline/business_flow"
	"github.com/tannermartz/breakline/repository"
	testingutil "github.com/tannermartz/breakline/testing"
	"github.com/tannermartz/breakline/utils"
)

func TestVenueFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := businessflow.NewVenueFlow(repository.NewVenueRepository(testDB.DB), testDB.DB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "go-test")

		t.Run("CreateNormalizesInput", func(t *testing.T) {
			result, err := flow.CreateVenue(context.Background(), &dto.CreateVenueRequest{
				Name:  "  Rack City  ",
				City:  " Austin ",
				State: "tx",
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "Rack City", result.Venue.Name)
			assert.Equal(t, "Austin", result.Venue.City)
			assert.Equal(t, "TX", result.Venue.State)
			assert.NotEmpty(t, result.Venue.UUID)
		})

		t.Run("ListFiltersByState", func(t *testing.T) {
			_, err := flow.CreateVenue(context.Background(), &dto.CreateVenueRequest{
				Name:  "Corner Pocket",
				City:  "Tulsa",
				State: "OK",
			}, metadata)
			require.NoError(t, err)

			all, err := flow.ListVenues(context.Background(), &dto.ListVenuesRequest{})
			require.NoError(t, err)
			assert.EqualValues(t, 2, all.Total)

			// Lowercase query still matches the stored uppercase state
			oklahoma, err := flow.ListVenues(context.Background(), &dto.ListVenuesRequest{
				State: utils.ToPtr("ok"),
			})
			require.NoError(t, err)
			require.Len(t, oklahoma.Venues, 1)
			assert.Equal(t, "Corner Pocket", oklahoma.Venues[0].Name)
		})

		return nil
	})
	require.NoError(t, err)
}

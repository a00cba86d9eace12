package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/utils"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

// friday2025 is 2025-03-14, a Friday (weekday 5)
var friday2025 = date("2025-03-14")

func baseTournament() *models.Tournament {
	return &models.Tournament{
		Name:             "Friday Night 9-Ball",
		GameType:         "9-ball",
		TournamentFormat: "single-elimination",
		TableSize:        "9ft",
		Equipment:        utils.ToPtr("Diamond Pro-Am"),
		EntryFee:         utils.ToPtr(25.0),
		MaxFargo:         utils.ToPtr(600),
		ReportsToFargo:   utils.ToPtr(true),
		OpenTournament:   utils.ToPtr(true),
		TournamentDate:   friday2025,
		Venue: &models.Venue{
			Name:  "Rack City",
			City:  "Tempe",
			State: "AZ",
		},
	}
}

func alertWith(c models.FilterCriteria) *models.SearchAlert {
	return &models.SearchAlert{
		Name:     "test alert",
		Criteria: c,
		IsActive: utils.ToPtr(true),
	}
}

func TestMatchesEmptyCriteria(t *testing.T) {
	// An alert with no filters matches everything, including a bare listing
	assert.True(t, Matches(baseTournament(), alertWith(models.FilterCriteria{})))

	bare := &models.Tournament{
		GameType:         "one-pocket",
		TournamentFormat: "round-robin",
		TableSize:        "7ft",
		TournamentDate:   date("2025-07-01"),
	}
	assert.True(t, Matches(bare, alertWith(models.FilterCriteria{})))
}

func TestMatchesSingleCriterionFailureShortCircuits(t *testing.T) {
	tournament := baseTournament()

	// Every other criterion satisfied, one failing predicate flips the result
	criteria := models.FilterCriteria{
		GameType:         utils.ToPtr("9-ball"),
		TournamentFormat: utils.ToPtr("single-elimination"),
		TableSize:        utils.ToPtr("9ft"),
		State:            utils.ToPtr("AZ"),
	}
	assert.True(t, MatchesCriteria(tournament, criteria))

	criteria.TableSize = utils.ToPtr("7ft")
	assert.False(t, MatchesCriteria(tournament, criteria))
}

func TestGameTypeSmartMatchIsAsymmetric(t *testing.T) {
	scotch := baseTournament()
	scotch.GameType = "9-ball-scotch-doubles"

	plain := baseTournament()

	broad := alertWith(models.FilterCriteria{GameType: utils.ToPtr("9-ball")})
	narrow := alertWith(models.FilterCriteria{GameType: utils.ToPtr("9-ball-scotch-doubles")})

	// A broad alert catches the scotch-doubles variant
	assert.True(t, Matches(scotch, broad))
	// A scotch-doubles alert never matches the plain tournament
	assert.False(t, Matches(plain, narrow))
	// Exact matches in both directions still work
	assert.True(t, Matches(plain, broad))
	assert.True(t, Matches(scotch, narrow))
	// Unrelated game types never match
	assert.False(t, Matches(plain, alertWith(models.FilterCriteria{GameType: utils.ToPtr("8-ball")})))
	// No cross-type scotch-doubles leniency
	eight := baseTournament()
	eight.GameType = "8-ball-scotch-doubles"
	assert.False(t, Matches(eight, broad))
}

func TestEquipmentSubstring(t *testing.T) {
	tournament := baseTournament()

	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{Equipment: utils.ToPtr("diamond")}))
	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{Equipment: utils.ToPtr("Pro-Am")}))
	assert.False(t, MatchesCriteria(tournament, models.FilterCriteria{Equipment: utils.ToPtr("Valley")}))

	// A requirement cannot match against absent data
	tournament.Equipment = nil
	assert.False(t, MatchesCriteria(tournament, models.FilterCriteria{Equipment: utils.ToPtr("diamond")}))
}

func TestEntryFeeRange(t *testing.T) {
	tournament := baseTournament() // fee 25

	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{EntryFeeMin: utils.ToPtr(20.0)}))
	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{EntryFeeMax: utils.ToPtr(50.0)}))
	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{EntryFeeMin: utils.ToPtr(25.0), EntryFeeMax: utils.ToPtr(25.0)}))
	assert.False(t, MatchesCriteria(tournament, models.FilterCriteria{EntryFeeMin: utils.ToPtr(30.0)}))
	assert.False(t, MatchesCriteria(tournament, models.FilterCriteria{EntryFeeMax: utils.ToPtr(20.0)}))
}

func TestEntryFeeAbsenceNeverExcludes(t *testing.T) {
	tournament := baseTournament()
	tournament.EntryFee = nil

	// A listing without a fee passes any range constraint
	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{EntryFeeMin: utils.ToPtr(100.0)}))
	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{EntryFeeMax: utils.ToPtr(1.0)}))
}

func TestFargoCap(t *testing.T) {
	tournament := baseTournament() // cap 600

	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{FargoMax: utils.ToPtr(600)}))
	assert.False(t, MatchesCriteria(tournament, models.FilterCriteria{FargoMax: utils.ToPtr(550)}))

	// No cap on the tournament means the constraint is not applied
	tournament.MaxFargo = nil
	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{FargoMax: utils.ToPtr(550)}))
}

func TestTriStateBooleans(t *testing.T) {
	tournament := baseTournament() // reports=true, open=true

	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{ReportsToFargo: utils.ToPtr(true)}))
	assert.False(t, MatchesCriteria(tournament, models.FilterCriteria{ReportsToFargo: utils.ToPtr(false)}))
	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{OpenTournament: utils.ToPtr(true)}))
	assert.False(t, MatchesCriteria(tournament, models.FilterCriteria{OpenTournament: utils.ToPtr(false)}))

	tournament.OpenTournament = utils.ToPtr(false)
	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{OpenTournament: utils.ToPtr(false)}))
}

func TestDateRange(t *testing.T) {
	tournament := baseTournament() // 2025-03-14

	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{
		DateFrom: utils.ToPtr("2025-03-01"),
		DateTo:   utils.ToPtr("2025-03-31"),
	}))
	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{DateFrom: utils.ToPtr("2025-03-14")}))
	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{DateTo: utils.ToPtr("2025-03-14")}))
	assert.False(t, MatchesCriteria(tournament, models.FilterCriteria{DateFrom: utils.ToPtr("2025-03-15")}))
	assert.False(t, MatchesCriteria(tournament, models.FilterCriteria{DateTo: utils.ToPtr("2025-03-13")}))
}

func TestMalformedCriteriaDateFailsPredicate(t *testing.T) {
	tournament := baseTournament()

	assert.False(t, MatchesCriteria(tournament, models.FilterCriteria{DateFrom: utils.ToPtr("not-a-date")}))
	assert.False(t, MatchesCriteria(tournament, models.FilterCriteria{DateTo: utils.ToPtr("03/14/2025")}))
}

func TestDaysOfWeek(t *testing.T) {
	tournament := baseTournament() // Friday, weekday 5

	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{DaysOfWeek: []int{5}}))
	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{DaysOfWeek: []int{0, 5, 6}}))
	assert.False(t, MatchesCriteria(tournament, models.FilterCriteria{DaysOfWeek: []int{1}}))
}

func TestLocationSkippedWithoutVenue(t *testing.T) {
	tournament := baseTournament()

	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{State: utils.ToPtr("AZ"), City: utils.ToPtr("Tempe")}))
	assert.False(t, MatchesCriteria(tournament, models.FilterCriteria{State: utils.ToPtr("NV")}))
	assert.False(t, MatchesCriteria(tournament, models.FilterCriteria{City: utils.ToPtr("Phoenix")}))

	// A listing without venue data skips location constraints entirely
	tournament.Venue = nil
	assert.True(t, MatchesCriteria(tournament, models.FilterCriteria{State: utils.ToPtr("NV"), City: utils.ToPtr("Reno")}))
}

func TestEndToEndScenario(t *testing.T) {
	tournament := &models.Tournament{
		GameType:         "9-ball",
		TournamentFormat: "single-elimination",
		EntryFee:         utils.ToPtr(25.0),
		TournamentDate:   friday2025,
		Venue:            &models.Venue{State: "AZ", City: "Tempe"},
	}

	alert := alertWith(models.FilterCriteria{
		GameType:    utils.ToPtr("9-ball"),
		State:       utils.ToPtr("AZ"),
		EntryFeeMax: utils.ToPtr(50.0),
		DaysOfWeek:  []int{5},
	})
	assert.True(t, Matches(tournament, alert))

	mondayOnly := alertWith(models.FilterCriteria{
		GameType:    utils.ToPtr("9-ball"),
		State:       utils.ToPtr("AZ"),
		EntryFeeMax: utils.ToPtr(50.0),
		DaysOfWeek:  []int{1},
	})
	assert.False(t, Matches(tournament, mondayOnly))
}

// Package matching evaluates search-alert filter criteria against tournament
// listings. Everything in this package is pure: no I/O, no logging, no clock.
package matching

import (
	"slices"
	"strings"
	"time"

	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/utils"
)

// Matches reports whether the tournament satisfies every constraint set on
// the alert's criteria. An alert with no constraints matches everything.
func Matches(t *models.Tournament, a *models.SearchAlert) bool {
	return MatchesCriteria(t, a.Criteria)
}

// MatchesCriteria is the conjunction of independent predicates over the
// criteria fields. Any failing predicate short-circuits to false.
func MatchesCriteria(t *models.Tournament, c models.FilterCriteria) bool {
	if c.GameType != nil && !gameTypeMatches(*c.GameType, t.GameType) {
		return false
	}

	if c.TournamentFormat != nil && *c.TournamentFormat != t.TournamentFormat {
		return false
	}

	if c.TableSize != nil && *c.TableSize != t.TableSize {
		return false
	}

	// An equipment requirement cannot match against absent data.
	if c.Equipment != nil {
		if t.Equipment == nil {
			return false
		}
		if !strings.Contains(strings.ToLower(*t.Equipment), strings.ToLower(*c.Equipment)) {
			return false
		}
	}

	// Fee range checks apply only when the tournament carries a fee; a
	// listing without one is never excluded by a fee constraint.
	if t.EntryFee != nil {
		if c.EntryFeeMin != nil && *t.EntryFee < *c.EntryFeeMin {
			return false
		}
		if c.EntryFeeMax != nil && *t.EntryFee > *c.EntryFeeMax {
			return false
		}
	}

	// Only an upper bound on the tournament's own cap is checked.
	if c.FargoMax != nil && t.MaxFargo != nil && *t.MaxFargo > *c.FargoMax {
		return false
	}

	if c.ReportsToFargo != nil && *c.ReportsToFargo != utils.IsTrue(t.ReportsToFargo) {
		return false
	}

	if c.OpenTournament != nil && *c.OpenTournament != utils.IsTrue(t.OpenTournament) {
		return false
	}

	date := utils.DateOnly(t.TournamentDate)

	if c.DateFrom != nil {
		from, err := parseDate(*c.DateFrom)
		if err != nil || date.Before(from) {
			return false
		}
	}

	if c.DateTo != nil {
		to, err := parseDate(*c.DateTo)
		if err != nil || date.After(to) {
			return false
		}
	}

	if len(c.DaysOfWeek) > 0 && !slices.Contains(c.DaysOfWeek, int(date.Weekday())) {
		return false
	}

	// Location constraints are skipped when the listing has no venue data.
	if t.Venue != nil {
		if c.State != nil && *c.State != t.Venue.State {
			return false
		}
		if c.City != nil && *c.City != t.Venue.City {
			return false
		}
	}

	return true
}

// gameTypeMatches applies one-directional smart matching: a plain alert
// catches the scotch-doubles variant of its game type, never the reverse.
func gameTypeMatches(alertType, tournamentType string) bool {
	if alertType == tournamentType {
		return true
	}
	if !strings.HasSuffix(alertType, models.ScotchDoublesSuffix) &&
		strings.HasSuffix(tournamentType, models.ScotchDoublesSuffix) {
		return alertType == strings.TrimSuffix(tournamentType, models.ScotchDoublesSuffix)
	}
	return false
}

// parseDate parses an ISO calendar date; malformed input is a predicate
// failure at the call site, never a panic.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, time.UTC)
}

package matching

import (
	"strconv"
	"strings"

	"github.com/tannermartz/breakline/models"
)

// DefaultDescription is returned when no criteria part applies.
const DefaultDescription = "All tournaments"

const partSeparator = " • "

// Describe renders a short human-readable label for the criteria, used for
// alert lists and notifications. Parts appear in fixed order: game type,
// location, entry fee.
func Describe(c models.FilterCriteria) string {
	var parts []string

	if c.GameType != nil {
		parts = append(parts, *c.GameType)
	}

	if c.State != nil {
		parts = append(parts, "in "+*c.State)
	}

	switch {
	case c.EntryFeeMin != nil && c.EntryFeeMax != nil:
		parts = append(parts, "$"+formatFee(*c.EntryFeeMin)+"-"+formatFee(*c.EntryFeeMax))
	case c.EntryFeeMin != nil:
		parts = append(parts, "$"+formatFee(*c.EntryFeeMin)+"+")
	case c.EntryFeeMax != nil:
		parts = append(parts, "up to $"+formatFee(*c.EntryFeeMax))
	}

	if len(parts) == 0 {
		return DefaultDescription
	}

	return strings.Join(parts, partSeparator)
}

func formatFee(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

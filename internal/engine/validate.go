package engine

import (
	"fmt"
	"strings"
	"time"
)

// Traveler holds the fields the validator looks at. A zero DateOfBirth or an
// empty ResidenceCountry means the field was not captured yet and its check
// is skipped.
type Traveler struct {
	FirstName        string
	LastName         string
	DateOfBirth      time.Time
	Nationality      string
	ResidenceCountry string
}

// AgeAt returns whole years between dob and now, decrementing when the
// birthday has not yet occurred this year.
func AgeAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

// ValidateEligibility runs every eligibility check and collects the failures
// in order; it never short-circuits, so the operator sees all problems at
// once. With no ruleset loaded there is nothing to validate against and the
// sale is reported valid.
func ValidateEligibility(rs *RuleSet, eligibleHT float64, traveler Traveler, eligibleCount, totalCount int, now time.Time) []string {
	if rs == nil {
		return nil
	}

	var errs []string

	if eligibleHT < rs.MinPurchaseAmount {
		errs = append(errs, fmt.Sprintf(
			"minimum purchase amount not reached: %.2f CDF required, eligible amount is %.2f CDF",
			rs.MinPurchaseAmount, eligibleHT))
	}

	if !traveler.DateOfBirth.IsZero() {
		age := AgeAt(traveler.DateOfBirth, now)
		if age < rs.MinAge {
			errs = append(errs, fmt.Sprintf(
				"traveler must be at least %d years old, computed age is %d", rs.MinAge, age))
		}
	}

	if traveler.ResidenceCountry != "" {
		for _, cc := range rs.ExcludedResidenceCountries {
			if strings.EqualFold(cc, traveler.ResidenceCountry) {
				errs = append(errs, fmt.Sprintf(
					"residence country %s is not eligible for refund", strings.ToUpper(traveler.ResidenceCountry)))
				break
			}
		}
	}

	if eligibleCount == 0 && totalCount > 0 {
		errs = append(errs, "no purchased item belongs to a refund-eligible category")
	}

	return errs
}

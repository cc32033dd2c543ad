package domain

// Eligibility rules for BTO applications. Pure functions, no side effects;
// callers decide the user-facing messaging.
//
// Single applicants may only apply for the smaller flat tier and must be at
// least 35. Married applicants may apply for either tier and must be at least
// 21. An unrecognized marital status fails closed.

// IsFlatTypeEligible reports whether the marital category admits the flat type.
func IsFlatTypeEligible(flatType string, marital MaritalStatus) bool {
	switch marital {
	case MaritalSingle:
		return FlatTypeEquals(flatType, FlatTypeSmaller)
	case MaritalMarried:
		return FlatTypeEquals(flatType, FlatTypeSmaller) || FlatTypeEquals(flatType, FlatTypeLarger)
	default:
		return false
	}
}

// MeetsAgeRequirement reports whether the age satisfies the minimum for the
// marital category.
func MeetsAgeRequirement(age int, marital MaritalStatus) bool {
	switch marital {
	case MaritalSingle:
		return age >= MinSingleAge
	case MaritalMarried:
		return age >= MinMarriedAge
	default:
		return false
	}
}

// IsEligible combines the marital, age and flat-type checks for an
// (age, marital category, flat type) triple.
func IsEligible(age int, maritalValue, flatType string) bool {
	marital, ok := ParseMaritalStatus(maritalValue)
	if !ok {
		return false
	}
	return MeetsAgeRequirement(age, marital) && IsFlatTypeEligible(flatType, marital)
}

package entities

// EligibilityStatus is the outcome of an eligibility check.
type EligibilityStatus string

const (
	// EligibilityEligible means no rule blocks the activity for the patient.
	EligibilityEligible EligibilityStatus = "ELIGIBLE"

	// EligibilityExcluded means an active exclusion bans the activity.
	EligibilityExcluded EligibilityStatus = "EXCLUDED"

	// EligibilitySubstituted means an approved adhoc redirects to another
	// centre activity; the caller must resolve against the substitute.
	EligibilitySubstituted EligibilityStatus = "SUBSTITUTED"
)

// EligibilityDecision is the result of evaluating the eligibility rules for
// one (patient, centre activity, time) triple.
type EligibilityDecision struct {
	Status EligibilityStatus `json:"status"`

	// Reason carries the exclusion remarks when Status is EXCLUDED.
	Reason string `json:"reason,omitempty"`

	// SubstituteID is the terminal centre activity of the substitution chain
	// when Status is SUBSTITUTED.
	SubstituteID *int64 `json:"substitute_id,omitempty"`
}

// Suitability score weights. Doctor judgment outweighs patient preference;
// a missing input renormalizes rather than voting neutral.
const (
	RecommendationWeight = 0.6
	PreferenceWeight     = 0.4
)

// SuitabilityScore blends doctor recommendations and patient preference into
// a single value in [-1, 1]. Callers threshold it externally.
type SuitabilityScore struct {
	Value float64 `json:"value"`

	// RecommendationCount is the number of doctors whose latest live
	// recommendation entered the blend.
	RecommendationCount int `json:"recommendation_count"`

	// HasPreference reports whether a live patient preference entered the
	// blend.
	HasPreference bool `json:"has_preference"`
}

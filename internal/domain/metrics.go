package domain

// StatusClass is the presentation-tier banding of a remaining percentage.
type StatusClass string

// Status classes, from unknown through well-filled.
const (
	StatusClassNone   StatusClass = "none"
	StatusClassLow    StatusClass = "low"
	StatusClassMedium StatusClass = "medium"
	StatusClassHigh   StatusClass = "high"
)

// GasCapacity returns the rated gas content of a canister type in grams.
// No validation: malformed inputs yield a non-positive capacity, which the
// percentage calculation defuses.
func GasCapacity(fullWeight, emptyWeight int) int {
	return fullWeight - emptyWeight
}

// RemainingGas returns the gas left in grams given a measured weight.
func RemainingGas(weight, emptyWeight int) int {
	return weight - emptyWeight
}

// RemainingPercentage returns the fraction of rated capacity still present,
// clamped to [0, 100]. Measurements above the rated full weight or below the
// rated empty weight are sensor noise and must not escape the clamp. A
// non-positive capacity yields 0.
func RemainingPercentage(weight, emptyWeight, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	percentage := float64(weight-emptyWeight) / float64(capacity) * 100
	if percentage < 0 {
		return 0
	}
	if percentage > 100 {
		return 100
	}
	return percentage
}

// ConsumptionPercentage is the exact complement of a remaining percentage.
// It is always relative to the type's rated capacity, never a delta against
// another weighing.
func ConsumptionPercentage(remainingPercentage float64) float64 {
	return 100 - remainingPercentage
}

// ClassifyLevel bands a remaining percentage for display. nil means the
// canister has never been weighed (or its type is missing) and classifies as
// none. Exactly 50 is medium, exactly 25 is low.
func ClassifyLevel(percentage *float64) StatusClass {
	if percentage == nil {
		return StatusClassNone
	}
	switch {
	case *percentage > 50:
		return StatusClassHigh
	case *percentage > 25:
		return StatusClassMedium
	default:
		return StatusClassLow
	}
}

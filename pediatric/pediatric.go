// Package pediatric holds the weight-driven pediatric tables: age-group
// boundaries, dose factors, per-bed scan-time ceilings, lean-body-mass
// factors, and adjusted SNR targets. Classification is purely
// weight-driven; the declared sex category of the patient never enters
// into it.
package pediatric

import "github.com/petplan/petplan/device"

// WeightThresholdKG is the single authoritative pediatric gate: any
// patient strictly below this weight is treated as pediatric, regardless
// of the declared sex category.
const WeightThresholdKG = 35.0

// IsPediatric reports whether a patient of the given weight is handled
// under the pediatric protocol rules.
func IsPediatric(weightKG float64) bool {
	return weightKG < WeightThresholdKG
}

// AgeGroup is a weight-derived refinement of the pediatric
// classification. A pediatric weight outside every group range still
// counts as pediatric; it just gets the table-default fallbacks.
type AgeGroup string

const (
	Neonate    AgeGroup = "neonate"
	Infant     AgeGroup = "infant"
	Toddler    AgeGroup = "toddler"
	Child      AgeGroup = "child"
	Adolescent AgeGroup = "adolescent"
)

// weightRanges is ordered; the ranges share boundaries, and a boundary
// weight resolves to the first matching range (5 kg is a neonate, not an
// infant).
var weightRanges = []struct {
	Group        AgeGroup
	MinKG, MaxKG float64
}{
	{Neonate, 0.5, 5.0},
	{Infant, 5.0, 15.0},
	{Toddler, 15.0, 25.0},
	{Child, 25.0, 50.0},
	{Adolescent, 50.0, 100.0},
}

// GroupForWeight returns the age group whose weight range contains the
// given weight, inclusive of both bounds.
func GroupForWeight(weightKG float64) (AgeGroup, bool) {
	for _, r := range weightRanges {
		if weightKG >= r.MinKG && weightKG <= r.MaxKG {
			return r.Group, true
		}
	}
	return "", false
}

var doseFactors = map[AgeGroup]float64{
	Neonate:    0.02,
	Infant:     0.05,
	Toddler:    0.10,
	Child:      0.15,
	Adolescent: 0.75,
}

// DoseFactor returns the fraction of an adult dose appropriate for the
// weight. Weights outside every age-group range get the adult factor 1.0.
func DoseFactor(weightKG float64) float64 {
	g, ok := GroupForWeight(weightKG)
	if !ok {
		return 1.0
	}
	return doseFactors[g]
}

// scanTimeCeilingSec is the maximum recommended dwell per bed position in
// seconds.
var scanTimeCeilingSec = map[AgeGroup]float64{
	Neonate:    30.0,
	Infant:     60.0,
	Toddler:    120.0,
	Child:      180.0,
	Adolescent: 240.0,
}

// defaultScanTimeCeilingSec applies when a pediatric weight falls outside
// every age-group range.
const defaultScanTimeCeilingSec = 180.0

// ScanTimeCeilingSec returns the maximum recommended dwell per bed
// position for the weight, in seconds.
func ScanTimeCeilingSec(weightKG float64) float64 {
	g, ok := GroupForWeight(weightKG)
	if !ok {
		return defaultScanTimeCeilingSec
	}
	return scanTimeCeilingSec[g]
}

var lbmFactors = map[AgeGroup]float64{
	Neonate:    0.85,
	Infant:     0.80,
	Toddler:    0.75,
	Child:      0.70,
	Adolescent: 0.65,
}

// LBMFactor returns the lean-body-mass fraction of total weight for the
// age group.
func LBMFactor(g AgeGroup) float64 {
	if f, ok := lbmFactors[g]; ok {
		return f
	}
	return 0.70
}

// snrTargetBase is the base pediatric SNR target per tracer.
var snrTargetBase = map[device.Tracer]float64{
	device.FDG:  8.0,
	device.PSMA: 10.0,
}

// SNRTarget returns the pediatric-adjusted SNR target for the tracer and
// weight. The base per-tracer target is scaled by the dose factor
// relative to the child reference (0.15) and clamped to [5, 12]: smaller
// children tolerate a lower image-quality target in exchange for dose and
// time.
func SNRTarget(t device.Tracer, weightKG float64) float64 {
	base, ok := snrTargetBase[t]
	if !ok {
		base = 8.0
	}

	adjusted := base * (0.8 + 0.4*(DoseFactor(weightKG)/0.15))

	if adjusted < 5.0 {
		return 5.0
	}
	if adjusted > 12.0 {
		return 12.0
	}
	return adjusted
}

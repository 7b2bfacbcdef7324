// Package physics implements the NEC-based acquisition model for
// continuous-bed-motion PET: decay correction, body-composition
// normalization, the SNR prediction model, site calibration, and the
// three protocol solvers (standard, low-dose, fast).
//
// Every function is pure. Input domain violations (negative elapsed time,
// residual exceeding the injection, implausible height/weight ratios) are
// clamped to physically sane boundary values rather than rejected: the
// clinical workflow must never halt on an imperfect entry.
package physics

import (
	"math"
	"time"

	"github.com/petplan/petplan/device"
	"github.com/petplan/petplan/pediatric"
)

// Sex is the declared sex category of the patient. It only selects the
// adult lean-body-mass formula branch; the pediatric decision is
// weight-driven and never consults it.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
	// PediatricUnspecified is the declared category for pediatric
	// patients whose sex was not recorded.
	PediatricUnspecified Sex = "pediatric"
)

// necFloor keeps square roots and divisions off zero.
const necFloor = 1e-9

// EffectiveActivity decay-corrects the injected activity to the scan
// start. A scan start before the injection clamps the elapsed time to
// zero, and a residual exceeding the injection clamps the pre-decay
// activity to zero.
func EffectiveActivity(injectedMBq float64, injTime, scanStart time.Time, tracer device.Tracer, residualMBq float64) float64 {
	lambda := math.Ln2 / device.HalfLifeMinutes(tracer)
	dtMin := math.Max(scanStart.Sub(injTime).Minutes(), 0)
	a0 := math.Max(injectedMBq-residualMBq, 0)

	return a0 * math.Exp(-lambda*dtMin)
}

// BMI computes body mass index from weight in kg and height in cm.
func BMI(weightKG, heightCM float64) float64 {
	hM := heightCM / 100.0
	if hM <= 0 {
		return 0
	}
	return weightKG / (hM * hM)
}

// LeanBodyMass estimates lean body mass in kg. Pediatric weights use the
// age-group LBM factor when the weight falls in a group range, and fixed
// weight-tier fractions otherwise. Adults use the Boer formula, branched
// on the declared sex and floored at 30 kg to guard against implausible
// height/weight ratios.
func LeanBodyMass(weightKG, heightCM float64, sex Sex) float64 {
	if pediatric.IsPediatric(weightKG) {
		if g, ok := pediatric.GroupForWeight(weightKG); ok {
			return weightKG * pediatric.LBMFactor(g)
		}
		switch {
		case weightKG < 10:
			return weightKG * 0.85
		case weightKG < 30:
			return weightKG * 0.80
		default:
			return weightKG * 0.75
		}
	}

	var lbm float64
	if sex == Male {
		lbm = 1.10*weightKG - 128*math.Pow(weightKG/heightCM, 2)
	} else {
		lbm = 1.07*weightKG - 148*math.Pow(weightKG/heightCM, 2)
	}

	return math.Max(lbm, 30.0)
}

// BMI multiplier reference and cap.
const (
	bmiRef = 22.0
	bmiCap = 40.0
)

// BMIMultiplier is the attenuation/scatter time penalty for body
// habitus, >= 1.0. BMI is capped at 40 before comparison; at or below
// the reference BMI of 22 the multiplier is exactly 1.0. The exponent is
// tracer-dependent (empirical: 0.6 for FDG, 0.4 for PSMA). The caller
// applies this exactly once per protocol calculation.
func BMIMultiplier(bmi float64, tracer device.Tracer) float64 {
	exp := 0.6
	if tracer == device.PSMA {
		exp = 0.4
	}

	eff := math.Min(bmi, bmiCap)
	if eff <= bmiRef {
		return 1.0
	}
	return math.Pow(eff/bmiRef, exp)
}

// NEC returns noise-equivalent counts for an activity held over a dwell
// time.
func NEC(activityMBq, dwellSec float64, tracer device.Tracer) float64 {
	return activityMBq * dwellSec * device.SystemSensitivity(tracer)
}

// SNRFromNEC converts noise-equivalent counts to a raw SNR under a
// reconstruction gain. The floor keeps a zero or negative NEC out of the
// square root.
func SNRFromNEC(nec, reconGain float64) float64 {
	return math.Sqrt(math.Max(nec, necFloor)) * reconGain
}

// CalibrateK derives the site calibration constant k from a reference
// scan: k is the ratio of the SNR the site actually observes to the SNR
// the literature sensitivity predicts at the reference NEC. k is floored
// at a small epsilon so a downstream division can never blow up, and is
// tracer- and reconstruction-profile-specific.
func CalibrateK(tRefSec, aRefMBq, reconGain, snrRefSite float64, tracer device.Tracer) float64 {
	necRef := aRefMBq * tRefSec * device.SystemSensitivity(tracer)
	k := snrRefSite / (math.Sqrt(math.Max(necRef, necFloor)) * reconGain)

	return math.Max(k, necFloor)
}

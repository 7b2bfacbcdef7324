package physics

import (
	"math"

	"github.com/petplan/petplan/device"
	"github.com/petplan/petplan/pediatric"
)

// Solution is one protocol variant's acquisition parameters. DwellSec is
// always re-derived from the rounded, clamped velocity, so the two
// reported numbers stay mutually consistent even though the rounding
// re-introduces a small deviation from the dwell the solver asked for.
type Solution struct {
	VelocityMMPerSec float64
	DwellSec         float64
	ScanMinutes      float64
	SNRPred          float64
	// COVPred is 1/SNRPred, or NaN when the predicted SNR is not
	// positive.
	COVPred float64
}

// StandardSolution adds the standard protocol's convergence check: the
// achieved SNR after velocity rounding is within 0.3 of the target.
type StandardSolution struct {
	Solution
	Converged bool
}

// LowDoseSolution carries the recomputed literature activity alongside
// the acquisition parameters. Converged here means the solver did not
// saturate at the velocity floor; it is deliberately a different check
// than the standard protocol's SNR tolerance.
type LowDoseSolution struct {
	Solution
	ActivityMBq float64
	Converged   bool
}

// finish clamps the velocity implied by the requested dwell to the device
// envelope, rounds it to one decimal, re-derives the dwell from the
// rounded velocity, and predicts SNR/COV at that final dwell.
func finish(dwellSec, activityMBq, k, reconGain, scanRangeMM float64, tracer device.Tracer) Solution {
	v := device.AxialFOVMM / math.Max(dwellSec, 1e-6)
	v = math.Max(device.VelocityMinMMPerSec, math.Min(v, device.VelocityMaxMMPerSec))
	v = math.Round(v*10) / 10

	dwell := device.AxialFOVMM / v

	snr := k * SNRFromNEC(NEC(activityMBq, dwell, tracer), reconGain)
	cov := math.NaN()
	if snr > 0 {
		cov = 1.0 / snr
	}

	return Solution{
		VelocityMMPerSec: v,
		DwellSec:         dwell,
		ScanMinutes:      (scanRangeMM / v) / 60.0,
		SNRPred:          snr,
		COVPred:          cov,
	}
}

// SolveStandard inverts the SNR model for the dwell time that meets the
// case SNR target at the decay-corrected activity, scaled up by the BMI
// multiplier. Pediatric patients have the dwell capped at their
// age-group scan-time ceiling before the velocity clamp.
func SolveStandard(aEffMBq, k, reconGain, snrTarget, bmiMult, scanRangeMM float64, tracer device.Tracer, weightKG float64) StandardSolution {
	necReq := math.Pow(snrTarget/(math.Max(k, necFloor)*reconGain), 2)
	dwell := necReq / math.Max(aEffMBq*device.SystemSensitivity(tracer), 1e-6) * bmiMult

	if pediatric.IsPediatric(weightKG) {
		dwell = math.Min(dwell, pediatric.ScanTimeCeilingSec(weightKG))
	}

	sol := finish(dwell, aEffMBq, k, reconGain, scanRangeMM, tracer)

	return StandardSolution{
		Solution:  sol,
		Converged: math.Abs(sol.SNRPred-snrTarget) <= 0.3,
	}
}

// SolveLowDose recomputes the activity from a literature dose-per-kg
// regimen instead of the measured injection, scaled by the pediatric dose
// factor when the patient is pediatric, then inverts the SNR model the
// same way the standard protocol does.
func SolveLowDose(dosePerKG, weightKG, k, reconGain, snrTarget, bmiMult, scanRangeMM float64, tracer device.Tracer) LowDoseSolution {
	aLow := dosePerKG * weightKG
	if pediatric.IsPediatric(weightKG) {
		aLow *= pediatric.DoseFactor(weightKG)
	}

	necReq := math.Pow(snrTarget/(math.Max(k, necFloor)*reconGain), 2)
	dwell := necReq / math.Max(aLow*device.SystemSensitivity(tracer), 1e-6) * bmiMult

	if pediatric.IsPediatric(weightKG) {
		dwell = math.Min(dwell, pediatric.ScanTimeCeilingSec(weightKG))
	}

	sol := finish(dwell, aLow, k, reconGain, scanRangeMM, tracer)

	return LowDoseSolution{
		Solution:    sol,
		ActivityMBq: aLow,
		Converged:   sol.VelocityMMPerSec > device.VelocityMinMMPerSec+1e-6,
	}
}

// SolveFast is dose/time-budget driven rather than SNR driven: the dwell
// starts from the fast reference dwell scaled by the BMI multiplier.
// Pediatric patients get a dose-factor-derived reduction and a cap at
// half their age-group scan-time ceiling. The reported SNR and COV are
// predictions, not targets, so there is no convergence flag.
func SolveFast(aEffMBq, k, reconGain, bmiMult, fastRefSec, scanRangeMM float64, tracer device.Tracer, weightKG float64) Solution {
	dwell := fastRefSec * bmiMult

	if pediatric.IsPediatric(weightKG) {
		reduction := 0.5 + 0.3*(pediatric.DoseFactor(weightKG)/0.15)
		dwell *= reduction
		dwell = math.Min(dwell, pediatric.ScanTimeCeilingSec(weightKG)*0.5)
	}

	return finish(dwell, aEffMBq, k, reconGain, scanRangeMM, tracer)
}

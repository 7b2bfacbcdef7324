package physics

import (
	"math"
	"testing"
	"time"

	"github.com/petplan/petplan/device"
)

var t0 = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func TestEffectiveActivity(t *testing.T) {
	// No elapsed time: only the residual is subtracted.
	if got := EffectiveActivity(280, t0, t0, device.FDG, 0); math.Abs(got-280) > 1e-12 {
		t.Errorf("zero elapsed = %v, want 280", got)
	}
	if got := EffectiveActivity(280, t0, t0, device.FDG, 30); math.Abs(got-250) > 1e-12 {
		t.Errorf("zero elapsed with residual = %v, want 250", got)
	}

	// A scan start before the injection clamps to zero elapsed time
	// instead of amplifying the activity.
	early := t0.Add(-45 * time.Minute)
	if got := EffectiveActivity(280, t0, early, device.FDG, 30); math.Abs(got-250) > 1e-12 {
		t.Errorf("negative elapsed = %v, want 250", got)
	}

	// Residual exceeding the injection clamps to zero.
	if got := EffectiveActivity(100, t0, t0.Add(time.Hour), device.FDG, 150); got != 0 {
		t.Errorf("residual > injected = %v, want 0", got)
	}

	// One half-life halves the activity.
	halfLife := time.Duration(device.HalfLifeMinutes(device.FDG) * float64(time.Minute))
	if got := EffectiveActivity(280, t0, t0.Add(halfLife), device.FDG, 0); math.Abs(got-140) > 1e-6 {
		t.Errorf("one half-life = %v, want 140", got)
	}

	// Monotonically decreasing in elapsed time.
	prev := math.Inf(1)
	for _, minutes := range []int{0, 10, 30, 60, 120, 240} {
		got := EffectiveActivity(280, t0, t0.Add(time.Duration(minutes)*time.Minute), device.FDG, 0)
		if got >= prev {
			t.Fatalf("activity did not decrease at %d min: %v >= %v", minutes, got, prev)
		}
		prev = got
	}
}

func TestLeanBodyMass(t *testing.T) {
	for _, v := range []struct {
		WeightKG float64
		HeightCM float64
		Sex      Sex
		Want     float64
	}{
		// Adult Boer, male and female branches.
		{78, 172, Male, 1.10*78 - 128*math.Pow(78.0/172.0, 2)},
		{78, 172, Female, 1.07*78 - 148*math.Pow(78.0/172.0, 2)},
		// Implausible ratios are floored at 30 kg.
		{120, 100, Male, 30.0},
		// Pediatric weights use the age-group LBM factor, regardless of
		// the declared sex.
		{20, 110, Male, 20 * 0.75},
		{34, 140, Female, 34 * 0.70},
		{3, 50, PediatricUnspecified, 3 * 0.85},
		// Pediatric but outside every age-group range: weight tiers.
		{0.4, 45, PediatricUnspecified, 0.4 * 0.85},
	} {
		got := LeanBodyMass(v.WeightKG, v.HeightCM, v.Sex)
		if math.Abs(got-v.Want) > 1e-9 {
			t.Errorf("LeanBodyMass(%v, %v, %v) = %v, want %v", v.WeightKG, v.HeightCM, v.Sex, got, v.Want)
		}
	}
}

func TestBMI(t *testing.T) {
	if got, want := BMI(78, 172), 78/(1.72*1.72); math.Abs(got-want) > 1e-12 {
		t.Errorf("BMI(78, 172) = %v, want %v", got, want)
	}
	if got := BMI(78, 0); got != 0 {
		t.Errorf("BMI with zero height = %v, want 0", got)
	}
}

func TestBMIMultiplier(t *testing.T) {
	// Exactly 1.0 at and below the reference.
	if got := BMIMultiplier(22.0, device.FDG); got != 1.0 {
		t.Errorf("BMIMultiplier(22) = %v, want exactly 1.0", got)
	}
	if got := BMIMultiplier(18.0, device.FDG); got != 1.0 {
		t.Errorf("BMIMultiplier(18) = %v, want exactly 1.0", got)
	}

	// Non-decreasing up to the cap, constant above it.
	prev := 0.0
	for _, bmi := range []float64{22, 25, 30, 35, 40} {
		got := BMIMultiplier(bmi, device.FDG)
		if got < prev {
			t.Fatalf("multiplier decreased at BMI %v: %v < %v", bmi, got, prev)
		}
		prev = got
	}
	if got, capped := BMIMultiplier(55, device.FDG), BMIMultiplier(40, device.FDG); got != capped {
		t.Errorf("BMI above cap: %v, want %v", got, capped)
	}

	// The PSMA penalty exponent is softer than FDG's.
	if fdg, psma := BMIMultiplier(30, device.FDG), BMIMultiplier(30, device.PSMA); psma >= fdg {
		t.Errorf("PSMA multiplier %v should be below FDG %v", psma, fdg)
	}
}

func TestCalibrateK(t *testing.T) {
	k := CalibrateK(200, 3.7*78, 1.6, 12.0, device.FDG)
	if k <= 0 {
		t.Fatalf("k = %v, want > 0", k)
	}

	// k inverts the SNR model at the reference point: predicting SNR at
	// the reference NEC with this k must give back the site SNR.
	snr := k * SNRFromNEC(NEC(3.7*78, 200, device.FDG), 1.6)
	if math.Abs(snr-12.0) > 1e-9 {
		t.Errorf("reference round-trip SNR = %v, want 12.0", snr)
	}

	// Degenerate references are floored, not exploded.
	if k := CalibrateK(200, 288.6, 1.6, 0, device.FDG); k != 1e-9 {
		t.Errorf("zero site SNR k = %v, want epsilon floor", k)
	}
	if k := CalibrateK(0, 0, 1.6, 12.0, device.FDG); k <= 0 {
		t.Errorf("zero reference NEC k = %v, want > 0", k)
	}
}

package pediatric

import (
	"math"
	"testing"

	"github.com/petplan/petplan/device"
)

func TestIsPediatricThreshold(t *testing.T) {
	for _, v := range []struct {
		WeightKG float64
		Want     bool
	}{
		{0.5, true},
		{20.0, true},
		{34.999, true},
		// The gate is strict: 35.0 is an adult.
		{35.0, false},
		{35.001, false},
		{100.0, false},
	} {
		if got := IsPediatric(v.WeightKG); got != v.Want {
			t.Errorf("IsPediatric(%v) = %v, want %v", v.WeightKG, got, v.Want)
		}
	}
}

func TestGroupForWeight(t *testing.T) {
	for _, v := range []struct {
		WeightKG float64
		Group    AgeGroup
		OK       bool
	}{
		{0.4, "", false},
		{0.5, Neonate, true},
		{4.9, Neonate, true},
		// Shared boundaries resolve to the first (younger) range.
		{5.0, Neonate, true},
		{5.1, Infant, true},
		{15.0, Infant, true},
		{20.0, Toddler, true},
		{25.0, Toddler, true},
		{34.0, Child, true},
		{50.0, Child, true},
		{99.0, Adolescent, true},
		{100.1, "", false},
	} {
		got, ok := GroupForWeight(v.WeightKG)
		if got != v.Group || ok != v.OK {
			t.Errorf("GroupForWeight(%v) = (%v, %v), want (%v, %v)", v.WeightKG, got, ok, v.Group, v.OK)
		}
	}
}

func TestDoseFactor(t *testing.T) {
	for _, v := range []struct {
		WeightKG float64
		Want     float64
	}{
		{3.0, 0.02},
		{10.0, 0.05},
		{20.0, 0.10},
		{30.0, 0.15},
		{60.0, 0.75},
		// Outside every range: adult factor.
		{0.4, 1.0},
		{150.0, 1.0},
	} {
		if got := DoseFactor(v.WeightKG); got != v.Want {
			t.Errorf("DoseFactor(%v) = %v, want %v", v.WeightKG, got, v.Want)
		}
	}
}

func TestScanTimeCeilingSec(t *testing.T) {
	for _, v := range []struct {
		WeightKG float64
		Want     float64
	}{
		{3.0, 30.0},
		{10.0, 60.0},
		{20.0, 120.0},
		{30.0, 180.0},
		{60.0, 240.0},
		{0.4, 180.0},
	} {
		if got := ScanTimeCeilingSec(v.WeightKG); got != v.Want {
			t.Errorf("ScanTimeCeilingSec(%v) = %v, want %v", v.WeightKG, got, v.Want)
		}
	}
}

func TestSNRTarget(t *testing.T) {
	for _, v := range []struct {
		Tracer   device.Tracer
		WeightKG float64
		Want     float64
	}{
		// Neonate FDG: 8 * (0.8 + 0.4*(0.02/0.15))
		{device.FDG, 3.0, 8.0 * (0.8 + 0.4*(0.02/0.15))},
		// Child FDG sits exactly at the base * 1.2.
		{device.FDG, 30.0, 9.6},
		// Child PSMA hits the upper clamp exactly.
		{device.PSMA, 30.0, 12.0},
		// Adolescent-weight dose factor would push far past the clamp.
		{device.FDG, 60.0, 12.0},
	} {
		if got := SNRTarget(v.Tracer, v.WeightKG); math.Abs(got-v.Want) > 1e-9 {
			t.Errorf("SNRTarget(%v, %v) = %v, want %v", v.Tracer, v.WeightKG, got, v.Want)
		}
	}
}

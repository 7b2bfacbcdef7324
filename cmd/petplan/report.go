package main

import (
	"fmt"

	"github.com/petplan/petplan/device"
	"github.com/petplan/petplan/pediatric"
	"github.com/petplan/petplan/physics"
)

type reportInput struct {
	WeightKG     float64
	HeightCM     float64
	Tracer       device.Tracer
	ReconProfile string
	Gain         float64
	StdRefSec    float64
	FastRefSec   float64
	SNRRefSite   float64
	SNRTarget    float64
	ResidualMBq  float64
	Summary      physics.Summary
	Standard     physics.StandardSolution
	LowDose      physics.LowDoseSolution
	Fast         physics.Solution
}

func printReport(in reportInput) {
	fmt.Printf("Patient: weight %.1f kg | height %.1f cm | BMI %.1f | LBM %.1f kg\n",
		in.WeightKG, in.HeightCM, in.Summary.BMI, in.Summary.LBMKG)

	if pediatric.IsPediatric(in.WeightKG) {
		group := "undetermined"
		if g, ok := pediatric.GroupForWeight(in.WeightKG); ok {
			group = string(g)
		}
		fmt.Printf("Pediatric: estimated age group %s | dose factor %.2fx adult\n",
			group, pediatric.DoseFactor(in.WeightKG))
	}

	fmt.Printf("Effective activity: %.1f MBq (residual %.1f MBq; dt=%.0f min; T1/2=%.2f min)\n",
		in.Summary.AEffMBq, in.ResidualMBq, in.Summary.DeltaTMin, in.Summary.HalfLifeMin)
	fmt.Printf("Recon: %s (gain=%.2f) | k: %.5f (%s); t_ref_std=%.0fs, t_ref_fast=%.0fs\n",
		in.ReconProfile, in.Gain, in.Summary.K, in.Summary.KProvenance, in.StdRefSec, in.FastRefSec)
	fmt.Printf("SNR_ref (site): %.1f | SNR_target (case): %.1f\n",
		in.SNRRefSite, in.SNRTarget)

	printProtocol("Standard protocol", in.Summary.AEffMBq, in.Standard.Solution)
	fmt.Printf("  converged:      %v\n", in.Standard.Converged)

	printProtocol("Low-dose protocol", in.LowDose.ActivityMBq, in.LowDose.Solution)
	fmt.Printf("  converged:      %v\n", in.LowDose.Converged)

	printProtocol("Fast protocol", in.Summary.AEffMBq, in.Fast)
}

func printProtocol(title string, activityMBq float64, sol physics.Solution) {
	fmt.Println()
	fmt.Println(title)
	fmt.Printf("  activity used:  %.1f MBq\n", activityMBq)
	fmt.Printf("  bed velocity:   %.1f mm/s\n", sol.VelocityMMPerSec)
	fmt.Printf("  dwell/position: %.1f s\n", sol.DwellSec)
	fmt.Printf("  scan time:      %.1f min\n", sol.ScanMinutes)
	fmt.Printf("  predicted SNR:  %.2f\n", sol.SNRPred)
	fmt.Printf("  predicted COV:  %.3f\n", sol.COVPred)
}

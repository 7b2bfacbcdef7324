// petplan computes continuous-bed-motion PET acquisition protocols
// (standard, low-dose, and fast) for a Vision-450-class scanner from
// patient biometrics, injected activity, and timing, calibrated against
// the site's historical k measurements.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/guregu/null.v3"

	"github.com/petplan/petplan/device"
	"github.com/petplan/petplan/kstore"
	"github.com/petplan/petplan/pediatric"
	"github.com/petplan/petplan/physics"
	"github.com/petplan/petplan/sessionlog"
)

func main() {
	var (
		weightKG     float64
		heightCM     float64
		sex          string
		tracerLabel  string
		scanRangeMM  float64
		injectedMBq  float64
		injTimeStr   string
		startTimeStr string
		residualMBq  float64
		reconProfile string
		customGain   float64
		stdRefSec    float64
		fastRefSec   float64
		snrRefSite   float64
		snrTarget    float64
		lowDosePerKG float64
		useSiteK     bool
		saveK        bool
		storePath    string
		csvPath      string
	)

	flag.Float64Var(&weightKG, "weight", 78.0, "Patient weight (kg)")
	flag.Float64Var(&heightCM, "height", 172.0, "Patient height (cm)")
	flag.StringVar(&sex, "sex", "male", "Declared sex category: male, female, or pediatric")
	flag.StringVar(&tracerLabel, "tracer", "FDG", "Tracer label; anything containing PSMA selects PSMA, everything else FDG")
	flag.Float64Var(&scanRangeMM, "scan-range", 1050.0, "Scan range (mm)")
	flag.Float64Var(&injectedMBq, "injected", 280.0, "Injected activity (MBq)")
	flag.StringVar(&injTimeStr, "inject-time", "", "Injection time, most common formats accepted. Defaults to now.")
	flag.StringVar(&startTimeStr, "start-time", "", "Acquisition start time. Defaults to one hour after injection.")
	flag.Float64Var(&residualMBq, "residual", 0.0, "Residual activity left in the syringe (MBq)")
	flag.StringVar(&reconProfile, "recon", "HD_PET", fmt.Sprint("Reconstruction profile. Options: ", device.ProfileNames()))
	flag.Float64Var(&customGain, "gain", 0, "Optional custom reconstruction gain; overrides the profile gain when > 0")
	flag.Float64Var(&stdRefSec, "std-ref-dwell", 0, "Standard reference dwell per bed (s); 0 uses the per-tracer default")
	flag.Float64Var(&fastRefSec, "fast-ref-dwell", 0, "Fast reference dwell per bed (s); 0 uses the per-tracer default")
	flag.Float64Var(&snrRefSite, "snr-ref", 0, "Site reference SNR for k calibration; 0 uses the per-tracer default")
	flag.Float64Var(&snrTarget, "snr-target", 0, "Case SNR target; 0 uses the per-tracer (or pediatric-adjusted) default")
	flag.Float64Var(&lowDosePerKG, "lowdose-mbq-kg", 0, "Low-dose regimen (MBq/kg); 0 uses the per-tracer default")
	flag.BoolVar(&useSiteK, "use-site-k", true, "Use the site's stored median k when history exists")
	flag.BoolVar(&saveK, "save-k", false, "Append the freshly calibrated k to the site store")
	flag.StringVar(&storePath, "store", "k_store.json", "Path to the site k store")
	flag.StringVar(&csvPath, "csv", "", "Optional: write the session log to this CSV file")
	flag.Parse()

	// Out-of-domain entries are clamped to the entry form's bounds, not
	// rejected: a calculation must always come back.
	weightKG = clampInput("weight", weightKG, 0.5)
	heightCM = clampInput("height", heightCM, 30.0)
	injectedMBq = clampInput("injected", injectedMBq, 1.0)
	scanRangeMM = clampInput("scan-range", scanRangeMM, 50.0)
	if residualMBq < 0 {
		residualMBq = clampInput("residual", residualMBq, 0.0)
	}

	injTime := time.Now()
	if injTimeStr != "" {
		t, err := dateparse.ParseAny(injTimeStr)
		if err != nil {
			log.Fatalln("Could not parse --inject-time:", err)
		}
		injTime = t
	}

	startTime := injTime.Add(60 * time.Minute)
	if startTimeStr != "" {
		t, err := dateparse.ParseAny(startTimeStr)
		if err != nil {
			log.Fatalln("Could not parse --start-time:", err)
		}
		startTime = t
	}

	tracer := device.TracerFromLabel(tracerLabel)
	gain := device.GainFor(reconProfile, null.NewFloat(customGain, customGain > 0))

	if stdRefSec <= 0 {
		stdRefSec = device.StdDwellRefSec[tracer]
	}
	if fastRefSec <= 0 {
		fastRefSec = device.FastDwellRefSec[tracer]
	}
	if snrRefSite <= 0 {
		snrRefSite = device.SNRRefSiteDefault[tracer]
	}
	if lowDosePerKG <= 0 {
		lowDosePerKG = device.LowDosePerKG[tracer]
	}
	if snrTarget <= 0 {
		if pediatric.IsPediatric(weightKG) {
			snrTarget = pediatric.SNRTarget(tracer, weightKG)
		} else {
			snrTarget = device.SNRTargetDefault[tracer]
		}
	}

	aEff := physics.EffectiveActivity(injectedMBq, injTime, startTime, tracer, residualMBq)
	bmi := physics.BMI(weightKG, heightCM)
	lbm := physics.LeanBodyMass(weightKG, heightCM, physics.Sex(sex))
	bmiMult := physics.BMIMultiplier(bmi, tracer)

	// k from a fresh reference-scan calibration, replaced by the site
	// median when requested and history exists.
	aRef := device.RefDosePerKG[tracer] * weightKG
	kFresh := physics.CalibrateK(stdRefSec, aRef, gain, snrRefSite, tracer)
	k, kProvenance := kFresh, "fresh calibration"

	store := kstore.New(storePath)
	history, status := store.Load()
	if status == kstore.LoadParseError {
		log.Println("warning: k store unreadable; continuing with an empty history")
	}
	if useSiteK {
		if sum, ok := kstore.Summarize(history, tracer, reconProfile); ok {
			k = sum.Median
			kProvenance = fmt.Sprintf("site median(n=%d)", sum.N)
		}
	}

	summary := physics.Summary{
		AEffMBq:     aEff,
		DeltaTMin:   maxFloat(startTime.Sub(injTime).Minutes(), 0),
		HalfLifeMin: device.HalfLifeMinutes(tracer),
		BMI:         bmi,
		LBMKG:       lbm,
		K:           k,
		KProvenance: kProvenance,
	}

	std := physics.SolveStandard(aEff, k, gain, snrTarget, bmiMult, scanRangeMM, tracer, weightKG)
	low := physics.SolveLowDose(lowDosePerKG, weightKG, k, gain, snrTarget, bmiMult, scanRangeMM, tracer)
	fast := physics.SolveFast(aEff, k, gain, bmiMult, fastRefSec, scanRangeMM, tracer, weightKG)

	printReport(reportInput{
		WeightKG:     weightKG,
		HeightCM:     heightCM,
		Tracer:       tracer,
		ReconProfile: reconProfile,
		Gain:         gain,
		StdRefSec:    stdRefSec,
		FastRefSec:   fastRefSec,
		SNRRefSite:   snrRefSite,
		SNRTarget:    snrTarget,
		ResidualMBq:  residualMBq,
		Summary:      summary,
		Standard:     std,
		LowDose:      low,
		Fast:         fast,
	})

	if saveK {
		if _, err := store.AddMeasurement(history, tracer, reconProfile, kFresh); err != nil {
			log.Println("warning: could not persist k measurement:", err)
		}
	}

	if csvPath != "" {
		writeSessionCSV(csvPath, tracer, reconProfile, k, aEff, std, low, fast)
	}
}

// clampInput pulls an out-of-range flag value up to its floor, with a
// note to the operator.
func clampInput(name string, v, floor float64) float64 {
	if v < floor {
		log.Printf("warning: --%s %.2f below %.2f; clamped\n", name, v, floor)
		return floor
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func writeSessionCSV(path string, tracer device.Tracer, reconProfile string, k, aEff float64, std physics.StandardSolution, low physics.LowDoseSolution, fast physics.Solution) {
	now := sessionlog.Timestamp(time.Now())

	slog := &sessionlog.Log{}
	slog.Add(runRow(now, tracer, reconProfile, "standard", aEff, k, std.Solution))
	slog.Add(runRow(now, tracer, reconProfile, "low-dose", low.ActivityMBq, k, low.Solution))
	slog.Add(runRow(now, tracer, reconProfile, "fast", aEff, k, fast))

	f, err := os.Create(path)
	if err != nil {
		log.Println("warning: could not create session log:", err)
		return
	}
	defer f.Close()

	if err := slog.WriteCSV(f); err != nil {
		log.Println("warning: could not write session log:", err)
	}
}

func runRow(ts sessionlog.Timestamp, tracer device.Tracer, reconProfile, protocol string, activityMBq, k float64, sol physics.Solution) sessionlog.Run {
	return sessionlog.Run{
		Timestamp:        ts,
		Tracer:           string(tracer),
		ReconProfile:     reconProfile,
		Protocol:         protocol,
		ActivityMBq:      activityMBq,
		VelocityMMPerSec: sol.VelocityMMPerSec,
		DwellSec:         sol.DwellSec,
		ScanMinutes:      sol.ScanMinutes,
		SNRPred:          sol.SNRPred,
		COVPred:          sol.COVPred,
		K:                k,
	}
}

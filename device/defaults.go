package device

// Site defaults from the characterization of the reference installation.
// These seed CLI flag defaults; every one can be overridden per run.
var (
	// SNRTargetDefault is the default case SNR target per tracer.
	SNRTargetDefault = map[Tracer]float64{FDG: 12.0, PSMA: 14.0}

	// SNRRefSiteDefault is the default site reference SNR used when
	// calibrating k from a reference scan.
	SNRRefSiteDefault = map[Tracer]float64{FDG: 12.0, PSMA: 14.0}

	// StdDwellRefSec and FastDwellRefSec are the reference dwell times
	// per bed position, in seconds.
	StdDwellRefSec  = map[Tracer]float64{FDG: 200.0, PSMA: 240.0}
	FastDwellRefSec = map[Tracer]float64{FDG: 120.0, PSMA: 150.0}

	// RefDosePerKG is the reference injected dose per kg (MBq/kg) used
	// to reconstruct the calibration reference activity.
	RefDosePerKG = map[Tracer]float64{FDG: 3.7, PSMA: 2.5}

	// LowDosePerKG is the literature low-dose regimen (MBq/kg).
	LowDosePerKG = map[Tracer]float64{FDG: 2.5, PSMA: 1.5}
)

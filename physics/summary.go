package physics

// Summary is the derived per-calculation context handed to the display
// side alongside the protocol solutions.
type Summary struct {
	AEffMBq     float64
	DeltaTMin   float64
	HalfLifeMin float64
	BMI         float64
	LBMKG       float64
	K           float64
	// KProvenance records where the calibration constant came from,
	// e.g. "fresh calibration" or "site median(n=7)".
	KProvenance string
}

// Package sessionlog accumulates one row per computed protocol variant
// during an operator session and exports the session as CSV.
package sessionlog

import (
	"io"
	"time"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// Timestamp renders as a minute-resolution clock time in the CSV.
type Timestamp time.Time

func (t Timestamp) String() string {
	return time.Time(t).Format("2006-01-02 15:04")
}

// MarshalCSV implements the gocsv field marshaller.
func (t Timestamp) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Run is one computed protocol variant.
type Run struct {
	Timestamp        Timestamp `csv:"timestamp"`
	Tracer           string    `csv:"tracer"`
	ReconProfile     string    `csv:"recon_profile"`
	Protocol         string    `csv:"protocol"`
	ActivityMBq      float64   `csv:"activity_mbq"`
	VelocityMMPerSec float64   `csv:"velocity_mm_s"`
	DwellSec         float64   `csv:"dwell_s"`
	ScanMinutes      float64   `csv:"scan_min"`
	SNRPred          float64   `csv:"snr_pred"`
	COVPred          float64   `csv:"cov_pred"`
	K                float64   `csv:"k"`
}

// Log is the per-session accumulator.
type Log struct {
	runs []Run
}

func (l *Log) Add(r Run) {
	l.runs = append(l.runs, r)
}

func (l *Log) Len() int {
	return len(l.runs)
}

func (l *Log) Runs() []Run {
	return l.runs
}

// WriteCSV writes the whole session, header included.
func (l *Log) WriteCSV(w io.Writer) error {
	if err := gocsv.Marshal(l.runs, w); err != nil {
		return pfx.Err(err)
	}

	return nil
}

package sessionlog

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestWriteCSV(t *testing.T) {
	ts := Timestamp(time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC))

	l := &Log{}
	l.Add(Run{
		Timestamp:        ts,
		Tracer:           "FDG",
		ReconProfile:     "HD_PET",
		Protocol:         "standard",
		ActivityMBq:      191.7,
		VelocityMMPerSec: 1.0,
		DwellSec:         263.0,
		ScanMinutes:      17.5,
		SNRPred:          11.84,
		COVPred:          0.084,
		K:                0.00033,
	})
	l.Add(Run{Timestamp: ts, Tracer: "FDG", ReconProfile: "HD_PET", Protocol: "fast"})

	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}

	var buf bytes.Buffer
	if err := l.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), buf.String())
	}

	header := "timestamp,tracer,recon_profile,protocol,activity_mbq,velocity_mm_s,dwell_s,scan_min,snr_pred,cov_pred,k"
	if lines[0] != header {
		t.Errorf("header = %q, want %q", lines[0], header)
	}

	if !strings.HasPrefix(lines[1], "2024-06-01 09:30,FDG,HD_PET,standard,") {
		t.Errorf("row = %q, want the minute-resolution timestamp and protocol first", lines[1])
	}
}

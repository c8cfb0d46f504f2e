package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBar_NonTTYPrintsOnlyCompletion(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(10, "Importing rows")
	p.SetWriter(buf)

	for i := 1; i < 10; i++ {
		p.SetCurrent(i)
	}
	if buf.Len() != 0 {
		t.Errorf("non-TTY progress should stay quiet before completion, got %q", buf.String())
	}

	p.SetCurrent(10)
	out := buf.String()
	if !strings.Contains(out, "100%") || !strings.Contains(out, "Importing rows") {
		t.Errorf("completion line missing, got %q", out)
	}
}

func TestProgressBar_FinishDoesNotDuplicate(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(3, "rows")
	p.SetWriter(buf)

	p.SetCurrent(3)
	p.Finish()

	if n := strings.Count(buf.String(), "100%"); n != 1 {
		t.Errorf("expected exactly one completion line, got %d in %q", n, buf.String())
	}
}

func TestProgressBar_FinishEarly(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(50, "rows")
	p.SetWriter(buf)

	p.SetCurrent(10)
	p.Finish()

	if !strings.Contains(buf.String(), "100%") {
		t.Errorf("Finish should draw the completed bar, got %q", buf.String())
	}
}

func TestProgressBar_ClampsAndFills(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(4, "rows")
	p.SetWriter(buf)

	p.SetCurrent(99)
	out := buf.String()
	if !strings.Contains(out, "[=======================================>]") {
		t.Errorf("full bar expected, got %q", out)
	}
}

func TestProgressBar_ZeroTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(0, "nothing")
	p.SetWriter(buf)

	p.Finish()
	if !strings.Contains(buf.String(), "100%") {
		t.Errorf("zero-total bar should finish at 100%%, got %q", buf.String())
	}
}

func TestSpinner_NonTTY(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Reading groceries.csv")
	s.SetWriter(buf)

	s.Start()
	s.Start()
	s.Stop()
	s.Stop()

	if got := buf.String(); got != "Reading groceries.csv...\n" {
		t.Errorf("non-TTY spinner output = %q", got)
	}
}

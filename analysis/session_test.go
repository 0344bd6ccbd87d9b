package analysis

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/YuminosukeSato/scoreknn/pkg/errors"
	"github.com/YuminosukeSato/scoreknn/pkg/log"
)

// record fills s with n observations. Feature 0 separates the labels into two
// distant clusters; features 1 and 2 are label-independent.
func record(s *Session[string], n int, constantThird bool) {
	for i := 0; i < n; i++ {
		label, f1 := "lo", float64(i)
		if i%2 == 1 {
			label, f1 = "hi", float64(1000+i)
		}
		f2 := float64((i * 7) % 13)
		f3 := float64((i * 31) % 17)
		if constantThird {
			f3 = 4
		}
		s.Record(f1, f2, f3, label)
	}
}

func quietSession(opts ...Option) (*Session[string], *log.TestLogger) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	return NewSession[string](append([]Option{WithLogger(logger)}, opts...)...), logger
}

func TestSessionRecord(t *testing.T) {
	s, _ := quietSession()
	if s.Len() != 0 {
		t.Fatalf("new session Len() = %d", s.Len())
	}

	s.Record(1, 2, 3, "a")
	s.Record(4, 5, 6, "b")

	obs := s.Observations()
	if len(obs) != 2 {
		t.Fatalf("Observations() len = %d, want 2", len(obs))
	}
	if obs[0].Label != "a" || obs[1].Features[2] != 6 {
		t.Errorf("observations out of order: %+v", obs)
	}

	// the snapshot is a copy
	obs[0].Label = "changed"
	if s.Observations()[0].Label != "a" {
		t.Error("mutating the snapshot changed the log")
	}

	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d", s.Len())
	}
}

func TestSessionRecordConcurrent(t *testing.T) {
	s, _ := quietSession()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Record(float64(i), 0, 0, "x")
			}
		}()
	}
	wg.Wait()

	if s.Len() != 800 {
		t.Errorf("Len() = %d, want 800", s.Len())
	}
}

func TestRunPredictiveFeature(t *testing.T) {
	s, logger := quietSession(WithRandomState(7))
	record(s, 200, false)

	report, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(report.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(report.Results))
	}
	if report.TestSetSize != DefaultTestSetSize || report.K != DefaultK || report.Samples != 200 {
		t.Errorf("unexpected report header %+v", report)
	}

	for i, res := range report.Results {
		if res.Feature != i {
			t.Errorf("result %d has feature %d", i, res.Feature)
		}
		if !res.OK() {
			t.Fatalf("feature %d failed: %v", i, res.Err)
		}
		if res.Accuracy < 0 || res.Accuracy > 1 {
			t.Errorf("feature %d accuracy %v out of range", i, res.Accuracy)
		}
		if res.TestSamples != 50 || res.TrainSamples != 150 {
			t.Errorf("feature %d split %d/%d", i, res.TestSamples, res.TrainSamples)
		}
		if float64(res.Correct)/50 != res.Accuracy {
			t.Errorf("feature %d accuracy %v does not match %d correct", i, res.Accuracy, res.Correct)
		}
	}

	if report.Results[0].Accuracy < 0.9 {
		t.Errorf("feature 0 accuracy = %v, want >= 0.9", report.Results[0].Accuracy)
	}
	best, ok := report.Best()
	if !ok || best.Feature != 0 {
		t.Errorf("Best() = %+v, %v", best, ok)
	}

	if !logger.ContainsMessage("Feature evaluated") {
		t.Error("expected per-feature log entries")
	}
	if !logger.ContainsField(log.FeatureKey, float64(2)) {
		t.Error("expected a log entry for feature 2")
	}
}

func TestRunMinimumObservations(t *testing.T) {
	s, _ := quietSession(WithRandomState(11))
	record(s, DefaultTestSetSize+1, false)

	report, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// 26 "lo" and 25 "hi" rows. The single training row decides every
	// prediction: a "lo" row leaves 25 matching test rows, a "hi" row 24.
	for _, res := range report.Results {
		if !res.OK() {
			t.Fatalf("feature %d failed: %v", res.Feature, res.Err)
		}
		if res.TrainSamples != 1 {
			t.Errorf("feature %d trained on %d rows, want 1", res.Feature, res.TrainSamples)
		}
		if res.Correct != 24 && res.Correct != 25 {
			t.Errorf("feature %d: %d correct, want 24 or 25", res.Feature, res.Correct)
		}
	}
}

func TestRunSeededIsReproducible(t *testing.T) {
	run := func() *Report {
		s, _ := quietSession(WithRandomState(42), WithTestSetSize(20), WithK(3))
		record(s, 60, false)
		report, err := s.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return report
	}

	a, b := run(), run()
	for i := range a.Results {
		if a.Results[i].Correct != b.Results[i].Correct {
			t.Errorf("feature %d: %d vs %d correct", i, a.Results[i].Correct, b.Results[i].Correct)
		}
	}
}

func TestRunInsufficientData(t *testing.T) {
	s, logger := quietSession()
	record(s, DefaultTestSetSize, false)

	report, err := s.Run(context.Background())
	var insErr *errors.InsufficientDataError
	if !errors.As(err, &insErr) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if insErr.Required != DefaultTestSetSize+1 || insErr.Got != DefaultTestSetSize {
		t.Errorf("unexpected error fields %+v", insErr)
	}

	if report == nil || len(report.Results) != 3 {
		t.Fatalf("expected a failed result per feature, got %+v", report)
	}
	for _, res := range report.Results {
		if res.OK() || res.Accuracy != 0 {
			t.Errorf("feature %d should have failed: %+v", res.Feature, res)
		}
	}
	if !logger.ContainsField(log.ErrorCodeKey, log.ErrorInsufficientData) {
		t.Error("expected an INSUFFICIENT_DATA log entry")
	}
}

func TestRunDegenerateFeatureIsIsolated(t *testing.T) {
	s, logger := quietSession(WithRandomState(1))
	record(s, 120, true)

	report, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var degErr *errors.DegenerateColumnError
	if !errors.As(report.Results[2].Err, &degErr) {
		t.Fatalf("feature 2: expected DegenerateColumnError, got %v", report.Results[2].Err)
	}
	if report.Results[2].Accuracy != 0 {
		t.Errorf("failed feature accuracy = %v", report.Results[2].Accuracy)
	}
	for _, res := range report.Results[:2] {
		if !res.OK() {
			t.Errorf("feature %d failed: %v", res.Feature, res.Err)
		}
	}
	if failed := report.Failed(); len(failed) != 1 || failed[0].Feature != 2 {
		t.Errorf("Failed() = %+v", failed)
	}
	if !logger.ContainsField(log.ErrorCodeKey, log.ErrorDegenerateColumn) {
		t.Error("expected a DEGENERATE_COLUMN log entry")
	}
}

func TestRunCombinedFeatures(t *testing.T) {
	s, _ := quietSession(WithRandomState(3), WithCombinedFeatures())
	record(s, 120, false)

	report, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(report.Results))
	}
	all := report.Results[3]
	if all.Feature != AllFeatures || all.Name() != "all" || !all.OK() {
		t.Errorf("unexpected combined result %+v", all)
	}
}

func TestRunCancelled(t *testing.T) {
	s, _ := quietSession()
	record(s, 100, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := s.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(report.Results) != 0 {
		t.Errorf("expected no results, got %d", len(report.Results))
	}
}

func TestRunInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"zero test set", []Option{WithTestSetSize(0)}},
		{"zero k", []Option{WithK(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := quietSession(tt.opts...)
			record(s, 100, false)
			_, err := s.Run(context.Background())
			var valErr *errors.ValidationError
			if !errors.As(err, &valErr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestReportWriteTo(t *testing.T) {
	report := &Report{Results: []FeatureResult{
		{Feature: 0, Accuracy: 0.92},
		{Feature: 1, Accuracy: 0.5},
		{Feature: 2, Err: errors.New("column is constant")},
		{Feature: AllFeatures, Accuracy: 0.88},
	}}

	var buf bytes.Buffer
	n, err := report.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, wrote %d bytes", n, buf.Len())
	}

	want := []string{
		"for feature of 0 accuracy is 0.92",
		"for feature of 1 accuracy is 0.5",
		"for feature of 2 analysis failed: column is constant",
		"for feature of all accuracy is 0.88",
	}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), len(want), buf.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReportBestSkipsFailures(t *testing.T) {
	report := &Report{Results: []FeatureResult{
		{Feature: 0, Err: errors.New("boom")},
		{Feature: 1, Accuracy: 0.6},
		{Feature: 2, Accuracy: 0.6},
	}}
	best, ok := report.Best()
	if !ok || best.Feature != 1 {
		t.Errorf("Best() = %+v, %v; want feature 1", best, ok)
	}

	if _, ok := (&Report{}).Best(); ok {
		t.Error("Best() on an empty report should report false")
	}
}

package analysis

import (
	"fmt"
	"io"
	"strconv"
)

// FeatureResult is the outcome of evaluating one feature.
// When Err is set the evaluation was aborted and Accuracy is 0.
type FeatureResult struct {
	Feature      int
	Accuracy     float64
	Correct      int
	TestSamples  int
	TrainSamples int
	Err          error
}

// OK reports whether the evaluation completed.
func (r FeatureResult) OK() bool {
	return r.Err == nil
}

// Name is the printable feature index, "all" for AllFeatures.
func (r FeatureResult) Name() string {
	if r.Feature == AllFeatures {
		return "all"
	}
	return strconv.Itoa(r.Feature)
}

// Report collects the results of one Run.
type Report struct {
	TestSetSize int
	K           int
	Samples     int
	Results     []FeatureResult
}

// Best returns the successful result with the highest accuracy.
// The earliest feature wins ties.
func (r *Report) Best() (FeatureResult, bool) {
	var (
		best  FeatureResult
		found bool
	)
	for _, res := range r.Results {
		if !res.OK() {
			continue
		}
		if !found || res.Accuracy > best.Accuracy {
			best, found = res, true
		}
	}
	return best, found
}

// Failed returns the results whose evaluation was aborted.
func (r *Report) Failed() []FeatureResult {
	var failed []FeatureResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// WriteTo prints one line per feature.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, res := range r.Results {
		var (
			n   int
			err error
		)
		if res.OK() {
			n, err = fmt.Fprintf(w, "for feature of %s accuracy is %g\n", res.Name(), res.Accuracy)
		} else {
			n, err = fmt.Fprintf(w, "for feature of %s analysis failed: %v\n", res.Name(), res.Err)
		}
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Package scoreknn measures how well individual observation features predict
// a label, using k-nearest-neighbors classification.
//
// Observations arrive from an event source as three numeric features plus a
// label. For each feature the analysis min-max scales that column, holds out
// a random test set, classifies every test row by a vote of its k nearest
// training rows and reports the fraction classified correctly.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//	    "os"
//
//	    "github.com/YuminosukeSato/scoreknn/analysis"
//	)
//
//	func main() {
//	    s := analysis.NewSession[int](analysis.WithRandomState(42))
//	    for _, d := range drops {
//	        s.Record(d.Position, d.Bounciness, d.Size, d.Bucket)
//	    }
//
//	    report, err := s.Run(context.Background())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    report.WriteTo(os.Stdout)
//	}
//
// # Packages
//
//   - analysis: observation log, per-feature evaluation and the Report
//   - core/dataset: observations, labeled rows and datasets
//   - core/model: estimator interfaces and base types
//   - core/parallel: chunked parallel loops
//   - metrics: Euclidean distance and accuracy
//   - preprocessing: MinMaxScaler
//   - sklearn/model_selection: TrainTestSplit
//   - sklearn/neighbors: Kneighbors, Vote, Classify and KNeighborsClassifier
//   - report: accuracy bar charts
//   - pkg/errors, pkg/log: error types, warnings and structured logging
//
// # Error Handling
//
// Failures are typed. Use errors.As to inspect them:
//
//	var degErr *errors.DegenerateColumnError
//	if errors.As(res.Err, &degErr) {
//	    fmt.Println("constant column", degErr.Column)
//	}
//
// A failing feature does not abort the analysis; its FeatureResult carries
// the error and an accuracy of 0.
package scoreknn

package analysis

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/YuminosukeSato/scoreknn/core/dataset"
	"github.com/YuminosukeSato/scoreknn/metrics"
	"github.com/YuminosukeSato/scoreknn/pkg/errors"
	"github.com/YuminosukeSato/scoreknn/pkg/log"
	"github.com/YuminosukeSato/scoreknn/preprocessing"
	"github.com/YuminosukeSato/scoreknn/sklearn/model_selection"
	"github.com/YuminosukeSato/scoreknn/sklearn/neighbors"
)

// AllFeatures is the Feature value of the joint evaluation of every feature.
const AllFeatures = -1

type runner[L comparable] struct {
	cfg config
	rng *rand.Rand
}

func newRunner[L comparable](cfg config) *runner[L] {
	r := &runner[L]{cfg: cfg}
	if cfg.seeded {
		r.rng = rand.New(rand.NewPCG(cfg.seed, cfg.seed))
	}
	return r
}

func (r *runner[L]) features() []int {
	features := make([]int, 0, dataset.NumObservationFeatures+1)
	for f := 0; f < dataset.NumObservationFeatures; f++ {
		features = append(features, f)
	}
	if r.cfg.combined {
		features = append(features, AllFeatures)
	}
	return features
}

func (r *runner[L]) run(ctx context.Context, obs []dataset.Observation[L]) (*Report, error) {
	if r.cfg.testSetSize <= 0 {
		return nil, errors.NewValidationError("test_set_size", "must be positive", r.cfg.testSetSize)
	}
	if r.cfg.k <= 0 {
		return nil, errors.NewValidationError("n_neighbors", "must be positive", r.cfg.k)
	}

	report := &Report{TestSetSize: r.cfg.testSetSize, K: r.cfg.k, Samples: len(obs)}

	// the training set needs at least one row
	required := r.cfg.testSetSize + 1
	if len(obs) < required {
		err := errors.NewInsufficientDataError("analysis.Run", required, len(obs))
		for _, f := range r.features() {
			report.Results = append(report.Results, FeatureResult{Feature: f, Err: err})
		}
		r.cfg.logger.Error("Analysis aborted",
			log.ErrAttrKey, err,
			log.ErrorCodeKey, log.ErrorInsufficientData,
			log.SamplesKey, len(obs),
		)
		return report, err
	}

	for _, f := range r.features() {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, "analysis cancelled")
		}
		report.Results = append(report.Results, r.evaluate(obs, f))
	}
	return report, nil
}

func (r *runner[L]) evaluate(obs []dataset.Observation[L], feature int) FeatureResult {
	start := time.Now()
	res := FeatureResult{Feature: feature}

	err := errors.SafeExecute("analysis.feature", func() error {
		var idx []int
		if feature != AllFeatures {
			idx = []int{feature}
		}
		data, err := dataset.FromObservations(obs, idx...)
		if err != nil {
			return err
		}

		scaled, err := preprocessing.MinMax(data, data.NumFeatures())
		if err != nil {
			return err
		}

		var splitOpts []model_selection.SplitOption
		if r.rng != nil {
			splitOpts = append(splitOpts, model_selection.WithRand(r.rng))
		}
		test, train, err := model_selection.TrainTestSplit(scaled, r.cfg.testSetSize, splitOpts...)
		if err != nil {
			return err
		}

		clf := neighbors.NewKNeighborsClassifier[L](neighbors.WithNNeighbors(r.cfg.k))
		if err := clf.Fit(train); err != nil {
			return err
		}
		preds, err := clf.PredictBatch(test)
		if err != nil {
			return err
		}

		res.TestSamples = test.Len()
		res.TrainSamples = train.Len()
		res.Correct = metrics.CountCorrect(test.Labels(), preds)
		res.Accuracy = float64(res.Correct) / float64(r.cfg.testSetSize)
		return nil
	})

	fields := []any{
		log.FeatureKey, feature,
		log.NeighborsKey, r.cfg.k,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	}
	if err != nil {
		res = FeatureResult{Feature: feature, Err: err}
		r.cfg.logger.Error("Feature evaluation failed", append(fields,
			log.ErrAttrKey, err,
			log.ErrorCodeKey, errorCode(err),
		)...)
		return res
	}

	r.cfg.logger.Info("Feature evaluated", append(fields,
		log.AccuracyKey, res.Accuracy,
		log.CorrectKey, res.Correct,
		log.TestSamplesKey, res.TestSamples,
		log.TrainSamplesKey, res.TrainSamples,
	)...)
	return res
}

func errorCode(err error) string {
	var (
		dimErr *errors.DimensionError
		insErr *errors.InsufficientDataError
		degErr *errors.DegenerateColumnError
		panErr *errors.PanicError
	)
	switch {
	case errors.As(err, &degErr):
		return log.ErrorDegenerateColumn
	case errors.As(err, &insErr):
		return log.ErrorInsufficientData
	case errors.As(err, &dimErr):
		return log.ErrorDimensionMismatch
	case errors.As(err, &panErr):
		return log.ErrorPanic
	default:
		return log.ErrorInvalidInput
	}
}

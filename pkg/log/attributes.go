// Package log defines standard attribute keys for analysis runs.
//
// Using these keys keeps log lines from the splitter, the classifier and the
// analysis driver filterable by the same names. Keys follow a hierarchical
// naming convention (e.g. "model.name", "data.samples").

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of estimator.
	// Examples: "KNeighborsClassifier", "MinMaxScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "split"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is logging.
	// Examples: "analysis", "neighbors", "model_selection"
	ComponentKey = "ml.component"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows).
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns before the label).
	FeaturesKey = "data.features"

	// TestSamplesKey is the size of the held-out test set.
	TestSamplesKey = "data.test_samples"

	// TrainSamplesKey is the size of the training set.
	TrainSamplesKey = "data.train_samples"
)

// Analysis results
const (
	// FeatureKey is the observation feature index under evaluation.
	// -1 denotes all features evaluated jointly.
	FeatureKey = "analysis.feature"

	// AccuracyKey records classification accuracy in [0.0, 1.0].
	AccuracyKey = "metrics.accuracy"

	// CorrectKey is the number of correctly classified test samples.
	CorrectKey = "metrics.correct"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Hyperparameters and Configuration
const (
	// NeighborsKey records k, the number of voting neighbors.
	NeighborsKey = "hyperparams.n_neighbors"

	// RandomSeedKey records the split seed. Absent when the split is unseeded.
	RandomSeedKey = "config.random_seed"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey is the Go type of the innermost error, added by ErrFmtHandler.
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationSplit   = "split"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorInsufficientData  = "INSUFFICIENT_DATA"
	ErrorDegenerateColumn  = "DEGENERATE_COLUMN"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorPanic             = "PANIC"
)

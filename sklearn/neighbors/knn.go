// Package neighbors はk近傍法による分類を提供する。
package neighbors

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/YuminosukeSato/scoreknn/core/dataset"
	"github.com/YuminosukeSato/scoreknn/core/model"
	"github.com/YuminosukeSato/scoreknn/core/parallel"
	"github.com/YuminosukeSato/scoreknn/metrics"
	"github.com/YuminosukeSato/scoreknn/pkg/errors"
	"github.com/YuminosukeSato/scoreknn/pkg/log"
)

// parallelThreshold を超える行数のPredictBatchは並列に実行する
const parallelThreshold = 256

// Neighbor は訓練データの1行とクエリ点からの距離
type Neighbor[L comparable] struct {
	Index    int // 訓練データ内の位置
	Distance float64
	Label    L
}

// Kneighbors はpointに近い順にk個の訓練行を返す
//
// 距離が等しい場合は訓練データ内の順序を保つ（安定ソート）。
// kが訓練データ数を超える場合は全行を返す。
func Kneighbors[L comparable](train dataset.Dataset[L], point []float64, k int) ([]Neighbor[L], error) {
	if k <= 0 {
		return nil, errors.NewValidationError("n_neighbors", "must be positive", k)
	}
	if train.Len() == 0 {
		return nil, errors.NewModelError("Kneighbors", "empty training data", errors.ErrEmptyData)
	}

	neighbors := make([]Neighbor[L], train.Len())
	for i, row := range train {
		d, err := metrics.EuclideanDistance(row.Features, point)
		if err != nil {
			return nil, errors.Wrapf(err, "training row %d", i)
		}
		neighbors[i] = Neighbor[L]{Index: i, Distance: d, Label: row.Label}
	}

	slices.SortStableFunc(neighbors, func(a, b Neighbor[L]) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	return neighbors[:min(k, len(neighbors))], nil
}

// Vote は近傍のラベルで多数決を行う
//
// 最多得票のラベルを返す。得票数が同じ場合は距離の合計が小さいラベル、
// それも同じ場合は近傍リストで先に現れたラベルを選ぶ。
func Vote[L comparable](neighbors []Neighbor[L]) (L, error) {
	var zero L
	if len(neighbors) == 0 {
		return zero, errors.NewModelError("Vote", "no neighbors", errors.ErrEmptyData)
	}

	type tally struct {
		label   L
		count   int
		distSum float64
	}
	// 出現順を保持する
	var order []*tally
	byLabel := make(map[L]*tally)
	for _, n := range neighbors {
		t, ok := byLabel[n.Label]
		if !ok {
			t = &tally{label: n.Label}
			byLabel[n.Label] = t
			order = append(order, t)
		}
		t.count++
		t.distSum += n.Distance
	}

	best := order[0]
	for _, t := range order[1:] {
		if t.count > best.count || (t.count == best.count && t.distSum < best.distSum) {
			best = t
		}
	}
	return best.label, nil
}

// Classify はtrainのk近傍の多数決でpointのラベルを予測する
func Classify[L comparable](train dataset.Dataset[L], point []float64, k int) (L, error) {
	neighbors, err := Kneighbors(train, point, k)
	if err != nil {
		var zero L
		return zero, err
	}
	return Vote(neighbors)
}

// KNeighborsClassifier はscikit-learn互換のk近傍分類器
type KNeighborsClassifier[L comparable] struct {
	model.BaseEstimator

	nNeighbors int
	train      dataset.Dataset[L]
	nFeatures_ int
}

// Option はKNeighborsClassifierの設定オプション
type Option func(*knnParams)

type knnParams struct {
	nNeighbors int
}

// WithNNeighbors は投票に使う近傍数kを設定する
func WithNNeighbors(k int) Option {
	return func(p *knnParams) {
		p.nNeighbors = k
	}
}

// NewKNeighborsClassifier は新しいKNeighborsClassifierを作成する（デフォルト k=5）
func NewKNeighborsClassifier[L comparable](opts ...Option) *KNeighborsClassifier[L] {
	p := &knnParams{nNeighbors: 5}
	for _, opt := range opts {
		opt(p)
	}
	return &KNeighborsClassifier[L]{nNeighbors: p.nNeighbors}
}

// Fit は訓練データのコピーを保持する
func (c *KNeighborsClassifier[L]) Fit(train dataset.Dataset[L]) error {
	if c.nNeighbors <= 0 {
		return errors.NewValidationError("n_neighbors", "must be positive", c.nNeighbors)
	}
	if train.Len() == 0 {
		return errors.NewModelError("KNeighborsClassifier.Fit", "empty data", errors.ErrEmptyData)
	}
	if err := train.Validate(); err != nil {
		return err
	}

	if c.nNeighbors > train.Len() {
		errors.Warn(errors.NewNeighborsWarning(c.nNeighbors, train.Len()))
	}

	c.train = train.Clone()
	c.nFeatures_ = train.NumFeatures()
	c.SetFitted()

	log.GetLoggerWithName("neighbors").Debug("KNeighborsClassifier fitted",
		log.ModelNameKey, "KNeighborsClassifier",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, train.Len(),
		log.FeaturesKey, c.nFeatures_,
		log.NeighborsKey, c.nNeighbors,
	)
	return nil
}

// Kneighbors はpointのk近傍を返す
func (c *KNeighborsClassifier[L]) Kneighbors(point []float64) ([]Neighbor[L], error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("KNeighborsClassifier", "Kneighbors")
	}
	if len(point) != c.nFeatures_ {
		return nil, errors.NewDimensionError("KNeighborsClassifier.Kneighbors", c.nFeatures_, len(point), 1)
	}
	return Kneighbors(c.train, point, c.nNeighbors)
}

// Predict はpointのラベルを予測する
func (c *KNeighborsClassifier[L]) Predict(point []float64) (L, error) {
	var zero L
	if !c.IsFitted() {
		return zero, errors.NewNotFittedError("KNeighborsClassifier", "Predict")
	}
	neighbors, err := c.Kneighbors(point)
	if err != nil {
		return zero, err
	}
	return Vote(neighbors)
}

// PredictBatch はデータセットの各行のラベルを予測する
func (c *KNeighborsClassifier[L]) PredictBatch(data dataset.Dataset[L]) ([]L, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("KNeighborsClassifier", "PredictBatch")
	}
	preds := make([]L, data.Len())
	// 各行の予測は独立しているので、大きなバッチはコアごとに分割する
	err := parallel.ParallelizeWithThreshold(data.Len(), parallelThreshold, func(start, end int) error {
		for i := start; i < end; i++ {
			label, err := c.Predict(data[i].Features)
			if err != nil {
				return errors.Wrapf(err, "row %d", i)
			}
			preds[i] = label
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.GetLoggerWithName("neighbors").Debug("Batch predicted",
		log.ModelNameKey, "KNeighborsClassifier",
		log.OperationKey, log.OperationPredict,
		log.SamplesKey, data.Len(),
	)
	return preds, nil
}

// Score はdataに対する正解率を返す
func (c *KNeighborsClassifier[L]) Score(data dataset.Dataset[L]) (float64, error) {
	preds, err := c.PredictBatch(data)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyScore(data.Labels(), preds)
}

// NNeighbors は設定された近傍数を返す
func (c *KNeighborsClassifier[L]) NNeighbors() int {
	return c.nNeighbors
}

// GetParams はモデルのパラメータを取得する
func (c *KNeighborsClassifier[L]) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_neighbors": c.nNeighbors,
		"metric":      "euclidean",
	}
}

// String はモデルの文字列表現を返す
func (c *KNeighborsClassifier[L]) String() string {
	if !c.IsFitted() {
		return fmt.Sprintf("KNeighborsClassifier(n_neighbors=%d)", c.nNeighbors)
	}
	return fmt.Sprintf("KNeighborsClassifier(n_neighbors=%d, n_samples=%d, n_features=%d)",
		c.nNeighbors, c.train.Len(), c.nFeatures_)
}

// Package dataset はラベル付き観測値とデータセットの型を提供する。
//
// ラベルは比較可能な任意の型（string、列挙型、小さな整数など）で、
// 数値への変換は行わない。
package dataset

import (
	"github.com/YuminosukeSato/scoreknn/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// NumObservationFeatures は1観測あたりの特徴量の数
const NumObservationFeatures = 3

// Observation は記録された1件の観測値（特徴量3つとバケットラベル）
type Observation[L comparable] struct {
	Features [NumObservationFeatures]float64
	Label    L
}

// NewObservation は新しいObservationを作成する
func NewObservation[L comparable](f1, f2, f3 float64, label L) Observation[L] {
	return Observation[L]{Features: [NumObservationFeatures]float64{f1, f2, f3}, Label: label}
}

// Row はデータセットの1行。Featuresは距離計算に使う座標、Labelは行末尾のラベル
type Row[L comparable] struct {
	Features []float64
	Label    L
}

// Clone は特徴量スライスを複製したRowを返す
func (r Row[L]) Clone() Row[L] {
	features := make([]float64, len(r.Features))
	copy(features, r.Features)
	return Row[L]{Features: features, Label: r.Label}
}

// Dataset は行の順序付き列
type Dataset[L comparable] []Row[L]

// Len は行数を返す
func (d Dataset[L]) Len() int {
	return len(d)
}

// NumFeatures は先頭行の特徴量数を返す。空の場合は0
func (d Dataset[L]) NumFeatures() int {
	if len(d) == 0 {
		return 0
	}
	return len(d[0].Features)
}

// Clone はディープコピーを返す。元のデータセットは変更されない
func (d Dataset[L]) Clone() Dataset[L] {
	if d == nil {
		return nil
	}
	out := make(Dataset[L], len(d))
	for i, row := range d {
		out[i] = row.Clone()
	}
	return out
}

// Validate は全ての行が同じ特徴量数を持つことを確認する
func (d Dataset[L]) Validate() error {
	n := d.NumFeatures()
	for i, row := range d {
		if len(row.Features) != n {
			return errors.Wrapf(errors.NewDimensionError("Dataset.Validate", n, len(row.Features), 1), "row %d", i)
		}
	}
	return nil
}

// Column はj番目の特徴量列をコピーして返す
func (d Dataset[L]) Column(j int) []float64 {
	col := make([]float64, len(d))
	for i, row := range d {
		col[i] = row.Features[j]
	}
	return col
}

// Labels はラベル列を返す
func (d Dataset[L]) Labels() []L {
	labels := make([]L, len(d))
	for i, row := range d {
		labels[i] = row.Label
	}
	return labels
}

// Matrix は特徴量を n_samples × n_features の行列として返す
func (d Dataset[L]) Matrix() (*mat.Dense, error) {
	if len(d) == 0 || d.NumFeatures() == 0 {
		return nil, errors.NewModelError("Dataset.Matrix", "empty data", errors.ErrEmptyData)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	r, c := len(d), d.NumFeatures()
	m := mat.NewDense(r, c, nil)
	for i, row := range d {
		m.SetRow(i, row.Features)
	}
	return m, nil
}

// FromObservations は観測値を指定した特徴量インデックスとラベルからなる行に射影する。
// インデックスを省略した場合は全特徴量を使う。
func FromObservations[L comparable](obs []Observation[L], featureIdx ...int) (Dataset[L], error) {
	if len(featureIdx) == 0 {
		featureIdx = make([]int, NumObservationFeatures)
		for i := range featureIdx {
			featureIdx[i] = i
		}
	}
	for _, j := range featureIdx {
		if j < 0 || j >= NumObservationFeatures {
			return nil, errors.NewValidationError("feature_index", "must be in [0, 3)", j)
		}
	}

	out := make(Dataset[L], len(obs))
	for i, o := range obs {
		features := make([]float64, len(featureIdx))
		for k, j := range featureIdx {
			features[k] = o.Features[j]
		}
		out[i] = Row[L]{Features: features, Label: o.Label}
	}
	return out, nil
}

// Package preprocessing はデータセットの前処理（スケーリング）を提供する。
package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/scoreknn/core/dataset"
	"github.com/YuminosukeSato/scoreknn/core/model"
	"github.com/YuminosukeSato/scoreknn/pkg/errors"
	"github.com/YuminosukeSato/scoreknn/pkg/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MinMaxScaler はscikit-learn互換のMin-Maxスケーラー
// 先頭FeatureCount列を[0,1]にスケーリングし、残りの列とラベルはそのまま残す
type MinMaxScaler[L comparable] struct {
	model.BaseEstimator

	// FeatureCount はスケーリング対象の先頭列数
	FeatureCount int

	// DataMin は学習データの各列の最小値
	DataMin []float64

	// DataMax は学習データの各列の最大値
	DataMax []float64

	// Scale は各列の範囲 (max - min)
	Scale []float64

	// NFeatures は学習時の特徴量数（スケーリング対象外の列を含む）
	NFeatures int
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
//
// パラメータ:
//   - featureCount: スケーリングする先頭列数
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler[string](1)
//	scaled, err := scaler.FitTransform(data)
func NewMinMaxScaler[L comparable](featureCount int) *MinMaxScaler[L] {
	return &MinMaxScaler[L]{FeatureCount: featureCount}
}

// MinMax はdataのディープコピーの先頭featureCount列をmin-maxスケーリングして返す
//
// 各列の値vは (v - min) / (max - min) に置き換えられる。元のデータセットは変更されない。
func MinMax[L comparable](data dataset.Dataset[L], featureCount int) (dataset.Dataset[L], error) {
	return NewMinMaxScaler[L](featureCount).FitTransform(data)
}

// Fit は訓練データから各列の最小値・最大値を計算する
//
// 戻り値:
//   - error: 空データ、不正なfeatureCount、不揃いな行、NaN/Inf、定数列の場合
func (m *MinMaxScaler[L]) Fit(data dataset.Dataset[L]) error {
	if data.Len() == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	if err := data.Validate(); err != nil {
		return err
	}

	c := data.NumFeatures()
	if m.FeatureCount < 0 || m.FeatureCount > c {
		return errors.NewValidationError("feature_count", fmt.Sprintf("must be in [0, %d]", c), m.FeatureCount)
	}

	dataMin := make([]float64, m.FeatureCount)
	dataMax := make([]float64, m.FeatureCount)
	scale := make([]float64, m.FeatureCount)

	var x *mat.Dense
	if m.FeatureCount > 0 {
		var err error
		if x, err = data.Matrix(); err != nil {
			return err
		}
	}

	for j := 0; j < m.FeatureCount; j++ {
		column := mat.Col(nil, j, x)
		if err := errors.CheckNumericalStability("MinMaxScaler.Fit", column); err != nil {
			return errors.Wrapf(err, "column %d", j)
		}

		lo, hi := floats.Min(column), floats.Max(column)
		// 定数列はスケーリングできない（ゼロ除算になる）
		if lo == hi {
			return errors.NewDegenerateColumnError("MinMaxScaler.Fit", j, lo)
		}

		dataMin[j] = lo
		dataMax[j] = hi
		scale[j] = hi - lo
		// 有限値同士でも範囲がオーバーフローすることがある
		if err := errors.CheckScalar("MinMaxScaler.Fit", scale[j]); err != nil {
			return errors.Wrapf(err, "column %d range", j)
		}
	}

	m.NFeatures = c
	m.DataMin = dataMin
	m.DataMax = dataMax
	m.Scale = scale
	m.SetFitted()

	log.GetLoggerWithName("preprocessing").Debug("MinMaxScaler fitted",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, data.Len(),
		log.FeaturesKey, m.FeatureCount,
	)
	return nil
}

// Transform は学習済みの最小値・最大値を使ってデータのコピーをスケーリングする
func (m *MinMaxScaler[L]) Transform(data dataset.Dataset[L]) (dataset.Dataset[L], error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "Transform")
	}
	if err := m.checkShape("MinMaxScaler.Transform", data); err != nil {
		return nil, err
	}

	result := data.Clone()
	for _, row := range result {
		for j := 0; j < m.FeatureCount; j++ {
			// X_scaled = (X - X.min) / (X.max - X.min)
			row.Features[j] = (row.Features[j] - m.DataMin[j]) / m.Scale[j]
		}
	}
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (m *MinMaxScaler[L]) FitTransform(data dataset.Dataset[L]) (dataset.Dataset[L], error) {
	if err := m.Fit(data); err != nil {
		return nil, err
	}
	return m.Transform(data)
}

// InverseTransform はスケーリングされたデータのコピーを元の範囲に戻す
func (m *MinMaxScaler[L]) InverseTransform(data dataset.Dataset[L]) (dataset.Dataset[L], error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "InverseTransform")
	}
	if err := m.checkShape("MinMaxScaler.InverseTransform", data); err != nil {
		return nil, err
	}

	result := data.Clone()
	for _, row := range result {
		for j := 0; j < m.FeatureCount; j++ {
			row.Features[j] = row.Features[j]*m.Scale[j] + m.DataMin[j]
		}
	}
	return result, nil
}

func (m *MinMaxScaler[L]) checkShape(op string, data dataset.Dataset[L]) error {
	if err := data.Validate(); err != nil {
		return err
	}
	if data.Len() > 0 && data.NumFeatures() != m.NFeatures {
		return errors.NewDimensionError(op, m.NFeatures, data.NumFeatures(), 1)
	}
	return nil
}

// GetParams はスケーラーのパラメータを取得する
func (m *MinMaxScaler[L]) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_count": m.FeatureCount,
	}
}

// String はスケーラーの文字列表現を返す
func (m *MinMaxScaler[L]) String() string {
	if !m.IsFitted() {
		return fmt.Sprintf("MinMaxScaler(feature_count=%d)", m.FeatureCount)
	}
	return fmt.Sprintf("MinMaxScaler(feature_count=%d, n_features=%d)", m.FeatureCount, m.NFeatures)
}

// Package metrics は距離関数と評価指標を提供する。
package metrics

import (
	"github.com/YuminosukeSato/scoreknn/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// EuclideanDistance は2つのベクトル間のユークリッド距離を計算する
//
// 長さが異なる場合は切り詰めずにDimensionErrorを返す。
// 空ベクトル同士の距離は0。
func EuclideanDistance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.NewDimensionError("EuclideanDistance", len(a), len(b), 1)
	}
	if len(a) == 0 {
		return 0, nil
	}
	// d = sqrt(Σ(a_i - b_i)²)
	return floats.Distance(a, b, 2), nil
}

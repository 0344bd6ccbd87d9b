package metrics

import (
	"github.com/YuminosukeSato/scoreknn/pkg/errors"
)

// AccuracyScore は正解率（予測が正解ラベルと一致した割合）を計算する
func AccuracyScore[L comparable](yTrue, yPred []L) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("AccuracyScore", "empty vector")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("AccuracyScore", n, len(yPred), 0)
	}

	correct := CountCorrect(yTrue, yPred)
	return float64(correct) / float64(n), nil
}

// CountCorrect は位置ごとに一致したラベルの数を返す。長さは短い方に合わせる
func CountCorrect[L comparable](yTrue, yPred []L) int {
	n := min(len(yTrue), len(yPred))
	correct := 0
	for i := 0; i < n; i++ {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return correct
}

// Package model_selection はデータセットの分割を提供する。
package model_selection

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/scoreknn/core/dataset"
	"github.com/YuminosukeSato/scoreknn/pkg/errors"
	"github.com/YuminosukeSato/scoreknn/pkg/log"
)

// SplitOption はTrainTestSplitの設定オプション
type SplitOption func(*splitConfig)

type splitConfig struct {
	seeded bool
	seed   uint64
	rng    *rand.Rand
}

// WithRandomState は乱数シードを固定し、分割を再現可能にする
func WithRandomState(seed uint64) SplitOption {
	return func(c *splitConfig) {
		c.seeded = true
		c.seed = seed
	}
}

// WithRand は呼び出し側が管理する乱数生成器を使う。
// 同じ生成器を複数回の分割で共有すると、分割ごとに異なる順列になる。
func WithRand(rng *rand.Rand) SplitOption {
	return func(c *splitConfig) {
		c.rng = rng
	}
}

func (c *splitConfig) source() *rand.Rand {
	switch {
	case c.rng != nil:
		return c.rng
	case c.seeded:
		return rand.New(rand.NewPCG(c.seed, c.seed))
	default:
		// シード未指定の場合は実行ごとに異なる分割になる
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// TrainTestSplit はデータセットをランダムに並べ替え、先頭testCount行をテストセット、
// 残りを訓練セットとして返す
//
// パラメータ:
//   - data: 分割するデータセット（変更されない）
//   - testCount: テストセットの行数
//
// 戻り値:
//   - test, train: 互いに素で、合わせると元のデータセットと同じ多重集合になる
//   - error: testCountが負の場合はValidationError、データ数を超える場合はInsufficientDataError
func TrainTestSplit[L comparable](data dataset.Dataset[L], testCount int, opts ...SplitOption) (test, train dataset.Dataset[L], err error) {
	if testCount < 0 {
		return nil, nil, errors.NewValidationError("test_count", "must be non-negative", testCount)
	}
	if testCount > data.Len() {
		return nil, nil, errors.NewInsufficientDataError("TrainTestSplit", testCount, data.Len())
	}

	cfg := &splitConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	// Fisher–Yatesによる一様ランダムな順列
	indices := make([]int, data.Len())
	for i := range indices {
		indices[i] = i
	}
	cfg.source().Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	test = make(dataset.Dataset[L], 0, testCount)
	train = make(dataset.Dataset[L], 0, data.Len()-testCount)
	for k, idx := range indices {
		if k < testCount {
			test = append(test, data[idx].Clone())
		} else {
			train = append(train, data[idx].Clone())
		}
	}

	logger := log.GetLoggerWithName("model_selection")
	fields := []any{
		log.OperationKey, log.OperationSplit,
		log.TestSamplesKey, test.Len(),
		log.TrainSamplesKey, train.Len(),
	}
	if cfg.seeded && cfg.rng == nil {
		fields = append(fields, log.RandomSeedKey, cfg.seed)
	}
	logger.Debug("Dataset split", fields...)

	return test, train, nil
}

package model

import "github.com/YuminosukeSato/scoreknn/core/dataset"

// Transformer はデータセットを変換する推定器のインターフェース
type Transformer[L comparable] interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(data dataset.Dataset[L]) error

	// Transform はデータセットのコピーを変換して返す
	Transform(data dataset.Dataset[L]) (dataset.Dataset[L], error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(data dataset.Dataset[L]) (dataset.Dataset[L], error)
}

// Classifier はラベル付きデータで学習し、1点のラベルを予測するモデルのインターフェース
type Classifier[L comparable] interface {
	// Fit は訓練データで学習する
	Fit(train dataset.Dataset[L]) error

	// Predict は特徴量ベクトルのラベルを予測する
	Predict(point []float64) (L, error)

	// Score はデータセットに対する正解率を返す
	Score(test dataset.Dataset[L]) (float64, error)
}

// ParameterGetter はハイパーパラメータを公開するモデルのインターフェース
type ParameterGetter interface {
	GetParams() map[string]interface{}
}

package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// PanicError は回復したパニックを表すエラーです。
// 特徴量1つの評価中のパニックは、このエラーとしてその特徴量の結果に閉じ込められます。
type PanicError struct {
	Operation  string      // パニックを回復した処理
	PanicValue interface{} // panic()に渡された値
	StackTrace string      // 回復時点のスタック
	Prior      error       // パニック前に設定されていたエラー（なければnil）
}

func (e *PanicError) Error() string {
	if e.Prior != nil {
		return fmt.Sprintf("panic in %s: %v (after: %v)", e.Operation, e.PanicValue, e.Prior)
	}
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap はパニック値がエラーであればそれを、加えて先行エラーを返します。
func (e *PanicError) Unwrap() []error {
	var errs []error
	if err, ok := e.PanicValue.(error); ok {
		errs = append(errs, err)
	}
	if e.Prior != nil {
		errs = append(errs, e.Prior)
	}
	return errs
}

// String はスタックトレースを含む詳細を返します。
func (e *PanicError) String() string {
	return e.Error() + "\nStack trace:\n" + e.StackTrace
}

// MarshalZerologObject はzerologの構造化フィールドを出力します。
func (e *PanicError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("error_type", "PanicError").
		Str("operation", e.Operation).
		Str("panic_value", fmt.Sprint(e.PanicValue)).
		Str("message", e.Error())
}

// NewPanicError は現在のスタックを記録したPanicErrorを作成します。
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		Operation:  operation,
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
	}
}

// Recover はdeferで呼び出し、パニックを*errに変換します。
//
//	func evaluate() (err error) {
//	    defer errors.Recover(&err, "analysis.feature")
//	    ...
//	}
//
// 既にエラーが設定されていた場合はPriorとして保持します。
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}
	panicErr := NewPanicError(operation, r)
	panicErr.Prior = *err
	*err = panicErr
}

// SafeExecute はfnを実行し、パニックをPanicErrorとして返します。
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}

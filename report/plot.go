// Package report は分析結果をグラフとして出力する。
package report

import (
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/scoreknn/analysis"
	"github.com/YuminosukeSato/scoreknn/pkg/errors"
)

const (
	// DefaultWidth はグラフの既定の幅
	DefaultWidth = 4 * vg.Inch
	// DefaultHeight はグラフの既定の高さ
	DefaultHeight = 3 * vg.Inch
)

var (
	okColor     = color.RGBA{R: 0x2b, G: 0x6c, B: 0xb0, A: 0xff}
	failedColor = color.RGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff}
)

// BarChart は特徴量ごとの正解率を棒グラフにする
//
// 失敗した特徴量は正解率0の棒として別色で描画する。
func BarChart(r *analysis.Report) (*plot.Plot, error) {
	if r == nil || len(r.Results) == 0 {
		return nil, errors.NewValueError("BarChart", "report has no results")
	}

	ok := make(plotter.Values, len(r.Results))
	failed := make(plotter.Values, len(r.Results))
	names := make([]string, len(r.Results))
	for i, res := range r.Results {
		names[i] = res.Name()
		if res.OK() {
			ok[i] = res.Accuracy
		}
	}

	p := plot.New()
	p.Title.Text = "k-NN accuracy per feature"
	p.X.Label.Text = "feature"
	p.Y.Label.Text = "accuracy"
	p.Y.Min, p.Y.Max = 0, 1

	bars, err := plotter.NewBarChart(ok, vg.Points(20))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build bar chart")
	}
	bars.Color = okColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	// 失敗した特徴量の位置に目印を置く
	if len(r.Failed()) > 0 {
		for i, res := range r.Results {
			if !res.OK() {
				failed[i] = 0.02
			}
		}
		marks, err := plotter.NewBarChart(failed, vg.Points(20))
		if err != nil {
			return nil, errors.Wrap(err, "failed to build failure marks")
		}
		marks.Color = failedColor
		marks.LineStyle.Width = vg.Length(0)
		p.Add(marks)
		p.Legend.Add("failed", marks)
	}

	p.NominalX(names...)
	return p, nil
}

// WriteChart は棒グラフをformat（"png", "svg", "pdf" など）でwに書き出す
func WriteChart(r *analysis.Report, w io.Writer, format string) (int64, error) {
	p, err := BarChart(r)
	if err != nil {
		return 0, err
	}
	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, format)
	if err != nil {
		return 0, errors.Wrapf(err, "unsupported chart format %q", format)
	}
	n, err := wt.WriteTo(w)
	if err != nil {
		return n, errors.Wrap(err, "failed to write chart")
	}
	return n, nil
}

// SaveChart は棒グラフをpathに保存する。形式は拡張子から決まる。
func SaveChart(r *analysis.Report, path string) error {
	p, err := BarChart(r)
	if err != nil {
		return err
	}
	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return errors.Wrapf(err, "failed to save chart to %s", path)
	}
	return nil
}

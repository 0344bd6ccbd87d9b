// Command scoreknn simulates a ball-drop game, records every landing and
// reports how well each drop parameter predicts the landing bucket.
//
// Configuration is read from SCOREKNN_* environment variables.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/scoreknn/analysis"
	"github.com/YuminosukeSato/scoreknn/pkg/errors"
	"github.com/YuminosukeSato/scoreknn/pkg/log"
	"github.com/YuminosukeSato/scoreknn/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "scoreknn: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if err := log.SetupLogger(stderr, cfg.LogLevel); err != nil {
		return errors.Wrap(err, "failed to set up logger")
	}
	logger := log.GetLoggerWithName("scoreknn")

	zl := zerolog.New(stderr).With().Timestamp().Str(log.ComponentKey, "scoreknn").Logger()
	errors.SetZerologWarnFunc(func(w error) {
		ev := zl.Warn()
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(m)
		}
		ev.Msg(w.Error())
	})
	defer errors.SetZerologWarnFunc(nil)

	var src *rand.Rand
	if cfg.Seed != 0 {
		src = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	} else {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	session := analysis.NewSession[int](cfg.SessionOptions()...)
	simulate(session, cfg.Observations, src)
	logger.Info("Observations recorded",
		log.SamplesKey, session.Len(),
		log.RandomSeedKey, cfg.Seed,
	)

	result, err := session.Run(ctx)
	if err != nil {
		return errors.Wrap(err, "analysis failed")
	}
	if _, err := result.WriteTo(stdout); err != nil {
		return errors.Wrap(err, "failed to write report")
	}

	if cfg.PlotPath != "" {
		if err := report.SaveChart(result, cfg.PlotPath); err != nil {
			return err
		}
		logger.Info("Chart saved", "path", cfg.PlotPath)
	}
	return nil
}

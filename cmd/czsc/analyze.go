package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yitech/czsc/adapter/csv"
	"github.com/yitech/czsc/model/event"
	"github.com/yitech/czsc/model/fx"
	"github.com/yitech/czsc/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "replay a CSV bar file through the analyzer and print a colorized event trace",
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := viper.GetString("csv")
	if path == "" {
		return fmt.Errorf("analyze: --csv is required")
	}

	src, err := csv.Open(path)
	if err != nil {
		return err
	}

	p := pipeline.New()
	p.SubscribeFractal(func(f fx.Fx) {
		log.Debug().Str("type", f.Type.String()).Float64("price", f.Price).Msg("fractal")
	})
	p.SubscribePen(penTracer())
	p.SubscribeSegment(segmentTracer())

	for _, b := range src.Bars() {
		p.OnBar(b)
	}
	return nil
}

func penTracer() pipeline.PenHandler {
	first := color.New(color.FgYellow)
	confirm := color.New(color.FgCyan)
	return func(pe event.PenEvent) {
		switch pe.Kind {
		case event.PenFirst:
			fmt.Printf("pen    %s  %s -> %s\n", first.Sprint("first"), pe.A, pe.B)
		case event.PenNew:
			fmt.Printf("pen    %s   %s\n", confirm.Sprint("new"), pe.A)
		case event.PenUpdateTo:
			fmt.Printf("pen    update -> %s\n", pe.A)
		}
	}
}

func segmentTracer() pipeline.SegmentHandler {
	up := color.New(color.FgGreen, color.Bold)
	down := color.New(color.FgRed, color.Bold)
	return func(se event.SegmentEvent) {
		style := up
		if se.End.Price < se.Start.Price {
			style = down
		}
		switch se.Kind {
		case event.SegmentNew:
			fmt.Printf("%s %s -> %s  (%d pens)\n", style.Sprint("segment"), se.Start, se.End, len(se.Pens))
		case event.SegmentNew2:
			fmt.Printf("%s %s -> %s -> %s\n", style.Sprint("segment x2"), se.Start, se.Mid, se.End)
		case event.SegmentUpdateTo:
			fmt.Printf("segment update -> %s\n", se.Start)
		}
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/storeparty/stores"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

var (
	fanOuts = []int{1, 10, 100, 1_000}
	depths  = []int{1, 10, 100}
)

// runLatency measures how long a single Set takes when it has to drive
// `fanOut` independent derived chains of `depth` recomputations each,
// all dispatched inline on the writing goroutine.
func runLatency(ctx context.Context, cmd *cli.Command) error {
	stop, err := startProfile(cmd)
	if err != nil {
		return err
	}
	defer stop()

	iters := int(cmd.Uint(itersKey))
	log.Printf("measuring dispatch latency, %s writes per cell", humanize.Comma(int64(iters)))

	tbl := table.NewWriter()
	tbl.SetTitle("storeparty dispatch latency")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, fanOut := range fanOuts {
		for _, depth := range depths {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			src := stores.NewObservable(0)
			sink := 0
			for i := 0; i < fanOut; i++ {
				var last stores.Source[int] = src
				for j := 0; j < depth; j++ {
					prev := last
					last = stores.NewDerived([]stores.Emitter{prev}, func() int {
						return prev.Get() + 1
					})
				}
				last.Listen(func() { sink++ })
			}

			// warm up once before timing
			src.Set(1)

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set(i)
				tach.AddTime(time.Since(start))
			}

			if want := (iters + 1) * fanOut; sink != want {
				return fmt.Errorf("latency %dx%d: sink fired %d times, want %d", fanOut, depth, sink, want)
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("fan-out %d * depth %d", fanOut, depth),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	tbl.Render()
	return nil
}

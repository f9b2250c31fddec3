package main

import (
	"context"
	"log"
	"os"
	"runtime/pprof"

	"github.com/urfave/cli/v3"
)

const (
	cpuProfileKey = "cpuprofile"
	goroutinesKey = "goroutines"
	updatesKey    = "updates"
	itersKey      = "iters"
)

func main() {
	cmd := &cli.Command{
		Name:  "storebench",
		Usage: "Benchmark and stress the storeparty primitives",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  cpuProfileKey,
				Usage: "Write a CPU profile to the given file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "latency",
				Usage: "Measure dispatch latency over fan-out x depth grids",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:  itersKey,
						Usage: "Timed writes per grid cell",
						Value: 100,
					},
				},
				Action: runLatency,
			},
			{
				Name:  "stress",
				Usage: "Verify concurrent update correctness",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:  goroutinesKey,
						Usage: "Concurrent writers",
						Value: 64,
					},
					&cli.UintFlag{
						Name:  updatesKey,
						Usage: "Updates per writer",
						Value: 1000,
					},
				},
				Action: runStress,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func startProfile(cmd *cli.Command) (stop func(), err error) {
	path := cmd.String(cpuProfileKey)
	if path == "" {
		return func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

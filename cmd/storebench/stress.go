package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/storeparty/stores"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

// runStress hammers one observable with goroutines*updates increments
// and checks that nothing was lost: the final value, the listener
// invocation count, the set of observed values and an order-insensitive
// checksum of the notification stream must all match what a fully
// serialized run would produce.
func runStress(ctx context.Context, cmd *cli.Command) error {
	stop, err := startProfile(cmd)
	if err != nil {
		return err
	}
	defer stop()

	goroutines := int(cmd.Uint(goroutinesKey))
	updates := int(cmd.Uint(updatesKey))
	total := goroutines * updates

	log.Printf("stressing with %s writers * %s updates",
		humanize.Comma(int64(goroutines)), humanize.Comma(int64(updates)))

	o := stores.NewObservable(0)

	var mu sync.Mutex
	listenerFired := 0
	o.Listen(func() {
		mu.Lock()
		listenerFired++
		mu.Unlock()
	})

	observed := mapset.NewSet[int]()
	var sumMu sync.Mutex
	var checksum uint64
	o.Subscribe(func(v int) {
		observed.Add(v)
		sumMu.Lock()
		checksum += hashValue(v)
		sumMu.Unlock()
	})

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < updates; j++ {
				o.Update(func(v int) int { return v + 1 })
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	// what a serialized run observes: the initial subscribe push of 0
	// plus every value 1..total exactly once
	wantChecksum := hashValue(0)
	for v := 1; v <= total; v++ {
		wantChecksum += hashValue(v)
	}

	mu.Lock()
	fired := listenerFired
	mu.Unlock()
	sumMu.Lock()
	gotChecksum := checksum
	sumMu.Unlock()

	rate := float64(total) / elapsed.Seconds()

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"check", "want", "got", "ok"})
	appendCheck := func(name, want, got string) {
		tbl.Append([]string{name, want, got, fmt.Sprint(want == got)})
	}
	appendCheck("final value", humanize.Comma(int64(total)), humanize.Comma(int64(o.Get())))
	appendCheck("listener fired", humanize.Comma(int64(total)), humanize.Comma(int64(fired)))
	appendCheck("distinct values observed", humanize.Comma(int64(total+1)), humanize.Comma(int64(observed.Cardinality())))
	appendCheck("stream checksum", fmt.Sprintf("%016x", wantChecksum), fmt.Sprintf("%016x", gotChecksum))
	tbl.Append([]string{"update rate/s", "", humanize.Comma(int64(rate)), ""})
	tbl.Render()

	switch {
	case o.Get() != total:
		return fmt.Errorf("lost updates: final value %d, want %d", o.Get(), total)
	case fired != total:
		return fmt.Errorf("lost notifications: listener fired %d, want %d", fired, total)
	case observed.Cardinality() != total+1:
		return fmt.Errorf("observed %d distinct values, want %d", observed.Cardinality(), total+1)
	case gotChecksum != wantChecksum:
		return fmt.Errorf("stream checksum mismatch")
	}

	log.Printf("stress passed in %s", elapsed)
	return nil
}

func hashValue(v int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return xxhash.Sum64(buf[:])
}

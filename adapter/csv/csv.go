// Package csv implements adapter.BarSource over the flat-file bar format
// from spec.md §6: a header row followed by
// "timestamp(YYYY.MM.DD HH:MM:SS),open,high,low,close,volume", with
// timestamps read as UTC.
package csv

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/yitech/czsc/adapter"
	"github.com/yitech/czsc/model/bar"
)

const timestampLayout = "2006.01.02 15:04:05"

// timestamp is the gocsv-unmarshalable wrapper around the file's
// timestamp column.
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalCSV(s string) error {
	parsed, err := time.Parse(timestampLayout, s)
	if err != nil {
		return fmt.Errorf("csv: parse timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

type row struct {
	Timestamp timestamp `csv:"timestamp"`
	Open      float64   `csv:"open"`
	High      float64   `csv:"high"`
	Low       float64   `csv:"low"`
	Close     float64   `csv:"close"`
	Volume    float64   `csv:"volume"`
}

func (r row) toBar() bar.Bar {
	return bar.New(r.Timestamp.UnixMilli(), r.Open, r.High, r.Low, r.Close)
}

// token cancels a replay started by Subscribe.
type token struct {
	cancel context.CancelFunc
}

func (t *token) Unsubscribe() { t.cancel() }

// Source is a bar.Bar source backed by one CSV file on disk. The symbol
// and interval passed to Subscribe/Backfill are ignored: a Source holds
// exactly one series, matching spec.md's single-stream scope.
type Source struct {
	bars []bar.Bar
}

// Bars returns every bar parsed from the file, in chronological order.
// Used by callers that want to drive the pipeline synchronously instead
// of through the handler-based Subscribe contract.
func (s *Source) Bars() []bar.Bar { return s.bars }

// Open reads and parses the CSV file at path in full.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close()

	var rows []row
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, fmt.Errorf("csv: unmarshal %s: %w", path, err)
	}

	bars := make([]bar.Bar, len(rows))
	for i, r := range rows {
		bars[i] = r.toBar()
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time < bars[j].Time })

	return &Source{bars: bars}, nil
}

// Subscribe replays every bar in the file to handler, in order, on a
// background goroutine. There is no live tail: once the file is
// exhausted the subscription goes quiet until Unsubscribe.
func (s *Source) Subscribe(symbol, interval string, handler adapter.BarHandler) (adapter.Token, error) {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		for _, b := range s.bars {
			if ctx.Err() != nil {
				return
			}
			handler(b)
		}
	}()

	return &token{cancel: cancel}, nil
}

// Backfill returns the bars in [start, end).
func (s *Source) Backfill(symbol, interval string, start, end time.Time) ([]bar.Bar, error) {
	startMs, endMs := start.UnixMilli(), end.UnixMilli()
	out := make([]bar.Bar, 0, len(s.bars))
	for _, b := range s.bars {
		if b.Time >= startMs && b.Time < endMs {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Source) Close() error { return nil }

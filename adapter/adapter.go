// Package adapter defines the contract bar sources implement to feed the
// analyzer pipeline, and the shared bar-handler/subscription-token types
// used by every implementation in adapter/csv and adapter/feed.
package adapter

import (
	"time"

	"github.com/yitech/czsc/model/bar"
)

// BarHandler receives one bar at a time from a BarSource subscription.
type BarHandler func(b bar.Bar)

// Token cancels a single subscription.
type Token interface {
	Unsubscribe()
}

// BarSource is the contract every bar source (CSV replay, live feed
// client, exchange client) implements. Subscribe streams live bars to
// handler; Backfill returns a closed range of historical bars.
type BarSource interface {
	Subscribe(symbol, interval string, handler BarHandler) (Token, error)
	Backfill(symbol, interval string, start, end time.Time) ([]bar.Bar, error)
	Close() error
}

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yitech/czsc/adapter/csv"
	"github.com/yitech/czsc/adapter/feed"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run a WebSocket feed server, replaying a CSV file or synthesizing bars",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "listen", ":8080", "HTTP listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	srv := feed.NewServer(log)

	mux := http.NewServeMux()
	mux.HandleFunc("/stream", srv.Serve)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if path := viper.GetString("csv"); path != "" {
		source, err := csv.Open(path)
		if err != nil {
			return err
		}
		go replayToServer(ctx, source, srv)
	} else {
		go feed.Synth(ctx, srv, time.Second)
	}

	log.Info().Str("addr", serveAddr).Msg("feed server listening")
	return http.ListenAndServe(serveAddr, mux)
}

// replayToServer rebroadcasts a CSV file's bars at a fixed pace, standing
// in for a live exchange feed in local testing.
func replayToServer(ctx context.Context, source *csv.Source, srv *feed.Server) {
	for _, b := range source.Bars() {
		if ctx.Err() != nil {
			return
		}
		srv.Broadcast(b)
		time.Sleep(50 * time.Millisecond)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yitech/czsc/internal/logging"
)

var log zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "czsc",
	Short: "Chan-theory market structure analyzer",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if viper.GetBool("verbose") {
			level = zerolog.DebugLevel
		}
		log = logging.New(true, level)
	},
}

func init() {
	rootCmd.PersistentFlags().String("csv", "", "path to a CSV bar file (timestamp,open,high,low,close,volume)")
	rootCmd.PersistentFlags().String("feed", "", "feed server address to stream bars from (ws://host:port/stream)")
	rootCmd.PersistentFlags().String("symbol", "BTCUSDT", "symbol label passed through to the bar source")
	rootCmd.PersistentFlags().String("interval", "1m", "interval label passed through to the bar source")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	viper.BindPFlag("csv", rootCmd.PersistentFlags().Lookup("csv"))
	viper.BindPFlag("feed", rootCmd.PersistentFlags().Lookup("feed"))
	viper.BindPFlag("symbol", rootCmd.PersistentFlags().Lookup("symbol"))
	viper.BindPFlag("interval", rootCmd.PersistentFlags().Lookup("interval"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.SetEnvPrefix("czsc")
	viper.AutomaticEnv()

	rootCmd.AddCommand(analyzeCmd, serveCmd, watchCmd)
}

// Execute runs the root command, exiting the process on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

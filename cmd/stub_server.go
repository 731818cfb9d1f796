package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/greencarbon/internal/model"
	"github.com/theirongolddev/greencarbon/internal/predict"
	"github.com/theirongolddev/greencarbon/internal/stubserver"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagStubAddr         string
	flagStubFixture      string
	flagStubDelay        time.Duration
	flagStubEventsBuffer int
)

var stubServerCmd = &cobra.Command{
	Use:   "stub-server",
	Short: "Run a local stand-in for the prediction backend",
	Long: "Serve POST " + predict.Path + " from a JSON fixture so the client can be exercised " +
		"without the real model. Requests with neither file nor text get 400, as do malformed dates.",
	Args: cobra.NoArgs,
	RunE: runStubServer,
}

func init() {
	stubServerCmd.Flags().StringVar(&flagStubAddr, "addr", "127.0.0.1:8000", "HTTP listen address")
	stubServerCmd.Flags().StringVar(&flagStubFixture, "fixture", "", "JSON file with the result list to serve (built-in sample if empty)")
	stubServerCmd.Flags().DurationVar(&flagStubDelay, "delay", 0, "Artificial latency per request")
	stubServerCmd.Flags().IntVar(&flagStubEventsBuffer, "events-buffer", 200, "Max in-memory request events retained")
	rootCmd.AddCommand(stubServerCmd)
}

func runStubServer(cmd *cobra.Command, _ []string) error {
	var results []model.MonthResult
	if flagStubFixture != "" {
		loaded, err := stubserver.LoadFixture(flagStubFixture)
		if err != nil {
			return err
		}
		results = loaded
	}

	svc := stubserver.New(stubserver.Config{
		Addr:         flagStubAddr,
		Results:      results,
		Delay:        flagStubDelay,
		EventsBuffer: flagStubEventsBuffer,
		Logger:       zap.L(),
	})

	fmt.Printf("  greencarbon stub listening on http://%s%s\n", flagStubAddr, predict.Path)
	fmt.Printf("  Status: http://%s/v1/status\n", flagStubAddr)
	fmt.Println("  Stop with Ctrl+C")

	if err := svc.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

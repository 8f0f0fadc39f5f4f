// Command p256d serves the P-256 operations over NATS request/reply.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	retry "github.com/avast/retry-go"
	"github.com/nats-io/nats.go"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v3"

	"github.com/luxfi/p256/pkg/config"
	"github.com/luxfi/p256/pkg/logger"
	"github.com/luxfi/p256/pkg/service"
)

const Version = "0.1.0"

func main() {
	app := &cli.Command{
		Name:    "p256d",
		Usage:   "P-256 signing daemon",
		Version: Version,
		Commands: []*cli.Command{
			{
				Name:  "start",
				Usage: "Start serving the p256 subjects",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "nats-url",
						Aliases: []string{"u"},
						Usage:   "NATS server URL (overrides config)",
					},
					&cli.StringFlag{
						Name:    "queue",
						Aliases: []string{"q"},
						Usage:   "Queue group for load sharing (overrides config)",
					},
					&cli.BoolFlag{
						Name:  "debug",
						Usage: "Enable debug logging",
					},
				},
				Action: runStart,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runStart(ctx context.Context, cmd *cli.Command) error {
	if err := config.InitViperConfig(); err != nil {
		return err
	}
	if url := cmd.String("nats-url"); url != "" {
		viper.Set("nats.url", url)
	}
	if queue := cmd.String("queue"); queue != "" {
		viper.Set("service.queue_group", queue)
	}

	environment := viper.GetString("environment")
	logger.Init(environment, cmd.Bool("debug"))
	logger.Info("Starting p256 daemon", "environment", environment)

	natsConn, err := getNATSConnection()
	if err != nil {
		logger.Fatal("Failed to connect to NATS", err)
	}
	defer natsConn.Close()

	svc := service.New(natsConn, viper.GetString("service.queue_group"), logger.With("service"))
	if err := svc.Start(); err != nil {
		logger.Fatal("Failed to start service", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutting down", "signal", sig.String())

	svc.Stop()
	if err := natsConn.Drain(); err != nil {
		logger.Error("Failed to drain NATS connection", err)
	}
	return nil
}

func getNATSConnection() (*nats.Conn, error) {
	url := viper.GetString("nats.url")
	opts := []nats.Option{
		nats.MaxReconnects(-1), // retry forever
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectHandler(func(nc *nats.Conn) {
			logger.Warn("Disconnected from NATS")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed!")
		}),
	}

	var conn *nats.Conn
	err := retry.Do(
		func() error {
			var err error
			conn, err = nats.Connect(url, opts...)
			return err
		},
		retry.Attempts(5),
		retry.Delay(2*time.Second),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("NATS connect failed, retrying", "attempt", n+1, "error", err.Error())
		}),
	)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryotel "github.com/getsentry/sentry-go/otel"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/domain"
	sqslog "github.com/stableswap/sqs/log"
)

func main() {
	root := &cobra.Command{
		Use:          "sqs",
		Short:        "Stable swap route resolution and quote server",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "config.json", "config file location")
	root.PersistentFlags().String("host", "sqs", "the name of the host")
	root.PersistentFlags().Bool("debug", false, "debug mode")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP quote server",
		RunE:  runServe,
	}
	serveCmd.Flags().String("server-address", ":9092", "address to listen on")

	root.AddCommand(serveCmd)

	routesCmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the resolved swap routes from a token",
		RunE:  runRoutes,
	}
	routesCmd.Flags().String("from", "", "origin token symbol")
	routesCmd.Flags().String("to", "", "destination token symbol, all destinations if empty")
	routesCmd.Flags().String("out", "", "directory to write the routes JSON to instead of stdout")

	root.AddCommand(routesCmd)

	swapCmd := &cobra.Command{
		Use:   "swap",
		Short: "Quote a swap and optionally execute it",
		RunE:  runSwap,
	}
	swapCmd.Flags().String("from", "", "token symbol to swap from")
	swapCmd.Flags().String("to", "", "token symbol to swap to")
	swapCmd.Flags().String("amount", "", "human readable amount to swap, e.g. 12.5")
	swapCmd.Flags().String("slippage", "", "slippage tolerance: 0.1%, 1% or a fraction such as 0.005")
	swapCmd.Flags().Bool("infinite-approval", false, "approve the max amount instead of the exact spend amount")
	swapCmd.Flags().Int("deadline", 0, "transaction deadline in minutes, the config value if zero")
	swapCmd.Flags().Bool("execute", false, "approve if needed and execute the swap")

	root.AddCommand(swapCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config and creates the logger shared by every command.
func setup(cmd *cobra.Command) (domain.Config, sqslog.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")

	config, err := LoadConfig(cfgFile, cmd.Flags())
	if err != nil {
		return domain.Config{}, nil, err
	}

	logger, err := sqslog.NewLogger(config.LoggerIsProduction, config.LoggerFilename, config.LoggerLevel)
	if err != nil {
		return domain.Config{}, nil, fmt.Errorf("error while creating logger: %w", err)
	}

	return config, logger, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	config, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	hostName, _ := cmd.Flags().GetString("host")
	isDebug, _ := cmd.Flags().GetBool("debug")
	if isDebug {
		logger.Info("Service RUN on DEBUG mode")
	}

	if config.OTEL != nil && config.OTEL.DSN != "" {
		flush, err := initSentry(*config.OTEL, hostName, isDebug)
		if err != nil {
			return err
		}
		defer flush()

		initOTELTracer(hostName)
	}

	// Handle SIGINT and SIGTERM signals to initiate shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sidecarQueryServer, err := NewSideCarQueryServer(ctx, config, logger)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := sidecarQueryServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down", zap.Error(err))
		}
	}()

	return sidecarQueryServer.Start(ctx)
}

// initSentry initializes sentry error reporting and returns the flush function.
func initSentry(otelConfig domain.OTELConfig, hostName string, isDebug bool) (func(), error) {
	var (
		// sentryEndpointWhitelist is a map of endpoints and their respective sampling rates
		sentryEndpointWhitelist = map[string]float64{
			"/router/quote":  otelConfig.CustomSampleRate.Quote,
			"/router/routes": otelConfig.CustomSampleRate.Routes,
			"/tokens/prices": otelConfig.CustomSampleRate.Other,
			"/pools":         otelConfig.CustomSampleRate.Other,
		}

		// custom sampler that samples only the whitelisted endpoints per their configured rates.
		traceSampler sentry.TracesSampler = func(ctx sentry.SamplingContext) float64 {
			if ctx.Span == nil {
				return 0
			}

			if samplerRate, ok := sentryEndpointWhitelist[ctx.Span.Name]; ok {
				return samplerRate
			}

			return 0
		}
	)

	err := sentry.Init(sentry.ClientOptions{
		ServerName:         hostName,
		Dsn:                otelConfig.DSN,
		SampleRate:         otelConfig.SampleRate,
		EnableTracing:      otelConfig.EnableTracing,
		Debug:              isDebug,
		TracesSampler:      traceSampler,
		ProfilesSampleRate: otelConfig.ProfilesSampleRate,
		Environment:        otelConfig.Environment,
	})
	if err != nil {
		return nil, fmt.Errorf("sentry.Init: %w", err)
	}

	sentry.CaptureMessage("SQS started")

	return func() { sentry.Flush(2 * time.Second) }, nil
}

// initOTELTracer initializes the OTEL tracer
// and wires it up with the Sentry exporter.
func initOTELTracer(hostName string) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		panic(fmt.Errorf("stdouttrace.New: %w", err))
	}

	resource, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(hostName),
		),
	)
	if err != nil {
		panic(fmt.Errorf("resource.New: %w", err))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource),
		sdktrace.WithSpanProcessor(sentryotel.NewSentrySpanProcessor()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(sentryotel.NewSentryPropagator())
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lwolf/dbautoscaler/pkg/cooldown"
	"github.com/lwolf/dbautoscaler/pkg/events"
	"github.com/lwolf/dbautoscaler/pkg/ingress/busenvelope"
	"github.com/lwolf/dbautoscaler/pkg/ingress/httpjson"
	"github.com/lwolf/dbautoscaler/pkg/operation"
	"github.com/lwolf/dbautoscaler/pkg/orchestrator"
	"github.com/lwolf/dbautoscaler/pkg/resize"
	"github.com/lwolf/dbautoscaler/pkg/sizing"
	"github.com/lwolf/dbautoscaler/pkg/state"
	"github.com/lwolf/dbautoscaler/pkg/telemetry"
)

var Version string

func main() {
	var tickAddr string
	var metricsAddr string
	var redisAddr string
	var eventsRedisAddr string
	var isDebug bool
	flag.StringVar(&tickAddr, "tick-bind-address", ":8090", "The address the tick/healthz HTTP endpoints bind to.")
	flag.StringVar(&metricsAddr, "metrics-bind-address", ":8080", "The address the metric endpoint binds to.")
	flag.StringVar(&redisAddr, "redis-addr", "", "Address of a redis instance; used for downstream events when -events-redis-addr is unset. State stores are named per snapshot.")
	flag.StringVar(&eventsRedisAddr, "events-redis-addr", "", "Address of the redis instance downstream events are published to. Defaults to -redis-addr.")
	flag.BoolVar(&isDebug, "verbose", false, "Set log level to debug mode.")
	flag.Parse()

	zapLog, err := newZapLogger(isDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to build logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()
	log := zapr.NewLogger(zapLog).WithName("dbautoscaler")
	log.Info("starting dbautoscaler", "version", Version, "tickAddr", tickAddr, "metricsAddr", metricsAddr)

	if eventsRedisAddr == "" {
		eventsRedisAddr = redisAddr
	}
	if eventsRedisAddr == "" {
		log.Info("no events-redis-addr configured, downstream events will be kept in process memory and not published")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "dbautoscaler",
		Name:      "build_info",
		Help:      "Static build metadata, value is always 1.",
		ConstLabels: prometheus.Labels{
			"version": Version,
		},
	}, func() float64 { return 1 }))
	counters := telemetry.NewCounters(registry)

	o := orchestrator.New(
		sizing.NewRegistry(log),
		state.NewBackendFactory(log),
		operation.NewTracker(operation.NewHTTPStatusClient(nil), counters, log),
		cooldown.NewEvaluator(log),
		resize.NewHTTPDriver(nil),
		newEmitter(eventsRedisAddr, log),
		counters,
		log,
	)

	httpjsonHandler := httpjson.NewHandler(o, log)
	busenvelopeHandler := busenvelope.NewHandler(o, log)

	tickMux := http.NewServeMux()
	tickMux.Handle("/tick", httpjsonHandler)
	tickMux.Handle("/pubsub/push", busenvelopeHandler)
	tickMux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	tickServer := &http.Server{Addr: tickAddr, Handler: tickMux}
	metricsServer := &http.Server{Addr: metricsAddr, Handler: metricsMux}

	errCh := make(chan error, 2)
	go func() { errCh <- tickServer.ListenAndServe() }()
	go func() { errCh <- metricsServer.ListenAndServe() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Info("server exited unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = tickServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)
}

func newZapLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newEmitter(addr string, log logr.Logger) events.Emitter {
	if addr == "" {
		return &events.MemoryEmitter{}
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	return events.NewRedisEmitter(client, log)
}

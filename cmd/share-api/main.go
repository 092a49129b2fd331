package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"neighborhood-share/internal/bloom"
	"neighborhood-share/internal/config"
	"neighborhood-share/internal/emergency"
	"neighborhood-share/internal/fixtures"
	"neighborhood-share/internal/httpapi"
	"neighborhood-share/internal/kstream"
	"neighborhood-share/internal/logging"
	"neighborhood-share/internal/messaging"
	"neighborhood-share/internal/model"
	"neighborhood-share/internal/profile"
	"neighborhood-share/internal/realtime"
	"neighborhood-share/internal/session"
	"neighborhood-share/internal/share"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub(logger)
	go hub.Run(ctx)

	// Session state and submission dedup live in Redis when configured,
	// otherwise in process memory.
	var (
		sessions session.Store
		seen     bloom.Filter
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
		seen = bloom.NewRedisFilter(ctx, rdb, logger)
		logger.Info("session state in redis", zap.String("addr", cfg.RedisAddr))
	} else {
		mem := session.NewMemoryStore(cfg.SessionTTL)
		go sweepSessions(ctx, mem, logger)
		sessions = mem
		seen = bloom.NewMemoryFilter()
		logger.Info("session state in memory")
	}

	// With a broker, confirmed alerts reach websocket clients through the
	// alert consumer; without one the emergency service broadcasts directly.
	var (
		publisher kstream.Publisher
		notifier  emergency.Notifier
	)
	if cfg.KafkaBroker != "" {
		publisher = kstream.NewKafkaPublisher(cfg.KafkaBroker, cfg.TopicShared, cfg.TopicAlerts)
		reader := kstream.AlertReader(cfg.KafkaBroker, cfg.TopicAlerts)
		go func() {
			sink := func(evt model.CommunityAlertSent) {
				hub.Broadcast(model.RealtimeEvent{Kind: model.EventCommunityAlert, Payload: evt})
			}
			if err := kstream.ConsumeAlerts(ctx, reader, sink, logger); err != nil {
				logger.Error("alert consumer stopped", zap.Error(err))
			}
		}()
		logger.Info("publishing events to kafka", zap.String("broker", cfg.KafkaBroker))
	} else {
		publisher = kstream.NewLogPublisher(logger)
		notifier = hub
	}
	defer publisher.Close()

	handler := httpapi.NewHandler(httpapi.Deps{
		Listings:    fixtures.Listings(),
		Sessions:    sessions,
		Share:       share.NewService(seen, publisher, logger),
		Emergency:   emergency.NewService(publisher, notifier, logger),
		Messaging:   messaging.NewService(hub),
		Profile:     profile.NewService(sessions),
		Hub:         hub,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       time.Minute,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("share api listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func sweepSessions(ctx context.Context, s *session.MemoryStore, logger *zap.Logger) {
	t := time.NewTicker(10 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				logger.Debug("expired sessions removed", zap.Int("count", n))
			}
		}
	}
}

// Command matchcore runs the matching engine process: load config, build a
// MatchEngine, and run the Kafka ingress/egress service until SIGINT or
// SIGTERM. Grounded on the teacher's cmd/server/server.go (signal.NotifyContext
// wiring a server's Run to ctx.Done).
package main

import (
	"context"
	"os/signal"
	"syscall"

	"matchcore/internal/config"
	"matchcore/internal/engine"
	"matchcore/internal/transport"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("matchcore: failed to load config")
	}

	eng := engine.New()
	svc := transport.NewService(cfg, eng)

	log.Info().
		Str("brokers", cfg.KafkaBrokers).
		Str("consumer_topic", cfg.KafkaConsumerTopic).
		Str("producer_topic", cfg.KafkaProducerTopic).
		Msg("matchcore: starting")

	if err := svc.Run(ctx); err != nil {
		log.Error().Err(err).Msg("matchcore: service stopped with error")
	}
}

package transport

import (
	"context"

	"matchcore/internal/config"
	"matchcore/internal/engine"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

// Service wires a Consumer and Producer around one MatchEngine and
// supervises both under a single tomb.Tomb, mirroring the teacher's
// Server.Run/Shutdown shape in internal/net/server.go.
type Service struct {
	consumer *Consumer
	producer *Producer
	cancel   context.CancelFunc
}

// NewService builds the ingress/egress pair from cfg around eng.
func NewService(cfg *config.Config, eng *engine.MatchEngine) *Service {
	producer := NewProducer([]string{cfg.KafkaBrokers}, cfg.KafkaProducerTopic)
	consumer := NewConsumer([]string{cfg.KafkaBrokers}, cfg.KafkaGroupID, cfg.KafkaConsumerTopic, eng, producer)
	return &Service{consumer: consumer, producer: producer}
}

// Shutdown cancels the running service's context.
func (s *Service) Shutdown() {
	log.Info().Msg("transport: service shutting down")
	if s.cancel != nil {
		s.cancel()
	}
}

// Run starts the producer flush loop and the consumer's fetch/decode/
// dispatch loops under one tomb, blocking until ctx is cancelled or a
// supervised goroutine returns an error.
func (s *Service) Run(ctx context.Context) error {
	defer s.Shutdown()

	ctx, s.cancel = context.WithCancel(ctx)
	t, ctx := tomb.WithContext(ctx)

	t.Go(func() error {
		return s.producer.Run(t)
	})
	t.Go(func() error {
		return s.consumer.Run(t)
	})

	log.Info().Msg("transport: service running")
	<-ctx.Done()
	t.Kill(nil)
	runErr := t.Wait()

	if err := s.consumer.Close(); err != nil {
		log.Error().Err(err).Msg("transport: error closing consumer")
	}
	if err := s.producer.Close(); err != nil {
		log.Error().Err(err).Msg("transport: error closing producer")
	}

	return runErr
}

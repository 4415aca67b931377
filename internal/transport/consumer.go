package transport

import (
	"context"
	"errors"
	"io"

	"matchcore/internal/engine"
	"matchcore/internal/logging"
	"matchcore/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	tomb "gopkg.in/tomb.v2"
)

const defaultDecodeWorkers = 10

// dispatched is one decoded command on Consumer.dispatch, the single
// channel every decoded command is funneled through before reaching
// MatchEngine. One goroutine reads that channel, preserving
// spec.md §5's single-threaded, synchronous core no matter how many
// decode workers run ahead of it.
type dispatched struct {
	command IngressCommand
	seq     uint64
}

// EventSink is whatever the consumer hands produced events to. Producer
// implements it; tests can substitute a recording fake.
type EventSink interface {
	Publish(events []model.EngineEvent)
}

// Consumer reads spec.md §6's ingress topic, decodes messages concurrently
// across a Pool, and serializes the decoded commands into a single
// MatchEngine via one dispatch goroutine.
//
// Grounded on the teacher's internal/net/server.go Run/sessionHandler split
// (accept/decode workers feed a single channel a lone handler goroutine
// drains) and original_source/kafka.rs's consume loop (log-and-skip on
// decode failure, forward well-formed commands downstream).
type Consumer struct {
	reader *kafka.Reader
	engine *engine.MatchEngine
	sink   EventSink
	pool   *Pool

	dispatch chan dispatched
	seq      uint64
}

// NewConsumer builds a Consumer reading brokers/topic with the given
// consumer group, dispatching decoded commands to engine and forwarding
// produced events to sink.
func NewConsumer(brokers []string, groupID, topic string, eng *engine.MatchEngine, sink EventSink) *Consumer {
	c := &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
		engine:   eng,
		sink:     sink,
		dispatch: make(chan dispatched, taskChanSize),
	}
	c.pool = NewPool(defaultDecodeWorkers, c.decode)
	return c
}

// Run starts the decode pool, the fetch loop, and the single dispatch
// goroutine, all supervised by t. Run blocks until t dies.
func (c *Consumer) Run(t *tomb.Tomb) error {
	c.pool.Setup(t)

	t.Go(func() error {
		return c.dispatchLoop(t)
	})

	return c.fetchLoop(t)
}

// fetchLoop pulls raw messages off Kafka and hands them to the decode
// pool. It never touches engine state directly.
func (c *Consumer) fetchLoop(t *tomb.Tomb) error {
	ctx := t.Context(nil)
	for {
		select {
		case <-t.Dying():
			return nil
		default:
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			log.Error().Err(err).Msg("transport: fetch failed")
			continue
		}

		c.pool.AddTask(Task{Payload: msg.Value})

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			log.Error().Err(err).Msg("transport: commit failed")
		}
	}
}

// decode runs in a pool worker: parse the payload and forward a
// well-formed command to the single dispatch goroutine. Malformed
// payloads are logged and dropped, never fatal to the pool.
func (c *Consumer) decode(t *tomb.Tomb, task Task) error {
	command, err := DecodeIngress(task.Payload)
	if err != nil {
		log.Warn().Err(err).Msg("transport: dropping malformed message")
		return nil
	}

	select {
	case <-t.Dying():
		return nil
	case c.dispatch <- dispatched{command: command}:
	}
	return nil
}

// dispatchLoop is the lone goroutine permitted to call into engine. It
// assigns each command a monotonic sequence number for logging and
// applies commands strictly in the order decode workers handed them off.
func (c *Consumer) dispatchLoop(t *tomb.Tomb) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case d := <-c.dispatch:
			c.seq++
			c.apply(d.command, c.seq)
		}
	}
}

func (c *Consumer) apply(command IngressCommand, seq uint64) {
	if command.Order != nil {
		logging.Order(seq, *command.Order)
		events := c.engine.Process(*command.Order)
		logging.Events(events)
		c.sink.Publish(events)
		return
	}

	event, ok := c.engine.Cancel(command.Cancel.Side, command.Cancel.OrderId)
	if !ok {
		log.Warn().
			Uint64("order_id", command.Cancel.OrderId).
			Msg("transport: cancel requested for unknown order")
		return
	}
	events := []model.EngineEvent{event}
	logging.Events(events)
	c.sink.Publish(events)
}

// Close releases the underlying Kafka reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

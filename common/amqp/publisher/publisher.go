package publisher

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type DeliveryMode uint8

const (
	Transient  DeliveryMode = 1
	Persistent DeliveryMode = 2
)

type Marshal func(any) ([]byte, error)

type Config struct {
	Exchange     string
	ExchangeType string
	RoutingKey   string
	Declare      bool
	Marshal      Marshal
	ContentType  string
}

// Channel is the subset of connection.Channel a publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string) error
	Publish(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Publisher[T any] interface {
	SendMessage(ctx context.Context, message *T, mode DeliveryMode, mandatory, immediate bool) error
}

type publisher[T any] struct {
	cfg *Config
	ch  Channel
	l   zerolog.Logger
}

// New builds a publisher and, if cfg.Declare is set, declares its exchange.
func New[T any](ch Channel, cfg *Config) (Publisher[T], error) {
	if cfg.Marshal == nil {
		cfg.Marshal = json.Marshal
	}
	if cfg.ContentType == "" {
		cfg.ContentType = "application/json"
	}
	if cfg.ExchangeType == "" {
		cfg.ExchangeType = amqp.ExchangeTopic
	}
	pub := &publisher[T]{
		cfg: cfg,
		ch:  ch,
		l: log.With().
			Str("component", "amqp-publisher").
			Type("type", *new(T)).
			Str("exchange", cfg.Exchange).
			Str("routing-key", cfg.RoutingKey).
			Logger(),
	}
	if cfg.Declare && cfg.Exchange != "" {
		if err := ch.ExchangeDeclare(cfg.Exchange, cfg.ExchangeType); err != nil {
			return nil, errors.Wrap(err, "failed to declare exchange")
		}
	}
	return pub, nil
}

func (p *publisher[T]) SendMessage(ctx context.Context, message *T, mode DeliveryMode, mandatory, immediate bool) error {
	body, err := p.cfg.Marshal(message)
	if err != nil {
		p.l.Error().Err(err).Msg("failed to marshal message")
		return errors.Wrap(err, "failed to marshal message")
	}
	msg := amqp.Publishing{
		DeliveryMode: uint8(mode),
		ContentType:  p.cfg.ContentType,
		Body:         body,
	}
	if err = p.ch.Publish(ctx, p.cfg.Exchange, p.cfg.RoutingKey, mandatory, immediate, msg); err != nil {
		p.l.Error().Err(err).Msg("failed to send message")
		return errors.Wrap(err, "failed to send message")
	}
	p.l.Trace().Int("bytes", len(body)).Msg("message sent")
	return nil
}

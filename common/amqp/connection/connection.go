package connection

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ConnAlreadyClosedErr    = errors.New("connection is already closed")
	ChannelAlreadyClosedErr = errors.New("channel is already closed")
)

// Connection redials the broker in the background whenever the underlying
// connection is closed by the server.
type Connection struct {
	l    zerolog.Logger
	uri  string
	opts amqp.Config

	m      sync.RWMutex
	conn   *amqp.Connection
	closed atomic.Bool

	reconnectTimeout time.Duration
	cancel           context.CancelFunc
}

func NewConnection(
	ctx context.Context,
	uri string,
	opts amqp.Config,
	reconnectTimeout time.Duration,
) (*Connection, error) {
	c, err := amqp.DialConfig(uri, opts)
	if err != nil {
		return nil, errors.Wrap(err, "dial amqp connection")
	}
	ctx, cancel := context.WithCancel(ctx)
	conn := &Connection{
		uri:              uri,
		opts:             opts,
		conn:             c,
		cancel:           cancel,
		reconnectTimeout: reconnectTimeout,
		l:                log.With().Str("component", "amqp-connection").Logger(),
	}
	go conn.watch(ctx)
	return conn, nil
}

func (c *Connection) current() *amqp.Connection {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.conn
}

func (c *Connection) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ConnAlreadyClosedErr
	}
	c.cancel()
	if err := c.current().Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return errors.Wrap(err, "close amqp connection")
	}
	return nil
}

func (c *Connection) watch(ctx context.Context) {
	for {
		notify := c.current().NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-ctx.Done():
			c.l.Debug().Msg("watcher stopped")
			return
		case err, ok := <-notify:
			if !ok || c.closed.Load() {
				c.l.Debug().Msg("watcher stopped")
				return
			}
			c.l.Warn().Err(err).Msg("connection closed, reconnecting")
			if !c.redial(ctx) {
				return
			}
			c.l.Info().Msg("amqp connection reconnected")
		}
	}
}

func (c *Connection) redial(ctx context.Context) bool {
	for {
		if c.closed.Load() {
			return false
		}
		cc, err := amqp.DialConfig(c.uri, c.opts)
		if err == nil {
			c.m.Lock()
			c.conn = cc
			c.m.Unlock()
			return true
		}
		c.l.Warn().Err(err).Dur("retry-in", c.reconnectTimeout).Msg("amqp dial failed")
		select {
		case <-ctx.Done():
			return false
		case <-time.After(c.reconnectTimeout):
		}
	}
}

// Channel wraps an amqp channel that is reopened after a connection loss.
// Publish is serialized.
type Channel struct {
	l    zerolog.Logger
	conn *Connection

	m      sync.Mutex
	ch     *amqp.Channel
	closed atomic.Bool
}

func (c *Connection) Channel() (*Channel, error) {
	amqpCh, err := c.current().Channel()
	if err != nil {
		return nil, errors.Wrap(err, "open channel")
	}
	return &Channel{
		ch:   amqpCh,
		conn: c,
		l:    log.With().Str("component", "amqp-channel").Logger(),
	}, nil
}

func (ch *Channel) Close() error {
	if !ch.closed.CompareAndSwap(false, true) {
		return ChannelAlreadyClosedErr
	}
	ch.m.Lock()
	defer ch.m.Unlock()
	if err := ch.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return errors.Wrap(err, "close amqp channel")
	}
	return nil
}

func (ch *Channel) IsClosed() bool {
	return ch.closed.Load()
}

// ensure reopens the underlying channel if the broker closed it. Must be
// called with ch.m held.
func (ch *Channel) ensure() error {
	if ch.closed.Load() {
		return ChannelAlreadyClosedErr
	}
	if !ch.ch.IsClosed() {
		return nil
	}
	ch.l.Warn().Msg("channel closed, reopening")
	reopened, err := ch.conn.current().Channel()
	if err != nil {
		return errors.Wrap(err, "reopen channel")
	}
	ch.ch = reopened
	return nil
}

func (ch *Channel) ExchangeDeclare(name, kind string) error {
	ch.m.Lock()
	defer ch.m.Unlock()
	if err := ch.ensure(); err != nil {
		return err
	}
	if err := ch.ch.ExchangeDeclare(name, kind, true, false, false, false, nil); err != nil {
		return errors.Wrapf(err, "declare exchange %s", name)
	}
	return nil
}

func (ch *Channel) Publish(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	ch.m.Lock()
	defer ch.m.Unlock()
	if err := ch.ensure(); err != nil {
		return err
	}
	if err := ch.ch.PublishWithContext(ctx, exchange, key, mandatory, immediate, msg); err != nil {
		return errors.Wrap(err, "failed to publish")
	}
	return nil
}

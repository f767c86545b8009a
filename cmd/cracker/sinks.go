package main

import (
	"context"
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/crypt-crack/common/amqp"
	"github.com/ykhdr/crypt-crack/common/amqp/publisher"
	mongostore "github.com/ykhdr/crypt-crack/common/store/mongo"
	"github.com/ykhdr/crypt-crack/config"
	"github.com/ykhdr/crypt-crack/internal/hashcrack"
	"github.com/ykhdr/crypt-crack/internal/report"
	"github.com/ykhdr/crypt-crack/internal/store/matchstore"
	"github.com/ykhdr/crypt-crack/pkg/messages"
)

// newReporter builds the out writer sink plus every enabled sink. The
// returned func releases the sink connections.
func newReporter(ctx context.Context, cfg *config.CrackerConfig, out io.Writer) (hashcrack.Reporter, func(), error) {
	sinks := []hashcrack.Reporter{report.NewWriterReporter(out)}
	var closers closerStack
	closeAll := closers.closeAll

	if cfg.AmqpEnabled() {
		conn, err := amqp.Dial(ctx, cfg.AmqpConfig)
		if err != nil {
			closeAll()
			return nil, nil, errors.Wrap(err, "failed to connect to amqp")
		}
		closers.push(func() {
			if err := conn.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close amqp connection")
			}
		})
		ch, err := conn.Channel()
		if err != nil {
			closeAll()
			return nil, nil, errors.Wrap(err, "failed to open amqp channel")
		}
		closers.push(func() {
			if err := ch.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close amqp channel")
			}
		})
		pub, err := publisher.New[messages.CrackMatch](
			ch,
			cfg.AmqpConfig.PublisherConfig.ToPublisherConfig(xml.Marshal, "application/xml"),
		)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		sinks = append(sinks, report.NewPublisherReporter(pub))
		log.Debug().Str("exchange", cfg.AmqpConfig.PublisherConfig.Exchange).Msg("amqp sink enabled")
	}

	if cfg.MongoEnabled() {
		client, err := mongostore.NewClient(&cfg.MongoDBConfig.ClientConfig)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers.push(func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("failed to disconnect from mongo")
			}
		})
		store := matchstore.NewMatchStore(
			client.Database(cfg.MongoDBConfig.Database),
			cfg.MongoDBConfig.Collection,
		)
		sinks = append(sinks, report.NewStoreReporter(store))
		log.Debug().Str("database", cfg.MongoDBConfig.Database).Msg("mongo sink enabled")
	}

	var reporter hashcrack.Reporter = report.NewMultiReporter(sinks...)
	if cfg.Deduplicate {
		reporter = report.NewDedupReporter(reporter)
	}
	return reporter, closeAll, nil
}

// closerStack releases resources in reverse order of acquisition, so a
// channel is closed before the connection it was opened on.
type closerStack struct {
	fns []func()
}

func (c *closerStack) push(fn func()) {
	c.fns = append(c.fns, fn)
}

func (c *closerStack) closeAll() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
	c.fns = nil
}

package amqp

import (
	"time"

	"github.com/ykhdr/crypt-crack/common/amqp/publisher"
)

type Config struct {
	Enabled          bool             `kdl:"enabled"`
	URI              string           `kdl:"uri"`
	Username         string           `kdl:"username"`
	Password         string           `kdl:"password"`
	ReconnectTimeout time.Duration    `kdl:"reconnect-timeout"`
	PublisherConfig  *PublisherConfig `kdl:"publisher"`
}

type PublisherConfig struct {
	Exchange     string `kdl:"exchange"`
	ExchangeType string `kdl:"exchange-type"`
	RoutingKey   string `kdl:"routing-key"`
	// Declare makes the publisher declare a durable exchange on start.
	Declare bool `kdl:"declare"`
}

func (p *PublisherConfig) ToPublisherConfig(
	marshal publisher.Marshal,
	contentType string,
) *publisher.Config {
	return &publisher.Config{
		Exchange:     p.Exchange,
		ExchangeType: p.ExchangeType,
		RoutingKey:   p.RoutingKey,
		Declare:      p.Declare,
		Marshal:      marshal,
		ContentType:  contentType,
	}
}

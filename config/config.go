package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/ykhdr/crypt-crack/common/amqp"
	"github.com/ykhdr/crypt-crack/common/config"
	"github.com/ykhdr/crypt-crack/common/consul"
	"github.com/ykhdr/crypt-crack/common/store/mongo"
)

type StatusServerConfig struct {
	Enabled bool   `kdl:"enabled"`
	Address string `kdl:"address"`
}

type CrackerConfig struct {
	config.LogConfig
	Workers            int                 `kdl:"workers"`
	SaltLength         int                 `kdl:"salt-length"`
	HashLength         int                 `kdl:"hash-length"`
	HashTag            string              `kdl:"hash-tag"`
	Strategy           string              `kdl:"strategy"`
	HashesPath         string              `kdl:"hashes-path"`
	DictionaryPath     string              `kdl:"dictionary-path"`
	Deduplicate        bool                `kdl:"deduplicate"`
	StatusServerConfig *StatusServerConfig `kdl:"status-server"`
	ConsulConfig       *consul.Config      `kdl:"consul"`
	AmqpConfig         *amqp.Config        `kdl:"amqp"`
	MongoDBConfig      *mongo.Config       `kdl:"mongodb"`
}

func DefaultConfig() *CrackerConfig {
	return &CrackerConfig{
		LogConfig: config.LogConfig{
			LogLevel: "info",
		},
		Workers:    16,
		SaltLength: 20,
		HashLength: 106,
		HashTag:    "$6$",
		Strategy:   "digit-insertion",
		StatusServerConfig: &StatusServerConfig{
			Address: "127.0.0.1:8090",
		},
		ConsulConfig: &consul.Config{
			Address: "consul:8500",
			Health: &consul.HealthConfig{
				Interval:        "5s",
				Timeout:         "1s",
				Http:            "/api/health",
				DeregisterAfter: "1m",
			},
		},
		AmqpConfig: &amqp.Config{
			URI:              "amqp://rabbitmq:5672/",
			Username:         "guest",
			Password:         "guest",
			ReconnectTimeout: 5 * time.Second,
			PublisherConfig: &amqp.PublisherConfig{
				Exchange:     "crypt-crack",
				ExchangeType: "topic",
				RoutingKey:   "crack.match",
				Declare:      true,
			},
		},
		MongoDBConfig: &mongo.Config{
			ClientConfig: mongo.ClientConfig{
				URI: "mongodb://mongo:27017",
			},
			Database:   "crypt-crack",
			Collection: "matches",
		},
	}
}

func InitializeConfig(args []string) (*CrackerConfig, error) {
	return config.InitializeConfig[CrackerConfig](args, *DefaultConfig())
}

func (c *CrackerConfig) Validate() error {
	if c.Workers <= 0 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.SaltLength <= 0 || c.SaltLength >= c.HashLength {
		return errors.Errorf("salt-length %d must be positive and below hash-length %d", c.SaltLength, c.HashLength)
	}
	if len(c.HashTag) > c.SaltLength {
		return errors.Errorf("hash-tag %q is longer than salt-length %d", c.HashTag, c.SaltLength)
	}
	if c.StatusServerConfig != nil && c.StatusServerConfig.Enabled && c.StatusServerConfig.Address == "" {
		return errors.New("status-server is enabled without an address")
	}
	if c.ConsulConfig != nil && c.ConsulConfig.Enabled && !c.StatusServerEnabled() {
		return errors.New("consul registration requires the status server")
	}
	if c.AmqpEnabled() && c.AmqpConfig.PublisherConfig == nil {
		return errors.New("amqp is enabled without a publisher block")
	}
	return nil
}

func (c *CrackerConfig) StatusServerEnabled() bool {
	return c.StatusServerConfig != nil && c.StatusServerConfig.Enabled
}

func (c *CrackerConfig) ConsulEnabled() bool {
	return c.ConsulConfig != nil && c.ConsulConfig.Enabled
}

func (c *CrackerConfig) AmqpEnabled() bool {
	return c.AmqpConfig != nil && c.AmqpConfig.Enabled
}

func (c *CrackerConfig) MongoEnabled() bool {
	return c.MongoDBConfig != nil && c.MongoDBConfig.Enabled
}

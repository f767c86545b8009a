package amqp

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	conn "github.com/ykhdr/crypt-crack/common/amqp/connection"
)

// Dial opens a self-healing connection using PLAIN credentials from cfg.
func Dial(ctx context.Context, cfg *Config) (*conn.Connection, error) {
	opts := amqp.Config{
		SASL: []amqp.Authentication{
			&amqp.PlainAuth{
				Username: cfg.Username,
				Password: cfg.Password,
			},
		},
		Properties: amqp.Table{
			"connection_name": "crypt-crack",
		},
	}
	return conn.NewConnection(ctx, cfg.URI, opts, cfg.ReconnectTimeout)
}

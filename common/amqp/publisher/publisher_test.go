package publisher

import (
	"context"
	"encoding/xml"
	"testing"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared  []string
	published []amqp.Publishing
	keys      []string
	err       error
}

func (c *fakeChannel) ExchangeDeclare(name, kind string) error {
	c.declared = append(c.declared, name+":"+kind)
	return nil
}

func (c *fakeChannel) Publish(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.keys = append(c.keys, exchange+"/"+key)
	c.published = append(c.published, msg)
	return nil
}

type note struct {
	XMLName xml.Name `xml:"Note"`
	Text    string   `xml:"Text"`
}

func TestPublisher_SendMessage(t *testing.T) {
	t.Run("marshals and publishes to configured exchange", func(t *testing.T) {
		// Prepare
		ch := &fakeChannel{}
		pub, err := New[note](ch, &Config{
			Exchange:    "crack",
			RoutingKey:  "crack.match",
			Declare:     true,
			Marshal:     xml.Marshal,
			ContentType: "application/xml",
		})
		require.NoError(t, err)

		// Execute
		err = pub.SendMessage(context.Background(), &note{Text: "passw0rd"}, Persistent, false, false)

		// Check
		require.NoError(t, err)
		assert.Equal(t, []string{"crack:topic"}, ch.declared, "exchange declared")
		require.Len(t, ch.published, 1)
		assert.Equal(t, "crack/crack.match", ch.keys[0])
		assert.Equal(t, uint8(Persistent), ch.published[0].DeliveryMode)
		assert.Equal(t, "application/xml", ch.published[0].ContentType)
		assert.Contains(t, string(ch.published[0].Body), "<Text>passw0rd</Text>")
	})

	t.Run("defaults to json", func(t *testing.T) {
		// Prepare
		ch := &fakeChannel{}
		pub, err := New[note](ch, &Config{Exchange: "crack"})
		require.NoError(t, err)

		// Execute
		err = pub.SendMessage(context.Background(), &note{Text: "x"}, Transient, false, false)

		// Check
		require.NoError(t, err)
		assert.Empty(t, ch.declared, "no declare unless asked")
		assert.Equal(t, "application/json", ch.published[0].ContentType)
	})

	t.Run("wraps publish errors", func(t *testing.T) {
		// Prepare
		cause := errors.New("broker gone")
		pub, err := New[note](&fakeChannel{err: cause}, &Config{})
		require.NoError(t, err)

		// Execute
		err = pub.SendMessage(context.Background(), &note{}, Transient, false, false)

		// Check
		assert.ErrorIs(t, err, cause)
	})
}

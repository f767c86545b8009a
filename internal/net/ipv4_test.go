package net

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvertiseAddr(t *testing.T) {
	t.Run("keeps a concrete host", func(t *testing.T) {
		// Prepare
		addr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8090}

		// Execute
		host, port, err := AdvertiseAddr(addr)

		// Check
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1", host)
		assert.Equal(t, 8090, port)
	})

	t.Run("replaces a wildcard host", func(t *testing.T) {
		// Prepare
		addr := &net.TCPAddr{IP: net.IPv4zero, Port: 9000}
		want, ferr := FindAvailableIPv4Addr()
		if ferr != nil {
			t.Skip("no non-loopback interface")
		}

		// Execute
		host, port, err := AdvertiseAddr(addr)

		// Check
		require.NoError(t, err)
		assert.Equal(t, string(want), host)
		assert.Equal(t, 9000, port)
	})
}

package app

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRedis(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		var buf bytes.Buffer
		rdb := connectRedis(context.Background(), Config{RedisAddr: mr.Addr()}, NewLogger(&buf, 0))
		t.Cleanup(func() { _ = rdb.Close() })

		require.NotNil(t, rdb)
		assert.NotContains(t, buf.String(), "redis unavailable")
	})

	t.Run("unreachable only warns", func(t *testing.T) {
		// grab a free port and release it so nothing is listening there
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().String()
		require.NoError(t, ln.Close())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		var buf bytes.Buffer
		rdb := connectRedis(ctx, Config{RedisAddr: addr}, NewLogger(&buf, 0))
		t.Cleanup(func() { _ = rdb.Close() })

		require.NotNil(t, rdb)
		assert.Contains(t, buf.String(), "redis unavailable")
	})
}

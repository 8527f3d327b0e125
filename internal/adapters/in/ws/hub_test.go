package ws

import (
	"testing"

	"courierhub/internal/core/application/realtime"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SendDropsWhenBufferIsFull(t *testing.T) {
	hub := NewHub(Config{SendBufferSize: 1}, nil)
	id := kernel.NewUUID()
	_, ok := hub.attach(id, nil)
	require.True(t, ok)

	require.NoError(t, hub.Send(id, realtime.StatusUpdateSuccess{}))
	require.ErrorIs(t, hub.Send(id, realtime.StatusUpdateSuccess{}), ErrSendBufferFull)
}

func TestHub_SendToUnknownOrClosedConnection(t *testing.T) {
	hub := NewHub(DefaultConfig(), nil)
	id := kernel.NewUUID()

	require.ErrorIs(t, hub.Send(id, realtime.StatusUpdateSuccess{}), errs.ErrConnectionNotFound)

	c, ok := hub.attach(id, nil)
	require.True(t, ok)
	c.close()
	require.ErrorIs(t, hub.Send(id, realtime.StatusUpdateSuccess{}), errs.ErrConnectionNotFound)

	hub.detach(id)
	require.ErrorIs(t, hub.Send(id, realtime.StatusUpdateSuccess{}), errs.ErrConnectionNotFound)
	assert.Equal(t, 0, hub.Len())
}

func TestHub_CloseRefusesNewConnections(t *testing.T) {
	hub := NewHub(DefaultConfig(), nil)
	id := kernel.NewUUID()
	c, ok := hub.attach(id, nil)
	require.True(t, ok)

	hub.Close()

	select {
	case <-c.done:
	default:
		t.Fatal("client was not closed")
	}
	_, ok = hub.attach(kernel.NewUUID(), nil)
	assert.False(t, ok)
}

func TestNewHub_Defaults(t *testing.T) {
	hub := NewHub(Config{PongWait: DefaultConfig().PongWait, PingPeriod: DefaultConfig().PongWait * 2}, nil)

	assert.Less(t, hub.cfg.PingPeriod, hub.cfg.PongWait)
	assert.Equal(t, DefaultConfig().SendBufferSize, hub.cfg.SendBufferSize)
}

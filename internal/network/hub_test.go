package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisp-server/pkg/api"
)

func TestBroadcaster(t *testing.T) {
	b := NewBroadcaster()

	ch := b.Register("s1")
	assert.True(t, b.HasSubscriber("s1"))
	assert.False(t, b.HasSubscriber("s2"))
	assert.Equal(t, 1, b.SubscriberCount())

	t.Run("unicast", func(t *testing.T) {
		assert.True(t, b.SendTo("s1", api.ServerResponse{Type: api.ResponseUpdate, Tick: 3}))
		msg := <-ch
		assert.Equal(t, 3, msg.Tick)

		assert.False(t, b.SendTo("nobody", api.ServerResponse{}))
	})

	t.Run("full channel drops", func(t *testing.T) {
		for i := 0; i < cap(ch); i++ {
			require.True(t, b.SendTo("s1", api.ServerResponse{Tick: i}))
		}
		assert.False(t, b.SendTo("s1", api.ServerResponse{}))
		for len(ch) > 0 {
			<-ch
		}
	})

	t.Run("re-register closes old channel", func(t *testing.T) {
		fresh := b.Register("s1")
		_, open := <-ch
		assert.False(t, open)
		ch = fresh
	})

	t.Run("broadcast", func(t *testing.T) {
		other := b.Register("s2")
		b.Broadcast(api.ServerResponse{Type: api.ResponseError})
		assert.Equal(t, api.ResponseError, (<-ch).Type)
		assert.Equal(t, api.ResponseError, (<-other).Type)
	})

	b.Unregister("s1")
	b.Unregister("s2")
	assert.Equal(t, 0, b.SubscriberCount())
	_, open := <-ch
	assert.False(t, open)
}

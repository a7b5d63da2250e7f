package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	ev := New("order_placed", "42", map[string]any{"total": "10"})
	msg, err := encode(TopicOrders, "42", ev)
	require.NoError(t, err)

	assert.Equal(t, TopicOrders, msg.Topic)
	assert.Equal(t, []byte("42"), msg.Key)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "order_placed", body["type"])
	assert.Equal(t, "42", body["entity_id"])
}

func TestEncodeRejectsUnmarshalable(t *testing.T) {
	_, err := encode(TopicOrders, "k", map[string]any{"ch": make(chan int)})
	require.Error(t, err)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	ctx := context.Background()
	require.NoError(t, r.PublishEvent(ctx, TopicProducts, "1", New("product_created", "1", nil)))
	require.NoError(t, r.PublishEvent(ctx, TopicOrders, "2", New("order_placed", "2", nil)))
	require.NoError(t, r.PublishEvent(ctx, TopicProducts, "1", New("product_deleted", "1", nil)))

	assert.Len(t, r.Events(), 3)
	assert.Equal(t, []string{"product_created", "product_deleted"}, r.Types(TopicProducts))
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.PublishEvent(context.Background(), TopicUsers, "", nil))
	assert.NoError(t, p.Close())
}

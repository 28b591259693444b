package websocket

import (
	"encoding/json"
	"testing"
	"time"

	appTodo "github.com/tinytodo/backend/internal/application/todo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func receive(t *testing.T, conn *Connection) []byte {
	t.Helper()
	select {
	case data, ok := <-conn.Send:
		require.True(t, ok, "send channel closed unexpectedly")
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for broadcast")
		return nil
	}
}

func TestHub_BroadcastToAllClients(t *testing.T) {
	hub := startHub(t)

	c1, c2 := NewConnection(), NewConnection()
	require.True(t, hub.Register(c1))
	require.True(t, hub.Register(c2))

	require.NoError(t, hub.Broadcast(map[string]string{"hello": "world"}))

	assert.JSONEq(t, `{"hello":"world"}`, string(receive(t, c1)))
	assert.JSONEq(t, `{"hello":"world"}`, string(receive(t, c2)))
}

func TestHub_Unregister(t *testing.T) {
	hub := startHub(t)

	conn := NewConnection()
	require.True(t, hub.Register(conn))
	hub.Unregister(conn)

	_, ok := <-conn.Send
	assert.False(t, ok, "注销后发送通道应关闭")
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub := startHub(t)

	slow := NewConnection()
	require.True(t, hub.Register(slow))

	for i := 0; i < sendBufferSize+1; i++ {
		require.NoError(t, hub.Broadcast(i))
		// 避免广播队列本身溢出
		time.Sleep(time.Millisecond)
	}

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_Stop(t *testing.T) {
	hub := NewHub()
	hub.Start()

	conn := NewConnection()
	require.True(t, hub.Register(conn))
	hub.Stop()
	hub.Stop() // 重复调用安全

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-conn.Send:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	assert.False(t, hub.Register(NewConnection()), "停止后不再接受注册")
}

func TestHub_BroadcastWithoutRunDoesNotBlock(t *testing.T) {
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			_ = hub.Broadcast(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked")
	}
}

func TestHub_BroadcastMarshalError(t *testing.T) {
	hub := NewHub()
	assert.Error(t, hub.Broadcast(make(chan int)))
}

func TestTodoEventPusher_Push(t *testing.T) {
	hub := startHub(t)
	conn := NewConnection()
	require.True(t, hub.Register(conn))

	pusher := NewTodoEventPusher(hub)
	pusher.Push(appTodo.Event{
		Type: appTodo.EventCreated,
		Todo: &appTodo.TodoDTO{ID: "1", Title: "buy milk", CreatedAt: "2024-01-01T00:00:00.000000000Z"},
	})

	var event appTodo.Event
	require.NoError(t, json.Unmarshal(receive(t, conn), &event))
	assert.Equal(t, appTodo.EventCreated, event.Type)
	assert.Equal(t, "buy milk", event.Todo.Title)
}

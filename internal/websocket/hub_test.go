package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-management/internal/models"
)

type stubConn struct {
	mu       sync.Mutex
	fail     bool
	closed   bool
	messages [][]byte
}

func (c *stubConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("use of closed network connection")
	}
	c.messages = append(c.messages, append([]byte(nil), data...))
	return nil
}

func (c *stubConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *stubConn) messageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *stubConn) lastMessage() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}

func (c *stubConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestHubBroadcastTaskEvent(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := &stubConn{}
	hub.Register <- &Client{Conn: conn}

	task := models.Task{ID: 7, UserID: 1, Title: "Belajar websocket", Status: models.StatusTodo, Priority: models.PriorityMedium}
	hub.BroadcastTaskEvent("created", &task)

	require.Eventually(t, func() bool {
		return conn.messageCount() == 1
	}, time.Second, 10*time.Millisecond)

	var event TaskEvent
	require.NoError(t, json.Unmarshal(conn.lastMessage(), &event))
	assert.Equal(t, "created", event.Action)
	assert.Equal(t, task.ID, event.Task.ID)
	assert.Equal(t, task.Title, event.Task.Title)
}

func TestHubDropsClientOnWriteError(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	healthy := &stubConn{}
	broken := &stubConn{fail: true}
	hub.Register <- &Client{Conn: healthy}
	hub.Register <- &Client{Conn: broken}

	task := models.Task{ID: 1, UserID: 1, Title: "Tugas pertama"}
	hub.BroadcastTaskEvent("created", &task)

	require.Eventually(t, func() bool {
		return healthy.messageCount() == 1 && broken.isClosed()
	}, time.Second, 10*time.Millisecond)

	// Hub harus tetap hidup dan mengirim event berikutnya ke klien sehat
	hub.BroadcastTaskEvent("deleted", &task)

	require.Eventually(t, func() bool {
		return healthy.messageCount() == 2
	}, time.Second, 10*time.Millisecond)

	var event TaskEvent
	require.NoError(t, json.Unmarshal(healthy.lastMessage(), &event))
	assert.Equal(t, "deleted", event.Action)
	assert.Zero(t, broken.messageCount())
}

func TestHubUnregisterClosesConn(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := &stubConn{}
	client := &Client{Conn: conn}
	hub.Register <- client
	hub.Unregister <- client

	require.Eventually(t, func() bool {
		return conn.isClosed()
	}, time.Second, 10*time.Millisecond)

	task := models.Task{ID: 2, UserID: 1, Title: "Tugas kedua"}
	hub.BroadcastTaskEvent("updated", &task)
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, conn.messageCount())
}

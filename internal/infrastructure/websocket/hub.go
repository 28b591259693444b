package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/tinytodo/backend/internal/infrastructure/log"
)

// 每个连接的发送缓冲，写满即视为慢客户端并断开
const sendBufferSize = 64

// Hub WebSocket 连接管理中心，向所有订阅者广播消息
type Hub struct {
	clients    map[*Connection]bool
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan []byte
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
	logger     *slog.Logger
}

// Connection 订阅连接
type Connection struct {
	Send chan []byte
}

// NewConnection 创建订阅连接
func NewConnection() *Connection {
	return &Connection{Send: make(chan []byte, sendBufferSize)}
}

// NewHub 创建 Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		logger:     log.NewModuleLogger("websocket", "hub"),
	}
}

// Run 运行 Hub（需要在 goroutine 中运行），Stop 后返回
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			h.remove(conn)
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				select {
				case conn.Send <- data:
				default:
					h.remove(conn)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for conn := range h.clients {
				h.remove(conn)
			}
			h.mu.Unlock()
			return
		}
	}
}

// remove 需持有写锁
func (h *Hub) remove(conn *Connection) {
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(conn.Send)
	}
}

// Start 启动 Hub（启动后台 goroutine）
func (h *Hub) Start() {
	go h.Run()
}

// Stop 停止 Hub 并关闭所有连接的发送通道
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Register 注册连接，Hub 已停止时返回 false
func (h *Hub) Register(conn *Connection) bool {
	select {
	case <-h.done:
		return false
	default:
	}

	select {
	case h.register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// Unregister 注销连接
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// ClientCount 当前连接数
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast 广播消息，不阻塞调用方：队列满时丢弃
func (h *Hub) Broadcast(data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- jsonData:
	default:
		h.logger.Warn("broadcast queue full, message dropped")
	}
	return nil
}

package http

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appTodo "github.com/tinytodo/backend/internal/application/todo"
	"github.com/tinytodo/backend/internal/infrastructure/config"
	"github.com/tinytodo/backend/internal/infrastructure/storage"
	infraWS "github.com/tinytodo/backend/internal/infrastructure/websocket"
	"github.com/tinytodo/backend/internal/interfaces/http/handler"
	"github.com/tinytodo/backend/internal/interfaces/http/middleware"
	"github.com/tinytodo/backend/internal/interfaces/mcp"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	server    *HTTPServer
	router    http.Handler
	hub       *infraWS.Hub
	staticDir string
}

// setupTestEnv 组装完整路由：临时数据库、Hub、静态目录
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	staticDir := filepath.Join(dir, "static")
	require.NoError(t, os.MkdirAll(filepath.Join(staticDir, "assets"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>todo</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "assets", "app.js"), []byte("console.log('todo')"), 0644))

	db, err := storage.ProvideDB(&config.DatabaseConfig{
		Path:         filepath.Join(dir, "todos.db"),
		MaxOpenConns: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	hub := infraWS.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	service := appTodo.NewService(storage.NewTodoRepository(db), infraWS.NewTodoEventPusher(hub))
	mcpServer := mcp.NewServer(service)

	server := NewServer(
		&config.ServerConfig{Host: "127.0.0.1", Port: "0", StaticDir: staticDir},
		handler.NewTodoHandler(service),
		handler.NewEventsHandler(hub),
		mcpServer,
	)

	return &testEnv{server: server, router: server.Handler(), hub: hub, staticDir: staticDir}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_Scenario(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/api/todos", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var created appTodo.TodoDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(http.MethodPut, "/api/todos/"+created.ID, `{"completed":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/todos", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []appTodo.TodoDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Buy milk", list[0].Title)
	assert.True(t, list[0].Completed)

	w = env.do(http.MethodDelete, "/api/todos/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(http.MethodGet, "/api/todos", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_StaticFallback(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodGet, "/assets/app.js", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log('todo')", w.Body.String())

	w = env.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<html>todo</html>")

	w = env.do(http.MethodGet, "/missing.css", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CORS(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/todos", nil)
		req.Header.Set("Origin", "http://localhost:4200")
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		req.Header.Set("Access-Control-Request-Headers", "content-type")
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
	})

	t.Run("simple request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
		req.Header.Set("Origin", "http://localhost:4200")
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRouter_RequestID(t *testing.T) {
	env := setupTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(middleware.HeaderRequestID))

	w = env.do(http.MethodGet, "/api/todos", "")
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestRouter_SwaggerDoc(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodGet, "/swagger/doc.json", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/todos/{id}")
}

func TestRouter_TodoEvents(t *testing.T) {
	env := setupTestEnv(t)

	server := httptest.NewServer(env.router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/todos/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return env.hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Post(server.URL+"/api/todos", "application/json", strings.NewReader(`{"title":"Watch"}`))
	require.NoError(t, err)
	var created appTodo.TodoDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event appTodo.Event
	require.NoError(t, conn.ReadJSON(&event))

	assert.Equal(t, appTodo.EventCreated, event.Type)
	require.NotNil(t, event.Todo)
	assert.Equal(t, created, *event.Todo)
}

func TestHTTPServer_ServeAndStop(t *testing.T) {
	env := setupTestEnv(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := env.server

	done := make(chan error, 1)
	go func() { done <- s.Serve(listener) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, s.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestHTTPServer_StopBeforeServe(t *testing.T) {
	env := setupTestEnv(t)

	// 启动前收到关闭信号：之后的 Serve 立即返回，不再接受连接
	require.NoError(t, env.server.Stop())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	done := make(chan error, 1)
	go func() { done <- env.server.Serve(listener) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve kept running after Stop")
	}
}

func TestRouter_RejectsInvalidUTF8Body(t *testing.T) {
	env := setupTestEnv(t)

	for _, body := range []string{"{\"title\":\"\x80\"}", "{\"title\":\"\xff\xfe\"}", "{\"title\":\"ok\xc3(\"}"} {
		w := env.do(http.MethodPost, "/api/todos", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	w := env.do(http.MethodGet, "/api/todos", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

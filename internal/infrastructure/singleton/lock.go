package singleton

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"
)

// HealthCheckTimeout 健康检查超时时间
const HealthCheckTimeout = 2 * time.Second

// CheckAndLock 检查监听地址是否被占用，被占用时探测是否已有实例在运行
// 地址可用：返回 listener
// 已有健康实例：返回 nil listener 和 nil error（调用者应退出）
// 地址被占用但实例不健康：返回错误
func CheckAndLock(addr string) (net.Listener, error) {
	listener, err := net.Listen("tcp", addr)
	if err == nil {
		return listener, nil
	}

	if isAddrInUse(err) {
		if isInstanceRunning(addr) {
			return nil, nil
		}
		return nil, fmt.Errorf("地址 %s 被占用，但健康检查失败", addr)
	}

	return nil, fmt.Errorf("监听地址失败: %w", err)
}

// isAddrInUse 检查错误是否是地址已在使用
func isAddrInUse(err error) bool {
	if err == nil {
		return false
	}
	// Windows: WSAEADDRINUSE (10048)
	return errors.Is(err, syscall.EADDRINUSE) || errors.Is(err, syscall.Errno(10048))
}

// healthURL 由监听地址推导本机健康检查地址，通配地址改为回环地址
func healthURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Sprintf("http://%s/health", addr)
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s/health", net.JoinHostPort(host, port))
}

// isInstanceRunning 检查是否有实例在运行
func isInstanceRunning(addr string) bool {
	client := &http.Client{
		Timeout: HealthCheckTimeout,
	}

	resp, err := client.Get(healthURL(addr))
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

package server

import (
	"bufio"
	"context"
	"errors"
	"log"
	"net"
	"time"

	"rinhabank/internal/handler"
	"rinhabank/internal/protocol"
)

// Server 对外 TCP 服务：每个连接一个请求，一个连接一个 goroutine
type Server struct {
	handler     *handler.Handler
	readTimeout time.Duration
	listener    net.Listener
}

func New(h *handler.Handler, readTimeout time.Duration) *Server {
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	return &Server{
		handler:     h,
		readTimeout: readTimeout,
	}
}

// ListenAndServe 启动监听循环，阻塞直到 Shutdown
func (s *Server) ListenAndServe(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	log.Printf("[Server] 开始监听 %s", addr)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Printf("[Server] 接受连接失败: %v", err)
			continue
		}
		go s.handleConn(conn)
	}
}

// Shutdown 关闭监听器，已接受的连接继续处理完
func (s *Server) Shutdown() {
	if s.listener != nil {
		s.listener.Close()
	}
}

// handleConn 处理一个连接上的一个请求
// 单个请求的任何错误（包括 panic）只终止本请求，不影响监听循环
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Server] 请求处理 panic: %v", r)
			protocol.WriteResponse(conn, 500, protocol.EmptyBody)
		}
	}()

	// 读超时兜底：声明了 Content-Length 却少发字节的客户端不会挂住 goroutine
	conn.SetReadDeadline(time.Now().Add(s.readTimeout))

	reader := bufio.NewReader(conn)
	req, err := protocol.ParseRequest(reader)
	if err != nil {
		if writeErr := protocol.WriteResponse(conn, decodeErrorStatus(err), protocol.EmptyBody); writeErr != nil {
			log.Printf("[Server] 写响应失败: %v", writeErr)
		}
		return
	}

	status, body := s.handler.Dispatch(context.Background(), req)
	if err := protocol.WriteResponse(conn, status, body); err != nil {
		log.Printf("[Server] 写响应失败: %v", err)
	}
}

// decodeErrorStatus 解码错误到状态码的映射
// 请求行/请求头坏 -> 400，请求体坏（含截断）-> 422
func decodeErrorStatus(err error) int {
	if errors.Is(err, protocol.ErrMalformedBody) {
		return 422
	}
	return 400
}

package protocol

import (
	"fmt"
	"io"
	"net/http"
)

// EmptyBody 错误响应统一返回空 JSON 对象，不向客户端暴露错误细节
const EmptyBody = "{}"

// WriteResponse 按状态码和 JSON 体写出一个响应
// 不协商长度，连接由调用方在写完后关闭
func WriteResponse(w io.Writer, status int, body string) error {
	if body == "" {
		body = EmptyBody
	}
	_, err := fmt.Fprintf(w, "HTTP/1.1 %d %s\r\nContent-Type: application/json\r\n\r\n%s",
		status, http.StatusText(status), body)
	return err
}

package protocol

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteResponse(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantPrefix string
		wantBody   string
	}{
		{
			name:       "成功响应",
			status:     200,
			body:       `{"limite":1000,"saldo":-900}`,
			wantPrefix: "HTTP/1.1 200 OK\r\n",
			wantBody:   `{"limite":1000,"saldo":-900}`,
		},
		{
			name:       "错误响应默认空 JSON 体",
			status:     404,
			body:       "",
			wantPrefix: "HTTP/1.1 404 Not Found\r\n",
			wantBody:   "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteResponse(&buf, tt.status, tt.body); err != nil {
				t.Fatalf("WriteResponse err=%v", err)
			}
			got := buf.String()
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Fatalf("got=%q wantPrefix=%q", got, tt.wantPrefix)
			}
			if !strings.Contains(got, "Content-Type: application/json\r\n\r\n") {
				t.Fatalf("缺少 Content-Type 或空行: %q", got)
			}
			if !strings.HasSuffix(got, tt.wantBody) {
				t.Fatalf("got=%q wantBody=%q", got, tt.wantBody)
			}
		})
	}
}

package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func parse(t *testing.T, raw string) (*Request, error) {
	t.Helper()
	return ParseRequest(bufio.NewReader(strings.NewReader(raw)))
}

func TestParseStatementRequest(t *testing.T) {
	raw := "GET /clientes/42/extrato HTTP/1.1\r\nHost: localhost\r\n\r\n"
	req, err := parse(t, raw)
	if err != nil {
		t.Fatalf("ParseRequest err=%v", err)
	}
	if req.Verb != "GET" || req.AccountID != "42" || req.Suffix != "extrato" {
		t.Fatalf("got=%+v", req)
	}
	if req.Route != "GET /clientes/:id/extrato" {
		t.Fatalf("route=%q", req.Route)
	}
	if req.Body != nil {
		t.Fatalf("GET 请求不应有请求体: %+v", req.Body)
	}
}

func TestParseTransactionRequest(t *testing.T) {
	body := `{"valor": 1000, "tipo": "c", "descricao": "deposito"}`
	raw := fmt.Sprintf(
		"POST /clientes/7/transacoes HTTP/1.1\r\nHost: localhost\r\nContent-Length: %d\r\n\r\n%s",
		len(body), body)

	req, err := parse(t, raw)
	if err != nil {
		t.Fatalf("ParseRequest err=%v", err)
	}
	if req.Route != "POST /clientes/:id/transacoes" {
		t.Fatalf("route=%q", req.Route)
	}
	if req.Body == nil {
		t.Fatal("缺少请求体")
	}
	if *req.Body.Valor != 1000 || *req.Body.Tipo != "c" || *req.Body.Descricao != "deposito" {
		t.Fatalf("body=%+v", req.Body)
	}
}

func TestParseRequestErrors(t *testing.T) {
	withBody := func(body string) string {
		return fmt.Sprintf(
			"POST /clientes/1/transacoes HTTP/1.1\r\nContent-Length: %d\r\n\r\n%s",
			len(body), body)
	}

	tests := []struct {
		name string
		raw  string
		want error
	}{
		{
			name: "不支持的动词",
			raw:  "PUT /clientes/1/extrato HTTP/1.1\r\n\r\n",
			want: ErrMalformedRequestLine,
		},
		{
			name: "路径形状不对",
			raw:  "GET /outra/coisa HTTP/1.1\r\n\r\n",
			want: ErrMalformedRequestLine,
		},
		{
			name: "账户号不是数字",
			raw:  "GET /clientes/abc/extrato HTTP/1.1\r\n\r\n",
			want: ErrMalformedRequestLine,
		},
		{
			name: "Content-Length 不是数字",
			raw:  "POST /clientes/1/transacoes HTTP/1.1\r\nContent-Length: muitos\r\n\r\n",
			want: ErrMalformedHeader,
		},
		{
			name: "请求体不是 JSON",
			raw:  withBody("nao e json"),
			want: ErrMalformedBody,
		},
		{
			name: "缺少 valor 字段",
			raw:  withBody(`{"tipo": "c", "descricao": "x"}`),
			want: ErrMalformedBody,
		},
		{
			name: "缺少 tipo 字段",
			raw:  withBody(`{"valor": 1, "descricao": "x"}`),
			want: ErrMalformedBody,
		},
		{
			name: "缺少 descricao 字段",
			raw:  withBody(`{"valor": 1, "tipo": "c"}`),
			want: ErrMalformedBody,
		},
		{
			name: "valor 是字符串",
			raw:  withBody(`{"valor": "1000", "tipo": "c", "descricao": "x"}`),
			want: ErrMalformedBody,
		},
		{
			name: "valor 是小数",
			raw:  withBody(`{"valor": 1.2, "tipo": "c", "descricao": "x"}`),
			want: ErrMalformedBody,
		},
		{
			name: "tipo 不是字符串",
			raw:  withBody(`{"valor": 1, "tipo": 3, "descricao": "x"}`),
			want: ErrMalformedBody,
		},
		{
			name: "请求体少于声明长度",
			raw:  "POST /clientes/1/transacoes HTTP/1.1\r\nContent-Length: 100\r\n\r\n{\"valor\": 1}",
			want: ErrMalformedBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.raw)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err=%v want=%v", err, tt.want)
			}
		})
	}
}

// 解码器只允许消费到声明的 Content-Length 为止
func TestParseDoesNotReadPastContentLength(t *testing.T) {
	body := `{"valor": 1, "tipo": "d", "descricao": "pix"}`
	raw := fmt.Sprintf(
		"POST /clientes/1/transacoes HTTP/1.1\r\nContent-Length: %d\r\n\r\n%sSOBRA",
		len(body), body)

	reader := bufio.NewReader(strings.NewReader(raw))
	if _, err := ParseRequest(reader); err != nil {
		t.Fatalf("ParseRequest err=%v", err)
	}

	rest, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll err=%v", err)
	}
	if string(rest) != "SOBRA" {
		t.Fatalf("解码器多读了字节, rest=%q", rest)
	}
}

func TestParseRejectsOversizedBody(t *testing.T) {
	raw := "POST /clientes/1/transacoes HTTP/1.1\r\nContent-Length: 1048576\r\n\r\n"
	_, err := parse(t, raw)
	if !errors.Is(err, ErrMalformedBody) {
		t.Fatalf("err=%v want=%v", err, ErrMalformedBody)
	}
}

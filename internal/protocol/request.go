package protocol

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrMalformedRequestLine = errors.New("请求行格式错误")
	ErrMalformedHeader      = errors.New("请求头格式错误")
	ErrMalformedBody        = errors.New("请求体格式错误")
)

// 请求行形如 "POST /clientes/42/transacoes HTTP/1.1"
var requestLinePattern = regexp.MustCompile(`^(GET|POST) /clientes/(\d+)/([^ ]+) HTTP`)

// 请求体大小上限，声明超过该值直接按坏请求体处理
const maxBodySize = 4 * 1024

// Request 单次连接上解析出的一个请求
// AccountID 保留原始数字串，由上层决定解析失败的语义（按账户不存在处理）
type Request struct {
	Verb          string
	AccountID     string
	Suffix        string
	Route         string
	ContentLength int64
	Body          *TransactionPayload
}

// TransactionPayload 交易请求体
// 字段用指针区分「缺失」和「零值」，缺失或类型不符在解码阶段报错
// 取值范围、tipo 白名单等业务校验不在这里做
type TransactionPayload struct {
	Valor     *int64  `json:"valor"`
	Tipo      *string `json:"tipo"`
	Descricao *string `json:"descricao"`
}

// ParseRequest 从字节流解析一个请求
// 只消费到声明的 Content-Length 为止，不做任何业务校验
func ParseRequest(reader *bufio.Reader) (*Request, error) {
	line, err := readLine(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequestLine, err)
	}

	captures := requestLinePattern.FindStringSubmatch(line)
	if captures == nil {
		return nil, ErrMalformedRequestLine
	}

	req := &Request{
		Verb:      captures[1],
		AccountID: captures[2],
		Suffix:    captures[3],
	}
	req.Route = fmt.Sprintf("%s /clientes/:id/%s", req.Verb, req.Suffix)

	contentLength, err := readHeaders(reader)
	if err != nil {
		return nil, err
	}
	req.ContentLength = contentLength

	if contentLength > 0 {
		body, err := readBody(reader, contentLength)
		if err != nil {
			return nil, err
		}
		req.Body = body
	}

	return req, nil
}

// readHeaders 扫描请求头直到空行，提取 Content-Length（缺省为 0）
func readHeaders(reader *bufio.Reader) (int64, error) {
	var contentLength int64

	for {
		line, err := readLine(reader)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
		}
		if line == "" {
			return contentLength, nil
		}

		name, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			if err != nil || n < 0 {
				return 0, fmt.Errorf("%w: Content-Length 不是数字", ErrMalformedHeader)
			}
			contentLength = n
		}
	}
}

// readBody 精确读取 contentLength 个字节并解析为交易请求体
// 客户端发送不足声明长度时读取会失败，不会无限等待
func readBody(reader *bufio.Reader, contentLength int64) (*TransactionPayload, error) {
	if contentLength > maxBodySize {
		return nil, fmt.Errorf("%w: 请求体过大", ErrMalformedBody)
	}

	raw := make([]byte, contentLength)
	if _, err := io.ReadFull(reader, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	var payload TransactionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	if payload.Valor == nil || payload.Tipo == nil || payload.Descricao == nil {
		return nil, fmt.Errorf("%w: 缺少必填字段", ErrMalformedBody)
	}

	return &payload, nil
}

// readLine 读取一行并去掉行尾的 \r\n
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

package middleware

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/tinytodo/backend/internal/interfaces/http/response"
)

// MaxBodyBytes 请求体大小上限
const MaxBodyBytes = 1 << 20

// 错误码
const (
	codeInvalidEncoding = 100002
	codeBodyTooLarge    = 100003
)

// EnsureUTF8Body 确保请求体是 UTF-8 编码
// Content-Type 声明 GBK 系字符集时转换为 UTF-8（Windows 中文系统下的 curl）；
// 其余请求体必须是合法 UTF-8，否则直接返回 400
func EnsureUTF8Body() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
		c.Request.Body.Close()
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.Error(c, http.StatusRequestEntityTooLarge, codeBodyTooLarge, "请求体过大")
				return
			}
			response.Error(c, http.StatusBadRequest, codeInvalidEncoding, "读取请求体失败")
			return
		}

		if enc := declaredGBK(c.GetHeader("Content-Type")); enc != nil {
			converted, err := decodeWith(enc, body)
			if err != nil {
				response.Error(c, http.StatusBadRequest, codeInvalidEncoding, "请求体编码错误")
				return
			}
			body = converted
		}

		if !utf8.Valid(body) {
			response.Error(c, http.StatusBadRequest, codeInvalidEncoding, "请求体必须是 UTF-8 编码")
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Request.ContentLength = int64(len(body))
		c.Next()
	}
}

// declaredGBK 根据 Content-Type 的 charset 参数选择解码器，未声明 GBK 系字符集返回 nil
func declaredGBK(header string) encoding.Encoding {
	if header == "" {
		return nil
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return nil
	}
	switch strings.ToLower(params["charset"]) {
	case "gbk", "gb2312", "cp936":
		return simplifiedchinese.GBK
	case "gb18030":
		return simplifiedchinese.GB18030
	default:
		return nil
	}
}

// decodeWith 将指定编码的字节转换为 UTF-8
func decodeWith(enc encoding.Encoding, data []byte) ([]byte, error) {
	reader := transform.NewReader(bytes.NewReader(data), enc.NewDecoder())
	return io.ReadAll(reader)
}

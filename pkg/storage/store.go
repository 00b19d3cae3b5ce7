// Package storage 提供附件的持久化存储，支持本地磁盘与 MinIO 两种后端。
package storage

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"netqa-go/pkg/token"
)

// AttachmentStore 保存一个上传的附件并返回可公开访问的引用。
// 调用方负责关闭 r。
type AttachmentStore interface {
	Save(ctx context.Context, r io.Reader, filename, contentType string) (string, error)
}

const nameTimeFormat = "20060102_150405"

// IsImage 判断声明的内容类型是否为图片。
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "image/")
}

// storedName 生成 "<时间戳>_<8位随机十六进制>_<原始文件名>" 形式的存储名。
func storedName(now time.Time, filename string) string {
	return now.Format(nameTimeFormat) + "_" + token.GenerateRandomString(4) + "_" + baseName(filename)
}

// baseName 去掉客户端提供的目录部分，防止路径穿越。
func baseName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	switch name {
	case ".", "..", "/", "":
		return "file"
	}
	return name
}

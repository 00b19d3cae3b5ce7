package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"netqa-go/internal/config"
	"netqa-go/pkg/log"
)

const objectPrefix = "uploads/"

// MinIOStore 将附件作为对象写入 MinIO 存储桶。
type MinIOStore struct {
	client *minio.Client
	bucket string
	now    func() time.Time
}

// NewMinIOStore 初始化 MinIO 客户端并确保指定的存储桶存在。
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化 MinIO 客户端失败: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("检查 MinIO 存储桶失败: %w", err)
	}
	if !exists {
		log.Infof("存储桶 '%s' 不存在，正在创建...", cfg.BucketName)
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建 MinIO 存储桶失败: %w", err)
		}
	}
	log.Infof("MinIO 存储桶 '%s' 已就绪", cfg.BucketName)

	return &MinIOStore{client: client, bucket: cfg.BucketName, now: time.Now}, nil
}

// Save 上传对象并返回 "/<bucket>/uploads/<name>" 形式的引用。
// 对象名带随机后缀，不会覆盖已有对象。
func (s *MinIOStore) Save(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	objectName := objectPrefix + storedName(s.now(), filename)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, -1, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectName, err)
	}
	log.Infow("attachment stored", "bucket", s.bucket, "object", objectName, "contentType", contentType)
	return "/" + s.bucket + "/" + objectName, nil
}

package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/aihub/docqa-go/internal/config"
	"github.com/aihub/docqa-go/internal/logger"
)

// MinIOStorage 上传原始文件的对象存储归档
type MinIOStorage struct {
	client *minio.Client
	bucket string
	log    *zap.Logger
}

// InitMinIO 初始化MinIO客户端并确保bucket存在。未配置时返回错误，
// 调用方将归档视为可选能力。
func InitMinIO() (*MinIOStorage, error) {
	cfg := config.AppConfig
	if cfg == nil {
		return nil, fmt.Errorf("config not loaded")
	}
	mc := cfg.Storage.MinIO
	if !mc.Enabled || mc.Endpoint == "" {
		return nil, fmt.Errorf("minio not configured")
	}

	client, err := minio.New(mc.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(mc.AccessKey, mc.SecretKey, ""),
		Secure: mc.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, mc.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, mc.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStorage{
		client: client,
		bucket: mc.Bucket,
		log:    logger.Named("minio-storage"),
	}, nil
}

// Archive 按用户与时间归档上传的原始文件
func (s *MinIOStorage) Archive(ctx context.Context, userID uint, filename string, data []byte) error {
	objectName := path.Join(
		fmt.Sprintf("user_%d", userID),
		time.Now().UTC().Format("20060102T150405"),
		path.Base(filename),
	)

	_, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return fmt.Errorf("failed to archive upload: %w", err)
	}

	s.log.Debug("上传文件已归档",
		zap.String("bucket", s.bucket),
		zap.String("object", objectName))
	return nil
}

package docqa

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/aihub/docqa-go/internal/errors"
)

// RedisRecordStore 基于Redis的记录存储，多实例部署时共享记录
type RedisRecordStore struct {
	client *redis.Client
}

// NewRedisRecordStore 创建Redis记录存储
func NewRedisRecordStore(client *redis.Client) *RedisRecordStore {
	return &RedisRecordStore{client: client}
}

func backendKey(userID uint) string {
	return fmt.Sprintf("docqa:user:%d:current_model", userID)
}

func lastSourceKey(p Partition) string {
	return fmt.Sprintf("docqa:partition:%s:last_source", p.Key())
}

func (s *RedisRecordStore) ActiveBackend(ctx context.Context, userID uint) (Backend, error) {
	value, err := s.client.Get(ctx, backendKey(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "读取Redis记录失败").WithCause(err)
	}
	return Backend(value), nil
}

func (s *RedisRecordStore) SetActiveBackend(ctx context.Context, userID uint, backend Backend) error {
	if err := s.client.Set(ctx, backendKey(userID), string(backend), 0).Err(); err != nil {
		return apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "写入Redis记录失败").WithCause(err)
	}
	return nil
}

func (s *RedisRecordStore) LastSource(ctx context.Context, p Partition) (string, error) {
	value, err := s.client.Get(ctx, lastSourceKey(p)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "读取Redis记录失败").WithCause(err)
	}
	return value, nil
}

func (s *RedisRecordStore) SetLastSource(ctx context.Context, p Partition, source string) error {
	if err := s.client.Set(ctx, lastSourceKey(p), source, 0).Err(); err != nil {
		return apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "写入Redis记录失败").WithCause(err)
	}
	return nil
}

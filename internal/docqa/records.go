package docqa

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/aihub/docqa-go/internal/errors"
)

// RecordStore 旁路记录存储，保存每个用户的当前嵌入后端与每个分区的最近上传来源。
// 记录与向量索引分离，索引重建不影响记录，记录丢失时检索降级为重新探活。
type RecordStore interface {
	// ActiveBackend 返回用户当前索引使用的嵌入后端，未记录时返回空串
	ActiveBackend(ctx context.Context, userID uint) (Backend, error)
	// SetActiveBackend 记录用户当前索引使用的嵌入后端
	SetActiveBackend(ctx context.Context, userID uint, backend Backend) error
	// LastSource 返回分区最近一次上传的文件名，未记录时返回空串
	LastSource(ctx context.Context, p Partition) (string, error)
	// SetLastSource 记录分区最近一次上传的文件名
	SetLastSource(ctx context.Context, p Partition, source string) error
}

// FileRecordStore 基于本地文件的记录存储
type FileRecordStore struct {
	root string
}

// NewFileRecordStore 创建文件记录存储
func NewFileRecordStore(root string) *FileRecordStore {
	return &FileRecordStore{root: root}
}

func (s *FileRecordStore) backendPath(userID uint) string {
	return filepath.Join(s.root, fmt.Sprintf("user_%d_current_model.txt", userID))
}

func (s *FileRecordStore) sourcePath(p Partition) string {
	return filepath.Join(p.Dir(s.root), "last_source.txt")
}

func (s *FileRecordStore) ActiveBackend(ctx context.Context, userID uint) (Backend, error) {
	value, err := readRecord(s.backendPath(userID))
	if err != nil {
		return "", err
	}
	return Backend(value), nil
}

func (s *FileRecordStore) SetActiveBackend(ctx context.Context, userID uint, backend Backend) error {
	return writeRecord(s.backendPath(userID), string(backend))
}

func (s *FileRecordStore) LastSource(ctx context.Context, p Partition) (string, error) {
	return readRecord(s.sourcePath(p))
}

func (s *FileRecordStore) SetLastSource(ctx context.Context, p Partition, source string) error {
	return writeRecord(s.sourcePath(p), source)
}

func readRecord(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "读取记录文件失败").WithCause(err)
	}
	return strings.TrimSpace(string(data)), nil
}

func writeRecord(path, value string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "创建记录目录失败").WithCause(err)
	}
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "写入记录文件失败").WithCause(err)
	}
	return nil
}

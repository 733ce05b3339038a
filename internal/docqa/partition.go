package docqa

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Partition 向量索引分区，由用户与嵌入后端共同确定。
// 不同后端的向量维度不同，必须物理隔离，避免维度混存。
type Partition struct {
	UserID  uint
	Backend Backend
}

// ResolvePartition 解析分区标识
func ResolvePartition(userID uint, backend Backend) Partition {
	return Partition{UserID: userID, Backend: backend}
}

// Key 返回分区的唯一标识
func (p Partition) Key() string {
	return fmt.Sprintf("user_%d/%s", p.UserID, p.Backend)
}

// Dir 返回分区在本地数据目录下的路径
func (p Partition) Dir(root string) string {
	return filepath.Join(root, fmt.Sprintf("user_%d", p.UserID), string(p.Backend))
}

// Collection 返回分区对应的Milvus集合名。
// Milvus集合名只允许字母、数字和下划线。
func (p Partition) Collection(prefix string) string {
	backend := sanitizeCollectionName(string(p.Backend))
	return fmt.Sprintf("%s_user_%d_%s", prefix, p.UserID, backend)
}

func sanitizeCollectionName(name string) string {
	var builder strings.Builder
	builder.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			builder.WriteRune(r)
		default:
			builder.WriteRune('_')
		}
	}
	return strings.ToLower(builder.String())
}

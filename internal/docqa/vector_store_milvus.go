package docqa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"go.uber.org/zap"

	"github.com/aihub/docqa-go/internal/logger"
)

// MilvusOptions Milvus客户端配置
type MilvusOptions struct {
	Address          string
	Username         string
	Password         string
	Database         string
	CollectionPrefix string
	UseTLS           bool
	Timeout          time.Duration
}

// MilvusVectorStore 基于Milvus的向量存储，每个分区对应一个集合
type MilvusVectorStore struct {
	milvusClient     client.Client
	collectionPrefix string
	log              *zap.Logger
}

// NewMilvusVectorStore 创建Milvus向量存储
func NewMilvusVectorStore(opts MilvusOptions) (*MilvusVectorStore, error) {
	if opts.Address == "" {
		opts.Address = "localhost:19530"
	}
	if opts.CollectionPrefix == "" {
		opts.CollectionPrefix = "docqa"
	}
	if opts.Database == "" {
		opts.Database = "default"
	}

	milvusClient, err := client.NewClient(
		context.Background(),
		client.Config{
			Address:       opts.Address,
			DBName:        opts.Database,
			Username:      opts.Username,
			Password:      opts.Password,
			EnableTLSAuth: opts.UseTLS,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create milvus client: %w", err)
	}

	return &MilvusVectorStore{
		milvusClient:     milvusClient,
		collectionPrefix: opts.CollectionPrefix,
		log:              logger.Named("milvus-vector-store"),
	}, nil
}

func (s *MilvusVectorStore) collectionName(p Partition) string {
	return p.Collection(s.collectionPrefix)
}

// Create 销毁并重建分区集合，写入chunks及其向量
func (s *MilvusVectorStore) Create(ctx context.Context, p Partition, chunks []Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk count %d does not match vector count %d", len(chunks), len(vectors))
	}

	name := s.collectionName(p)
	dim := p.Backend.Dimensions()
	if dim == 0 && len(vectors) > 0 {
		dim = len(vectors[0])
	}

	// 覆盖语义：先删除旧集合再重建
	hasCollection, err := s.milvusClient.HasCollection(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if hasCollection {
		if err := s.milvusClient.DropCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to drop collection: %w", err)
		}
	}

	schema := &entity.Schema{
		CollectionName: name,
		Description:    fmt.Sprintf("Document vectors for partition %s", p.Key()),
		Fields: []*entity.Field{
			{
				Name:       "id",
				DataType:   entity.FieldTypeInt64,
				PrimaryKey: true,
				AutoID:     false,
			},
			{
				Name:     "chunk_index",
				DataType: entity.FieldTypeInt64,
			},
			{
				Name:     "user_id",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "source",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "512",
				},
			},
			{
				Name:     "content",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "65535",
				},
			},
			{
				Name:     "vector",
				DataType: entity.FieldTypeFloatVector,
				TypeParams: map[string]string{
					"dim": fmt.Sprintf("%d", dim),
				},
			},
		},
	}

	if err := s.milvusClient.CreateCollection(ctx, schema, entity.DefaultShardNumber); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	var index entity.Index
	index, err = entity.NewIndexHNSW(entity.COSINE, 8, 64)
	if err != nil {
		index, err = entity.NewIndexIvfFlat(entity.COSINE, 128)
		if err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	if err := s.milvusClient.CreateIndex(ctx, name, "vector", index, false); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if len(chunks) > 0 {
		ids := make([]int64, len(chunks))
		chunkIndexes := make([]int64, len(chunks))
		userIDs := make([]string, len(chunks))
		sources := make([]string, len(chunks))
		contents := make([]string, len(chunks))
		for i, chunk := range chunks {
			ids[i] = int64(i)
			chunkIndexes[i] = int64(chunk.Index)
			userIDs[i] = chunk.UserID
			sources[i] = chunk.Source
			contents[i] = chunk.Text
		}

		idColumn := entity.NewColumnInt64("id", ids)
		chunkIndexColumn := entity.NewColumnInt64("chunk_index", chunkIndexes)
		userIDColumn := entity.NewColumnVarChar("user_id", userIDs)
		sourceColumn := entity.NewColumnVarChar("source", sources)
		contentColumn := entity.NewColumnVarChar("content", contents)
		vectorColumn := entity.NewColumnFloatVector("vector", dim, vectors)

		if _, err := s.milvusClient.Insert(ctx, name, "", idColumn, chunkIndexColumn, userIDColumn, sourceColumn, contentColumn, vectorColumn); err != nil {
			return fmt.Errorf("milvus insert failed: %w", err)
		}

		if err := s.milvusClient.Flush(ctx, name, false); err != nil {
			s.log.Warn("刷新集合失败", zap.String("collection", name), zap.Error(err))
		}
	}

	if err := s.milvusClient.LoadCollection(ctx, name, false); err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}

	s.log.Info("分区集合已重建",
		zap.String("collection", name),
		zap.Int("chunks", len(chunks)))
	return nil
}

// Destroy 删除分区集合，集合不存在时不报错
func (s *MilvusVectorStore) Destroy(ctx context.Context, p Partition) error {
	name := s.collectionName(p)
	hasCollection, err := s.milvusClient.HasCollection(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if !hasCollection {
		return nil
	}
	if err := s.milvusClient.DropCollection(ctx, name); err != nil {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	return nil
}

// Ready 判断分区集合是否存在
func (s *MilvusVectorStore) Ready(ctx context.Context, p Partition) (bool, error) {
	hasCollection, err := s.milvusClient.HasCollection(ctx, s.collectionName(p))
	if err != nil {
		return false, fmt.Errorf("failed to check collection: %w", err)
	}
	return hasCollection, nil
}

// Search 在分区集合内按余弦相似度检索topK个chunk
func (s *MilvusVectorStore) Search(ctx context.Context, p Partition, query []float32, topK int, filter SearchFilter) ([]ScoredChunk, error) {
	if len(query) == 0 {
		return nil, nil
	}
	if topK <= 0 {
		topK = 4
	}

	name := s.collectionName(p)
	hasCollection, err := s.milvusClient.HasCollection(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if !hasCollection {
		return nil, nil
	}

	expr := fmt.Sprintf(`user_id == "%s"`, escapeMilvusValue(filter.UserID))
	if filter.Source != "" {
		expr += fmt.Sprintf(` && source == "%s"`, escapeMilvusValue(filter.Source))
	}

	sp, _ := entity.NewIndexHNSWSearchParam(64)
	queryVector := entity.FloatVector(query)
	searchResults, err := s.milvusClient.Search(
		ctx,
		name,
		[]string{},
		expr,
		[]string{"chunk_index", "user_id", "source", "content"},
		[]entity.Vector{queryVector},
		"vector",
		entity.COSINE,
		topK,
		sp,
	)
	if err != nil {
		return nil, fmt.Errorf("milvus search failed: %w", err)
	}

	if len(searchResults) == 0 {
		return nil, nil
	}
	result := searchResults[0]
	if result.Err != nil {
		return nil, fmt.Errorf("milvus search error: %w", result.Err)
	}
	if result.ResultCount == 0 {
		return nil, nil
	}

	var chunkIndexes []int64
	var userIDs []string
	var sources []string
	var contents []string
	for _, field := range result.Fields {
		switch field.Name() {
		case "chunk_index":
			if val, ok := field.(*entity.ColumnInt64); ok {
				chunkIndexes = val.Data()
			}
		case "user_id":
			if val, ok := field.(*entity.ColumnVarChar); ok {
				userIDs = val.Data()
			}
		case "source":
			if val, ok := field.(*entity.ColumnVarChar); ok {
				sources = val.Data()
			}
		case "content":
			if val, ok := field.(*entity.ColumnVarChar); ok {
				contents = val.Data()
			}
		}
	}

	results := make([]ScoredChunk, 0, result.ResultCount)
	for i := 0; i < result.ResultCount; i++ {
		chunk := Chunk{}
		if i < len(chunkIndexes) {
			chunk.Index = int(chunkIndexes[i])
		}
		if i < len(userIDs) {
			chunk.UserID = userIDs[i]
		}
		if i < len(sources) {
			chunk.Source = sources[i]
		}
		if i < len(contents) {
			chunk.Text = contents[i]
		}

		var score float32
		if i < len(result.Scores) {
			score = result.Scores[i]
		}
		results = append(results, ScoredChunk{Chunk: chunk, Score: score})
	}

	return results, nil
}

func escapeMilvusValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

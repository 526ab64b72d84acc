package api

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
)

// ListingImageStorage 抽象配图存储，便于测试替换。
// *storage.Client 满足该接口；nil 表示未配置对象存储。
type ListingImageStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
}

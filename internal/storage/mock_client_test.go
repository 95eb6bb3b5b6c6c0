package storage

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
)

// putCall records a PutObject invocation.
type putCall struct {
	Bucket      string
	Key         string
	Body        []byte
	Size        int64
	ContentType string
}

// mockClient is a Client whose operations can be overridden per test.
// Unset operations succeed.
type mockClient struct {
	PutObjectFunc     func(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	FPutObjectFunc    func(ctx context.Context, bucket, key, path string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObjectFunc    func(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	CopyObjectFunc    func(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error)
	ListObjectsFunc   func(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	RemoveObjectsFunc func(ctx context.Context, bucket string, objectsCh <-chan minio.ObjectInfo, opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError
}

func (m *mockClient) PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, bucket, key, reader, size, opts)
	}
	return minio.UploadInfo{Bucket: bucket, Key: key, ETag: "etag", Size: size}, nil
}

func (m *mockClient) FPutObject(ctx context.Context, bucket, key, path string, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if m.FPutObjectFunc != nil {
		return m.FPutObjectFunc(ctx, bucket, key, path, opts)
	}
	return minio.UploadInfo{Bucket: bucket, Key: key, ETag: "etag"}, nil
}

func (m *mockClient) StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	if m.StatObjectFunc != nil {
		return m.StatObjectFunc(ctx, bucket, key, opts)
	}
	return minio.ObjectInfo{Key: key}, nil
}

func (m *mockClient) CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error) {
	if m.CopyObjectFunc != nil {
		return m.CopyObjectFunc(ctx, dst, src)
	}
	return minio.UploadInfo{Bucket: dst.Bucket, Key: dst.Object, ETag: "etag"}, nil
}

func (m *mockClient) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	if m.ListObjectsFunc != nil {
		return m.ListObjectsFunc(ctx, bucket, opts)
	}
	return listing()
}

func (m *mockClient) RemoveObjects(ctx context.Context, bucket string, objectsCh <-chan minio.ObjectInfo, opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError {
	if m.RemoveObjectsFunc != nil {
		return m.RemoveObjectsFunc(ctx, bucket, objectsCh, opts)
	}
	for range objectsCh {
	}
	errCh := make(chan minio.RemoveObjectError)
	close(errCh)
	return errCh
}

// recordPuts returns a PutObjectFunc that appends every call to calls.
func recordPuts(calls *[]putCall) func(context.Context, string, string, io.Reader, int64, minio.PutObjectOptions) (minio.UploadInfo, error) {
	return func(_ context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
		body, err := io.ReadAll(reader)
		if err != nil {
			return minio.UploadInfo{}, err
		}
		*calls = append(*calls, putCall{
			Bucket:      bucket,
			Key:         key,
			Body:        body,
			Size:        size,
			ContentType: opts.ContentType,
		})
		return minio.UploadInfo{Bucket: bucket, Key: key, ETag: "etag", Size: size}, nil
	}
}

// listing returns a closed channel carrying objs.
func listing(objs ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objs))
	for _, obj := range objs {
		ch <- obj
	}
	close(ch)
	return ch
}

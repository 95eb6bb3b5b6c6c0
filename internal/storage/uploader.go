package storage

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/andresuchdata/drfc-manager/internal/config"
	"github.com/andresuchdata/drfc-manager/internal/domain"
	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
)

// Object names of the custom training files, relative to the custom files folder.
const (
	HyperparametersObject = "hyperparameters.json"
	RewardFunctionObject  = "reward_function.py"
	ModelMetadataObject   = "model_metadata.json"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain"
)

// Uploader stores DeepRacer custom files and model artifacts in a single
// bucket. It holds no mutable state and is safe for concurrent use.
type Uploader struct {
	client Client
	bucket string
	prefix string
	log    zerolog.Logger
}

func NewUploader(client Client, cfg config.StorageConfig, log zerolog.Logger) *Uploader {
	return &Uploader{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.CustomFilesFolder,
		log:    log,
	}
}

// Bucket returns the bucket every operation targets.
func (u *Uploader) Bucket() string {
	return u.bucket
}

// CustomFileKey returns the object key of a custom file. The folder is not
// validated, an empty one yields a key with a leading slash.
func (u *Uploader) CustomFileKey(name string) string {
	return fmt.Sprintf("%s/%s", u.prefix, name)
}

// UploadHyperparameters stores hp as indented JSON under hyperparameters.json.
func (u *Uploader) UploadHyperparameters(ctx context.Context, hp domain.HyperParameters) (bool, error) {
	return u.putJSON(ctx, HyperparametersObject, hp)
}

// UploadRewardFunction stores the reward function source under reward_function.py.
func (u *Uploader) UploadRewardFunction(ctx context.Context, buf []byte) (bool, error) {
	return u.putObject(ctx, RewardFunctionObject, buf, contentTypeText)
}

// UploadMetadata stores md as indented JSON under model_metadata.json.
func (u *Uploader) UploadMetadata(ctx context.Context, md domain.ModelMetadata) (bool, error) {
	return u.putJSON(ctx, ModelMetadataObject, md)
}

// UploadLocalData uploads the file at localPath to objectName as is.
func (u *Uploader) UploadLocalData(ctx context.Context, localPath, objectName string) (bool, error) {
	u.log.Debug().
		Str("bucket", u.bucket).
		Str("key", objectName).
		Str("path", localPath).
		Msg("uploading local file")

	info, err := u.client.FPutObject(ctx, u.bucket, objectName, localPath, minio.PutObjectOptions{})
	if err != nil {
		u.log.Error().Err(err).Str("key", objectName).Msg("local file upload failed")
		return false, newUploadError("fput", objectName,
			fmt.Sprintf("error uploading %s file to S3 bucket", objectName), err)
	}

	return uploaded(info), nil
}

// CheckIfObjectExists reports whether objectName can be stat'ed. Any probe
// failure reads as absence; use ProbeObject to tell the two apart.
func (u *Uploader) CheckIfObjectExists(ctx context.Context, objectName string) bool {
	return u.ProbeObject(ctx, objectName).State == Exists
}

// ProbeObject stats objectName and classifies the outcome.
func (u *Uploader) ProbeObject(ctx context.Context, objectName string) Existence {
	_, err := u.client.StatObject(ctx, u.bucket, objectName, minio.StatObjectOptions{})
	res := classifyStatError(err)
	if res.State == CheckFailed {
		u.log.Warn().Err(err).Str("key", objectName).Msg("object probe failed")
	}
	return res
}

// CopyObject performs a server-side copy of source to dest inside the bucket.
func (u *Uploader) CopyObject(ctx context.Context, source, dest string) (bool, error) {
	u.log.Debug().
		Str("bucket", u.bucket).
		Str("source", source).
		Str("dest", dest).
		Msg("copying object")

	_, err := u.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: u.bucket, Object: dest},
		minio.CopySrcOptions{Bucket: u.bucket, Object: source},
	)
	if err != nil {
		u.log.Error().Err(err).Str("source", source).Str("dest", dest).Msg("copy failed")
		return false, newUploadError("copy", source,
			fmt.Sprintf("error copying %s to %s", source, dest), err)
	}

	return true, nil
}

// RemoveObjectsFolder deletes every object under prefix in one batch. The
// listing is streamed into the batch delete as it arrives; a listing error
// stops the stream. An empty folder is not an error.
func (u *Uploader) RemoveObjectsFolder(ctx context.Context, prefix string) (bool, error) {
	message := fmt.Sprintf("error deleting %s folder", prefix)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	listCh := u.client.ListObjects(ctx, u.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true})
	first, ok := <-listCh
	if !ok {
		u.log.Debug().Str("bucket", u.bucket).Str("prefix", prefix).Msg("folder already empty")
		return true, nil
	}
	if first.Err != nil {
		u.log.Error().Err(first.Err).Str("prefix", prefix).Msg("listing folder failed")
		return false, newUploadError("list", prefix, message, first.Err)
	}

	var (
		objectsCh = make(chan minio.ObjectInfo)
		listDone  = make(chan struct{})
		listErr   error
		listed    int
	)
	go func() {
		defer close(listDone)
		defer close(objectsCh)

		send := func(obj minio.ObjectInfo) bool {
			select {
			case objectsCh <- obj:
				listed++
				return true
			case <-ctx.Done():
				listErr = ctx.Err()
				return false
			}
		}

		if !send(first) {
			return
		}
		for obj := range listCh {
			if obj.Err != nil {
				listErr = obj.Err
				return
			}
			if !send(obj) {
				return
			}
		}
	}()

	var errs []error
	for rerr := range u.client.RemoveObjects(ctx, u.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			u.log.Error().Err(rerr.Err).Str("key", rerr.ObjectName).Msg("object removal failed")
			errs = append(errs, rerr.Err)
		}
	}

	// RemoveObjects may stop reading early; unblock the lister before
	// reading what it recorded.
	cancel()
	<-listDone

	if listErr != nil {
		u.log.Error().Err(listErr).Str("prefix", prefix).Int("removed", listed).Msg("listing folder failed")
		if len(errs) > 0 {
			listErr = stderrors.Join(append([]error{listErr}, errs...)...)
		}
		return false, newUploadError("list", prefix, message, listErr)
	}
	if len(errs) > 0 {
		return false, newUploadError("remove", prefix, message, stderrors.Join(errs...))
	}

	u.log.Info().
		Str("bucket", u.bucket).
		Str("prefix", prefix).
		Int("objects", listed).
		Msg("folder removed")

	return true, nil
}

func (u *Uploader) putJSON(ctx context.Context, name string, v any) (bool, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return false, newUploadError("marshal", u.CustomFileKey(name), "", err)
	}
	return u.putObject(ctx, name, data, contentTypeJSON)
}

func (u *Uploader) putObject(ctx context.Context, name string, data []byte, contentType string) (bool, error) {
	key := u.CustomFileKey(name)

	u.log.Debug().
		Str("bucket", u.bucket).
		Str("key", key).
		Int("size", len(data)).
		Msg("uploading object")

	info, err := u.client.PutObject(ctx, u.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		u.log.Error().Err(err).Str("key", key).Msg("upload failed")
		return false, newUploadError("put", key,
			fmt.Sprintf("error uploading %s file to S3 bucket", name), err)
	}

	return uploaded(info), nil
}

// uploaded reports whether the client handed back an actual upload result.
func uploaded(info minio.UploadInfo) bool {
	return info.Key != "" || info.ETag != ""
}

package storage

import (
	"context"

	"github.com/andresuchdata/drfc-manager/internal/domain"
	"golang.org/x/sync/errgroup"
)

// CustomFiles is the set of files a training run reads from the custom files folder.
type CustomFiles struct {
	HyperParameters domain.HyperParameters
	ModelMetadata   domain.ModelMetadata
	RewardFunction  []byte
}

// UploadCustomFiles uploads the three custom files concurrently and returns
// the first failure.
func (u *Uploader) UploadCustomFiles(ctx context.Context, files CustomFiles) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ok, err := u.UploadHyperparameters(ctx, files.HyperParameters)
		return u.requireUploaded(HyperparametersObject, ok, err)
	})
	g.Go(func() error {
		ok, err := u.UploadMetadata(ctx, files.ModelMetadata)
		return u.requireUploaded(ModelMetadataObject, ok, err)
	})
	g.Go(func() error {
		ok, err := u.UploadRewardFunction(ctx, files.RewardFunction)
		return u.requireUploaded(RewardFunctionObject, ok, err)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	u.log.Info().
		Str("bucket", u.bucket).
		Str("folder", u.prefix).
		Msg("custom files uploaded")
	return nil
}

func (u *Uploader) requireUploaded(name string, ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return &UploadError{
			Op:      "put",
			Key:     u.CustomFileKey(name),
			Message: "no upload result returned for " + name,
		}
	}
	return nil
}

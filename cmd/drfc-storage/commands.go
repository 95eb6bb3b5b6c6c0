package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/andresuchdata/drfc-manager/internal/config"
	"github.com/andresuchdata/drfc-manager/internal/domain"
	"github.com/andresuchdata/drfc-manager/internal/storage"
	"github.com/andresuchdata/drfc-manager/pkg/logger"
	"github.com/urfave/cli/v2"
)

// newClient is swapped in tests.
var newClient = func(cfg config.StorageConfig) (storage.Client, error) {
	return storage.NewMinioClient(cfg)
}

// storageConfig starts from the process configuration and applies any
// global flag that was set explicitly.
func storageConfig(c *cli.Context) config.StorageConfig {
	cfg := config.Load().Storage

	if c.IsSet("endpoint") {
		cfg.Endpoint = c.String("endpoint")
	}
	if c.IsSet("access-key") {
		cfg.AccessKey = c.String("access-key")
	}
	if c.IsSet("secret-key") {
		cfg.SecretKey = c.String("secret-key")
	}
	if c.IsSet("region") {
		cfg.Region = c.String("region")
	}
	if c.IsSet("use-ssl") {
		cfg.UseSSL = c.Bool("use-ssl")
	}
	if c.IsSet("bucket") {
		cfg.Bucket = c.String("bucket")
	}
	if c.IsSet("folder") {
		cfg.CustomFilesFolder = c.String("folder")
	}
	return cfg
}

func newUploader(c *cli.Context) (*storage.Uploader, config.StorageConfig, error) {
	cfg := storageConfig(c)
	if cfg.Bucket == "" {
		return nil, cfg, fmt.Errorf("bucket must be provided (--bucket or BUCKET_NAME)")
	}

	client, err := newClient(cfg)
	if err != nil {
		return nil, cfg, err
	}
	return storage.NewUploader(client, cfg, logger.Component("storage")), cfg, nil
}

func uploadHyperparameters(c *cli.Context) error {
	u, _, err := newUploader(c)
	if err != nil {
		return err
	}

	var hp domain.HyperParameters
	if err := readJSONFile(c.String("file"), &hp); err != nil {
		return err
	}

	ok, err := u.UploadHyperparameters(c.Context, hp)
	if err != nil {
		return err
	}
	return report(c, u.CustomFileKey(storage.HyperparametersObject), ok)
}

func uploadMetadata(c *cli.Context) error {
	u, _, err := newUploader(c)
	if err != nil {
		return err
	}

	var md domain.ModelMetadata
	if err := readJSONFile(c.String("file"), &md); err != nil {
		return err
	}

	ok, err := u.UploadMetadata(c.Context, md)
	if err != nil {
		return err
	}
	return report(c, u.CustomFileKey(storage.ModelMetadataObject), ok)
}

func uploadRewardFunction(c *cli.Context) error {
	u, cfg, err := newUploader(c)
	if err != nil {
		return err
	}

	source, err := readRewardFunction(c.String("file"), cfg)
	if err != nil {
		return err
	}

	ok, err := u.UploadRewardFunction(c.Context, source)
	if err != nil {
		return err
	}
	return report(c, u.CustomFileKey(storage.RewardFunctionObject), ok)
}

func uploadCustomFiles(c *cli.Context) error {
	u, cfg, err := newUploader(c)
	if err != nil {
		return err
	}

	var files storage.CustomFiles
	if err := readJSONFile(c.String("hyperparameters"), &files.HyperParameters); err != nil {
		return err
	}
	if err := readJSONFile(c.String("metadata"), &files.ModelMetadata); err != nil {
		return err
	}
	if files.RewardFunction, err = readRewardFunction(c.String("reward-function"), cfg); err != nil {
		return err
	}

	if err := u.UploadCustomFiles(c.Context, files); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "uploaded custom files to %s/%s\n", u.Bucket(), cfg.CustomFilesFolder)
	return nil
}

func uploadLocal(c *cli.Context) error {
	u, _, err := newUploader(c)
	if err != nil {
		return err
	}

	object := c.String("object")
	ok, err := u.UploadLocalData(c.Context, c.String("path"), object)
	if err != nil {
		return err
	}
	return report(c, object, ok)
}

func objectExists(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: exists <object>", 2)
	}
	u, _, err := newUploader(c)
	if err != nil {
		return err
	}

	object := c.Args().First()
	res := u.ProbeObject(c.Context, object)
	fmt.Fprintf(c.App.Writer, "%s: %s\n", object, res.State)

	switch res.State {
	case storage.Exists:
		return nil
	case storage.Absent:
		return cli.Exit("", 1)
	default:
		return cli.Exit(fmt.Sprintf("existence check failed: %v", res.Err), 3)
	}
}

func copyObject(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: copy <source> <destination>", 2)
	}
	u, _, err := newUploader(c)
	if err != nil {
		return err
	}

	source, dest := c.Args().Get(0), c.Args().Get(1)
	if _, err := u.CopyObject(c.Context, source, dest); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "copied %s to %s\n", source, dest)
	return nil
}

func removeFolder(c *cli.Context) error {
	if c.NArg() != 1 || c.Args().First() == "" {
		return cli.Exit("usage: remove-folder <prefix>", 2)
	}
	u, _, err := newUploader(c)
	if err != nil {
		return err
	}

	prefix := c.Args().First()
	if _, err := u.RemoveObjectsFolder(c.Context, prefix); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "removed %s\n", prefix)
	return nil
}

func report(c *cli.Context, key string, ok bool) error {
	if !ok {
		return fmt.Errorf("no upload result returned for %s", key)
	}
	fmt.Fprintf(c.App.Writer, "uploaded %s\n", key)
	return nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func readRewardFunction(path string, cfg config.StorageConfig) ([]byte, error) {
	if path == "" {
		path = cfg.RewardFunctionPath
	}
	if path == "" {
		return nil, fmt.Errorf("reward function file must be provided (--file or REWARD_FUNCTION_PATH)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

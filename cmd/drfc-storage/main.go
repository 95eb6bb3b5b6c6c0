package main

import (
	"os"

	"github.com/andresuchdata/drfc-manager/internal/config"
	"github.com/andresuchdata/drfc-manager/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		logger.Log.Warn().Err(err).Msg("could not load .env file")
	}

	if err := newApp().Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("command failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "drfc-storage",
		Usage: "Manage DeepRacer custom files and model artifacts in object storage",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "endpoint", Usage: "MinIO / S3 endpoint", EnvVars: []string{"MINIO_ENDPOINT"}},
			&cli.StringFlag{Name: "access-key", Usage: "Access key", EnvVars: []string{"MINIO_ACCESS_KEY"}},
			&cli.StringFlag{Name: "secret-key", Usage: "Secret key", EnvVars: []string{"MINIO_SECRET_KEY"}},
			&cli.StringFlag{Name: "region", Usage: "Bucket region", EnvVars: []string{"MINIO_REGION"}},
			&cli.BoolFlag{Name: "use-ssl", Usage: "Connect over TLS", EnvVars: []string{"MINIO_USE_SSL"}},
			&cli.StringFlag{Name: "bucket", Usage: "Bucket name", EnvVars: []string{"BUCKET_NAME"}},
			&cli.StringFlag{Name: "folder", Usage: "Custom files folder inside the bucket", EnvVars: []string{"CUSTOM_FILES_FOLDER_PATH"}},
			&cli.StringFlag{Name: "log-level", Usage: "Log level", Value: "info", EnvVars: []string{"LOG_LEVEL"}},
			&cli.StringFlag{Name: "log-format", Usage: "Log format, console or json", Value: logger.FormatConsole, EnvVars: []string{"LOG_FORMAT"}},
		},
		Before: func(c *cli.Context) error {
			logger.Configure(config.LogConfig{
				Level:  c.String("log-level"),
				Format: c.String("log-format"),
			})
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "upload-hyperparameters",
				Usage: "Upload hyperparameters.json to the custom files folder",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "Hyperparameters JSON file", Required: true},
				},
				Action: uploadHyperparameters,
			},
			{
				Name:  "upload-metadata",
				Usage: "Upload model_metadata.json to the custom files folder",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "Model metadata JSON file", Required: true},
				},
				Action: uploadMetadata,
			},
			{
				Name:  "upload-reward-function",
				Usage: "Upload reward_function.py to the custom files folder",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "Reward function source, defaults to REWARD_FUNCTION_PATH"},
				},
				Action: uploadRewardFunction,
			},
			{
				Name:  "upload-custom-files",
				Usage: "Upload hyperparameters, model metadata and reward function together",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "hyperparameters", Usage: "Hyperparameters JSON file", Required: true},
					&cli.StringFlag{Name: "metadata", Usage: "Model metadata JSON file", Required: true},
					&cli.StringFlag{Name: "reward-function", Usage: "Reward function source, defaults to REWARD_FUNCTION_PATH"},
				},
				Action: uploadCustomFiles,
			},
			{
				Name:  "upload-local",
				Usage: "Upload a local file to an object key",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "path", Usage: "Local file path", Required: true},
					&cli.StringFlag{Name: "object", Usage: "Destination object key", Required: true},
				},
				Action: uploadLocal,
			},
			{
				Name:      "exists",
				Usage:     "Check whether an object exists",
				ArgsUsage: "<object>",
				Action:    objectExists,
			},
			{
				Name:      "copy",
				Usage:     "Copy an object inside the bucket",
				ArgsUsage: "<source> <destination>",
				Action:    copyObject,
			},
			{
				Name:      "remove-folder",
				Usage:     "Delete every object under a prefix",
				ArgsUsage: "<prefix>",
				Action:    removeFolder,
			},
		},
	}
}

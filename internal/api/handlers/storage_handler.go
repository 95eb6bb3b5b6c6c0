// internal/api/handlers/storage_handler.go
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/andresuchdata/drfc-manager/internal/domain"
	"github.com/andresuchdata/drfc-manager/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxRewardFunctionSize bounds the reward function request body.
const maxRewardFunctionSize = 1 << 20

// ObjectStore is the storage surface the handlers expose. *storage.Uploader implements it.
type ObjectStore interface {
	UploadHyperparameters(ctx context.Context, hp domain.HyperParameters) (bool, error)
	UploadMetadata(ctx context.Context, md domain.ModelMetadata) (bool, error)
	UploadRewardFunction(ctx context.Context, buf []byte) (bool, error)
	UploadLocalData(ctx context.Context, localPath, objectName string) (bool, error)
	ProbeObject(ctx context.Context, objectName string) storage.Existence
	CopyObject(ctx context.Context, source, dest string) (bool, error)
	RemoveObjectsFolder(ctx context.Context, prefix string) (bool, error)
}

var _ ObjectStore = (*storage.Uploader)(nil)

type StorageHandler struct {
	store ObjectStore
	log   zerolog.Logger
}

func NewStorageHandler(store ObjectStore, log zerolog.Logger) *StorageHandler {
	return &StorageHandler{store: store, log: log}
}

type localUploadRequest struct {
	LocalPath  string `json:"local_path" binding:"required"`
	ObjectName string `json:"object_name" binding:"required"`
}

type copyRequest struct {
	Source      string `json:"source" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// UploadHyperparameters stores the hyperparameters in the request body
func (h *StorageHandler) UploadHyperparameters(c *gin.Context) {
	var hp domain.HyperParameters
	if err := c.ShouldBindJSON(&hp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hyperparameters payload"})
		return
	}

	ok, err := h.store.UploadHyperparameters(c.Request.Context(), hp)
	h.respondUpload(c, storage.HyperparametersObject, ok, err)
}

// UploadMetadata stores the model metadata in the request body
func (h *StorageHandler) UploadMetadata(c *gin.Context) {
	var md domain.ModelMetadata
	if err := c.ShouldBindJSON(&md); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model metadata payload"})
		return
	}

	ok, err := h.store.UploadMetadata(c.Request.Context(), md)
	h.respondUpload(c, storage.ModelMetadataObject, ok, err)
}

// UploadRewardFunction stores the raw request body as the reward function
func (h *StorageHandler) UploadRewardFunction(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRewardFunctionSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read reward function"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reward function is empty"})
		return
	}

	ok, err := h.store.UploadRewardFunction(c.Request.Context(), body)
	h.respondUpload(c, storage.RewardFunctionObject, ok, err)
}

// UploadLocalData uploads a file from the server's filesystem
func (h *StorageHandler) UploadLocalData(c *gin.Context) {
	var req localUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "local_path and object_name are required"})
		return
	}

	ok, err := h.store.UploadLocalData(c.Request.Context(), req.LocalPath, req.ObjectName)
	h.respondUpload(c, req.ObjectName, ok, err)
}

// CopyObject copies one object to another key in the same bucket
func (h *StorageHandler) CopyObject(c *gin.Context) {
	var req copyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source and destination are required"})
		return
	}

	ok, err := h.store.CopyObject(c.Request.Context(), req.Source, req.Destination)
	if err != nil {
		h.uploadErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"copied":      ok,
		"source":      req.Source,
		"destination": req.Destination,
	})
}

// CheckObject reports whether an object exists
func (h *StorageHandler) CheckObject(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "object key is required"})
		return
	}

	res := h.store.ProbeObject(c.Request.Context(), key)
	body := gin.H{"key": key, "state": res.State.String()}

	switch res.State {
	case storage.Exists:
		c.JSON(http.StatusOK, body)
	case storage.Absent:
		c.JSON(http.StatusNotFound, body)
	default:
		if res.Err != nil {
			body["error"] = res.Err.Error()
		}
		c.JSON(http.StatusBadGateway, body)
	}
}

// RemoveFolder deletes every object under a prefix
func (h *StorageHandler) RemoveFolder(c *gin.Context) {
	prefix := strings.TrimPrefix(c.Param("prefix"), "/")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refusing to remove the whole bucket"})
		return
	}

	ok, err := h.store.RemoveObjectsFolder(c.Request.Context(), prefix)
	if err != nil {
		h.uploadErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": ok, "prefix": prefix})
}

func (h *StorageHandler) respondUpload(c *gin.Context, object string, ok bool, err error) {
	if err != nil {
		h.uploadErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploaded": ok, "object": object})
}

func (h *StorageHandler) uploadErrorResponse(c *gin.Context, err error) {
	var uploadErr *storage.UploadError
	if errors.As(err, &uploadErr) {
		h.log.Error().Err(err).Str("op", uploadErr.Op).Str("key", uploadErr.Key).Msg("storage operation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": uploadErr.Error(), "key": uploadErr.Key})
		return
	}
	h.log.Error().Err(err).Msg("storage operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"eduverse_backend/internal/config"
	"eduverse_backend/internal/model"
	"eduverse_backend/internal/util"
	"eduverse_backend/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider is the common surface of the object stores.
type StorageProvider interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	UploadFile(ctx context.Context, key string, localPath string, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
}

type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}

	return p.GetURL(key), nil
}

func (p *LocalStorageProvider) UploadFile(ctx context.Context, key string, localPath string, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filepath.FromSlash(key))
	if localPath == dst {
		return p.GetURL(key), nil
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	return p.Upload(ctx, key, src, -1, contentType)
}

func (p *LocalStorageProvider) Delete(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(p.Config.LocalPath, filepath.FromSlash(key)))
}

func (p *LocalStorageProvider) GetURL(key string) string {
	return "/uploads/" + key
}

type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *MinioStorageProvider) UploadFile(ctx context.Context, key string, localPath string, contentType string) (string, error) {
	_, err := p.Client.FPutObject(ctx, p.Config.MinioBucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, key string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, key, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) GetURL(key string) string {
	scheme := "http"
	if p.Config.MinioSecure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, p.Config.MinioEndpoint, p.Config.MinioBucket, key)
}

type OSSStorageProvider struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Config: cfg, Client: client}, nil
}

func (p *OSSStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}

	if err := bucket.PutObject(key, reader, oss.ContentType(contentType)); err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *OSSStorageProvider) UploadFile(ctx context.Context, key string, localPath string, contentType string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}

	if err := bucket.PutObjectFromFile(key, localPath, oss.ContentType(contentType)); err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *OSSStorageProvider) Delete(ctx context.Context, key string) error {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return err
	}
	return bucket.DeleteObject(key)
}

func (p *OSSStorageProvider) GetURL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Config.OSSBucket, p.Config.OSSEndpoint, key)
}

type StorageService struct {
	Provider StorageProvider
}

// NewStorageService falls back to local disk when the configured provider
// cannot be built.
func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Error("MinIO storage unavailable, using local disk", zap.Error(err))
		} else {
			provider = p
		}
	case util.StorageOSS:
		p, err := NewOSSStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Error("OSS storage unavailable, using local disk", zap.Error(err))
		} else {
			provider = p
		}
	}

	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	return &StorageService{Provider: provider}
}

// ObjectKey builds folder/<uuid>-<slug>.<ext> from an uploaded file name.
func ObjectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := slug.Make(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	name := uuid.New().String()
	if base != "" {
		name += "-" + base
	}
	return path.Join(folder, name+ext)
}

// UploadMultipart stores an uploaded file under folder and returns its
// reference. The extension must be one of allowedExts.
func (s *StorageService) UploadMultipart(ctx context.Context, folder string, fh *multipart.FileHeader, allowedExts []string) (model.ImageRef, error) {
	if !util.HasExtension(fh.Filename, allowedExts) {
		return model.ImageRef{}, util.NewValidation("Unsupported file type, allowed: " + strings.Join(allowedExts, ", "))
	}

	file, err := fh.Open()
	if err != nil {
		return model.ImageRef{}, err
	}
	defer file.Close()

	contentType := fh.Header.Get("Content-Type")
	if util.HasExtension(fh.Filename, util.AllowedImageExtensions) {
		sniffed, err := util.ValidateMimeType(file, []string{util.MimeImage})
		if err != nil {
			return model.ImageRef{}, util.NewValidation("File content is not an image")
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return model.ImageRef{}, err
		}
		contentType = sniffed
	}
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	key := ObjectKey(folder, fh.Filename)
	url, err := s.Provider.Upload(ctx, key, file, fh.Size, contentType)
	if err != nil {
		return model.ImageRef{}, fmt.Errorf("upload %s: %w", key, err)
	}
	return model.ImageRef{URL: url, PublicID: key}, nil
}

// UploadVideo spools the upload to a temp file, probes its duration and then
// stores it. A failed probe leaves the duration at zero.
func (s *StorageService) UploadVideo(ctx context.Context, folder string, fh *multipart.FileHeader) (model.ContentResource, error) {
	if !util.HasExtension(fh.Filename, util.AllowedVideoExtensions) {
		return model.ContentResource{}, util.NewValidation("Only mp4, webm and ogg videos are allowed")
	}

	src, err := fh.Open()
	if err != nil {
		return model.ContentResource{}, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "eduverse-video-*"+strings.ToLower(filepath.Ext(fh.Filename)))
	if err != nil {
		return model.ContentResource{}, err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return model.ContentResource{}, err
	}
	tmp.Close()

	var duration float64
	if info, err := util.GetVideoInfo(tmp.Name()); err != nil {
		logger.Log.Warn("Video probe failed", zap.String("file", fh.Filename), zap.Error(err))
	} else {
		duration = info.Duration
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeVideo + strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
	}

	key := ObjectKey(folder, fh.Filename)
	url, err := s.Provider.UploadFile(ctx, key, tmp.Name(), contentType)
	if err != nil {
		return model.ContentResource{}, fmt.Errorf("upload %s: %w", key, err)
	}
	return model.ContentResource{URL: url, Duration: duration, PublicID: key}, nil
}

// Delete removes an object. Failures are logged only.
func (s *StorageService) Delete(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.Provider.Delete(ctx, key); err != nil {
		logger.Log.Warn("Failed to delete stored object", zap.String("key", key), zap.Error(err))
	}
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// UploadTarget is a one-time upload destination handed to the client. The
// client PUTs the image bytes to UploadURL and references it as ImageID.
type UploadTarget struct {
	UploadURL string `json:"upload_url"`
	ImageID   string `json:"image_id"`
}

// ObjectStorage abstracts the blob store: it issues upload targets, resolves
// stored blobs to fetchable URLs and deletes blobs.
type ObjectStorage interface {
	GenerateUploadTarget(ctx context.Context) (*UploadTarget, error)
	ResolveURL(ctx context.Context, imageID string) (string, error)
	Delete(ctx context.Context, imageID string) error
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	URLTTL    time.Duration
}

// S3Storage implements ObjectStorage against an S3-compatible endpoint using
// presigned URLs, so image bytes never pass through the API process.
type S3Storage struct {
	cfg    S3Config
	client *minio.Client
}

func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &S3Storage{cfg: cfg, client: client}, nil
}

func (s *S3Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *S3Storage) GenerateUploadTarget(ctx context.Context) (*UploadTarget, error) {
	imageID := uuid.New().String()
	uploadURL, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, imageID, s.cfg.URLTTL)
	if err != nil {
		return nil, err
	}
	return &UploadTarget{
		UploadURL: uploadURL.String(),
		ImageID:   imageID,
	}, nil
}

func (s *S3Storage) ResolveURL(ctx context.Context, imageID string) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, imageID, s.cfg.URLTTL, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (s *S3Storage) Delete(ctx context.Context, imageID string) error {
	return s.client.RemoveObject(ctx, s.cfg.Bucket, imageID, minio.RemoveObjectOptions{})
}

// Package storage は履歴書ファイルのオブジェクトストレージ保存機能を提供する。
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ResumeStorage は履歴書ファイルの保存インターフェース。
type ResumeStorage interface {
	// Upload は履歴書ファイルを保存し、公開URLを返す。
	Upload(ctx context.Context, accountID, filename, contentType string, r io.Reader, size int64) (string, error)
}

// S3Config はS3互換オブジェクトストレージの設定。
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3ResumeStorage はMinIOクライアントによるS3互換ストレージの実装。
type S3ResumeStorage struct {
	client *minio.Client
	config S3Config
}

// NewS3ResumeStorage はS3ResumeStorageを生成し、バケットの存在を保証する。
func NewS3ResumeStorage(ctx context.Context, config S3Config) (*S3ResumeStorage, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, config.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &S3ResumeStorage{client: client, config: config}, nil
}

// Upload は履歴書ファイルを保存し、公開URLを返す。
// オブジェクトキーはアカウントIDとランダムなUUIDから生成するため、
// アップロードのたびに新しいURLになる。
func (s *S3ResumeStorage) Upload(ctx context.Context, accountID, filename, contentType string, r io.Reader, size int64) (string, error) {
	objectName := fmt.Sprintf("resumes/%s/%s%s", accountID, uuid.New().String(), path.Ext(filename))

	_, err := s.client.PutObject(ctx, s.config.Bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload resume: %w", err)
	}

	scheme := "http"
	if s.config.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.config.Endpoint, s.config.Bucket, objectName), nil
}

// DisabledResumeStorage はストレージ未設定の環境向けの実装。
// アップロードは常にエラーを返す。
type DisabledResumeStorage struct{}

// Upload は常にエラーを返す。
func (DisabledResumeStorage) Upload(ctx context.Context, accountID, filename, contentType string, r io.Reader, size int64) (string, error) {
	return "", errors.New("resume storage is not configured")
}

// compile-time interface checks
var (
	_ ResumeStorage = (*S3ResumeStorage)(nil)
	_ ResumeStorage = DisabledResumeStorage{}
)

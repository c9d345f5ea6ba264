// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cloud

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// S3ObjectStore implements services.ObjectStore against a single S3
// bucket, including signed URL issuance for both download and upload.
type S3ObjectStore struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

var _ services.ObjectStore = &S3ObjectStore{}

// NewS3ObjectStore scopes the given clients to one bucket.
func NewS3ObjectStore(client *s3.Client, presigner *s3.PresignClient, bucket string) *S3ObjectStore {
	return &S3ObjectStore{client: client, presigner: presigner, bucket: bucket}
}

// Fetch downloads the object at key to destPath, creating or truncating
// the file.
func (s *S3ObjectStore) Fetch(ctx context.Context, key, destPath string) error {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get object s3://%s/%s: %w", s.bucket, key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	file, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create local file %s: %w", destPath, err)
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return fmt.Errorf("failed to write object body to %s: %w", destPath, err)
	}
	return nil
}

// Put uploads the local file at srcPath under key. contentType and
// disposition are stored as object metadata so signed downloads render
// the way the publisher intended.
func (s *S3ObjectStore) Put(ctx context.Context, srcPath, key, contentType, disposition string) error {
	file, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open local file %s: %w", srcPath, err)
	}
	defer func() { _ = file.Close() }()

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if disposition != "" {
		input.ContentDisposition = aws.String(disposition)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to put object s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}

// SignedGetURL issues a time-limited download URL for key.
func (s *S3ObjectStore) SignedGetURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("failed to presign get for s3://%s/%s: %w", s.bucket, key, err)
	}
	return req.URL, nil
}

// SignedPutURL issues a time-limited upload URL for key, bound to the
// declared content type.
func (s *S3ObjectStore) SignedPutURL(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	req, err := s.presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("failed to presign put for s3://%s/%s: %w", s.bucket, key, err)
	}
	return req.URL, nil
}

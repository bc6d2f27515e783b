// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"rentadmin/internal/models"
)

// S3BackupStore keeps template snapshots as objects in an S3-compatible
// bucket, one object per backup, keyed by identifier. Object PUTs are
// atomic per key, and conditional writes (If-None-Match: *) make identifier
// collisions detectable without a read-modify-write race.
type S3BackupStore struct {
	s3     *s3.Client
	bucket string
	now    func() time.Time
}

// NewS3BackupStore creates an S3 snapshot store configured for
// CEPH/Hetzner-style endpoints with path-style addressing.
func NewS3BackupStore(endpoint, region, accessKey, secretKey, bucket string) (*S3BackupStore, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("s3 backup store: endpoint and credentials are required")
	}

	endpoint = strings.TrimRight(endpoint, "/")

	client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &S3BackupStore{s3: client, bucket: bucket, now: time.Now}, nil
}

// SetClock overrides the identifier clock. Test hook.
func (s *S3BackupStore) SetClock(now func() time.Time) {
	s.now = now
}

// EnsureDefault writes the default backup object if it does not exist yet.
func (s *S3BackupStore) EnsureDefault(ctx context.Context, content string) error {
	_, err := s.put(ctx, defaultBackupName, content)
	if err != nil && isPreconditionFailed(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("write default backup: %w", err)
	}
	return nil
}

// Create durably stores a new snapshot object. Same-second collisions get
// a numeric suffix, mirroring the other backends.
func (s *S3BackupStore) Create(ctx context.Context, content, namePrefix string) (*models.Backup, error) {
	at := s.now().UTC()

	for attempt := 1; attempt <= maxNamingAttempts; attempt++ {
		identifier := backupIdentifier(namePrefix, at, attempt)

		created, err := s.put(ctx, identifier, content)
		if isPreconditionFailed(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}

		return &models.Backup{
			Identifier: identifier,
			Content:    content,
			SizeBytes:  int64(len(content)),
			IsDefault:  identifier == defaultBackupName,
			CreatedAt:  created,
		}, nil
	}

	return nil, fmt.Errorf("create backup: could not find a free identifier for prefix %q", namePrefix)
}

// List returns metadata for every snapshot object, newest first.
func (s *S3BackupStore) List(ctx context.Context) ([]models.BackupInfo, error) {
	var backups []models.BackupInfo

	paginator := s3.NewListObjectsV2Paginator(s.s3, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list backups: %w", err)
		}
		for _, obj := range page.Contents {
			backups = append(backups, models.BackupInfo{
				Identifier: aws.ToString(obj.Key),
				SizeBytes:  aws.ToInt64(obj.Size),
				IsDefault:  aws.ToString(obj.Key) == defaultBackupName,
				CreatedAt:  aws.ToTime(obj.LastModified),
			})
		}
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].CreatedAt.Equal(backups[j].CreatedAt) {
			return backups[i].CreatedAt.After(backups[j].CreatedAt)
		}
		return backups[i].Identifier > backups[j].Identifier
	})

	return backups, nil
}

// Get retrieves a snapshot object by identifier. Returns nil if it does
// not exist.
func (s *S3BackupStore) Get(ctx context.Context, identifier string) (*models.Backup, error) {
	output, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(identifier),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("get backup: %w", err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("get backup: read body: %w", err)
	}

	return &models.Backup{
		Identifier: identifier,
		Content:    string(data),
		SizeBytes:  int64(len(data)),
		IsDefault:  identifier == defaultBackupName,
		CreatedAt:  aws.ToTime(output.LastModified),
	}, nil
}

// put uploads content under key, refusing to overwrite an existing object.
func (s *S3BackupStore) put(ctx context.Context, key, content string) (time.Time, error) {
	at := s.now().UTC()
	_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(content),
		ContentType: aws.String("text/html; charset=utf-8"),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		return time.Time{}, err
	}
	return at, nil
}

// isPreconditionFailed reports whether err is the 412 an If-None-Match PUT
// returns when the key already exists.
func isPreconditionFailed(err error) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed"
}

/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package s3store keeps rosters, generated schedules and cached web pages in
 * an Amazon S3 bucket. Store implements httpcache.Cache so the same bucket
 * backs the cached http client used for sign-up sheet imports.
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("s3store: object not found")

const (
	URIScheme = "s3://"

	webCachePrefix = "webcache"
	RosterPrefix   = "rosters"
	SchedulePrefix = "schedules"
)

// ObjectAPI is the subset of the S3 client the store uses. *s3.Client
// satisfies it.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput,
		optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type Store struct {
	// Config is the Amazon S3 configuration loaded by Init.
	Config aws.Config

	// Client is initialized in Init() with the default Config. Callers may
	// set their own before use instead of calling Init.
	Client ObjectAPI

	bucketName string

	// gzip compresses objects on write and expands them on read. Compressed
	// object keys carry a ".gz" suffix.
	gzip bool

	logger *zap.Logger

	// used by the httpcache.Cache methods, which carry no context
	ctx context.Context
}

// New returns a Store for the given bucket. Invoke Init() on the returned
// Store (or set Client) before use.
func New(ctx context.Context, bucketName string, gzip bool,
	logger *zap.Logger) *Store {

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		ctx:        ctx,
		bucketName: bucketName,
		gzip:       gzip,
		logger:     logger,
	}
}

// Init loads the default AWS configuration (environment variables, then
// shared config and credentials files) and verifies the bucket can be read
// and listed.
func (s *Store) Init() error {
	var err error
	s.Config, err = config.LoadDefaultConfig(s.ctx)
	if err != nil {
		return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
	}
	s.Client = s3.NewFromConfig(s.Config)

	if _, err = s.Client.HeadBucket(s.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w",
			s.bucketName, err)
	}

	if _, err = s.Client.ListObjectsV2(s.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3store.init: list objects failed for %s: %w",
			s.bucketName, err)
	}

	return nil
}

func (s *Store) Bucket() string {
	return s.bucketName
}

// Get returns a cached http response.
func (s *Store) Get(key string) ([]byte, bool) {
	data, err := s.read(s.ctx, s.objectKey(cacheKeyToName(key)))
	if err != nil {
		// a missing key is just a cache miss
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("s3store.get failed", zap.String("key", key),
				zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set stores a cached http response under the given key.
func (s *Store) Set(key string, data []byte) {
	err := s.write(s.ctx, s.objectKey(cacheKeyToName(key)), data, "")
	if err != nil {
		s.logger.Warn("s3store.set failed", zap.String("key", key),
			zap.Error(err))
	}
}

func (s *Store) Delete(key string) {
	_, err := s.Client.DeleteObject(s.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(cacheKeyToName(key))),
	})
	if err != nil {
		s.logger.Warn("s3store.delete failed", zap.String("key", key),
			zap.Error(err))
	}
}

// PutJSON marshals v and stores it under name (e.g. RosterKey("tuesday")).
func (s *Store) PutJSON(ctx context.Context, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("s3store.put: failed to marshal %v: %w", name, err)
	}
	return s.write(ctx, s.objectKey(name), data, "application/json")
}

// GetJSON loads the object stored under name into v. ErrNotFound is
// returned when no such object exists.
func (s *Store) GetJSON(ctx context.Context, name string, v any) error {
	data, err := s.read(ctx, s.objectKey(name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("s3store.get: failed to unmarshal %v: %w", name, err)
	}
	return nil
}

// List returns the names stored under prefix (e.g. "rosters/") in key order,
// without any compression suffix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	p := s3.NewListObjectsV2Paginator(s.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(prefix),
	})

	var names []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3store.list: failed for %v%v: %w",
				s.bucketName, prefix, err)
		}
		for _, obj := range page.Contents {
			names = append(names, strings.TrimSuffix(aws.ToString(obj.Key), ".gz"))
		}
	}
	return names, nil
}

func (s *Store) read(ctx context.Context, objKey string) ([]byte, error) {
	resp, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, objKey)
		}
		return nil, fmt.Errorf("s3store: failed to get object %v/%v: %w",
			s.bucketName, objKey, err)
	}
	defer resp.Body.Close()

	rdr := io.Reader(resp.Body)
	if s.gzip {
		gr, err := gzip.NewReader(rdr)
		if err != nil {
			return nil, fmt.Errorf("s3store: failed to open compressed object %v/%v: %w",
				s.bucketName, objKey, err)
		}
		defer gr.Close()
		rdr = gr
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("s3store: failed to read object %v/%v: %w",
			s.bucketName, objKey, err)
	}
	return data, nil
}

func (s *Store) write(ctx context.Context, objKey string, data []byte,
	contentType string) error {

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if s.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("s3store: failed to gzip data for %v/%v: %w",
				s.bucketName, objKey, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("s3store: failed to close gzip writer for %v/%v: %w",
				s.bucketName, objKey, err)
		}
		input.Body = bytes.NewReader(buf.Bytes())
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3store: put failed for %v/%v: %w", s.bucketName,
			objKey, err)
	}
	return nil
}

func (s *Store) objectKey(name string) string {
	if s.gzip {
		return name + ".gz"
	}
	return name
}

func cacheKeyToName(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	return path.Join(webCachePrefix, hex.EncodeToString(h.Sum(nil)))
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) &&
		(apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound")
}

func RosterKey(name string) string {
	return path.Join(RosterPrefix, name+".json")
}

func ScheduleKey(name string) string {
	return path.Join(SchedulePrefix, name+".json")
}

// ParseURI splits an "s3://name" roster reference. ok is false for plain
// file paths.
func ParseURI(s string) (name string, ok bool) {
	if !strings.HasPrefix(s, URIScheme) {
		return "", false
	}
	return strings.TrimPrefix(s, URIScheme), true
}

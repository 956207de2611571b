// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/keydiff/internal/cacheutil"
	"github.com/tfctl/keydiff/internal/log"
)

// Scheme prefixes snapshot arguments that name an S3 object.
const Scheme = "s3://"

// GetObjectAPI is the slice of the S3 client used to fetch snapshots.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// Object addresses a single, optionally versioned, S3 object.
type Object struct {
	Bucket    string
	Key       string
	VersionID string
}

func (o Object) String() string {
	s := Scheme + o.Bucket + "/" + o.Key
	if o.VersionID != "" {
		s += "?versionId=" + o.VersionID
	}
	return s
}

// IsObjectURL reports whether s looks like an s3:// URL.
func IsObjectURL(s string) bool {
	return strings.HasPrefix(s, Scheme)
}

// ParseObjectURL parses s3://bucket/key[?versionId=V].
func ParseObjectURL(s string) (Object, error) {
	if !IsObjectURL(s) {
		return Object{}, fmt.Errorf("not an s3 url: %s", s)
	}

	u, err := url.Parse(s)
	if err != nil {
		return Object{}, fmt.Errorf("invalid s3 url %s: %w", s, err)
	}

	o := Object{
		Bucket:    u.Host,
		Key:       strings.TrimPrefix(u.Path, "/"),
		VersionID: u.Query().Get("versionId"),
	}
	if o.Bucket == "" || o.Key == "" {
		return Object{}, fmt.Errorf("s3 url needs a bucket and a key: %s", s)
	}
	return o, nil
}

// FetchObject reads the object body. A specific object version never changes,
// so versioned reads go through the cache.
func FetchObject(ctx context.Context, api GetObjectAPI, o Object) ([]byte, error) {
	sub := []string{"s3", o.Bucket}

	if o.VersionID != "" {
		if err := cacheutil.PurgeCache(); err != nil {
			log.WithError(err).Warn("failed to purge cache")
		}
		if entry, ok := cacheutil.ReadRaw(sub, o.String()); ok {
			return entry.Data, nil
		}
	}

	input := &s3v2.GetObjectInput{
		Bucket: awsv2.String(o.Bucket),
		Key:    awsv2.String(o.Key),
	}
	if o.VersionID != "" {
		input.VersionId = awsv2.String(o.VersionID)
	}

	result, err := api.GetObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object %s: %w", o, err)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object %s: %w", o, err)
	}
	log.WithFields(map[string]interface{}{
		"object": o.String(),
		"size":   len(body),
	}).Debug("s3 object fetched")

	if o.VersionID != "" {
		if err := cacheutil.Write(sub, o.String(), body); err != nil {
			log.WithError(err).Warnf("failed to cache %s", o)
		}
	}

	return body, nil
}

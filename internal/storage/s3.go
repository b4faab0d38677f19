// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage client for
// tool logos and private catalogue exports. It wraps the AWS SDK v2 and
// is configured for path-style access (required by CEPH/Hetzner).
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// logoContentTypes maps accepted logo uploads to their file extension.
// Anything else is rejected before touching the bucket.
var logoContentTypes = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/svg+xml": "svg",
	"image/webp":    "webp",
}

// Client operates on two buckets: a public one serving logos directly
// and a private one for catalogue exports.
type Client struct {
	s3            *s3.Client
	presigner     *s3.PresignClient
	publicBucket  string
	privateBucket string
	endpoint      string
	publicURL     string // optional CDN/direct URL for public files
}

// New builds a storage client with static credentials and path-style
// addressing. An empty endpoint or empty credentials yield (nil, nil):
// the directory runs fine without object storage, it just cannot host
// logos.
func New(endpoint, region, accessKey, secretKey, publicBucket, privateBucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	endpoint = strings.TrimRight(endpoint, "/")

	api := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:            api,
		presigner:     s3.NewPresignClient(api),
		publicBucket:  publicBucket,
		privateBucket: privateBucket,
		endpoint:      endpoint,
		publicURL:     strings.TrimRight(publicURL, "/"),
	}, nil
}

// PublicBucket returns the name of the public bucket.
func (c *Client) PublicBucket() string { return c.publicBucket }

// PrivateBucket returns the name of the private bucket.
func (c *Client) PrivateBucket() string { return c.privateBucket }

// UploadLogo stores a tool logo in the public bucket under a stable key
// derived from the tool ID and returns the URL to serve it from.
func (c *Client) UploadLogo(ctx context.Context, toolID, contentType string, body io.Reader, size int64) (string, error) {
	ext, ok := logoContentTypes[contentType]
	if !ok {
		return "", fmt.Errorf("storage: unsupported logo content type %q", contentType)
	}
	key := "logos/" + toolID + "." + ext
	if err := c.Upload(ctx, c.publicBucket, key, contentType, body, size); err != nil {
		return "", err
	}
	return c.FileURL(key), nil
}

// Upload puts an object into the given bucket. Objects in the public
// bucket get a public-read ACL so they can be served without presigning.
func (c *Client) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) error {
	var acl s3types.ObjectCannedACL
	if bucket == c.publicBucket {
		acl = s3types.ObjectCannedACLPublicRead
	}

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           acl,
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Delete removes an object from the given bucket.
func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

// FileURL builds the serving URL for a key in the public bucket,
// preferring the configured CDN URL over the path-style endpoint.
func (c *Client) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.publicBucket + "/" + key
}

// ExtractKey recovers the object key from a public file URL. It returns
// ("", false) for URLs that don't belong to this storage, such as a
// tool's own CDN.
func (c *Client) ExtractKey(rawURL string) (string, bool) {
	if c.publicURL != "" {
		if key, found := strings.CutPrefix(rawURL, c.publicURL+"/"); found {
			return key, true
		}
	}
	if key, found := strings.CutPrefix(rawURL, c.endpoint+"/"+c.publicBucket+"/"); found {
		return key, true
	}
	return "", false
}

// PresignedURL generates a time-limited GET URL for a private object.
func (c *Client) PresignedURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s/%s: %w", bucket, key, err)
	}
	return req.URL, nil
}

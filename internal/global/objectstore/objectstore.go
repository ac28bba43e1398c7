// Package objectstore 项目附件（演示视频、PPT 等）走 S3 兼容存储，前端拿预签名 URL 直传
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"hackathon-vote-system/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrDisabled 未配置 bucket
var ErrDisabled = errors.New("object store disabled")

const (
	defaultUploadExpire   = 15 * time.Minute
	defaultDownloadExpire = time.Hour
)

type Store struct {
	cfg     config.S3
	client  *s3.Client
	presign *s3.PresignClient
	now     func() time.Time
}

// Default Bucket 为空时为 nil
var Default *Store

func Init(ctx context.Context) error {
	c := config.Get().S3
	if c.Bucket == "" {
		return nil
	}
	store, err := New(ctx, c)
	if err != nil {
		return err
	}
	Default = store
	return nil
}

func New(ctx context.Context, c config.S3) (*Store, error) {
	if c.Bucket == "" {
		return nil, ErrDisabled
	}
	region := c.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = c.UsePathStyle
	})
	return &Store{
		cfg:     c,
		client:  client,
		presign: s3.NewPresignClient(client),
		now:     time.Now,
	}, nil
}

type UploadRequest struct {
	// Dir 对象 key 的目录部分，如 project/12
	Dir         string
	Filename    string
	ContentType string
	ExpiresIn   time.Duration
}

type UploadTicket struct {
	UploadURL string            `json:"upload_url"`
	FileKey   string            `json:"file_key"`
	FileURL   string            `json:"file_url"`
	ExpiresAt time.Time         `json:"expires_at"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
}

// PresignUpload 生成 PUT 直传地址，文件名只保留扩展名
func (s *Store) PresignUpload(ctx context.Context, req UploadRequest) (*UploadTicket, error) {
	if req.Filename == "" {
		return nil, errors.New("文件名不能为空")
	}
	if req.ExpiresIn <= 0 {
		req.ExpiresIn = defaultUploadExpire
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := s.objectKey(req.Dir, req.Filename)
	signed, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(req.ExpiresIn))
	if err != nil {
		return nil, fmt.Errorf("生成预签名 URL 失败: %w", err)
	}

	ticket := &UploadTicket{
		UploadURL: signed.URL,
		FileKey:   key,
		FileURL:   s.PublicURL(key),
		ExpiresAt: s.now().Add(req.ExpiresIn),
		Method:    signed.Method,
		Headers:   map[string]string{"Content-Type": contentType},
	}
	for k, v := range signed.SignedHeader {
		if len(v) > 0 {
			ticket.Headers[k] = v[0]
		}
	}
	return ticket, nil
}

// PresignDownload 私有 bucket 下载用
func (s *Store) PresignDownload(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	if expiresIn <= 0 {
		expiresIn = defaultDownloadExpire
	}
	signed, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", fmt.Errorf("生成预签名下载 URL 失败: %w", err)
	}
	return signed.URL, nil
}

func (s *Store) objectKey(dir, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := fmt.Sprintf("%d%s", s.now().UnixNano(), ext)
	key := path.Join(strings.Trim(s.cfg.Prefix, "/"), strings.Trim(dir, "/"), name)
	return strings.TrimLeft(key, "/")
}

// PublicURL 上传完成后的访问地址，BaseURL 为空时退回 Endpoint
func (s *Store) PublicURL(key string) string {
	base := strings.TrimRight(s.cfg.BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(s.cfg.Endpoint, "/")
	}
	if s.cfg.UsePathStyle {
		return base + "/" + s.cfg.Bucket + "/" + key
	}
	return base + "/" + key
}

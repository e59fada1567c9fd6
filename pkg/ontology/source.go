package ontology

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/exp/mmap"
)

// Source yields the raw bytes of an ontology document.
type Source interface {
	// Name identifies the document; a ".sz" suffix marks a snappy stream.
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a local file through a read-only memory map, so a large
// hp.json is paged in by the kernel rather than copied into the heap first.
type FileSource struct {
	Path string
}

func (f FileSource) Name() string { return f.Path }

// Open maps the file and returns a reader over the whole mapping.
func (f FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := mmap.Open(f.Path)
	if err != nil {
		return nil, err
	}
	return &mappedFile{
		SectionReader: io.NewSectionReader(m, 0, int64(m.Len())),
		m:             m,
	}, nil
}

type mappedFile struct {
	*io.SectionReader
	m *mmap.ReaderAt
}

func (mf *mappedFile) Close() error { return mf.m.Close() }

// ObjectGetter is the subset of the S3 client used by S3Source.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Options configures access to an S3-compatible object store.
type S3Options struct {
	Region          string
	Endpoint        string // custom endpoint (MinIO, LocalStack); enables path-style addressing
	AccessKeyID     string // static credentials; empty means the default chain
	SecretAccessKey string
}

// S3Source fetches the document from an object store.
type S3Source struct {
	Bucket string
	Key    string
	Client ObjectGetter
}

func (s S3Source) Name() string { return "s3://" + s.Bucket + "/" + s.Key }

func (s S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// NewS3Client builds an S3 client from the default AWS configuration chain,
// overridden by opts.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// ParseS3URL splits s3://bucket/key. ok is false for anything else.
func ParseS3URL(location string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(location, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// SourceFor resolves a location into a Source: s3://bucket/key uses S3,
// anything else is a local path.
func SourceFor(ctx context.Context, location string, opts S3Options) (Source, error) {
	if strings.HasPrefix(location, "s3://") {
		bucket, key, ok := ParseS3URL(location)
		if !ok {
			return nil, malformed("invalid s3 location %q", location)
		}
		client, err := NewS3Client(ctx, opts)
		if err != nil {
			return nil, loadError("s3 client", err)
		}
		return S3Source{Bucket: bucket, Key: key, Client: client}, nil
	}
	if location == "" {
		return nil, malformed("no ontology location configured")
	}
	return FileSource{Path: location}, nil
}

// Load opens src and decodes it, decompressing snappy snapshots on the way.
func Load(ctx context.Context, src Source) (*Document, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, loadError("open "+src.Name(), err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if IsSnapshot(src.Name()) {
		r = NewSnapshotReader(rc)
	}
	return Decode(r)
}

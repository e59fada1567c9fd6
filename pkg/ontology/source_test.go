package ontology

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_Load(t *testing.T) {
	doc, err := Load(context.Background(), FileSource{Path: "testdata/mini_hp.json"})
	require.NoError(t, err)
	assert.Len(t, doc.Nodes, 6)
}

func TestFileSource_Missing(t *testing.T) {
	_, err := Load(context.Background(), FileSource{Path: filepath.Join(t.TempDir(), "absent.json")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoadFailure)
}

func TestFileSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, FileSource{Path: "testdata/mini_hp.json"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrLoadFailure)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	raw, err := os.ReadFile("testdata/mini_hp.json")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "hp.json"+SnapshotSuffix)
	out, err := os.Create(path)
	require.NoError(t, err)
	n, err := WriteSnapshot(out, bytes.NewReader(raw))
	require.NoError(t, err)
	require.NoError(t, out.Close())
	assert.Equal(t, int64(len(raw)), n)

	compressed, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, raw, compressed)

	doc, err := Load(context.Background(), FileSource{Path: path})
	require.NoError(t, err)
	assert.Len(t, doc.Nodes, 6)
	assert.Len(t, doc.Edges, 8)
}

func TestIsSnapshot(t *testing.T) {
	assert.True(t, IsSnapshot("hp.json.sz"))
	assert.True(t, IsSnapshot("s3://bucket/hp.json.sz"))
	assert.False(t, IsSnapshot("hp.json"))
}

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		in     string
		bucket string
		key    string
		ok     bool
	}{
		{"s3://ontologies/hpo/hp.json", "ontologies", "hpo/hp.json", true},
		{"s3://ontologies/hp.json", "ontologies", "hp.json", true},
		{"s3://ontologies", "", "", false},
		{"s3:///hp.json", "", "", false},
		{"s3://ontologies/", "", "", false},
		{"/data/hp.json", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			bucket, key, ok := ParseS3URL(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestSourceFor(t *testing.T) {
	src, err := SourceFor(context.Background(), "hp.json", S3Options{})
	require.NoError(t, err)
	assert.Equal(t, FileSource{Path: "hp.json"}, src)

	_, err = SourceFor(context.Background(), "", S3Options{})
	assert.ErrorIs(t, err, ErrLoadFailure)

	_, err = SourceFor(context.Background(), "s3://bucket-only", S3Options{})
	assert.ErrorIs(t, err, ErrLoadFailure)
}

type fakeS3 struct {
	objects map[string][]byte
	calls   []string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	k := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.calls = append(f.calls, k)
	body, ok := f.objects[k]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func TestS3Source_Load(t *testing.T) {
	raw, err := os.ReadFile("testdata/mini_hp.json")
	require.NoError(t, err)

	var packed bytes.Buffer
	_, err = WriteSnapshot(&packed, bytes.NewReader(raw))
	require.NoError(t, err)

	client := &fakeS3{objects: map[string][]byte{
		"ontologies/hp.json":    raw,
		"ontologies/hp.json.sz": packed.Bytes(),
	}}

	for _, key := range []string{"hp.json", "hp.json.sz"} {
		t.Run(key, func(t *testing.T) {
			src := S3Source{Bucket: "ontologies", Key: key, Client: client}
			assert.Equal(t, "s3://ontologies/"+key, src.Name())

			doc, err := Load(context.Background(), src)
			require.NoError(t, err)
			assert.Len(t, doc.Nodes, 6)
		})
	}

	_, err = Load(context.Background(), S3Source{Bucket: "ontologies", Key: "missing.json", Client: client})
	assert.ErrorIs(t, err, ErrLoadFailure)
	assert.Equal(t, []string{"ontologies/hp.json", "ontologies/hp.json.sz", "ontologies/missing.json"}, client.calls)
}

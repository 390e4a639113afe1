package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speech2text/internal/config"
)

func TestObjectKey(t *testing.T) {
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

	key := ObjectKey(now, "Meeting.WAV", "audio/wav")
	assert.Regexp(t, regexp.MustCompile(`^audio/2024/03/09/\d+-[0-9a-f]{8}\.wav$`), key)

	key = ObjectKey(now, "", "audio/x-not-registered")
	assert.Regexp(t, regexp.MustCompile(`^audio/2024/03/09/\d+-[0-9a-f]{8}$`), key)

	assert.NotEqual(t, ObjectKey(now, "a.mp3", ""), ObjectKey(now, "a.mp3", ""))
}

func TestFileURL(t *testing.T) {
	a := &MinioArchive{bucket: "clips", endpoint: "minio:9000"}
	assert.Equal(t, "http://minio:9000/clips/audio/x.wav", a.FileURL("audio/x.wav"))

	a.useSSL = true
	assert.Equal(t, "https://minio:9000/clips/audio/x.wav", a.FileURL("audio/x.wav"))
}

// fakeS3 answers the handful of calls the archive makes
type fakeS3 struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
	bucket := parts[0]

	switch {
	case r.Method == http.MethodHead && len(parts) == 1:
		if !f.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && len(parts) == 1:
		f.buckets[bucket] = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = data
		f.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func TestMinioArchive_Put(t *testing.T) {
	fake := &fakeS3{
		buckets: map[string]bool{"clips": true},
		objects: map[string][]byte{},
		types:   map[string]string{},
	}
	server := httptest.NewServer(fake)
	defer server.Close()

	endpoint, err := url.Parse(server.URL)
	require.NoError(t, err)

	archive, err := NewMinioArchive(context.Background(), config.ArchiveConfig{
		Endpoint:  endpoint.Host,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "clips",
	})
	require.NoError(t, err)

	objectURL, err := archive.Put(context.Background(), "voice.wav", "audio/wav", []byte("RIFFdata"))
	require.NoError(t, err)

	prefix := "http://" + endpoint.Host + "/clips/audio/"
	assert.True(t, strings.HasPrefix(objectURL, prefix), objectURL)
	assert.True(t, strings.HasSuffix(objectURL, ".wav"), objectURL)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.objects, 1)
	for path, data := range fake.objects {
		assert.Equal(t, []byte("RIFFdata"), data)
		assert.Equal(t, "audio/wav", fake.types[path])
		assert.Equal(t, strings.TrimPrefix(objectURL, "http://"+endpoint.Host), path)
	}
}

func TestNewMinioArchive_CreatesMissingBucket(t *testing.T) {
	fake := &fakeS3{buckets: map[string]bool{}, objects: map[string][]byte{}, types: map[string]string{}}
	server := httptest.NewServer(fake)
	defer server.Close()

	endpoint, err := url.Parse(server.URL)
	require.NoError(t, err)

	_, err = NewMinioArchive(context.Background(), config.ArchiveConfig{
		Endpoint:  endpoint.Host,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "fresh",
	})
	require.NoError(t, err)
	assert.True(t, fake.buckets["fresh"])
}

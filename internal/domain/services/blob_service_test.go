package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
)

func TestUniqueName(t *testing.T) {
	name := uniqueName("stall-design.png")
	assert.True(t, strings.HasSuffix(name, "-stall-design.png"))

	// 只有扩展名时退化为 uuid 文件名
	name = uniqueName(".png")
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Greater(t, len(name), len("169.png"))

	// 路径部分被剥掉，只保留文件名
	name = uniqueName("../../etc/passwd")
	assert.False(t, strings.Contains(name, "/"))
	assert.True(t, strings.HasSuffix(name, "-passwd"))
}

func TestStoreAndRemoveLocal(t *testing.T) {
	cfg := &config.Config{
		UploadDir:     t.TempDir(),
		PublicBaseURL: "http://localhost:5000",
	}
	svc := NewBlobService(cfg)

	assert.Equal(t, "local", svc.Mode())

	stored, err := svc.Store([]byte("png-bytes"), "cover.png", "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored.Pathname, "-cover.png"))
	assert.Equal(t, int64(9), stored.Size)
	assert.Equal(t, "http://localhost:5000/uploads/"+stored.Pathname, stored.URL)

	// 文件确实写到了本地目录
	data, err := os.ReadFile(filepath.Join(cfg.UploadDir, stored.Pathname))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, svc.Remove(stored.URL))
	_, err = os.Stat(filepath.Join(cfg.UploadDir, stored.Pathname))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveMissingLocalFile(t *testing.T) {
	cfg := &config.Config{
		UploadDir:     t.TempDir(),
		PublicBaseURL: "http://localhost:5000",
	}
	svc := NewBlobService(cfg)

	// 不存在的文件只记录警告，不算错误
	assert.NoError(t, svc.Remove("http://localhost:5000/uploads/gone.png"))
	assert.NoError(t, svc.Remove(""))
}

func TestStoreRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"url":      "https://blob.example.com" + r.URL.Path,
			"pathname": strings.TrimPrefix(r.URL.Path, "/"),
		})
	}))
	defer server.Close()

	cfg := &config.Config{
		UploadDir:      t.TempDir(),
		PublicBaseURL:  "http://localhost:5000",
		BlobStoreURL:   server.URL,
		BlobStoreToken: "test-token",
	}
	svc := NewBlobService(cfg)

	assert.Equal(t, "remote", svc.Mode())

	stored, err := svc.Store([]byte("png-bytes"), "cover.png", "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.URL, "https://blob.example.com/"))
	assert.True(t, strings.HasSuffix(stored.Pathname, "-cover.png"))

	// 远程模式下不应落本地文件
	entries, err := os.ReadDir(cfg.UploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreRemoteFallsBackToLocal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := &config.Config{
		UploadDir:      t.TempDir(),
		PublicBaseURL:  "http://localhost:5000",
		BlobStoreURL:   server.URL,
		BlobStoreToken: "test-token",
	}
	svc := NewBlobService(cfg)

	stored, err := svc.Store([]byte("png-bytes"), "cover.png", "image/png")
	require.NoError(t, err)

	// 远程失败后回退写本地
	_, statErr := os.Stat(filepath.Join(cfg.UploadDir, stored.Pathname))
	assert.NoError(t, statErr)
	assert.True(t, strings.HasPrefix(stored.URL, "http://localhost:5000/uploads/"))
}

func TestPublicURLIdempotent(t *testing.T) {
	cfg := &config.Config{
		UploadDir:     "uploads",
		PublicBaseURL: "http://localhost:5000/",
	}
	svc := NewBlobService(cfg)

	assert.Equal(t, "http://localhost:5000/uploads/a.png", svc.PublicURL("a.png"))
	assert.Equal(t, "https://blob.example.com/a.png", svc.PublicURL("https://blob.example.com/a.png"))
}

func TestIsRemoteURL(t *testing.T) {
	base := "http://localhost:5000"

	assert.False(t, isRemoteURL("a.png", base))
	assert.False(t, isRemoteURL("http://localhost:5000/uploads/a.png", base))
	assert.True(t, isRemoteURL("https://blob.example.com/a.png", base))
}

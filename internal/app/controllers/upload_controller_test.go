package controllers

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
)

func TestDecodeDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	tests := []struct {
		name     string
		input    string
		wantData string
		wantType string
		wantErr  bool
	}{
		{"带MIME的dataURL", "data:image/png;base64," + payload, "png-bytes", "image/png", false},
		{"无MIME的dataURL", "data:;base64," + payload, "png-bytes", "application/octet-stream", false},
		{"纯base64", payload, "png-bytes", "application/octet-stream", false},
		{"损坏的base64", "data:image/png;base64,!!not-base64!!", "", "", true},
		{"缺少逗号的dataURL", "data:image/png;base64", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, contentType, err := decodeDataURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, string(data))
			assert.Equal(t, tt.wantType, contentType)
		})
	}
}

func TestUploadForwardsDeclaredContentType(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 远程对象存储收到的必须是客户端声明的MIME类型，而不是兜底的octet-stream
	var gotContentType string
	blobServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url": "https://blobs.example.com/stall-design.png", "pathname": "stall-design.png"}`))
	}))
	defer blobServer.Close()

	c, _ := newTestContainerWithConfig(t, func(cfg *config.Config) {
		cfg.BlobStoreURL = blobServer.URL
		cfg.BlobStoreToken = "test-token"
	})

	r := gin.New()
	r.POST("/api/upload/image", HandleUploadFunc(c, "upload"))

	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	body := `{"file": "` + payload + `", "fileName": "stall-design.png", "contentType": "image/png"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "image/png", gotContentType)
	assert.Contains(t, w.Body.String(), "https://blobs.example.com/stall-design.png")
}

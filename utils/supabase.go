package utils

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// ErrStorageDisabled: chưa cấu hình SUPABASE_URL/SUPABASE_KEY.
var ErrStorageDisabled = errors.New("supabase storage not configured")

// SupabaseConfig là phần cấu hình Supabase Storage cần để upload.
type SupabaseConfig struct {
	URL    string
	Key    string
	Bucket string
}

func (s SupabaseConfig) Enabled() bool {
	return s.URL != "" && s.Key != "" && s.Bucket != ""
}

// UploadToSupabase upload dữ liệu lên bucket, trả về public URL.
func UploadToSupabase(cfg SupabaseConfig, data []byte, folder, filename, contentType string) (string, error) {
	if !cfg.Enabled() {
		return "", ErrStorageDisabled
	}
	storageClient := storage.NewClient(strings.TrimRight(cfg.URL, "/")+"/storage/v1", cfg.Key, nil)

	// Path trong bucket
	objectPath := filename
	if folder != "" {
		objectPath = path.Join(folder, filename)
	}

	upsert := true
	options := storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}
	if _, err := storageClient.UploadFile(cfg.Bucket, objectPath, bytes.NewReader(data), options); err != nil {
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}

	publicURL := storageClient.GetPublicUrl(cfg.Bucket, objectPath)
	return publicURL.SignedURL, nil
}

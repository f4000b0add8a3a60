package service

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"SkyVault/config"
	"SkyVault/internal/cipher"
	"SkyVault/internal/errs"
	"SkyVault/internal/storage"
	"SkyVault/model"
)

// DownloadResult is either a signed URL the caller can fetch directly
// (plain files) or decrypted bytes (encrypted files).
type DownloadResult struct {
	URL      string
	Data     []byte
	Name     string
	MimeType string
	Size     int64
}

// httpClient fetches ciphertext through the signed URL. Overridable in
// tests.
var httpClient = &http.Client{}

// ResolveDownload resolves a file to readable content. Plain files get a
// short-lived signed URL and no fetch. Encrypted files are fetched through
// the signed URL and decrypted with the passphrase supplied by the caller
// at call time; the passphrase is never persisted.
func ResolveDownload(ctx context.Context, file *model.File, passphrase string) (*DownloadResult, error) {
	if storage.Default == nil {
		return nil, fmt.Errorf("%w: storage not initialized", errs.ErrStorage)
	}
	url, err := storage.Default.PresignedGetObject(ctx, storage.Bucket, file.StoragePath, config.AppConfig.SignedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStorage, err)
	}

	if !file.IsEncrypted {
		return &DownloadResult{
			URL:      url,
			Name:     file.Name,
			MimeType: file.MimeType,
			Size:     file.Size,
		}, nil
	}

	if passphrase == "" {
		return nil, fmt.Errorf("%w: passphrase required", errs.ErrValidation)
	}

	blob, err := fetchCiphertext(ctx, url)
	if err != nil {
		return nil, err
	}
	plaintext, err := cipher.Decrypt(blob, passphrase)
	if err != nil {
		// ErrInvalidPassphrase stays distinguishable from transport errors
		return nil, err
	}
	return &DownloadResult{
		Data:     plaintext,
		Name:     file.Name,
		MimeType: file.MimeType,
		Size:     int64(len(plaintext)),
	}, nil
}

func fetchCiphertext(ctx context.Context, url string) ([]byte, error) {
	timeout := config.AppConfig.DownloadHTTPTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStorage, err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStorage, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: object missing", errs.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: signed url returned %d", errs.ErrStorage, resp.StatusCode)
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStorage, err)
	}
	return blob, nil
}

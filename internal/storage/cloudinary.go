package storage

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// CloudinaryClient uploads note files to Cloudinary as raw assets
// using signed requests. No SDK, just the documented HTTP API.
type CloudinaryClient struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

func NewCloudinaryClient(cloudName, apiKey, apiSecret string, timeout time.Duration) *CloudinaryClient {
	return &CloudinaryClient{
		cloudName:  cloudName,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// sign computes the Cloudinary request signature: the sorted
// parameters concatenated with the API secret, SHA-1 hex encoded.
// Parameters must already be in lexicographic key order.
func (c *CloudinaryClient) sign(params string) string {
	h := sha1.Sum([]byte(params + c.apiSecret))
	return hex.EncodeToString(h[:])
}

func (c *CloudinaryClient) Upload(ctx context.Context, filename string, data []byte) (string, string, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := c.sign("timestamp=" + timestamp)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", "", err
	}
	_ = writer.WriteField("api_key", c.apiKey)
	_ = writer.WriteField("timestamp", timestamp)
	_ = writer.WriteField("signature", signature)
	if err := writer.Close(); err != nil {
		return "", "", err
	}

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/raw/upload", c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	var result cloudinaryUploadResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", "", fmt.Errorf("cloudinary response decode failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("cloudinary upload failed with status %d: %s", resp.StatusCode, result.Error.Message)
	}
	return result.SecureURL, result.PublicID, nil
}

func (c *CloudinaryClient) Delete(ctx context.Context, publicID string) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := c.sign("public_id=" + publicID + "&timestamp=" + timestamp)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("api_key", c.apiKey)
	form.Set("timestamp", timestamp)
	form.Set("signature", signature)

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/raw/destroy", c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cloudinary delete failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cloudinary delete failed with status %d", resp.StatusCode)
	}
	return nil
}

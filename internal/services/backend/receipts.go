package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"receiptweb/internal/models"
)

// RecentReceipts lists the signed-in user's receipts for the activity feed
func (c *Client) RecentReceipts(ctx context.Context, token string) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/api/receipts/",
		path:     "/api/receipts/",
		token:    token,
	}, &receipts)
	return receipts, err
}

// AllReceipts lists every receipt of the signed-in user
func (c *Client) AllReceipts(ctx context.Context, token string) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/api/receipts/all",
		path:     "/api/receipts/all",
		token:    token,
	}, &receipts)
	return receipts, err
}

// UploadReceipt sends a receipt image for processing and returns the stored receipt
func (c *Client) UploadReceipt(ctx context.Context, token, filename string, file io.Reader) (models.Receipt, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return models.Receipt{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return models.Receipt{}, fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return models.Receipt{}, fmt.Errorf("close multipart: %w", err)
	}

	var receipt models.Receipt
	err = c.do(ctx, request{
		method:      http.MethodPost,
		endpoint:    "/api/receipts/",
		path:        "/api/receipts/",
		token:       token,
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, &receipt)
	return receipt, err
}

// DeleteReceipt removes one of the signed-in user's receipts
func (c *Client) DeleteReceipt(ctx context.Context, token string, id int) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		endpoint: "/api/receipts/{id}",
		path:     "/api/receipts/" + strconv.Itoa(id),
		token:    token,
	}, nil)
}

package stdb

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// ModuleField is the multipart field carrying the compiled module.
const ModuleField = "wasm_module"

// PublishModule uploads a compiled module to a database, creating the
// database when it does not exist yet.
func (c *Client) PublishModule(ctx context.Context, database, filename string, module io.Reader) *PublishResult {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile(ModuleField, filepath.Base(filename))
	if err != nil {
		return &PublishResult{Error: err.Error()}
	}
	if _, err := io.Copy(part, module); err != nil {
		return &PublishResult{Error: "failed to read module: " + err.Error()}
	}
	if err := form.Close(); err != nil {
		return &PublishResult{Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+databasePath("/v1/database/", database, ""), &body)
	if err != nil {
		return &PublishResult{Error: err.Error()}
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.authorize(req)

	resp, err := c.send(req)
	if err != nil {
		return &PublishResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	if !isOK(resp) {
		return &PublishResult{
			Error: "failed to publish module: " + statusText(resp) + " - " + readBody(resp),
		}
	}

	var payload map[string]any
	if err := decodeJSON(resp.Body, &payload); err != nil {
		return &PublishResult{Error: "failed to publish module: invalid response: " + err.Error()}
	}

	return &PublishResult{
		Success:          true,
		DatabaseIdentity: stringField(payload, "identity"),
		DatabaseName:     database,
	}
}

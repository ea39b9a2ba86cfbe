package shared

import (
	"embed"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/stdb"
)

// EmbeddedFileToBytes reads a file from the embedded filesystem and returns its content as bytes
func EmbeddedFileToBytes(embeddedFileSystem embed.FS, path string) ([]byte, error) {
	return embeddedFileSystem.ReadFile(path)
}

// EmbeddedFileToString reads a file from the embedded filesystem and returns its content as a string
func EmbeddedFileToString(embeddedFileSystem embed.FS, path string) (string, error) {
	bytes, err := EmbeddedFileToBytes(embeddedFileSystem, path)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// ParseJSONObject decodes a JSON object form value. Numbers are kept as
// json.Number so large integers survive.
func ParseJSONObject(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty JSON object")
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.New("expected a JSON object")
	}
	return out, nil
}

// Confirmed reports whether a destructive action carries confirm=yes.
func Confirmed(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.FormValue("confirm")), constants.ConfirmValue)
}

// ConnectionLabel describes an active connection for page headers.
func ConnectionLabel(cfg stdb.Config) string {
	label := cfg.Endpoint()
	if cfg.Database != "" {
		label += " / " + cfg.Database
	}
	return label
}

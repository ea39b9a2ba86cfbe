package api_module_publish

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/dracory/spacebase/shared/types"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// WasmMIME is the detected type of a WebAssembly binary.
const WasmMIME = "application/wasm"

// ModulePublish uploads a compiled module to a database
type ModulePublish struct {
	cfg types.Config
}

// New creates a new ModulePublish handler
func New(cfg types.Config) *ModulePublish {
	return &ModulePublish{cfg: cfg}
}

func (h *ModulePublish) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("module_publish must be POST"))
		return
	}

	if h.cfg.ReadOnlyMode {
		api.Respond(w, r, api.Error(constants.ReadOnlyMessage))
		return
	}

	conn, ok := session.RequireConnection(w, r, h.cfg.SecureCookies)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxModuleSize+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		api.Respond(w, r, api.Error("failed to parse upload: "+err.Error()))
		return
	}

	database := strings.TrimSpace(r.FormValue("database"))
	if database == "" {
		api.Respond(w, r, api.Error("database name is required"))
		return
	}

	file, header, err := r.FormFile(stdb.ModuleField)
	if err != nil {
		api.Respond(w, r, api.Error("Please select a WebAssembly (.wasm) file"))
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".wasm") {
		api.Respond(w, r, api.Error("Please select a WebAssembly (.wasm) file"))
		return
	}

	module, err := io.ReadAll(io.LimitReader(file, constants.MaxModuleSize+1))
	if err != nil {
		api.Respond(w, r, api.Error("failed to read module: "+err.Error()))
		return
	}
	if len(module) > constants.MaxModuleSize {
		api.Respond(w, r, api.Error(fmt.Sprintf("module exceeds %s", humanize.IBytes(constants.MaxModuleSize))))
		return
	}

	if mtype := mimetype.Detect(module); !mtype.Is(WasmMIME) {
		api.Respond(w, r, api.Error("file is not a WebAssembly module (detected "+mtype.String()+")"))
		return
	}

	res := conn.Client.PublishModule(r.Context(), database, header.Filename, bytes.NewReader(module))
	if !res.Success {
		api.Respond(w, r, api.Error(res.Error))
		return
	}

	size := humanize.Bytes(uint64(len(module)))
	h.cfg.Log().Info("module published",
		slog.String("database", database),
		slog.String("identity", res.DatabaseIdentity),
		slog.String("size", size),
	)

	api.Respond(w, r, api.SuccessWithData(fmt.Sprintf("Module published to %q successfully!", database), map[string]any{
		"database_identity": res.DatabaseIdentity,
		"database_name":     res.DatabaseName,
		"size":              size,
	}))
}

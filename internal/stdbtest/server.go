// Package stdbtest runs an in-memory stand-in for a remote instance, for tests.
package stdbtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/dracory/spacebase/shared/stdb"
)

// Query is a statement received on the sql endpoint.
type Query struct {
	Database string
	SQL      string
	Params   []any
}

// Database is the state kept for one hosted database.
type Database struct {
	Identity string
	Tables   []stdb.TableInfo
	Rows     map[string][]map[string]any
	Module   []byte
}

// Server is a fake instance answering the schema, sql and database endpoints.
type Server struct {
	*httptest.Server

	// Token, when set, must be presented as a bearer token.
	Token string

	mu        sync.Mutex
	databases map[string]*Database
	queries   []Query
	nextID    int
}

// New starts a server that is closed with the test.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{databases: map[string]*Database{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/databases", s.handleList)
	mux.HandleFunc("/v1/databases", s.handleList)
	mux.HandleFunc("/database/", s.handleDatabase)
	mux.HandleFunc("/v1/database/", s.handleV1Database)

	s.Server = httptest.NewServer(s.authorize(mux))
	t.Cleanup(s.Close)
	return s
}

// Config returns a client config pointing at the server.
func (s *Server) Config(database string) stdb.Config {
	return stdb.Config{URL: s.URL, Database: database, Token: s.Token}
}

// AddDatabase registers a database with the given tables.
func (s *Server) AddDatabase(name string, tables ...stdb.TableInfo) *Database {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(name, tables)
}

func (s *Server) addLocked(name string, tables []stdb.TableInfo) *Database {
	s.nextID++
	db := &Database{
		Identity: fmt.Sprintf("c200%060x", s.nextID),
		Tables:   tables,
		Rows:     map[string][]map[string]any{},
	}
	s.databases[name] = db
	return db
}

// SetRows replaces the rows of a table.
func (s *Server) SetRows(database, table string, rows []map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if db, ok := s.databases[database]; ok {
		db.Rows[table] = rows
	}
}

// SetTables replaces the schema of a database.
func (s *Server) SetTables(database string, tables ...stdb.TableInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if db, ok := s.databases[database]; ok {
		db.Tables = tables
	}
}

// Database returns a registered database.
func (s *Server) Database(name string) (*Database, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, ok := s.databases[name]
	return db, ok
}

// Module returns the last module published to a database.
func (s *Server) Module(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if db, ok := s.databases[name]; ok {
		return db.Module
	}
	return nil
}

// Queries returns every statement received so far.
func (s *Server) Queries() []Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Query(nil), s.queries...)
}

// LastQuery returns the most recent statement, or the zero Query.
func (s *Server) LastQuery() Query {
	qs := s.Queries()
	if len(qs) == 0 {
		return Query{}
	}
	return qs[len(qs)-1]
}

func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Token != "" && r.Header.Get("Authorization") != "Bearer "+s.Token {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	names := make([]string, 0, len(s.databases))
	for name := range s.databases {
		names = append(names, name)
	}
	s.mu.Unlock()

	sort.Strings(names)
	writeJSON(w, names)
}

// handleDatabase serves /database/{name}/schema and /database/{name}/sql.
func (s *Server) handleDatabase(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/database/")
	name, endpoint, _ := strings.Cut(rest, "/")

	s.mu.Lock()
	db, ok := s.databases[name]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case endpoint == "schema" && r.Method == http.MethodGet:
		s.mu.Lock()
		tables := append([]stdb.TableInfo(nil), db.Tables...)
		s.mu.Unlock()
		writeJSON(w, map[string]any{"tables": tables})
	case endpoint == "sql" && r.Method == http.MethodPost:
		s.handleSQL(w, r, name, db)
	default:
		http.NotFound(w, r)
	}
}

var (
	selectPage  = regexp.MustCompile(`(?i)^SELECT \* FROM (\S+) LIMIT (\d+) OFFSET (\d+)$`)
	selectWhere = regexp.MustCompile(`(?i)^SELECT \* FROM (\S+) WHERE (.+?)(?: LIMIT (\d+))?$`)
	whereColumn = regexp.MustCompile(`(\S+) = \?`)
	mutation    = regexp.MustCompile(`(?i)^(INSERT INTO|UPDATE|DELETE FROM) (\S+)`)
)

func (s *Server) handleSQL(w http.ResponseWriter, r *http.Request, name string, db *Database) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req struct {
		Query  string `json:"query"`
		Params []any  `json:"params"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.queries = append(s.queries, Query{Database: name, SQL: req.Query, Params: req.Params})
	s.mu.Unlock()

	sql := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(req.Query), ";"))

	if m := selectPage.FindStringSubmatch(sql); m != nil {
		limit, _ := strconv.Atoi(m[2])
		offset, _ := strconv.Atoi(m[3])
		writeJSON(w, map[string]any{"rows": s.page(db, strings.Trim(m[1], `"`), limit, offset)})
		return
	}

	if m := selectWhere.FindStringSubmatch(sql); m != nil {
		columns := whereColumn.FindAllStringSubmatch(m[2], -1)
		limit, _ := strconv.Atoi(m[3])
		writeJSON(w, map[string]any{"rows": s.match(db, strings.Trim(m[1], `"`), columns, req.Params, limit)})
		return
	}

	if mutation.MatchString(sql) {
		writeJSON(w, map[string]any{"rowsAffected": 1})
		return
	}

	if strings.HasPrefix(strings.ToUpper(sql), "SELECT") {
		writeJSON(w, map[string]any{"rows": []map[string]any{}})
		return
	}

	http.Error(w, "unsupported statement", http.StatusBadRequest)
}

func (s *Server) page(db *Database, table string, limit, offset int) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := db.Rows[table]
	if offset >= len(rows) {
		return []map[string]any{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func (s *Server) match(db *Database, table string, columns [][]string, params []any, limit int) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []map[string]any{}
	for _, row := range db.Rows[table] {
		ok := true
		for i, col := range columns {
			if i >= len(params) || fmt.Sprint(row[strings.Trim(col[1], `"`)]) != fmt.Sprint(params[i]) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, row)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// handleV1Database serves create, publish, info and delete on /v1/database/{name}.
func (s *Server) handleV1Database(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/v1/database/")
	if name == "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		db, ok := s.Database(name)
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]any{"identity": db.Identity, "name": name, "host_type": "wasm"})
	case http.MethodDelete:
		s.mu.Lock()
		_, ok := s.databases[name]
		delete(s.databases, name)
		s.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodPost:
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			s.handlePublish(w, r, name)
			return
		}
		s.mu.Lock()
		if _, exists := s.databases[name]; exists {
			s.mu.Unlock()
			http.Error(w, "database already exists", http.StatusConflict)
			return
		}
		db := s.addLocked(name, nil)
		s.mu.Unlock()
		writeJSON(w, map[string]any{"identity": db.Identity, "owner_identity": "c200owner"})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request, name string) {
	file, _, err := r.FormFile(stdb.ModuleField)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	module, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	db, ok := s.databases[name]
	if !ok {
		db = s.addLocked(name, nil)
	}
	db.Module = module
	s.mu.Unlock()

	writeJSON(w, map[string]any{"identity": db.Identity})
}

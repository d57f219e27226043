package keychain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/benaskins/rememberme/internal/audit"
)

// CredentialMetadata tracks when a credential was written and last read.
type CredentialMetadata struct {
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
	LastRetrieved time.Time `json:"last_retrieved,omitempty"`
}

// MetadataStore persists credential metadata to a JSON file that other
// processes write too. Every call re-reads the file, and writes merge one
// account into its current contents.
type MetadataStore struct {
	mu       sync.Mutex
	path     string
	metadata map[string]*CredentialMetadata
}

// NewMetadataStore loads or creates a metadata file.
func NewMetadataStore(path string) (*MetadataStore, error) {
	ms := &MetadataStore{
		path:     path,
		metadata: make(map[string]*CredentialMetadata),
	}
	ms.load()
	return ms, nil
}

// load replaces the in-memory copy with the file's contents. A missing file
// means no credentials have been written yet.
func (ms *MetadataStore) load() {
	data, err := os.ReadFile(ms.path)
	if errors.Is(err, fs.ErrNotExist) {
		ms.metadata = make(map[string]*CredentialMetadata)
		return
	}
	if err != nil {
		slog.Warn("reading metadata file failed, using cached copy", "path", ms.path, "error", err)
		return
	}
	fresh := make(map[string]*CredentialMetadata)
	if jsonErr := json.Unmarshal(data, &fresh); jsonErr != nil {
		slog.Warn("corrupt metadata file, starting fresh", "path", ms.path, "error", jsonErr)
		fresh = make(map[string]*CredentialMetadata)
	}
	ms.metadata = fresh
}

// Path returns the backing file.
func (ms *MetadataStore) Path() string {
	return ms.path
}

// Get returns a copy of the metadata for an account, or nil if not tracked.
func (ms *MetadataStore) Get(account string) *CredentialMetadata {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.load()
	m, ok := ms.metadata[account]
	if !ok {
		return nil
	}
	cp := *m
	return &cp
}

// Set records metadata for an account and persists to disk.
func (ms *MetadataStore) Set(account string, meta *CredentialMetadata) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.load()
	cp := *meta
	ms.metadata[account] = &cp
	return ms.save()
}

// Delete removes metadata for an account.
func (ms *MetadataStore) Delete(account string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.load()
	if _, ok := ms.metadata[account]; !ok {
		return nil
	}
	delete(ms.metadata, account)
	return ms.save()
}

// Accounts returns the tracked accounts, sorted.
func (ms *MetadataStore) Accounts() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.load()
	accounts := make([]string, 0, len(ms.metadata))
	for k := range ms.metadata {
		accounts = append(accounts, k)
	}
	sort.Strings(accounts)
	return accounts
}

func (ms *MetadataStore) save() error {
	data, err := json.MarshalIndent(ms.metadata, "", "  ")
	if err != nil {
		return err
	}
	// Unique temp name so concurrent writers never share a half-written file.
	tmp, err := os.CreateTemp(filepath.Dir(ms.path), filepath.Base(ms.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, ms.path)
}

// AuditedStore wraps a Store and adds audit logging and metadata tracking.
type AuditedStore struct {
	inner    Store
	audit    *audit.Logger
	metadata *MetadataStore
	backend  string
	actor    string // "cli" or "tui"
	now      func() time.Time
}

// NewAuditedStore wraps an existing store with audit logging.
func NewAuditedStore(inner Store, auditLog *audit.Logger, metadata *MetadataStore, backend, actor string) *AuditedStore {
	return &AuditedStore{
		inner:    inner,
		audit:    auditLog,
		metadata: metadata,
		backend:  backend,
		actor:    actor,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// record appends an audit entry. Audit logging is best-effort and never
// fails the operation it describes.
func (s *AuditedStore) record(action audit.Action, account string, opErr error) {
	if s.audit == nil {
		return
	}
	e := audit.Entry{
		Action:  action,
		Account: account,
		Backend: s.backend,
		Actor:   s.actor,
	}
	if opErr != nil {
		e.Error = opErr.Error()
	}
	if err := s.audit.Log(e); err != nil {
		slog.Warn("audit log write failed", "action", action, "error", err)
	}
}

func (s *AuditedStore) Store(account, password string) error {
	err := s.inner.Store(account, password)
	s.record(audit.ActionStore, account, err)
	if err != nil {
		return err
	}

	now := s.now()
	if err := s.metadata.Set(account, &CredentialMetadata{CreatedAt: now, UpdatedAt: now}); err != nil {
		return fmt.Errorf("saving metadata: %w", err)
	}
	return nil
}

func (s *AuditedStore) Replace(account, password string) error {
	err := s.inner.Replace(account, password)
	s.record(audit.ActionReplace, account, err)
	if err != nil {
		return err
	}

	now := s.now()
	meta := s.metadata.Get(account)
	if meta == nil {
		meta = &CredentialMetadata{CreatedAt: now}
	}
	meta.UpdatedAt = now
	if err := s.metadata.Set(account, meta); err != nil {
		return fmt.Errorf("saving metadata: %w", err)
	}
	return nil
}

func (s *AuditedStore) Retrieve(account string) (string, error) {
	val, err := s.inner.Retrieve(account)
	s.record(audit.ActionRetrieve, account, err)
	if err != nil {
		return "", err
	}

	meta := s.metadata.Get(account)
	if meta == nil {
		// Written by another tool or before metadata tracking.
		meta = &CredentialMetadata{}
	}
	meta.LastRetrieved = s.now()
	if err := s.metadata.Set(account, meta); err != nil {
		slog.Warn("saving retrieval metadata failed", "account", account, "error", err)
	}
	return val, nil
}

func (s *AuditedStore) Delete(account string) error {
	err := s.inner.Delete(account)
	s.record(audit.ActionDelete, account, err)
	if err != nil {
		return err
	}

	if err := s.metadata.Delete(account); err != nil {
		return fmt.Errorf("deleting metadata: %w", err)
	}
	return nil
}

// List returns the backend's accounts, or the accounts known from metadata
// when the backend cannot enumerate.
func (s *AuditedStore) List() ([]string, error) {
	accounts, err := s.inner.List()
	if errors.Is(err, ErrListUnsupported) {
		return s.metadata.Accounts(), nil
	}
	return accounts, err
}

// Metadata returns the metadata store for direct access.
func (s *AuditedStore) Metadata() *MetadataStore {
	return s.metadata
}

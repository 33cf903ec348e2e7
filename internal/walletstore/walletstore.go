package walletstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

// ErrNotFound is returned when no address is registered for (userId, chain).
var ErrNotFound = errors.New("wallet not found")

// Entry 注册表中的一条钱包记录
type Entry struct {
	UserId  string `json:"userId"`
	Chain   string `json:"chain"`
	Address string `json:"address"`
}

// Store is a flat-file wallet address registry. The whole collection lives in
// one JSON array; every write rewrites the file atomically via temp file and
// rename. Writes are serialized in-process, so concurrent Sets apply in a
// total order and the file is always valid JSON.
// 只保证单进程互斥，多副本部署需要外部协调
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a registry backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the registered address for (userId, chain).
func (s *Store) Get(userId, chain string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.UserId == userId && e.Chain == chain {
			return e.Address, nil
		}
	}
	return "", ErrNotFound
}

// Set registers or overwrites the address for (userId, chain).
// 地址只覆盖不删除
func (s *Store) Set(userId, chain, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	found := false
	for i := range entries {
		if entries[i].UserId == userId && entries[i].Chain == chain {
			entries[i].Address = address
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, Entry{UserId: userId, Chain: chain, Address: address})
	}

	return s.save(entries)
}

// All returns every registered entry.
func (s *Store) All() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load reads and parses the whole collection. A corrupt file is renamed to a
// timestamped .bak and the registry restarts empty; other I/O errors propagate.
func (s *Store) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		backup := fmt.Sprintf("%s.%d.bak", s.path, time.Now().UnixMilli())
		logx.Errorf("钱包注册表损坏, 备份到 %s 后重置: %v", backup, err)
		if renameErr := os.Rename(s.path, backup); renameErr != nil {
			return nil, renameErr
		}
		return []Entry{}, nil
	}
	return entries, nil
}

// save rewrites the whole collection atomically.
func (s *Store) save(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".wallets-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

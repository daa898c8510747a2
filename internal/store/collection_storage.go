// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/MKhiriev/card-privacy/internal/card"
	"github.com/MKhiriev/card-privacy/internal/logger"
)

const (
	// collectionMarker marks a folder as a collection even when it holds no
	// items yet.
	collectionMarker = ".Radicale.props"

	// uploadLockStripes bounds the number of href locks held in memory.
	uploadLockStripes = 256

	extVCard    = ".vcf"
	extCalendar = ".ics"
)

// CollectionStorage is a file-system record store: every collection is a
// folder under the root and every item a file inside it. It implements
// [card.Storage].
//
// Uploads pass contact items through the configured [ItemEnforcer] before
// anything is written, and writes to the same href are serialized.
type CollectionStorage struct {
	fs       afero.Fs
	enforcer ItemEnforcer
	logger   *logger.Logger

	locks [uploadLockStripes]sync.Mutex
}

// NewCollectionStorage builds a store over fs. enforcer may be nil, in which
// case items are written as given.
func NewCollectionStorage(fs afero.Fs, enforcer ItemEnforcer, logger *logger.Logger) *CollectionStorage {
	logger.Debug().Msg("creating collection storage")
	return &CollectionStorage{
		fs:       fs,
		enforcer: enforcer,
		logger:   logger,
	}
}

// NewOsCollectionStorage builds a store rooted at the root folder of the
// local file system, creating the folder if needed.
func NewOsCollectionStorage(root string, enforcer ItemEnforcer, logger *logger.Logger) (*CollectionStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("error creating collections root: %w", err)
	}
	return NewCollectionStorage(afero.NewBasePathFs(afero.NewOsFs(), root), enforcer, logger), nil
}

// SetEnforcer replaces the upload enforcer. It must be called before the
// store is shared between goroutines.
func (s *CollectionStorage) SetEnforcer(enforcer ItemEnforcer) {
	s.enforcer = enforcer
}

// Discover implements [card.Storage].
func (s *CollectionStorage) Discover(ctx context.Context, collectionPath string) ([]card.Collection, error) {
	clean, err := cleanCollectionPath(collectionPath)
	if err != nil {
		return nil, err
	}

	if clean != "" {
		ok, err := s.isCollection(clean)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []card.Collection{}, nil
		}
		return []card.Collection{s.collection(clean)}, nil
	}

	var paths []string
	err = afero.Walk(s.fs, "/", func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		rel := strings.Trim(filepath.ToSlash(p), "/")
		if rel == "" {
			return nil
		}
		ok, err := s.isCollection(rel)
		if err != nil {
			return err
		}
		if ok {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error discovering collections: %w", err)
	}

	sort.Strings(paths)
	collections := make([]card.Collection, 0, len(paths))
	for _, p := range paths {
		collections = append(collections, s.collection(p))
	}

	return collections, nil
}

// CreateCollection makes sure a collection exists at collectionPath and
// returns it.
func (s *CollectionStorage) CreateCollection(ctx context.Context, collectionPath string) (card.Collection, error) {
	clean, err := cleanCollectionPath(collectionPath)
	if err != nil {
		return nil, err
	}
	if clean == "" {
		return nil, fmt.Errorf("%w: root is not a collection", ErrUnsafePath)
	}

	dir := "/" + clean
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating collection: %w", err)
	}
	marker := path.Join(dir, collectionMarker)
	exists, err := afero.Exists(s.fs, marker)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := afero.WriteFile(s.fs, marker, []byte("{}"), 0o644); err != nil {
			return nil, fmt.Errorf("error creating collection: %w", err)
		}
	}

	return s.collection(clean), nil
}

func (s *CollectionStorage) isCollection(clean string) (bool, error) {
	dir := "/" + clean
	isDir, err := afero.IsDir(s.fs, dir)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !isDir {
		return false, nil
	}

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if e.Name() == collectionMarker || strings.EqualFold(filepath.Ext(e.Name()), extVCard) {
			return true, nil
		}
	}

	return false, nil
}

func (s *CollectionStorage) collection(clean string) *fsCollection {
	return &fsCollection{storage: s, path: clean}
}

// lockFor returns the stripe guarding key. Distinct hrefs may share a
// stripe; the same href always maps to the same one.
func (s *CollectionStorage) lockFor(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &s.locks[h.Sum32()%uploadLockStripes]
}

// fsCollection is one collection folder.
type fsCollection struct {
	storage *CollectionStorage
	path    string
}

func (c *fsCollection) Path() string {
	return c.path
}

// GetAll implements [card.Collection]. Files that cannot be parsed are
// logged and left out.
func (c *fsCollection) GetAll(ctx context.Context) ([]*card.Item, error) {
	log := logger.FromContext(ctx)

	entries, err := afero.ReadDir(c.storage.fs, c.dir())
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, c.path)
	}
	if err != nil {
		return nil, fmt.Errorf("error listing collection %s: %w", c.path, err)
	}

	items := make([]*card.Item, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isItemFile(e.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := afero.ReadFile(c.storage.fs, path.Join(c.dir(), e.Name()))
		if err != nil {
			return nil, fmt.Errorf("error reading item %s/%s: %w", c.path, e.Name(), err)
		}
		item, err := card.Parse(text)
		if err != nil {
			log.Warn().Err(err).Str("collection", c.path).Str("href", e.Name()).Msg("skipping unreadable item")
			continue
		}
		item.Href = e.Name()
		item.CollectionPath = c.path
		items = append(items, item)
	}

	return items, nil
}

// Upload implements [card.Collection]. Contact items are enforced first;
// the file is replaced atomically through a temporary file.
func (c *fsCollection) Upload(ctx context.Context, href string, item *card.Item) (*card.Item, error) {
	if err := validateHref(href); err != nil {
		return nil, err
	}

	target := path.Join(c.dir(), href)
	l := c.storage.lockFor(target)
	l.Lock()
	defer l.Unlock()

	if item.IsContact() && c.storage.enforcer != nil {
		if err := c.storage.enforcer.Enforce(ctx, item); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEnforcementFailed, err)
		}
	}

	text, err := item.Serialize()
	if err != nil {
		return nil, err
	}

	if err := c.storage.fs.MkdirAll(c.dir(), 0o755); err != nil {
		return nil, fmt.Errorf("error creating collection %s: %w", c.path, err)
	}

	tmp := path.Join(c.dir(), "."+href+"."+uuid.NewString()+".tmp")
	if err := afero.WriteFile(c.storage.fs, tmp, text, 0o644); err != nil {
		return nil, fmt.Errorf("error writing item %s/%s: %w", c.path, href, err)
	}
	if err := c.storage.fs.Rename(tmp, target); err != nil {
		_ = c.storage.fs.Remove(tmp)
		return nil, fmt.Errorf("error replacing item %s/%s: %w", c.path, href, err)
	}

	item.Href = href
	item.CollectionPath = c.path
	return item, nil
}

// Get returns the item stored under href.
func (c *fsCollection) Get(ctx context.Context, href string) (*card.Item, error) {
	if err := validateHref(href); err != nil {
		return nil, err
	}

	text, err := afero.ReadFile(c.storage.fs, path.Join(c.dir(), href))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s/%s", ErrCardNotFound, c.path, href)
	}
	if err != nil {
		return nil, err
	}

	item, err := card.Parse(text)
	if err != nil {
		return nil, err
	}
	item.Href = href
	item.CollectionPath = c.path
	return item, nil
}

func (c *fsCollection) dir() string {
	return "/" + c.path
}

func isItemFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == extVCard || ext == extCalendar
}

func cleanCollectionPath(p string) (string, error) {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return "", nil
	}
	for _, part := range strings.Split(trimmed, "/") {
		if part == "" || part == "." || part == ".." || strings.HasPrefix(part, ".") {
			return "", fmt.Errorf("%w: %q", ErrUnsafePath, p)
		}
	}
	return trimmed, nil
}

func validateHref(href string) error {
	if href == "" || href == "." || href == ".." || strings.ContainsAny(href, `/\`) || strings.HasPrefix(href, ".") {
		return fmt.Errorf("%w: href %q", ErrUnsafePath, href)
	}
	return nil
}

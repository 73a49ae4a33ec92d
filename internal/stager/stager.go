// Package stager collects user-entered text and uploaded documents and
// stages them to object storage under a session prefix.
package stager

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"smartfill/internal/fault"
	"smartfill/internal/integrations/objectstore"
)

// File is one user-supplied document.
type File struct {
	Name string
	Data []byte
}

// ItemError is a recoverable, item-scoped staging failure. The item is
// skipped; staging of the remaining items continues.
type ItemError struct {
	Name string
	Err  error
}

// Progress is invoked after each staged item with the running done/total
// counts and the item's filename.
type Progress func(done, total int, name string)

var acceptedExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
}

// Hook for deterministic synthetic filenames in tests.
var now = time.Now

// Stager uploads submission content to object storage.
type Stager struct {
	store objectstore.Putter
}

// New creates a Stager backed by the given object store.
func New(store objectstore.Putter) (*Stager, error) {
	if store == nil {
		return nil, fmt.Errorf("stager: store must not be nil")
	}
	return &Stager{store: store}, nil
}

// Stage uploads the submission content under "{sessionID}/{filename}" keys.
// Non-blank text is wrapped into a synthetic user_input_<unix>.txt and staged
// first, then the files in order. Item failures are collected, not fatal: the
// returned keys cover every item that made it to storage. An empty key list
// means the whole submission failed and no execution may be launched.
func (s *Stager) Stage(ctx context.Context, sessionID, text string, files []File, progress Progress) ([]string, []ItemError) {
	text = strings.TrimSpace(text)

	items := make([]File, 0, len(files)+1)
	if text != "" {
		items = append(items, File{
			Name: fmt.Sprintf("user_input_%d.txt", now().Unix()),
			Data: []byte(text),
		})
	}
	items = append(items, files...)

	var (
		keys     []string
		itemErrs []ItemError
	)
	for i, item := range items {
		key, err := s.stageOne(ctx, sessionID, item)
		if err != nil {
			itemErrs = append(itemErrs, ItemError{Name: item.Name, Err: err})
		} else {
			keys = append(keys, key)
		}
		if progress != nil {
			progress(i+1, len(items), item.Name)
		}
	}
	return keys, itemErrs
}

func (s *Stager) stageOne(ctx context.Context, sessionID string, item File) (string, error) {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return "", fault.New(fault.KindMalformed, "empty_filename", nil)
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !acceptedExtensions[ext] {
		return "", fault.New(fault.KindMalformed, "unsupported_file_type", fmt.Errorf("stager: %q: only .pdf and .txt are accepted", name))
	}
	key := sessionID + "/" + name
	if err := s.store.Put(ctx, key, item.Data); err != nil {
		return "", fault.New(fault.KindTransport, "upload_failed", err)
	}
	return key, nil
}

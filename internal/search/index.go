package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"linguadir/internal/platform/config"
	dErrors "linguadir/pkg/domain-errors"
)

// Index is the write surface of the external search engine. Upsert must be
// idempotent per object id.
type Index interface {
	Upsert(ctx context.Context, doc Document) error
}

// HTTPIndex talks to the hosted search engine's REST API.
type HTTPIndex struct {
	baseURL   string
	appID     string
	apiKey    string
	indexName string
	client    *http.Client
}

func NewHTTPIndex(cfg config.IndexConfig) *HTTPIndex {
	return &HTTPIndex{
		baseURL:   cfg.BaseURL,
		appID:     cfg.AppID,
		apiKey:    cfg.APIKey,
		indexName: cfg.IndexName,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Upsert writes the document under its object id. PUT to the object resource
// replaces any previous version, which is what makes retries safe.
func (x *HTTPIndex) Upsert(ctx context.Context, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode index document")
	}

	url := fmt.Sprintf("%s/1/indexes/%s/%s", x.baseURL, x.indexName, doc.ObjectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build index request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Algolia-Application-Id", x.appID)
	req.Header.Set("X-Algolia-API-Key", x.apiKey)

	resp, err := x.client.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "search index unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return dErrors.Newf(dErrors.CodeUnavailable,
			"search index returned status %d", resp.StatusCode)
	}
	return nil
}

// MemoryIndex is an in-process Index for tests and index-less deployments.
type MemoryIndex struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{docs: make(map[string]Document)}
}

func (x *MemoryIndex) Upsert(_ context.Context, doc Document) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.docs[doc.ObjectID] = doc
	return nil
}

// Get returns the stored document for an object id.
func (x *MemoryIndex) Get(objectID string) (Document, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	doc, ok := x.docs[objectID]
	return doc, ok
}

// Len returns the number of distinct objects in the index.
func (x *MemoryIndex) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.docs)
}

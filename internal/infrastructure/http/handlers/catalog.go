package handlers

import (
	"net/http"
	"time"

	"github.com/yuzvak/pos-service/internal/application/catalogcache"
	"github.com/yuzvak/pos-service/internal/domain/catalog"
	"github.com/yuzvak/pos-service/internal/infrastructure/http/response"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

type CatalogHandler struct {
	cache *catalogcache.Cache
	log   *logger.Logger
}

func NewCatalogHandler(cache *catalogcache.Cache, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		cache: cache,
		log:   log,
	}
}

type CatalogResponse struct {
	Items      []catalog.Item `json:"items"`
	Categories []string       `json:"categories"`
	Total      int            `json:"total"`
	FetchedAt  time.Time      `json:"fetched_at"`
	Stale      bool           `json:"stale"`
}

func (h *CatalogHandler) newResponse(snapshot *catalog.Snapshot, query, category string) CatalogResponse {
	return CatalogResponse{
		Items:      snapshot.Filter(query, category),
		Categories: snapshot.Categories(),
		Total:      snapshot.Len(),
		FetchedAt:  snapshot.FetchedAt(),
		Stale:      h.cache.LastError() != nil,
	}
}

func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	response.WriteSuccess(w, h.newResponse(h.cache.Snapshot(), q.Get("q"), q.Get("category")))
}

// HandleRefresh reloads the catalog. On failure the previous snapshot keeps
// being served and the error is reported.
func (h *CatalogHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Refresh(r.Context()); err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteSuccess(w, h.newResponse(h.cache.Snapshot(), "", ""), "Catalog refreshed")
}

package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	authordomain "readerpeak-backend/internal/domains/author"
	bookrepo "readerpeak-backend/internal/domains/book/repository"
	"readerpeak-backend/internal/infrastructure/storage"
	"readerpeak-backend/internal/shared"
)

// SweepOrphanAssetsPayload is the (currently empty) task payload.
type SweepOrphanAssetsPayload struct{}

// ObjectStore is the slice of object storage the sweeper needs.
type ObjectStore interface {
	ListByPrefix(ctx context.Context, prefix string) ([]storage.ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}

// SweepHandler reclaims storage objects that no database row points
// at. The publish pipeline deliberately never rolls back uploads, so a
// failed insert leaves orphans behind; this job is the other half of
// that contract.
type SweepHandler struct {
	books   bookrepo.RepositoryInterface
	authors authordomain.Repository
	store   ObjectStore
	grace   time.Duration
}

func NewSweepHandler(books bookrepo.RepositoryInterface, authors authordomain.Repository, store ObjectStore, grace time.Duration) *SweepHandler {
	return &SweepHandler{
		books:   books,
		authors: authors,
		store:   store,
		grace:   grace,
	}
}

// ProcessTask lists every object under the managed prefixes, subtracts
// the URLs still referenced by the books and authors tables, and
// deletes what is left — but only objects older than the grace window,
// so an upload racing a publish in flight is never reclaimed.
func (h *SweepHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload SweepOrphanAssetsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal sweep payload: %w", err)
	}

	referenced, err := h.referencedURLs(ctx)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-h.grace)
	var scanned, deleted int

	for _, prefix := range []string{shared.PrefixBooks, shared.PrefixCovers, shared.PrefixAvatars} {
		objects, err := h.store.ListByPrefix(ctx, prefix)
		if err != nil {
			return fmt.Errorf("list %s objects: %w", prefix, err)
		}

		for _, obj := range objects {
			scanned++
			if _, ok := referenced[obj.URL]; ok {
				continue
			}
			if obj.LastModified.After(cutoff) {
				continue
			}

			if err := h.store.Delete(ctx, obj.Key); err != nil {
				// Keep sweeping; the object stays for the next run.
				log.Warn().Err(err).Str("key", obj.Key).Msg("orphan delete failed")
				continue
			}
			deleted++
		}
	}

	log.Info().
		Int("scanned", scanned).
		Int("deleted", deleted).
		Msg("orphan asset sweep finished")

	return nil
}

func (h *SweepHandler) referencedURLs(ctx context.Context) (map[string]struct{}, error) {
	bookURLs, err := h.books.ReferencedAssetURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect book asset urls: %w", err)
	}

	photoURLs, err := h.authors.ReferencedPhotoURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect author photo urls: %w", err)
	}

	for url := range photoURLs {
		bookURLs[url] = struct{}{}
	}
	return bookURLs, nil
}

package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/auth"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/filecrypt"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/storage"
)

// UploadInput describes an uploaded file and what it is attached to.
type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	DocType     model.DocumentType
	QuoteID     string
	ShipmentID  string
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload encrypts the content when a cipher is configured, uploads it to object storage,
	// saves metadata to DB, and rolls back storage if DB save fails.
	Upload(ctx context.Context, p auth.Principal, in UploadInput) (*model.Document, error)

	// List returns the caller's documents (all documents for admins) using limit/offset and a total count.
	List(ctx context.Context, p auth.Principal, limit, offset int) (*ListResult[model.Document], error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, p auth.Principal, id string) (*model.Document, error)

	// Download returns the plaintext content. The caller closes the reader.
	Download(ctx context.Context, p auth.Principal, id string) (*model.Document, io.ReadCloser, error)

	// Delete removes a document by ID from both storage and repository.
	Delete(ctx context.Context, p auth.Principal, id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store     storage.Storage
	repo      repository.DocumentRepository
	quotes    repository.QuoteRepository
	offers    repository.OfferRepository
	shipments repository.ShipmentRepository
	cipher    *filecrypt.Cipher
	now       func() time.Time
}

// NewDocumentService constructs a new DocumentService. A nil cipher stores files as uploaded.
func NewDocumentService(store storage.Storage, repos Repositories, cipher *filecrypt.Cipher) DocumentService {
	return &documentService{
		store:     store,
		repo:      repos.Documents,
		quotes:    repos.Quotes,
		offers:    repos.Offers,
		shipments: repos.Shipments,
		cipher:    cipher,
		now:       utcNow,
	}
}

func (s *documentService) Upload(ctx context.Context, p auth.Principal, in UploadInput) (*model.Document, error) {
	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	if in.DocType == "" {
		in.DocType = model.DocOther
	}
	if !in.DocType.Valid() {
		return nil, invalid("unknown document type %q", in.DocType)
	}
	if err := s.checkAttachment(ctx, p, in.QuoteID, in.ShipmentID); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	key := storage.DocumentKey(p.UserID, id, in.Filename)
	body, size := in.Reader, in.Size
	if s.cipher != nil {
		plain, err := io.ReadAll(in.Reader)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		blob, err := s.cipher.Encrypt(plain)
		if err != nil {
			return nil, fmt.Errorf("encrypt upload: %w", err)
		}
		body, size = bytes.NewReader(blob), int64(len(blob))
		in.Size = int64(len(plain))
	}

	// Upload to object storage
	objInfo, err := s.store.Put(ctx, key, body, storage.PutObjectOptions{
		Size:        size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": filepath.Base(in.Filename),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}
	if in.Size < 0 {
		in.Size = objInfo.Size
	}

	doc := &model.Document{
		ID:          id,
		OwnerID:     p.UserID,
		QuoteID:     optional(in.QuoteID),
		ShipmentID:  optional(in.ShipmentID),
		DocType:     in.DocType,
		Filename:    filepath.Base(in.Filename),
		StoragePath: objInfo.Key,
		Size:        in.Size,
		ContentType: in.ContentType,
		Encrypted:   s.cipher != nil,
		CreatedAt:   s.now(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// checkAttachment allows attaching only to quotes and shipments the caller takes part in.
func (s *documentService) checkAttachment(ctx context.Context, p auth.Principal, quoteID, shipmentID string) error {
	if quoteID != "" {
		q, err := s.quotes.FindByID(ctx, quoteID)
		if err != nil {
			return notFound(err)
		}
		if !canSeeAll(p) && q.TraderID != p.UserID {
			if _, err := s.offers.FindLive(ctx, quoteID, p.UserID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return ErrForbidden
				}
				return err
			}
		}
	}
	if shipmentID != "" {
		sh, err := s.shipments.FindByID(ctx, shipmentID)
		if err != nil {
			return notFound(err)
		}
		if !participant(p, sh) {
			return ErrForbidden
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, p auth.Principal, limit, offset int) (*ListResult[model.Document], error) {
	owner := p.UserID
	if canSeeAll(p) {
		owner = ""
	}
	res, err := s.repo.List(ctx, owner, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return listResult(res), nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, p auth.Principal, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !canSeeAll(p) && doc.OwnerID != p.UserID {
		return nil, ErrForbidden
	}
	return doc, nil
}

func (s *documentService) Download(ctx context.Context, p auth.Principal, id string) (*model.Document, io.ReadCloser, error) {
	doc, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read storage: %w", err)
	}
	if !doc.Encrypted {
		return doc, rc, nil
	}
	defer rc.Close()

	if s.cipher == nil {
		return nil, nil, fmt.Errorf("document %s is encrypted but no key is configured", doc.ID)
	}
	blob, err := io.ReadAll(rc)
	if err != nil {
		return nil, nil, fmt.Errorf("read storage: %w", err)
	}
	plain, err := s.cipher.Decrypt(blob)
	if err != nil {
		return nil, nil, fmt.Errorf("decrypt document %s: %w", doc.ID, err)
	}
	return doc, io.NopCloser(bytes.NewReader(plain)), nil
}

// Delete removes a document from storage, then deletes its record.
func (s *documentService) Delete(ctx context.Context, p auth.Principal, id string) error {
	// Find the document to get its storage path
	doc, err := s.Get(ctx, p, id)
	if err != nil {
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	// Delete DB row (repository ignores missing row errors as per contract)
	return s.repo.Delete(ctx, id)
}

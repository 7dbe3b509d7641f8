// Package session owns the single authentication session of the client: the
// role/credential pair, its persistence in the local database, and teardown.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/projectdesk/internal/client/models"
	"github.com/dmitrijs2005/projectdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/projectdesk/internal/common"
	"github.com/dmitrijs2005/projectdesk/internal/dbx"
	"github.com/dmitrijs2005/projectdesk/internal/logging"
)

// Holder keeps the current session and mirrors it into the metadata store.
// It is safe for concurrent use.
type Holder struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time

	mu      sync.RWMutex
	current models.Session
}

func NewHolder(db *sql.DB, logger logging.Logger) *Holder {
	return &Holder{db: db, logger: logger, now: time.Now}
}

func (h *Holder) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

// Restore loads a previously saved role/credential pair. A missing or partial
// pair, or an unknown role, yields the anonymous session. Nothing is sent to
// the backend; an expired token is only logged.
func (h *Holder) Restore(ctx context.Context) (models.Session, error) {
	repo := h.repo(h.db)

	savedRole, _, err := repo.Get(ctx, common.MetadataKeyRole)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to restore session: %w", err)
	}
	credential, _, err := repo.Get(ctx, common.MetadataKeyCredential)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to restore session: %w", err)
	}

	role, roleErr := models.ParseRole(savedRole)

	if credential == "" || roleErr != nil {
		if credential != "" || savedRole != "" {
			h.logger.Warn(ctx, "discarding incomplete saved session")
		}
		h.set(models.Session{})
		return models.Session{}, nil
	}

	s := h.build(ctx, role, credential)
	if !s.ExpiresAt.IsZero() && h.now().After(s.ExpiresAt) {
		h.logger.Warn(ctx, "saved credential looks expired", "subject", s.Subject, "expired_at", s.ExpiresAt)
	}
	h.set(s)
	return s, nil
}

// Establish persists role and credential in one transaction and makes them the
// current session.
func (h *Holder) Establish(ctx context.Context, credential string, role models.Role) (models.Session, error) {
	if credential == "" {
		return models.Session{}, fmt.Errorf("establish session: empty credential")
	}
	if _, err := models.ParseRole(string(role)); err != nil {
		return models.Session{}, fmt.Errorf("establish session: %w", err)
	}

	err := dbx.WithTx(ctx, h.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := h.repo(tx)
		if err := repo.Set(ctx, common.MetadataKeyRole, string(role)); err != nil {
			return err
		}
		return repo.Set(ctx, common.MetadataKeyCredential, credential)
	})
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	s := h.build(ctx, role, credential)
	h.set(s)
	h.logger.Info(ctx, "session established", "role", role, "subject", s.Subject)
	return s, nil
}

// Clear removes the persisted pair and resets to the anonymous session. The
// in-memory session is reset even when the store fails.
func (h *Holder) Clear(ctx context.Context) error {
	h.set(models.Session{})

	if err := h.repo(h.db).Delete(ctx, common.MetadataKeyRole, common.MetadataKeyCredential); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	h.logger.Info(ctx, "session cleared")
	return nil
}

// Current returns a copy of the current session.
func (h *Holder) Current() models.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

func (h *Holder) set(s models.Session) {
	h.mu.Lock()
	h.current = s
	h.mu.Unlock()
}

func (h *Holder) build(ctx context.Context, role models.Role, credential string) models.Session {
	s := models.Session{Role: role, Credential: credential}

	subject, exp, err := decodeClaims(credential)
	if err != nil {
		h.logger.Debug(ctx, "credential is not a readable token", "credential", common.MaskToken(credential), "error", err)
		return s
	}
	s.Subject = subject
	s.ExpiresAt = exp
	return s
}

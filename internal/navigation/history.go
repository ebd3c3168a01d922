// Package navigation keeps a per-session page history, the server-side
// counterpart of a browser router's history and location. Each entry may carry
// transition state that the destination page reads once.
package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"era-quiz/internal/cache"
	"era-quiz/internal/domain"
	"era-quiz/internal/logger"

	"go.uber.org/zap"
)

// MaxEntries bounds how many paths one session's history keeps.
const MaxEntries = 50

// Service hands out session-scoped histories backed by a domain.Cache.
type Service struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewService creates a navigation service. Entries expire after ttl of inactivity.
func NewService(c domain.Cache, ttl time.Duration) *Service {
	return &Service{cache: c, ttl: ttl}
}

// Session returns the history of one browser session.
func (s *Service) Session(sessionID string) *History {
	return &History{
		cache:      s.cache,
		ttl:        s.ttl,
		sessionID:  sessionID,
		historyKey: cache.GenerateCacheKey("navigation", "history", sessionID),
	}
}

// History is one session's stack of visited paths.
type History struct {
	cache      domain.Cache
	ttl        time.Duration
	sessionID  string
	historyKey string
}

var _ domain.Navigator = (*History)(nil)

func (h *History) stateKey(path string) string {
	return cache.GenerateCacheKey("navigation", "state", h.sessionID, path)
}

func (h *History) load(ctx context.Context) ([]string, error) {
	raw, err := h.cache.Get(ctx, h.historyKey)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, nil
		}
		return nil, domain.NewInternalError("failed to load navigation history", err)
	}
	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.Get().Warn("Discarding unreadable navigation history",
			zap.String("key", h.historyKey),
			zap.Error(err),
		)
		return nil, nil
	}
	return entries, nil
}

func (h *History) save(ctx context.Context, entries []string) error {
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return domain.NewInternalError("failed to encode navigation history", err)
	}
	if err := h.cache.Set(ctx, h.historyKey, string(raw), h.ttl); err != nil {
		return domain.NewInternalError("failed to save navigation history", err)
	}
	return nil
}

// Location returns the current path, or "" when the session has no history.
func (h *History) Location(ctx context.Context) (string, error) {
	entries, err := h.load(ctx)
	if err != nil || len(entries) == 0 {
		return "", err
	}
	return entries[len(entries)-1], nil
}

// Visit records a direct entry to path. Revisiting the current location is a no-op.
func (h *History) Visit(ctx context.Context, path string) error {
	entries, err := h.load(ctx)
	if err != nil {
		return err
	}
	if len(entries) > 0 && entries[len(entries)-1] == path {
		return nil
	}
	return h.save(ctx, append(entries, path))
}

// Forward pushes path and attaches payload to it. A nil payload attaches nothing.
func (h *History) Forward(ctx context.Context, path string, payload domain.TransitionState) error {
	if len(payload) > 0 {
		if err := h.cache.Set(ctx, h.stateKey(path), string(payload), h.ttl); err != nil {
			return domain.NewInternalError("failed to store transition state", err)
		}
	}
	entries, err := h.load(ctx)
	if err != nil {
		return err
	}
	if err := h.save(ctx, append(entries, path)); err != nil {
		return err
	}
	logger.Get().Debug("Navigated forward",
		zap.String("session_id", h.sessionID),
		zap.String("path", path),
		zap.Int("payload_bytes", len(payload)),
	)
	return nil
}

// Back pops the current entry and drops any state still attached to it.
func (h *History) Back(ctx context.Context) (string, bool, error) {
	entries, err := h.load(ctx)
	if err != nil {
		return "", false, err
	}
	if len(entries) < 2 {
		return "", false, nil
	}

	current := entries[len(entries)-1]
	entries = entries[:len(entries)-1]
	if err := h.save(ctx, entries); err != nil {
		return "", false, err
	}
	if err := h.cache.Delete(ctx, h.stateKey(current)); err != nil {
		logger.Get().Warn("Failed to drop transition state", zap.String("path", current), zap.Error(err))
	}
	return entries[len(entries)-1], true, nil
}

// Take returns and forgets the transition state attached to path. A missing
// state yields nil without error.
func (h *History) Take(ctx context.Context, path string) (domain.TransitionState, error) {
	raw, err := h.cache.GetDel(ctx, h.stateKey(path))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, nil
		}
		return nil, domain.NewInternalError(fmt.Sprintf("failed to read transition state for %s", path), err)
	}
	return domain.TransitionState(raw), nil
}

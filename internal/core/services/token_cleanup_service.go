package services

import (
	"context"
	"log"
	"time"

	"hdb-bto-portal/internal/adapters/persistence/repositories"
)

// TokenCleanupService runs a background goroutine that purges expired refresh
// tokens so the session table does not grow without bound.
type TokenCleanupService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	interval         time.Duration
	stopChan         chan struct{}
}

// NewTokenCleanupService creates a new token cleanup service
func NewTokenCleanupService(refreshTokenRepo repositories.RefreshTokenRepository) *TokenCleanupService {
	return &TokenCleanupService{
		refreshTokenRepo: refreshTokenRepo,
		interval:         time.Hour,
		stopChan:         make(chan struct{}),
	}
}

// Start launches the cleanup goroutine
func (s *TokenCleanupService) Start() {
	log.Println("🧹 TokenCleanupService started")
	go s.runCleanupLoop()
}

// Stop gracefully stops the cleanup goroutine
func (s *TokenCleanupService) Stop() {
	close(s.stopChan)
	log.Println("🛑 TokenCleanupService stopped")
}

func (s *TokenCleanupService) runCleanupLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.cleanup()
	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopChan:
			return
		}
	}
}

func (s *TokenCleanupService) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Expired token cleanup error: %v", err)
	}
}

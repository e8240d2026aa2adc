package services

import (
	"log"
	"sync"
	"time"

	"meriter/internal/db"
	"meriter/internal/models"
	"meriter/internal/utils"
)

// RankingService recomputes publication hot-rank scores from the ledger in
// the background. Score is a materialized listing order, never a balance.
type RankingService struct {
	queue   chan uint // publication ids awaiting recompute
	pending map[uint]bool
	mu      sync.Mutex
}

var (
	rankingService *RankingService
	once           sync.Once
)

// GetRankingService returns the singleton ranking service.
func GetRankingService() *RankingService {
	once.Do(func() {
		rankingService = &RankingService{
			queue:   make(chan uint, 1000), // buffered so callers never block
			pending: make(map[uint]bool),
		}
		go rankingService.worker()
	})
	return rankingService
}

// ScheduleUpdate queues a publication for a score recompute. Duplicate
// requests for a publication already in the queue are dropped.
func (s *RankingService) ScheduleUpdate(publicationID uint) {
	s.mu.Lock()
	if s.pending[publicationID] {
		s.mu.Unlock()
		return
	}
	s.pending[publicationID] = true
	s.mu.Unlock()

	select {
	case s.queue <- publicationID:
	default:
		// Queue full; drop the request and clear the pending mark.
		s.mu.Lock()
		delete(s.pending, publicationID)
		s.mu.Unlock()
		log.Printf("ranking queue full, skipping publication %d", publicationID)
	}
}

func (s *RankingService) worker() {
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case id := <-s.queue:
			batch = append(batch, id)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *RankingService) processBatch(ids []uint) {
	for _, id := range ids {
		s.updatePublicationScore(id)

		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}
}

// updatePublicationScore recomputes one publication's score from its ledger
// entries: summed up/down vote weights and commented-vote activity, decayed
// by age.
func (s *RankingService) updatePublicationScore(publicationID uint) {
	var pub models.Publication
	if err := db.DB.First(&pub, publicationID).Error; err != nil {
		log.Printf("score update skipped, publication %d not found", publicationID)
		return
	}

	var up, down, comments int64
	db.DB.Model(&models.Transaction{}).
		Where("for_publication_uid = ? AND direction_plus = ? AND source <> ?", pub.UID, true, SourceWithdraw).
		Select("COALESCE(SUM(amount_total), 0)").
		Scan(&up)
	db.DB.Model(&models.Transaction{}).
		Where("for_publication_uid = ? AND direction_plus = ? AND source <> ?", pub.UID, false, SourceWithdraw).
		Select("COALESCE(SUM(amount_total), 0)").
		Scan(&down)
	db.DB.Model(&models.Transaction{}).
		Where("for_publication_uid = ? AND comment <> ''", pub.UID).
		Count(&comments)

	newScore := utils.CalculateScore(pub.CreatedAt, up, down, comments)

	if err := db.DB.Model(&pub).UpdateColumn("score", int(newScore)).Error; err != nil {
		log.Printf("failed to update score for publication %d: %v", publicationID, err)
	}
}

// UpdatePublicationScoreSync recomputes a score inline, for callers that
// need the new value immediately.
func UpdatePublicationScoreSync(publicationID uint) {
	GetRankingService().updatePublicationScore(publicationID)
}

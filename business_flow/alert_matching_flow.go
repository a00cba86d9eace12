// Package businessflow contains the core business logic and use cases for alert matching workflows
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/tannermartz/breakline/app/services"
	"github.com/tannermartz/breakline/config"
	"github.com/tannermartz/breakline/logx"
	"github.com/tannermartz/breakline/matching"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/repository"
	"github.com/tannermartz/breakline/utils"
)

var (
	matchingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alert_matching_runs_total",
			Help: "Total alert matching passes, partitioned by outcome",
		},
		[]string{"outcome"},
	)

	matchesRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "alert_matches_recorded_total",
			Help: "Total new alert matches recorded",
		},
	)

	alertsEvaluatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "alerts_evaluated_total",
			Help: "Total alerts evaluated against tournaments",
		},
	)
)

// AlertMatchingFlow records which active search alerts match a tournament
type AlertMatchingFlow interface {
	// RecordMatches evaluates every active alert against the tournament,
	// records new matches, and returns how many were created. It never
	// returns an error to block tournament writes; failures surface only
	// in logs and metrics.
	RecordMatches(ctx context.Context, tournament *models.Tournament) int

	// InvalidateAlertCache drops the cached active-alert list after alert writes
	InvalidateAlertCache(ctx context.Context)
}

// AlertMatchingFlowImpl implements the alert matching business flow
type AlertMatchingFlowImpl struct {
	alertRepo   repository.SearchAlertRepository
	matchRepo   repository.AlertMatchRepository
	playerRepo  repository.PlayerRepository
	notifier    services.NotificationService
	cacheConfig *config.CacheConfig
	rc          *redis.Client
}

// NewAlertMatchingFlow creates a new alert matching flow instance
func NewAlertMatchingFlow(
	alertRepo repository.SearchAlertRepository,
	matchRepo repository.AlertMatchRepository,
	playerRepo repository.PlayerRepository,
	notifier services.NotificationService,
	cacheConfig *config.CacheConfig,
	rc *redis.Client,
) AlertMatchingFlow {
	return &AlertMatchingFlowImpl{
		alertRepo:   alertRepo,
		matchRepo:   matchRepo,
		playerRepo:  playerRepo,
		notifier:    notifier,
		cacheConfig: cacheConfig,
		rc:          rc,
	}
}

// RecordMatches runs one matching pass for a tournament
func (s *AlertMatchingFlowImpl) RecordMatches(ctx context.Context, tournament *models.Tournament) int {
	if tournament == nil {
		return 0
	}

	log := logx.With("tournament_id", tournament.ID, "tournament_uuid", tournament.UUID.String())

	alerts, err := s.loadActiveAlerts(ctx)
	if err != nil {
		log.Error("alert matching aborted, could not load active alerts", "error", err)
		matchingRunsTotal.WithLabelValues("load_failed").Inc()
		return 0
	}

	alertsEvaluatedTotal.Add(float64(len(alerts)))

	var matched []*models.SearchAlert
	for _, alert := range alerts {
		if matching.Matches(tournament, alert) {
			matched = append(matched, alert)
		}
	}

	if len(matched) == 0 {
		matchingRunsTotal.WithLabelValues("no_matches").Inc()
		return 0
	}

	// Pairs already recorded must not be recorded twice. A read failure here
	// does not abort the pass; the unique index on (alert_id, tournament_id)
	// still rejects duplicates at insert time.
	existing := make(map[uint]bool)
	matchedIDs := make([]uint, 0, len(matched))
	for _, alert := range matched {
		matchedIDs = append(matchedIDs, alert.ID)
	}

	existingRows, err := s.matchRepo.ListByTournamentAmongAlerts(ctx, tournament.ID, matchedIDs)
	if err != nil {
		log.Warn("existing match lookup failed, relying on insert dedup", "error", err)
	} else {
		for _, row := range existingRows {
			existing[row.AlertID] = true
		}
	}

	var newAlerts []*models.SearchAlert
	var newMatches []*models.AlertMatch
	for _, alert := range matched {
		if existing[alert.ID] {
			continue
		}
		newAlerts = append(newAlerts, alert)
		newMatches = append(newMatches, &models.AlertMatch{
			AlertID:      alert.ID,
			TournamentID: tournament.ID,
		})
	}

	if len(newMatches) == 0 {
		matchingRunsTotal.WithLabelValues("no_new_matches").Inc()
		return 0
	}

	inserted, err := s.matchRepo.InsertIgnoringDuplicates(ctx, newMatches)
	if err != nil {
		log.Error("alert match insert failed", "error", err)
		matchingRunsTotal.WithLabelValues("insert_failed").Inc()
		return 0
	}

	matchedAt := utils.UTCNow()

	// Each alert's bookkeeping update stands alone so one failure cannot
	// take down the others.
	var wg sync.WaitGroup
	for _, alert := range newAlerts {
		wg.Add(1)
		go func(alertID uint) {
			defer wg.Done()
			if err := s.alertRepo.IncrementMatchCount(ctx, alertID, matchedAt); err != nil {
				log.Warn("match count update failed", "alert_id", alertID, "error", err)
			}
		}(alert.ID)
	}
	wg.Wait()

	s.notifyPlayers(ctx, tournament, newAlerts)

	matchesRecordedTotal.Add(float64(inserted))
	matchingRunsTotal.WithLabelValues("recorded").Inc()
	log.Info("alert matches recorded", "matched", len(matched), "new", inserted)

	return int(inserted)
}

// InvalidateAlertCache drops the cached active-alert list
func (s *AlertMatchingFlowImpl) InvalidateAlertCache(ctx context.Context) {
	if s.rc == nil || s.cacheConfig == nil || !s.cacheConfig.Enabled {
		return
	}

	key := redisKey(*s.cacheConfig, utils.ActiveAlertCacheKey)
	if err := s.rc.Del(ctx, key).Err(); err != nil {
		logx.Warn("active alert cache invalidation failed", "error", err)
	}
}

// loadActiveAlerts returns every active alert, served from redis when warm
func (s *AlertMatchingFlowImpl) loadActiveAlerts(ctx context.Context) ([]*models.SearchAlert, error) {
	cacheEnabled := s.rc != nil && s.cacheConfig != nil && s.cacheConfig.Enabled

	var cacheKey string
	if cacheEnabled {
		cacheKey = redisKey(*s.cacheConfig, utils.ActiveAlertCacheKey)
		if bs, err := s.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var alerts []*models.SearchAlert
			if err := json.Unmarshal(bs, &alerts); err == nil {
				return alerts, nil
			}
			// Corrupt cache entry; fall through to the database
			_ = s.rc.Del(ctx, cacheKey).Err()
		}
	}

	alerts, err := s.alertRepo.ListActiveAlerts(ctx)
	if err != nil {
		return nil, err
	}

	if cacheEnabled {
		if bs, err := json.Marshal(alerts); err == nil {
			_ = s.rc.Set(ctx, cacheKey, bs, utils.ActiveAlertCacheTTL).Err()
		}
	}

	return alerts, nil
}

// notifyPlayers fans out push notifications for freshly recorded matches
func (s *AlertMatchingFlowImpl) notifyPlayers(ctx context.Context, tournament *models.Tournament, alerts []*models.SearchAlert) {
	if s.notifier == nil {
		return
	}

	for _, alert := range alerts {
		player, err := s.playerRepo.ByID(ctx, alert.PlayerID)
		if err != nil || player == nil {
			continue
		}

		email := player.Email
		title := fmt.Sprintf("New tournament matches %q", alert.Name)
		body := fmt.Sprintf("%s on %s", tournament.Name, tournament.TournamentDate.Format("Jan 2, 2006"))

		go func() {
			if err := s.notifier.SendEmail(email, title, body); err != nil {
				logx.Warn("match notification failed", "email", email, "error", err)
			}
		}()
	}
}

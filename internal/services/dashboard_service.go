package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"dispatch-dashboard/internal/detrack"
	"dispatch-dashboard/internal/dto"
	"dispatch-dashboard/internal/entities"
	"dispatch-dashboard/internal/repositories"
	"dispatch-dashboard/pkg/config"
	apperrors "dispatch-dashboard/pkg/errors"
)

type DashboardServiceInterface interface {
	FetchAndProcess(ctx context.Context, sessionID string, date time.Time) (*dto.DashboardSummaryDTO, error)
	GetSummary(ctx context.Context, sessionID string) (*dto.DashboardSummaryDTO, error)
	GetFailed(ctx context.Context, sessionID string) ([]entities.FailedJob, error)
	GetRouteOptions(ctx context.Context, sessionID string) ([]string, error)
	GetRoutePlot(ctx context.Context, sessionID string, route string) (*dto.RoutePlotDTO, error)
}

type DashboardService struct {
	jobsClient  detrack.ClientInterface
	crmRepo     repositories.CRMRepositoryInterface
	sessionRepo repositories.SessionRepositoryInterface
	detrackCfg  config.DetrackConfig
	logger      *zap.Logger
}

func NewDashboardService(
	jobsClient detrack.ClientInterface,
	crmRepo repositories.CRMRepositoryInterface,
	sessionRepo repositories.SessionRepositoryInterface,
	detrackCfg config.DetrackConfig,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		jobsClient:  jobsClient,
		crmRepo:     crmRepo,
		sessionRepo: sessionRepo,
		detrackCfg:  detrackCfg,
		logger:      logger,
	}
}

// FetchAndProcess runs the whole pipeline for one date and replaces the
// session snapshot: fetch all job pages, aggregate per route, merge with the
// CRM roster and waypoints, extract failures. An upstream non-200 is terminal
// and leaves the previous snapshot untouched.
func (s *DashboardService) FetchAndProcess(ctx context.Context, sessionID string, date time.Time) (*dto.DashboardSummaryDTO, error) {
	dateStr := date.Format("2006-01-02")

	jobs, err := s.jobsClient.FetchAllJobs(ctx, detrack.QueryParams{
		Page:  1,
		Limit: s.detrackCfg.PageLimit,
		Sort:  s.detrackCfg.Sort,
		Date:  dateStr,
		Type:  s.detrackCfg.JobType,
	})
	if err != nil {
		var statusErr *detrack.StatusError
		if errors.As(err, &statusErr) {
			// Fetch failure, not "zero jobs today": surface the upstream
			// status and body so the operator can tell the difference.
			return nil, apperrors.NewHttpError(http.StatusBadGateway, statusErr.Error(), err, nil)
		}
		return nil, err
	}

	snapshot := &entities.DashboardSnapshot{
		Date:      dateStr,
		Jobs:      jobs,
		FetchedAt: time.Now(),
	}

	if len(jobs) == 0 {
		snapshot.NoData = true
		if err := s.sessionRepo.SaveSnapshot(ctx, sessionID, snapshot); err != nil {
			return nil, err
		}
		return summaryFromSnapshot(snapshot), nil
	}

	snapshot.Metrics = AggregateRoutes(jobs)
	snapshot.FailedJobs = ExtractFailed(jobs)

	roster, err := s.crmRepo.GetDispatchRoster(ctx, date)
	if err != nil {
		return nil, err
	}
	snapshot.MergedRoutes = MergeRoutes(snapshot.Metrics, roster)

	waypoints, err := s.crmRepo.GetWaypoints(ctx, date)
	if err != nil {
		return nil, err
	}
	snapshot.Stops = MergeWaypoints(jobs, waypoints)

	if err := s.sessionRepo.SaveSnapshot(ctx, sessionID, snapshot); err != nil {
		return nil, err
	}

	s.logger.Info("dashboard snapshot refreshed",
		zap.String("date", dateStr),
		zap.Int("jobs", len(jobs)),
		zap.Int("routes", len(snapshot.Metrics)),
		zap.Int("failed", len(snapshot.FailedJobs)),
		zap.Int("plottable_stops", len(snapshot.Stops)),
	)

	return summaryFromSnapshot(snapshot), nil
}

func (s *DashboardService) GetSummary(ctx context.Context, sessionID string) (*dto.DashboardSummaryDTO, error) {
	snapshot, err := s.sessionRepo.GetSnapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return summaryFromSnapshot(snapshot), nil
}

func (s *DashboardService) GetFailed(ctx context.Context, sessionID string) ([]entities.FailedJob, error) {
	snapshot, err := s.sessionRepo.GetSnapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return snapshot.FailedJobs, nil
}

func (s *DashboardService) GetRouteOptions(ctx context.Context, sessionID string) ([]string, error) {
	snapshot, err := s.sessionRepo.GetSnapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return RouteOptions(snapshot.Stops), nil
}

// GetRoutePlot re-derives the stop sequence for the selected route from the
// stored snapshot; it never refetches.
func (s *DashboardService) GetRoutePlot(ctx context.Context, sessionID string, route string) (*dto.RoutePlotDTO, error) {
	snapshot, err := s.sessionRepo.GetSnapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.SetSelectedRoute(ctx, sessionID, route); err != nil {
		// The plot itself does not depend on the stored selection.
		s.logger.Warn("failed to persist selected route", zap.Error(err))
	}

	return &dto.RoutePlotDTO{
		Route: route,
		Stops: PlotRoute(snapshot.Stops, route),
	}, nil
}

func summaryFromSnapshot(snapshot *entities.DashboardSnapshot) *dto.DashboardSummaryDTO {
	summary := &dto.DashboardSummaryDTO{
		Date:      snapshot.Date,
		NoData:    snapshot.NoData,
		TotalJobs: len(snapshot.Jobs),
		Routes:    snapshot.MergedRoutes,
		FetchedAt: snapshot.FetchedAt.Format(time.RFC3339),
	}

	for _, m := range snapshot.Metrics {
		summary.TotalCompleted += m.Completed
		summary.TotalFailed += m.Failed
	}
	if denom := summary.TotalCompleted + summary.TotalFailed; denom > 0 {
		summary.OverallSuccessRate = float64(summary.TotalCompleted) / float64(denom)
	}

	return summary
}

package repositories

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"dispatch-dashboard/internal/entities"
)

// CRMRepositoryInterface reads the dispatch roster and waypoint sets mirrored
// from the CRM, scoped to a single route date.
type CRMRepositoryInterface interface {
	GetDispatchRoster(ctx context.Context, date time.Time) ([]entities.DispatchRosterRow, error)
	GetWaypoints(ctx context.Context, date time.Time) ([]entities.WaypointRecord, error)
}

type CRMRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCRMRepository(storage *pgxpool.Pool, logger *zap.Logger) CRMRepositoryInterface {
	return &CRMRepository{storage: storage, logger: logger}
}

// GetDispatchRoster returns the dispatch shifts for the date with their
// drivers attached. Shifts without a driver still come back, with null driver
// fields, because the route merge tolerates them.
func (r *CRMRepository) GetDispatchRoster(ctx context.Context, date time.Time) ([]entities.DispatchRosterRow, error) {
	query, args, err := sq.Select(
		"d.name", "d.start_time", "d.end_time", "d.driver_id", "d.dispatch_date",
		"dr.name", "dr.job_title",
	).
		From("dispatches d").
		LeftJoin("drivers dr ON d.driver_id = dr.id").
		Where(sq.Eq{"d.dispatch_date": date.Format("2006-01-02")}).
		OrderBy("d.id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []entities.DispatchRosterRow
	for rows.Next() {
		var row entities.DispatchRosterRow
		var start, end null.Time
		var driverName, driverTitle null.String
		if err := rows.Scan(
			&row.Dispatch.Name, &start, &end, &row.Dispatch.DriverID, &row.Dispatch.DispatchDate,
			&driverName, &driverTitle,
		); err != nil {
			return nil, err
		}
		row.Dispatch.StartTime = start
		row.Dispatch.EndTime = end
		row.DriverName = driverName
		row.DriverTitle = driverTitle
		roster = append(roster, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("loaded dispatch roster", zap.Int("rows", len(roster)), zap.String("date", date.Format("2006-01-02")))
	return roster, nil
}

func (r *CRMRepository) GetWaypoints(ctx context.Context, date time.Time) ([]entities.WaypointRecord, error) {
	query, args, err := sq.Select("id", "latitude", "longitude", "location_name", "route_date").
		From("waypoints").
		Where(sq.Eq{"route_date": date.Format("2006-01-02")}).
		OrderBy("id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var waypoints []entities.WaypointRecord
	for rows.Next() {
		var wp entities.WaypointRecord
		if err := rows.Scan(&wp.ID, &wp.Latitude, &wp.Longitude, &wp.LocationName, &wp.RouteDate); err != nil {
			return nil, err
		}
		waypoints = append(waypoints, wp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("loaded waypoints", zap.Int("rows", len(waypoints)), zap.String("date", date.Format("2006-01-02")))
	return waypoints, nil
}

package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/hadir-app/hadir-api/internal/dto"
	"github.com/hadir-app/hadir-api/internal/models"
	appErrors "github.com/hadir-app/hadir-api/pkg/errors"
)

const dashboardCachePrefix = "dash:"

// comparisonWorkingDays is the fixed working-day assumption used by the
// 6-month comparison chart. The monthly report uses the exact calendar
// calculation instead; the two are intentionally separate.
const comparisonWorkingDays = 20

type dashboardEmployeeRepository interface {
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}

type dashboardAttendanceRepository interface {
	CountByStatusInRange(ctx context.Context, from, to time.Time, status models.AttendanceStatus) (int, error)
	StatusCounts(ctx context.Context, from, to time.Time) ([]models.StatusCount, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService composes the rollup statistics behind GET /dashboard.
type DashboardService struct {
	employees  dashboardEmployeeRepository
	attendance dashboardAttendanceRepository
	cache      *CacheService
	logger     *zap.Logger
	now        func() time.Time
	cfg        DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(employees dashboardEmployeeRepository, attendance dashboardAttendanceRepository, cache *CacheService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		employees:  employees,
		attendance: attendance,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
		cfg:        cfg,
	}
}

// Overview returns the aggregate dashboard payload relative to the server
// clock and indicates cache utilisation.
func (s *DashboardService) Overview(ctx context.Context) (*dto.DashboardResponse, bool, error) {
	now := s.now().UTC()
	cacheKey := fmt.Sprintf("%soverview:%s", dashboardCachePrefix, now.Format("2006-01-02"))
	if s.cache != nil {
		var cached dto.DashboardResponse
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			return nil, false, err
		}
		if hit {
			return &cached, true, nil
		}
	}

	summary, err := s.compose(ctx, now)
	if err != nil {
		return nil, false, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return summary, false, nil
}

func (s *DashboardService) compose(ctx context.Context, now time.Time) (*dto.DashboardResponse, error) {
	today := StartOfDay(now)
	monthStart, monthEnd := MonthRange(now.Year(), now.Month())

	total, err := s.employees.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count employees")
	}
	active, err := s.employees.CountActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count active employees")
	}

	todayPresent, err := s.attendance.CountByStatusInRange(ctx, today, today, models.AttendanceStatusPresent)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count today's attendance")
	}

	monthPresent, err := s.attendance.CountByStatusInRange(ctx, monthStart, monthEnd, models.AttendanceStatusPresent)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count monthly attendance")
	}
	// Rate-to-date: the denominator uses the days elapsed so far this month,
	// not the full month length.
	monthlyRate := 0
	if potential := active * now.Day(); potential > 0 {
		monthlyRate = roundRate(monthPresent, potential)
	}

	trend, err := s.weeklyTrend(ctx, today, active)
	if err != nil {
		return nil, err
	}

	distribution, err := s.statusDistribution(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	comparison, err := s.monthlyComparison(ctx, monthStart, active)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Stats: dto.DashboardStats{
			TotalEmployees:  total,
			ActiveEmployees: active,
			TodayAttendance: todayPresent,
			MonthlyRate:     monthlyRate,
		},
		Charts: dto.DashboardCharts{
			WeeklyTrend:        trend,
			StatusDistribution: distribution,
			MonthlyComparison:  comparison,
		},
	}, nil
}

// weeklyTrend covers the last 7 civil days including today, oldest first.
// NotPresent is derived from the current active headcount and is not
// clamped: it can go negative when employees were deactivated after
// recording attendance.
func (s *DashboardService) weeklyTrend(ctx context.Context, today time.Time, active int) ([]dto.WeeklyTrendPoint, error) {
	points := make([]dto.WeeklyTrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		present, err := s.attendance.CountByStatusInRange(ctx, day, day, models.AttendanceStatusPresent)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build weekly trend")
		}
		points = append(points, dto.WeeklyTrendPoint{
			Date:       day.Format("02 Jan"),
			Present:    present,
			NotPresent: active - present,
		})
	}
	return points, nil
}

func (s *DashboardService) statusDistribution(ctx context.Context, from, to time.Time) ([]dto.StatusDistributionSlice, error) {
	counts, err := s.attendance.StatusCounts(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build status distribution")
	}
	byStatus := make(map[models.AttendanceStatus]int, len(counts))
	for _, row := range counts {
		byStatus[row.Status] = row.Count
	}
	slices := make([]dto.StatusDistributionSlice, 0, len(byStatus))
	for _, status := range models.Statuses() {
		if count, ok := byStatus[status]; ok {
			slices = append(slices, dto.StatusDistributionSlice{
				Name:  statusDisplayName(status),
				Value: count,
			})
		}
	}
	return slices, nil
}

// monthlyComparison covers the last 6 months including the current one,
// oldest first, with a fixed assumed working-day count per month.
func (s *DashboardService) monthlyComparison(ctx context.Context, currentMonthStart time.Time, active int) ([]dto.MonthlyComparisonPoint, error) {
	points := make([]dto.MonthlyComparisonPoint, 0, 6)
	for i := 5; i >= 0; i-- {
		monthStart := currentMonthStart.AddDate(0, -i, 0)
		from, to := MonthRange(monthStart.Year(), monthStart.Month())
		present, err := s.attendance.CountByStatusInRange(ctx, from, to, models.AttendanceStatusPresent)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build monthly comparison")
		}
		rate := 0
		if potential := active * comparisonWorkingDays; potential > 0 {
			rate = roundRate(present, potential)
			if rate > 100 {
				rate = 100
			}
		}
		points = append(points, dto.MonthlyComparisonPoint{
			Month: from.Format("Jan"),
			Rate:  rate,
		})
	}
	return points, nil
}

func roundRate(count, potential int) int {
	return int(math.Round(float64(count) / float64(potential) * 100))
}

func statusDisplayName(status models.AttendanceStatus) string {
	switch status {
	case models.AttendanceStatusPresent:
		return "Present"
	case models.AttendanceStatusLeave:
		return "Leave"
	case models.AttendanceStatusSick:
		return "Sick"
	case models.AttendanceStatusAbsent:
		return "Absent"
	default:
		return string(status)
	}
}

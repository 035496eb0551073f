package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/anoodleReza/application-tracker/internal/models"
)

// Stats computes dashboard statistics over the caller's applications.
func (s *Service) Stats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	apps, err := s.ListApplications(ctx, userID)
	if err != nil {
		return nil, err
	}
	return computeStats(apps, s.now()), nil
}

func computeStats(apps []models.Application, now time.Time) *models.DashboardStats {
	stats := &models.DashboardStats{
		TotalApplications:   len(apps),
		StatusBreakdown:     make([]models.StatusCount, 0, len(models.ApplicationStatuses)),
		MonthlyApplications: []models.MonthlyCount{},
	}

	byStatus := make(map[models.ApplicationStatus]int)
	byMonth := make(map[string]int)
	for _, app := range apps {
		byStatus[app.Status]++
		byMonth[app.ApplicationDate.Format("2006-01")]++
		for _, iv := range app.Interviews {
			if !iv.InterviewDate.Before(now) {
				stats.ActiveInterviews++
			}
		}
	}

	for _, status := range models.ApplicationStatuses {
		stats.StatusBreakdown = append(stats.StatusBreakdown, models.StatusCount{Status: status, Count: byStatus[status]})
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	for _, m := range months {
		stats.MonthlyApplications = append(stats.MonthlyApplications, models.MonthlyCount{Month: m, Count: byMonth[m]})
	}

	if len(apps) > 0 {
		responded := len(apps) - byStatus[models.StatusApplied]
		stats.ResponseRate = percent(responded, len(apps))
		stats.OfferRate = percent(byStatus[models.StatusOffer], len(apps))
	}
	return stats
}

func percent(part, total int) int {
	return int(math.Round(float64(part) * 100 / float64(total)))
}

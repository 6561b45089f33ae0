package service

import (
	"context"

	"github.com/grayfactory/superbowmvp-v4/internal/dto"
	"github.com/grayfactory/superbowmvp-v4/internal/pkg/logger"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/contract"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/specification"
)

type IAdminService interface {
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
	GetLogById(id string) (*logger.LogEntry, error)
	ListRecommendationLogs(ctx context.Context, req *dto.RecommendationLogQuery) (*dto.RecommendationLogListResponse, error)
}

type adminService struct {
	logRepo contract.RecommendationLogRepository
	log     logger.ILogger
}

func NewAdminService(logRepo contract.RecommendationLogRepository, log logger.ILogger) IAdminService {
	return &adminService{logRepo: logRepo, log: log}
}

func (s *adminService) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.log.GetLogs(level, limit, offset)
}

func (s *adminService) GetLogById(id string) (*logger.LogEntry, error) {
	return s.log.GetLogById(id)
}

func (s *adminService) ListRecommendationLogs(ctx context.Context, req *dto.RecommendationLogQuery) (*dto.RecommendationLogListResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}

	var filters []specification.Specification
	if req.ContextID != "" {
		filters = append(filters, specification.Filter("context_id", req.ContextID))
	}
	if req.AgeFit != "" {
		filters = append(filters, specification.Filter("age_fit", req.AgeFit))
	}

	total, err := s.logRepo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.FindAll(ctx, append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)...)
	if err != nil {
		return nil, err
	}

	res := &dto.RecommendationLogListResponse{Total: total}
	for _, l := range logs {
		res.Logs = append(res.Logs, dto.RecommendationLogResponse{
			LogID:           l.LogID.String(),
			CreatedAt:       l.CreatedAt,
			Profile:         l.ProfileSnapshot,
			Context:         l.ContextSnapshot,
			Filters:         l.FiltersSnapshot,
			Items:           l.RecommendedProducts,
			TopProductID:    l.TopProductID,
			TopProductScore: l.TopProductScore,
		})
	}
	return res, nil
}

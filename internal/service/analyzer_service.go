package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/grayfactory/superbowmvp-v4/internal/dto"
	"github.com/grayfactory/superbowmvp-v4/internal/pkg/serverutils"
	"github.com/grayfactory/superbowmvp-v4/pkg/breed"
)

type IAnalyzerService interface {
	AnalyzePet(ctx context.Context, req *dto.AnalyzePetRequest) (*dto.AnalyzePetResponse, error)
}

type analyzerService struct{}

func NewAnalyzerService() IAnalyzerService {
	return &analyzerService{}
}

func (s *analyzerService) AnalyzePet(ctx context.Context, req *dto.AnalyzePetRequest) (*dto.AnalyzePetResponse, error) {
	analysis, err := breed.Analyze(req.Breed, req.Month, req.WeightKg)
	if err != nil {
		if errors.Is(err, breed.ErrBreedNotFound) {
			return nil, serverutils.NewHttpError(fiber.StatusNotFound, "Breed not found. Please set the profile manually.")
		}
		return nil, err
	}

	canonical, _ := breed.NormalizeName(req.Breed)
	return &dto.AnalyzePetResponse{
		Breed:          canonical,
		AgeFit:         analysis.AgeFit,
		JawHardnessFit: analysis.JawHardnessFit,
		WeightStatus:   analysis.WeightStatus,
	}, nil
}

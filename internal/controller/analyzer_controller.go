package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grayfactory/superbowmvp-v4/internal/dto"
	"github.com/grayfactory/superbowmvp-v4/internal/pkg/serverutils"
	"github.com/grayfactory/superbowmvp-v4/internal/service"
)

type IAnalyzerController interface {
	RegisterRoutes(r fiber.Router)
	AnalyzePet(ctx *fiber.Ctx) error
}

type analyzerController struct {
	analyzerService service.IAnalyzerService
}

func NewAnalyzerController(analyzerService service.IAnalyzerService) IAnalyzerController {
	return &analyzerController{
		analyzerService: analyzerService,
	}
}

func (c *analyzerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analyze/v1")
	h.Post("pet", c.AnalyzePet)
}

func (c *analyzerController) AnalyzePet(ctx *fiber.Ctx) error {
	var req dto.AnalyzePetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewHttpError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.analyzerService.AnalyzePet(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze pet", res))
}

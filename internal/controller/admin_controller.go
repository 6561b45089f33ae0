package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grayfactory/superbowmvp-v4/internal/dto"
	"github.com/grayfactory/superbowmvp-v4/internal/pkg/serverutils"
	"github.com/grayfactory/superbowmvp-v4/internal/service"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
	GetRecommendationLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) IAdminController {
	return &adminController{
		adminService: adminService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("logs", c.GetLogs)
	h.Get("logs/:id", c.GetLogDetail)
	h.Get("recommendations", c.GetRecommendationLogs)
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	var req dto.LogQueryRequest
	if err := ctx.QueryParser(&req); err != nil {
		return serverutils.NewHttpError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	logs, err := c.adminService.GetLogs(req.Level, req.Limit, req.Offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get logs", logs))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	entry, err := c.adminService.GetLogById(ctx.Params("id"))
	if err != nil {
		return err
	}
	if entry == nil {
		return serverutils.NewHttpError(fiber.StatusNotFound, "Log entry not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get log detail", entry))
}

func (c *adminController) GetRecommendationLogs(ctx *fiber.Ctx) error {
	var req dto.RecommendationLogQuery
	if err := ctx.QueryParser(&req); err != nil {
		return serverutils.NewHttpError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.adminService.ListRecommendationLogs(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get recommendation logs", res))
}

package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grayfactory/superbowmvp-v4/internal/dto"
	"github.com/grayfactory/superbowmvp-v4/internal/pkg/serverutils"
	"github.com/grayfactory/superbowmvp-v4/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Turn(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("turn", c.Turn)
}

func (c *chatController) Turn(ctx *fiber.Ctx) error {
	var req dto.TurnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewHttpError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.ProcessTurn(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process turn", res))
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kycapi/internal/model"
	"kycapi/internal/service"
)

type addDataResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    *model.KnowledgeEntry `json:"data"`
}

type chatResponse struct {
	Success bool `json:"success"`
	*service.ChatResponse
}

// AddData embeds a piece of content and stores it in the knowledge base.
//
// @Summary Add knowledge base content
// @Tags knowledge
// @Accept json
// @Produce json
// @Param body body service.AddDataRequest true "content with optional metadata and category"
// @Success 201 {object} addDataResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/add-data [post]
func AddData(svc service.KnowledgeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.AddDataRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}

		entry, err := svc.AddData(c.UserContext(), req)
		if err != nil {
			if errors.Is(err, service.ErrContentRequired) {
				return writeError(c, fiber.StatusBadRequest, "MISSING_FIELD", "Content is required")
			}
			return writeErrorDetail(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Error processing request", err)
		}
		return c.Status(fiber.StatusCreated).JSON(addDataResponse{
			Success: true,
			Message: "Data added successfully with embedding",
			Data:    entry,
		})
	}
}

// Chat answers a question from the knowledge base.
//
// @Summary Ask the knowledge base
// @Tags knowledge
// @Accept json
// @Produce json
// @Param body body service.ChatRequest true "query with optional conversation history"
// @Success 200 {object} chatResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/chat [post]
func Chat(svc service.KnowledgeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.ChatRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}

		res, err := svc.Chat(c.UserContext(), req)
		if err != nil {
			if errors.Is(err, service.ErrQueryRequired) {
				return writeError(c, fiber.StatusBadRequest, "MISSING_FIELD", "Query is required")
			}
			return writeErrorDetail(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Error processing chat request", err)
		}
		return c.JSON(chatResponse{Success: true, ChatResponse: res})
	}
}

package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/optisale/optisale/pkg/assistant"
	"github.com/optisale/optisale/pkg/domain"
	"github.com/optisale/optisale/pkg/zoho"
)

// DashboardController exposes the CRM query facade and the assistant to
// the dashboard UI. Facade failures become degraded JSON responses with
// the "Error" key the UI already checks for; nothing here panics or
// leaks an unhandled error into the session.
type DashboardController struct {
	crm       *zoho.Service
	assistant *assistant.Assistant
}

type DashboardControllerDependencies struct {
	CRMService *zoho.Service
	Assistant  *assistant.Assistant
}

func NewDashboardController(deps DashboardControllerDependencies) *DashboardController {
	return &DashboardController{
		crm:       deps.CRMService,
		assistant: deps.Assistant,
	}
}

// errorResponse renders the sentinel error shape the UI special-cases
// before treating a payload as data.
func errorResponse(ctx fiber.Ctx, err error) error {
	status := fiber.StatusBadGateway

	var configErr *domain.ConfigError
	var authErr *domain.AuthError
	switch {
	case errors.As(err, &configErr):
		status = fiber.StatusServiceUnavailable
	case errors.As(err, &authErr):
		status = fiber.StatusBadGateway
	}

	return ctx.Status(status).JSON(fiber.Map{
		domain.ErrorKey: []string{err.Error()},
	})
}

func respondPartition[T any](ctx fiber.Ctx, part *domain.OwnerPartition[T], err error) error {
	if err != nil {
		log.Error().Err(err).Str("path", ctx.Path()).Msg("CRM fetch failed")
		return errorResponse(ctx, err)
	}

	owner := ctx.Query("owner")
	if owner != "" && owner != zoho.OwnerAll {
		part = part.Select(owner)
	}

	return ctx.JSON(part)
}

func (c *DashboardController) GetDeals(ctx fiber.Ctx) error {
	deals, err := c.crm.GetDeals(ctx.RequestCtx())
	return respondPartition(ctx, deals, err)
}

func (c *DashboardController) GetLeads(ctx fiber.Ctx) error {
	leads, err := c.crm.GetLeads(ctx.RequestCtx())
	return respondPartition(ctx, leads, err)
}

func (c *DashboardController) GetTasks(ctx fiber.Ctx) error {
	tasks, err := c.crm.GetTasks(ctx.RequestCtx())
	return respondPartition(ctx, tasks, err)
}

func (c *DashboardController) GetNotes(ctx fiber.Ctx) error {
	notes, err := c.crm.GetNotes(ctx.RequestCtx())
	return respondPartition(ctx, notes, err)
}

func (c *DashboardController) GetDealsByStage(ctx fiber.Ctx) error {
	deals, err := c.crm.GetDealsByStage(ctx.RequestCtx(), ctx.Query("stage"))
	return respondPartition(ctx, deals, err)
}

func (c *DashboardController) GetTasksByStatus(ctx fiber.Ctx) error {
	tasks, err := c.crm.GetTasksByStatus(ctx.RequestCtx(), ctx.Query("status"))
	return respondPartition(ctx, tasks, err)
}

func (c *DashboardController) GetLeadsByStatus(ctx fiber.Ctx) error {
	leads, err := c.crm.GetLeadsByStatus(ctx.RequestCtx(), ctx.Query("status"))
	return respondPartition(ctx, leads, err)
}

func (c *DashboardController) GetSummary(ctx fiber.Ctx) error {
	owner := ctx.Query("owner", zoho.OwnerAll)
	overview := c.crm.GetCRMSummary(ctx.RequestCtx(), owner)
	return ctx.JSON(overview)
}

func (c *DashboardController) GetOwners(ctx fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"owners": c.crm.GetAllOwners(ctx.RequestCtx()),
	})
}

func (c *DashboardController) GetStats(ctx fiber.Ctx) error {
	return ctx.JSON(c.crm.GetSummaryStats(ctx.RequestCtx()))
}

// GetStatus reports CRM and assistant connectivity for the dashboard's
// status banner.
func (c *DashboardController) GetStatus(ctx fiber.Ctx) error {
	crmOK, crmMessage := c.crm.TestConnection(ctx.RequestCtx())
	aiOK, aiMessage := c.assistant.TestConnection(ctx.RequestCtx())

	return ctx.JSON(fiber.Map{
		"crm": fiber.Map{
			"connected": crmOK,
			"message":   crmMessage,
		},
		"assistant": fiber.Map{
			"connected": aiOK,
			"message":   aiMessage,
		},
	})
}

type ChatRequest struct {
	Message  string `json:"message"`
	Owner    string `json:"owner"`
	UserName string `json:"user_name"`
	UserRole string `json:"user_role"`
}

type ChatResponse struct {
	ID    string `json:"id"`
	Reply string `json:"reply"`
}

// Chat answers a user message with the owner's CRM summary embedded as
// context. When the completion service is unavailable the reply
// degrades to an explanatory message instead of failing the session.
func (c *DashboardController) Chat(ctx fiber.Ctx) error {
	var req ChatRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Message is required")
	}

	owner := req.Owner
	if owner == "" {
		owner = zoho.OwnerAll
	}

	overview := c.crm.GetCRMSummary(ctx.RequestCtx(), owner)

	reply, err := c.assistant.GenerateResponse(ctx.RequestCtx(), req.Message, assistant.SummaryContext{
		UserName: req.UserName,
		UserRole: req.UserRole,
		Summary:  overview.Summary,
	})
	if err != nil {
		log.Error().Err(err).Msg("Assistant response failed")
		reply = "Sorry, I'm currently unable to connect to the AI service. Please check your API configuration."
	}

	return ctx.JSON(ChatResponse{
		ID:    uuid.NewString(),
		Reply: reply,
	})
}

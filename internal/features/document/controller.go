package document

import (
	"errors"
	"time"

	"jzf-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DocumentController struct {
	Service     DocumentService
	Coordinator SignatureCoordinator
}

func NewDocumentController(service DocumentService, coordinator SignatureCoordinator) *DocumentController {
	return &DocumentController{
		Service:     service,
		Coordinator: coordinator,
	}
}

// statusForError maps the lifecycle error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrInvalidState):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrDependencyFailure):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func fail(ctx *fiber.Ctx, err error) error {
	return ctx.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
}

// CreateRequest godoc
// @Summary Create a document request
// @Description Ask the counter-party for a document; the instance starts as Pendente
// @Tags documents
// @Accept json
// @Produce json
// @Param body body CreateRequestInput true "Request"
// @Success 201 {object} Document
// @Router /api/documents/request [post]
func (c *DocumentController) CreateRequest(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var input CreateRequestInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	doc, err := c.Service.CreateRequest(ctx.UserContext(), actor, input)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(doc)
}

// SendFromOffice godoc
// @Summary Office sends a document, optionally naming signatories
// @Tags documents
// @Accept json
// @Produce json
// @Param body body SendFromOfficeInput true "Document"
// @Success 201 {object} Document
// @Router /api/documents/send-from-admin [post]
func (c *DocumentController) SendFromOffice(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var input SendFromOfficeInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	doc, err := c.Service.SendFromOffice(ctx.UserContext(), actor, input)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(doc)
}

// QuickSend godoc
// @Summary Office uploads a scanned document on the client's behalf
// @Tags documents
// @Accept json
// @Produce json
// @Param body body QuickSendInput true "Document"
// @Success 201 {object} Document
// @Router /api/documents/quick-send [post]
func (c *DocumentController) QuickSend(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var input QuickSendInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	doc, err := c.Service.QuickSend(ctx.UserContext(), actor, input)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(doc)
}

// CreateFromTemplate godoc
// @Summary Client submits a document built from a template
// @Tags documents
// @Accept json
// @Produce json
// @Param body body TemplateSubmissionInput true "Submission"
// @Success 201 {object} Document
// @Router /api/documents/from-template [post]
func (c *DocumentController) CreateFromTemplate(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var input TemplateSubmissionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	doc, err := c.Service.CreateFromTemplate(ctx.UserContext(), actor, input)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(doc)
}

// SubmitNextStep godoc
// @Summary Client submits the next step of a multi-step document
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param body body StepSubmissionInput true "Step data"
// @Success 200 {object} Document
// @Router /api/documents/{id}/from-template [put]
func (c *DocumentController) SubmitNextStep(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var input StepSubmissionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	doc, err := c.Service.SubmitNextStep(ctx.UserContext(), actor, ctx.Params("id"), input)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(doc)
}

// ApproveStep godoc
// @Summary Office approves step 1 of a multi-step document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Document
// @Router /api/documents/{id}/approve-step [put]
func (c *DocumentController) ApproveStep(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	doc, err := c.Service.ApproveStep(ctx.UserContext(), actor, ctx.Params("id"))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(doc)
}

// SetStatus godoc
// @Summary Office manually overrides a document's status
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param body body object true "New status"
// @Success 200 {object} Document
// @Router /api/documents/{id}/status [put]
func (c *DocumentController) SetStatus(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var body struct {
		Status DocumentStatus `json:"status"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	doc, err := c.Service.SetStatus(ctx.UserContext(), actor, ctx.Params("id"), body.Status)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(doc)
}

// Sign godoc
// @Summary Record a signatory's signature on a document
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param body body SignatureMetadata true "Capture context"
// @Success 200 {object} Document
// @Router /api/documents/{id}/sign [put]
func (c *DocumentController) Sign(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var meta SignatureMetadata
	if err := ctx.BodyParser(&meta); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if meta.AuditTrail == nil {
		meta.AuditTrail = map[string]any{}
	}
	meta.AuditTrail["ip"] = ctx.IP()
	meta.AuditTrail["user_agent"] = string(ctx.Request().Header.UserAgent())

	doc, _, err := c.Coordinator.RecordSignature(ctx.UserContext(), actor, ctx.Params("id"), meta)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(doc)
}

// GetByID godoc
// @Summary Get a document aggregate by ID
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Document
// @Router /api/documents/{id} [get]
func (c *DocumentController) GetByID(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	doc, err := c.Service.GetByID(ctx.UserContext(), actor, ctx.Params("id"))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(doc)
}

// ListByClient godoc
// @Summary List a client's documents
// @Tags documents
// @Produce json
// @Param clientId path string true "Client ID"
// @Success 200 {array} Document
// @Router /api/documents/client/{clientId} [get]
func (c *DocumentController) ListByClient(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	docs, err := c.Service.ListByClient(ctx.UserContext(), actor, ctx.Params("clientId"))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(docs)
}

// ListUpdates godoc
// @Summary List documents uploaded after a cursor timestamp
// @Tags documents
// @Produce json
// @Param since query string true "RFC3339 cursor"
// @Success 200 {array} Document
// @Router /api/documents/updates [get]
func (c *DocumentController) ListUpdates(ctx *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sinceParam := ctx.Query("since")
	if sinceParam == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": `O parâmetro "since" é obrigatório.`})
	}
	since, err := time.Parse(time.RFC3339, sinceParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": `Formato de data inválido para "since".`})
	}

	docs, err := c.Service.ListUpdatedSince(ctx.UserContext(), actor, since)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(docs)
}

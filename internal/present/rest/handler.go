package rest

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/present/rest/middleware"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/present/rest/presenter"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/usecase"
)

type Handler struct {
	submitter *usecase.Submitter
	reorderer *usecase.Reorderer
	items     usecase.AgendaItemRepository
	session   *middleware.SessionMiddleware
}

func NewHandler(
	submitter *usecase.Submitter,
	reorderer *usecase.Reorderer,
	items usecase.AgendaItemRepository,
	session *middleware.SessionMiddleware,
) *Handler {
	return &Handler{
		submitter: submitter,
		reorderer: reorderer,
		items:     items,
		session:   session,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.handleAlive)
	e.POST("/meetings/:id/submit", h.handleSubmit, h.session.RequireSession)
	e.POST("/agendas/:id/reorder", h.handleReorder, h.session.RequireSession)
	e.GET("/agendaitems/:id/preliminary-decision", h.handlePreliminaryDecision, h.session.RequireSession)
}

func (h *Handler) handleAlive(c echo.Context) error {
	return c.String(200, "The agenda-submission-service is alive!")
}

type submitBody struct {
	Subcase    string `json:"subcase"`
	Submission string `json:"submission"`
}

type submitResponse struct {
	AgendaItemID  string `json:"agendaitemId"`
	AgendaItemURI string `json:"agendaitemUri"`
}

func (h *Handler) handleSubmit(c echo.Context) error {
	ctx := c.Request().Context()

	meetingID := c.Param("id")
	if meetingID == "" {
		return presenter.BadRequestMessage(c, "path parameter meeting ID was not set, cannot proceed")
	}

	var body submitBody
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}
	if body.Subcase == "" {
		return presenter.BadRequestMessage(c, `body does not contain a "subcase" field, cannot proceed`)
	}

	result, err := h.submitter.Submit(ctx, usecase.SubmitRequest{
		MeetingID:    meetingID,
		SubcaseURI:   body.Subcase,
		SubmissionID: body.Submission,
	})
	if err != nil {
		return h.presentError(c, err)
	}
	return presenter.Created(c, submitResponse{
		AgendaItemID:  result.AgendaItemID,
		AgendaItemURI: result.AgendaItemURI,
	})
}

type reorderBody struct {
	Type string `json:"type"`
}

func (h *Handler) handleReorder(c echo.Context) error {
	ctx := c.Request().Context()

	agendaID := c.Param("id")
	if agendaID == "" {
		return presenter.BadRequestMessage(c, "path parameter agenda ID was not set, cannot proceed")
	}

	var body reorderBody
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}
	if body.Type == "" {
		return presenter.BadRequestMessage(c, `body does not contain a "type" field, cannot proceed`)
	}

	err := h.reorderer.Reorder(ctx, usecase.ReorderRequest{
		AgendaID: agendaID,
		ItemType: body.Type,
	})
	if err != nil {
		return h.presentError(c, err)
	}
	return presenter.NoContent(c)
}

type decisionResultPayload struct {
	URI string `json:"uri"`
	ID  string `json:"id"`
}

type preliminaryDecisionResponse struct {
	Data *decisionResultPayload `json:"data"`
}

func (h *Handler) handlePreliminaryDecision(c echo.Context) error {
	ctx := c.Request().Context()

	agendaitemID := c.Param("id")
	if agendaitemID == "" {
		return presenter.BadRequestMessage(c, "path parameter agendaitem ID was not set, cannot proceed")
	}

	result, err := h.items.PreliminaryDecision(ctx, agendaitemID)
	if err != nil {
		return h.presentError(c, err)
	}
	response := preliminaryDecisionResponse{}
	if result != nil {
		response.Data = &decisionResultPayload{URI: result.URI, ID: result.ID}
	}
	return presenter.OK(c, response)
}

func (h *Handler) presentError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.PreconditionError{}):
		return presenter.BadRequest(c, err)
	case errors.Is(err, domain.ErrNotFound):
		return presenter.NotFound(c, err.Error())
	case errors.Is(err, domain.ConflictError{}):
		return presenter.Conflict(c, err)
	default:
		return presenter.InternalError(c, err)
	}
}

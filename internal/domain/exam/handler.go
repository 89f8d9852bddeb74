package exam

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/radorder/radorder/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/exams", h.CreateExam)
	api.GET("/exams", h.ListExams)
	api.GET("/exams/:id", h.GetExam)
	api.DELETE("/exams/:id", h.DeleteExam)
}

type createExamRequest struct {
	PatientID      string  `json:"patientId"`
	Modality       string  `json:"modality"`
	Description    *string `json:"description"`
	CreatedBy      *string `json:"createdBy"`
	IdempotencyKey string  `json:"idempotencyKey"`
}

func (h *Handler) CreateExam(c echo.Context) error {
	var req createExamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patientId")
	}

	created, err := h.svc.Create(c.Request().Context(), CreateInput{
		PatientID:      patientID,
		Modality:       req.Modality,
		Description:    req.Description,
		CreatedBy:      req.CreatedBy,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return examError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetExam(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	e, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return examError(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) ListExams(c echo.Context) error {
	pg := pagination.FromContext(c)

	exams, total, err := h.svc.List(c.Request().Context(), pg.Limit(), pg.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(exams, total, pg))
}

func (h *Handler) DeleteExam(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return examError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// examError maps the domain error taxonomy onto HTTP status codes.
func examError(err error) error {
	switch {
	case IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnknownPatient):
		return echo.NewHTTPError(http.StatusBadRequest, "patient not found")
	case IsConflict(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "exam not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

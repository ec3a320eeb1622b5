package wizard

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/netdok/maternity/internal/domain/patient"
)

// SectionWriter is the slice of the patient store the wizard needs: the
// atomic replace of one named sub-record.
type SectionWriter interface {
	SaveSection(ctx context.Context, id uuid.UUID, name string, doc map[string]any) error
}

// Handler serves every step form after registration: GET renders the step's
// view, POST validates, writes the sub-record and advances by redirect. The
// client's current URL is the only record of wizard progress.
type Handler struct {
	store SectionWriter
}

func NewHandler(store SectionWriter) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	for _, step := range Steps {
		e.GET("/add-"+step.Slug+"/:patientId", h.showStep(step))
		e.POST("/add-"+step.Slug+"/:patientId", h.submitStep(step))
	}
	e.GET("/partograph-success/:patientId", h.ShowSuccess)
}

// showStep renders the step form. No validation happens here; the patient
// id is carried through to keep the submit URL addressable.
func (h *Handler) showStep(step Step) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, step.View, map[string]interface{}{
			"patientId": c.Param("patientId"),
		})
	}
}

func (h *Handler) submitStep(step Step) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("patientId"))
		if err != nil {
			return c.String(http.StatusBadRequest, "Invalid patient id")
		}

		if err := c.Request().ParseForm(); err != nil {
			return c.String(http.StatusBadRequest, "Invalid form data")
		}

		doc, err := BuildSection(step, c.Request().PostForm)
		if err != nil {
			return c.String(http.StatusBadRequest, "All required fields must be filled: "+err.Error())
		}

		err = h.store.SaveSection(c.Request().Context(), id, step.Section, doc)
		if errors.Is(err, patient.ErrNotFound) {
			return c.String(http.StatusNotFound, "Patient not found")
		}
		if err != nil {
			return c.String(http.StatusInternalServerError, "Error saving "+step.Section+" data: "+err.Error())
		}

		return c.Redirect(http.StatusSeeOther, NextPath(step, id.String()))
	}
}

func (h *Handler) ShowSuccess(c echo.Context) error {
	return c.Render(http.StatusOK, "partograph-success", map[string]interface{}{
		"patientId": c.Param("patientId"),
	})
}

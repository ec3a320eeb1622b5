package patient

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler serves the patient root-record endpoints: the home listing, the
// registration form and the edit/delete operations. Step forms are served
// by the wizard handler.
type Handler struct {
	svc *Service
	// firstStepSlug is where a successful registration redirects to; the
	// wizard owns the step order, so the slug is injected at wiring time.
	firstStepSlug string
}

func NewHandler(svc *Service, firstStepSlug string) *Handler {
	return &Handler{svc: svc, firstStepSlug: firstStepSlug}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/register-patient", h.ShowRegister)
	e.GET("/patient-details/:patientId", h.ShowDetails)
	e.POST("/register-patient", h.Register)
	e.POST("/edit-patient", h.Edit)
	e.POST("/delete-patient/:id", h.Delete)
}

// Home lists every patient in a single point-in-time read. The first
// patient's id is passed along as a convenience default for the forms.
func (h *Handler) Home(c echo.Context) error {
	patients, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error fetching patients: "+err.Error())
	}

	var firstID string
	if len(patients) > 0 {
		firstID = patients[0].ID.String()
	}

	return c.Render(http.StatusOK, "index", map[string]interface{}{
		"patients":  patients,
		"patientId": firstID,
	})
}

func (h *Handler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "register-patient", nil)
}

func (h *Handler) ShowDetails(c echo.Context) error {
	id, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid patient id")
	}

	p, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.String(http.StatusNotFound, "Patient not found")
	}
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error fetching patient: "+err.Error())
	}

	return c.Render(http.StatusOK, "patient-details", map[string]interface{}{
		"patient":   p,
		"patientId": p.ID.String(),
	})
}

func (h *Handler) Register(c echo.Context) error {
	var form RegistrationForm
	if err := c.Bind(&form); err != nil {
		return c.String(http.StatusBadRequest, "Invalid form data")
	}

	p, err := h.svc.Register(c.Request().Context(), &form)
	if IsValidation(err) {
		return c.String(http.StatusBadRequest, "All required fields must be filled: "+err.Error())
	}
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error registering patient: "+err.Error())
	}

	return c.Redirect(http.StatusSeeOther, "/add-"+h.firstStepSlug+"/"+p.ID.String())
}

func (h *Handler) Edit(c echo.Context) error {
	var form UpdateForm
	if err := c.Bind(&form); err != nil {
		return c.String(http.StatusBadRequest, "Invalid form data")
	}

	id, err := uuid.Parse(form.PatientID)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid patient id")
	}

	err = h.svc.Update(c.Request().Context(), id, form.ToUpdate())
	if errors.Is(err, ErrNotFound) {
		return c.String(http.StatusNotFound, "Patient not found")
	}
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error updating patient: "+err.Error())
	}

	return c.Redirect(http.StatusSeeOther, "/patient-details/"+id.String())
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid patient id")
	}

	err = h.svc.Delete(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.String(http.StatusNotFound, "Patient not found")
	}
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error deleting patient: "+err.Error())
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

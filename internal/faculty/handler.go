package faculty

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"FacultyManager/internal/views"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type FacultyHandler struct {
	service *FacultyService
	log     *zap.Logger
}

func NewFacultyHandler(service *FacultyService, log *zap.Logger) *FacultyHandler {
	return &FacultyHandler{service: service, log: log}
}

func (h *FacultyHandler) Home(c echo.Context) error {
	overview, err := h.service.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return views.Render(c, http.StatusOK, "index.html", echo.Map{
		"Faculties":   overview.Faculties,
		"Departments": overview.Departments,
		"Count":       overview.Count,
	})
}

func (h *FacultyHandler) ShowAdd(c echo.Context) error {
	return views.Render(c, http.StatusOK, "add_faculty.html", echo.Map{"Form": FacultyForm{}})
}

// Add saves the faculty member by email and notifies admin and subscribers.
// Delivery problems never fail the request.
func (h *FacultyHandler) Add(c echo.Context) error {
	var form FacultyForm
	if err := c.Bind(&form); err != nil {
		return h.renderAddError(c, http.StatusBadRequest, form, "Invalid request")
	}
	if _, err := h.service.Add(c.Request().Context(), form); err != nil {
		if errors.Is(err, ErrInvalidFaculty) {
			return h.renderAddError(c, http.StatusBadRequest, form, err.Error())
		}
		if errors.Is(err, ErrEmailTaken) {
			return h.renderAddError(c, http.StatusConflict, form, "Faculty email is busy, please retry")
		}
		return err
	}
	return views.Redirect(c, "/", views.FlashSuccess, "Faculty added or updated successfully, and admin has been notified.")
}

func (h *FacultyHandler) renderAddError(c echo.Context, code int, form FacultyForm, message string) error {
	return views.Render(c, code, "add_faculty.html", echo.Map{
		"Form":  form,
		"Flash": &views.Flash{Kind: views.FlashError, Message: message},
	})
}

func (h *FacultyHandler) ShowUpdate(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	f, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound(c)
		}
		return err
	}
	return views.Render(c, http.StatusOK, "update_faculty.html", echo.Map{"Faculty": f})
}

func (h *FacultyHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	var form FacultyForm
	if err := c.Bind(&form); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}

	_, err := h.service.Update(c.Request().Context(), id, form)
	switch {
	case err == nil:
		return views.Redirect(c, "/", views.FlashSuccess, "Faculty updated.")
	case errors.Is(err, ErrNotFound):
		return notFound(c)
	case errors.Is(err, ErrInvalidFaculty), errors.Is(err, ErrEmailTaken):
		code := http.StatusBadRequest
		if errors.Is(err, ErrEmailTaken) {
			code = http.StatusConflict
		}
		return views.Render(c, code, "update_faculty.html", echo.Map{
			"Faculty": &Faculty{ID: id, Name: form.Name, Department: form.Department, Email: form.Email},
			"Flash":   &views.Flash{Kind: views.FlashError, Message: err.Error()},
		})
	default:
		return err
	}
}

func (h *FacultyHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *FacultyHandler) Department(c echo.Context) error {
	department := departmentParam(c)
	faculties, err := h.service.ListByDepartment(c.Request().Context(), department)
	if err != nil {
		return err
	}
	return views.Render(c, http.StatusOK, "department_faculty.html", echo.Map{
		"Department": department,
		"Faculties":  faculties,
	})
}

// departmentParam returns the decoded department segment. When the request
// path carried escapes such as %2F the router matched on the raw path and the
// param is still escaped.
func departmentParam(c echo.Context) string {
	department := c.Param("department")
	if c.Request().URL.RawPath == "" {
		return department
	}
	if decoded, err := url.PathUnescape(department); err == nil {
		return decoded
	}
	return department
}

func (h *FacultyHandler) ExportPDF(c echo.Context) error {
	faculties, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	pdf, err := BuildDirectoryPDF(faculties, time.Now())
	if err != nil {
		h.log.Error("Failed to build directory PDF", zap.Error(err))
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="faculty-directory.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func notFound(c echo.Context) error {
	return views.Render(c, http.StatusNotFound, "error.html", echo.Map{"Code": http.StatusNotFound, "Message": "Faculty not found"})
}

package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cafes/internal/export"
	"cafes/internal/forms"
	"cafes/internal/repositories"
	"cafes/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CafeHandler handles HTTP requests for cafes.
type CafeHandler struct {
	service *services.CafeService
}

// NewCafeHandler creates a new CafeHandler.
func NewCafeHandler(service *services.CafeService) *CafeHandler {
	return &CafeHandler{
		service: service,
	}
}

// RegisterRoutes registers the cafe routes with the Fiber app.
func (h *CafeHandler) RegisterRoutes(router fiber.Router) {
	cafeRoutes := router.Group("/cafes")
	cafeRoutes.Get("/", h.HandleGetCafes)
	cafeRoutes.Get("/new", h.HandleNewCafeForm)
	cafeRoutes.Get("/export.xlsx", h.HandleExportCafes)
	cafeRoutes.Post("/", h.HandleCreateCafe)
	cafeRoutes.Get("/:id", h.HandleGetCafeByID)
	cafeRoutes.Get("/:id/edit", h.HandleEditCafeForm)
	cafeRoutes.Put("/:id", h.HandleUpdateCafe)
	// HTML forms can only POST.
	cafeRoutes.Post("/:id", h.HandleUpdateCafe)
	cafeRoutes.Delete("/:id", h.HandleDeleteCafe)
	// Plain links can only GET.
	cafeRoutes.Get("/:id/delete", h.HandleDeleteCafeLink)
}

// HandleGetCafes lists every cafe.
func (h *CafeHandler) HandleGetCafes(c *fiber.Ctx) error {
	cafes, err := h.service.ListCafes(c.UserContext())
	if err != nil {
		zap.S().Errorf("Error getting all cafes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cafes",
			"error":   err.Error(),
		})
	}
	return c.JSON(cafes)
}

// HandleNewCafeForm returns a blank form and the seat choices to offer.
func (h *CafeHandler) HandleNewCafeForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"form":         forms.CafeForm{},
		"seat_choices": forms.SeatChoices(),
	})
}

// HandleGetCafeByID retrieves a single cafe by its ID.
func (h *CafeHandler) HandleGetCafeByID(c *fiber.Ctx) error {
	id, err := cafeID(c)
	if err != nil {
		return badID(c, err)
	}

	cafe, err := h.service.GetCafe(c.UserContext(), id)
	if err != nil {
		return h.storeError(c, id, err, nil)
	}
	return c.JSON(cafe)
}

// HandleEditCafeForm returns the current values of a cafe as a form.
func (h *CafeHandler) HandleEditCafeForm(c *fiber.Ctx) error {
	id, err := cafeID(c)
	if err != nil {
		return badID(c, err)
	}

	form, err := h.service.EditForm(c.UserContext(), id)
	if err != nil {
		return h.storeError(c, id, err, nil)
	}
	return c.JSON(fiber.Map{
		"id":           id,
		"form":         form,
		"seat_choices": forms.SeatChoices(),
	})
}

// HandleCreateCafe validates a submitted form and stores a new cafe.
func (h *CafeHandler) HandleCreateCafe(c *fiber.Ctx) error {
	form, err := parseCafeForm(c)
	if err != nil {
		zap.S().Warnf("Error parsing cafe form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cafe, err := h.service.CreateCafe(c.UserContext(), form)
	if err != nil {
		return h.storeError(c, 0, err, &form)
	}
	return c.Status(fiber.StatusCreated).JSON(cafe)
}

// HandleUpdateCafe validates a submitted form and replaces the cafe's fields.
func (h *CafeHandler) HandleUpdateCafe(c *fiber.Ctx) error {
	id, err := cafeID(c)
	if err != nil {
		return badID(c, err)
	}

	form, err := parseCafeForm(c)
	if err != nil {
		zap.S().Warnf("Error parsing cafe form for %d: %v", id, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cafe, err := h.service.UpdateCafe(c.UserContext(), id, form)
	if err != nil {
		return h.storeError(c, id, err, &form)
	}
	return c.JSON(cafe)
}

// HandleDeleteCafe deletes a cafe by its ID.
func (h *CafeHandler) HandleDeleteCafe(c *fiber.Ctx) error {
	id, err := cafeID(c)
	if err != nil {
		return badID(c, err)
	}

	if err := h.service.DeleteCafe(c.UserContext(), id); err != nil {
		return h.storeError(c, id, err, nil)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Cafe %d deleted successfully", id),
	})
}

// HandleDeleteCafeLink deletes a cafe and sends the client back to the list.
func (h *CafeHandler) HandleDeleteCafeLink(c *fiber.Ctx) error {
	id, err := cafeID(c)
	if err != nil {
		return badID(c, err)
	}

	if err := h.service.DeleteCafe(c.UserContext(), id); err != nil {
		return h.storeError(c, id, err, nil)
	}
	list := strings.TrimSuffix(c.Route().Path, "/:id/delete")
	return c.Redirect(list, fiber.StatusSeeOther)
}

// HandleExportCafes sends the cafe list as a spreadsheet.
func (h *CafeHandler) HandleExportCafes(c *fiber.Ctx) error {
	cafes, err := h.service.ListCafes(c.UserContext())
	if err != nil {
		zap.S().Errorf("Error getting cafes for export: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cafes",
			"error":   err.Error(),
		})
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, cafes); err != nil {
		zap.S().Errorf("Error exporting cafes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not export cafes",
			"error":   err.Error(),
		})
	}

	c.Attachment("cafes.xlsx")
	c.Set(fiber.HeaderContentType, mimeXLSX)
	return c.Send(buf.Bytes())
}

// storeError maps service errors onto responses. form, when set, is echoed
// back so the client can show the submitted values next to the errors.
func (h *CafeHandler) storeError(c *fiber.Ctx, id uint, err error, form *forms.CafeForm) error {
	var verrs forms.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verrs.Fields(),
			"kinds":   verrs.Kinds(),
			"form":    form,
		})
	case errors.Is(err, repositories.ErrDuplicateKey):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "A cafe with this name or map URL already exists",
			"error":   err.Error(),
			"form":    form,
		})
	case errors.Is(err, repositories.ErrCafeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Cafe with ID %d not found", id),
		})
	}

	zap.S().Errorf("Error handling cafe request %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not process cafe request",
		"error":   err.Error(),
	})
}

// parseCafeForm reads a form-encoded, multipart or JSON body. Form values
// are copied out of the request buffer, which fasthttp reuses once the
// handler returns.
func parseCafeForm(c *fiber.Ctx) (forms.CafeForm, error) {
	if c.Is("json") {
		body := make(map[string]interface{})
		if err := c.BodyParser(&body); err != nil {
			return forms.CafeForm{}, err
		}
		return forms.FromMap(body), nil
	}

	var form forms.CafeForm
	if err := c.BodyParser(&form); err != nil {
		return forms.CafeForm{}, err
	}
	return forms.CafeForm{
		Name:         utils.CopyString(form.Name),
		MapURL:       utils.CopyString(form.MapURL),
		ImgURL:       utils.CopyString(form.ImgURL),
		Location:     utils.CopyString(form.Location),
		HasSockets:   utils.CopyString(form.HasSockets),
		HasToilet:    utils.CopyString(form.HasToilet),
		HasWifi:      utils.CopyString(form.HasWifi),
		CanTakeCalls: utils.CopyString(form.CanTakeCalls),
		Seats:        utils.CopyString(form.Seats),
		CoffeePrice:  utils.CopyString(form.CoffeePrice),
	}, nil
}

func cafeID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid cafe ID %q", c.Params("id"))
	}
	return uint(id), nil
}

func badID(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid cafe ID",
		"error":   err.Error(),
	})
}

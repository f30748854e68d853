package handlers

import (
	"errors"

	"github.com/ArtemFray/berlin-cleanup-app/internal/dto"
	"github.com/ArtemFray/berlin-cleanup-app/internal/middleware"
	"github.com/ArtemFray/berlin-cleanup-app/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EventHandler struct {
	eventService        *services.EventService
	registrationService *services.RegistrationService
}

func NewEventHandler(eventService *services.EventService, registrationService *services.RegistrationService) *EventHandler {
	return &EventHandler{
		eventService:        eventService,
		registrationService: registrationService,
	}
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	filter := services.EventFilter{
		Status:   c.Query("status"),
		Upcoming: c.Query("upcoming") == "true",
	}

	events, err := h.eventService.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to get events",
		})
	}

	return c.JSON(fiber.Map{"events": events})
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event ID",
		})
	}

	event, err := h.eventService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to get event",
		})
	}

	return c.JSON(fiber.Map{"event": event})
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	event, err := h.eventService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) ||
			errors.Is(err, services.ErrInvalidLatitude) ||
			errors.Is(err, services.ErrInvalidLongitude) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create event",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"event": event})
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event ID",
		})
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	event, err := h.eventService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidEventStatus),
			errors.Is(err, services.ErrInvalidLatitude),
			errors.Is(err, services.ErrInvalidLongitude):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update event",
		})
	}

	return c.JSON(fiber.Map{"event": event})
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event ID",
		})
	}

	if err := h.eventService.Delete(id); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete event",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *EventHandler) Register(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event ID",
		})
	}

	registration, err := h.registrationService.Register(userID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrEventFull),
			errors.Is(err, services.ErrAlreadyRegistered):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to register for event",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"registration": registration})
}

func (h *EventHandler) Unregister(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event ID",
		})
	}

	if err := h.registrationService.Unregister(userID, eventID); err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound),
			errors.Is(err, services.ErrNotRegistered):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to unregister from event",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *EventHandler) MarkAttendance(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event ID",
		})
	}

	var req dto.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.UserID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "User ID is required",
		})
	}

	resp, err := h.registrationService.MarkAttendance(eventID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound),
			errors.Is(err, services.ErrNotRegistered):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to mark attendance",
		})
	}

	return c.JSON(resp)
}

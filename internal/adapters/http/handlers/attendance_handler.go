package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"staffclock/internal/core/domain"
	"staffclock/internal/core/services"
	"staffclock/internal/pkg/pagination"
	"staffclock/internal/pkg/response"
	"staffclock/internal/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// maxPhotoSize limits attendance photo uploads to 10 MB
const maxPhotoSize = 10 << 20

// AttendanceHandler handles attendance endpoints
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
	photoStore        *storage.PhotoStore
}

// NewAttendanceHandler creates a new attendance handler.
// photoStore may be nil when no bucket is configured; photo upload
// then responds 503.
func NewAttendanceHandler(attendanceService *services.AttendanceService, photoStore *storage.PhotoStore) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		photoStore:        photoStore,
	}
}

// ClockRequest represents clock-in/clock-out request body
type ClockRequest struct {
	PhotoURL string `json:"photo_url"`
}

// Today returns today's attendance status
// @Summary Today's attendance status
// @Description Get the current user's attendance log for today, if any
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /attendance/today [get]
func (h *AttendanceHandler) Today(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	entry, err := h.attendanceService.TodayStatus(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get attendance status")
	}

	if entry == nil {
		return response.Success(c, "No attendance log for today", fiber.Map{
			"clocked_in": false,
			"log":        nil,
		})
	}

	return response.Success(c, "Attendance status retrieved", fiber.Map{
		"clocked_in": !entry.IsClockedOut(),
		"log":        entry,
	})
}

// ClockIn opens today's attendance session
// @Summary Clock in
// @Description Open today's attendance session for the current user
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ClockRequest true "Clock-in data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /attendance/clock-in [post]
func (h *AttendanceHandler) ClockIn(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	entry, err := h.attendanceService.ClockIn(c.Context(), userID, strings.TrimSpace(req.PhotoURL))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyClockedIn):
			return response.Conflict(c, "Already clocked in today")
		case errors.Is(err, services.ErrPhotoRequired):
			return response.BadRequest(c, "A verification photo is required")
		default:
			return response.InternalServerError(c, "Failed to clock in")
		}
	}

	return response.Created(c, "Clocked in successfully", fiber.Map{
		"log": entry,
	})
}

// ClockOut closes an open attendance session
// @Summary Clock out
// @Description Close an open attendance session and record total hours
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attendance log ID"
// @Param body body ClockRequest true "Clock-out data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /attendance/{id}/clock-out [post]
func (h *AttendanceHandler) ClockOut(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	logID := c.Params("id")
	if logID == "" {
		return response.BadRequest(c, "Attendance log ID is required")
	}

	var req ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	entry, err := h.attendanceService.ClockOut(c.Context(), userID, logID, strings.TrimSpace(req.PhotoURL))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAttendanceLogNotFound):
			return response.NotFound(c, "Attendance log not found")
		case errors.Is(err, domain.ErrAlreadyClockedOut):
			return response.Conflict(c, "Already clocked out")
		case errors.Is(err, domain.ErrClockSkew):
			return response.Conflict(c, "Clock-out time is before clock-in time")
		case errors.Is(err, services.ErrPhotoRequired):
			return response.BadRequest(c, "A verification photo is required")
		default:
			return response.InternalServerError(c, "Failed to clock out")
		}
	}

	return response.Success(c, "Clocked out successfully", fiber.Map{
		"log": entry,
	})
}

// MyLogs lists the current user's attendance history
// @Summary My attendance history
// @Description List the current user's attendance logs, newest first
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /attendance/my [get]
func (h *AttendanceHandler) MyLogs(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	result, err := h.attendanceService.ListMyLogs(c.Context(), userID, &services.ListMyLogsInput{
		Page:  params.Page,
		Limit: params.Limit,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to get attendance history")
	}

	return response.Success(c, "Attendance history retrieved", result)
}

// AllLogs lists attendance logs for all employees (admin)
// @Summary All attendance logs
// @Description List attendance logs for all employees, optionally filtered by date
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /attendance/logs [get]
func (h *AttendanceHandler) AllLogs(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	date := c.Query("date")

	logs, total, err := h.attendanceService.ListAllLogs(c.Context(), date, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		}
		return response.InternalServerError(c, "Failed to get attendance logs")
	}

	return response.Success(c, "Attendance logs retrieved", pagination.NewResponse(logs, params, total))
}

// UploadPhoto uploads a verification photo and returns its URL
// @Summary Upload attendance photo
// @Description Upload a verification photo for clock-in or clock-out
// @Tags Attendance
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Photo file (JPEG or PNG)"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /attendance/photo [post]
func (h *AttendanceHandler) UploadPhoto(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if h.photoStore == nil {
		return response.ServiceUnavailable(c, "Photo storage is not configured")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return response.BadRequest(c, "Photo file is required")
	}

	if fileHeader.Size > maxPhotoSize {
		return response.BadRequest(c, "Photo must be 10MB or smaller")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !isAllowedPhoto(contentType, ext) {
		return response.BadRequest(c, "Photo must be a JPEG or PNG image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read photo")
	}
	defer file.Close()

	objectPath := fmt.Sprintf("attendance/%d/%s/%s%s",
		userID,
		time.Now().Format("2006-01-02"),
		uuid.New().String(),
		ext,
	)

	url, err := h.photoStore.Upload(c.Context(), objectPath, contentType, file)
	if err != nil {
		return response.InternalServerError(c, "Failed to upload photo")
	}

	return response.Created(c, "Photo uploaded successfully", fiber.Map{
		"photo_url": url,
	})
}

func isAllowedPhoto(contentType, ext string) bool {
	switch contentType {
	case "image/jpeg", "image/png":
	default:
		return false
	}
	switch ext {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

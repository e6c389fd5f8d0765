package handlers

import (
	"errors"
	"net/http"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/ahkili-app/backend/internal/permissions"
	"github.com/ahkili-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// VerificationHandler handles doctor verification submissions and reviews
type VerificationHandler struct {
	verificationRepository repositories.VerificationRepository
	userRepository         repositories.UserRepository
}

// NewVerificationHandler creates a new VerificationHandler
func NewVerificationHandler(
	verificationRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
) *VerificationHandler {
	return &VerificationHandler{
		verificationRepository: verificationRepo,
		userRepository:         userRepo,
	}
}

// RegisterVerificationRoutes registers verification routes
func (h *VerificationHandler) RegisterVerificationRoutes(g *echo.Group) {
	g.POST("/doctor", h.SubmitVerification)
	g.GET("/doctor/status", h.GetVerificationStatus)
	g.GET("/pending", h.GetPendingVerifications)
	g.PUT("/:id/review", h.ReviewVerification)
}

// SubmitVerification files a doctor verification request; one per user
func (h *VerificationHandler) SubmitVerification(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	var req models.SubmitVerificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.userRepository.GetUserByID(userID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if _, err := h.verificationRepository.GetByUserID(userID); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Verification already submitted")
	}

	verification := &models.DoctorVerification{
		UserID:             userID,
		FullName:           req.FullName,
		Specialization:     req.Specialization,
		LicenseNumber:      req.LicenseNumber,
		LicenseDocumentURL: req.LicenseDocumentURL,
		ClinicAddress:      req.ClinicAddress,
		PhoneNumber:        req.PhoneNumber,
		Bio:                req.Bio,
		Status:             models.VerificationPending,
	}
	if err := h.verificationRepository.CreateVerification(verification); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, verification)
}

// GetVerificationStatus returns the user's verification status
func (h *VerificationHandler) GetVerificationStatus(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	verification, err := h.verificationRepository.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"status": "not_submitted"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":           verification.Status,
		"submitted_at":     verification.SubmittedAt,
		"reviewed_at":      verification.ReviewedAt,
		"rejection_reason": verification.RejectionReason,
	})
}

// GetPendingVerifications lists pending submissions (admin only)
func (h *VerificationHandler) GetPendingVerifications(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	reviewer, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if !permissions.CanReviewVerifications(reviewer.Role) {
		return echo.NewHTTPError(http.StatusForbidden, "Only admins can review verifications")
	}

	verifications, err := h.verificationRepository.GetPending()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, verifications)
}

// ReviewVerification approves or rejects a submission (admin only).
// Approval promotes the submitter to a verified doctor.
func (h *VerificationHandler) ReviewVerification(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.ReviewVerificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reviewer, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if !permissions.CanReviewVerifications(reviewer.Role) {
		return echo.NewHTTPError(http.StatusForbidden, "Only admins can review verifications")
	}

	verification, err := h.verificationRepository.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Verification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.verificationRepository.Review(id, req.Status, req.RejectionReason); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Status == models.VerificationApproved {
		if err := h.userRepository.SetRoleAndVerified(verification.UserID, models.RoleDoctor, true); err != nil {
			c.Logger().Errorf("promoting user %d to doctor: %v", verification.UserID, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Verification " + req.Status})
}

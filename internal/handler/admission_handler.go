package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/shikkhaloy/school-backend/internal/response"
	"github.com/shikkhaloy/school-backend/internal/service"
	"github.com/shikkhaloy/school-backend/internal/validator"
)

// AdmissionHandler handles the pending-admission lifecycle.
type AdmissionHandler struct {
	admissionService *service.AdmissionService
}

// NewAdmissionHandler creates a new AdmissionHandler.
func NewAdmissionHandler(admissionService *service.AdmissionService) *AdmissionHandler {
	return &AdmissionHandler{admissionService: admissionService}
}

// Submit godoc
// POST /api/v1/pending-students
// Public admission form. Returns the insert ID and the generated 6-digit
// registration number.
func (h *AdmissionHandler) Submit(c *gin.Context) {
	var req model.AdmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	pending, err := h.admissionService.Submit(c.Request.Context(), &req)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusCreated, model.AdmissionReceipt{
		InsertedID:         pending.ID,
		RegistrationNumber: pending.RegistrationNumber,
	})
}

// List godoc
// GET /api/v1/pending-students
// Lists all pending admissions, oldest first. Admin only.
func (h *AdmissionHandler) List(c *gin.Context) {
	pendings, err := h.admissionService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pending_students": pendings})
}

// Get godoc
// GET /api/v1/pending-students/:email
// Retrieves one pending admission. Admin only.
func (h *AdmissionHandler) Get(c *gin.Context) {
	pending, err := h.admissionService.Get(c.Request.Context(), c.Param("email"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pending_student": pending})
}

// Approve godoc
// POST /api/v1/pending-students/:email/approve
// Promotes the pending admission into an enrolled student. Admin only.
func (h *AdmissionHandler) Approve(c *gin.Context) {
	student, err := h.admissionService.Approve(c.Request.Context(), c.Param("email"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"inserted_id": student.ID, "student": student})
}

// Reject godoc
// POST /api/v1/pending-students/:email/reject
// Deletes the pending admission. Admin only.
func (h *AdmissionHandler) Reject(c *gin.Context) {
	if err := h.admissionService.Reject(c.Request.Context(), c.Param("email")); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted_count": 1})
}

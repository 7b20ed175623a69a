package handlers

import (
	"net/http"

	"hirelink_backend/internal/middleware"
	"hirelink_backend/internal/models"
	"hirelink_backend/internal/services"
	"hirelink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	*BaseHandler
	interviewService services.InterviewService
}

func NewInterviewHandler(base *BaseHandler, interviewService services.InterviewService) *InterviewHandler {
	return &InterviewHandler{BaseHandler: base, interviewService: interviewService}
}

func (h *InterviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Interviews are a candidate/recruiter surface; other roles have
	// no party to act as.
	interviews := r.Group("/interviews")
	interviews.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCandidate, models.UserRoleRecruiter))
	{
		interviews.GET("", h.ListInterviews)
		interviews.GET("/:interviewId", h.GetInterview)
		interviews.PUT("/:interviewId/status", h.UpdateStatus)
	}

	recruiter := r.Group("/interviews")
	recruiter.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleRecruiter))
	{
		recruiter.POST("", h.ScheduleInterview)
	}
}

func (h *InterviewHandler) ScheduleInterview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateInterviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	interview, err := h.interviewService.ScheduleInterview(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interview)
}

func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	userID, role, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	interviews, err := h.interviewService.ListForUser(userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"interviews": interviews, "total": len(interviews)})
}

func (h *InterviewHandler) GetInterview(c *gin.Context) {
	userID, role, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	interview, err := h.interviewService.GetInterview(userID, role, c.Param("interviewId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) UpdateStatus(c *gin.Context) {
	userID, role, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateInterviewStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	interview, err := h.interviewService.UpdateStatus(userID, role, c.Param("interviewId"), models.InterviewStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

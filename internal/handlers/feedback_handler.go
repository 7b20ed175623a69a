package handlers

import (
	"net/http"

	"hirelink_backend/internal/middleware"
	"hirelink_backend/internal/models"
	"hirelink_backend/internal/services"
	"hirelink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	*BaseHandler
	feedbackService services.FeedbackService
}

func NewFeedbackHandler(base *BaseHandler, feedbackService services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{BaseHandler: base, feedbackService: feedbackService}
}

func (h *FeedbackHandler) RegisterRoutes(r *gin.RouterGroup) {
	feedback := r.Group("")
	feedback.Use(middleware.AuthMiddleware())
	{
		feedback.GET("/interviews/:interviewId/feedback", h.GetForInterview)
	}

	recruiter := r.Group("")
	recruiter.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleRecruiter))
	{
		recruiter.POST("/interviews/:interviewId/feedback", h.SubmitFeedback)
		recruiter.PUT("/feedback/:feedbackId/share", h.ShareFeedback)
	}
}

func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitFeedbackRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	feedback, err := h.feedbackService.SubmitFeedback(userID, c.Param("interviewId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

func (h *FeedbackHandler) ShareFeedback(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	feedback, err := h.feedbackService.ShareFeedback(userID, c.Param("feedbackId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}

func (h *FeedbackHandler) GetForInterview(c *gin.Context) {
	userID, role, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	feedback, err := h.feedbackService.GetForInterview(userID, role, c.Param("interviewId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}

package handlers

import (
	"fmt"

	"talenthub/internal/dto"
	"talenthub/internal/middleware"
	"talenthub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// JobHandler handles HTTP requests for job postings and applications.
type JobHandler struct {
	jobService *services.JobService
	appService *services.ApplicationService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService *services.JobService, appService *services.ApplicationService) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		appService: appService,
	}
}

// RegisterRoutes registers the job routes. The /my routes come before /:id
// so they are not captured as ids.
func (h *JobHandler) RegisterRoutes(router fiber.Router, authRequired, optionalAuth fiber.Handler) {
	jobRoutes := router.Group("/jobs")
	jobRoutes.Get("/", h.HandleSearch)
	jobRoutes.Get("/my/posted", authRequired, h.HandleListMyJobs)
	jobRoutes.Get("/my/applications", authRequired, h.HandleListMyApplications)
	jobRoutes.Get("/:id", optionalAuth, h.HandleGetJob)
	jobRoutes.Post("/", authRequired, h.HandleCreateJob)
	jobRoutes.Post("/:jobId/apply", authRequired, h.HandleApply)
	jobRoutes.Put("/:id", authRequired, h.HandleUpdateJob)
	jobRoutes.Delete("/:id", authRequired, h.HandleDeleteJob)
	jobRoutes.Put("/:jobId/applications/:applicationId/status", authRequired, h.HandleUpdateApplicationStatus)
}

// HandleSearch handles the public job search.
func (h *JobHandler) HandleSearch(c *fiber.Ctx) error {
	var req dto.JobSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return badBody(err)
	}

	res, err := h.jobService.Search(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"jobs":       res.Jobs,
		"pagination": res.Pagination,
		"filters":    res.Filters,
	})
}

func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	job, err := h.jobService.GetByID(c.UserContext(), middleware.CurrentActor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"job":     job,
	})
}

func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	job, err := h.jobService.Create(c.UserContext(), middleware.CurrentActor(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Job created successfully",
		"job":     job,
	})
}

func (h *JobHandler) HandleUpdateJob(c *fiber.Ctx) error {
	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	job, err := h.jobService.Update(c.UserContext(), middleware.CurrentActor(c), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Job updated successfully",
		"job":     job,
	})
}

// HandleDeleteJob soft-deletes a posting.
func (h *JobHandler) HandleDeleteJob(c *fiber.Ctx) error {
	if err := h.jobService.SoftDelete(c.UserContext(), middleware.CurrentActor(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Job deleted successfully",
	})
}

func (h *JobHandler) HandleListMyJobs(c *fiber.Ctx) error {
	res, err := h.jobService.ListMine(c.UserContext(), middleware.CurrentActor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"jobs":      res.Jobs,
		"totalJobs": res.TotalJobs,
	})
}

func (h *JobHandler) HandleApply(c *fiber.Ctx) error {
	var req dto.ApplyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(err)
		}
	}

	receipt, err := h.appService.Submit(c.UserContext(), middleware.CurrentActor(c), c.Params("jobId"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Application submitted successfully",
		"application": receipt,
	})
}

func (h *JobHandler) HandleListMyApplications(c *fiber.Ctx) error {
	res, err := h.appService.ListMine(c.UserContext(), middleware.CurrentActor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":           true,
		"applications":      res.Applications,
		"totalApplications": res.TotalApplications,
		"statusBreakdown":   res.StatusBreakdown,
	})
}

func (h *JobHandler) HandleUpdateApplicationStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	res, err := h.appService.UpdateStatus(c.UserContext(), middleware.CurrentActor(c),
		c.Params("jobId"), c.Params("applicationId"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"message":     fmt.Sprintf("Application status updated to %s", res.Status),
		"application": res,
	})
}

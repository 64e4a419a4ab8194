package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talentsift/cv-matcher/internal/models"
	"talentsift/cv-matcher/internal/repositories"
)

type JobHandler struct {
	jobRepo repositories.JobRepository
}

func NewJobHandler(jobRepo repositories.JobRepository) *JobHandler {
	return &JobHandler{jobRepo: jobRepo}
}

// HandleList lists postings, optionally filtered with ?q= on code or title.
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.FindAll(strings.TrimSpace(c.Query("q")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"total": len(jobs),
		"jobs":  jobs,
	})
}

// HandleGet returns a single posting.
func (h *JobHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job id",
		})
	}

	job, err := h.jobRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "job not found",
		})
	}

	return c.JSON(fiber.Map{"job": job})
}

// HandleCreate stores a posting with a generated, immutable code.
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	code, err := h.nextJobCode(req.Title)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	job := &models.Job{
		Code:               code,
		Title:              req.Title,
		Level:              normalizeJobLevel(req.Level),
		Type:               strings.TrimSpace(req.Type),
		SkillsRequired:     req.SkillsRequired,
		ExperienceRequired: req.ExperienceRequired,
		EducationRequired:  req.EducationRequired,
		Description:        req.Description,
		IsActive:           true,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"job": job})
}

// HandleUpdate edits a posting. The code never changes.
func (h *JobHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job id",
		})
	}

	job, err := h.jobRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "job not found",
		})
	}

	var req models.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		job.Title = title
	}
	if req.Level != "" {
		job.Level = normalizeJobLevel(req.Level)
	}
	if req.Type != "" {
		job.Type = strings.TrimSpace(req.Type)
	}
	if req.SkillsRequired != "" {
		job.SkillsRequired = req.SkillsRequired
	}
	if req.ExperienceRequired != "" {
		job.ExperienceRequired = req.ExperienceRequired
	}
	if req.EducationRequired != "" {
		job.EducationRequired = req.EducationRequired
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}
	job.UpdatedAt = time.Now()

	if err := h.jobRepo.Update(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"job": job})
}

// HandleDelete removes a posting.
func (h *JobHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job id",
		})
	}

	if err := h.jobRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "job not found",
		})
	}

	return c.JSON(fiber.Map{"message": "job deleted"})
}

var bannedCodePrefixes = map[string]bool{
	"SEX": true,
	"XXX": true,
	"ASS": true,
	"FCK": true,
}

// nextJobCode produces "JD-<prefix>-NNN" where the prefix comes from the
// title's word initials and NNN continues the highest existing number.
func (h *JobHandler) nextJobCode(title string) (string, error) {
	prefix := codePrefixFromTitle(title)
	base := fmt.Sprintf("JD-%s-", prefix)

	last, err := h.jobRepo.LastCodeWithPrefix(base)
	if err != nil {
		return "", fmt.Errorf("failed to generate job code: %w", err)
	}

	next := 1
	if last != "" {
		if n, err := strconv.Atoi(last[len(base):]); err == nil {
			next = n + 1
		}
	}

	return fmt.Sprintf("%s%03d", base, next), nil
}

// codePrefixFromTitle takes the first letter of up to three title words,
// keeping A-Z only. Empty or blocklisted initials fall back to "JOB".
func codePrefixFromTitle(title string) string {
	var initials []rune
	for _, word := range strings.Fields(title) {
		r := unicode.ToUpper(rune(word[0]))
		if r < 'A' || r > 'Z' {
			continue
		}
		initials = append(initials, r)
		if len(initials) == 3 {
			break
		}
	}

	prefix := string(initials)
	if prefix == "" || bannedCodePrefixes[prefix] {
		return "JOB"
	}
	return prefix
}

// normalizeJobLevel folds free-form level inputs onto the closed enum.
func normalizeJobLevel(level string) models.JobLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "intern", "internship", "thực tập":
		return models.LevelIntern
	case "fresher", "junior":
		return models.LevelJunior
	case "middle", "mid":
		return models.LevelMiddle
	case "senior":
		return models.LevelSenior
	case "manager", "lead", "leader":
		return models.LevelManager
	}
	return models.LevelNone
}

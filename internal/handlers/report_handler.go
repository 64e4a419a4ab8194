package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"

	"talentsift/cv-matcher/internal/models"
	"talentsift/cv-matcher/internal/repositories"
)

type ReportHandler struct {
	candidateRepo repositories.CandidateRepository
}

func NewReportHandler(candidateRepo repositories.CandidateRepository) *ReportHandler {
	return &ReportHandler{candidateRepo: candidateRepo}
}

// HandleSummary aggregates every candidate's best-match label into totals
// and percentages. Candidates without any match count as NotFit.
func (h *ReportHandler) HandleSummary(c *fiber.Ctx) error {
	candidates, err := h.candidateRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	summary := models.ReportSummary{TotalCV: len(candidates)}

	for _, candidate := range candidates {
		label := models.LabelNotFit
		if best := bestMatchOf(candidate.MatchResult.Data()); best != nil {
			label = best.Label
		}

		switch label {
		case models.LabelSuitable:
			summary.Suitable++
		case models.LabelPotential:
			summary.Potential++
		default:
			summary.NotFit++
		}
	}

	if summary.TotalCV > 0 {
		summary.SuitablePercent = percentOf(summary.Suitable, summary.TotalCV)
		summary.PotentialPercent = percentOf(summary.Potential, summary.TotalCV)
		summary.NotFitPercent = percentOf(summary.NotFit, summary.TotalCV)
	}

	return c.JSON(summary)
}

// percentOf rounds to two decimal places.
func percentOf(n, total int) float64 {
	return math.Round(float64(n)*10000/float64(total)) / 100
}

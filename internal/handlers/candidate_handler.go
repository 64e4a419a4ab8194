package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talentsift/cv-matcher/internal/models"
	"talentsift/cv-matcher/internal/repositories"
	"talentsift/cv-matcher/internal/services"
)

type CandidateHandler struct {
	candidateRepo repositories.CandidateRepository
	cvFileRepo    repositories.CVFileRepository
	historyRepo   repositories.MatchHistoryRepository
	gemini        services.GeminiService
	profileIndex  services.ProfileIndexService
}

func NewCandidateHandler(
	candidateRepo repositories.CandidateRepository,
	cvFileRepo repositories.CVFileRepository,
	historyRepo repositories.MatchHistoryRepository,
	gemini services.GeminiService,
	profileIndex services.ProfileIndexService,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo: candidateRepo,
		cvFileRepo:    cvFileRepo,
		historyRepo:   historyRepo,
		gemini:        gemini,
		profileIndex:  profileIndex,
	}
}

// HandleList serves the candidates table: one row per candidate with the
// best match folded in.
func (h *CandidateHandler) HandleList(c *fiber.Ctx) error {
	candidates, err := h.candidateRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	rows := make([]models.CandidateRow, 0, len(candidates))
	for _, candidate := range candidates {
		row := models.CandidateRow{
			CandidateID: candidate.ID.String(),
			FullName:    candidate.FullName,
			Email:       candidate.Email,
			Status:      models.LabelNotFit,
			CreatedAt:   candidate.CreatedAt,
		}

		if best := bestMatchOf(candidate.MatchResult.Data()); best != nil {
			row.BestJobID = best.JobID
			row.BestJob = best.JobTitle
			row.MatchScore = best.Score
			row.Status = best.Label
		}

		rows = append(rows, row)
	}

	return c.JSON(fiber.Map{
		"total":      len(rows),
		"candidates": rows,
	})
}

// HandleGet returns one candidate with its stored match result and source
// file metadata. Raw extracted text is withheld unless ?debug=1.
func (h *CandidateHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate id",
		})
	}

	candidate, err := h.candidateRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "candidate not found",
		})
	}

	if c.Query("debug") != "1" {
		candidate.RawText = ""
	}

	response := fiber.Map{"candidate": candidate}

	if candidate.CVFileID != uuid.Nil {
		if cvFile, err := h.cvFileRepo.FindByID(candidate.CVFileID); err == nil {
			response["cv_file"] = cvFile
		}
	}

	return c.JSON(response)
}

// HandleHistory lists every stored scoring row for a candidate, newest first.
func (h *CandidateHandler) HandleHistory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate id",
		})
	}

	records, err := h.historyRepo.FindByCandidate(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"total":   len(records),
		"history": records,
	})
}

// HandleSimilar embeds the candidate's CV text and returns the nearest
// profiles from the vector index.
func (h *CandidateHandler) HandleSimilar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate id",
		})
	}

	candidate, err := h.candidateRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "candidate not found",
		})
	}

	if candidate.RawText == "" {
		return c.JSON(fiber.Map{"total": 0, "similar": []models.SimilarCandidate{}})
	}

	limit := 5
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 20 {
		limit = v
	}

	embedding, err := h.gemini.GenerateEmbedding(c.UserContext(), candidate.RawText)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to embed candidate profile",
		})
	}

	hits, err := h.profileIndex.SearchSimilar(c.UserContext(), embedding, candidate.ID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to search similar profiles",
		})
	}

	similar := make([]models.SimilarCandidate, 0, len(hits))
	for _, hit := range hits {
		similar = append(similar, models.SimilarCandidate{
			CandidateID: hit.CandidateID,
			FullName:    hit.FullName,
			Score:       hit.Score,
		})
	}

	return c.JSON(fiber.Map{
		"total":   len(similar),
		"similar": similar,
	})
}

// HandleDelete removes a candidate together with its history rows and
// vector index entry. Cleanup of the side stores is best effort.
func (h *CandidateHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate id",
		})
	}

	if err := h.candidateRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "candidate not found",
		})
	}

	if err := h.historyRepo.DeleteByCandidate(id); err != nil {
		log.Printf("⚠️ Failed to delete match history for %s: %v\n", id, err)
	}

	if err := h.profileIndex.DeleteProfile(c.UserContext(), id); err != nil {
		log.Printf("⚠️ Failed to remove candidate from profile index: %v\n", err)
	}

	return c.JSON(fiber.Map{"message": "candidate deleted"})
}

// bestMatchOf picks the declared best match when it still resolves, otherwise
// the highest scoring entry. Nil when there are no matches at all.
func bestMatchOf(result *models.MatchResult) *models.JobMatch {
	if result == nil || len(result.Matches) == 0 {
		return nil
	}

	if result.BestJobID != nil {
		for i := range result.Matches {
			if result.Matches[i].JobID == *result.BestJobID {
				return &result.Matches[i]
			}
		}
	}

	best := &result.Matches[0]
	for i := range result.Matches {
		if result.Matches[i].Score > best.Score {
			best = &result.Matches[i]
		}
	}
	return best
}

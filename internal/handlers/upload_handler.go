package handlers

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"talentsift/cv-matcher/internal/models"
	"talentsift/cv-matcher/internal/repositories"
	"talentsift/cv-matcher/internal/services"
)

type UploadHandler struct {
	cvFileRepo    repositories.CVFileRepository
	candidateRepo repositories.CandidateRepository
	storage       services.StorageService
	extractor     services.TextExtractorService
	parser        services.CVParserService
	matcher       services.MatcherService
	gemini        services.GeminiService
	profileIndex  services.ProfileIndexService
	maxFileSize   int64
}

func NewUploadHandler(
	cvFileRepo repositories.CVFileRepository,
	candidateRepo repositories.CandidateRepository,
	storage services.StorageService,
	extractor services.TextExtractorService,
	parser services.CVParserService,
	matcher services.MatcherService,
	gemini services.GeminiService,
	profileIndex services.ProfileIndexService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		cvFileRepo:    cvFileRepo,
		candidateRepo: candidateRepo,
		storage:       storage,
		extractor:     extractor,
		parser:        parser,
		matcher:       matcher,
		gemini:        gemini,
		profileIndex:  profileIndex,
		maxFileSize:   maxFileSize,
	}
}

// HandleUpload processes a single CV (multipart field "cv") through the full
// pipeline: store, extract, parse, score, persist.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No CV file uploaded. Please upload a 'cv' file.",
		})
	}

	response, err := h.processFile(c.UserContext(), file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// HandleUploadBatch processes multiple CVs (multipart field "cvs"),
// accounting success and failure per file.
func (h *UploadHandler) HandleUploadBatch(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["cvs"]
	if len(files) == 0 {
		files = form.File["cv"]
	}
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No CV files uploaded. Please upload 'cvs' files.",
		})
	}

	response := models.BatchUploadResponse{
		Total:   len(files),
		Results: make([]models.BatchUploadItem, 0, len(files)),
	}

	for _, file := range files {
		item := models.BatchUploadItem{FileName: file.Filename}

		processed, err := h.processFile(c.UserContext(), file)
		if err != nil {
			log.Printf("❌ Batch upload failed for %s: %v\n", file.Filename, err)
			item.Message = err.Error()
			response.Failed++
		} else {
			item.OK = true
			item.CVFile = processed.CVFile
			item.Candidate = processed.Candidate
			item.MatchResult = processed.MatchResult
			response.Success++
		}

		response.Results = append(response.Results, item)
	}

	return c.JSON(response)
}

func (h *UploadHandler) processFile(ctx context.Context, file *multipart.FileHeader) (*models.UploadMatchResponse, error) {
	if file.Size > h.maxFileSize {
		return nil, fmt.Errorf("file too large. Max size: %d bytes", h.maxFileSize)
	}

	filename, filePath, err := h.storage.SaveFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	cvFile := &models.CVFile{
		Filename:     filename,
		OriginalName: file.Filename,
		MimeType:     file.Header.Get("Content-Type"),
		Size:         file.Size,
		FilePath:     filePath,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.cvFileRepo.Create(cvFile); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storage.DeleteFile(filename)
		return nil, fmt.Errorf("failed to save cv file record: %w", err)
	}

	rawText, err := h.extractor.ExtractText(filePath, cvFile.MimeType)
	if err != nil {
		// No candidate ever came out of this upload, so drop the stored
		// file and its record instead of leaving them orphaned.
		h.storage.DeleteFile(filename)
		h.cvFileRepo.Delete(cvFile.ID)
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	profile := h.parser.ParseProfile(rawText)

	candidate := &models.Candidate{
		FullName:       profile.FullName,
		Email:          profile.Email,
		Phone:          profile.Phone,
		Skills:         profile.Skills,
		Languages:      profile.Languages,
		ExperienceText: profile.ExperienceText,
		EducationText:  profile.EducationText,
		RawText:        rawText,
		CVFileID:       cvFile.ID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.candidateRepo.Create(candidate); err != nil {
		return nil, fmt.Errorf("failed to save candidate: %w", err)
	}

	result, err := h.matcher.MatchCandidateToJobs(ctx, candidate, rawText, cvFile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to match candidate: %w", err)
	}

	if result != nil {
		if err := h.candidateRepo.UpdateMatchResult(candidate.ID, result); err != nil {
			return nil, fmt.Errorf("failed to store match result: %w", err)
		}
		candidate.MatchResult = datatypes.NewJSONType(result)
	}

	// Best effort: the similarity index must never fail an upload.
	h.indexProfile(ctx, candidate)

	// Keep the response light
	candidate.RawText = ""

	return &models.UploadMatchResponse{
		CVFile:      cvFile,
		Candidate:   candidate,
		MatchResult: result,
	}, nil
}

func (h *UploadHandler) indexProfile(ctx context.Context, candidate *models.Candidate) {
	embedding, err := h.gemini.GenerateEmbedding(ctx, candidate.RawText)
	if err != nil {
		log.Printf("⚠️ Failed to embed candidate profile: %v\n", err)
		return
	}

	if err := h.profileIndex.UpsertProfile(ctx, candidate.ID, candidate.FullName, embedding); err != nil {
		log.Printf("⚠️ Failed to index candidate profile: %v\n", err)
	}
}

package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// ProfileIndexService keeps one embedding per candidate profile in Qdrant
// and serves nearest-neighbour lookups for the similar-candidates view.
type ProfileIndexService interface {
	InitCollection() error
	UpsertProfile(ctx context.Context, candidateID uuid.UUID, fullName string, embedding []float32) error
	SearchSimilar(ctx context.Context, embedding []float32, excludeCandidateID uuid.UUID, limit int) ([]ProfileHit, error)
	DeleteProfile(ctx context.Context, candidateID uuid.UUID) error
}

type ProfileHit struct {
	CandidateID string
	FullName    string
	Score       float32
}

type profileIndexService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewProfileIndexService(urlStr, apiKey, collectionName string) (ProfileIndexService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &profileIndexService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements ProfileIndexService.
func (q *profileIndexService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Profile collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertProfile implements ProfileIndexService. One point per candidate,
// keyed by the candidate id so re-uploads overwrite the previous vector.
func (q *profileIndexService) UpsertProfile(ctx context.Context, candidateID uuid.UUID, fullName string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(candidateID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"candidate_id": candidateID.String(),
			"full_name":    fullName,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert profile point: %w", err)
	}

	return nil
}

// SearchSimilar implements ProfileIndexService.
func (q *profileIndexService) SearchSimilar(ctx context.Context, embedding []float32, excludeCandidateID uuid.UUID, limit int) ([]ProfileHit, error) {
	var filter *qdrant.Filter
	if excludeCandidateID != uuid.Nil {
		filter = &qdrant.Filter{
			MustNot: []*qdrant.Condition{
				qdrant.NewMatch("candidate_id", excludeCandidateID.String()),
			},
		}
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}

	var hits []ProfileHit
	for _, point := range searchResult {
		hit := ProfileHit{Score: point.Score}

		if id, ok := point.Payload["candidate_id"]; ok {
			if val, ok := id.GetKind().(*qdrant.Value_StringValue); ok {
				hit.CandidateID = val.StringValue
			}
		}

		if name, ok := point.Payload["full_name"]; ok {
			if val, ok := name.GetKind().(*qdrant.Value_StringValue); ok {
				hit.FullName = val.StringValue
			}
		}

		hits = append(hits, hit)
	}

	return hits, nil
}

// DeleteProfile implements ProfileIndexService.
func (q *profileIndexService) DeleteProfile(ctx context.Context, candidateID uuid.UUID) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points:         qdrant.NewPointsSelector(qdrant.NewIDUUID(candidateID.String())),
	})

	if err != nil {
		return fmt.Errorf("failed to delete profile point: %w", err)
	}

	return nil
}

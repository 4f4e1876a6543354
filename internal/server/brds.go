package server

import (
	"context"
	"fmt"
	"time"

	"github.com/chaitenyachand/ProjectIQ/internal/events"
	"github.com/chaitenyachand/ProjectIQ/internal/extract"
	"github.com/chaitenyachand/ProjectIQ/internal/idgen"
	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

// createBRDInput holds parameters for creating a BRD.
type createBRDInput struct {
	ProjectID string            `json:"project_id"`
	Title     string            `json:"title"`
	Sources   []model.RawSource `json:"sources"`
	CreatedBy string            `json:"created_by"`
}

// createBRD validates input, persists a new draft BRD, and publishes a
// BRDCreated event. Returns inputError for validation failures.
func (s *Server) createBRD(ctx context.Context, in createBRDInput) (*model.BRD, error) {
	if in.Title == "" {
		return nil, inputError("title is required")
	}
	for i, src := range in.Sources {
		if src.Type == "" {
			return nil, inputError(fmt.Sprintf("sources[%d]: type is required", i))
		}
	}

	id, err := idgen.NewBRDID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	now := time.Now().UTC()
	brd := &model.BRD{
		ID:         id,
		ProjectID:  in.ProjectID,
		Title:      in.Title,
		Status:     model.BRDStatusDraft,
		RawSources: in.Sources,
		CreatedAt:  now,
		CreatedBy:  in.CreatedBy,
		UpdatedAt:  now,
	}

	if err := s.store.CreateBRD(ctx, brd); err != nil {
		return nil, fmt.Errorf("failed to create brd: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicBRDCreated, brd.ID, brd.CreatedBy, events.BRDCreated{BRD: brd})

	return brd, nil
}

// updateBRDInput holds parameters for updating a BRD. Nil pointers mean
// "leave unchanged".
type updateBRDInput struct {
	ProjectID *string            `json:"project_id,omitempty"`
	Title     *string            `json:"title,omitempty"`
	Status    *string            `json:"status,omitempty"`
	Sources   *[]model.RawSource `json:"sources,omitempty"`
	Actor     string             `json:"actor,omitempty"`
}

// updateBRD applies a partial update, persists it, and publishes a BRDUpdated
// event carrying the changed fields.
func (s *Server) updateBRD(ctx context.Context, id string, in updateBRDInput) (*model.BRD, error) {
	brd, err := s.store.GetBRD(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]any)

	if in.Title != nil {
		if *in.Title == "" {
			return nil, inputError("title cannot be empty")
		}
		brd.Title = *in.Title
		changes["title"] = *in.Title
	}
	if in.ProjectID != nil {
		brd.ProjectID = *in.ProjectID
		changes["project_id"] = *in.ProjectID
	}
	if in.Status != nil {
		status := model.BRDStatus(*in.Status)
		if !status.IsValid() {
			return nil, inputError("invalid status " + *in.Status)
		}
		brd.Status = status
		changes["status"] = *in.Status
	}
	if in.Sources != nil {
		for i, src := range *in.Sources {
			if src.Type == "" {
				return nil, inputError(fmt.Sprintf("sources[%d]: type is required", i))
			}
		}
		brd.RawSources = *in.Sources
		changes["sources"] = len(*in.Sources)
	}

	if len(changes) == 0 {
		return brd, nil
	}

	if err := s.store.UpdateBRD(ctx, brd); err != nil {
		return nil, fmt.Errorf("failed to update brd: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicBRDUpdated, brd.ID, in.Actor, events.BRDUpdated{BRD: brd, Changes: changes})

	return brd, nil
}

// extractBRD runs the extraction service over a BRD's raw sources, verifies
// citations, and persists the populated sections. On extraction failure the
// BRD is marked failed.
func (s *Server) extractBRD(ctx context.Context, id, projectContext, actor string) (*model.BRD, error) {
	brd, err := s.store.GetBRD(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(brd.RawSources) == 0 {
		return nil, inputError("brd has no sources to extract from")
	}

	brd.Status = model.BRDStatusGenerating
	if err := s.store.UpdateBRD(ctx, brd); err != nil {
		return nil, fmt.Errorf("failed to mark brd generating: %w", err)
	}

	result, err := s.extractor.Extract(ctx, &extract.Request{
		Sources:        brd.RawSources,
		ProjectContext: projectContext,
	})
	if err != nil {
		brd.Status = model.BRDStatusFailed
		if uerr := s.store.UpdateBRD(ctx, brd); uerr != nil {
			return nil, fmt.Errorf("failed to mark brd failed after extraction error %v: %w", err, uerr)
		}
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	brd.ExecutiveSummary = result.ExecutiveSummary
	brd.BusinessObjectives = result.BusinessObjectives
	brd.FunctionalRequirements = result.FunctionalRequirements
	brd.NonFunctionalRequirements = result.NonFunctionalRequirements

	unverified := extract.VerifyCitations(brd)
	brd.Status = model.BRDStatusReady

	if err := s.store.UpdateBRD(ctx, brd); err != nil {
		return nil, fmt.Errorf("failed to save extracted brd: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicBRDExtracted, brd.ID, actor, events.BRDExtracted{
		BRD:                 brd,
		ObjectiveCount:      len(brd.BusinessObjectives),
		RequirementCount:    len(brd.FunctionalRequirements) + len(brd.NonFunctionalRequirements),
		UnverifiedCitations: unverified,
	})

	return brd, nil
}

package server

import (
	"context"
	"fmt"
	"time"

	"github.com/chaitenyachand/ProjectIQ/internal/events"
	"github.com/chaitenyachand/ProjectIQ/internal/idgen"
	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

// createTaskInput holds parameters for creating a task.
type createTaskInput struct {
	BRDID         string  `json:"brd_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Priority      string  `json:"priority"`
	RequirementID string  `json:"requirement_id"`
	EstimateHours float64 `json:"estimate_hours"`
	Assignee      string  `json:"assignee"`
	CreatedBy     string  `json:"created_by"`
}

// createTask validates input, persists a new task, and publishes a
// TaskCreated event. The referenced BRD must exist; the requirement
// reference is free text and is not validated here.
func (s *Server) createTask(ctx context.Context, in createTaskInput) (*model.Task, error) {
	if in.BRDID == "" {
		return nil, inputError("brd_id is required")
	}
	if in.Title == "" {
		return nil, inputError("title is required")
	}
	if in.EstimateHours < 0 {
		return nil, inputError("estimate_hours cannot be negative")
	}

	if _, err := s.store.GetBRD(ctx, in.BRDID); err != nil {
		return nil, err
	}

	id, err := idgen.NewTaskID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	now := time.Now().UTC()
	task := &model.Task{
		ID:            id,
		BRDID:         in.BRDID,
		Title:         in.Title,
		Description:   in.Description,
		Status:        model.TaskStatusTodo,
		Priority:      model.Priority(in.Priority),
		RequirementID: in.RequirementID,
		EstimateHours: in.EstimateHours,
		Assignee:      in.Assignee,
		CreatedAt:     now,
		CreatedBy:     in.CreatedBy,
		UpdatedAt:     now,
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicTaskCreated, task.BRDID, task.CreatedBy, events.TaskCreated{Task: task})

	return task, nil
}

// updateTaskInput holds parameters for updating a task. Nil pointers mean
// "leave unchanged".
type updateTaskInput struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Priority      *string  `json:"priority,omitempty"`
	RequirementID *string  `json:"requirement_id,omitempty"`
	EstimateHours *float64 `json:"estimate_hours,omitempty"`
	Assignee      *string  `json:"assignee,omitempty"`
	Actor         string   `json:"actor,omitempty"`
}

// updateTask applies a partial update, persists it, and publishes a
// TaskUpdated event. Moving a task to done stamps CompletedAt; moving it
// back clears it.
func (s *Server) updateTask(ctx context.Context, id string, in updateTaskInput) (*model.Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]any)

	if in.Title != nil {
		if *in.Title == "" {
			return nil, inputError("title cannot be empty")
		}
		task.Title = *in.Title
		changes["title"] = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
		changes["description"] = *in.Description
	}
	if in.Status != nil {
		status := model.TaskStatus(*in.Status)
		if !status.IsValid() {
			return nil, inputError("invalid status " + *in.Status)
		}
		if status == model.TaskStatusDone && task.Status != model.TaskStatusDone {
			now := time.Now().UTC()
			task.CompletedAt = &now
		}
		if status != model.TaskStatusDone {
			task.CompletedAt = nil
		}
		task.Status = status
		changes["status"] = *in.Status
	}
	if in.Priority != nil {
		task.Priority = model.Priority(*in.Priority)
		changes["priority"] = *in.Priority
	}
	if in.RequirementID != nil {
		task.RequirementID = *in.RequirementID
		changes["requirement_id"] = *in.RequirementID
	}
	if in.EstimateHours != nil {
		if *in.EstimateHours < 0 {
			return nil, inputError("estimate_hours cannot be negative")
		}
		task.EstimateHours = *in.EstimateHours
		changes["estimate_hours"] = *in.EstimateHours
	}
	if in.Assignee != nil {
		task.Assignee = *in.Assignee
		changes["assignee"] = *in.Assignee
	}

	if len(changes) == 0 {
		return task, nil
	}

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicTaskUpdated, task.BRDID, in.Actor, events.TaskUpdated{Task: task, Changes: changes})

	return task, nil
}

package repairs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"roadwatch/pothole-portal/pothole-portal-backend/pkg/workflows"
)

// Service provides business logic for repair requests
type Service struct {
	repo   Repository
	sm     *workflows.StateMachine
	logger *zap.Logger
}

// NewService creates a new repairs service
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		sm:     workflows.NewRepairStateMachine(),
		logger: logger,
	}
}

// SubmitRequest is the one-click submission flow: a new request enters
// the workflow in the SUBMITTED state.
type SubmitRequest struct {
	ImageID     *uuid.UUID `json:"image_id,omitempty"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	ContactName string     `json:"contact_name"`
}

// Submit creates a repair request.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Request, error) {
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	request := &Request{
		ImageID:     req.ImageID,
		Location:    req.Location,
		Description: req.Description,
		Priority:    priority,
		Status:      StatusSubmitted,
		ContactName: req.ContactName,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("Repair request submitted",
		zap.String("request_id", request.ID.String()),
		zap.String("priority", request.Priority))
	return request, nil
}

// Transition moves a request to a new status, enforcing the workflow.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, status, note string) (*Request, error) {
	request, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.sm.CanTransition(request.Status, status) {
		return nil, fmt.Errorf("cannot transition repair request from %s to %s (allowed: %v)",
			request.Status, status, s.sm.GetAllowedTransitions(request.Status))
	}

	request.Status = status
	history := &StatusHistory{
		RequestID: request.ID,
		Status:    status,
		Note:      note,
	}
	if err := s.repo.UpdateStatus(ctx, request, history); err != nil {
		return nil, err
	}

	s.logger.Info("Repair request status changed",
		zap.String("request_id", request.ID.String()),
		zap.String("status", status))
	return request, nil
}

// List returns repair requests, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]Request, error) {
	return s.repo.List(ctx, status)
}

// Get returns a request with its status history.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Request, []StatusHistory, error) {
	request, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.repo.History(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return request, history, nil
}

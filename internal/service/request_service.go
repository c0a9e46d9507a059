package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aidfind/internal/errors"
	"aidfind/internal/model"
	"aidfind/internal/repository"
)

const (
	pendingCacheKey = "requests:pending"
	pendingCacheTTL = 30 * time.Second
)

// RequestService owns the aid request lifecycle: creation and the status
// state machine with its role and ownership rules.
type RequestService interface {
	Create(ctx context.Context, requesterID uuid.UUID, aidType, details, location string) (*model.AidRequest, error)
	ListPending(ctx context.Context) ([]model.AidRequest, error)
	ListMine(ctx context.Context, requesterID uuid.UUID) ([]model.AidRequest, error)
	ListEngaged(ctx context.Context, donorID uuid.UUID) ([]model.AidRequest, error)
	UpdateStatus(ctx context.Context, callerID uuid.UUID, callerRole model.Role, id uuid.UUID, target string) (*model.AidRequest, error)
}

type requestService struct {
	requestRepo repository.AidRequestRepository
	cache       Cache
}

// NewRequestService creates a new request service.
func NewRequestService(requestRepo repository.AidRequestRepository, cache Cache) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		cache:       cache,
	}
}

// pendingCacheEntry pairs a request with its requester for the cache. The
// relation is hidden from the model's JSON, so caching the raw model would
// drop the requester on every warm hit.
type pendingCacheEntry struct {
	Request   model.AidRequest `json:"request"`
	Requester *model.User      `json:"requester,omitempty"`
}

// Create opens a new aid request in the Pending state.
func (s *requestService) Create(ctx context.Context, requesterID uuid.UUID, aidType, details, location string) (*model.AidRequest, error) {
	parsedType, ok := model.ParseAidType(aidType)
	if !ok {
		return nil, errors.ErrInvalidAidType
	}

	request := &model.AidRequest{
		RequestedByID: requesterID,
		AidType:       parsedType,
		Details:       details,
		Location:      location,
		Status:        model.StatusPending,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	_ = s.cache.Delete(ctx, pendingCacheKey)
	return request, nil
}

// ListPending returns all pending requests with their requester attached.
// The listing is public and hot, so it is served from cache when possible.
func (s *requestService) ListPending(ctx context.Context) ([]model.AidRequest, error) {
	if data, _ := s.cache.Get(ctx, pendingCacheKey); data != nil {
		var entries []pendingCacheEntry
		if err := json.Unmarshal(data, &entries); err == nil {
			cached := make([]model.AidRequest, 0, len(entries))
			for _, entry := range entries {
				entry.Request.RequestedBy = entry.Requester
				cached = append(cached, entry.Request)
			}
			return cached, nil
		}
	}

	requests, err := s.requestRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}

	entries := make([]pendingCacheEntry, 0, len(requests))
	for i := range requests {
		entries = append(entries, pendingCacheEntry{
			Request:   requests[i],
			Requester: requests[i].RequestedBy,
		})
	}
	if payload, err := json.Marshal(entries); err == nil {
		_ = s.cache.Set(ctx, pendingCacheKey, payload, pendingCacheTTL)
	}

	return requests, nil
}

// ListMine returns the caller's own requests with any engaged donor attached.
func (s *requestService) ListMine(ctx context.Context, requesterID uuid.UUID) ([]model.AidRequest, error) {
	requests, err := s.requestRepo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list own requests: %w", err)
	}
	return requests, nil
}

// ListEngaged returns the requests a donor has accepted, requester attached.
func (s *requestService) ListEngaged(ctx context.Context, donorID uuid.UUID) ([]model.AidRequest, error) {
	requests, err := s.requestRepo.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("list engaged requests: %w", err)
	}
	return requests, nil
}

// UpdateStatus applies one transition of the request state machine:
//
//	In Progress: a Donor accepting a Pending request; binds the donor
//	Fulfilled:   the requester closing an In Progress request
//	Cancelled:   the requester withdrawing a Pending or In Progress request
//
// Any other combination of caller role, current status, and target is
// rejected. Transitions are written conditionally, so a caller that passed
// the checks but lost a concurrent race gets ErrRequestConflict instead of
// silently overwriting the winner.
func (s *requestService) UpdateStatus(ctx context.Context, callerID uuid.UUID, callerRole model.Role, id uuid.UUID, target string) (*model.AidRequest, error) {
	status, ok := model.ParseRequestStatus(target)
	if !ok || status == model.StatusPending {
		// There is no transition back to Pending.
		return nil, errors.ErrInvalidStatus
	}

	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}

	var applied bool
	switch status {
	case model.StatusInProgress:
		if callerRole != model.RoleDonor || request.Status != model.StatusPending {
			return nil, errors.ErrForbidden
		}
		applied, err = s.requestRepo.Engage(ctx, id, callerID)

	case model.StatusFulfilled:
		if request.RequestedByID != callerID || request.Status != model.StatusInProgress {
			return nil, errors.ErrForbidden
		}
		applied, err = s.requestRepo.TransitionStatus(ctx, id,
			[]model.RequestStatus{model.StatusInProgress}, model.StatusFulfilled)

	case model.StatusCancelled:
		if request.RequestedByID != callerID || request.Status.Terminal() {
			return nil, errors.ErrForbidden
		}
		applied, err = s.requestRepo.TransitionStatus(ctx, id,
			[]model.RequestStatus{model.StatusPending, model.StatusInProgress}, model.StatusCancelled)

	default:
		return nil, errors.ErrInvalidStatus
	}

	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if !applied {
		return nil, errors.ErrRequestConflict
	}

	_ = s.cache.Delete(ctx, pendingCacheKey)

	updated, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload request: %w", err)
	}
	return updated, nil
}

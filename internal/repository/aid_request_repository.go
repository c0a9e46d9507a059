package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aidfind/internal/model"
)

// AidRequestRepository defines aid request persistence operations.
type AidRequestRepository interface {
	Create(ctx context.Context, request *model.AidRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AidRequest, error)
	ListPending(ctx context.Context) ([]model.AidRequest, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]model.AidRequest, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]model.AidRequest, error)
	ListAll(ctx context.Context) ([]model.AidRequest, error)
	Engage(ctx context.Context, id, donorID uuid.UUID) (bool, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from []model.RequestStatus, to model.RequestStatus) (bool, error)
}

type aidRequestRepository struct {
	db *gorm.DB
}

// NewAidRequestRepository creates a new aid request repository.
func NewAidRequestRepository(db *gorm.DB) AidRequestRepository {
	return &aidRequestRepository{db: db}
}

// Create inserts a new aid request.
func (r *aidRequestRepository) Create(ctx context.Context, request *model.AidRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// FindByID finds an aid request by ID.
func (r *aidRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AidRequest, error) {
	var request model.AidRequest
	if err := r.db.WithContext(ctx).
		Preload("RequestedBy").
		Preload("DonatedBy").
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ListPending lists all pending requests with their requester, newest first.
func (r *aidRequestRepository) ListPending(ctx context.Context) ([]model.AidRequest, error) {
	var requests []model.AidRequest
	if err := r.db.WithContext(ctx).
		Preload("RequestedBy").
		Where("status = ?", model.StatusPending).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListByRequester lists requests authored by a user with the engaged donor, newest first.
func (r *aidRequestRepository) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]model.AidRequest, error) {
	var requests []model.AidRequest
	if err := r.db.WithContext(ctx).
		Preload("DonatedBy").
		Where("requested_by_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListByDonor lists requests a donor has engaged with, including the requester, newest first.
func (r *aidRequestRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]model.AidRequest, error) {
	var requests []model.AidRequest
	if err := r.db.WithContext(ctx).
		Preload("RequestedBy").
		Where("donated_by_id = ?", donorID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListAll lists every request with both parties, newest first.
func (r *aidRequestRepository) ListAll(ctx context.Context) ([]model.AidRequest, error) {
	var requests []model.AidRequest
	if err := r.db.WithContext(ctx).
		Preload("RequestedBy").
		Preload("DonatedBy").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Engage moves a pending request to In Progress and binds the donor in one
// conditional write. The status guard in the WHERE clause makes the update a
// compare-and-swap: when two donors race, only one write matches the Pending
// row. Returns false if the request was no longer pending.
func (r *aidRequestRepository) Engage(ctx context.Context, id, donorID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.AidRequest{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]interface{}{
			"status":        model.StatusInProgress,
			"donated_by_id": donorID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// TransitionStatus conditionally moves a request from one of the given states
// to the target state. Returns false if the current status matched none of them.
func (r *aidRequestRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from []model.RequestStatus, to model.RequestStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.AidRequest{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"aidfind/internal/errors"
	"aidfind/internal/model"
	"aidfind/internal/service"
)

// RequestHandler handles aid request endpoints.
type RequestHandler struct {
	requestService service.RequestService
}

// NewRequestHandler creates a new request handler.
func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// CreateRequestBody represents an aid request creation request.
type CreateRequestBody struct {
	AidType  string `json:"aid_type" validate:"required,oneof=Blood Medicine Oxygen Other"`
	Details  string `json:"details" validate:"required"`
	Location string `json:"location" validate:"required"`
}

// UpdateStatusBody represents a status transition request.
type UpdateStatusBody struct {
	Status string `json:"status" validate:"required"`
}

// PartyRef is the slice of a user another party is allowed to see. Email is
// only populated once the two sides are engaged on a request.
type PartyRef struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// RequestResponse represents an aid request with party visibility applied.
type RequestResponse struct {
	ID          uuid.UUID           `json:"id"`
	AidType     model.AidType       `json:"aid_type"`
	Details     string              `json:"details"`
	Location    string              `json:"location"`
	Status      model.RequestStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	RequestedBy *PartyRef           `json:"requested_by,omitempty"`
	DonatedBy   *PartyRef           `json:"donated_by,omitempty"`
}

// partyRef projects a user reference, optionally including contact info.
func partyRef(u *model.User, withContact bool) *PartyRef {
	if u == nil {
		return nil
	}
	ref := &PartyRef{Name: u.Name}
	if withContact {
		ref.Email = u.Email
	}
	return ref
}

func baseResponse(r *model.AidRequest) RequestResponse {
	return RequestResponse{
		ID:        r.ID,
		AidType:   r.AidType,
		Details:   r.Details,
		Location:  r.Location,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

// publicView shows the requester's name only: before engagement, nobody has
// consented to being contacted.
func publicView(r *model.AidRequest) RequestResponse {
	resp := baseResponse(r)
	resp.RequestedBy = partyRef(r.RequestedBy, false)
	return resp
}

// ownerView shows the engaged donor including contact info.
func ownerView(r *model.AidRequest) RequestResponse {
	resp := baseResponse(r)
	resp.DonatedBy = partyRef(r.DonatedBy, true)
	return resp
}

// donorView shows the requester including contact info.
func donorView(r *model.AidRequest) RequestResponse {
	resp := baseResponse(r)
	resp.RequestedBy = partyRef(r.RequestedBy, true)
	return resp
}

// Create godoc
// @Summary Create a new aid request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequestBody true "Aid request data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	var req CreateRequestBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.requestService.Create(c.Request().Context(), claims.UserID, req.AidType, req.Details, req.Location)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "aid request created successfully",
		"request": request,
	})
}

// ListPending godoc
// @Summary List all pending aid requests
// @Tags requests
// @Produce json
// @Success 200 {array} RequestResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /requests [get]
func (h *RequestHandler) ListPending(c echo.Context) error {
	requests, err := h.requestService.ListPending(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		resp = append(resp, publicView(&requests[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// ListMine godoc
// @Summary List the caller's own aid requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} RequestResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /requests/my-requests [get]
func (h *RequestHandler) ListMine(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	requests, err := h.requestService.ListMine(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		resp = append(resp, ownerView(&requests[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// ListEngaged godoc
// @Summary List requests the donor has engaged with
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} RequestResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /requests/engaged [get]
func (h *RequestHandler) ListEngaged(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	requests, err := h.requestService.ListEngaged(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		resp = append(resp, donorView(&requests[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary Transition an aid request's status
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body UpdateStatusBody true "Target status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /requests/{id}/status [patch]
func (h *RequestHandler) UpdateStatus(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request ID",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateStatusBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.requestService.UpdateStatus(c.Request().Context(), claims.UserID, claims.Role, requestID, req.Status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// Show each side the other party's contact info once engaged.
	var resp RequestResponse
	if request.RequestedByID == claims.UserID {
		resp = ownerView(request)
	} else {
		resp = donorView(request)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "request status updated to " + string(request.Status),
		"request": resp,
	})
}

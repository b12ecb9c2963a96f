package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"inventra/internal/dto"
	"inventra/internal/model"
	"inventra/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	trackingAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	trackingIDLength    = 11
	maxTrackingAttempts = 5
)

// GenerateTrackingID returns an 11-character id drawn uniformly from [A-Z0-9].
// Uniqueness is enforced by the database, not here; callers retry on collision.
func GenerateTrackingID() string {
	b := make([]byte, trackingIDLength)
	for i := range b {
		b[i] = trackingAlphabet[rand.Intn(len(trackingAlphabet))]
	}
	return string(b)
}

type ShipmentService interface {
	// CreateForOrder creates the shipment record for a DELIVERY sale order,
	// regenerating the tracking id on unique-index collision.
	CreateForOrder(ctx context.Context, order *model.SaleOrder) (*model.Shipment, error)
	List(ctx context.Context, userID uuid.UUID) ([]dto.ShipmentResponse, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) (*dto.ShipmentResponse, error)
}

type shipmentService struct {
	repo repository.ShipmentRepository
}

func NewShipmentService(repo repository.ShipmentRepository) ShipmentService {
	return &shipmentService{repo: repo}
}

func (s *shipmentService) CreateForOrder(ctx context.Context, order *model.SaleOrder) (*model.Shipment, error) {
	for attempt := 0; attempt < maxTrackingAttempts; attempt++ {
		shipment := &model.Shipment{
			SaleOrderID:  order.ID,
			CustomerName: order.CustomerName,
			Carrier:      order.Carrier,
			TrackingID:   GenerateTrackingID(),
			Status:       model.ShipmentInTransit,
			UserID:       order.UserID,
		}
		err := s.repo.Create(ctx, shipment)
		if err == nil {
			return shipment, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("could not allocate a unique tracking id after %d attempts", maxTrackingAttempts)
}

func (s *shipmentService) List(ctx context.Context, userID uuid.UUID) ([]dto.ShipmentResponse, error) {
	shipments, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShipmentResponse, 0, len(shipments))
	for _, sh := range shipments {
		out = append(out, *shipmentToResponse(&sh))
	}
	return out, nil
}

// UpdateStatus overwrites the status unconditionally; any of the three values
// may follow any other.
func (s *shipmentService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) (*dto.ShipmentResponse, error) {
	if _, err := s.repo.FindByID(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, userID, id, status); err != nil {
		return nil, err
	}
	sh, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return shipmentToResponse(sh), nil
}

func shipmentToResponse(sh *model.Shipment) *dto.ShipmentResponse {
	return &dto.ShipmentResponse{
		ID:           sh.ID.String(),
		SaleOrderID:  sh.SaleOrderID.String(),
		CustomerName: sh.CustomerName,
		Carrier:      sh.Carrier,
		TrackingID:   sh.TrackingID,
		Status:       sh.Status,
		CreatedAt:    sh.CreatedAt.UTC().Format(time.RFC3339),
	}
}

package service

import (
	"context"

	"inventra/internal/dto"
	"inventra/internal/model"
	"inventra/internal/repository"

	"github.com/google/uuid"
)

type VendorService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateVendorRequest) (*dto.VendorResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]dto.VendorResponse, error)
}

type vendorService struct {
	repo repository.VendorRepository
}

func NewVendorService(repo repository.VendorRepository) VendorService {
	return &vendorService{repo: repo}
}

func (s *vendorService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	vendor := &model.Vendor{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendorToResponse(vendor), nil
}

func (s *vendorService) List(ctx context.Context, userID uuid.UUID) ([]dto.VendorResponse, error) {
	vendors, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, *vendorToResponse(&v))
	}
	return out, nil
}

func vendorToResponse(v *model.Vendor) *dto.VendorResponse {
	return &dto.VendorResponse{
		ID:          v.ID.String(),
		Name:        v.Name,
		Email:       v.Email,
		PhoneNumber: v.PhoneNumber,
		Address:     v.Address,
	}
}

package service

import (
	"context"
	"errors"

	"inventra/internal/dto"
	"inventra/internal/model"
	"inventra/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type CompanyService interface {
	Get(ctx context.Context, userID uuid.UUID) (*dto.CompanyResponse, error)
	// Upsert re-verifies the account password before touching the profile.
	Upsert(ctx context.Context, userID uuid.UUID, req dto.UpsertCompanyRequest) (*dto.CompanyResponse, error)
}

type companyService struct {
	repo     repository.CompanyRepository
	userRepo repository.UserRepository
}

func NewCompanyService(repo repository.CompanyRepository, userRepo repository.UserRepository) CompanyService {
	return &companyService{repo: repo, userRepo: userRepo}
}

func (s *companyService) Get(ctx context.Context, userID uuid.UUID) (*dto.CompanyResponse, error) {
	company, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return companyToResponse(company), nil
}

func (s *companyService) Upsert(ctx context.Context, userID uuid.UUID, req dto.UpsertCompanyRequest) (*dto.CompanyResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	company := &model.Company{
		UserID:            userID,
		CompanyName:       req.CompanyName,
		GSTNumber:         req.GSTNumber,
		PhoneNumber:       req.PhoneNumber,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		Pincode:           req.Pincode,
		BankName:          req.BankName,
		BankAccountNumber: req.BankAccountNumber,
		IFSCCode:          req.IFSCCode,
	}
	if err := s.repo.Upsert(ctx, company); err != nil {
		return nil, err
	}
	return companyToResponse(company), nil
}

func companyToResponse(c *model.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		CompanyName:       c.CompanyName,
		GSTNumber:         c.GSTNumber,
		PhoneNumber:       c.PhoneNumber,
		Address:           c.Address,
		City:              c.City,
		State:             c.State,
		Pincode:           c.Pincode,
		BankName:          c.BankName,
		BankAccountNumber: c.BankAccountNumber,
		IFSCCode:          c.IFSCCode,
	}
}

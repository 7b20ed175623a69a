package services

import (
	"hirelink_backend/internal/auth"
	"hirelink_backend/internal/models"
	"hirelink_backend/internal/repositories"
	"hirelink_backend/internal/services/dto"
	"hirelink_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	userRepo      repositories.UserRepository
	candidateRepo repositories.CandidateRepository
	recruiterRepo repositories.RecruiterRepository
}

func NewAuthService(
	userRepo repositories.UserRepository,
	candidateRepo repositories.CandidateRepository,
	recruiterRepo repositories.RecruiterRepository,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		candidateRepo: candidateRepo,
		recruiterRepo: recruiterRepo,
	}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrAlreadyExists("auth", "A user with this email already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
		IsActive:     true,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	// Every account gets a matching profile so notifications have an
	// inbox to address from day one.
	switch user.Role {
	case models.UserRoleCandidate:
		candidate := &models.Candidate{
			UserID:   user.ID,
			FullName: req.FullName,
			Email:    req.Email,
		}
		if err := s.candidateRepo.CreateCandidate(candidate); err != nil {
			return nil, err
		}
	case models.UserRoleRecruiter:
		recruiter := &models.Recruiter{
			UserID:   user.ID,
			FullName: req.FullName,
			Email:    req.Email,
			Company:  req.Company,
		}
		if err := s.recruiterRepo.CreateRecruiter(recruiter); err != nil {
			return nil, err
		}
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, UserID: user.ID, Role: string(user.Role)}, nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}

	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("Account is deactivated")
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, UserID: user.ID, Role: string(user.Role)}, nil
}

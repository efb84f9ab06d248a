package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"guarderia/internal/faults"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	repo UserRepository
}

func NewService(repo UserRepository) *Service {
	return &Service{repo: repo}
}

// REGISTER
func (s *Service) Register(name, email, password, role string) (*User, error) {
	if name == "" || email == "" || password == "" {
		return nil, faults.Invalidf("missing required fields")
	}

	if role == "" {
		role = RoleStaff
	}
	if !ValidRole(role) {
		return nil, faults.Invalidf("unknown role %q", role)
	}

	exists, _ := s.repo.ExistsByEmail(email)
	if exists {
		return nil, faults.Conflictf("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := s.repo.Save(user); err != nil {
		return nil, err
	}

	return user, nil
}

// LOGIN
func (s *Service) Login(email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

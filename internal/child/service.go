package child

import (
	"context"
	"time"

	"guarderia/internal/clock"
	"guarderia/internal/core"
	"guarderia/internal/faults"
)

type Service struct {
	repo  Repository
	clock clock.Clock
}

func NewService(repo Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clock: clk}
}

// --------------------------------------------------
// Payers
// --------------------------------------------------
func (s *Service) CreatePayer(ctx context.Context, name, email string) (*Payer, error) {
	if name == "" || email == "" {
		return nil, faults.Invalidf("missing required fields")
	}

	payer := &Payer{Name: name, Email: email, Active: true}
	if err := s.repo.CreatePayer(ctx, payer); err != nil {
		return nil, err
	}
	return payer, nil
}

func (s *Service) ListPayers(ctx context.Context) ([]*Payer, error) {
	return s.repo.ListPayers(ctx)
}

// --------------------------------------------------
// Enrollment
// --------------------------------------------------
func (s *Service) Enroll(ctx context.Context, name string, birthDate, enrollmentDate time.Time, payerID *int) (*Child, error) {
	if name == "" {
		return nil, faults.Invalidf("missing required fields")
	}

	today := clock.Today(s.clock)
	enrolled := clock.DateOf(enrollmentDate)
	born := clock.DateOf(birthDate)

	if enrolled.After(today) {
		return nil, faults.Invalidf("enrollment date cannot be in the future")
	}
	if !born.Before(enrolled) {
		return nil, faults.Invalidf("birth date must precede enrollment date")
	}

	if payerID != nil {
		payer, err := s.repo.GetPayer(ctx, *payerID)
		if err != nil {
			return nil, err
		}
		if !payer.Active {
			return nil, faults.Invalidf("payer %d is inactive", payer.ID)
		}
	}

	child := &Child{
		Name:           name,
		BirthDate:      born,
		EnrollmentDate: enrolled,
		Active:         true,
		PayerID:        payerID,
	}
	if err := s.repo.CreateChild(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *Service) AssignPayer(ctx context.Context, childID, payerID int) (*Child, error) {
	child, err := s.repo.GetChild(ctx, childID)
	if err != nil {
		return nil, err
	}

	payer, err := s.repo.GetPayer(ctx, payerID)
	if err != nil {
		return nil, err
	}
	if !payer.Active {
		return nil, faults.Invalidf("payer %d is inactive", payer.ID)
	}

	child.PayerID = &payer.ID
	if err := s.repo.UpdateChild(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *Service) Deactivate(ctx context.Context, childID int) (*Child, error) {
	child, err := s.repo.GetChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	child.Active = false
	if err := s.repo.UpdateChild(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *Service) List(ctx context.Context) ([]*Child, error) {
	return s.repo.ListChildren(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*Child, error) {
	return s.repo.GetChild(ctx, id)
}

// --------------------------------------------------
// core.ChildReader
// --------------------------------------------------
func (s *Service) GetChild(ctx context.Context, childID int) (*core.ChildInfo, error) {
	c, err := s.repo.GetChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	return toInfo(c), nil
}

func (s *Service) CountActiveSiblings(ctx context.Context, payerID, excludeChildID int) (int, error) {
	return s.repo.CountActiveByPayer(ctx, payerID, excludeChildID)
}

func (s *Service) ListActiveBillable(ctx context.Context) ([]*core.ChildInfo, error) {
	children, err := s.repo.ListActiveWithPayer(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]*core.ChildInfo, 0, len(children))
	for _, c := range children {
		infos = append(infos, toInfo(c))
	}
	return infos, nil
}

func toInfo(c *Child) *core.ChildInfo {
	return &core.ChildInfo{
		ID:             c.ID,
		Name:           c.Name,
		EnrollmentDate: c.EnrollmentDate,
		Active:         c.Active,
		PayerID:        c.PayerID,
	}
}

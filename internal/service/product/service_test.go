package product

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

type stubRepo struct {
	count       int
	countErr    error
	created     *domain.Product
	createErr   error
	conflicts   int
	lastCreate  productrepo.CreateInput
	createCalls int
	updated     *domain.Product
	lastUpdate  productrepo.UpdateInput
	deletedID   int64
	deleteErr   error
}

func (s *stubRepo) List(_ context.Context, _ bool) ([]domain.Product, error) { return nil, nil }

func (s *stubRepo) GetByID(_ context.Context, _ int64) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Create(_ context.Context, in productrepo.CreateInput) (*domain.Product, error) {
	s.lastCreate = in
	s.createCalls++
	if s.conflicts > 0 {
		s.conflicts--
		return nil, domain.ErrAlreadyExists
	}
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	return &domain.Product{ID: 1, Name: in.Name, SerialCode: in.SerialCode}, nil
}

func (s *stubRepo) Update(_ context.Context, _ int64, in productrepo.UpdateInput) (*domain.Product, error) {
	s.lastUpdate = in
	return s.updated, nil
}

func (s *stubRepo) SoftDelete(_ context.Context, id int64) error {
	s.deletedID = id
	return s.deleteErr
}

func (s *stubRepo) CountByCategory(_ context.Context, _ string) (int, error) {
	return s.count, s.countErr
}

func TestCreate_GeneratesSerialCode(t *testing.T) {
	repo := &stubRepo{count: 3}
	svc := New(repo)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Webcam", PriceCents: 4500, Category: "electronics", Stock: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.lastCreate.SerialCode != "ELEC-004" {
		t.Fatalf("expected serial ELEC-004, got %s", repo.lastCreate.SerialCode)
	}
	if repo.lastCreate.Category != "electronics" {
		t.Fatalf("unexpected category: %s", repo.lastCreate.Category)
	}
}

func TestCreate_RetriesSerialOnConflict(t *testing.T) {
	// Two admins creating in the same category can race to one sequence
	// number; the loser must retry with a fresh serial, not surface 409.
	repo := &stubRepo{count: 3, conflicts: 1}
	svc := New(repo)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Webcam", PriceCents: 4500, Category: "electronics"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.createCalls != 2 {
		t.Fatalf("expected a retry after serial conflict, got %d create calls", repo.createCalls)
	}
	if repo.lastCreate.SerialCode != "ELEC-005" {
		t.Fatalf("expected bumped serial ELEC-005 on retry, got %s", repo.lastCreate.SerialCode)
	}
}

func TestCreate_PersistentConflictSurfaces(t *testing.T) {
	repo := &stubRepo{conflicts: 10}
	svc := New(repo)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Webcam", PriceCents: 4500, Category: "electronics"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists after exhausted retries, got %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := New(&stubRepo{})

	if _, err := svc.Create(context.Background(), CreateInput{Name: "  ", PriceCents: 100}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error for empty name, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{Name: "X", PriceCents: -1}); err == nil {
		t.Fatalf("expected error for negative price")
	}
	if _, err := svc.Create(context.Background(), CreateInput{Name: "X", PriceCents: 1, Stock: -2}); err == nil {
		t.Fatalf("expected error for negative stock")
	}
}

func TestUpdate_RejectsNegativePrice(t *testing.T) {
	svc := New(&stubRepo{})
	bad := int64(-10)
	if _, err := svc.Update(context.Background(), 1, UpdateInput{PriceCents: &bad}); err == nil {
		t.Fatalf("expected error for negative price")
	}
}

func TestDelete_SoftDeletes(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	if err := svc.Delete(context.Background(), 5); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if repo.deletedID != 5 {
		t.Fatalf("expected soft delete of id 5, got %d", repo.deletedID)
	}
}

func TestSerialCode(t *testing.T) {
	cases := []struct {
		category string
		seq      int
		want     string
	}{
		{"electronics", 1, "ELEC-001"},
		{"toys", 12, "TOYS-012"},
		{"tv", 7, "TV-007"},
		{"", 2, "GEN-002"},
	}
	for _, tc := range cases {
		if got := SerialCode(tc.category, tc.seq); got != tc.want {
			t.Fatalf("SerialCode(%q, %d) = %q, want %q", tc.category, tc.seq, got, tc.want)
		}
	}
}

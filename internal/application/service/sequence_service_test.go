package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"github.com/washpoint/washpoint-api/pkg/apperror"
)

func TestAllocateNextStartsAtOne(t *testing.T) {
	env := newTestEnv()

	n, err := env.sequences.AllocateNext(env.ctx, env.branch.ID, enum.DocumentTypeInvoice, 1)
	if err != nil {
		t.Fatalf("AllocateNext: %v", err)
	}
	if n != 1 {
		t.Fatalf("first allocation = %d, want 1", n)
	}
}

func TestAllocateNextIsGapless(t *testing.T) {
	env := newTestEnv()

	for want := int64(1); want <= 50; want++ {
		got, err := env.sequences.AllocateNext(env.ctx, env.branch.ID, enum.DocumentTypeInvoice, 1)
		if err != nil {
			t.Fatalf("allocation %d: %v", want, err)
		}
		if got != want {
			t.Fatalf("allocation = %d, want %d", got, want)
		}
	}
}

func TestSeriesAreIndependent(t *testing.T) {
	env := newTestEnv()
	otherBranch := uuid.New()

	// Advance the invoice series at pos 1.
	for i := 0; i < 3; i++ {
		if _, err := env.sequences.AllocateNext(env.ctx, env.branch.ID, enum.DocumentTypeInvoice, 1); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name     string
		branchID uuid.UUID
		docType  enum.DocumentType
		pos      int
	}{
		{"different document type", env.branch.ID, enum.DocumentTypeReceipt, 1},
		{"different point of sale", env.branch.ID, enum.DocumentTypeInvoice, 2},
		{"different branch", otherBranch, enum.DocumentTypeInvoice, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := env.sequences.AllocateNext(env.ctx, tt.branchID, tt.docType, tt.pos)
			if err != nil {
				t.Fatalf("AllocateNext: %v", err)
			}
			if n != 1 {
				t.Fatalf("fresh series started at %d, want 1", n)
			}
		})
	}
}

func TestAllocateNextConcurrentRunIsContiguous(t *testing.T) {
	env := newTestEnv()
	const workers = 25

	var wg sync.WaitGroup
	results := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := env.sequences.AllocateNext(env.ctx, env.branch.ID, enum.DocumentTypeInvoice, 1)
			if err != nil {
				t.Errorf("AllocateNext: %v", err)
				return
			}
			results <- n
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool, workers)
	for n := range results {
		if seen[n] {
			t.Fatalf("value %d allocated twice", n)
		}
		seen[n] = true
	}
	for v := int64(1); v <= workers; v++ {
		if !seen[v] {
			t.Fatalf("allocated run has a gap at %d", v)
		}
	}
}

// lostRaceSequenceRepo simulates losing the first-allocation race: the initial
// read sees no row, the insert is absorbed by the winner's committed row, and
// only the retry read finds the counter.
type lostRaceSequenceRepo struct {
	*fakeSequenceRepo
	reads int
}

func (r *lostRaceSequenceRepo) GetForUpdate(ctx context.Context, branchID uuid.UUID, docType enum.DocumentType, pos int) (*entity.SequenceCounter, error) {
	r.reads++
	if r.reads == 1 {
		return nil, nil
	}
	return r.fakeSequenceRepo.GetForUpdate(ctx, branchID, docType, pos)
}

func (r *lostRaceSequenceRepo) Create(ctx context.Context, c *entity.SequenceCounter) (bool, error) {
	return false, nil
}

func TestAllocateNextRecoversFromLostInitializationRace(t *testing.T) {
	branchID := uuid.New()
	backing := newFakeSequenceRepo()
	if _, err := backing.Create(context.Background(), &entity.SequenceCounter{
		BranchID:     branchID,
		DocumentType: enum.DocumentTypeInvoice,
		PointOfSale:  1,
		NextValue:    4,
	}); err != nil {
		t.Fatal(err)
	}

	sequences := NewSequenceService(&lostRaceSequenceRepo{fakeSequenceRepo: backing}, &fakeTxManager{})
	n, err := sequences.AllocateNext(context.Background(), branchID, enum.DocumentTypeInvoice, 1)
	if err != nil {
		t.Fatalf("AllocateNext after lost race: %v", err)
	}
	if n != 4 {
		t.Fatalf("allocated %d, want 4 from the winner's counter", n)
	}

	counter, err := backing.GetForUpdate(context.Background(), branchID, enum.DocumentTypeInvoice, 1)
	if err != nil || counter == nil {
		t.Fatalf("counter lookup: %v %v", counter, err)
	}
	if counter.NextValue != 5 {
		t.Fatalf("counter advanced to %d, want 5", counter.NextValue)
	}
}

func TestAllocateNextValidation(t *testing.T) {
	env := newTestEnv()

	if _, err := env.sequences.AllocateNext(env.ctx, env.branch.ID, enum.DocumentType("waybill"), 1); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("unknown type: expected validation error, got %v", err)
	}
	if _, err := env.sequences.AllocateNext(env.ctx, env.branch.ID, enum.DocumentTypeInvoice, 0); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("pos 0: expected validation error, got %v", err)
	}
}

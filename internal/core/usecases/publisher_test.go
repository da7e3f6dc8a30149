package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/sixmovies/actorpop/internal/core/domain"
	"github.com/sixmovies/actorpop/internal/core/ports"
)

type fakeTx struct {
	execs []string
}

func (tx *fakeTx) Exec(_ context.Context, sql string, _ ...interface{}) error {
	tx.execs = append(tx.execs, sql)
	return nil
}

type fakeUnitOfWork struct {
	tx         *fakeTx
	failAfter  func(tx *fakeTx) error
	rolledBack bool
}

func (u *fakeUnitOfWork) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	u.tx = &fakeTx{}
	err := fn(ctx, u.tx)
	if err != nil {
		u.rolledBack = true
	}
	return err
}

type fakeVersionWriter struct {
	inserted []domain.PopularityVersion
	nextID   int64
	failWith error
}

func (w *fakeVersionWriter) InsertVersion(_ context.Context, _ ports.Tx, v domain.PopularityVersion) (int64, error) {
	if w.failWith != nil {
		return 0, w.failWith
	}
	w.nextID++
	w.inserted = append(w.inserted, v)
	return w.nextID, nil
}

type fakeActorWriter struct {
	batches  [][]ports.ScoredActor
	failWith error
}

func (w *fakeActorWriter) UpdateScores(_ context.Context, _ ports.Tx, _ int64, batch []ports.ScoredActor) error {
	if w.failWith != nil {
		return w.failWith
	}
	cp := make([]ports.ScoredActor, len(batch))
	copy(cp, batch)
	w.batches = append(w.batches, cp)
	return nil
}

func TestVersionPublisher_BatchesUpdates(t *testing.T) {
	uow := &fakeUnitOfWork{}
	versions := &fakeVersionWriter{}
	actors := &fakeActorWriter{}
	pub := NewVersionPublisher(uow, versions, actors, 2)

	scores := map[int64]float64{1: 10, 2: 20, 3: 30}
	published, err := pub.Publish(context.Background(), domain.PopularityVersion{Notes: "test"}, scores)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if published.ID != 1 {
		t.Errorf("published.ID = %d, want 1", published.ID)
	}

	total := 0
	for _, b := range actors.batches {
		if len(b) > 2 {
			t.Errorf("batch size %d exceeds configured 2", len(b))
		}
		total += len(b)
	}
	if total != 3 {
		t.Errorf("total updated rows = %d, want 3", total)
	}
}

func TestVersionPublisher_EmptyScoresStillInsertsVersion(t *testing.T) {
	uow := &fakeUnitOfWork{}
	versions := &fakeVersionWriter{}
	actors := &fakeActorWriter{}
	pub := NewVersionPublisher(uow, versions, actors, 100)

	published, err := pub.Publish(context.Background(), domain.PopularityVersion{}, nil)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if published.ID != 1 {
		t.Errorf("published.ID = %d, want 1", published.ID)
	}
	if len(actors.batches) != 0 {
		t.Errorf("expected no actor batches for empty scores, got %v", actors.batches)
	}
}

func TestVersionPublisher_RollsBackOnWriterFailure(t *testing.T) {
	uow := &fakeUnitOfWork{}
	versions := &fakeVersionWriter{}
	actors := &fakeActorWriter{failWith: errors.New("update failed")}
	pub := NewVersionPublisher(uow, versions, actors, 100)

	_, err := pub.Publish(context.Background(), domain.PopularityVersion{}, map[int64]float64{1: 1})
	if err == nil {
		t.Fatalf("expected error from failing actor writer")
	}
	if !uow.rolledBack {
		t.Errorf("expected transaction to be marked rolled back")
	}
}

func TestNewVersionPublisher_NonPositiveBatchSizeDefaults(t *testing.T) {
	pub := NewVersionPublisher(&fakeUnitOfWork{}, &fakeVersionWriter{}, &fakeActorWriter{}, 0)
	if pub.BatchSize != defaultPublishBatchSize {
		t.Errorf("BatchSize = %d, want default %d", pub.BatchSize, defaultPublishBatchSize)
	}
}

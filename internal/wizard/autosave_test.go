package wizard

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"crm-golang/internal/storage"
)

func TestAutosaver_SkipsEmptyRecord(t *testing.T) {
	drafts := &memDrafts{}
	a := NewAutosaver(time.Minute, drafts, func() storage.DealRecord {
		return storage.DealRecord{}
	}, nil)

	a.tick()

	assert.Equal(t, 0, drafts.saves, "a record without name and amount is never persisted")
	assert.Empty(t, a.Status())
}

func TestAutosaver_SavesMeaningfulRecord(t *testing.T) {
	drafts := &memDrafts{}
	a := NewAutosaver(time.Minute, drafts, func() storage.DealRecord {
		return storage.DealRecord{Name: "Acme Renewal", Amount: 750}
	}, nil)

	a.tick()

	assert.Equal(t, 1, drafts.saves)
	assert.Equal(t, "Acme Renewal", drafts.rec.Name)
	assert.Equal(t, "saved", a.Status())
}

func TestAutosaver_AmountAloneIsEnough(t *testing.T) {
	drafts := &memDrafts{}
	a := NewAutosaver(time.Minute, drafts, func() storage.DealRecord {
		return storage.DealRecord{Amount: 100}
	}, nil)

	a.tick()

	assert.Equal(t, 1, drafts.saves)
}

func TestAutosaver_ErrorStatusOnFailedSave(t *testing.T) {
	drafts := &memDrafts{saveErr: errors.New("disk full")}
	a := NewAutosaver(time.Minute, drafts, func() storage.DealRecord {
		return storage.DealRecord{Name: "Acme Renewal", Amount: 750}
	}, nil)

	a.tick()

	assert.Equal(t, "error", a.Status())
}

// slowDrafts blocks inside Save until released, to simulate a save still
// in flight when the next tick arrives.
type slowDrafts struct {
	memDrafts
	entered chan struct{}
	release chan struct{}
}

func (d *slowDrafts) Save(rec storage.DealRecord) error {
	close(d.entered)
	<-d.release
	return d.memDrafts.Save(rec)
}

func TestAutosaver_NeverOverlapsSaves(t *testing.T) {
	drafts := &slowDrafts{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	a := NewAutosaver(time.Minute, drafts, func() storage.DealRecord {
		return storage.DealRecord{Name: "Acme Renewal", Amount: 750}
	}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.tick()
	}()

	<-drafts.entered
	a.tick() // must return immediately, no second Save

	close(drafts.release)
	wg.Wait()

	assert.Equal(t, 1, drafts.saves)
}

func TestAutosaver_StartStop(t *testing.T) {
	drafts := &memDrafts{}
	a := NewAutosaver(10*time.Millisecond, drafts, func() storage.DealRecord {
		return storage.DealRecord{Name: "Acme Renewal", Amount: 750}
	}, nil)

	a.Start()
	assert.Eventually(t, func() bool {
		drafts.mu.Lock()
		defer drafts.mu.Unlock()
		return drafts.saves >= 1
	}, time.Second, 5*time.Millisecond)

	a.Stop()
	drafts.mu.Lock()
	after := drafts.saves
	drafts.mu.Unlock()

	time.Sleep(30 * time.Millisecond)
	drafts.mu.Lock()
	defer drafts.mu.Unlock()
	assert.Equal(t, after, drafts.saves, "no ticks after Stop")
}

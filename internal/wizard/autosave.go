package wizard

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"crm-golang/internal/storage"
)

const (
	savedIndicatorTTL = 2 * time.Second
	errorIndicatorTTL = 3 * time.Second
)

// Autosaver periodically persists the record snapshot via the draft
// store. A tick is skipped when the record has no meaningful content and
// when a previous save is still running. A failed save is not retried;
// the next scheduled tick tries again naturally.
type Autosaver struct {
	interval time.Duration
	drafts   DraftStore
	snapshot func() storage.DealRecord
	log      *slog.Logger

	saving atomic.Bool

	mu        sync.Mutex
	status    string
	statusTTL *time.Timer

	stop chan struct{}
	done chan struct{}
}

func NewAutosaver(interval time.Duration, drafts DraftStore, snapshot func() storage.DealRecord, log *slog.Logger) *Autosaver {
	return &Autosaver{
		interval: interval,
		drafts:   drafts,
		snapshot: snapshot,
		log:      log,
	}
}

func (a *Autosaver) Start() {
	if a.stop != nil {
		return
	}
	a.stop = make(chan struct{})
	a.done = make(chan struct{})

	go func() {
		defer close(a.done)
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.tick()
			case <-a.stop:
				return
			}
		}
	}()
}

func (a *Autosaver) Stop() {
	if a.stop == nil {
		return
	}
	close(a.stop)
	<-a.done
	a.stop = nil
}

// Status is the transient indicator for the UI: "saved" for 2s after a
// successful save, "error" for 3s after a failed one, empty otherwise.
func (a *Autosaver) Status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *Autosaver) tick() {
	if !a.saving.CompareAndSwap(false, true) {
		// previous save still in progress, never overlap
		return
	}
	defer a.saving.Store(false)

	rec := a.snapshot()
	if rec.Name == "" && rec.Amount == 0 {
		return
	}

	if err := a.drafts.Save(rec); err != nil {
		if a.log != nil {
			a.log.Error("autosave failed", slog.String("error", err.Error()))
		}
		a.setStatus("error", errorIndicatorTTL)
		return
	}
	a.setStatus("saved", savedIndicatorTTL)
}

func (a *Autosaver) setStatus(s string, ttl time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = s
	if a.statusTTL != nil {
		a.statusTTL.Stop()
	}
	a.statusTTL = time.AfterFunc(ttl, func() {
		a.mu.Lock()
		a.status = ""
		a.mu.Unlock()
	})
}

package wizard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"crm-golang/internal/storage"
)

var (
	// ErrIncomplete aggregates all failed required steps into one
	// submission refusal.
	ErrIncomplete = errors.New("complete all required fields before saving")
	// ErrSubmitInFlight guards against double submission while the
	// external call is pending.
	ErrSubmitInFlight = errors.New("submission already in progress")
)

// Submitter is the external collaborator that receives the finished
// record. The REST client implements it, and so does the server-side
// deal service.
type Submitter interface {
	CreateDeal(ctx context.Context, rec storage.DealRecord) (*storage.Deal, error)
}

// DraftStore persists one in-progress record across restarts.
type DraftStore interface {
	Save(rec storage.DealRecord) error
	Load() (*storage.DealRecord, error)
	Clear() error
}

// Wizard drives the multi-step deal creation flow: an ordered step list,
// the current position, the mutable record and the submission guard.
type Wizard struct {
	mu         sync.Mutex
	steps      []Step
	idx        int
	record     *storage.DealRecord
	errs       map[string]string
	submitter  Submitter
	drafts     DraftStore
	submitting bool

	autosave *Autosaver
}

// New builds a wizard positioned on the first step. When an existing deal
// is supplied it seeds the record; otherwise a previously persisted draft
// is restored if one survives.
func New(submitter Submitter, drafts DraftStore, existing *storage.DealRecord) *Wizard {
	rec := NewRecord()
	if existing != nil {
		rec = existing
	} else if drafts != nil {
		if saved, err := drafts.Load(); err == nil && saved != nil {
			rec = saved
		}
	}
	if rec.Products == nil {
		rec.Products = []storage.DealProduct{}
	}
	if rec.PlannedActivities == nil {
		rec.PlannedActivities = []storage.PlannedActivity{}
	}

	return &Wizard{
		steps:     Steps,
		record:    rec,
		errs:      map[string]string{},
		submitter: submitter,
		drafts:    drafts,
	}
}

func (w *Wizard) Current() StepID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.steps[w.idx].ID
}

// Errors returns the field errors from the last validation pass.
func (w *Wizard) Errors() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]string, len(w.errs))
	for k, v := range w.errs {
		out[k] = v
	}
	return out
}

// Update runs a mutation against the record. All field edits from step
// components go through here so the snapshot for autosave stays
// consistent.
func (w *Wizard) Update(fn func(r *storage.DealRecord)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w.record)
}

// Fee setters recompute Amount synchronously; Amount is derived from the
// four components once fees are in play.

func (w *Wizard) SetPlatformFee(v float64) {
	w.Update(func(r *storage.DealRecord) { r.PlatformFee = v; syncAmount(r) })
}

func (w *Wizard) SetCustomFee(v float64) {
	w.Update(func(r *storage.DealRecord) { r.CustomFee = v; syncAmount(r) })
}

func (w *Wizard) SetLicenseFee(v float64) {
	w.Update(func(r *storage.DealRecord) { r.LicenseFee = v; syncAmount(r) })
}

func (w *Wizard) SetOnboardingFee(v float64) {
	w.Update(func(r *storage.DealRecord) { r.OnboardingFee = v; syncAmount(r) })
}

// Snapshot copies the record for readers outside the event flow
// (autosave, summary panels).
func (w *Wizard) Snapshot() storage.DealRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneRecord(w.record)
}

// GoNext validates the current step and advances on success. Position is
// unchanged when validation fails; there is no wraparound on the last
// step.
func (w *Wizard) GoNext() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	errs := ValidateStep(w.steps[w.idx].ID, w.record)
	w.errs = errs
	if len(errs) > 0 {
		return false
	}
	if w.idx < len(w.steps)-1 {
		w.idx++
	}
	return true
}

// GoPrevious moves back unconditionally; revisiting never revalidates.
func (w *Wizard) GoPrevious() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.idx > 0 {
		w.idx--
	}
}

// JumpTo allows direct navigation to the current or any earlier step.
// Future steps cannot be skipped into, they are reached via GoNext.
func (w *Wizard) JumpTo(id StepID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	target := stepIndex(id)
	if target < 0 || target > w.idx {
		return false
	}
	w.idx = target
	return true
}

// Ready reports whether every required step validates clean.
func (w *Wizard) Ready() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.requiredClean()
}

func (w *Wizard) requiredClean() bool {
	for _, s := range w.steps {
		if !s.Required {
			continue
		}
		if len(ValidateStep(s.ID, w.record)) > 0 {
			return false
		}
	}
	return true
}

// Submit validates every required step and hands the record to the
// external collaborator. Re-entrant submission is refused while the call
// is in flight. Success clears the draft slot; failure leaves record and
// position untouched for a manual retry.
func (w *Wizard) Submit(ctx context.Context) (*storage.Deal, error) {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if !w.requiredClean() {
		w.mu.Unlock()
		return nil, ErrIncomplete
	}
	w.submitting = true
	rec := cloneRecord(w.record)
	w.mu.Unlock()

	deal, err := w.submitter.CreateDeal(ctx, rec)

	w.mu.Lock()
	w.submitting = false
	w.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if w.drafts != nil {
		// best effort, a stale draft must never fail a created deal
		_ = w.drafts.Clear()
	}
	return deal, nil
}

// StartAutosave runs the periodic draft save for the lifetime of this
// wizard instance. Stop it with Close.
func (w *Wizard) StartAutosave(interval time.Duration, log *slog.Logger) {
	if w.autosave != nil || w.drafts == nil {
		return
	}
	w.autosave = NewAutosaver(interval, w.drafts, w.Snapshot, log)
	w.autosave.Start()
}

func (w *Wizard) Close() {
	if w.autosave != nil {
		w.autosave.Stop()
		w.autosave = nil
	}
}

// Package vocab reconciles remote choice-option identifiers against local
// controlled-vocabulary terms, creating terms on demand and tracking a
// stable external-id correspondence on each term.
package vocab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lakeshore-digital/contentsync/entity"
	"github.com/lakeshore-digital/contentsync/value"
)

// EntityType is the local entity type for vocabulary terms.
const EntityType = "taxonomy_term"

// TrackingField is the multi-valued term attribute recording which remote
// option identifiers the term corresponds to, across languages.
const TrackingField = "field_option_ids"

// Mode selects the reconciliation behavior for a mapping-edit session.
type Mode string

const (
	// ModeManual records user-picked associations and never creates terms.
	ModeManual Mode = "manual"

	// ModeAutomatic creates one term per option, first language only,
	// reused for every language without per-language variation.
	ModeAutomatic Mode = "automatic"

	// ModeSemiAutomatic creates terms from the first language and attaches
	// later languages' labels as term translations, paired by option
	// ordinal.
	ModeSemiAutomatic Mode = "semiautomatic"
)

// ErrNotResolved is returned when an option cannot be matched to a term and
// the mode forbids creating one. Callers skip the value, non-fatally.
var ErrNotResolved = errors.New("option not resolved to a term")

// Option is one remote choice option presented to the reconciler.
type Option struct {
	ID    string
	Label string
}

// Reconciler resolves remote option ids to local term ids. Find-or-create is
// a potential race under concurrent imports; at-least-once creation safety
// is the host store's responsibility.
type Reconciler struct {
	store    entity.Store
	registry *entity.Registry
	mode     Mode
}

// NewReconciler creates a reconciler operating in the given mode.
func NewReconciler(store entity.Store, registry *entity.Registry, mode Mode) *Reconciler {
	if mode == "" {
		mode = ModeAutomatic
	}
	return &Reconciler{store: store, registry: registry, mode: mode}
}

// Mode returns the reconciliation mode.
func (r *Reconciler) Mode() Mode {
	return r.mode
}

// EnsureTrackingField registers the tracking attribute on the vocabulary
// bundle definition if the site schema does not carry it yet.
func (r *Reconciler) EnsureTrackingField(vocabulary string) {
	def, ok := r.registry.Get(EntityType, vocabulary)
	if !ok {
		def = &entity.Definition{
			EntityType: EntityType,
			Bundle:     vocabulary,
		}
	}
	if def.HasField(TrackingField) {
		return
	}
	def.Fields = append(def.Fields, entity.FieldDefinition{
		Name:        TrackingField,
		Type:        entity.TypeStringLong,
		Cardinality: entity.Unlimited,
	})
	r.registry.Register(&entity.Definition{
		EntityType:   def.EntityType,
		Bundle:       def.Bundle,
		Name:         def.Name,
		Translatable: def.Translatable,
		Fields:       def.Fields,
	})
}

// ResolveOrCreate resolves optionID within the vocabulary to a local term
// id. An existing term's label is refreshed when it changed. When no term
// tracks the option id, a new term is created and seeded — except in manual
// mode, which returns ErrNotResolved.
func (r *Reconciler) ResolveOrCreate(ctx context.Context, vocabulary, optionID, label, language string) (string, error) {
	term, err := r.find(ctx, vocabulary, optionID, language)
	if err != nil {
		return "", err
	}

	if term != nil {
		r.refreshLabel(term, label, language)
		if err := r.store.Save(ctx, term); err != nil {
			return "", fmt.Errorf("saving term %s: %w", term.ID(), err)
		}
		return term.ID(), nil
	}

	if r.mode == ModeManual {
		return "", ErrNotResolved
	}

	return r.create(ctx, vocabulary, optionID, label)
}

// find looks up a term tracking optionID. In semi-automatic mode against a
// translatable vocabulary the match is narrowed to terms carrying a
// translation for the requested language when one exists. Duplicate
// trackers reconcile last writer wins: candidates arrive in creation order,
// and the most recently created match is kept.
func (r *Reconciler) find(ctx context.Context, vocabulary, optionID, language string) (entity.Entity, error) {
	candidates, err := r.store.LoadByProperties(ctx, EntityType, map[string]any{
		TrackingField: optionID,
	})
	if err != nil {
		return nil, fmt.Errorf("looking up option %q: %w", optionID, err)
	}

	translatable := r.registry.IsTranslationEnabled(EntityType, vocabulary)
	var match, fallback entity.Entity
	for _, c := range candidates {
		if c.Bundle() != vocabulary {
			continue
		}
		if r.mode == ModeSemiAutomatic && translatable && language != "" {
			if _, ok := c.Translation(language); ok {
				match = c
			} else {
				fallback = c
			}
			continue
		}
		match = c
	}
	if match != nil {
		return match, nil
	}
	return fallback, nil
}

func (r *Reconciler) refreshLabel(term entity.Entity, label, language string) {
	if label == "" {
		return
	}
	target := term
	if r.mode == ModeSemiAutomatic && language != "" && language != term.Language() {
		if tr, ok := term.Translation(language); ok {
			target = tr
		}
	}
	if target.Label() != label {
		target.SetLabel(label)
	}
}

func (r *Reconciler) create(ctx context.Context, vocabulary, optionID, label string) (string, error) {
	term := r.store.Create(EntityType, vocabulary)
	term.SetLabel(label)
	term.Set(TrackingField, []string{optionID})
	if err := r.store.Save(ctx, term); err != nil {
		return "", fmt.Errorf("creating term for option %q: %w", optionID, err)
	}
	return term.ID(), nil
}

// FindByLabel returns the id of a term with the given label, scoped by
// language when the vocabulary is translatable.
func (r *Reconciler) FindByLabel(ctx context.Context, vocabulary, label, language string) (string, bool, error) {
	candidates, err := r.store.LoadByProperties(ctx, EntityType, map[string]any{
		"title": label,
	})
	if err != nil {
		return "", false, fmt.Errorf("looking up term %q: %w", label, err)
	}
	for _, c := range candidates {
		if c.Bundle() == vocabulary {
			return c.ID(), true, nil
		}
	}

	// A translatable vocabulary may hold the label on a translation.
	if language != "" && r.registry.IsTranslationEnabled(EntityType, vocabulary) {
		all, err := r.store.LoadByProperties(ctx, EntityType, nil)
		if err != nil {
			return "", false, err
		}
		for _, c := range all {
			if c.Bundle() != vocabulary {
				continue
			}
			if tr, ok := c.Translation(language); ok && tr.Label() == label {
				return c.ID(), true, nil
			}
		}
	}
	return "", false, nil
}

// FindOrCreateByLabel resolves a free-form "other" value to a term by label
// match, creating the term when absent. Other values carry no stable option
// id, so nothing is seeded into the tracking attribute.
func (r *Reconciler) FindOrCreateByLabel(ctx context.Context, vocabulary, label, language string) (string, error) {
	id, found, err := r.FindByLabel(ctx, vocabulary, label, language)
	if err != nil {
		return "", err
	}
	if found {
		return id, nil
	}

	term := r.store.Create(EntityType, vocabulary)
	term.SetLabel(label)
	if err := r.store.Save(ctx, term); err != nil {
		return "", fmt.Errorf("creating term %q: %w", label, err)
	}
	return term.ID(), nil
}

// RecordAssociation records a manual-mode association between an option and
// an existing term. A term id that no longer exists yields ErrNotResolved so
// the caller can skip the row without counting it as imported.
func (r *Reconciler) RecordAssociation(ctx context.Context, vocabulary, optionID, termID, language string) error {
	term, err := r.store.Load(ctx, EntityType, termID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrNotResolved
		}
		return fmt.Errorf("loading term %s: %w", termID, err)
	}

	addTrackedOption(term, optionID)
	return r.store.Save(ctx, term)
}

// ImportOptionSet reconciles a whole option set during a mapping-edit
// session. languages is ordered with the first language first; later
// languages apply only in semi-automatic mode. Returns the number of
// options imported.
func (r *Reconciler) ImportOptionSet(ctx context.Context, vocabulary string, languages []string, options map[string][]Option) (int, error) {
	if len(languages) == 0 {
		return 0, nil
	}
	if r.mode == ModeManual {
		return 0, nil
	}

	r.EnsureTrackingField(vocabulary)

	first := languages[0]
	imported := 0
	termIDs := make([]string, 0, len(options[first]))
	for _, opt := range options[first] {
		id, err := r.ResolveOrCreate(ctx, vocabulary, opt.ID, opt.Label, first)
		if err != nil {
			return imported, err
		}
		termIDs = append(termIDs, id)
		imported++
	}

	if r.mode != ModeSemiAutomatic {
		return imported, nil
	}

	for _, lang := range languages[1:] {
		for i, opt := range options[lang] {
			if i >= len(termIDs) {
				// Known limitation: the first language defines the term
				// set, extra later-language options have no pairing.
				slog.Warn("dropping unpaired option",
					"vocabulary", vocabulary, "language", lang, "option", opt.ID)
				continue
			}
			term, err := r.store.Load(ctx, EntityType, termIDs[i])
			if err != nil {
				return imported, fmt.Errorf("loading term %s: %w", termIDs[i], err)
			}
			tr := term.NewTranslation(lang)
			tr.SetLabel(opt.Label)
			addTrackedOption(term, opt.ID)
			if err := r.store.Save(ctx, term); err != nil {
				return imported, err
			}
			imported++
		}
	}
	return imported, nil
}

// TrackedOptionIDs returns the option ids recorded on a term. Host stores
// may hand the attribute back as []string or a loose []any; both normalize.
func TrackedOptionIDs(term entity.Entity) []string {
	return value.TextSlice(term.Get(TrackingField))
}

func addTrackedOption(term entity.Entity, optionID string) {
	ids := TrackedOptionIDs(term)
	for _, id := range ids {
		if id == optionID {
			return
		}
	}
	term.Set(TrackingField, append(ids, optionID))
}

package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Source is the entry source collaborator performing the actual scan.
// It is expected to absorb per-file problems into the entry outcomes and
// only return an error when the whole scan could not complete
type Source interface {
	Scan(ctx context.Context, locations []string, languageHint string) ([]Entry, error)
}

// Service owns the load lifecycle around a Store
// Configuration setters take effect at the next build; changing them does
// not re-group an already published catalog unless Rebuild is called
type Service struct {
	source Source
	store  *Store

	mu           sync.Mutex
	epoch        uint64
	locations    []string
	languageHint string
	hideInvalid  bool
	sortOrder    SortOrder
	filterQuery  string
	lastEntries  []Entry
	haveEntries  bool
}

func NewService(source Source, store *Store) *Service {
	return &Service{
		source:    source,
		store:     store,
		sortOrder: SortNameAscending,
	}
}

func (s *Service) Store() *Store {
	return s.store
}

func (s *Service) SetLocations(locations []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = append([]string(nil), locations...)
}

func (s *Service) SetLanguageHint(hint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.languageHint = hint
}

func (s *Service) SetHideInvalid(hide bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hideInvalid = hide
}

func (s *Service) SetSortOrder(order SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortOrder = order
}

// SetFilterQuery updates the live filter; it never triggers a reload and
// never touches the published state
func (s *Service) SetFilterQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterQuery = query
}

func (s *Service) FilterQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterQuery
}

// Presented returns the currently loaded groups narrowed by the live
// filter, or nil while loading or errored
func (s *Service) Presented() []Group {
	state := s.store.Current()
	if state.Phase != PhaseLoaded {
		return nil
	}
	return Filter(state.Groups, s.FilterQuery())
}

// StartLoad begins a new load cycle against the entry source.
// fromCache skips the synchronous Loading publication so a background
// refresh doesn't blank a view that is already showing loaded content.
// Each call takes a fresh epoch; if a newer load is started while this
// one runs, this one's result is discarded on completion so a slow stale
// scan can never clobber a fresher catalog
func (s *Service) StartLoad(ctx context.Context, fromCache bool) {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	if !fromCache {
		s.store.Publish(Loading())
	}
	locations := append([]string(nil), s.locations...)
	hint := s.languageHint
	s.mu.Unlock()

	go func() {
		entries, err := s.source.Scan(ctx, locations, hint)
		//Re-check and publish under the same lock that hands out epochs,
		//so a newer load can't slip in between the check and the publish
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.epoch != epoch {
			log.Debug().Uint64("epoch", epoch).Msg("Discarding superseded scan result")
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("Scan failed")
			s.store.Publish(Failed(err))
			return
		}
		s.lastEntries = entries
		s.haveEntries = true
		log.Info().Int("entries", len(entries)).Msg("Catalog loaded")
		s.store.Publish(Loaded(Build(entries, s.hideInvalid, s.sortOrder)))
	}()
}

// Rebuild re-groups the entries from the last successful scan with the
// current configuration, without going back to the entry source.
// No-op before the first successful load
func (s *Service) Rebuild() {
	s.mu.Lock()
	if !s.haveEntries {
		s.mu.Unlock()
		return
	}
	entries := s.lastEntries
	hide, order := s.hideInvalid, s.sortOrder
	s.mu.Unlock()
	s.store.Publish(Loaded(Build(entries, hide, order)))
}

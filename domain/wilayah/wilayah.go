package wilayah

import (
	"context"
	"errors"
	"sync"

	"github.com/silverium/labelgen/constant"
	"github.com/silverium/labelgen/infrastructure/cache"
	"github.com/silverium/labelgen/infrastructure/logger"
)

// Option is one selectable region at any level
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Level indexes the four cascading region levels
type Level int

const (
	LevelProvince Level = iota
	LevelCity
	LevelDistrict
	LevelVillage
	levelCount
)

// ErrInvalidLevel message for out-of-range levels
const ErrInvalidLevel = "region level out of range"

var levelNames = [levelCount]string{"province", "city", "district", "village"}

var levelNamespaces = [levelCount]string{
	constant.ProvinceNamespace,
	constant.CityNamespace,
	constant.DistrictNamespace,
	constant.VillageNamespace,
}

// Name returns the level's wire name
func (l Level) Name() string {
	if l < LevelProvince || l >= levelCount {
		return ""
	}
	return levelNames[l]
}

// LevelFromName resolves a wire name back to its level
func LevelFromName(name string) (Level, bool) {
	for l, n := range levelNames {
		if n == name {
			return Level(l), true
		}
	}
	return 0, false
}

// Lookup is the external region API boundary
type Lookup interface {
	Provinces(ctx context.Context) ([]Option, error)
	Cities(ctx context.Context, provinceID string) ([]Option, error)
	Districts(ctx context.Context, cityID string) ([]Option, error)
	Villages(ctx context.Context, districtID string) ([]Option, error)
}

// State is a snapshot of a selector for API responses
type State struct {
	Selected map[string]string   `json:"selected"`
	Options  map[string][]Option `json:"options"`
	Enabled  map[string]bool     `json:"enabled"`
}

// Selector holds one address form's cascading region state. Selecting at
// level k clears every deeper selection and option list before the fetch for
// level k+1, so stale child selections never survive a parent change.
type Selector struct {
	lookup Lookup
	cache  *cache.NamespaceLRU

	mu       sync.Mutex
	selected [levelCount]string
	options  [levelCount][]Option
}

// NewSelector creates a selector backed by the given lookup
func NewSelector(lookup Lookup, lru *cache.NamespaceLRU) *Selector {
	return &Selector{
		lookup: lookup,
		cache:  lru,
	}
}

// Load populates the province options. A failed fetch leaves the form usable
// with an empty list rather than blocking it.
func (s *Selector) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[LevelProvince] = s.fetch(ctx, LevelProvince, "root")
}

// Select records a choice at the given level, clears all deeper state and
// then fetches the next level's options.
func (s *Selector) Select(ctx context.Context, level Level, id string) error {
	if level < LevelProvince || level >= levelCount {
		return errors.New(ErrInvalidLevel)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if level > LevelProvince && s.selected[level-1] == "" {
		logger.CtxWarn(ctx, "Parent region not selected", logger.LoggerInfo{
			ContextFunction: constant.CtxSelect,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeParentNotSelected,
				Message: constant.ErrParentNotSelected,
				Type:    constant.ErrTypeWilayah,
			},
			Data: map[string]interface{}{
				constant.DataLevel: level.Name(),
			},
		})
		return errors.New(constant.ErrParentNotSelected)
	}

	s.selected[level] = id

	// Clear deeper levels before the child fetch, not after
	for l := level + 1; l < levelCount; l++ {
		s.selected[l] = ""
		s.options[l] = nil
	}

	if level < LevelVillage {
		s.options[level+1] = s.fetch(ctx, level+1, id)
	}

	logger.CtxDebug(ctx, "Region selected", logger.LoggerInfo{
		ContextFunction: constant.CtxSelect,
		Data: map[string]interface{}{
			constant.DataLevel:    level.Name(),
			constant.DataParentID: id,
		},
	})

	return nil
}

// Options returns the option list for a level
func (s *Selector) Options(level Level) []Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	if level < LevelProvince || level >= levelCount {
		return nil
	}
	out := make([]Option, len(s.options[level]))
	copy(out, s.options[level])
	return out
}

// Selected returns the chosen id at a level, empty if none
func (s *Selector) Selected(level Level) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if level < LevelProvince || level >= levelCount {
		return ""
	}
	return s.selected[level]
}

// Enabled reports whether a level can currently be selected
func (s *Selector) Enabled(level Level) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if level < LevelProvince || level >= levelCount {
		return false
	}
	return level == LevelProvince || s.selected[level-1] != ""
}

// Reset clears every selection and option list except provinces
func (s *Selector) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for l := LevelCity; l < levelCount; l++ {
		s.selected[l] = ""
		s.options[l] = nil
	}
	s.selected[LevelProvince] = ""
}

// State snapshots the selector for an API response
func (s *Selector) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Selected: make(map[string]string, levelCount),
		Options:  make(map[string][]Option, levelCount),
		Enabled:  make(map[string]bool, levelCount),
	}
	for l := LevelProvince; l < levelCount; l++ {
		name := l.Name()
		st.Selected[name] = s.selected[l]
		opts := make([]Option, len(s.options[l]))
		copy(opts, s.options[l])
		st.Options[name] = opts
		st.Enabled[name] = l == LevelProvince || s.selected[l-1] != ""
	}
	return st
}

// fetch loads a level's options keyed by the parent id, going through the
// cache first. Errors degrade to an empty option list.
func (s *Selector) fetch(ctx context.Context, level Level, parentID string) []Option {
	namespace := levelNamespaces[level]
	if val, found := s.cache.Get(namespace, parentID); found {
		if opts, ok := val.([]Option); ok {
			return opts
		}
	}

	var opts []Option
	var err error
	switch level {
	case LevelProvince:
		opts, err = s.lookup.Provinces(ctx)
	case LevelCity:
		opts, err = s.lookup.Cities(ctx, parentID)
	case LevelDistrict:
		opts, err = s.lookup.Districts(ctx, parentID)
	case LevelVillage:
		opts, err = s.lookup.Villages(ctx, parentID)
	}

	if err != nil {
		logger.CtxWarn(ctx, "Region option fetch failed, degrading to empty list", logger.LoggerInfo{
			ContextFunction: constant.CtxSelect,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeOptionFetch,
				Message: err.Error(),
				Type:    constant.ErrTypeWilayah,
			},
			Data: map[string]interface{}{
				constant.DataLevel:    level.Name(),
				constant.DataParentID: parentID,
			},
		})
		return []Option{}
	}

	if opts == nil {
		opts = []Option{}
	}

	s.cache.Set(namespace, parentID, opts)
	return opts
}

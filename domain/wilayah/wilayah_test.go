package wilayah

import (
	"context"
	"errors"
	"testing"

	"github.com/silverium/labelgen/constant"
	"github.com/silverium/labelgen/infrastructure/cache"
	"github.com/stretchr/testify/assert"
)

// fakeLookup serves canned region hierarchies and counts calls so cache
// behavior can be asserted.
type fakeLookup struct {
	provinces []Option
	cities    map[string][]Option
	districts map[string][]Option
	villages  map[string][]Option

	provinceErr error
	cityErr     error

	provinceCalls int
	cityCalls     int
}

func (f *fakeLookup) Provinces(ctx context.Context) ([]Option, error) {
	f.provinceCalls++
	if f.provinceErr != nil {
		return nil, f.provinceErr
	}
	return f.provinces, nil
}

func (f *fakeLookup) Cities(ctx context.Context, provinceID string) ([]Option, error) {
	f.cityCalls++
	if f.cityErr != nil {
		return nil, f.cityErr
	}
	return f.cities[provinceID], nil
}

func (f *fakeLookup) Districts(ctx context.Context, cityID string) ([]Option, error) {
	return f.districts[cityID], nil
}

func (f *fakeLookup) Villages(ctx context.Context, districtID string) ([]Option, error) {
	return f.villages[districtID], nil
}

func regionFixture() *fakeLookup {
	return &fakeLookup{
		provinces: []Option{{ID: "31", Name: "DKI Jakarta"}, {ID: "32", Name: "Jawa Barat"}},
		cities: map[string][]Option{
			"31": {{ID: "3171", Name: "Jakarta Selatan"}},
			"32": {{ID: "3204", Name: "Bandung"}},
		},
		districts: map[string][]Option{
			"3171": {{ID: "317101", Name: "Kebayoran Baru"}},
		},
		villages: map[string][]Option{
			"317101": {{ID: "3171011001", Name: "Gandaria Utara"}},
		},
	}
}

func newTestSelector(lookup Lookup) *Selector {
	return NewSelector(lookup, cache.NewNamespaceLRU(32))
}

func TestLoad_PopulatesProvinces(t *testing.T) {
	s := newTestSelector(regionFixture())

	s.Load(context.Background())

	opts := s.Options(LevelProvince)
	assert.Len(t, opts, 2)
	assert.Equal(t, "DKI Jakarta", opts[0].Name)
}

func TestLoad_FetchFailureDegradesToEmptyList(t *testing.T) {
	lookup := regionFixture()
	lookup.provinceErr = errors.New("connection refused")
	s := newTestSelector(lookup)

	s.Load(context.Background())

	assert.Empty(t, s.Options(LevelProvince))
	assert.True(t, s.Enabled(LevelProvince))
}

func TestSelect_CascadesDownward(t *testing.T) {
	s := newTestSelector(regionFixture())
	ctx := context.Background()
	s.Load(ctx)

	assert.NoError(t, s.Select(ctx, LevelProvince, "31"))
	assert.Equal(t, "31", s.Selected(LevelProvince))
	assert.Len(t, s.Options(LevelCity), 1)

	assert.NoError(t, s.Select(ctx, LevelCity, "3171"))
	assert.Len(t, s.Options(LevelDistrict), 1)

	assert.NoError(t, s.Select(ctx, LevelDistrict, "317101"))
	assert.Len(t, s.Options(LevelVillage), 1)

	assert.NoError(t, s.Select(ctx, LevelVillage, "3171011001"))
	assert.Equal(t, "3171011001", s.Selected(LevelVillage))
}

func TestSelect_ParentChangeClearsDeeperState(t *testing.T) {
	s := newTestSelector(regionFixture())
	ctx := context.Background()
	s.Load(ctx)

	assert.NoError(t, s.Select(ctx, LevelProvince, "31"))
	assert.NoError(t, s.Select(ctx, LevelCity, "3171"))
	assert.NoError(t, s.Select(ctx, LevelDistrict, "317101"))
	assert.NoError(t, s.Select(ctx, LevelVillage, "3171011001"))

	// Reselecting the province resets every deeper level
	assert.NoError(t, s.Select(ctx, LevelProvince, "32"))

	assert.Equal(t, "", s.Selected(LevelCity))
	assert.Equal(t, "", s.Selected(LevelDistrict))
	assert.Equal(t, "", s.Selected(LevelVillage))
	assert.Empty(t, s.Options(LevelDistrict))
	assert.Empty(t, s.Options(LevelVillage))

	opts := s.Options(LevelCity)
	assert.Len(t, opts, 1)
	assert.Equal(t, "Bandung", opts[0].Name)
}

func TestSelect_RequiresParent(t *testing.T) {
	s := newTestSelector(regionFixture())
	ctx := context.Background()
	s.Load(ctx)

	err := s.Select(ctx, LevelCity, "3171")

	assert.Error(t, err)
	assert.Equal(t, constant.ErrParentNotSelected, err.Error())
	assert.Equal(t, "", s.Selected(LevelCity))
}

func TestSelect_InvalidLevel(t *testing.T) {
	s := newTestSelector(regionFixture())

	assert.Error(t, s.Select(context.Background(), Level(-1), "x"))
	assert.Error(t, s.Select(context.Background(), Level(4), "x"))
}

func TestSelect_ChildFetchFailureDegrades(t *testing.T) {
	lookup := regionFixture()
	lookup.cityErr = errors.New("timeout")
	s := newTestSelector(lookup)
	ctx := context.Background()
	s.Load(ctx)

	err := s.Select(ctx, LevelProvince, "31")

	// The selection itself sticks even though the child fetch failed
	assert.NoError(t, err)
	assert.Equal(t, "31", s.Selected(LevelProvince))
	assert.Empty(t, s.Options(LevelCity))
	assert.True(t, s.Enabled(LevelCity))
}

func TestSelect_OptionsCached(t *testing.T) {
	lookup := regionFixture()
	s := newTestSelector(lookup)
	ctx := context.Background()
	s.Load(ctx)

	assert.NoError(t, s.Select(ctx, LevelProvince, "31"))
	assert.NoError(t, s.Select(ctx, LevelProvince, "32"))
	assert.NoError(t, s.Select(ctx, LevelProvince, "31"))

	// The third select hits the cache for province 31's cities
	assert.Equal(t, 2, lookup.cityCalls)
}

func TestEnabled(t *testing.T) {
	s := newTestSelector(regionFixture())
	ctx := context.Background()
	s.Load(ctx)

	assert.True(t, s.Enabled(LevelProvince))
	assert.False(t, s.Enabled(LevelCity))
	assert.False(t, s.Enabled(LevelVillage))

	assert.NoError(t, s.Select(ctx, LevelProvince, "31"))
	assert.True(t, s.Enabled(LevelCity))
	assert.False(t, s.Enabled(LevelDistrict))
}

func TestReset(t *testing.T) {
	s := newTestSelector(regionFixture())
	ctx := context.Background()
	s.Load(ctx)

	assert.NoError(t, s.Select(ctx, LevelProvince, "31"))
	assert.NoError(t, s.Select(ctx, LevelCity, "3171"))

	s.Reset()

	assert.Equal(t, "", s.Selected(LevelProvince))
	assert.Equal(t, "", s.Selected(LevelCity))
	// Province options survive a reset
	assert.Len(t, s.Options(LevelProvince), 2)
}

func TestState_Snapshot(t *testing.T) {
	s := newTestSelector(regionFixture())
	ctx := context.Background()
	s.Load(ctx)
	assert.NoError(t, s.Select(ctx, LevelProvince, "31"))

	st := s.State()

	assert.Equal(t, "31", st.Selected["province"])
	assert.Equal(t, "", st.Selected["city"])
	assert.Len(t, st.Options["province"], 2)
	assert.Len(t, st.Options["city"], 1)
	assert.True(t, st.Enabled["province"])
	assert.True(t, st.Enabled["city"])
	assert.False(t, st.Enabled["district"])
}

func TestLevelNames(t *testing.T) {
	assert.Equal(t, "province", LevelProvince.Name())
	assert.Equal(t, "village", LevelVillage.Name())
	assert.Equal(t, "", Level(9).Name())

	l, ok := LevelFromName("district")
	assert.True(t, ok)
	assert.Equal(t, LevelDistrict, l)

	_, ok = LevelFromName("country")
	assert.False(t, ok)
}

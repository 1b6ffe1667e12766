package services

//go:generate mockgen -source=divisions.go -destination=mock_divisions_test.go -package=services

import (
	"context"
	"sort"

	"github.com/sbilibin2017/bankcore/internal/logger"
	"github.com/sbilibin2017/bankcore/internal/models"
)

// DivisionSource fetches the administrative-division catalog from the remote service
type DivisionSource interface {
	Children(ctx context.Context, parentKind, parentCode, kind string) ([]models.Division, error)
	Lookup(ctx context.Context, kind, code string) (*models.Division, error)
}

// DivisionCache caches division listings
type DivisionCache interface {
	Get(ctx context.Context, kind, parentCode string) ([]models.Division, bool, error)
	Set(ctx context.Context, kind, parentCode string, divisions []models.Division) error
}

// DivisionService serves region, province, city and barangay listings, cache first.
type DivisionService struct {
	source DivisionSource
	cache  DivisionCache
}

func NewDivisionService(source DivisionSource, cache DivisionCache) *DivisionService {
	return &DivisionService{source: source, cache: cache}
}

func (svc *DivisionService) Regions(ctx context.Context) ([]models.Division, error) {
	return svc.cached(ctx, models.DivisionRegion, "", func() ([]models.Division, error) {
		return svc.source.Children(ctx, "", "", models.DivisionRegion)
	})
}

func (svc *DivisionService) Provinces(ctx context.Context, regionCode string) ([]models.Division, error) {
	return svc.cached(ctx, models.DivisionProvince, regionCode, func() ([]models.Division, error) {
		return svc.source.Children(ctx, models.DivisionRegion, regionCode, models.DivisionProvince)
	})
}

// CitiesAndMunicipalities lists cities, suffixed " (City)", followed by municipalities.
func (svc *DivisionService) CitiesAndMunicipalities(ctx context.Context, provinceCode string) ([]models.Division, error) {
	return svc.cached(ctx, models.DivisionCity, provinceCode, func() ([]models.Division, error) {
		cities, err := svc.source.Children(ctx, models.DivisionProvince, provinceCode, models.DivisionCity)
		if err != nil {
			return nil, err
		}
		municipalities, err := svc.source.Children(ctx, models.DivisionProvince, provinceCode, models.DivisionMunicipality)
		if err != nil {
			return nil, err
		}

		out := make([]models.Division, 0, len(cities)+len(municipalities))
		for _, c := range cities {
			out = append(out, models.Division{Code: c.Code, Name: c.Name + " (City)"})
		}
		return append(out, municipalities...), nil
	})
}

// Barangays lists barangays of a city, or of a municipality when code is not a city.
func (svc *DivisionService) Barangays(ctx context.Context, code string) ([]models.Division, error) {
	return svc.cached(ctx, models.DivisionBarangay, code, func() ([]models.Division, error) {
		parentKind := models.DivisionCity
		city, err := svc.source.Lookup(ctx, models.DivisionCity, code)
		if err != nil {
			return nil, err
		}
		if city == nil {
			parentKind = models.DivisionMunicipality
		}
		return svc.source.Children(ctx, parentKind, code, models.DivisionBarangay)
	})
}

// Name resolves a code to its display name. Unknown codes and lookup
// failures resolve to the code itself. A city code falls back to the
// municipality catalog.
func (svc *DivisionService) Name(ctx context.Context, kind, code string) string {
	if code == "" {
		return ""
	}
	kinds := []string{kind}
	if kind == models.DivisionCity {
		kinds = append(kinds, models.DivisionMunicipality)
	}
	for _, k := range kinds {
		d, err := svc.source.Lookup(ctx, k, code)
		if err != nil {
			logger.Log.Errorw("failed to resolve division", "kind", k, "code", code, "error", err)
			return code
		}
		if d != nil {
			return d.Name
		}
	}
	return code
}

func (svc *DivisionService) cached(ctx context.Context, kind, parentCode string, load func() ([]models.Division, error)) ([]models.Division, error) {
	if divisions, ok, err := svc.cache.Get(ctx, kind, parentCode); err == nil && ok {
		return divisions, nil
	} else if err != nil {
		logger.Log.Error(err)
	}

	divisions, err := load()
	if err != nil {
		logger.Log.Error(err)
		return nil, err
	}
	if kind != models.DivisionCity {
		sort.SliceStable(divisions, func(i, j int) bool { return divisions[i].Name < divisions[j].Name })
	}

	if err := svc.cache.Set(ctx, kind, parentCode, divisions); err != nil {
		logger.Log.Error(err)
	}
	return divisions, nil
}

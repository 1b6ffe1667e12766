package handlers

//go:generate mockgen -source=divisions.go -destination=mock_divisions_test.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/bankcore/internal/models"
)

// DivisionLister lists the administrative-division catalog level by level.
type DivisionLister interface {
	Regions(ctx context.Context) ([]models.Division, error)
	Provinces(ctx context.Context, regionCode string) ([]models.Division, error)
	CitiesAndMunicipalities(ctx context.Context, provinceCode string) ([]models.Division, error)
	Barangays(ctx context.Context, code string) ([]models.Division, error)
}

// divisionsHandler writes the list loaded by the code in the path.
func divisionsHandler(load func(ctx context.Context, code string) ([]models.Division, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		divisions, err := load(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "Division catalog unavailable"})
			return
		}
		if divisions == nil {
			divisions = []models.Division{}
		}
		writeJSON(w, http.StatusOK, divisions)
	}
}

// NewRegionsHandler returns an HTTP handler listing regions.
// @Summary List regions
// @Tags divisions
// @Produce json
// @Success 200 {array} models.Division
// @Failure 502 {object} handlers.ErrorResponse "Catalog unavailable"
// @Router /api/regions [get]
func NewRegionsHandler(svc DivisionLister) http.HandlerFunc {
	return divisionsHandler(func(ctx context.Context, _ string) ([]models.Division, error) {
		return svc.Regions(ctx)
	})
}

// NewProvincesHandler returns an HTTP handler listing provinces of a region.
// @Summary List provinces
// @Tags divisions
// @Produce json
// @Param code path string true "Region code"
// @Success 200 {array} models.Division
// @Failure 502 {object} handlers.ErrorResponse "Catalog unavailable"
// @Router /api/provinces/{code} [get]
func NewProvincesHandler(svc DivisionLister) http.HandlerFunc {
	return divisionsHandler(svc.Provinces)
}

// NewCitiesHandler returns an HTTP handler listing cities and municipalities of a province.
// @Summary List cities and municipalities
// @Tags divisions
// @Produce json
// @Param code path string true "Province code"
// @Success 200 {array} models.Division
// @Failure 502 {object} handlers.ErrorResponse "Catalog unavailable"
// @Router /api/cities/{code} [get]
func NewCitiesHandler(svc DivisionLister) http.HandlerFunc {
	return divisionsHandler(svc.CitiesAndMunicipalities)
}

// NewBarangaysHandler returns an HTTP handler listing barangays of a city or municipality.
// @Summary List barangays
// @Tags divisions
// @Produce json
// @Param code path string true "City or municipality code"
// @Success 200 {array} models.Division
// @Failure 502 {object} handlers.ErrorResponse "Catalog unavailable"
// @Router /api/barangays/{code} [get]
func NewBarangaysHandler(svc DivisionLister) http.HandlerFunc {
	return divisionsHandler(svc.Barangays)
}

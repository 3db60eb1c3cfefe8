package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/tileroute/tileroute/pkg/apperr"
	"github.com/tileroute/tileroute/pkg/geo"
	"github.com/tileroute/tileroute/pkg/router"
)

// routeRequest is the validated shape of a /v1/route query. Mirrors the
// controller request structs in the teacher's routing.go, one per
// endpoint, validated with go-playground/validator before the service
// call runs.
type routeRequest struct {
	Profile string  `validate:"omitempty,oneof=car foot"`
	OrigLat float64 `validate:"gte=-90,lte=90"`
	OrigLon float64 `validate:"gte=-180,lte=180"`
	DestLat float64 `validate:"gte=-90,lte=90"`
	DestLon float64 `validate:"gte=-180,lte=180"`
}

type routeAPI struct {
	router   *router.Router
	log      *zap.Logger
	validate *validator.Validate
	trans    ut.Translator
}

func newRouteAPI(r *router.Router, log *zap.Logger) *routeAPI {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &routeAPI{router: r, log: log, validate: validate, trans: trans}
}

type envelope map[string]interface{}

func (a *routeAPI) writeJSON(w http.ResponseWriter, status int, data envelope) {
	body, err := json.Marshal(data)
	if err != nil {
		a.log.Error("routeserver: marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func (a *routeAPI) badRequest(w http.ResponseWriter, errs ...string) {
	a.writeJSON(w, http.StatusBadRequest, envelope{"error": errs})
}

func (a *routeAPI) serverError(w http.ResponseWriter, err error) {
	a.log.Error("routeserver: internal error", zap.Error(err))
	a.writeJSON(w, http.StatusInternalServerError, envelope{"error": "internal server error"})
}

func (a *routeAPI) translateErrors(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Translate(a.trans))
	}
	return out
}

// computeRoute is the one endpoint this host exposes: GET
// /v1/route?profile=car&orig_lat=..&orig_lon=..&dest_lat=..&dest_lon=..
// Wraps Router.Route (spec §4.7), the only routing surface this demo
// host exists to demonstrate — no turn-by-turn guidance, no re-routing.
func (a *routeAPI) computeRoute(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	req := routeRequest{Profile: strings.ToLower(q.Get("profile"))}
	if req.Profile == "" {
		req.Profile = "car"
	}

	var parseErrs []string
	req.OrigLat = parseFloat(q.Get("orig_lat"), "orig_lat", &parseErrs)
	req.OrigLon = parseFloat(q.Get("orig_lon"), "orig_lon", &parseErrs)
	req.DestLat = parseFloat(q.Get("dest_lat"), "dest_lat", &parseErrs)
	req.DestLon = parseFloat(q.Get("dest_lon"), "dest_lon", &parseErrs)
	if len(parseErrs) > 0 {
		a.badRequest(w, parseErrs...)
		return
	}

	if err := a.validate.Struct(req); err != nil {
		a.badRequest(w, a.translateErrors(err)...)
		return
	}

	waypoints := []geo.Coordinate{
		geo.NewCoordinate(req.OrigLat, req.OrigLon),
		geo.NewCoordinate(req.DestLat, req.DestLon),
	}
	result := a.router.Route(req.Profile, waypoints)

	if result.Status != apperr.OK {
		status := http.StatusUnprocessableEntity
		if result.Status == apperr.InternalError {
			status = http.StatusInternalServerError
		}
		a.writeJSON(w, status, envelope{
			"status":  result.Status.String(),
			"message": result.Message,
		})
		return
	}

	points := make([][2]float64, len(result.Polyline))
	for i, p := range result.Polyline {
		points[i] = [2]float64{p.Lat, p.Lon}
	}
	edgeIds := make([]uint64, len(result.EdgeIds))
	for i, id := range result.EdgeIds {
		edgeIds[i] = uint64(id)
	}

	a.writeJSON(w, http.StatusOK, envelope{
		"status":     result.Status.String(),
		"distance_m": result.DistanceM,
		"duration_s": result.DurationS,
		"points":     points,
		"edge_ids":   edgeIds,
	})
}

func parseFloat(raw, field string, errs *[]string) float64 {
	if raw == "" {
		*errs = append(*errs, fmt.Sprintf("%s is required", field))
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s must be a number", field))
	}
	return v
}

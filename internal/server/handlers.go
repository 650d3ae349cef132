package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
	"github.com/rshade/footprint/internal/logging"
)

// Error codes returned in JSON error bodies.
const (
	codeInvalidQuantity = "invalid_quantity"
	codeUnknownRegion   = "unknown_region"
	codeUnknownDiet     = "unknown_diet_type"
	codeOverflow        = "calculation_overflow"
	codeBadRequest      = "bad_request"
	codeInternal        = "internal"
)

// errorCode maps a calculation error to its API code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, greenops.ErrInvalidQuantity):
		return codeInvalidQuantity
	case errors.Is(err, greenops.ErrUnknownRegion):
		return codeUnknownRegion
	case errors.Is(err, greenops.ErrUnknownDietType):
		return codeUnknownDiet
	case errors.Is(err, greenops.ErrCalculationOverflow):
		return codeOverflow
	default:
		return codeInternal
	}
}

func statusFor(code string) int {
	if code == codeInternal {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// errorResponse is the JSON body of every API error.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		http.Error(w, "encoding response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// footprintRequest is the JSON API input. Region and diet fall back to the
// server defaults; omitted quantities are zero.
type footprintRequest struct {
	Region                 string  `json:"region"`
	Diet                   string  `json:"diet"`
	DistanceKmPerDay       float64 `json:"distance_km_per_day"`
	ElectricityKWhPerMonth float64 `json:"electricity_kwh_per_month"`
	WasteKgPerWeek         float64 `json:"waste_kg_per_week"`
	MealsPerDay            int     `json:"meals_per_day"`
}

// footprintResponse is the JSON API output.
type footprintResponse struct {
	greenops.Footprint
	Equivalencies *greenops.EquivalencyOutput `json:"equivalencies,omitempty"`
}

func (s *Server) handleFootprint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req footprintRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "request body must contain a single JSON object")
		return
	}

	activity, err := s.requestActivity(req)
	if err == nil {
		var fp greenops.Footprint
		fp, err = s.calc.CalculateContext(ctx, activity)
		if err == nil {
			s.metrics.RecordCalculation("api", fp.Total, nil)
			resp := footprintResponse{Footprint: fp}
			if eq, eqErr := greenops.FootprintEquivalencies(fp); eqErr == nil && !eq.IsEmpty {
				resp.Equivalencies = &eq
			}
			writeJSON(w, http.StatusOK, resp)
			return
		}
	}

	code := errorCode(err)
	s.metrics.RecordCalculation("api", 0, err)
	logging.FromContext(ctx).Debug().Ctx(ctx).Err(err).Str("code", code).Msg("footprint request rejected")
	writeError(w, statusFor(code), code, err.Error())
}

func (s *Server) requestActivity(req footprintRequest) (greenops.Activity, error) {
	a := greenops.Activity{
		Region:                 strings.TrimSpace(req.Region),
		DistanceKmPerDay:       req.DistanceKmPerDay,
		ElectricityKWhPerMonth: req.ElectricityKWhPerMonth,
		WasteKgPerWeek:         req.WasteKgPerWeek,
		MealsPerDay:            req.MealsPerDay,
	}
	if a.Region == "" {
		a.Region = s.cfg.Defaults.Region
	}

	a.Diet = s.cfg.Defaults.Diet
	if strings.TrimSpace(req.Diet) != "" {
		diet, err := greenops.ParseDietType(req.Diet)
		if err != nil {
			return greenops.Activity{}, err
		}
		a.Diet = diet
	}
	return a, nil
}

// regionsResponse lists the factor table regions.
type regionsResponse struct {
	Regions       []string           `json:"regions"`
	DietTypes     []factors.DietType `json:"diet_types"`
	DefaultRegion string             `json:"default_region,omitempty"`
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	regions := s.calc.Regions()
	if regions == nil {
		regions = []string{}
	}
	writeJSON(w, http.StatusOK, regionsResponse{
		Regions:       regions,
		DietTypes:     factors.DietTypes(),
		DefaultRegion: s.cfg.Defaults.Region,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// formField is one numeric input on the page.
type formField struct {
	Name  string
	Label string
	Unit  string
	Value string
	Step  string
	Max   int
}

// pageData feeds templates/index.html.
type pageData struct {
	Regions       []string
	Diets         []factors.DietType
	Region        string
	Diet          string
	Fields        []formField
	Result        *greenops.Footprint
	Lines         []string
	TotalLine     string
	TreesLine     string
	Equivalencies string
	Error         string
}

func (s *Server) newPageData(values map[string]string) pageData {
	return pageData{
		Regions: s.calc.Regions(),
		Diets:   factors.DietTypes(),
		Region:  values[greenops.FieldRegion],
		Diet:    values[greenops.FieldDiet],
		Fields: []formField{
			{
				Name: greenops.FieldDistance, Label: "Daily distance traveled", Unit: "km",
				Value: values[greenops.FieldDistance], Step: "any", Max: greenops.HintMaxDistanceKmPerDay,
			},
			{
				Name: greenops.FieldElectricity, Label: "Monthly electricity consumption", Unit: "kWh",
				Value: values[greenops.FieldElectricity], Step: "any", Max: greenops.HintMaxElectricityKWhPerMonth,
			},
			{
				Name: greenops.FieldWaste, Label: "Weekly waste generated", Unit: "kg",
				Value: values[greenops.FieldWaste], Step: "any", Max: greenops.HintMaxWasteKgPerWeek,
			},
			{
				Name: greenops.FieldMeals, Label: "Meals per day", Unit: "meals",
				Value: values[greenops.FieldMeals], Step: "1",
			},
		},
	}
}

func (s *Server) defaultValues() map[string]string {
	d := s.cfg.Defaults
	return map[string]string{
		greenops.FieldRegion:      d.Region,
		greenops.FieldDiet:        string(d.Diet),
		greenops.FieldDistance:    strconv.FormatFloat(d.DistanceKmPerDay, 'f', -1, 64),
		greenops.FieldElectricity: strconv.FormatFloat(d.ElectricityKWhPerMonth, 'f', -1, 64),
		greenops.FieldWaste:       strconv.FormatFloat(d.WasteKgPerWeek, 'f', -1, 64),
		greenops.FieldMeals:       strconv.Itoa(d.MealsPerDay),
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, s.newPageData(s.defaultValues()))
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		data := s.newPageData(s.defaultValues())
		data.Error = "Could not read the form: " + err.Error()
		s.renderPage(w, r, http.StatusBadRequest, data)
		return
	}

	values := make(map[string]string, 6)
	for _, name := range []string{
		greenops.FieldRegion, greenops.FieldDiet, greenops.FieldDistance,
		greenops.FieldElectricity, greenops.FieldWaste, greenops.FieldMeals,
	} {
		values[name] = r.PostForm.Get(name)
	}
	data := s.newPageData(values)

	activity, err := greenops.ParseActivity(values)
	var fp greenops.Footprint
	if err == nil {
		fp, err = s.calc.CalculateContext(ctx, activity)
	}
	if err != nil {
		s.metrics.RecordCalculation("form", 0, err)
		data.Error = err.Error()
		s.renderPage(w, r, http.StatusBadRequest, data)
		return
	}

	s.metrics.RecordCalculation("form", fp.Total, nil)
	data.Result = &fp
	for _, ce := range fp.ByCategory() {
		data.Lines = append(data.Lines, greenops.CategoryLine(fp, ce.Category))
	}
	data.TotalLine = greenops.TotalLine(fp)
	data.TreesLine = greenops.TreesLine(fp)
	if eq, eqErr := greenops.FootprintEquivalencies(fp); eqErr == nil && !eq.IsEmpty {
		data.Equivalencies = eq.DisplayText
	}
	s.renderPage(w, r, http.StatusOK, data)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		ctx := r.Context()
		logging.FromContext(ctx).Error().Ctx(ctx).Err(err).Msg("rendering page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

package handlers

import (
	"bytes"
	"delivery-time-service/internal/domain"
	"delivery-time-service/internal/platform/obs"
	"delivery-time-service/internal/ports"
	"delivery-time-service/internal/services"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(
	template.New("pages").Funcs(template.FuncMap{"selectField": selectField}).ParseFS(templateFS, "templates/*.html"),
)

type selectView struct {
	Label    string
	Name     string
	Options  []domain.Option
	Selected string
}

func selectField(label, name string, options []domain.Option, form map[string]string) selectView {
	return selectView{Label: label, Name: name, Options: options, Selected: form[name]}
}

type formOptions struct {
	Ages               []int
	Ratings            []string
	Weather            []domain.Option
	Traffic            []domain.Option
	OrderType          []domain.Option
	VehicleType        []domain.Option
	VehicleCondition   []domain.Option
	MultipleDeliveries []domain.Option
	Festival           []domain.Option
	City               []domain.Option
}

var formChoices = func() formOptions {
	ages := make([]int, 0, 33)
	for a := 18; a <= 50; a++ {
		ages = append(ages, a)
	}
	return formOptions{
		Ages:               ages,
		Ratings:            []string{"1.0", "2.0", "3.0", "4.0", "5.0"},
		Weather:            domain.WeatherOptions,
		Traffic:            domain.TrafficOptions,
		OrderType:          domain.OrderTypeOptions,
		VehicleType:        domain.VehicleTypeOptions,
		VehicleCondition:   domain.VehicleConditionOptions,
		MultipleDeliveries: domain.MultipleDeliveriesOptions,
		Festival:           domain.FestivalOptions,
		City:               domain.CityOptions,
	}
}()

type calendarView struct {
	Day, Month, Year, Quarter int
	Weekday                   string
	Weekend                   string
}

type formPage struct {
	Options  formOptions
	Form     map[string]string
	Calendar *calendarView
	PerKm    string
	Result   string
	Error    string
}

type aboutPage struct {
	ModelVersion string
	FeatureCount int
}

// PageHandler serves the server-rendered form and About pages.
type PageHandler struct {
	Service Estimator
	Model   ports.DeliveryTimeModel
	Now     func() time.Time
}

func (h *PageHandler) defaultForm() map[string]string {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return map[string]string{
		fieldAge:         "18",
		fieldRating:      "1.0",
		fieldDate:        now().Format(dateLayout),
		fieldPrepTime:    "15",
		fieldDistanceKm:  "5.0",
		fieldFestival:    "0",
		fieldWeather:     "1",
		fieldTraffic:     "1",
		fieldOrderType:   "1",
		fieldVehicleType: "1",
		fieldCity:        "1",
	}
}

// Form renders the delivery form on GET and the prediction on POST.
func (h *PageHandler) Form(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowOnly(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	page := formPage{Options: formChoices, Form: h.defaultForm()}
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "form", page)
		return
	}

	if err := r.ParseForm(); err != nil {
		page.Error = services.InvalidSubmissionMessage
		h.render(w, r, http.StatusBadRequest, "form", page)
		return
	}
	page.Form = formValues(r.PostForm)

	req := requestFromForm(r.PostForm)
	sub := services.ResolveDistance(submissionFromRequest(req))
	if sub.Date != nil {
		cal := domain.CalendarFromDate(*sub.Date)
		weekend := "No"
		if cal.IsWeekend == 1 {
			weekend = "Yes"
		}
		page.Calendar = &calendarView{
			Day: cal.Day, Month: cal.Month, Year: cal.Year, Quarter: cal.Quarter,
			Weekday: cal.WeekdayName(), Weekend: weekend,
		}
	}
	if sub.PrepTimeMinutes != nil && sub.DistanceKm != nil && *sub.DistanceKm > 0 {
		page.PerKm = fmt.Sprintf("%.2f", sub.PrepareTimePerKm())
	}

	est, err := h.Service.Estimate(r.Context(), sub)
	switch {
	case errors.Is(err, services.ErrInvalidSubmission):
		page.Error = services.InvalidSubmissionMessage
		h.render(w, r, http.StatusUnprocessableEntity, "form", page)
	case err != nil:
		obs.Logger(r.Context()).Error("estimate failed", zap.Error(err))
		page.Error = "The prediction could not be computed. Please try again later."
		h.render(w, r, http.StatusInternalServerError, "form", page)
	default:
		page.Result = est.Message()
		h.render(w, r, http.StatusOK, "form", page)
	}
}

// About renders the static description page.
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	h.render(w, r, http.StatusOK, "about", aboutPage{
		ModelVersion: h.Model.Version(),
		FeatureCount: len(h.Model.FeatureNames()),
	})
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		obs.Logger(r.Context()).Error("render page failed", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func formValues(form url.Values) map[string]string {
	out := make(map[string]string, len(form))
	for k := range form {
		out[k] = form.Get(k)
	}
	return out
}

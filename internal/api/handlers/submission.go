package handlers

import (
	"delivery-time-service/internal/api/dto"
	"delivery-time-service/internal/domain"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Form and JSON field names.
const (
	fieldAge                = "age"
	fieldRating             = "rating"
	fieldWeather            = "weather"
	fieldTraffic            = "traffic"
	fieldOrderType          = "order_type"
	fieldVehicleType        = "vehicle_type"
	fieldVehicleCondition   = "vehicle_condition"
	fieldMultipleDeliveries = "multiple_deliveries"
	fieldFestival           = "festival"
	fieldCity               = "city"
	fieldDate               = "date"
	fieldPrepTime           = "prep_time"
	fieldDistanceKm         = "distance_km"
	fieldPickupLat          = "pickup_lat"
	fieldPickupLon          = "pickup_lon"
	fieldDropoffLat         = "dropoff_lat"
	fieldDropoffLon         = "dropoff_lon"
)

func codePtr[T ~int](p *int) *T {
	if p == nil {
		return nil
	}
	v := T(*p)
	return &v
}

func parseDate(s string) *time.Time {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}

func coordsPtr(c *dto.CoordinatesRequest) *domain.Coordinates {
	if c == nil {
		return nil
	}
	return &domain.Coordinates{Lat: c.Lat, Lon: c.Lon}
}

// submissionFromRequest maps a JSON body onto the domain form. Unparseable
// values become absent and are rejected by validation.
func submissionFromRequest(req dto.EstimateRequest) domain.Submission {
	return domain.Submission{
		CourierAge:         req.Age,
		CourierRating:      req.Rating,
		Weather:            codePtr[domain.WeatherCondition](req.Weather),
		Traffic:            codePtr[domain.TrafficDensity](req.Traffic),
		OrderType:          codePtr[domain.OrderType](req.OrderType),
		VehicleType:        codePtr[domain.VehicleType](req.VehicleType),
		VehicleCondition:   codePtr[domain.VehicleCondition](req.VehicleCondition),
		MultipleDeliveries: req.MultipleDeliveries,
		Festival:           req.Festival,
		City:               codePtr[domain.CityType](req.City),
		Date:               parseDate(req.Date),
		PrepTimeMinutes:    req.PrepTime,
		DistanceKm:         req.DistanceKm,
		Pickup:             coordsPtr(req.Pickup),
		Dropoff:            coordsPtr(req.Dropoff),
	}
}

func formInt(form url.Values, key string) *int {
	s := strings.TrimSpace(form.Get(key))
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func formFloat(form url.Values, key string) *float64 {
	s := strings.TrimSpace(form.Get(key))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func formCoords(form url.Values, latKey, lonKey string) *dto.CoordinatesRequest {
	lat, lon := formFloat(form, latKey), formFloat(form, lonKey)
	if lat == nil || lon == nil {
		return nil
	}
	return &dto.CoordinatesRequest{Lat: *lat, Lon: *lon}
}

// requestFromForm reads a submitted HTML form into the same shape as the
// JSON API accepts.
func requestFromForm(form url.Values) dto.EstimateRequest {
	return dto.EstimateRequest{
		Age:                formInt(form, fieldAge),
		Rating:             formFloat(form, fieldRating),
		Weather:            formInt(form, fieldWeather),
		Traffic:            formInt(form, fieldTraffic),
		OrderType:          formInt(form, fieldOrderType),
		VehicleType:        formInt(form, fieldVehicleType),
		VehicleCondition:   formInt(form, fieldVehicleCondition),
		MultipleDeliveries: formInt(form, fieldMultipleDeliveries),
		Festival:           formInt(form, fieldFestival),
		City:               formInt(form, fieldCity),
		Date:               form.Get(fieldDate),
		PrepTime:           formInt(form, fieldPrepTime),
		DistanceKm:         formFloat(form, fieldDistanceKm),
		Pickup:             formCoords(form, fieldPickupLat, fieldPickupLon),
		Dropoff:            formCoords(form, fieldDropoffLat, fieldDropoffLon),
	}
}

func featuresResponse(v domain.FeatureVector) []dto.FeatureResponse {
	out := make([]dto.FeatureResponse, 0, v.Len())
	for i, n := range v.Names {
		out = append(out, dto.FeatureResponse{Name: n, Value: v.Values[i]})
	}
	return out
}

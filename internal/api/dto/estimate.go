package dto

import "time"

type CoordinatesRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// EstimateRequest mirrors the delivery form. Categorical fields carry the
// numeric codes listed on the form page.
type EstimateRequest struct {
	Age                *int                `json:"age"`
	Rating             *float64            `json:"rating"`
	Weather            *int                `json:"weather"`
	Traffic            *int                `json:"traffic"`
	OrderType          *int                `json:"order_type"`
	VehicleType        *int                `json:"vehicle_type"`
	VehicleCondition   *int                `json:"vehicle_condition"`
	MultipleDeliveries *int                `json:"multiple_deliveries"`
	Festival           *int                `json:"festival"`
	City               *int                `json:"city"`
	Date               string              `json:"date"`
	PrepTime           *int                `json:"prep_time"`
	DistanceKm         *float64            `json:"distance_km"`
	Pickup             *CoordinatesRequest `json:"pickup"`
	Dropoff            *CoordinatesRequest `json:"dropoff"`
}

type FeatureResponse struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type EstimateResponse struct {
	Minutes      float64           `json:"minutes"`
	Formatted    string            `json:"formatted"`
	Message      string            `json:"message"`
	ModelVersion string            `json:"model_version"`
	Cached       bool              `json:"cached"`
	Features     []FeatureResponse `json:"features"`
}

type FeaturesResponse struct {
	ModelVersion string   `json:"model_version"`
	FeatureNames []string `json:"feature_names"`
}

type RecordResponse struct {
	ID           string            `json:"id"`
	CreatedAt    time.Time         `json:"created_at"`
	ModelVersion string            `json:"model_version"`
	Minutes      float64           `json:"minutes"`
	Formatted    string            `json:"formatted"`
	Features     []FeatureResponse `json:"features"`
}

type ListRecordsResponse struct {
	Estimates []RecordResponse `json:"estimates"`
}

package domain

import "time"

// Submission is one filled-in delivery form. Pointer fields distinguish a
// missing value from a zero value.
type Submission struct {
	CourierAge         *int              `validate:"required,min=18,max=50"`
	CourierRating      *float64          `validate:"required,min=1,max=5"`
	Weather            *WeatherCondition `validate:"required,min=1,max=7"`
	Traffic            *TrafficDensity   `validate:"required,min=1,max=4"`
	OrderType          *OrderType        `validate:"required,min=1,max=4"`
	VehicleType        *VehicleType      `validate:"required,min=1,max=3"`
	VehicleCondition   *VehicleCondition `validate:"required,min=1,max=3"`
	MultipleDeliveries *int              `validate:"required,min=0,max=3"`
	Festival           *int              `validate:"required,min=0,max=1"`
	City               *CityType         `validate:"required,min=1,max=3"`
	Date               *time.Time        `validate:"required"`
	PrepTimeMinutes    *int              `validate:"required,min=0,max=120"`
	DistanceKm         *float64          `validate:"required,min=0.1,max=50"`

	// Optional; used to derive DistanceKm when it is not given.
	Pickup  *Coordinates
	Dropoff *Coordinates
}

// PrepareTimePerKm is order preparation minutes divided by distance.
// It returns 0 when either input is missing or distance is not positive.
func (s Submission) PrepareTimePerKm() float64 {
	if s.PrepTimeMinutes == nil || s.DistanceKm == nil || *s.DistanceKm <= 0 {
		return 0
	}
	return float64(*s.PrepTimeMinutes) / *s.DistanceKm
}

// Raw flattens a validated submission into named model inputs.
// It must only be called after validation succeeded.
func (s Submission) Raw() map[string]float64 {
	cal := CalendarFromDate(*s.Date)

	return map[string]float64{
		FeatureCourierAge:         float64(*s.CourierAge),
		FeatureCourierRating:      *s.CourierRating,
		FeatureWeather:            float64(*s.Weather),
		FeatureTraffic:            float64(*s.Traffic),
		FeatureVehicleCondition:   float64(*s.VehicleCondition),
		FeatureOrderType:          float64(*s.OrderType),
		FeatureVehicleType:        float64(*s.VehicleType),
		FeatureMultipleDeliveries: float64(*s.MultipleDeliveries),
		FeatureFestival:           float64(*s.Festival),
		FeatureCity:               float64(*s.City),
		FeatureDay:                float64(cal.Day),
		FeatureMonth:              float64(cal.Month),
		FeatureQuarter:            float64(cal.Quarter),
		FeatureYear:               float64(cal.Year),
		FeatureDayOfWeek:          float64(cal.DayOfWeek),
		FeatureIsWeekend:          float64(cal.IsWeekend),
		FeaturePrepareTime:        float64(*s.PrepTimeMinutes),
		FeatureDistance:           *s.DistanceKm,
		FeaturePrepareTimePerKm:   s.PrepareTimePerKm(),
	}
}

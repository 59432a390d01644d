package domain

// Column names used by the trained delivery-time model.
const (
	FeatureCourierAge         = "Delivery_person_Age"
	FeatureCourierRating      = "Delivery_person_Ratings"
	FeatureWeather            = "Weather_conditions"
	FeatureTraffic            = "Road_traffic_density"
	FeatureVehicleCondition   = "Vehicle_condition"
	FeatureOrderType          = "Type_of_order"
	FeatureVehicleType        = "Type_of_vehicle"
	FeatureMultipleDeliveries = "multiple_deliveries"
	FeatureFestival           = "Festival"
	FeatureCity               = "City"
	FeatureDay                = "day"
	FeatureMonth              = "month"
	FeatureQuarter            = "quarter"
	FeatureYear               = "year"
	FeatureDayOfWeek          = "day_of_week"
	FeatureIsWeekend          = "is_weekend"
	FeaturePrepareTime        = "order_prepare_time"
	FeatureDistance           = "distance"
	FeaturePrepareTimePerKm   = "prepare_time_per_km"
)

// FeatureNames lists every field the form produces. The model artifact
// decides the order actually sent to it.
var FeatureNames = []string{
	FeatureCourierAge,
	FeatureCourierRating,
	FeatureWeather,
	FeatureTraffic,
	FeatureVehicleCondition,
	FeatureOrderType,
	FeatureVehicleType,
	FeatureMultipleDeliveries,
	FeatureFestival,
	FeatureCity,
	FeatureDay,
	FeatureMonth,
	FeatureQuarter,
	FeatureYear,
	FeatureDayOfWeek,
	FeatureIsWeekend,
	FeaturePrepareTime,
	FeatureDistance,
	FeaturePrepareTimePerKm,
}

// FeatureVector is one model input row. Names[i] labels Values[i] and the
// order is the order the model was trained with.
type FeatureVector struct {
	Names  []string
	Values []float64
}

func (v FeatureVector) Len() int { return len(v.Values) }

// Get returns the value for name and whether it was present.
func (v FeatureVector) Get(name string) (float64, bool) {
	for i, n := range v.Names {
		if n == name {
			return v.Values[i], true
		}
	}
	return 0, false
}

// SameOrder reports whether the vector is labelled exactly by names.
func (v FeatureVector) SameOrder(names []string) bool {
	if len(v.Names) != len(names) || len(v.Values) != len(names) {
		return false
	}
	for i := range names {
		if v.Names[i] != names[i] {
			return false
		}
	}
	return true
}

package domain

// Categorical inputs arrive as the small integer codes the model was trained
// on. Labels exist only for rendering the form.

type WeatherCondition int

const (
	WeatherClear WeatherCondition = iota + 1
	WeatherWindy
	WeatherStormy
	WeatherFoggy
	WeatherSunny
	WeatherCloudy
	WeatherSandstorms
)

type TrafficDensity int

const (
	TrafficLow TrafficDensity = iota + 1
	TrafficMedium
	TrafficHigh
	TrafficVeryHigh
)

type OrderType int

const (
	OrderMeal OrderType = iota + 1
	OrderDrinks
	OrderSnack
	OrderBuffet
)

type VehicleType int

const (
	VehicleElectricScooter VehicleType = iota + 1
	VehicleMotorcycle
	VehicleScooter
)

type VehicleCondition int

const (
	ConditionNew VehicleCondition = iota + 1
	ConditionOld
	ConditionVeryOld
)

type CityType int

const (
	CityMetropolitan CityType = iota + 1
	CityUrban
	CitySemiUrban
)

// Option is one selectable code with its display label.
type Option struct {
	Code  int
	Label string
}

var (
	WeatherOptions = []Option{
		{int(WeatherClear), "Clear"},
		{int(WeatherWindy), "Windy"},
		{int(WeatherStormy), "Stormy"},
		{int(WeatherFoggy), "Foggy"},
		{int(WeatherSunny), "Sunny"},
		{int(WeatherCloudy), "Cloudy"},
		{int(WeatherSandstorms), "Sandstorms"},
	}
	TrafficOptions = []Option{
		{int(TrafficLow), "Low"},
		{int(TrafficMedium), "Medium"},
		{int(TrafficHigh), "High"},
		{int(TrafficVeryHigh), "Very High"},
	}
	OrderTypeOptions = []Option{
		{int(OrderMeal), "Meal"},
		{int(OrderDrinks), "Drinks"},
		{int(OrderSnack), "Snack"},
		{int(OrderBuffet), "Buffet"},
	}
	VehicleTypeOptions = []Option{
		{int(VehicleElectricScooter), "Electric_scooter"},
		{int(VehicleMotorcycle), "Motorcycle"},
		{int(VehicleScooter), "Scooter"},
	}
	VehicleConditionOptions = []Option{
		{int(ConditionNew), "New"},
		{int(ConditionOld), "Old"},
		{int(ConditionVeryOld), "Very Old"},
	}
	CityOptions = []Option{
		{int(CityMetropolitan), "Metropolitan"},
		{int(CityUrban), "Urban"},
		{int(CitySemiUrban), "Semi-Urban"},
	}
	MultipleDeliveriesOptions = []Option{{0, "0"}, {1, "1"}, {2, "2"}, {3, "3"}}
	FestivalOptions           = []Option{{0, "No"}, {1, "Yes"}}
)

package domain

// Quote is the pricing engine's cost breakdown for a vehicle class and a
// planned rental window. It is derived, not persisted: TotalAmount and
// SecurityDeposit are copied into the trip at creation and the rest is
// discarded.
type Quote struct {
	VehicleClass    VehicleClass
	BaseRatePerHour float64
	PerKmRate       float64
	PlannedHours    float64
	EstimatedKm     float64

	BaseAmount      float64
	DistanceAmount  float64
	Subtotal        float64
	SecurityDeposit float64
	ServiceFee      float64
	TotalAmount     float64

	Currency string
}

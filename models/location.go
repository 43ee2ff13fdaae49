package models

// City is one coverage city of the courier network.
type City struct {
	CityID   int    `json:"city_id"`
	CityName string `json:"city_name"`
}

// Zone is a delivery zone inside a city.
type Zone struct {
	ZoneID   int    `json:"zone_id"`
	ZoneName string `json:"zone_name"`
}

// Area is a serviceable area inside a zone. The availability flags tell
// whether the courier picks up from and delivers to the area.
type Area struct {
	AreaID                int    `json:"area_id"`
	AreaName              string `json:"area_name"`
	HomeDeliveryAvailable bool   `json:"home_delivery_available"`
	PickupAvailable       bool   `json:"pickup_available"`
}

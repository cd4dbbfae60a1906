package datamall

// BusStop is one record from the BusStops endpoint.
type BusStop struct {
	BusStopCode string  `json:"BusStopCode"`
	RoadName    string  `json:"RoadName"`
	Description string  `json:"Description"`
	Latitude    float64 `json:"Latitude"`
	Longitude   float64 `json:"Longitude"`
}

// BusService is one record from the BusServices endpoint. The API returns
// one record per direction; the engine deduplicates on ServiceNo.
type BusService struct {
	ServiceNo       string `json:"ServiceNo"`
	Operator        string `json:"Operator"`
	Direction       int    `json:"Direction"`
	Category        string `json:"Category"`
	OriginCode      string `json:"OriginCode"`
	DestinationCode string `json:"DestinationCode"`
	LoopDesc        string `json:"LoopDesc"`
}

// BusRoute is one record from the BusRoutes endpoint: a single (service,
// direction, sequence) calling point.
type BusRoute struct {
	ServiceNo    string  `json:"ServiceNo"`
	Operator     string  `json:"Operator"`
	Direction    int     `json:"Direction"`
	StopSequence int     `json:"StopSequence"`
	BusStopCode  string  `json:"BusStopCode"`
	Distance     float64 `json:"Distance"`
}

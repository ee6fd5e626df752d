package chargers

import "github.com/ashishpoonia369/EVs/core/model"

// SuratSites is the built-in station list used when none is configured.
func SuratSites() []model.StationSite {
	return []model.StationSite{
		{ID: "station_1", Lon: 72.800870, Lat: 21.158818},
		{ID: "station_2", Lon: 72.864481, Lat: 21.206786},
		{ID: "station_3", Lon: 72.751914, Lat: 21.136598},
		{ID: "station_4", Lon: 72.789163, Lat: 21.212759},
		{ID: "station_5", Lon: 72.871406, Lat: 21.148910},
		{ID: "station_6", Lon: 72.822842, Lat: 21.195128},
		{ID: "station_7", Lon: 72.840619, Lat: 21.237041},
		{ID: "station_8", Lon: 72.842267, Lat: 21.175541},
	}
}

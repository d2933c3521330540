package gazetteer

import "github.com/kiyer/argoquery/internal/core/model"

func sea(name string, minLat, maxLat, minLon, maxLon float64) Entry {
	return Entry{
		Name:   name,
		Bounds: model.LocationBounds{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon},
	}
}

// city entries carry the true port coordinate as centroid; the bounding
// box is a one-degree search window around it.
func city(name string, lat, lon float64) Entry {
	return Entry{
		Name:        name,
		Bounds:      model.LocationBounds{MinLat: lat - 1, MaxLat: lat + 1, MinLon: lon - 1, MaxLon: lon + 1},
		CentroidLat: lat,
		CentroidLon: lon,
	}
}

// band entries constrain latitude only.
func band(name string, minLat, maxLat, centLat, centLon float64) Entry {
	return Entry{
		Name:        name,
		Bounds:      model.LocationBounds{MinLat: minLat, MaxLat: maxLat, LatOnly: true},
		CentroidLat: centLat,
		CentroidLon: centLon,
	}
}

var table = []Entry{
	// Indian Ocean
	sea("indian ocean", -40, 25, 30, 120),
	sea("arabian sea", 5, 25, 50, 75),
	sea("bay of bengal", 5, 22, 80, 95),
	sea("andaman sea", 5, 15, 92, 98),
	sea("laccadive sea", 8, 14, 71, 77),
	sea("red sea", 12, 30, 32, 44),
	sea("persian gulf", 24, 30, 48, 56),
	sea("gulf of oman", 22, 27, 56, 61),
	sea("gulf of aden", 10, 15, 43, 52),
	sea("gulf of mannar", 8, 10, 78, 80),
	sea("mozambique channel", -25, -10, 35, 45),
	sea("timor sea", -14, -8, 122, 130),
	sea("arafura sea", -11, -3, 130, 140),

	// Pacific Ocean
	sea("pacific ocean", -60, 60, 100, 180),
	sea("south china sea", 0, 25, 100, 121),
	sea("philippine sea", 5, 35, 120, 140),
	sea("coral sea", -25, -10, 145, 165),
	sea("tasman sea", -45, -30, 150, 175),
	sea("east china sea", 25, 33, 120, 130),
	sea("yellow sea", 33, 40, 119, 126),
	sea("sea of japan", 35, 48, 128, 140),
	sea("bering sea", 53, 65, 165, 180),
	sea("gulf of thailand", 6, 13, 99, 105),
	sea("java sea", -8, -4, 105, 115),
	sea("banda sea", -8, -3, 123, 132),
	sea("celebes sea", 0, 7, 118, 125),
	sea("sulu sea", 5, 12, 118, 122),

	// Atlantic Ocean
	sea("atlantic ocean", -60, 60, -80, 0),
	sea("caribbean sea", 10, 22, -88, -60),
	sea("gulf of mexico", 18, 30, -98, -80),
	sea("mediterranean sea", 30, 46, -6, 36),
	sea("north sea", 51, 62, -5, 10),
	sea("baltic sea", 53, 66, 10, 30),
	sea("norwegian sea", 62, 72, -5, 10),
	sea("labrador sea", 53, 62, -60, -45),
	sea("sargasso sea", 20, 35, -70, -40),
	sea("bay of biscay", 43, 48, -10, -1),
	sea("celtic sea", 48, 52, -12, -5),
	sea("adriatic sea", 40, 46, 12, 20),
	sea("aegean sea", 35, 41, 22, 28),
	sea("black sea", 41, 46, 28, 42),

	// Polar seas
	sea("weddell sea", -78, -60, -60, -20),
	sea("ross sea", -78, -70, 160, 180),
	sea("barents sea", 70, 80, 20, 55),
	sea("greenland sea", 70, 80, -20, 5),

	// Indian ports and coastal cities
	city("chennai", 13.08, 80.27),
	city("mumbai", 18.97, 72.82),
	city("kollam", 8.88, 76.59),
	city("kochi", 9.93, 76.26),
	city("cochin", 9.93, 76.26),
	city("goa", 15.30, 73.82),
	city("kolkata", 22.57, 88.36),
	city("visakhapatnam", 17.68, 83.22),
	city("vizag", 17.68, 83.22),
	city("mangalore", 12.91, 74.85),
	city("tuticorin", 8.76, 78.13),
	city("pondicherry", 11.93, 79.83),
	city("puducherry", 11.93, 79.83),
	city("trivandrum", 8.52, 76.94),
	city("thiruvananthapuram", 8.52, 76.94),
	city("surat", 21.17, 72.83),
	city("kandla", 23.03, 70.22),
	city("paradip", 20.32, 86.61),
	city("andaman", 11.67, 92.75),
	city("port blair", 11.62, 92.73),
	city("karwar", 14.80, 74.13),
	city("ratnagiri", 16.99, 73.30),

	// International ports, cities and islands
	sea("sri lanka", 5, 10, 79, 82),
	city("colombo", 6.93, 79.85),
	city("singapore", 1.30, 104.00),
	city("tokyo", 35.50, 140.00),
	city("sydney", -34.00, 151.00),
	city("cape town", -34.00, 18.00),
	city("miami", 26.00, -80.00),
	city("maldives", 4.17, 73.51),
	city("male", 4.17, 73.51),
	city("mauritius", -20.20, 57.50),
	city("karachi", 24.85, 66.99),
	city("dubai", 25.27, 55.30),
	city("muscat", 23.61, 58.59),
	city("aden", 12.79, 45.03),
	city("mombasa", -4.05, 39.67),
	city("zanzibar", -6.16, 39.19),
	city("durban", -29.86, 31.02),
	city("perth", -31.95, 115.86),
	city("darwin", -12.46, 130.84),
	city("jakarta", -6.21, 106.85),
	city("phuket", 7.88, 98.39),
	city("manila", 14.60, 120.98),
	city("hong kong", 22.32, 114.17),
	city("shanghai", 31.23, 121.47),
	city("auckland", -36.85, 174.76),
	city("honolulu", 21.31, -157.86),
	city("bermuda", 32.30, -64.78),
	city("azores", 38.50, -28.00),
	city("canary islands", 28.50, -16.00),
	city("galapagos", -0.50, -90.50),
	city("fiji", -17.80, 178.00),
	city("seychelles", -4.68, 55.49),
	city("reunion", -21.13, 55.53),
	city("diego garcia", -7.31, 72.41),
	sea("madagascar", -26, -12, 43, 51),

	// Latitude bands
	band("equator", -2, 2, 0, 80),
	band("tropics", -23.5, 23.5, 10, 80),
	band("southern ocean", -65, -40, -55, 0),
	band("antarctic", -90, -60, -70, 0),
}

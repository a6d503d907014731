package extract

// fieldChains groups the chains for the fields shared by cards, units and
// detail pages.
type fieldChains struct {
	Address      Chain
	Tagline      Chain
	Price        Chain
	Beds         Chain
	Baths        Chain
	PropertyType Chain
	EnergyRating Chain
}

// Search results page.
var (
	resultsContainer = Candidates{
		`ul[data-testid="results"]`,
		`[data-testid="results"]`,
		`ul[class*="SearchPage__Result"]`,
	}

	resultCards = Candidates{
		`li[data-testid^="result-"]`,
		`[data-testid="results"] > li`,
		`ul[class*="SearchPage__Result"] > li`,
	}

	resultCount = Chain{
		Text(`[data-testid="search-h1"]`),
		Text(`[data-testid="results-count"]`),
		Text(`[class*="SearchPage__ResultsCount"]`),
		Text(`body`),
	}

	cardLink = Chain{
		Attr(`a[href*="/for-rent/"]`, "href"),
		Attr(`a[data-testid="card-link"]`, "href"),
		Attr(`a[href]`, "href"),
	}

	cardTestID = Chain{
		Self("data-testid"),
		Attr(`[data-testid^="result-"]`, "data-testid"),
	}

	cardFields = fieldChains{
		Address: Chain{
			Text(`[data-testid="address"]`),
			Text(`[data-tracking="srp_address"]`),
			Text(`h2`),
			Text(`p[class*="Address"]`),
		},
		Tagline: Chain{
			Text(`[data-testid="tagline"]`),
			Text(`[data-tracking="srp_tagline"]`),
			Text(`[class*="Tagline"]`),
		},
		Price: Chain{
			Text(`[data-testid="price"] h3`),
			Text(`[data-testid="price"]`),
			Text(`[data-tracking="srp_price"]`),
			Text(`[class*="Price"]`),
		},
		Beds: Chain{
			Text(`[data-testid="beds"]`),
			Segment(`[data-testid="card-meta"]`, "·", "bed"),
			Segment(`[data-testid="card-meta"]`, "·", "studio"),
			Text(`[class*="Beds"]`),
		},
		Baths: Chain{
			Text(`[data-testid="baths"]`),
			Segment(`[data-testid="card-meta"]`, "·", "bath"),
			Text(`[class*="Baths"]`),
		},
		PropertyType: Chain{
			Text(`[data-testid="property-type"]`),
			LastSegment(`[data-testid="card-meta"]`, "·"),
			Text(`[class*="PropertyType"]`),
		},
		EnergyRating: Chain{
			Attr(`[data-testid="ber"] img`, "alt"),
			Text(`[data-testid="ber"]`),
			Attr(`img[alt^="BER"]`, "alt"),
			Text(`[data-testid="callout-ber"]`),
		},
	}

	cardMapLink = Candidates{
		`a[data-testid="map-link"]`,
		`a[href*="loc:"]`,
		`a[href*="viewpoint="]`,
	}

	cardUnits = Candidates{
		`[data-testid="sub-units-container"] a[href]`,
		`ul[data-testid="sub-units"] a[href]`,
		`[class*="SubUnit"] a[href]`,
	}
)

// Fields of one unit inside a development, on cards and detail pages alike.
var unitFields = fieldChains{
	Price: Chain{
		Text(`[data-testid="sub-title"]`),
		Text(`[data-testid="price"]`),
		Text(`[class*="SubUnit__Title"]`),
		Text(`h3`),
	},
	Beds: Chain{
		Text(`[data-testid="beds"]`),
		Segment(`[data-testid="sub-text"]`, "·", "bed"),
		Segment(`[data-testid="sub-text"]`, "·", "studio"),
		Segment(`[class*="SubUnit__CardInfo"]`, "·", "bed"),
	},
	Baths: Chain{
		Text(`[data-testid="baths"]`),
		Segment(`[data-testid="sub-text"]`, "·", "bath"),
		Segment(`[class*="SubUnit__CardInfo"]`, "·", "bath"),
	},
	PropertyType: Chain{
		Text(`[data-testid="property-type"]`),
		LastSegment(`[data-testid="sub-text"]`, "·"),
		LastSegment(`[class*="SubUnit__CardInfo"]`, "·"),
	},
	EnergyRating: Chain{
		Attr(`[data-testid="ber"] img`, "alt"),
		Attr(`img[alt^="BER"]`, "alt"),
		Text(`[data-testid="ber"]`),
	},
}

// Detail page.
var (
	detailMapLink = Candidates{
		`[data-testid="satellite-button"] a`,
		`[data-testid="streetview-button"] a`,
		`a[data-testid="map-link"]`,
		`a[href*="loc:"]`,
		`a[href*="viewpoint="]`,
	}

	detailEnergyRating = Chain{
		Attr(`[data-testid="ber"] img`, "alt"),
		Attr(`[data-testid="ber-image"]`, "alt"),
		Text(`[data-testid="ber-code"]`),
		Attr(`img[alt^="BER"]`, "alt"),
	}

	detailUnits = Candidates{
		`[data-testid="sub-units-container"] a[href]`,
		`[data-testid="development-units"] a[href]`,
		`[class*="SubUnits__Container"] a[href]`,
	}
)

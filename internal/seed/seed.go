// Package seed holds the reference data set loaded by the dev-only seed operation.
//
// Coordinates are real South African locations so proximity ranking behaves
// sensibly for a demo run from the region.
package seed

import "github.com/kailas-cloud/bizdex/internal/domain/business"

func images(slug string) []string {
	return []string{
		"https://picsum.photos/seed/" + slug + "-1/800/600",
		"https://picsum.photos/seed/" + slug + "-2/800/600",
	}
}

// Businesses returns a fresh copy of the eight reference businesses.
func Businesses() []business.Business {
	out := []business.Business{
		{
			ID:         "sandton-legal-group",
			Name:       "Sandton Legal Group",
			Category:   "Legal",
			CategoryID: "legal",
			Description: "A full-service commercial law firm specialising in corporate advisory, " +
				"mergers & acquisitions, and dispute resolution for high-growth businesses across Southern Africa.",
			Rating:            4.9,
			ReviewCount:       312,
			Images:            images("sandton-legal"),
			IsVerified:        true,
			IsFeatured:        true,
			IsPremium:         true,
			IsRemote:          true,
			Address:           "15 Alice Lane, Sandton",
			City:              "Johannesburg",
			Lat:               -26.1067,
			Lng:               28.0567,
			Phone:             "+27 11 123 4567",
			Email:             "info@sandtonlegal.co.za",
			Website:           "https://sandtonlegal.co.za",
			YearsOfExperience: 14,
		},
		{
			ID:         "mzansi-capital-partners",
			Name:       "Mzansi Capital Partners",
			Category:   "Finance",
			CategoryID: "finance",
			Description: "Boutique wealth management and private equity firm serving high-net-worth individuals, " +
				"family offices, and fast-scaling startups across the African continent.",
			Rating:            4.8,
			ReviewCount:       178,
			Images:            images("mzansi-capital"),
			IsVerified:        true,
			IsFeatured:        true,
			IsPremium:         true,
			IsRemote:          true,
			Address:           "The Zone, Rosebank",
			City:              "Johannesburg",
			Lat:               -26.1449,
			Lng:               28.0404,
			Phone:             "+27 11 234 5678",
			Email:             "info@mzansicapital.co.za",
			Website:           "https://mzansicapital.co.za",
			YearsOfExperience: 9,
		},
		{
			ID:         "creative-hub-joburg",
			Name:       "Creative Hub Joburg",
			Category:   "Creative",
			CategoryID: "creative",
			Description: "Award-winning digital agency delivering cinematic brand storytelling, UX design, " +
				"and motion graphics for South Africa's most ambitious brands.",
			Rating:            4.7,
			ReviewCount:       224,
			Images:            images("creative-hub"),
			IsVerified:        true,
			IsRemote:          true,
			Address:           "1 Juta Street, Braamfontein",
			City:              "Johannesburg",
			Lat:               -26.1937,
			Lng:               28.0321,
			Phone:             "+27 11 345 6789",
			Email:             "studio@creativehubjoburg.co.za",
			Website:           "https://creativehubjoburg.co.za",
			YearsOfExperience: 6,
		},
		{
			ID:         "vitality-health-specialists",
			Name:       "Vitality Health Specialists",
			Category:   "Health",
			CategoryID: "health",
			Description: "Private specialist practice offering integrative medicine, executive health assessments, " +
				"and concierge medical services in Morningside, Johannesburg.",
			Rating:            5.0,
			ReviewCount:       97,
			Images:            images("vitality-health"),
			IsVerified:        true,
			IsFeatured:        true,
			Address:           "Morningside Medical Village",
			City:              "Johannesburg",
			Lat:               -26.085,
			Lng:               28.0625,
			Phone:             "+27 11 456 7890",
			Email:             "info@vitalityhealth.co.za",
			Website:           "https://vitalityhealth.co.za",
			YearsOfExperience: 18,
		},
		{
			ID:         "prime-property-sa",
			Name:       "Prime Property SA",
			Category:   "Real Estate",
			CategoryID: "real-estate",
			Description: "Luxury commercial and residential real estate advisory. Specialising in high-value acquisitions, " +
				"development projects, and property portfolio management across Gauteng.",
			Rating:            4.6,
			ReviewCount:       143,
			Images:            images("prime-property"),
			IsVerified:        true,
			Address:           "Midrand Business District",
			City:              "Johannesburg",
			Lat:               -25.9964,
			Lng:               28.1289,
			Phone:             "+27 11 567 8901",
			Email:             "deals@primepropertysa.co.za",
			Website:           "https://primepropertysa.co.za",
			YearsOfExperience: 11,
		},
		{
			ID:         "capital-architecture-studio",
			Name:       "Capital Architecture Studio",
			Category:   "Creative",
			CategoryID: "creative",
			Description: "Bespoke architectural design studio crafting luxury residential homes and civic buildings " +
				"in Pretoria and Centurion. Sustainable design is at our core.",
			Rating:            4.9,
			ReviewCount:       88,
			Images:            images("capital-architecture"),
			IsVerified:        true,
			IsFeatured:        true,
			Address:           "Hatfield Square, Hatfield",
			City:              "Pretoria",
			Lat:               -25.7479,
			Lng:               28.2293,
			Phone:             "+27 12 123 4567",
			Email:             "design@capitalarch.co.za",
			Website:           "https://capitalarch.co.za",
			YearsOfExperience: 7,
		},
		{
			ID:         "cape-legal-associates",
			Name:       "Cape Legal Associates",
			Category:   "Legal",
			CategoryID: "legal",
			Description: "Leading Cape Town litigation and corporate law firm with expertise in property law, " +
				"maritime law, and fintech regulatory compliance.",
			Rating:            4.8,
			ReviewCount:       201,
			Images:            images("cape-legal"),
			IsVerified:        true,
			IsPremium:         true,
			IsRemote:          true,
			Address:           "Portside Tower, Cape Town CBD",
			City:              "Cape Town",
			Lat:               -33.9249,
			Lng:               18.4241,
			Phone:             "+27 21 123 4567",
			Email:             "info@capelegal.co.za",
			Website:           "https://capelegal.co.za",
			YearsOfExperience: 22,
		},
		{
			ID:         "atlantic-wealth-management",
			Name:       "Atlantic Wealth Management",
			Category:   "Finance",
			CategoryID: "finance",
			Description: "Independent wealth management boutique serving Cape Town's affluent community. " +
				"Specialists in offshore structuring, estate planning, and impact investing.",
			Rating:            4.7,
			ReviewCount:       134,
			Images:            images("atlantic-wealth"),
			IsRemote:          true,
			Address:           "55 Somerset Road, Sea Point",
			City:              "Cape Town",
			Lat:               -33.9153,
			Lng:               18.3997,
			Phone:             "+27 21 234 5678",
			Email:             "wealth@atlanticwm.co.za",
			Website:           "https://atlanticwm.co.za",
			YearsOfExperience: 15,
		},
	}
	for i := range out {
		out[i] = business.Normalize(out[i])
	}
	return out
}

// ByID returns the reference business with the given id.
func ByID(id string) (business.Business, bool) {
	for _, b := range Businesses() {
		if b.ID == id {
			return b, true
		}
	}
	return business.Business{}, false
}

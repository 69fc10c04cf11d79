package models

// FixedServices is the baseline item set every new draft starts with
var FixedServices = []LineItem{
	{Name: "Web Page Development", Price: 5000},
	{Name: "Application Management Services", Price: 0},
	{Name: "Cloud Business Services", Price: 0},
	{Name: "Business Analyst", Price: 0},
}

// OptionalServices are the add-on items offered by the form
var OptionalServices = []LineItem{
	{Name: "SEO Optimization", Price: 2000},
	{Name: "Hosting Setup", Price: 1500},
	{Name: "Logo Design", Price: 1000},
}

// DistrictsTN is the Tamil Nadu district list offered for the client address
var DistrictsTN = []string{
	"Chennai", "Coimbatore", "Madurai", "Tiruchirappalli", "Salem", "Tirunelveli",
	"Vellore", "Erode", "Thanjavur", "Dindigul", "Cuddalore", "Kanchipuram", "Nagapattinam",
}

// DefaultCountry pre-fills the country field on a fresh draft
const DefaultCountry = "India"

// FindOptionalService returns the optional catalog entry with the given
// name, or false when no such entry exists.
func FindOptionalService(name string) (LineItem, bool) {
	for _, s := range OptionalServices {
		if s.Name == name {
			return s, true
		}
	}
	return LineItem{}, false
}

// NewFixedItems returns a fresh copy of the baseline item set
func NewFixedItems() []LineItem {
	items := make([]LineItem, len(FixedServices))
	copy(items, FixedServices)
	return items
}

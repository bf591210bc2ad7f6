package canonical

// CityOtherInternational groups every city outside India
const CityOtherInternational = "other_international"

// City collapses spelling variants and neighbourhoods onto one identifier per
// city. Cities missing from the table pass through lower-cased and trimmed.
var City = NewLookupVocabulary("city", map[string]string{
	"bengaluru":   "bengaluru",
	"bangalore":   "bengaluru",
	"kormangala":  "bengaluru",
	"koramangala": "bengaluru",
	"taramani":    "bengaluru",

	"mumbai":  "mumbai",
	"andheri": "mumbai",
	"chembur": "mumbai",

	"new delhi": "delhi",
	"delhi":     "delhi",

	"gurgaon":  "gurgaon",
	"gurugram": "gurgaon",

	"jaipur":     "jaipur",
	"patna":      "patna",
	"pune":       "pune",
	"hyderabad":  "hyderabad",
	"chennai":    "chennai",
	"bhopal":     "bhopal",
	"indore":     "indore",
	"nagpur":     "nagpur",
	"amritsar":   "amritsar",
	"rourkela":   "rourkela",
	"ahmedabad":  "ahmedabad",
	"ahemadabad": "ahmedabad",
	"faridabad":  "faridabad",

	"palo alto":     CityOtherInternational,
	"san francisco": CityOtherInternational,
	"san jose":      CityOtherInternational,
	"nuevo york":    CityOtherInternational,
	"new york":      CityOtherInternational,
	"london":        CityOtherInternational,
	"nairobi":       CityOtherInternational,
	"menlo park":    CityOtherInternational,
	"santa monica":  CityOtherInternational,
	"singapore":     CityOtherInternational,
	"stanford":      CityOtherInternational,
	"washington":    CityOtherInternational,
	"wilmington":    CityOtherInternational,
	"newark":        CityOtherInternational,
	"california":    CityOtherInternational,
	"burnsville":    CityOtherInternational,
	"india":         CityOtherInternational,
})

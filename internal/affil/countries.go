package affil

import "strings"

// countries is the recognized country vocabulary, lowercased. An
// affiliation segment is assigned the first country whose name
// appears in it as a substring (longest names are checked first so
// "niger" never shadows "nigeria").
var countries = []string{
	"afghanistan", "albania", "algeria", "andorra", "angola",
	"antigua and barbuda", "argentina", "armenia", "australia",
	"austria", "azerbaijan", "bahamas", "bahrain", "bangladesh",
	"barbados", "belarus", "belgium", "belize", "benin", "bhutan",
	"bolivia", "bosnia and herzegovina", "botswana", "brazil",
	"brunei", "bulgaria", "burkina faso", "burundi", "cabo verde",
	"cambodia", "cameroon", "canada", "central african republic",
	"chad", "chile", "china", "colombia", "comoros", "congo",
	"costa rica", "croatia", "cuba", "cyprus", "czech republic",
	"denmark", "djibouti", "dominica", "dominican republic",
	"ecuador", "egypt", "el salvador", "equatorial guinea",
	"eritrea", "estonia", "eswatini", "ethiopia", "fiji", "finland",
	"france", "gabon", "gambia", "georgia", "germany", "ghana",
	"greece", "grenada", "guatemala", "guinea", "guinea-bissau",
	"guyana", "haiti", "honduras", "hungary", "iceland", "india",
	"indonesia", "iran", "iraq", "ireland", "israel", "italy",
	"ivory coast", "jamaica", "japan", "jordan", "kazakhstan",
	"kenya", "kiribati", "kuwait", "kyrgyzstan", "laos", "latvia",
	"lebanon", "lesotho", "liberia", "libya", "liechtenstein",
	"lithuania", "luxembourg", "madagascar", "malawi", "malaysia",
	"maldives", "mali", "malta", "marshall islands", "mauritania",
	"mauritius", "mexico", "micronesia", "moldova", "monaco",
	"mongolia", "montenegro", "morocco", "mozambique", "myanmar",
	"namibia", "nauru", "nepal", "netherlands", "new zealand",
	"nicaragua", "niger", "nigeria", "north korea",
	"north macedonia", "norway", "oman", "pakistan", "palau",
	"panama", "papua new guinea", "paraguay", "peru", "philippines",
	"poland", "portugal", "qatar", "romania", "russia", "rwanda",
	"saint kitts and nevis", "saint lucia",
	"saint vincent and the grenadines", "samoa", "san marino",
	"sao tome and principe", "saudi arabia", "senegal", "serbia",
	"seychelles", "sierra leone", "singapore", "slovakia",
	"slovenia", "solomon islands", "somalia", "south africa",
	"south korea", "south sudan", "spain", "sri lanka", "sudan",
	"suriname", "sweden", "switzerland", "syria", "taiwan",
	"tajikistan", "tanzania", "thailand", "timor-leste", "togo",
	"tonga", "trinidad and tobago", "tunisia", "turkey",
	"turkmenistan", "tuvalu", "uganda", "ukraine",
	"united arab emirates", "united kingdom",
	"united states of america", "uruguay", "uzbekistan", "vanuatu",
	"vatican city", "venezuela", "vietnam", "yemen", "zambia",
	"zimbabwe",
}

// countryAliases maps historical and alternate names (lowercased)
// onto the canonical vocabulary above.
var countryAliases = map[string]string{
	"usa":                "united states of america",
	"united states":      "united states of america",
	"u.s.a.":             "united states of america",
	"uk":                 "united kingdom",
	"u.k.":               "united kingdom",
	"england":            "united kingdom",
	"scotland":           "united kingdom",
	"wales":              "united kingdom",
	"northern ireland":   "united kingdom",
	"great britain":      "united kingdom",
	"peoples r china":    "china",
	"people's republic of china": "china",
	"hong kong":          "china",
	"macau":              "china",
	"macao":              "china",
	"russian federation": "russia",
	"ussr":               "russia",
	"soviet union":       "russia",
	"czechia":            "czech republic",
	"czechoslovakia":     "czech republic",
	"republic of korea":  "south korea",
	"korea, south":       "south korea",
	"korea":              "south korea",
	"dprk":               "north korea",
	"viet nam":           "vietnam",
	"burma":              "myanmar",
	"swaziland":          "eswatini",
	"macedonia":          "north macedonia",
	"cote d'ivoire":      "ivory coast",
	"cote divoire":       "ivory coast",
	"cape verde":         "cabo verde",
	"east timor":         "timor-leste",
	"holland":            "netherlands",
	"the netherlands":    "netherlands",
	"brasil":             "brazil",
	"türkiye":            "turkey",
	"turkiye":            "turkey",
	"u arab emirates":    "united arab emirates",
	"uae":                "united arab emirates",
	"west germany":       "germany",
	"german democratic republic": "germany",
	"fed rep ger":        "germany",
	"yugoslavia":         "serbia",
	"zaire":              "congo",
	"democratic republic of the congo": "congo",
	"persia":             "iran",
	"ceylon":             "sri lanka",
	"rhodesia":           "zimbabwe",
	"new guinea":         "papua new guinea",
	"byelarus":           "belarus",
	"kampuchea":          "cambodia",
}

// searchOrder lists every country name and alias, longest first, so
// substring scans prefer the most specific match.
var searchOrder = func() []string {
	names := make([]string, 0, len(countries)+len(countryAliases))
	names = append(names, countries...)
	for alias := range countryAliases {
		names = append(names, alias)
	}
	// Insertion sort by descending length, once at init.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && len(names[j]) > len(names[j-1]); j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}()

// DetectCountry scans an affiliation segment for a known country name
// or alias and returns the canonical country, or UNKNOWN.
func DetectCountry(segment string) string {
	s := strings.ToLower(segment)
	for _, name := range searchOrder {
		if !containsWordish(s, name) {
			continue
		}
		if canonical, ok := countryAliases[name]; ok {
			return canonical
		}
		return name
	}
	return unknown
}

// containsWordish reports whether name occurs in s bounded by
// non-letter characters, so "oman" does not match "romania".
func containsWordish(s, name string) bool {
	for start := 0; ; {
		i := strings.Index(s[start:], name)
		if i < 0 {
			return false
		}
		i += start
		before := i - 1
		after := i + len(name)
		leftOK := before < 0 || !isLetter(s[before])
		rightOK := after >= len(s) || !isLetter(s[after])
		if leftOK && rightOK {
			return true
		}
		start = i + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Countries returns the canonical country vocabulary.
func Countries() []string {
	out := make([]string, len(countries))
	copy(out, countries)
	return out
}

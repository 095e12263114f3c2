package labels

type place struct {
	key  string
	flag string
	name string
}

// places is in partial-match priority order. Short keys like "us" and "la"
// shadow later entries for any location containing them.
func places() []place {
	return []place{
		{"united states", "🇺🇸", "United States"},
		{"usa", "🇺🇸", "United States"},
		{"us", "🇺🇸", "United States"},
		{"america", "🇺🇸", "United States"},
		{"new york", "🇺🇸", "New York, US"},
		{"new york city", "🇺🇸", "New York, US"},
		{"nyc", "🇺🇸", "New York, US"},
		{"san francisco", "🇺🇸", "San Francisco, US"},
		{"sf", "🇺🇸", "San Francisco, US"},
		{"sf bay area", "🇺🇸", "SF Bay Area, US"},
		{"bay area", "🇺🇸", "Bay Area, US"},
		{"los angeles", "🇺🇸", "Los Angeles, US"},
		{"la", "🇺🇸", "Los Angeles, US"},
		{"chicago", "🇺🇸", "Chicago, US"},
		{"boston", "🇺🇸", "Boston, US"},
		{"seattle", "🇺🇸", "Seattle, US"},
		{"austin", "🇺🇸", "Austin, US"},
		{"denver", "🇺🇸", "Denver, US"},
		{"atlanta", "🇺🇸", "Atlanta, US"},
		{"miami", "🇺🇸", "Miami, US"},
		{"dallas", "🇺🇸", "Dallas, US"},
		{"houston", "🇺🇸", "Houston, US"},
		{"philadelphia", "🇺🇸", "Philadelphia, US"},
		{"philly", "🇺🇸", "Philadelphia, US"},
		{"detroit", "🇺🇸", "Detroit, US"},
		{"pittsburgh", "🇺🇸", "Pittsburgh, US"},
		{"cleveland", "🇺🇸", "Cleveland, US"},
		{"columbus", "🇺🇸", "Columbus, US"},
		{"indianapolis", "🇺🇸", "Indianapolis, US"},
		{"milwaukee", "🇺🇸", "Milwaukee, US"},
		{"kansas city", "🇺🇸", "Kansas City, US"},
		{"st. louis", "🇺🇸", "St. Louis, US"},
		{"minneapolis", "🇺🇸", "Minneapolis, US"},
		{"portland", "🇺🇸", "Portland, US"},
		{"washington", "🇺🇸", "Washington, US"},
		{"dc", "🇺🇸", "Washington DC, US"},
		{"raleigh", "🇺🇸", "Raleigh, US"},
		{"phoenix", "🇺🇸", "Phoenix, US"},
		{"las vegas", "🇺🇸", "Las Vegas, US"},
		{"san diego", "🇺🇸", "San Diego, US"},
		{"sacramento", "🇺🇸", "Sacramento, US"},

		{"india", "🇮🇳", "India"},
		{"bangalore", "🇮🇳", "Bangalore, India"},
		{"bengaluru", "🇮🇳", "Bengaluru, India"},
		{"mumbai", "🇮🇳", "Mumbai, India"},
		{"delhi", "🇮🇳", "Delhi, India"},
		{"hyderabad", "🇮🇳", "Hyderabad, India"},
		{"pune", "🇮🇳", "Pune, India"},
		{"chennai", "🇮🇳", "Chennai, India"},
		{"gurugram", "🇮🇳", "Gurugram, India"},
		{"noida", "🇮🇳", "Noida, India"},

		{"united kingdom", "🇬🇧", "United Kingdom"},
		{"uk", "🇬🇧", "United Kingdom"},
		{"london", "🇬🇧", "London, UK"},
		{"manchester", "🇬🇧", "Manchester, UK"},
		{"edinburgh", "🇬🇧", "Edinburgh, UK"},
		{"cambridge", "🇬🇧", "Cambridge, UK"},

		{"canada", "🇨🇦", "Canada"},
		{"toronto", "🇨🇦", "Toronto, Canada"},
		{"vancouver", "🇨🇦", "Vancouver, Canada"},
		{"montreal", "🇨🇦", "Montreal, Canada"},
		{"ottawa", "🇨🇦", "Ottawa, Canada"},

		{"germany", "🇩🇪", "Germany"},
		{"berlin", "🇩🇪", "Berlin, Germany"},
		{"munich", "🇩🇪", "Munich, Germany"},
		{"hamburg", "🇩🇪", "Hamburg, Germany"},

		{"france", "🇫🇷", "France"},
		{"paris", "🇫🇷", "Paris, France"},
		{"lyon", "🇫🇷", "Lyon, France"},

		{"sweden", "🇸🇪", "Sweden"},
		{"stockholm", "🇸🇪", "Stockholm, Sweden"},
		{"malmo", "🇸🇪", "Malmo, Sweden"},

		{"japan", "🇯🇵", "Japan"},
		{"tokyo", "🇯🇵", "Tokyo, Japan"},
		{"osaka", "🇯🇵", "Osaka, Japan"},

		{"china", "🇨🇳", "China"},
		{"beijing", "🇨🇳", "Beijing, China"},
		{"shanghai", "🇨🇳", "Shanghai, China"},
		{"shenzhen", "🇨🇳", "Shenzhen, China"},

		{"australia", "🇦🇺", "Australia"},
		{"sydney", "🇦🇺", "Sydney, Australia"},
		{"melbourne", "🇦🇺", "Melbourne, Australia"},

		{"netherlands", "🇳🇱", "Netherlands"},
		{"amsterdam", "🇳🇱", "Amsterdam, Netherlands"},

		{"israel", "🇮🇱", "Israel"},
		{"tel aviv", "🇮🇱", "Tel Aviv, Israel"},

		{"singapore", "🇸🇬", "Singapore"},
		{"brazil", "🇧🇷", "Brazil"},
		{"sao paulo", "🇧🇷", "Sao Paulo, Brazil"},
		{"mexico", "🇲🇽", "Mexico"},
		{"ireland", "🇮🇪", "Ireland"},
		{"dublin", "🇮🇪", "Dublin, Ireland"},
		{"spain", "🇪🇸", "Spain"},
		{"madrid", "🇪🇸", "Madrid, Spain"},
		{"italy", "🇮🇹", "Italy"},
		{"milan", "🇮🇹", "Milan, Italy"},
		{"south korea", "🇰🇷", "South Korea"},
		{"seoul", "🇰🇷", "Seoul, South Korea"},
		{"remote", "🌐", "Remote"},
		{"worldwide", "🌍", "Worldwide"},
		{"global", "🌍", "Global"},
		{"non-us", "🌍", "International"},
		{"international", "🌍", "International"},
		{"europe", "🇪🇺", "Europe"},
		{"asia", "🌏", "Asia"},
		{"africa", "🌍", "Africa"},
		{"south america", "🌎", "South America"},
		{"north america", "🌎", "North America"},
		{"oceania", "🌏", "Oceania"},
	}
}

type sectorIcon struct {
	key  string
	icon string
}

func sectorIcons() []sectorIcon {
	return []sectorIcon{
		{"technology", "💻"},
		{"tech", "💻"},
		{"software", "💻"},
		{"ai", "🤖"},
		{"fintech", "💰"},
		{"finance", "💰"},
		{"banking", "🏦"},
		{"healthcare", "🏥"},
		{"biotech", "🧬"},
		{"pharmaceutical", "💊"},
		{"retail", "🛍️"},
		{"e-commerce", "🛒"},
		{"automotive", "🚗"},
		{"transportation", "🚛"},
		{"energy", "⚡"},
		{"oil", "🛢️"},
		{"renewable", "🌱"},
		{"manufacturing", "🏭"},
		{"construction", "🏗️"},
		{"real estate", "🏠"},
		{"media", "📺"},
		{"entertainment", "🎬"},
		{"gaming", "🎮"},
		{"education", "📚"},
		{"consulting", "👔"},
		{"marketing", "📊"},
		{"advertising", "📢"},
		{"telecommunications", "📱"},
		{"aerospace", "✈️"},
		{"food", "🍕"},
		{"hospitality", "🏨"},
		{"travel", "✈️"},
		{"crypto", "₿"},
		{"blockchain", "⛓️"},
		{"logistics", "📦"},
		{"hr", "👥"},
		{"security", "🛡️"},
		{"other", "🏢"},
	}
}

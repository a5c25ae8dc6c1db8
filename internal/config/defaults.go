package config

import (
	"time"

	"github.com/ruminaider/eurodash/internal/facet"
	"github.com/ruminaider/eurodash/internal/logging"
)

// Default returns the stock dashboard: seven question pages backed by the
// crime statistics data source.
func Default() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		Timeout:     30 * time.Second,
		RateLimit:   5,
		StalePolicy: facet.RetainStale.String(),
		LogLevel:    logging.LevelInfo,
		Pages:       defaultPages(),
	}
}

func chart(q, n, title, sort string) Chart {
	return Chart{
		ID:       "q" + q + "c" + n,
		Title:    title,
		Endpoint: "/api/question" + q + "/chart" + n,
		Sort:     sort,
	}
}

func defaultPages() []Page {
	return []Page{
		{Title: "Trends by country", Charts: []Chart{
			chart("1", "1", "Crime categories by country", SortNone),
			chart("1", "3", "Frequency of crimes", SortDesc),
			chart("1", "4", "Crime rate per 100 000 inhabitants", SortDesc),
		}},
		{Title: "Growth", Charts: []Chart{
			chart("2", "1", "Crime growth over time", SortNone),
			chart("2", "2", "Crime growth and levels", SortDesc),
		}},
		{Title: "Corruption", Charts: []Chart{
			chart("3", "1", "Bribery and corruption cases", SortDesc),
			chart("3", "2", "Corruption by country", SortDesc),
			chart("3", "5", "Corruption indicators", SortNone),
		}},
		{Title: "Population", Charts: []Chart{
			chart("4", "1", "Population size", SortDesc),
			chart("4", "2", "Economic output", SortDesc),
			chart("4", "3", "Crime against population", SortNone),
		}},
		{Title: "Police", Charts: []Chart{
			chart("5", "1", "Police personnel", SortDesc),
			chart("5", "2", "Crime and police forces", SortNone),
		}},
		{Title: "Gender", Charts: []Chart{
			chart("6", "1", "Gender distribution", SortNone),
			chart("6", "2", "Offenders by sex", SortDesc),
		}},
		{Title: "Age", Charts: []Chart{
			chart("7", "1", "Offenders by age group", SortNone),
			chart("7", "2", "Age-group crime distribution", SortDesc),
		}},
	}
}

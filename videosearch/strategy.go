package videosearch

import "strings"

// Strategy is one query-construction variant tried in a fallback sequence.
type Strategy struct {
	Label string
	Query string
}

// DefaultChannels is the allow-list of trusted educational channels used by
// the channel-constrained search strategy.
var DefaultChannels = []string{
	"CrashCourse",
	"Khan Academy",
	"TED-Ed",
	"Veritasium",
	"Kurzgesagt",
	"SciShow",
	"3Blue1Brown",
}

// BuildStrategies returns the ordered strategy list for a topic. The first
// variant constrains results to the trusted-channel allow-list via an
// OR-query; it is omitted when the allow-list is empty.
func BuildStrategies(topic string, channels []string) []Strategy {
	var out []Strategy
	if len(channels) > 0 {
		out = append(out, Strategy{
			Label: "trusted-channels",
			Query: topic + " " + strings.Join(channels, " OR "),
		})
	}
	out = append(out,
		Strategy{Label: "educational", Query: topic + " education tutorial"},
		Strategy{Label: "plain", Query: topic},
	)
	return out
}

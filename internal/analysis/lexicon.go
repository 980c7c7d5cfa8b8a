package analysis

// lexicon is a small AFINN-style valence table, integers in [-5, 5].
var lexicon = map[string]int{
	// positive
	"achieve":      2,
	"achieved":     2,
	"advance":      2,
	"advanced":     2,
	"advantage":    2,
	"benefit":      2,
	"beneficial":   2,
	"breakthrough": 3,
	"effective":    2,
	"efficient":    2,
	"enable":       1,
	"enhance":      2,
	"enhanced":     2,
	"excellent":    3,
	"good":         3,
	"great":        3,
	"healthy":      2,
	"improve":      2,
	"improved":     2,
	"improvement":  2,
	"innovative":   2,
	"optimal":      2,
	"positive":     2,
	"promising":    3,
	"protect":      1,
	"protection":   1,
	"robust":       2,
	"safe":         1,
	"stable":       1,
	"success":      2,
	"successful":   3,
	"support":      2,
	"thrive":       2,
	"valuable":     2,
	"vital":        1,

	// negative
	"adverse":       -2,
	"bad":           -3,
	"concern":       -1,
	"critical":      -2,
	"damage":        -3,
	"damaged":       -3,
	"danger":        -2,
	"dangerous":     -2,
	"death":         -2,
	"decline":       -1,
	"decrease":      -1,
	"defect":        -2,
	"degradation":   -2,
	"deterioration": -2,
	"difficult":     -1,
	"disease":       -1,
	"disrupt":       -2,
	"disruption":    -2,
	"error":         -2,
	"fail":          -2,
	"failed":        -2,
	"failure":       -2,
	"harm":          -2,
	"harmful":       -2,
	"hazard":        -2,
	"hazardous":     -3,
	"impair":        -2,
	"impaired":      -2,
	"loss":          -3,
	"negative":      -2,
	"poor":          -2,
	"problem":       -2,
	"risk":          -2,
	"risks":         -2,
	"stress":        -1,
	"threat":        -2,
	"toxic":         -3,
	"weak":          -2,
	"worse":         -3,
}

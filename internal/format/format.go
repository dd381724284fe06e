// Package format holds the presentation rules used when displaying GitHub data.
package format

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLanguageColor is used for languages missing from the table, and for repositories without one.
const DefaultLanguageColor = "#586069"

var languageColors = map[string]string{
	"JavaScript": "#f1e05a",
	"TypeScript": "#2b7489",
	"Python":     "#3572A5",
	"Java":       "#b07219",
	"C++":        "#f34b7d",
	"C#":         "#178600",
	"PHP":        "#4F5D95",
	"Ruby":       "#701516",
	"Go":         "#00ADD8",
	"Rust":       "#dea584",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"Vue":        "#2c3e50",
	"React":      "#61DAFB",
}

var groupPrinter = message.NewPrinter(language.English)

// LanguageColor returns the hex color shown next to a repository's primary language.
// The lookup is exact and case-sensitive.
func LanguageColor(lang string) string {
	if c, ok := languageColors[lang]; ok {
		return c
	}
	return DefaultLanguageColor
}

// Compact renders a count the way star badges do: 1500 -> "1.5K", 2500000 -> "2.5M".
// Ties round up: 1250 -> "1.3K".
func Compact(n int) string {
	switch {
	case n >= 1_000_000:
		return oneDecimal(n, 1_000_000) + "M"
	case n >= 1_000:
		return oneDecimal(n, 1_000) + "K"
	default:
		return strconv.Itoa(n)
	}
}

// oneDecimal formats n/unit with one decimal, rounding half up. n and unit are positive.
func oneDecimal(n, unit int) string {
	tenths := (n + unit/20) / (unit / 10)
	return strconv.Itoa(tenths/10) + "." + strconv.Itoa(tenths%10)
}

// Grouped renders a count with locale digit grouping, e.g. 1234567 -> "1,234,567".
func Grouped(n int) string {
	return groupPrinter.Sprintf("%d", n)
}

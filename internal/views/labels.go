package views

import (
	"strings"

	"github.com/forPelevin/gomoji"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultCategoryLabels is used when no label file is configured
func DefaultCategoryLabels() map[string]string {
	return map[string]string{
		"Groceries":       "食料品",
		"Dining Out":      "外食",
		"Shopping":        "ショッピング",
		"Fuel":            "燃料",
		"Entertainment":   "エンターテイメント",
		"Travel":          "旅行",
		"Utilities":       "光熱費",
		"Online Shopping": "オンラインショッピング",
		"Other":           "その他",
	}
}

// Labels translates backend category names into display labels
type Labels struct {
	table map[string]string
}

// NewLabels builds a translator. Keys are matched ignoring emoji, case and
// surrounding whitespace.
func NewLabels(table map[string]string) *Labels {
	l := &Labels{table: make(map[string]string, len(table))}
	for k, v := range table {
		l.table[normalizeLabel(k)] = v
	}
	return l
}

// Translate returns the display label, or the input unchanged when unknown
func (l *Labels) Translate(label string) string {
	if l == nil {
		return label
	}
	if v, ok := l.table[normalizeLabel(label)]; ok {
		return v
	}
	return label
}

// Known returns the normalized keys in sorted order
func (l *Labels) Known() []string {
	keys := maps.Keys(l.table)
	slices.Sort(keys)
	return keys
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(gomoji.RemoveEmojis(s)))
}

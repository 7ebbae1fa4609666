// Package classify maps free-text video titles to curriculum topics.
//
// Classification is a linear scan over an ordered rule table: rules are
// tried in declared order, each rule's keywords in declared order, and the
// first keyword found as a substring of the locale-folded title wins.
// More specific rules therefore must be listed before broader ones (an
// "Atatürk reforms" rule before a generic "Ottoman Empire" rule).
package classify

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Rule associates a topic with the keywords that select it.
// Keyword order is significant: earlier keywords are tried first.
type Rule struct {
	TopicID  string   `yaml:"topic"`
	Keywords []string `yaml:"keywords"`
}

// Classifier resolves titles to topic IDs using per-course rule tables.
// It is stateless after construction and safe for concurrent use.
type Classifier struct {
	tables map[string][]compiledRule
}

type compiledRule struct {
	topicID  string
	keywords []string // folded at construction
}

// New builds a classifier from per-course rule tables. Rule order within
// each course encodes matching priority.
func New(tables map[string][]Rule) *Classifier {
	c := &Classifier{tables: make(map[string][]compiledRule, len(tables))}
	for courseID, rules := range tables {
		compiled := make([]compiledRule, 0, len(rules))
		for _, r := range rules {
			cr := compiledRule{topicID: r.TopicID}
			for _, kw := range r.Keywords {
				if kw == "" {
					continue
				}
				cr.keywords = append(cr.keywords, Fold(kw))
			}
			compiled = append(compiled, cr)
		}
		c.tables[courseID] = compiled
	}
	return c
}

// NewDefault builds a classifier over the built-in KPSS rule tables.
func NewDefault() *Classifier {
	return New(DefaultRules())
}

// Classify returns the topic ID for the first rule whose keyword occurs in
// the title, and false when the course has no rule table or nothing matches.
// The result depends only on the inputs and the rule table: no I/O, no state.
func (c *Classifier) Classify(courseID, title string) (string, bool) {
	rules, ok := c.tables[courseID]
	if !ok {
		return "", false
	}

	folded := Fold(title)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(folded, kw) {
				return rule.topicID, true
			}
		}
	}
	return "", false
}

// Fold lowercases s using Turkish casing rules, so that dotted and dotless
// I ("İ" -> "i", "I" -> "ı") and other accented letters fold correctly.
// A generic ASCII or Unicode-default lowercase would mangle these.
func Fold(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// LoadRulesFile reads per-course rule tables from a YAML file:
//
//	tarih:
//	  - topic: tarih-inkilaplar
//	    keywords: [atatürk, inkılap]
//
// Sequence order in the file is preserved as matching priority.
func LoadRulesFile(path string) (map[string][]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var tables map[string][]Rule
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	return tables, nil
}

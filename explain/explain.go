// Package explain 为推荐结果生成可读的推荐理由。
//
// 理由由一组有序规则拼接而成：每条规则独立判断，最多贡献一个短语，
// 短语之间以 ", " 连接；没有任何规则命中时返回兜底短语，保证理由非空。
package explain

import (
	"strings"

	"github.com/rushteam/carmatch/core"
)

// Fallback 是没有任何规则命中时的理由。
const Fallback = "meets your basic requirements"

// Rule 是一条理由规则：返回短语与是否命中。
type Rule struct {
	Name   string
	Phrase func(car core.Car, prefs *core.Preferences) (string, bool)
}

// Explainer 按顺序执行 Rules 并拼接短语。
type Explainer struct {
	Rules    []Rule
	Sep      string
	Fallback string
}

// New 返回装配了默认规则的 Explainer。
func New() *Explainer {
	return &Explainer{Rules: DefaultRules()}
}

// DefaultRules 返回默认规则表：预算、油耗、经验、场景、品牌。
func DefaultRules() []Rule {
	return []Rule{
		{Name: "budget", Phrase: budgetPhrase},
		{Name: "fuel_economy", Phrase: fuelPhrase},
		{Name: "experience", Phrase: experiencePhrase},
		{Name: "use_case", Phrase: useCasePhrase},
		{Name: "brand", Phrase: brandPhrase},
	}
}

// Explain 生成理由。prefs 为 nil 时直接返回兜底短语。
func (e *Explainer) Explain(car core.Car, prefs *core.Preferences) string {
	fallback := e.Fallback
	if fallback == "" {
		fallback = Fallback
	}
	if prefs == nil {
		return fallback
	}
	sep := e.Sep
	if sep == "" {
		sep = ", "
	}

	phrases := make([]string, 0, len(e.Rules))
	for _, r := range e.Rules {
		if r.Phrase == nil {
			continue
		}
		if p, ok := r.Phrase(car, prefs); ok && p != "" {
			phrases = append(phrases, p)
		}
	}
	if len(phrases) == 0 {
		return fallback
	}
	return strings.Join(phrases, sep)
}

var defaultExplainer = New()

// Explain 使用默认规则生成理由。
func Explain(car core.Car, prefs *core.Preferences) string {
	return defaultExplainer.Explain(car, prefs)
}

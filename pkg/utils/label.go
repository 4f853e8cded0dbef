package utils

import "strconv"

// Label 是推荐链路中的一等公民：可解释、可追踪、可透传。
// 过滤原因、子分数、排序位次都以 Label 形式挂在 Item 上。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // filter / rank / rerank / rule ...
}

// MergeLabel 用于合并同名 Label，保留历史：Value 以 '|' 累积，Source 以 ',' 累积。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}

// FloatLabel 以最短精确形式记录一个数值。
func FloatLabel(v float64, source string) Label {
	return Label{Value: strconv.FormatFloat(v, 'f', -1, 64), Source: source}
}

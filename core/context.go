package core

import "github.com/rushteam/carmatch/pkg/utils"

// RecommendContext 承载一次请求的偏好与元信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	RequestID string

	// Prefs 是已校验的用户偏好；过滤、打分、解释都只读它
	Prefs *Preferences

	// Labels 是请求级标签，用于观测
	Labels map[string]utils.Label

	// Params 请求级扩展参数，供自定义 Node 使用
	Params map[string]any
}

// NewRecommendContext 创建请求上下文。
func NewRecommendContext(requestID string, prefs *Preferences) *RecommendContext {
	return &RecommendContext{
		RequestID: requestID,
		Prefs:     prefs,
		Labels:    make(map[string]utils.Label),
		Params:    make(map[string]any),
	}
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}

// RequirePrefs 返回偏好；缺失时返回 INVALID_INPUT。
func (rctx *RecommendContext) RequirePrefs() (*Preferences, error) {
	if rctx == nil || rctx.Prefs == nil {
		return nil, NewDomainError(ModulePreferences, ErrorCodeInvalidInput, "preferences: missing from recommend context")
	}
	return rctx.Prefs, nil
}

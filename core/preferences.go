package core

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Experience 是驾驶经验等级。
type Experience string

const (
	ExperienceNovice       Experience = "novice"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceExpert       Experience = "expert"
)

// IsValid 检查经验等级是否为已知取值。
func (e Experience) IsValid() bool {
	switch e {
	case ExperienceNovice, ExperienceIntermediate, ExperienceExpert:
		return true
	}
	return false
}

// UseCase 是用车场景。
type UseCase string

const (
	UseCaseCity    UseCase = "city"
	UseCaseHighway UseCase = "highway"
	UseCaseMixed   UseCase = "mixed"
	UseCaseOffroad UseCase = "offroad"
)

// IsValid 检查用车场景是否为已知取值。
func (u UseCase) IsValid() bool {
	switch u {
	case UseCaseCity, UseCaseHighway, UseCaseMixed, UseCaseOffroad:
		return true
	}
	return false
}

// Preferences 是一次推荐请求的用户偏好。
//
// 约束：
//   - Budget > 0，且为有限数
//   - Experience / UseCase 必须是枚举值之一；未知取值直接报错，不做默认处理
//   - BrandPreferences 为空表示不限品牌；顺序无关
type Preferences struct {
	Budget              float64    `json:"budget" yaml:"budget" validate:"gt=0"`
	Experience          Experience `json:"experience" yaml:"experience" validate:"oneof=novice intermediate expert"`
	UseCase             UseCase    `json:"use_case" yaml:"use_case" validate:"oneof=city highway mixed offroad"`
	BrandPreferences    []string   `json:"brand_preferences" yaml:"brand_preferences"`
	FuelEconomyPriority bool       `json:"fuel_economy_priority" yaml:"fuel_economy_priority"`
}

var (
	prefsValidator     *validator.Validate
	prefsValidatorOnce sync.Once
)

func getValidator() *validator.Validate {
	prefsValidatorOnce.Do(func() {
		prefsValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return prefsValidator
}

// Validate 校验偏好，失败时返回 ModulePreferences / INVALID_INPUT 的 DomainError。
func (p *Preferences) Validate() error {
	if p == nil {
		return invalidPreferences("preferences: nil")
	}
	if math.IsNaN(p.Budget) || math.IsInf(p.Budget, 0) {
		return invalidPreferences(fmt.Sprintf("preferences: budget must be a finite number, got %v", p.Budget))
	}

	err := getValidator().Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return invalidPreferences("preferences: " + err.Error())
	}

	fe := verrs[0]
	switch fe.StructField() {
	case "Budget":
		return invalidPreferences(fmt.Sprintf("preferences: budget must be greater than 0, got %v", p.Budget))
	case "Experience":
		return invalidPreferences(fmt.Sprintf("preferences: unrecognized experience %q (want novice|intermediate|expert)", p.Experience))
	case "UseCase":
		return invalidPreferences(fmt.Sprintf("preferences: unrecognized use case %q (want city|highway|mixed|offroad)", p.UseCase))
	default:
		return invalidPreferences(fmt.Sprintf("preferences: invalid %s", fe.StructField()))
	}
}

// HasBrand 判断品牌是否在偏好集合中（精确匹配）。
func (p *Preferences) HasBrand(brand string) bool {
	for _, b := range p.BrandPreferences {
		if b == brand {
			return true
		}
	}
	return false
}

// Brands 返回去重并排序后的品牌集合。
func (p *Preferences) Brands() []string {
	if len(p.BrandPreferences) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(p.BrandPreferences))
	out := make([]string, 0, len(p.BrandPreferences))
	for _, b := range p.BrandPreferences {
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

// CanonicalKey 返回偏好的规范化字符串，作为结果缓存的 key。
// 字段顺序固定；预算使用最短精确表示；品牌去重排序后逐个加引号，避免分隔符冲突。
func (p *Preferences) CanonicalKey() string {
	var b strings.Builder
	b.WriteString("budget=")
	b.WriteString(strconv.FormatFloat(p.Budget, 'f', -1, 64))
	b.WriteString("|experience=")
	b.WriteString(string(p.Experience))
	b.WriteString("|use_case=")
	b.WriteString(string(p.UseCase))
	b.WriteString("|brands=[")
	for i, brand := range p.Brands() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(brand))
	}
	b.WriteString("]|fuel_economy_priority=")
	b.WriteString(strconv.FormatBool(p.FuelEconomyPriority))
	return b.String()
}

func (p *Preferences) String() string {
	return "Preferences{" + p.CanonicalKey() + "}"
}

func invalidPreferences(msg string) *DomainError {
	return NewDomainError(ModulePreferences, ErrorCodeInvalidInput, msg)
}

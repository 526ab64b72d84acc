// Package listing 提供 B2B 表单中价格、数量与预算文本的解析。
// 输入是用户随手填写的自由文本（"₹45,000"、"45/kg"、"negotiable"），
// 解析与路由层完全解耦，便于独立测试。
package listing

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// 解析失败原因。调用方用 errors.Is 区分后给出 400 响应。
var (
	ErrEmpty          = errors.New("value is empty")
	ErrNoNumericToken = errors.New("no numeric token found")
)

var numericRun = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// 货币符号与千分位等装饰字符，解析前剥除。
var amountCleaner = strings.NewReplacer(
	"₹", "",
	"$", "",
	"€", "",
	"£", "",
	",", "",
	"_", "",
	" ", "",
	"\t", "",
)

// ParseAmount 从自由文本中提取第一个数字串并返回其数值。
// "₹45,000" → 45000，"45/kg" → 45，" 1,250.50 " → 1250.5。
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmpty
	}

	cleaned := amountCleaner.Replace(s)
	token := numericRun.FindString(cleaned)
	if token == "" {
		return 0, ErrNoNumericToken
	}

	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, ErrNoNumericToken
	}
	return value, nil
}

// 视为"无预算"的哨兵词。
var budgetSentinels = map[string]struct{}{
	"":           {},
	"na":         {},
	"n/a":        {},
	"negotiable": {},
}

// ParseBudget 解析可选预算。哨兵词（"negotiable"、"na"、空串）返回 nil，
// 表示价格面议；其余文本按 ParseAmount 解析。
func ParseBudget(s string) (*float64, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if _, ok := budgetSentinels[normalized]; ok {
		return nil, nil
	}

	value, err := ParseAmount(s)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

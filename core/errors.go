package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Data 错误：DATA_UNAVAILABLE（主数据源缺失或为空，可通过 refresh 恢复一次）
//   - Statcast 错误：UPSTREAM_FETCH_FAILED（上游抓取失败，终止流水线）
//   - Store 错误：NOT_FOUND
//   - 契约违规：INVALID_STATE（编程错误，不应被捕获恢复）
type DomainError struct {
	Code    string // 错误代码（如 "DATA_UNAVAILABLE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "data", "statcast", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError（支持 %w 包装链），如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeDataUnavailable = "DATA_UNAVAILABLE"      // 主数据源缺失或为空
	ErrorCodeUpstreamFetch   = "UPSTREAM_FETCH_FAILED" // 上游统计数据抓取失败
	ErrorCodeNotFound        = "NOT_FOUND"             // 资源不存在
	ErrorCodeInvalidInput    = "INVALID_INPUT"         // 输入无效
	ErrorCodeInvalidState    = "INVALID_STATE"         // 流水线状态违反阶段契约
)

// 模块名称常量
const (
	ModuleData     = "data"     // 候选数据模块
	ModuleStatcast = "statcast" // 上游抓取模块
	ModuleStore    = "store"    // 存储模块
	ModulePipeline = "pipeline" // 流水线模块
)

// IsDataUnavailable 检查错误是否为主数据源缺失/为空
func IsDataUnavailable(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeDataUnavailable
	}
	return false
}

// IsUpstreamFetchFailed 检查错误是否为上游抓取失败
func IsUpstreamFetchFailed(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUpstreamFetch
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsInvalidState 检查错误是否为阶段契约违规（编程错误）
func IsInvalidState(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidState
	}
	return false
}

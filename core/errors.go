package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Schema 错误：模型 JSON 缺少必需键、系数布局不一致、资源未训练完成
//   - 输入错误：预测输入行缺少必填字段或类型不符
//   - 数值错误：退化模型（概率归一化分母为零）
//   - 资源错误：NOT_FOUND, UNAVAILABLE
type DomainError struct {
	Code    string // 错误代码（如 "SCHEMA", "INVALID_INPUT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "model", "resource"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DomainError)
	return ok
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
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
	ErrorCodeSchema       = "SCHEMA"        // 模型 JSON 不完整或格式错误
	ErrorCodeInvalidInput = "INVALID_INPUT" // 预测输入无效
	ErrorCodeNumeric      = "NUMERIC"       // 数值退化（概率和为零）
	ErrorCodeNotFound     = "NOT_FOUND"     // 资源不存在
	ErrorCodeUnavailable  = "UNAVAILABLE"   // 资源不可用（加载失败/未就绪）
)

// 模块名称常量
const (
	ModuleModel    = "model"    // 模型构建与评估
	ModuleResource = "resource" // 模型资源加载
	ModuleStore    = "store"    // 存储模块
	ModulePipeline = "pipeline" // 输入处理链
)

// IsSchemaError 检查错误是否为 SCHEMA（模型 JSON 不完整/格式错误）
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeSchema
	}
	return false
}

// IsValidationError 检查错误是否为 INVALID_INPUT
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}

// IsNumericError 检查错误是否为 NUMERIC（退化模型）
func IsNumericError(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNumeric
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}

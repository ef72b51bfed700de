package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusCreated - 201: 创建成功.
	StatusCreated = 201
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTokenMissing - 401: 缺少令牌.
	ErrTokenMissing
	// ErrPermissionDenied - 403: 权限不足.
	ErrPermissionDenied
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 管理员相关错误码 (101xxx).
const (
	// ErrAdminNotFound - 404: 管理员不存在.
	ErrAdminNotFound int = iota + 101000
	// ErrAdminAlreadyExist - 400: 管理员已存在.
	ErrAdminAlreadyExist
	// ErrAdminPasswordIncorrect - 401: 邮箱或密码错误.
	ErrAdminPasswordIncorrect
	// ErrAdminLastOne - 400: 不能删除最后一个管理员.
	ErrAdminLastOne
)

// 作品集相关错误码 (102xxx).
const (
	// ErrPortfolioNotFound - 404: 作品集不存在.
	ErrPortfolioNotFound int = iota + 102000
)

// 展会相关错误码 (103xxx).
const (
	// ErrExhibitionNotFound - 404: 展会不存在.
	ErrExhibitionNotFound int = iota + 103000
)

// 询盘相关错误码 (104xxx).
const (
	// ErrEnquiryNotFound - 404: 询盘不存在.
	ErrEnquiryNotFound int = iota + 104000
)

// 统计数据相关错误码 (105xxx).
const (
	// ErrStatsNotFound - 404: 统计数据不存在.
	ErrStatsNotFound int = iota + 105000
	// ErrStatsAlreadyExist - 400: 统计数据已存在.
	ErrStatsAlreadyExist
)

// 文件存储相关错误码 (106xxx).
const (
	// ErrStorage - 500: 文件存储失败.
	ErrStorage int = iota + 106000
	// ErrFileInvalid - 400: 文件格式无效.
	ErrFileInvalid
)

// 数据库相关错误码 (107xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 107000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)

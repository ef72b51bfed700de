package code

// 错误码消息映射（对外返回英文消息，与前端约定保持一致）
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:          "Success",
	ErrUnknown:          "Internal Server Error",
	ErrBind:             "Invalid request parameters",
	ErrValidation:       "Request validation failed",
	ErrTokenInvalid:     "Invalid or expired token. Please login again.",
	ErrTokenMissing:     "No token provided. Please login first.",
	ErrPermissionDenied: "Access denied. Admin privileges required.",
	ErrTooManyRequests:  "Too many requests. Please try again later.",

	// 管理员相关错误码
	ErrAdminNotFound:          "Admin not found",
	ErrAdminAlreadyExist:      "Admin with this email already exists",
	ErrAdminPasswordIncorrect: "Invalid email or password",
	ErrAdminLastOne:           "Cannot delete the last remaining admin",

	// 作品集相关错误码
	ErrPortfolioNotFound: "Portfolio not found",

	// 展会相关错误码
	ErrExhibitionNotFound: "Exhibition not found",

	// 询盘相关错误码
	ErrEnquiryNotFound: "Enquiry not found",

	// 统计数据相关错误码
	ErrStatsNotFound:     "Stats not found",
	ErrStatsAlreadyExist: "Stats record already exists",

	// 文件存储相关错误码
	ErrStorage:     "Failed to store file",
	ErrFileInvalid: "Invalid file format",

	// 数据库相关错误码
	ErrDatabase:       "Database error",
	ErrRecordNotFound: "Record not found",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrTokenMissing:     StatusUnauthorized,
	ErrPermissionDenied: StatusForbidden,
	ErrTooManyRequests:  StatusTooManyRequests,

	// 管理员相关错误码
	ErrAdminNotFound:          StatusNotFound,
	ErrAdminAlreadyExist:      StatusBadRequest,
	ErrAdminPasswordIncorrect: StatusUnauthorized,
	ErrAdminLastOne:           StatusBadRequest,

	// 作品集相关错误码
	ErrPortfolioNotFound: StatusNotFound,

	// 展会相关错误码
	ErrExhibitionNotFound: StatusNotFound,

	// 询盘相关错误码
	ErrEnquiryNotFound: StatusNotFound,

	// 统计数据相关错误码
	ErrStatsNotFound:     StatusNotFound,
	ErrStatsAlreadyExist: StatusBadRequest,

	// 文件存储相关错误码
	ErrStorage:     StatusInternalServerError,
	ErrFileInvalid: StatusBadRequest,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Internal Server Error"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}

package models

import "time"

// EnquiryType 询盘类型
type EnquiryType string

const (
	EnquiryTypeExhibitionStall  EnquiryType = "exhibition_stall"
	EnquiryTypePortfolioProject EnquiryType = "portfolio_project"
	EnquiryTypeSponsorship      EnquiryType = "sponsorship"
	EnquiryTypeGeneralInquiry   EnquiryType = "general_inquiry"
	EnquiryTypeContactInquiry   EnquiryType = "contact_inquiry"
	EnquiryTypeBulkOrder        EnquiryType = "bulk_order"
	EnquiryTypeOther            EnquiryType = "other"
)

// EnquiryStatus 询盘处理状态
type EnquiryStatus string

const (
	EnquiryStatusNew        EnquiryStatus = "new"
	EnquiryStatusContacted  EnquiryStatus = "contacted"
	EnquiryStatusConfirmed  EnquiryStatus = "confirmed"
	EnquiryStatusInProgress EnquiryStatus = "in_progress"
	EnquiryStatusResolved   EnquiryStatus = "resolved"
	EnquiryStatusClosed     EnquiryStatus = "closed"
)

// EnquiryPriority 询盘优先级
type EnquiryPriority string

const (
	EnquiryPriorityLow    EnquiryPriority = "low"
	EnquiryPriorityMedium EnquiryPriority = "medium"
	EnquiryPriorityHigh   EnquiryPriority = "high"
)

// EnquiryResponse 管理员对询盘的回复记录
type EnquiryResponse struct {
	RespondentID  uint      `json:"respondentId"`
	Message       string    `json:"message"`
	AttachmentURL string    `json:"attachmentUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Enquiry represents an inbound lead captured through a public form
type Enquiry struct {
	BaseModel
	Name           string            `gorm:"type:varchar(100);not null" json:"name"`
	Email          string            `gorm:"type:varchar(100);not null" json:"email"`
	Phone          string            `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Company        string            `gorm:"type:varchar(200)" json:"company,omitempty"`
	Subject        string            `gorm:"type:varchar(300);not null" json:"subject"`
	Message        string            `gorm:"type:text;not null" json:"message"`
	EnquiryType    EnquiryType       `gorm:"type:varchar(30);default:'general_inquiry'" json:"enquiryType"`
	ExhibitionID   *uint             `json:"exhibitionId,omitempty"`
	PortfolioID    *uint             `json:"portfolioId,omitempty"`
	Status         EnquiryStatus     `gorm:"type:varchar(20);default:'new'" json:"status"`
	Priority       EnquiryPriority   `gorm:"type:varchar(10);default:'medium'" json:"priority"`
	AttachmentURL  string            `gorm:"type:varchar(500)" json:"attachmentUrl,omitempty"`
	AttachmentName string            `gorm:"type:varchar(255)" json:"attachmentName,omitempty"`
	Notes          string            `gorm:"type:text" json:"notes,omitempty"`
	Responses      []EnquiryResponse `gorm:"serializer:json" json:"responses"`
	FollowUpDate   *time.Time        `json:"followUpDate,omitempty"`
	AssignedToID   *uint             `json:"assignedToId,omitempty"`

	// Relations
	Exhibition *Exhibition `gorm:"foreignKey:ExhibitionID" json:"exhibition,omitempty"`
	Portfolio  *Portfolio  `gorm:"foreignKey:PortfolioID" json:"portfolio,omitempty"`
	AssignedTo *Admin      `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
}

// IsValidEnquiryType 校验询盘类型取值
func IsValidEnquiryType(t string) bool {
	switch EnquiryType(t) {
	case EnquiryTypeExhibitionStall, EnquiryTypePortfolioProject,
		EnquiryTypeSponsorship, EnquiryTypeGeneralInquiry,
		EnquiryTypeContactInquiry, EnquiryTypeBulkOrder, EnquiryTypeOther:
		return true
	}
	return false
}

// IsValidEnquiryStatus 校验处理状态取值
func IsValidEnquiryStatus(s string) bool {
	switch EnquiryStatus(s) {
	case EnquiryStatusNew, EnquiryStatusContacted, EnquiryStatusConfirmed,
		EnquiryStatusInProgress, EnquiryStatusResolved, EnquiryStatusClosed:
		return true
	}
	return false
}

// IsValidEnquiryPriority 校验优先级取值
func IsValidEnquiryPriority(p string) bool {
	switch EnquiryPriority(p) {
	case EnquiryPriorityLow, EnquiryPriorityMedium, EnquiryPriorityHigh:
		return true
	}
	return false
}

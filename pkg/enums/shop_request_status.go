package enums

import "fmt"

// ShopRequestStatus tracks the review state of a shop creation request.
type ShopRequestStatus string

const (
	ShopRequestStatusPending  ShopRequestStatus = "PENDING"
	ShopRequestStatusApproved ShopRequestStatus = "APPROVED"
	ShopRequestStatusRejected ShopRequestStatus = "REJECTED"
)

var validShopRequestStatuses = []ShopRequestStatus{
	ShopRequestStatusPending,
	ShopRequestStatusApproved,
	ShopRequestStatusRejected,
}

// String implements fmt.Stringer.
func (s ShopRequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShopRequestStatus.
func (s ShopRequestStatus) IsValid() bool {
	for _, candidate := range validShopRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShopRequestStatus converts raw input into a ShopRequestStatus.
func ParseShopRequestStatus(value string) (ShopRequestStatus, error) {
	for _, candidate := range validShopRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shop request status %q", value)
}

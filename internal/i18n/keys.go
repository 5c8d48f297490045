// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// User management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"
	KeyUserSuspended      = "user.suspended"
	KeyUserAccountDeleted = "user.account_deleted"

	// Products
	KeyProductCreated    = "product.created"
	KeyProductUpdated    = "product.updated"
	KeyProductDeleted    = "product.deleted"
	KeyProductNotFound   = "product.not_found"
	KeyProductReserved   = "product.reserved"
	KeyProductUnreserved = "product.unreserved"
	KeyProductSold       = "product.sold"
	KeyProductFavorited  = "product.favorited"
	KeyProductUnfavored  = "product.unfavorited"

	// Search
	KeySearchHistoryDeleted = "search.history_deleted"
	KeySearchHistoryCleared = "search.history_cleared"
	KeySearchHistoryMissing = "search.history_not_found"
	KeySearchQueryTooShort  = "search.query_too_short"

	// Groups
	KeyGroupNotFound   = "group.not_found"
	KeyGroupFollowed   = "group.followed"
	KeyGroupUnfollowed = "group.unfollowed"

	// Reviews
	KeyReviewCreated  = "review.created"
	KeyReviewDeleted  = "review.deleted"
	KeyReviewNotFound = "review.not_found"

	// Notifications
	KeyNotificationRead    = "notification.read"
	KeyNotificationAllRead = "notification.all_read"
	KeyNotificationMissing = "notification.not_found"

	// Reports
	KeyReportCreated  = "report.created"
	KeyReportResolved = "report.resolved"
	KeyReportNotFound = "report.not_found"

	// Privacy
	KeyPrivacyExportReady   = "privacy.export_ready"
	KeyPrivacyAccountErased = "privacy.account_erased"

	// Payments
	KeyPaymentIntentCreated = "payment.intent_created"
	KeyPaymentConfirmed     = "payment.confirmed"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Files
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"

	// Validation
	KeyValidationInvalid = "validation.invalid"
)

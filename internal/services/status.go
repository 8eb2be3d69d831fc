package services

// Subscription status values derived from notification types.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
	StatusRefunded  = "refunded"
	StatusRevoked   = "revoked"
	StatusUnknown   = "unknown"
)

// ResolveStatus maps a notification type to a subscription status. It is
// total: every input, including the empty string, yields a valid status.
func ResolveStatus(notificationType string) string {
	switch notificationType {
	case "INITIAL_BUY", "RENEWAL", "INTERACTIVE_RENEWAL", "DID_RECOVER":
		return StatusActive
	case "CANCEL":
		return StatusCancelled
	case "DID_FAIL_TO_RENEW":
		return StatusExpired
	case "REFUND":
		return StatusRefunded
	case "REVOKE":
		return StatusRevoked
	default:
		return StatusUnknown
	}
}

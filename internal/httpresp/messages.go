package httpresp

const (
	MsgCreated          = "Resource created successfully"
	MsgUpdated          = "Resource updated successfully"
	MsgDeleted          = "Resource deleted successfully"
	MsgUserCreated      = "User created successfully"
	MsgLoggedOut        = "Logged out successfully"
	MsgNotificationRead = "Notification marked as read"
	MsgShiftApproved    = "Shift approved"
)

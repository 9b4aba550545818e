package dynamo

// DynamoDB attribute and index names shared by the repositories and Bootstrap.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldRecordID       = "record_id"
	fieldNotificationID = "notification_id"
	fieldUserID         = "user_id"
	fieldStatus         = "status"
	fieldReadAt         = "read_at"
	fieldUpdatedAt      = "updated_at"
	fieldCreatedKey     = "created_key"

	// Per-user indexes range on created_key, see createdKey.
	indexRecordsByUser       = "user_id-created_key-index"
	indexNotificationsByUser = "user_id-created_key-index"
)

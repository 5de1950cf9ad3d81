package m_user

const (
	TableName = "users"

	// IndexByEmail is UNIQUE on email.
	IndexByEmail = "users_by_email"

	ColUserID       = "user_id"
	ColName         = "name"
	ColEmail        = "email"
	ColPasswordHash = "password_hash"
	ColRole         = "role"
	ColCreatedAt    = "created_at"
	ColUpdatedAt    = "updated_at"
)

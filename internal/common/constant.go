package common

// RequestIDHeader carries the per-request correlation id on HTTP requests
// and responses.
const RequestIDHeader = "X-Request-Id"

// DefaultAvatarURL is returned for every logged-in user; profile pictures
// are not stored.
const DefaultAvatarURL = "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=100"

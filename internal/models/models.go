package models

// All lists every model owned by the service, in migration order.
func All() []interface{} {
	return []interface{}{&Member{}, &AuthToken{}, &Message{}}
}

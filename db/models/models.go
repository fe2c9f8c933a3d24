package models

var registry []interface{}

func registerModel(model interface{}) {
	registry = append(registry, model)
}

// GetModels returns every model registered at init time, in
// registration order, for schema migration.
func GetModels() []interface{} {
	out := make([]interface{}, len(registry))
	copy(out, registry)

	return out
}

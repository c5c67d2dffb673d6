package interfaces

import "microreg/registry/domain"

// Registry is the public operation set of the service registry.
type Registry interface {
	// Register creates or refreshes the record for (name, version, address, port).
	// Returns:
	// 1) (key, nil) on success, whether the record was new or refreshed;
	// 2) bad_parameter when any field is malformed;
	// 3) internal_server_error when the registry is closed.
	Register(name, version, address string, port int) (domain.Key, error)

	// Unregister removes the record for (name, version, address, port) if present.
	// It never fails and always returns the computed key.
	Unregister(name, version, address string, port int) domain.Key

	// Get returns one live record of name whose version satisfies constraint.
	// Returns:
	// 1) (record, nil) when at least one record matches;
	// 2) entity_not_found when nothing matches (service currently unavailable);
	// 3) bad_parameter when constraint does not parse;
	// 4) internal_server_error when the registry is closed.
	Get(name, constraint string) (domain.Record, error)

	// List returns every live record ordered by key.
	List() ([]domain.Record, error)
}

package handlers

import (
	"microreg/registry/domain"
)

// toInstanceInfo converts a domain record to API response.
func toInstanceInfo(r domain.Record) InstanceInfo {
	return InstanceInfo{
		Name:         r.Name,
		Version:      r.Version,
		Address:      r.Address,
		Port:         r.Port,
		LastSeen:     r.LastSeen.UTC(),
		LastSeenUnix: r.LastSeen.Unix(),
	}
}

// toInstancesResponse converts domain records to API response.
func toInstancesResponse(records []domain.Record) InstancesResponse {
	out := make([]InstanceInfo, 0, len(records))
	for _, r := range records {
		out = append(out, toInstanceInfo(r))
	}
	return InstancesResponse{Instances: out}
}

func toKeyResponse(key domain.Key) KeyResponse {
	return KeyResponse{Key: key.String()}
}

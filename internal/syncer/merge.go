package syncer

import "github.com/localnerve/lessonsync/internal/models"

// MergeList keeps every server item, in server order, then appends the local
// items whose id the server does not have.
func MergeList(server, local []models.Item) []models.Item {
	merged := make([]models.Item, 0, len(server)+len(local))
	merged = append(merged, server...)
	for _, item := range local {
		if models.IndexByID(server, item.ID()) < 0 {
			merged = append(merged, item)
		}
	}
	return merged
}

// MergeTests is MergeList where a local test is also dropped when a server
// test has the same name, ignoring case.
func MergeTests(server, local []models.Item) []models.Item {
	merged := make([]models.Item, 0, len(server)+len(local))
	merged = append(merged, server...)
	for _, item := range local {
		if models.IndexByID(server, item.ID()) < 0 && models.IndexByName(server, item) < 0 {
			merged = append(merged, item)
		}
	}
	return merged
}

// MergeRecord overlays server on local. Keys only the local record has
// survive; for shared keys the server wins.
func MergeRecord(local, server models.Record) models.Record {
	merged := local.Clone()
	for k, v := range server {
		merged[k] = v
	}
	return merged
}

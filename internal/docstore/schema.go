package docstore

import "fmt"

// Redis key pattern helpers
//
// All keys are namespaced by instance name so multiple deployments can
// share a Redis server.
//
// Document key pattern: bugbash:{instance}:doc:{collection}:{id}
// Collection index:     bugbash:{instance}:docs:{collection}

// DocumentKey returns the Redis key for one document.
func DocumentKey(instance, collection, id string) string {
	return fmt.Sprintf("bugbash:%s:doc:%s:%s", instance, collection, id)
}

// CollectionKey returns the Redis key of the set indexing a collection's
// document ids.
func CollectionKey(instance, collection string) string {
	return fmt.Sprintf("bugbash:%s:docs:%s", instance, collection)
}

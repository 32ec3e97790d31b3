// Package repository implements document access over Firestore collections.
// Every method is a single atomic document operation; there are no
// cross-call transactions.
package repository

import (
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const updatedAtField = "updatedAt"

// isNotFound reports whether err is the store's missing-document error.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// updatesFrom turns a partial field map into Firestore update operations,
// in deterministic field order.
func updatesFrom(fields map[string]any) []firestore.Update {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: fields[k]})
	}
	return updates
}

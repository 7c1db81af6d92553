// Package kernel provides the shared value objects of the ordering domain.
//
// UUID identifies accounts, orders and line items. Its zero value is invalid,
// so identifiers must come from NewUUID, UUIDFromString or UUIDFromBytes.
// UUID is immutable and safe for concurrent use.
package kernel

// Package models defines the resources carried in webhook payloads:
// payments, refunds, disputes, subscriptions and license keys, with their
// nested objects and open string enums.
//
// Every resource decodes strictly (missing required keys and type mismatches
// fail), keeps unknown keys in Extra, and re-encodes them unchanged. Enum
// fields accept any string; Validate reports values outside the known set.
package models

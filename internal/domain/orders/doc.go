// Package orders defines the order domain model: the status lifecycle, the
// order types, money amounts in cents, and the order document shape.
package orders

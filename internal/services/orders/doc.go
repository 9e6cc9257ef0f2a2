// Package ordersvc implements the order lifecycle: creation priced against
// the catalog, status updates, history, and the notification publishes that
// ride along with both. Persistence happens before any publish, so a
// subscriber never hears about state that isn't durable.
package ordersvc

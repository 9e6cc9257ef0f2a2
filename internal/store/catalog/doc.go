// Package catalog persists the menu: items with prices, extra charges, and
// discount codes. These documents are read when an order is priced.
package catalog

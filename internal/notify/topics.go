package notify

import "strings"

// AdminTopic is the fixed key for the admin-wide new-order feed.
const AdminTopic = "admin:new-orders"

// contactPrefix disambiguates contact-derived keys from order ids.
const contactPrefix = "contact:"

// OrderTopic returns the topic key for one order's events: the durable id
// itself. Keys are opaque to the Hub.
func OrderTopic(orderID string) string { return orderID }

// ContactTopic returns the alias key derived from a customer contact number.
// The number is normalized to its digits so "+1 (555) 010-0200" and
// "15550100200" land on the same key.
func ContactTopic(number string) string {
	return contactPrefix + NormalizeContact(number)
}

// NormalizeContact strips everything but digits from a contact number.
func NormalizeContact(number string) string {
	var b strings.Builder
	b.Grow(len(number))
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

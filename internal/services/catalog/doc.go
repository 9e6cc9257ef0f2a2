// Package catalogsvc fronts the menu catalog with validation.
package catalogsvc

// Package utils provides small path helpers shared by the integrity checks
// and the publish feature: extension matching and object key construction.
package utils

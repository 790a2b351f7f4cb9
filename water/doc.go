// Package water holds the hydrology snapshot handed from the generation
// stages to the cache and to callers.
package water
